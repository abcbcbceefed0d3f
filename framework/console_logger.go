package framework

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
)

// ConsoleTestLogger is a TestLogger that prints progress to standard output
// as the run goes along. Captured debug output for a test is shown after the
// test finishes, depending on its outcome and on these settings.
type ConsoleTestLogger struct {
	DebugOutputOnFailure bool
	DebugOutputOnSuccess bool
}

func (c *ConsoleTestLogger) TestStarted(id TestID) {
	fmt.Printf("[%s]\n", id)
}

func (c *ConsoleTestLogger) TestError(id TestID, err error) {
	for _, line := range strings.Split(err.Error(), "\n") {
		fmt.Printf("  %s\n", color.RedString("%s", line))
	}
}

func (c *ConsoleTestLogger) TestFinished(id TestID, failed bool, debugOutput CapturedOutput) {
	if failed {
		fmt.Printf("  %s\n", color.RedString("FAILED: %s", id))
	}
	if len(debugOutput) > 0 &&
		((failed && c.DebugOutputOnFailure) || (!failed && c.DebugOutputOnSuccess)) {
		debugOutput.Dump(os.Stdout, "    DEBUG ")
	}
}

func (c *ConsoleTestLogger) TestSkipped(id TestID, reason string) {
	if reason == "" {
		fmt.Printf("  %s\n", color.YellowString("SKIPPED: %s", id))
	} else {
		fmt.Printf("  %s\n", color.YellowString("SKIPPED: %s (%s)", id, reason))
	}
}
