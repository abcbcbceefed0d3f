package framework

import (
	"fmt"

	"github.com/fatih/color"
)

// PrintResults prints a summary of a completed run to standard output. The
// details of each failure have already been printed by the test logger while
// the run was going on, so this only lists the names again.
func PrintResults(results Results) {
	if !results.OK() {
		fmt.Println(color.RedString("Failed tests (%d):", len(results.Failures)))
		for _, f := range results.Failures {
			name := f.TestID.String()
			if !f.TestID.IsDefined() {
				name = "(failure outside of any test)"
			}
			fmt.Println(color.RedString("* %s", name))
		}
		fmt.Println()
	}

	passed := len(results.Tests) - len(results.Failures) - len(results.Skips)
	counts := fmt.Sprintf("%d tests passed, %d failed, %d skipped", passed, len(results.Failures), len(results.Skips))
	if results.OK() {
		fmt.Printf("Results: %s\n", color.GreenString("%s", counts))
	} else {
		fmt.Printf("Results: %s\n", color.RedString("%s", counts))
	}
}
