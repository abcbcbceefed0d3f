package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/alessio/shellescape"

	"github.com/schul-cloud/resources-contract-tests/framework"
	"github.com/schul-cloud/resources-contract-tests/resourcetests"
)

const defaultBaseURL = "http://localhost:8080/v1/"

type commandParams struct {
	baseURL  string
	steps    framework.StepSelection
	filters  framework.RegexFilters
	debug    bool
	debugAll bool
}

func (c *commandParams) Read(args []string) bool {
	fs := flag.NewFlagSet("", flag.ExitOnError)
	fs.StringVar(&c.baseURL, "url", defaultBaseURL, "base URL of the server under test")
	fs.Var(&c.steps, "m", `run the tests up to a step ("step3"), or one step alone ("step3only")`)
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")

	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		return false
	}
	if c.baseURL == "" {
		fmt.Fprintln(os.Stderr, "-url must not be empty")
		fs.Usage()
		return false
	}
	if c.steps.IsDefined() && c.steps.Step() > resourcetests.MaxStep() {
		fmt.Fprintf(os.Stderr, "there is no step %d; the last step of the suite is step %d\n",
			c.steps.Step(), resourcetests.MaxStep())
		return false
	}
	return true
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}
