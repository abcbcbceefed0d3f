package main

import (
	"fmt"
	"log"
	"os"
	"regexp"
	"time"

	"github.com/schul-cloud/resources-contract-tests/framework"
	"github.com/schul-cloud/resources-contract-tests/resourcetests"
)

const awaitServerTimeout = time.Second * 10

func main() {
	var params commandParams
	if !params.Read(os.Args) {
		os.Exit(1)
	}

	mainDebugLogger := framework.NullLogger()
	if params.debugAll {
		mainDebugLogger = log.New(os.Stdout, "", log.LstdFlags)
	}

	harness, err := framework.NewHarness(
		params.baseURL,
		awaitServerTimeout,
		mainDebugLogger,
		os.Stdout,
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	fmt.Println()
	framework.PrintFilterDescription(params.filters, params.steps, resourcetests.MaxStep())

	fmt.Println("Running test suite")

	testLogger := &framework.ConsoleTestLogger{
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}

	results := resourcetests.RunTestSuite(harness, params.steps, params.filters.AsFilter, testLogger)

	fmt.Println()
	framework.PrintResults(results)
	if !results.OK() {
		printRerunCommand(params, results)
		os.Exit(1)
	}
}

// printRerunCommand prints a command line that reruns exactly the tests that
// failed, with debug logging turned on.
func printRerunCommand(params commandParams, results framework.Results) {
	var cmd commandBuilder
	cmd.add(os.Args[0], "-url", params.baseURL, "-debug")
	for _, failure := range results.Failures {
		if !failure.TestID.IsDefined() {
			continue
		}
		cmd.add("-run", "^"+regexp.QuoteMeta(failure.TestID.String())+"$")
	}
	fmt.Println()
	fmt.Println("To rerun just the failed tests with debug logging:")
	fmt.Printf("  %s\n", cmd.String())
}
