package framework

import (
	"fmt"
	"strings"
)

// Results is the accumulated outcome of a test run.
//
// Tests contains one entry per executed test or test group, in execution
// order. Failures and Skips are subsets of Tests kept separately so callers
// do not need to re-scan the full list.
type Results struct {
	Tests    []TestResult
	Failures []TestResult
	Skips    []TestResult
}

// TestResult describes the outcome of a single test or test group.
type TestResult struct {
	TestID     TestID
	Errors     []error
	Skipped    bool
	SkipReason string
}

// OK returns true if no test failed. Skipped tests do not count as failures.
func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// TestID identifies a test as the path of nested group and test names,
// for instance ["step3 fetch", "fetching an unknown id reports not found"].
type TestID struct {
	Path []string
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}

// IsDefined returns false for the root scope, which has no name of its own.
func (t TestID) IsDefined() bool {
	return len(t.Path) != 0
}

// TestFailure attaches a test identifier to one of the errors it reported.
type TestFailure struct {
	ID  TestID
	Err error
}

func (f TestFailure) Error() string {
	return fmt.Sprintf("[%s]: %s", f.ID, f.Err)
}
