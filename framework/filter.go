package framework

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Filter is a function that can determine whether to run a specific test or not.
type Filter func(TestID) bool

// RegexFilters is a pair of regex lists for including and excluding tests
// by name. An empty MustMatch list includes everything.
type RegexFilters struct {
	MustMatch    RegexList
	MustNotMatch RegexList
}

func (r RegexFilters) AsFilter(id TestID) bool {
	name := id.String()
	return (!r.MustMatch.IsDefined() || r.MustMatch.AnyMatch(name)) &&
		!r.MustNotMatch.AnyMatch(name)
}

type RegexList struct {
	patterns []*regexp.Regexp
}

func (r RegexList) String() string {
	var ss []string
	for _, p := range r.patterns {
		ss = append(ss, `"`+p.String()+`"`)
	}
	return strings.Join(ss, " or ")
}

// Set is called by the command line parser
func (r *RegexList) Set(value string) error {
	rx, err := regexp.Compile(value)
	if err != nil {
		return fmt.Errorf("invalid regex: %w", err)
	}
	r.patterns = append(r.patterns, rx)
	return nil
}

func (r RegexList) IsDefined() bool {
	return len(r.patterns) != 0
}

func (r RegexList) AnyMatch(s string) bool {
	for _, p := range r.patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

var stepSelectionRegex = regexp.MustCompile(`^step([1-9][0-9]*)(only)?$`)

// StepSelection restricts a run to a subset of the ordered step groups that
// make up the test suite. The zero value selects every step.
//
// A value of the form "step3" selects steps 1 through 3, matching the way
// the suite is meant to be worked through: each step builds on the ones
// before it. The form "step3only" selects exactly step 3.
type StepSelection struct {
	step int
	only bool
}

// Set is called by the command line parser
func (s *StepSelection) Set(value string) error {
	m := stepSelectionRegex.FindStringSubmatch(value)
	if m == nil {
		return fmt.Errorf(`unsupported step selection %q (use e.g. "step3" or "step3only")`, value)
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return fmt.Errorf("unsupported step selection %q: %w", value, err)
	}
	s.step = n
	s.only = m[2] != ""
	return nil
}

func (s StepSelection) String() string {
	if !s.IsDefined() {
		return ""
	}
	if s.only {
		return fmt.Sprintf("step%donly", s.step)
	}
	return fmt.Sprintf("step%d", s.step)
}

func (s StepSelection) IsDefined() bool {
	return s.step != 0
}

// Step returns the selected step number, or zero if no selection was made.
func (s StepSelection) Step() int {
	return s.step
}

// Includes reports whether the given step group should run.
func (s StepSelection) Includes(step int) bool {
	if !s.IsDefined() {
		return true
	}
	if s.only {
		return step == s.step
	}
	return step <= s.step
}

// PrintFilterDescription explains on the console which parts of the suite
// the current command line parameters have deselected, if any.
func PrintFilterDescription(filters RegexFilters, steps StepSelection, maxStep int) {
	if steps.IsDefined() {
		if steps.only {
			fmt.Printf("Running only the step %d tests\n\n", steps.step)
		} else if steps.step < maxStep {
			fmt.Printf("Running the tests for steps 1 to %d\n\n", steps.step)
		}
	}
	if filters.MustMatch.IsDefined() || filters.MustNotMatch.IsDefined() {
		fmt.Println("Some tests will be skipped based on the filter criteria for this test run:")
		if filters.MustMatch.IsDefined() {
			fmt.Printf("  skip any not matching %s\n", filters.MustMatch)
		}
		if filters.MustNotMatch.IsDefined() {
			fmt.Printf("  skip any matching %s\n", filters.MustNotMatch)
		}
		fmt.Println()
	}
}
