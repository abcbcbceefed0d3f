package resourcetests

import (
	"fmt"

	"github.com/schul-cloud/resources-contract-tests/framework"
)

// StepGroup is one ordered group of conformance tests.
type StepGroup struct {
	Step int
	Name string
	Run  func(*T)
}

// Label returns the group's name as it appears in test identifiers, for
// instance "step4 list".
func (g StepGroup) Label() string {
	return fmt.Sprintf("step%d %s", g.Step, g.Name)
}

// AllSteps returns the step groups in execution order.
func AllSteps() []StepGroup {
	return []StepGroup{
		{Step: 1, Name: "connection", Run: DoConnectionTests},
		{Step: 2, Name: "create", Run: DoCreateTests},
		{Step: 3, Name: "fetch", Run: DoFetchTests},
		{Step: 4, Name: "list", Run: DoListTests},
		{Step: 5, Name: "update", Run: DoUpdateTests},
		{Step: 6, Name: "delete", Run: DoDeleteTests},
		{Step: 7, Name: "validation", Run: DoValidationTests},
	}
}

// MaxStep returns the highest step number in the suite.
func MaxStep() int {
	steps := AllSteps()
	return steps[len(steps)-1].Step
}

// RunTestSuite runs all step groups selected by steps against the server
// the harness points at, and returns the results. Individual tests are
// additionally subject to the regex filter. Deselected step groups are not
// enumerated at all, so they do not show up as skipped.
func RunTestSuite(
	harness *framework.Harness,
	steps framework.StepSelection,
	filter framework.Filter,
	testLogger framework.TestLogger,
) framework.Results {
	return framework.Run(filter, testLogger, func(c *framework.Context) {
		t := newTestScope(c, harness)
		for _, group := range AllSteps() {
			if !steps.Includes(group.Step) {
				continue
			}
			t.Run(group.Label(), group.Run)
		}
	})
}
