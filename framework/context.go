package framework

import (
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
)

type environment struct {
	results    Results
	testLogger TestLogger
	filter     Filter
}

// Context is the execution state of one test or test group. Test logic
// receives a Context and reports failures through it; FailNow and Skip use
// panics internally, which run recovers from, so they must only be called
// from the goroutine the test started on.
type Context struct {
	env         *environment
	id          TestID
	debugLogger CapturingLogger
	failed      bool
	skipped     bool
	skipReason  string
	errors      []error
}

// Run executes a test suite rooted at action and returns its results.
// The filter and testLogger may be nil.
func Run(
	filter func(TestID) bool,
	testLogger TestLogger,
	action func(*Context),
) Results {
	if testLogger == nil {
		testLogger = nullTestLogger{}
	}
	env := &environment{
		filter:     filter,
		testLogger: testLogger,
	}
	c := &Context{env: env}
	c.run(action)
	return env.results
}

func (c *Context) run(action func(*Context)) {
	defer func() {
		if r := recover(); r != nil && !c.skipped {
			c.failed = true
			var addError error
			if _, ok := r.(*Context); ok {
				if len(c.errors) == 0 {
					addError = errors.New("test failed with no failure message")
				}
			} else {
				addError = fmt.Errorf("unexpected panic in test: %+v\n%s", r, string(debug.Stack()))
			}
			if addError != nil {
				c.errors = append(c.errors, addError)
				c.env.testLogger.TestError(c.id, addError)
			}
		}
		c.record()
	}()

	action(c)
}

// record appends the outcome of this context to the run results. The root
// scope has no name and is only recorded if something failed in it outside
// of any named test.
func (c *Context) record() {
	if !c.id.IsDefined() && !c.failed {
		return
	}
	result := TestResult{TestID: c.id, Errors: c.errors, Skipped: c.skipped, SkipReason: c.skipReason}
	c.env.results.Tests = append(c.env.results.Tests, result)
	switch {
	case c.skipped:
		c.env.results.Skips = append(c.env.results.Skips, result)
	case c.failed:
		c.env.results.Failures = append(c.env.results.Failures, result)
	}
}

func (c *Context) ID() TestID {
	return c.id
}

// Run executes a subtest in a child scope. The child's identifier is this
// scope's identifier plus the given name.
func (c *Context) Run(name string, action func(*Context)) {
	child := &Context{
		id:  c.id.child(name),
		env: c.env,
	}

	c.env.testLogger.TestStarted(child.id)
	if c.env.filter != nil && !c.env.filter(child.id) {
		child.skipped = true
		child.skipReason = "excluded by filter parameters"
		child.record()
		c.env.testLogger.TestSkipped(child.id, child.skipReason)
		return
	}
	child.run(action)
	if child.skipped {
		c.env.testLogger.TestSkipped(child.id, child.skipReason)
	} else {
		c.env.testLogger.TestFinished(child.id, child.failed, child.debugLogger.Output())
	}
}

// child returns the TestID for a subtest. The path slice is always copied;
// sibling subtests must not share backing arrays.
func (t TestID) child(name string) TestID {
	path := make([]string, 0, len(t.Path)+1)
	path = append(path, t.Path...)
	return TestID{Path: append(path, name)}
}

// Errorf reports a test failure and continues executing the test.
func (c *Context) Errorf(format string, args ...interface{}) {
	c.failed = true
	err := fmt.Errorf(format, args...)
	c.errors = append(c.errors, err)
	c.env.testLogger.TestError(c.id, reformatError(err))
}

// FailNow stops the test immediately. It does not report an error of its
// own; normally Errorf has been called first.
func (c *Context) FailNow() {
	panic(c)
}

// Skip stops the test immediately without failing it.
func (c *Context) Skip() {
	c.skipped = true
	panic(c)
}

func (c *Context) SkipWithReason(reason string) {
	c.skipReason = reason
	c.Skip()
}

// Debug writes a message to the test's captured debug output.
func (c *Context) Debug(message string, args ...interface{}) {
	c.debugLogger.Printf(message, args...)
}

// DebugLogger returns a Logger that writes to the test's captured debug
// output, for handing to components that want to log on the test's behalf.
func (c *Context) DebugLogger() Logger {
	return &c.debugLogger
}

// reformatError tidies up assertion failures for console output. testify's
// helpers produce heavily indented multi-line messages including an error
// trace that is useless here, so the trace is dropped, the field labels are
// stripped, and the remaining lines are de-indented.
func reformatError(err error) error {
	lines := strings.Split(err.Error(), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		switch {
		case trimmed == "":
			continue
		case strings.HasPrefix(trimmed, "Error Trace:"):
			continue
		case strings.HasPrefix(trimmed, "Test:"):
			continue
		case strings.HasPrefix(trimmed, "Error:"):
			trimmed = strings.TrimLeft(strings.TrimPrefix(trimmed, "Error:"), " \t")
		case strings.HasPrefix(trimmed, "Messages:"):
			trimmed = strings.TrimLeft(strings.TrimPrefix(trimmed, "Messages:"), " \t")
		}
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return err
	}
	return errors.New(strings.Join(out, "\n"))
}
