package framework

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testIDOf(path ...string) TestID {
	return TestID{Path: path}
}

func TestRegexFiltersMatchAgainstFullTestPath(t *testing.T) {
	var filters RegexFilters
	require.NoError(t, filters.MustMatch.Set("step2"))

	assert.True(t, filters.AsFilter(testIDOf("step2 create")))
	assert.True(t, filters.AsFilter(testIDOf("step2 create", "ids are unique")))
	assert.False(t, filters.AsFilter(testIDOf("step5 update")))
}

func TestRegexFiltersExcludeByPattern(t *testing.T) {
	var filters RegexFilters
	require.NoError(t, filters.MustNotMatch.Set("unknown id"))

	assert.True(t, filters.AsFilter(testIDOf("step3 fetch", "a created resource can be fetched")))
	assert.False(t, filters.AsFilter(testIDOf("step3 fetch", "fetching an unknown id reports not found")))
}

func TestRegexFiltersWithNoPatternsMatchEverything(t *testing.T) {
	var filters RegexFilters
	assert.True(t, filters.AsFilter(testIDOf("anything at all")))
}

func TestRegexListRejectsInvalidPattern(t *testing.T) {
	var list RegexList
	assert.Error(t, list.Set("("))
	assert.False(t, list.IsDefined())
}

func TestRegexListDescribesItsPatterns(t *testing.T) {
	var list RegexList
	require.NoError(t, list.Set("a"))
	require.NoError(t, list.Set("b"))
	assert.Equal(t, `"a" or "b"`, list.String())
}

func TestStepSelectionZeroValueIncludesEveryStep(t *testing.T) {
	var sel StepSelection
	assert.False(t, sel.IsDefined())
	for step := 1; step <= 10; step++ {
		assert.True(t, sel.Includes(step))
	}
}

func TestStepSelectionIsCumulative(t *testing.T) {
	var sel StepSelection
	require.NoError(t, sel.Set("step3"))

	assert.True(t, sel.IsDefined())
	assert.Equal(t, 3, sel.Step())
	assert.True(t, sel.Includes(1))
	assert.True(t, sel.Includes(2))
	assert.True(t, sel.Includes(3))
	assert.False(t, sel.Includes(4))
	assert.Equal(t, "step3", sel.String())
}

func TestStepSelectionOnlyFormSelectsASingleStep(t *testing.T) {
	var sel StepSelection
	require.NoError(t, sel.Set("step3only"))

	assert.False(t, sel.Includes(1))
	assert.False(t, sel.Includes(2))
	assert.True(t, sel.Includes(3))
	assert.False(t, sel.Includes(4))
	assert.Equal(t, "step3only", sel.String())
}

func TestStepSelectionRejectsUnsupportedValues(t *testing.T) {
	for _, value := range []string{"", "3", "step", "step0", "stepx", "Step3", "step3ONLY", "step-1", "onlystep3"} {
		var sel StepSelection
		assert.Error(t, sel.Set(value), "value %q should have been rejected", value)
		assert.False(t, sel.IsDefined())
	}
}

func TestStepSelectionCanBeSetMoreThanOnce(t *testing.T) {
	var sel StepSelection
	require.NoError(t, sel.Set("step2"))
	require.NoError(t, sel.Set("step5only"))

	assert.False(t, sel.Includes(2))
	assert.True(t, sel.Includes(5))
}
