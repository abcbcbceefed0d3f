package resourcetests

import (
	"sort"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schul-cloud/resources-contract-tests/client"
)

// DoListTests is step 4: the whole collection can be listed. Earlier groups
// may have left resources behind, and the suite may be rerun against a
// server that was not restarted in between, so these tests check that the
// listing contains what they created themselves rather than comparing the
// whole listing against an expected collection.
func DoListTests(t *T) {
	t.Run("created resources appear in the listing", func(t *T) {
		first := t.RequireCreated(minimalDocument())
		second := t.RequireCreated(withStringField(minimalDocument(), "title", "Listed resource "+randomSuffix()))

		listed := t.RequireListed()
		requireListedResource(t, listed, first)
		requireListedResource(t, listed, second)
	})

	t.Run("every listed entry is usable", func(t *T) {
		t.RequireCreated(minimalDocument())
		for i, res := range t.RequireListed() {
			assert.NotEmpty(t, res.ID, "listing entry %d has no id", i)
			t.RequireConformingDocument(res.Attributes)
		}
	})

	t.Run("listing twice without writes reports the same collection", func(t *T) {
		t.RequireCreated(minimalDocument())
		first := listedIDs(t.RequireListed())
		second := listedIDs(t.RequireListed())
		assert.Equal(t, first, second, "two listings with no writes in between disagree")
	})
}

// requireListedResource fails the test unless the listing contains the
// given resource with exactly the document it was created with.
func requireListedResource(t *T, listed []client.Resource, expected client.Resource) {
	for _, res := range listed {
		if res.ID == expected.ID {
			require.True(t, expected.Attributes.Equal(res.Attributes),
				"the listing carries a different document for id %q: expected %s, got %s",
				expected.ID, expected.Attributes.JSONString(), res.Attributes.JSONString())
			return
		}
	}
	require.Fail(t, "resource missing from listing",
		"id %q does not appear in a listing of %d resources", expected.ID, len(listed))
}

func listedIDs(resources []client.Resource) []string {
	ids := make([]string, 0, len(resources))
	for _, res := range resources {
		ids = append(ids, res.ID)
	}
	sort.Strings(ids)
	return ids
}
