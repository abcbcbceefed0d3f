package resourcetests

import (
	"github.com/stretchr/testify/assert"
)

// DoFetchTests is step 3: resources can be fetched individually under the
// id the server assigned to them.
func DoFetchTests(t *T) {
	t.Run("a created resource can be fetched", func(t *T) {
		posted := minimalDocument()
		created := t.RequireCreated(posted)

		fetched := t.RequireFetched(created.ID)
		assert.Equal(t, created.ID, fetched.ID, "the fetched resource reports a different id")
		assert.True(t, posted.Equal(fetched.Attributes),
			"expected the stored document %s, got %s", posted.JSONString(), fetched.Attributes.JSONString())
	})

	t.Run("every bundled valid example survives the round trip", func(t *T) {
		for _, doc := range validDocuments() {
			t.Run(doc.name, func(t *T) {
				created := t.RequireCreated(doc.value)
				fetched := t.RequireFetched(created.ID)
				assert.True(t, doc.value.Equal(fetched.Attributes),
					"expected the stored document %s, got %s", doc.value.JSONString(), fetched.Attributes.JSONString())
			})
		}
	})

	t.Run("fetched documents still conform to the schema", func(t *T) {
		created := t.RequireCreated(minimalDocument())
		t.RequireConformingDocument(t.RequireFetched(created.ID).Attributes)
	})

	t.Run("fetching an unknown id reports not found", func(t *T) {
		_, err := t.Client().Get("does-not-exist-" + randomSuffix())
		t.RequireNotFound(err)
	})
}
