package resourcetests

import (
	"github.com/stretchr/testify/assert"
)

// DoCreateTests is step 2: documents can be posted to the collection. These
// tests only look at the creation response; reading the collection back
// comes in the later steps.
func DoCreateTests(t *T) {
	t.Run("a minimal valid resource can be created", func(t *T) {
		res := t.RequireCreated(minimalDocument())
		t.Debug("server assigned id %q", res.ID)
	})

	t.Run("every bundled valid example is accepted", func(t *T) {
		for _, doc := range validDocuments() {
			t.Run(doc.name, func(t *T) {
				t.RequireCreated(doc.value)
			})
		}
	})

	t.Run("the response echoes the posted document", func(t *T) {
		posted := minimalDocument()
		res := t.RequireCreated(posted)
		assert.True(t, posted.Equal(res.Attributes),
			"expected the posted document %s, got %s", posted.JSONString(), res.Attributes.JSONString())
	})

	t.Run("ids are unique across creations", func(t *T) {
		first := t.RequireCreated(minimalDocument())
		second := t.RequireCreated(minimalDocument())
		assert.NotEqual(t, first.ID, second.ID,
			"posting the same document twice must produce two distinct resources")
	})

	t.Run("created documents still conform to the schema", func(t *T) {
		res := t.RequireCreated(minimalDocument())
		t.RequireConformingDocument(res.Attributes)
	})
}
