package resourcetests

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// DoUpdateTests is step 5: the document under an existing id can be
// replaced with a new one.
func DoUpdateTests(t *T) {
	t.Run("the update response carries the new document", func(t *T) {
		created := t.RequireCreated(minimalDocument())
		newDoc := withStringField(minimalDocument(), "title", "Renamed resource")

		updated, err := t.Client().Update(created.ID, newDoc)
		require.NoError(t, err, "could not update resource %q", created.ID)
		assert.Equal(t, created.ID, updated.ID, "the update must not change the id")
		assert.True(t, newDoc.Equal(updated.Attributes),
			"expected the new document %s, got %s", newDoc.JSONString(), updated.Attributes.JSONString())
	})

	t.Run("an updated resource is returned on the next fetch", func(t *T) {
		created := t.RequireCreated(minimalDocument())
		newDoc := withStringField(minimalDocument(), "title", "Updated resource "+randomSuffix())
		_, err := t.Client().Update(created.ID, newDoc)
		require.NoError(t, err, "could not update resource %q", created.ID)

		fetched := t.RequireFetched(created.ID)
		assert.True(t, newDoc.Equal(fetched.Attributes),
			"expected the new document %s, got %s", newDoc.JSONString(), fetched.Attributes.JSONString())
	})

	t.Run("a full document swap survives the round trip", func(t *T) {
		docs := validDocuments()
		created := t.RequireCreated(docs[0].value)
		replacement := docs[len(docs)-1].value

		_, err := t.Client().Update(created.ID, replacement)
		require.NoError(t, err, "could not update resource %q", created.ID)

		fetched := t.RequireFetched(created.ID)
		assert.True(t, replacement.Equal(fetched.Attributes),
			"expected the new document %s, got %s", replacement.JSONString(), fetched.Attributes.JSONString())
	})

	t.Run("updating changes only the addressed resource", func(t *T) {
		first := t.RequireCreated(minimalDocument())
		second := t.RequireCreated(minimalDocument())

		_, err := t.Client().Update(first.ID, withStringField(minimalDocument(), "title", "Only the first one"))
		require.NoError(t, err, "could not update resource %q", first.ID)

		unchanged := t.RequireFetched(second.ID)
		assert.True(t, second.Attributes.Equal(unchanged.Attributes),
			"the update leaked into resource %q", second.ID)
	})

	t.Run("updating an unknown id reports not found", func(t *T) {
		_, err := t.Client().Update("does-not-exist-"+randomSuffix(), minimalDocument())
		t.RequireNotFound(err)
	})
}
