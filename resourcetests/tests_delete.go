package resourcetests

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// DoDeleteTests is step 6: resources can be deleted, one at a time and all
// at once. Deleting the whole collection is part of the contract, which is
// one more reason the suite must only ever point at a server whose data may
// be thrown away.
func DoDeleteTests(t *T) {
	t.Run("a deleted resource is gone", func(t *T) {
		created := t.RequireCreated(minimalDocument())
		require.NoError(t, t.Client().Delete(created.ID), "could not delete resource %q", created.ID)

		_, err := t.Client().Get(created.ID)
		t.RequireNotFound(err)
	})

	t.Run("deleting an unknown id reports not found", func(t *T) {
		err := t.Client().Delete("does-not-exist-" + randomSuffix())
		t.RequireNotFound(err)
	})

	t.Run("deleting removes only the addressed resource", func(t *T) {
		first := t.RequireCreated(minimalDocument())
		second := t.RequireCreated(minimalDocument())
		require.NoError(t, t.Client().Delete(first.ID), "could not delete resource %q", first.ID)

		t.RequireFetched(second.ID)
	})

	t.Run("deleting the whole collection leaves it empty", func(t *T) {
		t.RequireCreated(minimalDocument())
		require.NoError(t, t.Client().DeleteAll(), "could not delete the whole collection")

		assert.Empty(t, t.RequireListed(), "the collection is not empty after deleting everything")
	})

	t.Run("create, fetch and delete round trip", func(t *T) {
		posted := minimalDocument()
		created := t.RequireCreated(posted)

		fetched := t.RequireFetched(created.ID)
		require.True(t, posted.Equal(fetched.Attributes),
			"expected the stored document %s, got %s", posted.JSONString(), fetched.Attributes.JSONString())

		require.NoError(t, t.Client().Delete(created.ID), "could not delete resource %q", created.ID)
		_, err := t.Client().Get(created.ID)
		t.RequireNotFound(err)
	})
}
