package resourcetests

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// DoConnectionTests is step 1: the server answers HTTP requests at the base
// URL. Nothing about resources yet; a brand new implementation passes this
// group as soon as it serves anything at all.
func DoConnectionTests(t *T) {
	t.Run("the server answers requests at the base URL", func(t *T) {
		resp, err := t.Client().DoRaw("GET", "", "", nil)
		require.NoError(t, err, "the server under test is not reachable")
		t.Debug("base URL answered with HTTP %d", resp.Status)
	})

	t.Run("unknown paths below the base URL are client errors", func(t *T) {
		resp, err := t.Client().DoRaw("GET", "/there-is-no-such-path", "", nil)
		require.NoError(t, err, "the server under test is not reachable")
		assert.True(t, resp.Status >= 400 && resp.Status <= 499,
			"expected a 4xx status for an unknown path, got HTTP %d", resp.Status)
	})
}
