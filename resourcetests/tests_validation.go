package resourcetests

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// DoValidationTests is step 7: input that does not conform to the resource
// schema is rejected, and a rejection leaves the stored data exactly as it
// was.
func DoValidationTests(t *T) {
	t.Run("every bundled invalid example is rejected", func(t *T) {
		for _, doc := range invalidDocuments() {
			t.Run(doc.name, func(t *T) {
				_, err := t.Client().Create(doc.value)
				t.RequireRejectedAsInvalid(err)
			})
		}
	})

	t.Run("a rejected create leaves the collection unchanged", func(t *T) {
		before := listedIDs(t.RequireListed())
		for _, doc := range invalidDocuments() {
			_, err := t.Client().Create(doc.value)
			t.RequireRejectedAsInvalid(err)
		}
		after := listedIDs(t.RequireListed())
		assert.Equal(t, before, after, "rejected documents still changed the collection")
	})

	t.Run("a rejected update leaves the resource unchanged", func(t *T) {
		posted := minimalDocument()
		created := t.RequireCreated(posted)

		_, err := t.Client().Update(created.ID, invalidDocuments()[0].value)
		t.RequireRejectedAsInvalid(err)

		fetched := t.RequireFetched(created.ID)
		assert.True(t, posted.Equal(fetched.Attributes),
			"the rejected update still changed the stored document")
	})

	t.Run("rejections are machine readable", func(t *T) {
		_, err := t.Client().Create(invalidDocuments()[0].value)
		statusErr := t.RequireRejectedAsInvalid(err)
		assert.NotEmpty(t, statusErr.Errors, "the rejection body is not a parseable error document")
	})

	t.Run("bodies that are not resource documents are rejected", func(t *T) {
		badBodies := []string{
			`{"data": {"type": "resource", "attributes"`,
			`[]`,
			`{}`,
			`{"data": null}`,
			`{"data": {"type": "something-else", "attributes": {"title": "x"}}}`,
		}
		for _, body := range badBodies {
			resp, err := t.Client().DoRaw("POST", "/resources", "application/json", []byte(body))
			require.NoError(t, err, "the server under test is not reachable")
			assert.True(t, resp.Status >= 400 && resp.Status <= 499,
				"expected a 4xx status for body %q, got HTTP %d", body, resp.Status)
		}
	})
}
