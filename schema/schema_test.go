package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBundledValidExamplesConformToTheSchema(t *testing.T) {
	examples := ValidExamples()
	require.NotEmpty(t, examples)
	for _, ex := range examples {
		assert.NoError(t, Validate(ex.Document), "example %q", ex.Name)
	}
}

func TestBundledInvalidExamplesAreRejected(t *testing.T) {
	examples := InvalidExamples()
	require.NotEmpty(t, examples)
	for _, ex := range examples {
		err := Validate(ex.Document)
		require.Error(t, err, "example %q", ex.Name)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, "example %q", ex.Name)
		assert.NotEmpty(t, verr.Issues, "example %q", ex.Name)
	}
}

func TestValidateReportsAMissingRequiredProperty(t *testing.T) {
	err := Validate([]byte(`{
		"url": "https://example.org/",
		"licenses": [],
		"mimeType": "text/html",
		"contentCategory": "learning-object",
		"languages": ["en"]
	}`))

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Issues, 1)
	assert.Contains(t, verr.Issues[0].Description, "title")
}

func TestValidateRejectsUnknownProperties(t *testing.T) {
	err := Validate([]byte(`{
		"title": "Example website",
		"url": "https://example.org/",
		"licenses": [],
		"mimeType": "text/html",
		"contentCategory": "learning-object",
		"languages": ["en"],
		"favoriteColor": "green"
	}`))

	assert.Error(t, err)
}

func TestValidateRejectsNonObjectDocuments(t *testing.T) {
	for _, doc := range []string{`"hello"`, `[]`, `42`, `null`} {
		err := Validate([]byte(doc))
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, "document %s", doc)
	}
}

func TestValidateFailsCleanlyOnUnparseableInput(t *testing.T) {
	err := Validate([]byte(`{`))
	require.Error(t, err)
	var verr *ValidationError
	assert.False(t, errors.As(err, &verr), "a parse failure is not a validation error")
}
