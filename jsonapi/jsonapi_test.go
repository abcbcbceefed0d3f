package jsonapi

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDocumentAcceptsAWellFormedResource(t *testing.T) {
	doc, err := DecodeDocument([]byte(`{"data":{"type":"resource","attributes":{"title":"hi"}}}`))

	require.NoError(t, err)
	assert.Equal(t, TypeResource, doc.Data.Type)
	assert.Equal(t, "", doc.Data.ID)
	assert.JSONEq(t, `{"title":"hi"}`, string(doc.Data.Attributes))
}

func TestDecodeDocumentKeepsTheID(t *testing.T) {
	doc, err := DecodeDocument([]byte(`{"data":{"type":"resource","id":"abc","attributes":{}}}`))

	require.NoError(t, err)
	assert.Equal(t, "abc", doc.Data.ID)
}

func TestDecodeDocumentRejectsBrokenEnvelopes(t *testing.T) {
	badDocuments := []string{
		``,
		`{`,
		`null`,
		`"just a string"`,
		`[]`,
		`{}`,
		`{"data":null}`,
		`{"data":[]}`,
		`{"data":"x"}`,
		`{"resource":{}}`,
		`{"data":{"type":"user","attributes":{}}}`,
		`{"data":{"type":"resource"}}`,
		`{"data":{"type":"resource","attributes":null}}`,
	}
	for _, body := range badDocuments {
		_, err := DecodeDocument([]byte(body))
		require.Error(t, err, "document %q should have been rejected", body)
		assert.ErrorIs(t, err, ErrInvalidDocument, "document %q", body)
	}
}

func TestWriteResourceProducesASingleResourceDocument(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteResource(rec, 201, ResourceObject{Type: TypeResource, ID: "a1", Attributes: json.RawMessage(`{"title":"x"}`)})

	assert.Equal(t, 201, rec.Code)
	assert.Equal(t, ContentType, rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"data":{"type":"resource","id":"a1","attributes":{"title":"x"}}}`, rec.Body.String())
}

func TestWriteListNeverWritesNullForAnEmptyCollection(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteList(rec, 200, nil)

	assert.Equal(t, 200, rec.Code)
	assert.JSONEq(t, `{"data":[]}`, rec.Body.String())
}

func TestWriteErrorProducesAnErrorDocument(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, 404, NewError(404, "no resource with id \"a1\""))

	assert.Equal(t, 404, rec.Code)
	assert.Equal(t, ContentType, rec.Header().Get("Content-Type"))
	assert.JSONEq(t,
		`{"errors":[{"status":"404","title":"Not Found","detail":"no resource with id \"a1\""}]}`,
		rec.Body.String())
}

func TestNewErrorUsesTheStandardStatusText(t *testing.T) {
	e := NewError(422, "bad document")
	assert.Equal(t, "422", e.Status)
	assert.Equal(t, "Unprocessable Entity", e.Title)
	assert.Equal(t, "bad document", e.Detail)
}
