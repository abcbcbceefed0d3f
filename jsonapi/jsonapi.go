// Package jsonapi implements the small subset of the JSON:API document
// format that the resources API uses on the wire: single-resource documents,
// resource lists, and error documents.
package jsonapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
)

// TypeResource is the JSON:API type of every object exchanged by the API.
const TypeResource = "resource"

// ContentType is the MIME type sent with every response body.
const ContentType = "application/json"

// ResourceObject is the JSON:API representation of one resource: the server
// assigned id plus the document describing the learning material itself. The
// attributes are kept as raw JSON so that schema validation always sees
// exactly the bytes that went over the wire.
type ResourceObject struct {
	Type       string          `json:"type"`
	ID         string          `json:"id,omitempty"`
	Attributes json.RawMessage `json:"attributes"`
}

// Document is a JSON:API payload carrying a single resource.
type Document struct {
	Data *ResourceObject `json:"data"`
}

// ListDocument is a JSON:API payload carrying a list of resources.
type ListDocument struct {
	Data []ResourceObject `json:"data"`
}

// ErrorObject is one error in a JSON:API error document.
type ErrorObject struct {
	Status string       `json:"status"`
	Title  string       `json:"title"`
	Detail string       `json:"detail,omitempty"`
	Source *ErrorSource `json:"source,omitempty"`
}

// ErrorSource points at the part of the request document that an error
// refers to, as a JSON pointer.
type ErrorSource struct {
	Pointer string `json:"pointer,omitempty"`
}

// ErrorDocument is a JSON:API payload carrying errors instead of data.
type ErrorDocument struct {
	Errors []ErrorObject `json:"errors"`
}

// NewError builds an ErrorObject with the standard title for the given HTTP
// status code.
func NewError(status int, detail string) ErrorObject {
	return ErrorObject{
		Status: strconv.Itoa(status),
		Title:  http.StatusText(status),
		Detail: detail,
	}
}

// ErrInvalidDocument indicates that a request body was structurally not a
// resource document, as opposed to merely failing schema validation.
var ErrInvalidDocument = errors.New("not a valid resource document")

// DecodeDocument parses data as a single-resource document and checks the
// envelope: there must be a "data" object of type "resource" carrying an
// "attributes" member. The attributes themselves are not validated here;
// that is the schema's job.
func DecodeDocument(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDocument, err)
	}
	if doc.Data == nil {
		return nil, fmt.Errorf(`%w: missing "data" member`, ErrInvalidDocument)
	}
	if doc.Data.Type != TypeResource {
		return nil, fmt.Errorf(`%w: data type is %q, expected %q`, ErrInvalidDocument, doc.Data.Type, TypeResource)
	}
	if len(doc.Data.Attributes) == 0 || string(doc.Data.Attributes) == "null" {
		return nil, fmt.Errorf(`%w: missing "attributes" member`, ErrInvalidDocument)
	}
	return &doc, nil
}

// WriteResource writes a single-resource document with the given status.
func WriteResource(w http.ResponseWriter, status int, res ResourceObject) {
	writeJSON(w, status, Document{Data: &res})
}

// WriteList writes a resource-list document. A nil slice is written as an
// empty array rather than null, so an empty collection still lists cleanly.
func WriteList(w http.ResponseWriter, status int, resources []ResourceObject) {
	if resources == nil {
		resources = []ResourceObject{}
	}
	writeJSON(w, status, ListDocument{Data: resources})
}

// WriteError writes an error document with the given status.
func WriteError(w http.ResponseWriter, status int, errs ...ErrorObject) {
	writeJSON(w, status, ErrorDocument{Errors: errs})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", ContentType)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
