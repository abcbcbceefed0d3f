// Package client is the HTTP client side of the conformance suite: a typed
// view of the resources API for the tests to drive, plus a raw escape hatch
// for the tests that deliberately send broken payloads.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/schul-cloud/resources-contract-tests/framework"
	"github.com/schul-cloud/resources-contract-tests/jsonapi"
)

// Resource is one resource as the server reported it: the id plus the
// document, parsed into an ldvalue.Value so tests can compare documents
// structurally and reach into individual fields.
type Resource struct {
	ID         string
	Attributes ldvalue.Value
}

// RawResponse is the unjudged result of a request: whatever status, headers
// and body came back.
type RawResponse struct {
	Status int
	Header http.Header
	Body   []byte
}

// StatusError is returned by the typed client methods when the server
// answers with a non-2xx status. If the body parsed as a JSON:API error
// document, Errors carries its entries; Body always has the raw bytes.
type StatusError struct {
	StatusCode int
	Errors     []jsonapi.ErrorObject
	Body       []byte
}

func (e *StatusError) Error() string {
	if len(e.Errors) > 0 && e.Errors[0].Title != "" {
		return fmt.Sprintf("server answered HTTP %d: %s", e.StatusCode, e.Errors[0].Title)
	}
	return fmt.Sprintf("server answered HTTP %d", e.StatusCode)
}

// ResourceClient talks to one resources API. All paths are relative to the
// base URL, which must already be normalized to have no trailing slash.
type ResourceClient struct {
	baseURL    string
	httpClient *http.Client
	logger     framework.Logger
}

// New creates a client. A nil httpClient selects http.DefaultClient, and a
// nil logger discards the request/response log.
func New(baseURL string, httpClient *http.Client, logger framework.Logger) *ResourceClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = framework.NullLogger()
	}
	return &ResourceClient{baseURL: baseURL, httpClient: httpClient, logger: logger}
}

// List fetches the whole collection.
func (c *ResourceClient) List() ([]Resource, error) {
	resp, err := c.DoRaw("GET", "/resources", "", nil)
	if err != nil {
		return nil, err
	}
	if err := expectSuccess(resp); err != nil {
		return nil, err
	}

	var envelope struct {
		Data *json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(resp.Body, &envelope); err != nil {
		return nil, fmt.Errorf("malformed response from server: %s", err)
	}
	if envelope.Data == nil {
		return nil, fmt.Errorf(`malformed response from server: missing "data" member`)
	}
	var items []jsonapi.ResourceObject
	if err := json.Unmarshal(*envelope.Data, &items); err != nil {
		return nil, fmt.Errorf(`malformed response from server: "data" is not an array of resources: %s`, err)
	}

	resources := make([]Resource, 0, len(items))
	for i, item := range items {
		if item.Type != jsonapi.TypeResource {
			return nil, fmt.Errorf("malformed response from server: list entry %d has type %q, expected %q",
				i, item.Type, jsonapi.TypeResource)
		}
		if len(item.Attributes) == 0 {
			return nil, fmt.Errorf("malformed response from server: list entry %d has no attributes", i)
		}
		resources = append(resources, Resource{ID: item.ID, Attributes: ldvalue.Parse(item.Attributes)})
	}
	return resources, nil
}

// Get fetches one resource by id.
func (c *ResourceClient) Get(id string) (Resource, error) {
	resp, err := c.DoRaw("GET", resourcePath(id), "", nil)
	if err != nil {
		return Resource{}, err
	}
	if err := expectSuccess(resp); err != nil {
		return Resource{}, err
	}
	return parseResource(resp)
}

// Create posts a new resource document and returns the stored resource as
// the server reported it, including the id the server assigned.
func (c *ResourceClient) Create(attributes ldvalue.Value) (Resource, error) {
	body, err := encodeDocument(attributes)
	if err != nil {
		return Resource{}, err
	}
	resp, err := c.DoRaw("POST", "/resources", jsonapi.ContentType, body)
	if err != nil {
		return Resource{}, err
	}
	if err := expectSuccess(resp); err != nil {
		return Resource{}, err
	}
	return parseResource(resp)
}

// Update replaces the document stored under an existing id.
func (c *ResourceClient) Update(id string, attributes ldvalue.Value) (Resource, error) {
	body, err := encodeDocument(attributes)
	if err != nil {
		return Resource{}, err
	}
	resp, err := c.DoRaw("PUT", resourcePath(id), jsonapi.ContentType, body)
	if err != nil {
		return Resource{}, err
	}
	if err := expectSuccess(resp); err != nil {
		return Resource{}, err
	}
	return parseResource(resp)
}

// Delete removes one resource.
func (c *ResourceClient) Delete(id string) error {
	resp, err := c.DoRaw("DELETE", resourcePath(id), "", nil)
	if err != nil {
		return err
	}
	return expectSuccess(resp)
}

// DeleteAll removes every resource in the collection.
func (c *ResourceClient) DeleteAll() error {
	resp, err := c.DoRaw("DELETE", "/resources", "", nil)
	if err != nil {
		return err
	}
	return expectSuccess(resp)
}

// DoRaw sends a single request with the given payload, exactly as provided,
// and returns whatever came back without judging the status code. An error
// means the request could not be completed at all.
func (c *ResourceClient) DoRaw(method, path, contentType string, body []byte) (RawResponse, error) {
	requestURL := c.baseURL + path
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequest(method, requestURL, reader)
	if err != nil {
		return RawResponse{}, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	c.logger.Printf("%s %s", method, requestURL)
	if body != nil {
		c.logger.Printf("  request body: %s", string(body))
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return RawResponse{}, err
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return RawResponse{}, err
	}
	if len(respBody) > 0 {
		c.logger.Printf("  response: HTTP %d, body: %s", resp.StatusCode, string(respBody))
	} else {
		c.logger.Printf("  response: HTTP %d", resp.StatusCode)
	}

	return RawResponse{Status: resp.StatusCode, Header: resp.Header, Body: respBody}, nil
}

func resourcePath(id string) string {
	return "/resources/" + url.PathEscape(id)
}

func encodeDocument(attributes ldvalue.Value) ([]byte, error) {
	attrs, err := json.Marshal(attributes)
	if err != nil {
		return nil, err
	}
	return json.Marshal(jsonapi.Document{Data: &jsonapi.ResourceObject{
		Type:       jsonapi.TypeResource,
		Attributes: attrs,
	}})
}

func parseResource(resp RawResponse) (Resource, error) {
	doc, err := jsonapi.DecodeDocument(resp.Body)
	if err != nil {
		return Resource{}, fmt.Errorf("malformed response from server: %s", err)
	}
	return Resource{ID: doc.Data.ID, Attributes: ldvalue.Parse(doc.Data.Attributes)}, nil
}

func expectSuccess(resp RawResponse) error {
	if resp.Status < 200 || resp.Status >= 300 {
		se := &StatusError{StatusCode: resp.Status, Body: resp.Body}
		var errDoc jsonapi.ErrorDocument
		if err := json.Unmarshal(resp.Body, &errDoc); err == nil {
			se.Errors = errDoc.Errors
		}
		return se
	}
	return nil
}
