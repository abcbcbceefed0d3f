package client

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

func newClientForServer(server *httptest.Server) *ResourceClient {
	return New(server.URL+"/v1", server.Client(), nil)
}

func jsonHeaders() http.Header {
	h := make(http.Header)
	h.Set("Content-Type", "application/json")
	return h
}

func parseValue(s string) ldvalue.Value {
	return ldvalue.Parse([]byte(s))
}

func TestCreateSendsAResourceDocumentAndParsesTheResponse(t *testing.T) {
	responseBody := []byte(`{"data":{"type":"resource","id":"r-1","attributes":{"title":"x"}}}`)
	handler, requests := httphelpers.RecordingHandler(httphelpers.HandlerWithResponse(201, jsonHeaders(), responseBody))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		c := newClientForServer(server)
		res, err := c.Create(parseValue(`{"title":"x"}`))

		require.NoError(t, err)
		assert.Equal(t, "r-1", res.ID)
		assert.JSONEq(t, `{"title":"x"}`, res.Attributes.JSONString())

		info := <-requests
		assert.Equal(t, "POST", info.Request.Method)
		assert.Equal(t, "/v1/resources", info.Request.URL.Path)
		assert.Equal(t, "application/json", info.Request.Header.Get("Content-Type"))
		assert.JSONEq(t, `{"data":{"type":"resource","attributes":{"title":"x"}}}`, string(info.Body))
	})
}

func TestCreateAcceptsAnySuccessStatus(t *testing.T) {
	responseBody := []byte(`{"data":{"type":"resource","id":"r-1","attributes":{"title":"x"}}}`)
	httphelpers.WithServer(httphelpers.HandlerWithResponse(200, jsonHeaders(), responseBody), func(server *httptest.Server) {
		_, err := newClientForServer(server).Create(parseValue(`{"title":"x"}`))
		assert.NoError(t, err)
	})
}

func TestGetRequestsTheResourcePath(t *testing.T) {
	responseBody := []byte(`{"data":{"type":"resource","id":"r-2","attributes":{"title":"y"}}}`)
	handler, requests := httphelpers.RecordingHandler(httphelpers.HandlerWithResponse(200, jsonHeaders(), responseBody))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		c := newClientForServer(server)
		res, err := c.Get("r-2")

		require.NoError(t, err)
		assert.Equal(t, "r-2", res.ID)

		info := <-requests
		assert.Equal(t, "GET", info.Request.Method)
		assert.Equal(t, "/v1/resources/r-2", info.Request.URL.Path)
	})
}

func TestGetEscapesTheIDInThePath(t *testing.T) {
	responseBody := []byte(`{"data":{"type":"resource","id":"a b","attributes":{"title":"y"}}}`)
	handler, requests := httphelpers.RecordingHandler(httphelpers.HandlerWithResponse(200, jsonHeaders(), responseBody))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		_, err := newClientForServer(server).Get("a b")

		require.NoError(t, err)
		info := <-requests
		assert.Equal(t, "/v1/resources/a b", info.Request.URL.Path)
		assert.Equal(t, "/v1/resources/a%20b", info.Request.URL.EscapedPath())
	})
}

func TestListParsesTheCollection(t *testing.T) {
	responseBody := []byte(`{"data":[
		{"type":"resource","id":"r-1","attributes":{"title":"a"}},
		{"type":"resource","id":"r-2","attributes":{"title":"b"}}
	]}`)
	httphelpers.WithServer(httphelpers.HandlerWithResponse(200, jsonHeaders(), responseBody), func(server *httptest.Server) {
		resources, err := newClientForServer(server).List()

		require.NoError(t, err)
		require.Len(t, resources, 2)
		assert.Equal(t, "r-1", resources[0].ID)
		assert.Equal(t, "r-2", resources[1].ID)
		assert.JSONEq(t, `{"title":"b"}`, resources[1].Attributes.JSONString())
	})
}

func TestListRejectsResponsesWithoutADataArray(t *testing.T) {
	badBodies := []string{`{}`, `{"data":null}`, `{"data":{"type":"resource"}}`, `[1,2,3]`, `garbage`}
	for _, body := range badBodies {
		httphelpers.WithServer(httphelpers.HandlerWithResponse(200, jsonHeaders(), []byte(body)), func(server *httptest.Server) {
			_, err := newClientForServer(server).List()
			require.Error(t, err, "body %q", body)
			assert.Contains(t, err.Error(), "malformed response", "body %q", body)
		})
	}
}

func TestListRejectsEntriesOfTheWrongType(t *testing.T) {
	responseBody := []byte(`{"data":[{"type":"banana","id":"r-1","attributes":{"title":"a"}}]}`)
	httphelpers.WithServer(httphelpers.HandlerWithResponse(200, jsonHeaders(), responseBody), func(server *httptest.Server) {
		_, err := newClientForServer(server).List()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "banana")
	})
}

func TestUpdateSendsPutWithTheNewDocument(t *testing.T) {
	responseBody := []byte(`{"data":{"type":"resource","id":"r-1","attributes":{"title":"new"}}}`)
	handler, requests := httphelpers.RecordingHandler(httphelpers.HandlerWithResponse(200, jsonHeaders(), responseBody))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		res, err := newClientForServer(server).Update("r-1", parseValue(`{"title":"new"}`))

		require.NoError(t, err)
		assert.JSONEq(t, `{"title":"new"}`, res.Attributes.JSONString())

		info := <-requests
		assert.Equal(t, "PUT", info.Request.Method)
		assert.Equal(t, "/v1/resources/r-1", info.Request.URL.Path)
		assert.JSONEq(t, `{"data":{"type":"resource","attributes":{"title":"new"}}}`, string(info.Body))
	})
}

func TestDeleteTreatsAnySuccessStatusAsSuccess(t *testing.T) {
	handler, requests := httphelpers.RecordingHandler(httphelpers.HandlerWithStatus(204))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		c := newClientForServer(server)

		require.NoError(t, c.Delete("r-1"))
		info := <-requests
		assert.Equal(t, "DELETE", info.Request.Method)
		assert.Equal(t, "/v1/resources/r-1", info.Request.URL.Path)

		require.NoError(t, c.DeleteAll())
		info = <-requests
		assert.Equal(t, "DELETE", info.Request.Method)
		assert.Equal(t, "/v1/resources", info.Request.URL.Path)
	})
}

func TestNonSuccessStatusBecomesStatusError(t *testing.T) {
	responseBody := []byte(`{"errors":[{"status":"404","title":"Not Found","detail":"no resource with id \"r-9\""}]}`)
	httphelpers.WithServer(httphelpers.HandlerWithResponse(404, jsonHeaders(), responseBody), func(server *httptest.Server) {
		_, err := newClientForServer(server).Get("r-9")

		var se *StatusError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, 404, se.StatusCode)
		require.Len(t, se.Errors, 1)
		assert.Equal(t, "Not Found", se.Errors[0].Title)
		assert.Contains(t, err.Error(), "404")
	})
}

func TestStatusErrorKeepsAnUnparseableBody(t *testing.T) {
	httphelpers.WithServer(httphelpers.HandlerWithResponse(500, nil, []byte("boom")), func(server *httptest.Server) {
		_, err := newClientForServer(server).Get("r-1")

		var se *StatusError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, 500, se.StatusCode)
		assert.Empty(t, se.Errors)
		assert.Equal(t, "boom", string(se.Body))
	})
}

func TestMalformedSingleResourceResponsesAreErrors(t *testing.T) {
	badBodies := []string{`{}`, `{"data":{"type":"banana","attributes":{}}}`, `{"data":{"type":"resource"}}`, `garbage`}
	for _, body := range badBodies {
		httphelpers.WithServer(httphelpers.HandlerWithResponse(200, jsonHeaders(), []byte(body)), func(server *httptest.Server) {
			_, err := newClientForServer(server).Get("r-1")
			require.Error(t, err, "body %q", body)
			assert.Contains(t, err.Error(), "malformed response", "body %q", body)
		})
	}
}

func TestDoRawHitsTheBaseURLWhenPathIsEmpty(t *testing.T) {
	handler, requests := httphelpers.RecordingHandler(httphelpers.HandlerWithStatus(404))
	httphelpers.WithServer(handler, func(server *httptest.Server) {
		resp, err := newClientForServer(server).DoRaw("GET", "", "", nil)

		require.NoError(t, err)
		assert.Equal(t, 404, resp.Status)
		info := <-requests
		assert.Equal(t, "/v1", info.Request.URL.Path)
	})
}

func TestTransportFailuresAreNotStatusErrors(t *testing.T) {
	httphelpers.WithServer(httphelpers.BrokenConnectionHandler(), func(server *httptest.Server) {
		_, err := newClientForServer(server).List()

		require.Error(t, err)
		var se *StatusError
		assert.False(t, errors.As(err, &se))
	})
}
