package framework

import (
	"bytes"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/launchdarkly/go-test-helpers/v2/httphelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHarnessWaitsForAnyResponseFromTheServer(t *testing.T) {
	// A 404 at the bare base URL is what a fresh server normally answers,
	// and it must count as "reachable".
	httphelpers.WithServer(httphelpers.HandlerWithStatus(404), func(server *httptest.Server) {
		var output bytes.Buffer
		h, err := NewHarness(server.URL+"/v1/", time.Second, nil, &output)

		require.NoError(t, err)
		assert.Equal(t, server.URL+"/v1", h.BaseURL())
		assert.NotNil(t, h.HTTPClient())
		assert.Contains(t, output.String(), "HTTP 404")
	})
}

func TestNewHarnessTimesOutWhenTheServerNeverAnswers(t *testing.T) {
	server := httptest.NewServer(httphelpers.HandlerWithStatus(200))
	server.Close()

	_, err := NewHarness(server.URL, time.Millisecond*200, nil, io.Discard)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "timed out")
}

func TestNewHarnessRejectsUnusableBaseURLs(t *testing.T) {
	for _, badURL := range []string{"", "localhost:8080", "ftp://localhost/v1", "/v1/", "::?"} {
		_, err := NewHarness(badURL, time.Second, nil, io.Discard)
		assert.Error(t, err, "URL %q should have been rejected", badURL)
	}
}
