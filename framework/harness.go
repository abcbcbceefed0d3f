package framework

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Harness represents the server under test during a run of the suite. It
// holds the base URL that all resource API paths are relative to, and the
// HTTP client that the tests share.
type Harness struct {
	baseURL    string
	httpClient *http.Client
	logger     Logger
}

// NewHarness validates the base URL and waits until the server under test
// answers HTTP requests there. Any response counts regardless of its status
// code, since this is only about reachability; a server that has nothing
// mounted at the base URL itself will typically answer 404. If the server
// does not answer within the timeout, the last connection error is returned.
func NewHarness(
	baseURL string,
	awaitTimeout time.Duration,
	debugLogger Logger,
	startupOutput io.Writer,
) (*Harness, error) {
	if debugLogger == nil {
		debugLogger = NullLogger()
	}

	normalized, err := normalizeBaseURL(baseURL)
	if err != nil {
		return nil, err
	}

	h := &Harness{
		baseURL:    normalized,
		httpClient: &http.Client{},
		logger:     debugLogger,
	}
	if err := h.awaitServer(awaitTimeout, startupOutput); err != nil {
		return nil, err
	}
	return h, nil
}

// normalizeBaseURL rejects anything that is not an absolute http or https
// URL and strips any trailing slash, so that request paths can simply be
// appended.
func normalizeBaseURL(baseURL string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("invalid base URL %q: must be an absolute http or https URL", baseURL)
	}
	return strings.TrimRight(u.String(), "/"), nil
}

func (h *Harness) awaitServer(timeout time.Duration, output io.Writer) error {
	fmt.Fprintf(output, "Connecting to the server under test at %s", h.baseURL)

	deadline := time.Now().Add(timeout)
	for {
		fmt.Fprintf(output, ".")
		resp, err := h.httpClient.Get(h.baseURL)
		if err == nil {
			fmt.Fprintln(output)
			fmt.Fprintf(output, "Server answered with HTTP %d\n", resp.StatusCode)
			resp.Body.Close()
			return nil
		}
		h.logger.Printf("Server not answering yet: %s", err)
		if !time.Now().Before(deadline) {
			fmt.Fprintln(output)
			return fmt.Errorf("timed out waiting for the server, result of last request was: %w", err)
		}
		time.Sleep(time.Millisecond * 100)
	}
}

// BaseURL returns the base URL of the server under test, normalized to have
// no trailing slash.
func (h *Harness) BaseURL() string {
	return h.baseURL
}

// HTTPClient returns the HTTP client used for talking to the server.
func (h *Harness) HTTPClient() *http.Client {
	return h.httpClient
}
