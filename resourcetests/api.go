package resourcetests

import (
	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/schul-cloud/resources-contract-tests/client"
	"github.com/schul-cloud/resources-contract-tests/framework"
	"github.com/schul-cloud/resources-contract-tests/schema"
)

// T represents a test or subtest in the conformance suite.
//
// It implements the same basic functionality as Go's testing.T, but outside
// of the Go test runner, with extra features such as debug logging that is
// captured per test. Those mechanisms come from the framework package; this
// type adds the domain on top. Every T carries a resource API client that
// is pointed at the server under test and wired to the test's debug log,
// plus Require methods for the interactions most tests start with.
//
// To make test assertions, use the assert and require packages, passing the
// *T as if it were a *testing.T.
type T struct {
	context *framework.Context
	harness *framework.Harness
	client  *client.ResourceClient
}

func newTestScope(context *framework.Context, harness *framework.Harness) *T {
	return &T{
		context: context,
		harness: harness,
		client:  client.New(harness.BaseURL(), harness.HTTPClient(), context.DebugLogger()),
	}
}

// Errorf is called by assertions to log a test failure. It does not cause
// the test to exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

// FailNow is called by assertions when a test should fail and immediately
// exit. The methods in the require package call FailNow.
func (t *T) FailNow() {
	t.context.FailNow()
}

// Run runs a subtest, like the Run method of testing.T. The subtest gets a
// fresh T with its own client and its own debug log.
func (t *T) Run(name string, action func(*T)) {
	t.context.Run(name, func(c *framework.Context) {
		action(newTestScope(c, t.harness))
	})
}

// Debug writes to the test's debug log. The output is shown or discarded
// depending on the test outcome and the -debug/-debug-all options.
func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

// Client returns the resource API client for this test.
func (t *T) Client() *client.ResourceClient {
	return t.client
}

// RequireCreated posts a document to the collection and fails the test
// immediately unless the server accepts it and reports an id.
func (t *T) RequireCreated(attributes ldvalue.Value) client.Resource {
	res, err := t.client.Create(attributes)
	require.NoError(t, err, "could not create a resource")
	require.NotEmpty(t, res.ID, "server accepted the resource but did not report an id")
	return res
}

// RequireFetched fails the test immediately unless the resource with the
// given id can be fetched.
func (t *T) RequireFetched(id string) client.Resource {
	res, err := t.client.Get(id)
	require.NoError(t, err, "could not fetch resource %q", id)
	return res
}

// RequireListed fails the test immediately unless the collection can be
// listed.
func (t *T) RequireListed() []client.Resource {
	resources, err := t.client.List()
	require.NoError(t, err, "could not list the collection")
	return resources
}

// RequireNotFound fails the test immediately unless err says the server
// answered with HTTP 404.
func (t *T) RequireNotFound(err error) {
	require.Error(t, err, "expected a not-found answer, got a success")
	var statusErr *client.StatusError
	require.ErrorAs(t, err, &statusErr, "expected an HTTP error status, got: %s", err)
	require.Equal(t, 404, statusErr.StatusCode, "expected HTTP 404")
}

// RequireRejectedAsInvalid fails the test immediately unless err says the
// server answered with HTTP 422, the status for documents that violate the
// resource schema.
func (t *T) RequireRejectedAsInvalid(err error) *client.StatusError {
	require.Error(t, err, "expected the document to be rejected, got a success")
	var statusErr *client.StatusError
	require.ErrorAs(t, err, &statusErr, "expected an HTTP error status, got: %s", err)
	require.Equal(t, 422, statusErr.StatusCode, "expected HTTP 422 for a non-conforming document")
	return statusErr
}

// RequireConformingDocument fails the test immediately unless the document
// conforms to the bundled resource schema. Servers are free to store more
// than the suite posts, but never anything the schema would reject.
func (t *T) RequireConformingDocument(attributes ldvalue.Value) {
	err := schema.Validate([]byte(attributes.JSONString()))
	require.NoError(t, err, "server handed out a document that does not conform to the resource schema")
}
