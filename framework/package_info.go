// Package framework contains the low-level implementation of test harness
// infrastructure that can be reused for different kinds of tests.
//
// The general model is:
//
// 1. The harness points at a server under test, identified by a base URL on
// the command line. It verifies once at startup that the server answers HTTP
// requests there, and after that it only holds the URL and a shared HTTP
// client; all further traffic is initiated by individual tests.
//
// 2. There is a general notion of a test context which is similar to Go's
// *testing.T, allowing pieces of test logic to be associated with a test
// identifier and to accumulate success/failure results.
//
// 3. Tests can be deselected either by name, with regex filters, or by step
// group, with a StepSelection; both come straight from command line flags.
//
// The domain-specific code that knows what is being tested is responsible
// for the actual requests made to the server and for providing a
// domain-specific test API on top of the test context.
package framework
