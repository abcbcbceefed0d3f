// Package resourcetests contains the conformance tests for the resources
// API, organized into ordered step groups.
//
// The steps mirror how a server implementation is meant to be built up:
// step 1 only needs the server to answer HTTP requests at the base URL,
// step 2 adds creation, and so on up to schema validation in the final
// step. Each group gets by with the operations that earlier groups have
// already proven, so running a partial selection such as "-m step3" against
// a half-finished server gives a clean signal.
//
// There is no cleanup between tests. Tests may leave resources behind, may
// observe leftovers from earlier tests, and one group deletes the whole
// collection; the suite assumes it owns all of the data on the server it
// points at.
package resourcetests
