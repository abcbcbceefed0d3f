package resourcetests

import (
	"crypto/rand"
	"encoding/hex"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/schul-cloud/resources-contract-tests/schema"
)

// namedDocument is one of the example documents bundled with the schema,
// parsed into a value that tests can compare and rebuild.
type namedDocument struct {
	name  string
	value ldvalue.Value
}

func exampleDocuments(examples []schema.Example) []namedDocument {
	docs := make([]namedDocument, 0, len(examples))
	for _, ex := range examples {
		docs = append(docs, namedDocument{name: ex.Name, value: ldvalue.Parse(ex.Document)})
	}
	return docs
}

func validDocuments() []namedDocument {
	return exampleDocuments(schema.ValidExamples())
}

func invalidDocuments() []namedDocument {
	return exampleDocuments(schema.InvalidExamples())
}

// minimalDocument returns the simplest valid resource document, for tests
// that just need some conforming document to work with.
func minimalDocument() ldvalue.Value {
	for _, doc := range validDocuments() {
		if doc.name == "minimal" {
			return doc.value
		}
	}
	panic("bundled examples do not include minimal.json")
}

// withStringField returns a copy of an object document with one string
// field set to a new value.
func withStringField(doc ldvalue.Value, field string, value string) ldvalue.Value {
	b := ldvalue.ObjectBuild()
	for _, key := range doc.Keys() {
		b.Set(key, doc.GetByKey(key))
	}
	b.Set(field, ldvalue.String(value))
	return b.Build()
}

// randomSuffix makes ids and titles unique so that reruns against the same
// server, without a restart in between, cannot collide with leftovers.
func randomSuffix() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b)
}
