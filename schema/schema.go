// Package schema bundles the JSON schema that all resource documents must
// conform to, together with example documents, and performs the validation
// itself. The schema and the examples are embedded in the binary so that the
// test suite and the reference server always agree on the contract.
package schema

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed resource.json
var resourceSchemaJSON []byte

//go:embed examples/valid examples/invalid
var examplesFS embed.FS

var resourceSchema = mustCompileSchema()

func mustCompileSchema() *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(resourceSchemaJSON))
	if err != nil {
		panic(fmt.Sprintf("schema: embedded resource schema does not compile: %s", err))
	}
	return s
}

// Issue is one schema violation within a document.
type Issue struct {
	Field       string
	Description string
}

// ValidationError is returned by Validate when a document does not conform
// to the resource schema. It lists every violation that was found, sorted by
// field so the order is deterministic.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Field, issue.Description))
	}
	return "document does not conform to the resource schema: " + strings.Join(parts, "; ")
}

// Validate checks a resource document, given as raw JSON, against the
// bundled schema. It returns nil for a conforming document and a
// *ValidationError for a document that parses but does not conform. Input
// that is not parseable JSON at all yields an ordinary error.
func Validate(document []byte) error {
	result, err := resourceSchema.Validate(gojsonschema.NewBytesLoader(document))
	if err != nil {
		return fmt.Errorf("cannot validate document: %w", err)
	}
	if result.Valid() {
		return nil
	}
	verr := &ValidationError{}
	for _, re := range result.Errors() {
		verr.Issues = append(verr.Issues, Issue{Field: re.Field(), Description: re.Description()})
	}
	sort.Slice(verr.Issues, func(i, j int) bool {
		if verr.Issues[i].Field != verr.Issues[j].Field {
			return verr.Issues[i].Field < verr.Issues[j].Field
		}
		return verr.Issues[i].Description < verr.Issues[j].Description
	})
	return verr
}

// Example is one of the bundled example documents.
type Example struct {
	Name     string
	Document []byte
}

// ValidExamples returns the bundled documents that conform to the schema,
// in name order.
func ValidExamples() []Example {
	return loadExamples("examples/valid")
}

// InvalidExamples returns the bundled documents that each violate the schema
// in some way, in name order.
func InvalidExamples() []Example {
	return loadExamples("examples/invalid")
}

func loadExamples(dir string) []Example {
	entries, err := examplesFS.ReadDir(dir)
	if err != nil {
		panic(fmt.Sprintf("schema: cannot read embedded examples: %s", err))
	}
	examples := make([]Example, 0, len(entries))
	for _, entry := range entries {
		data, err := examplesFS.ReadFile(path.Join(dir, entry.Name()))
		if err != nil {
			panic(fmt.Sprintf("schema: cannot read embedded example %s: %s", entry.Name(), err))
		}
		examples = append(examples, Example{
			Name:     strings.TrimSuffix(entry.Name(), ".json"),
			Document: data,
		})
	}
	return examples
}
