// Package schema compiles JSON Schema documents and validates decoded
// JSON against them.
package schema

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	// ErrCompile indicates a schema that could not be compiled.
	ErrCompile = errors.New("schema: compile error")

	// ErrValidate indicates a document that does not satisfy the schema.
	ErrValidate = errors.New("schema: document does not validate")
)

// resourceURL names in-memory schemas in compiler error locations.
const resourceURL = "schema.json"

// Compile builds a schema from raw JSON source held in memory.
func Compile(source []byte) (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(resourceURL, bytes.NewReader(source)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCompile, err)
	}

	compiled, err := compiler.Compile(resourceURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCompile, err)
	}

	return compiled, nil
}

// CompileFile builds a schema from a file path or file URL.
func CompileFile(path string) (*jsonschema.Schema, error) {
	compiled, err := jsonschema.Compile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCompile, err)
	}

	return compiled, nil
}

// Validate checks a decoded document against a compiled schema. Validation
// failures collapse the error cause tree into one line per failing leaf.
func Validate(compiled *jsonschema.Schema, doc any) error {
	err := compiled.Validate(doc)
	if err == nil {
		return nil
	}

	var validationErr *jsonschema.ValidationError
	if errors.As(err, &validationErr) {
		return fmt.Errorf("%w: %s", ErrValidate, flatten(validationErr))
	}

	return fmt.Errorf("%w: %v", ErrValidate, err)
}

// flatten renders the leaf causes of a validation error as
// "instanceLocation: message" joined with semicolons.
func flatten(validationErr *jsonschema.ValidationError) string {
	leaves := leafCauses(validationErr)

	parts := make([]string, 0, len(leaves))
	for _, leaf := range leaves {
		location := leaf.InstanceLocation
		if location == "" {
			location = "/"
		}
		parts = append(parts, fmt.Sprintf("%s: %s", location, leaf.Message))
	}

	return strings.Join(parts, "; ")
}

func leafCauses(validationErr *jsonschema.ValidationError) []*jsonschema.ValidationError {
	if len(validationErr.Causes) == 0 {
		return []*jsonschema.ValidationError{validationErr}
	}

	var leaves []*jsonschema.ValidationError
	for _, cause := range validationErr.Causes {
		leaves = append(leaves, leafCauses(cause)...)
	}

	return leaves
}
