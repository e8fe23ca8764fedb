package jsonv

import (
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/jacoelho/jsonv/internal/schema"
)

// ValidateJSONSchema checks the document against a JSON Schema given as
// schema source text.
func ValidateJSONSchema(source any, schemaSource string) error {
	compiled, err := schema.Compile([]byte(schemaSource))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSchema, err)
	}

	return validateCompiled(source, compiled)
}

// ValidateJSONSchemaFromFile checks the document against a JSON Schema
// loaded from a file path.
func ValidateJSONSchemaFromFile(source any, schemaPath string) error {
	compiled, err := schema.CompileFile(schemaPath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSchema, err)
	}

	return validateCompiled(source, compiled)
}

func validateCompiled(source any, compiled *jsonschema.Schema) error {
	decoded, err := ConvertToJSON(source)
	if err != nil {
		return err
	}

	if err := schema.Validate(compiled, decoded); err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaValidation, err)
	}
	return nil
}
