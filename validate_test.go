package jsonv

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const personSchema = `{
  "type": "object",
  "properties": {
    "name": {"type": "string"},
    "age": {"type": "integer", "minimum": 0}
  },
  "required": ["name"]
}`

func TestValidateJSONSchema(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		source  any
		schema  string
		wantErr error
	}{
		{
			name:   "valid_text_document",
			source: `{"name": "Nigel Rees", "age": 60}`,
			schema: personSchema,
		},
		{
			name:   "valid_decoded_document",
			source: map[string]any{"name": "Nigel Rees"},
			schema: personSchema,
		},
		{
			name:    "document_rejected",
			source:  `{"age": -1}`,
			schema:  personSchema,
			wantErr: ErrSchemaValidation,
		},
		{
			name:    "schema_invalid",
			source:  `{}`,
			schema:  `{"type": "nope"}`,
			wantErr: ErrSchema,
		},
		{
			name:    "schema_not_json",
			source:  `{}`,
			schema:  `{not json`,
			wantErr: ErrSchema,
		},
		{
			name:    "document_not_json",
			source:  `{not json`,
			schema:  personSchema,
			wantErr: ErrParse,
		},
		{
			name:    "document_wrong_type",
			source:  42,
			schema:  personSchema,
			wantErr: ErrArgument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateJSONSchema(tt.source, tt.schema)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("ValidateJSONSchema() error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ValidateJSONSchema() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateJSONSchemaFromFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	schemaPath := filepath.Join(dir, "person.json")
	if err := os.WriteFile(schemaPath, []byte(personSchema), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	if err := ValidateJSONSchemaFromFile(`{"name": "Nigel Rees"}`, schemaPath); err != nil {
		t.Fatalf("ValidateJSONSchemaFromFile() error = %v", err)
	}

	err := ValidateJSONSchemaFromFile(`{"age": -1}`, schemaPath)
	if !errors.Is(err, ErrSchemaValidation) {
		t.Fatalf("ValidateJSONSchemaFromFile() error = %v, want ErrSchemaValidation", err)
	}

	err = ValidateJSONSchemaFromFile(`{}`, filepath.Join(dir, "missing.json"))
	if !errors.Is(err, ErrSchema) {
		t.Fatalf("ValidateJSONSchemaFromFile() error = %v, want ErrSchema", err)
	}
}
