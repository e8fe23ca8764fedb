package suite

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/goccy/go-yaml"

	"github.com/jacoelho/jsonv/internal/call"
)

// Convert maps one case group onto calls, one validate_jsonschema call
// per test. The document and the schema travel as compact JSON text so
// the generated file has no dependency on the case file. Tests expecting
// an invalid document become calls marked expect_error.
func Convert(group Group) ([]call.Call, error) {
	schemaText, err := compactJSON(group.Schema)
	if err != nil {
		return nil, fmt.Errorf("schema: %w", err)
	}

	calls := make([]call.Call, 0, len(group.Tests))
	for index, test := range group.Tests {
		dataText, err := compactJSON(test.Data)
		if err != nil {
			return nil, fmt.Errorf("test %d (%s): %w", index+1, test.Description, err)
		}

		calls = append(calls, call.Call{
			Keyword: "validate_jsonschema",
			Args: []call.Arg{
				{Literal: dataText},
				{Literal: schemaText},
			},
			ExpectError: !test.Valid,
		})
	}

	return calls, nil
}

// Encode renders calls as call file YAML.
func Encode(calls []call.Call) ([]byte, error) {
	payload, err := yaml.Marshal(calls)
	if err != nil {
		return nil, fmt.Errorf("encode YAML: %w", err)
	}

	return payload, nil
}

func compactJSON(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", fmt.Errorf("%w: missing JSON value", ErrDecode)
	}

	var buffer bytes.Buffer
	if err := json.Compact(&buffer, raw); err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecode, err)
	}

	return buffer.String(), nil
}
