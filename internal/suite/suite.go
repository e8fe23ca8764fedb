// Package suite converts JSON Schema test suite case files into call
// files runnable by jsonv. A case file is a JSON array of groups, each
// holding one schema and the documents tested against it.
package suite

import (
	"encoding/json"
	"fmt"
	"io"
)

// ErrDecode indicates case file JSON decoding failures.
var ErrDecode = fmt.Errorf("case decode error")

// Group is one schema with its associated tests.
type Group struct {
	Description string          `json:"description"`
	Schema      json.RawMessage `json:"schema"`
	Tests       []Test          `json:"tests"`
}

// Test is a single document checked against the group schema.
type Test struct {
	Description string          `json:"description"`
	Data        json.RawMessage `json:"data"`
	Valid       bool            `json:"valid"`
}

// Parse reads a case file into its group list.
func Parse(r io.Reader) ([]Group, error) {
	decoder := json.NewDecoder(r)

	var groups []Group
	if err := decoder.Decode(&groups); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	return groups, nil
}
