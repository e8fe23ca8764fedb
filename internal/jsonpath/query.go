package jsonpath

import (
	"fmt"

	jp "github.com/theory/jsonpath"
)

// Query selects every value matching expr from decoded document data, in
// document order. The result is never nil: an expression that selects
// nothing yields an empty slice.
func Query(data any, expr string) ([]any, error) {
	normalized, err := Normalize(expr)
	if err != nil {
		return nil, err
	}

	path, err := jp.Parse(normalized)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid JSONPath %s: %v", ErrSyntax, expr, err)
	}

	results := path.Select(data)
	out := make([]any, 0, len(results))
	for _, result := range results {
		out = append(out, result)
	}

	return out, nil
}
