package jsonv

import (
	"errors"
	"fmt"

	"github.com/jacoelho/jsonv/internal/dialect"
	"github.com/jacoelho/jsonv/internal/jsonpath"
)

// UpdateJSON replaces the value selected by a JSONPath expression and
// returns the document root. When the expression matches several
// elements, index picks one (zero-based, document order with object keys
// sorted). A decoded source structure is modified in place; source text
// is decoded first.
func UpdateJSON(source any, expr string, value any, index int) (any, error) {
	kind, err := dialect.Detect(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExpression, err)
	}
	if kind != dialect.KindPath {
		return nil, fmt.Errorf("%w: update requires a JSONPath expression, got %s", ErrExpression, expr)
	}

	decoded, err := ConvertToJSON(source)
	if err != nil {
		return nil, err
	}

	updated, err := jsonpath.Update(decoded, expr, index, value)
	if err != nil {
		switch {
		case errors.Is(err, jsonpath.ErrNotSupported):
			return nil, fmt.Errorf("%w: %v", ErrUnsupported, err)
		case errors.Is(err, jsonpath.ErrNoMatch):
			return nil, fmt.Errorf("%w: nothing found by the given JSONPath: %v", ErrAssertion, err)
		default:
			return nil, fmt.Errorf("%w: %v", ErrExpression, err)
		}
	}

	return updated, nil
}
