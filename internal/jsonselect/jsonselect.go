// Package jsonselect evaluates CSS-like JSONSelect expressions against
// JSON documents. The underlying engine operates on document source text,
// so callers hold documents as strings here.
package jsonselect

import (
	"errors"
	"fmt"

	jsel "github.com/coddingtonbear/go-jsonselect"
)

var (
	// ErrSyntax indicates a selector the engine could not evaluate.
	ErrSyntax = errors.New("jsonselect: syntax error")

	// ErrDocument indicates document source the engine could not parse.
	ErrDocument = errors.New("jsonselect: invalid document")
)

// Query selects every value matching the selector from JSON document
// source, in document order. The result is never nil: a selector that
// matches nothing yields an empty slice.
func Query(source string, selector string) ([]any, error) {
	if selector == "" {
		return nil, fmt.Errorf("%w: selector cannot be empty", ErrSyntax)
	}

	parser, err := jsel.CreateParserFromString(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocument, err)
	}

	values, err := parser.GetValues(selector)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid selector %s: %v", ErrSyntax, selector, err)
	}

	out := make([]any, 0, len(values))
	out = append(out, values...)
	return out, nil
}
