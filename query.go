package jsonv

import (
	"errors"
	"fmt"

	"github.com/jacoelho/jsonv/internal/dialect"
	"github.com/jacoelho/jsonv/internal/jsonpath"
	"github.com/jacoelho/jsonv/internal/jsonselect"
)

// GetElements returns every element of the document matching the query
// expression. The expression dialect decides the engine: JSONPath
// expressions run against the decoded document, JSONSelect expressions
// against its source text. A query that matches nothing returns an empty,
// non-nil slice.
func GetElements(source any, expr string) ([]any, error) {
	kind, err := dialect.Detect(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExpression, err)
	}

	if kind == dialect.KindSelector {
		return selectFromSource(source, expr)
	}

	decoded, err := ConvertToJSON(source)
	if err != nil {
		return nil, err
	}

	elements, err := jsonpath.Query(decoded, expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExpression, err)
	}
	return elements, nil
}

// SelectElements returns every element matching the JSONSelect expression
// without dialect routing.
func SelectElements(source any, selector string) ([]any, error) {
	return selectFromSource(source, selector)
}

// ElementShouldExist fails with ErrAssertion when the expression matches
// nothing.
func ElementShouldExist(source any, expr string) error {
	elements, err := GetElements(source, expr)
	if err != nil {
		return err
	}

	if len(elements) == 0 {
		return fmt.Errorf("%w: elements %s do not exist", ErrAssertion, expr)
	}
	return nil
}

// ElementShouldNotExist fails with ErrAssertion when the expression
// matches at least one element. It is the exact negation of
// ElementShouldExist.
func ElementShouldNotExist(source any, expr string) error {
	elements, err := GetElements(source, expr)
	if err != nil {
		return err
	}

	if len(elements) > 0 {
		return fmt.Errorf("%w: elements %s exist but should not", ErrAssertion, expr)
	}
	return nil
}

func selectFromSource(source any, selector string) ([]any, error) {
	text, err := sourceText(source)
	if err != nil {
		return nil, err
	}

	elements, err := jsonselect.Query(text, selector)
	if err != nil {
		if errors.Is(err, jsonselect.ErrDocument) {
			return nil, fmt.Errorf("%w: %v", ErrParse, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrExpression, err)
	}
	return elements, nil
}

// sourceText yields the document as JSON text, serializing decoded
// structures when needed.
func sourceText(source any) (string, error) {
	switch value := source.(type) {
	case string:
		return value, nil
	case []byte:
		return string(value), nil
	default:
		decoded, err := ConvertToJSON(source)
		if err != nil {
			return "", err
		}
		return JSONToString(decoded)
	}
}
