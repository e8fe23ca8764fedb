// Package call provides YAML parsing for keyword call files.
//
// A call file is a YAML list of keyword invocations:
//
//	- keyword: validate_jsonschema
//	  args:
//	    - file: response.json
//	    - file: schema.json
//	- keyword: get_elements
//	  args:
//	    - file: response.json
//	    - $.store.book[0].price
//	  expect:
//	    op: equals
//	    value: 8.95
//	  capture: first_price
//
// Scalar and sequence arguments are passed to the keyword as literal
// values. A mapping argument must have the single key "file" and loads
// the argument from a file resolved relative to the call file.
package call

import (
	"errors"
	"fmt"
	"io"

	yaml "github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/ast"
)

// ErrParser is the sentinel error for all call file parsing failures.
// It allows error wrapping and consistent error checks using errors.Is().
var ErrParser = fmt.Errorf("parser error")

// Call represents a single keyword invocation with optional result handling.
type Call struct {
	Keyword     string  `yaml:"keyword"`                // Keyword name (snake case, spaces and dashes tolerated)
	Args        []Arg   `yaml:"args,omitempty"`         // Positional arguments
	Expect      *Expect `yaml:"expect,omitempty"`       // Predicate applied to the keyword result
	ExpectError bool    `yaml:"expect_error,omitempty"` // Invert failure: the keyword must return an error
	Capture     string  `yaml:"capture,omitempty"`      // Variable name to store the keyword result
}

// Arg is a single keyword argument. Literal is the decoded YAML value
// unless IsFile is set, in which case File names a file whose contents
// become the argument.
type Arg struct {
	Literal any
	File    string
	IsFile  bool
}

// UnmarshalYAML decodes an argument. Scalars and sequences become
// literal values; mappings are reserved for the file form:
//
//	- file: path/to/document.json
func (a *Arg) UnmarshalYAML(node ast.Node) error {
	mapNode, ok := node.(ast.MapNode)
	if !ok {
		value, err := nodeToValue(node)
		if err != nil {
			return fmt.Errorf("invalid argument: %w", err)
		}
		a.Literal = value
		return nil
	}

	pairs := 0
	for it := mapNode.MapRange(); it.Next(); {
		pairs++
		key, ok := it.Key().(*ast.StringNode)
		if !ok {
			return errors.New("argument mapping key must be a string")
		}
		if key.Value != "file" {
			return fmt.Errorf("unsupported argument key %q: use a literal or 'file'", key.Value)
		}

		pathNode, ok := it.Value().(*ast.StringNode)
		if !ok {
			return errors.New("file argument value must be a string")
		}
		a.File = pathNode.Value
		a.IsFile = true
	}

	if pairs != 1 {
		return errors.New("argument mapping must have exactly one 'file' key")
	}

	return nil
}

// MarshalYAML emits the file form for file arguments and the literal
// value otherwise.
func (a Arg) MarshalYAML() (any, error) {
	if a.IsFile {
		return map[string]string{"file": a.File}, nil
	}
	return a.Literal, nil
}

// Expect represents a parsed result predicate from YAML.
// The parser handles YAML parsing only; semantic validation is
// delegated to the predicate package.
type Expect struct {
	Operation string
	Value     any
	HasValue  bool
}

// UnmarshalYAML decodes an expectation from YAML.
// Expectation syntax is strict and only supports:
//
//	op: <operator>
//	value: <any>   # optional only for "exists"
func (e *Expect) UnmarshalYAML(node ast.Node) error {
	mapNode, ok := node.(ast.MapNode)
	if !ok {
		return errors.New("expect must be a mapping")
	}

	pairs := 0
	for it := mapNode.MapRange(); it.Next(); {
		pairs++
		key, ok := it.Key().(*ast.StringNode)
		if !ok {
			return errors.New("expect key must be a string")
		}

		switch key.Value {
		case "op":
			opNode, ok := it.Value().(*ast.StringNode)
			if !ok {
				return errors.New("op value must be a string")
			}
			if opNode.Value == "" {
				return errors.New("op value must not be empty")
			}
			e.Operation = opNode.Value
		case "value":
			value, err := nodeToValue(it.Value())
			if err != nil {
				return fmt.Errorf("failed to parse value: %w", err)
			}
			e.Value = value
			e.HasValue = true
		default:
			return fmt.Errorf("unsupported expect key %q: use 'op' and optional 'value'", key.Value)
		}
	}

	if pairs == 0 {
		return errors.New("expect mapping is empty")
	}
	if e.Operation == "" {
		return errors.New("expect must specify an op")
	}

	return nil
}

// MarshalYAML emits the strict op/value form.
func (e Expect) MarshalYAML() (any, error) {
	type expectYAML struct {
		Op    string `yaml:"op"`
		Value *any   `yaml:"value,omitempty"`
	}

	out := expectYAML{Op: e.Operation}
	if e.HasValue {
		out.Value = &e.Value
	}
	return out, nil
}

// nodeToValue extracts values from AST nodes.
// integer node value is normalized to int64
// float node value is always float64
func nodeToValue(node ast.Node) (any, error) {
	switch n := node.(type) {
	case *ast.IntegerNode:
		if n.Value == nil {
			return nil, errors.New("integer node has nil value")
		}
		if v, ok := n.Value.(int64); ok {
			return v, nil
		}
		if v, ok := n.Value.(uint64); ok {
			return int64(v), nil
		}
		return nil, fmt.Errorf("unexpected integer node value type: %T", n.Value)
	case *ast.FloatNode:
		return n.Value, nil
	case *ast.StringNode:
		return n.Value, nil
	case *ast.BoolNode:
		return n.Value, nil
	case *ast.NullNode:
		return nil, nil
	case *ast.SequenceNode:
		var result []any
		for i, item := range n.Values {
			val, err := nodeToValue(item)
			if err != nil {
				return nil, fmt.Errorf("invalid value at index %d: %w", i, err)
			}
			result = append(result, val)
		}
		return result, nil
	default:
		return nil, fmt.Errorf("unsupported node type: %T", node)
	}
}

// Parse decodes a YAML list of calls.
func Parse(r io.Reader) ([]Call, error) {
	decoder := yaml.NewDecoder(r)
	var calls []Call

	if err := decoder.Decode(&calls); err != nil {
		return nil, fmt.Errorf("%w: failed to decode YAML: %v", ErrParser, err)
	}

	return calls, nil
}
