package jsonv

import "errors"

// Sentinel errors returned by keywords. Hosts dispatch on these with
// errors.Is; the wrapped detail keeps the engine's original message.
var (
	// ErrParse indicates source text that is not valid JSON.
	ErrParse = errors.New("json parse error")

	// ErrSchema indicates a schema that could not be compiled.
	ErrSchema = errors.New("schema error")

	// ErrSchemaValidation indicates a document rejected by its schema.
	ErrSchemaValidation = errors.New("schema validation error")

	// ErrAssertion indicates a failed existence check.
	ErrAssertion = errors.New("assertion error")

	// ErrExpression indicates a query expression the routed engine
	// rejected.
	ErrExpression = errors.New("expression syntax error")

	// ErrUnsupported indicates an operation outside the routed engine's
	// capabilities, such as updating through a filter selector.
	ErrUnsupported = errors.New("unsupported expression")

	// ErrArgument indicates a keyword argument of the wrong type or range.
	ErrArgument = errors.New("invalid argument")
)
