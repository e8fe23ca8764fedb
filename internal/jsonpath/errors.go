package jsonpath

import "errors"

var (
	// ErrSyntax indicates a JSONPath expression syntax error.
	ErrSyntax = errors.New("jsonpath: syntax error")

	// ErrNotSupported indicates a JSONPath feature that cannot produce update locations.
	ErrNotSupported = errors.New("jsonpath: feature not supported for updates")

	// ErrNoMatch indicates the expression selected nothing.
	ErrNoMatch = errors.New("jsonpath: no match")
)
