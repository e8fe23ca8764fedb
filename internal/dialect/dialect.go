// Package dialect routes query expressions to the engine that owns their
// syntax. Routing is static: it inspects the expression head only and
// never retries a failed parse against the other engine.
package dialect

import (
	"errors"
	"strings"
)

// Kind names a query engine.
type Kind string

const (
	// KindPath marks RFC 9535 and relaxed Goessner JSONPath expressions.
	KindPath Kind = "jsonpath"

	// KindSelector marks CSS-like JSONSelect expressions.
	KindSelector Kind = "jsonselect"
)

// ErrEmpty indicates an expression with no content to route.
var ErrEmpty = errors.New("dialect: expression cannot be empty")

// selectorTypes are the JSONSelect type selectors that may open an
// expression.
var selectorTypes = []string{"object", "array", "string", "number", "boolean", "null"}

// Detect classifies expr by its leading token. A type name followed by
// another selector token reads as a compound selector; a rooted path
// ("$.string.title") reaches a key that collides with a type name.
//
//	$.store.book[0]      -> KindPath
//	..price              -> KindPath
//	store.book[0].price  -> KindPath (relaxed form)
//	.author              -> KindSelector
//	string.title         -> KindSelector
//	string:first-child   -> KindSelector
func Detect(expr string) (Kind, error) {
	trimmed := strings.TrimSpace(expr)
	if trimmed == "" {
		return "", ErrEmpty
	}

	if strings.HasPrefix(trimmed, "..") {
		return KindPath, nil
	}

	switch trimmed[0] {
	case '$', '@', '[':
		return KindPath, nil
	case '.', ':', '*', '>', '~', ',':
		return KindSelector, nil
	}

	if hasSelectorTypePrefix(trimmed) {
		return KindSelector, nil
	}

	return KindPath, nil
}

// hasSelectorTypePrefix reports whether expr opens with a JSONSelect type
// selector followed by a selector boundary.
func hasSelectorTypePrefix(expr string) bool {
	for _, name := range selectorTypes {
		if !strings.HasPrefix(expr, name) {
			continue
		}
		if len(expr) == len(name) {
			return true
		}
		switch expr[len(name)] {
		case ' ', '\t', '.', ':', ',', '>', '~', '*':
			return true
		}
	}
	return false
}
