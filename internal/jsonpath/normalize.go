package jsonpath

import (
	"fmt"
	"strings"
)

// Normalize rewrites a relaxed Goessner-style expression into an RFC 9535
// query rooted at '$'. Expressions already rooted pass through unchanged.
//
//	store.book[0]  ->  $.store.book[0]
//	..price        ->  $..price
//	[0].name       ->  $[0].name
func Normalize(expr string) (string, error) {
	trimmed := strings.TrimSpace(expr)
	if trimmed == "" {
		return "", fmt.Errorf("%w: expression cannot be empty", ErrSyntax)
	}

	switch {
	case trimmed[0] == '$':
		return trimmed, nil
	case strings.HasPrefix(trimmed, ".."):
		return "$" + trimmed, nil
	case trimmed[0] == '[':
		return "$" + trimmed, nil
	case trimmed[0] == '.':
		return "", fmt.Errorf("%w: expression cannot start with a single '.'", ErrSyntax)
	default:
		return "$." + trimmed, nil
	}
}
