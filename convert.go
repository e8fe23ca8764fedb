package jsonv

import (
	"fmt"

	"github.com/jacoelho/jsonv/internal/document"
)

// ConvertToJSON returns the decoded form of a document given either as
// JSON text or as an already decoded structure.
func ConvertToJSON(source any) (any, error) {
	switch value := source.(type) {
	case string:
		return StringToJSON(value)
	case []byte:
		return StringToJSON(string(value))
	case map[string]any, []any:
		return value, nil
	default:
		return nil, fmt.Errorf("%w: invalid source type %T, want JSON text or decoded structure", ErrArgument, source)
	}
}

// StringToJSON deserializes JSON text into a decoded structure.
func StringToJSON(source string) (any, error) {
	decoded, err := document.ParseString(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return decoded, nil
}

// JSONToString serializes a decoded structure into compact JSON text.
func JSONToString(source any) (string, error) {
	encoded, err := document.Serialize(source)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrArgument, err)
	}
	return encoded, nil
}

// PrettyPrintJSON reformats JSON text with two-space indentation, keeping
// non-ASCII characters unescaped.
func PrettyPrintJSON(source string) (string, error) {
	decoded, err := StringToJSON(source)
	if err != nil {
		return "", err
	}

	encoded, err := document.Pretty(decoded)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrArgument, err)
	}
	return encoded, nil
}
