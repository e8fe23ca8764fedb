// Package document parses and serializes the JSON documents keywords
// operate on. Strict JSON is the default; files with an .hjson extension
// are parsed leniently (unquoted keys, trailing commas, comments).
package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hjson/hjson-go"
)

// ErrParse indicates input that could not be decoded as a JSON document.
var ErrParse = errors.New("document: parse error")

// Parse decodes a strict JSON payload into map[string]any, []any and
// scalar values.
func Parse(data []byte) (any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: document is empty", ErrParse)
	}

	var decoded any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	return decoded, nil
}

// ParseString decodes a strict JSON payload held in a string.
func ParseString(source string) (any, error) {
	return Parse([]byte(source))
}

// ParseLenient decodes an HJSON payload. The root may be an object or an
// array.
func ParseLenient(data []byte) (any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: document is empty", ErrParse)
	}

	var object map[string]any
	if err := hjson.Unmarshal(data, &object); err == nil {
		return object, nil
	}

	var array []any
	if err := hjson.Unmarshal(data, &array); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	return array, nil
}

// ParseFile loads and decodes a document from disk, choosing the lenient
// parser for .hjson files.
func ParseFile(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	if strings.EqualFold(filepath.Ext(path), ".hjson") {
		return ParseLenient(data)
	}
	return Parse(data)
}

// Serialize encodes a decoded document back to compact JSON without
// escaping HTML characters.
func Serialize(value any) (string, error) {
	return encode(value, "")
}

// Pretty encodes a decoded document as two-space indented JSON without
// escaping HTML characters.
func Pretty(value any) (string, error) {
	return encode(value, "  ")
}

func encode(value any, indent string) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(value); err != nil {
		return "", fmt.Errorf("document: serialize: %w", err)
	}

	// Encode terminates the payload with a newline.
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
