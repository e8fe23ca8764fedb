// Package keyword exposes the library as a name-addressed keyword
// registry for test runners that dispatch on keyword strings. Lookup is
// spelling-tolerant: "Get Elements", "get_elements" and "getElements"
// resolve to the same keyword.
package keyword

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/jacoelho/jsonv"
	"github.com/jacoelho/jsonv/internal/number"
)

// ErrUnknown indicates a keyword name with no registration.
var ErrUnknown = errors.New("unknown keyword")

// Func executes a keyword against positional arguments.
type Func func(args []any) (any, error)

// Registry maps normalized keyword names to implementations.
type Registry struct {
	keywords map[string]Func
	names    []string
}

var defaultRegistry = NewRegistry()

// Default returns the shared registry of library keywords. The registry
// is read-only after construction, so it is safe for concurrent use.
func Default() *Registry {
	return defaultRegistry
}

// NewRegistry returns a registry with every library keyword registered
// under its canonical snake_case name.
func NewRegistry() *Registry {
	r := &Registry{keywords: make(map[string]Func)}

	r.Register("validate_jsonschema", validateJSONSchema)
	r.Register("validate_jsonschema_from_file", validateJSONSchemaFromFile)
	r.Register("convert_to_json", convertToJSON)
	r.Register("string_to_json", stringToJSON)
	r.Register("json_to_string", jsonToString)
	r.Register("get_elements", getElements)
	r.Register("select_elements", selectElements)
	r.Register("element_should_exist", elementShouldExist)
	r.Register("element_should_not_exist", elementShouldNotExist)
	r.Register("update_json", updateJSON)
	r.Register("pretty_print_json", prettyPrintJSON)

	return r
}

// Register adds a keyword, replacing any previous registration resolving
// to the same normalized name.
func (r *Registry) Register(name string, fn Func) {
	key := Normalize(name)
	if _, exists := r.keywords[key]; !exists {
		r.names = append(r.names, name)
	}
	r.keywords[key] = fn
}

// Lookup resolves a keyword name in any supported spelling.
func (r *Registry) Lookup(name string) (Func, bool) {
	fn, ok := r.keywords[Normalize(name)]
	return fn, ok
}

// Run dispatches a keyword by name. Arity and argument types are
// checked by the keyword itself.
func (r *Registry) Run(name string, args ...any) (any, error) {
	fn, ok := r.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknown, name)
	}
	return fn(args)
}

// Names returns the canonical names of all registered keywords, sorted.
func (r *Registry) Names() []string {
	names := slices.Clone(r.names)
	slices.Sort(names)
	return names
}

// Normalize folds a keyword spelling onto its lookup key: lower case with
// spaces, underscores and hyphens removed.
func Normalize(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch r {
		case ' ', '\t', '_', '-':
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

func validateJSONSchema(args []any) (any, error) {
	if err := requireArgs("validate_jsonschema", args, 2); err != nil {
		return nil, err
	}
	schemaSource, err := stringArg("validate_jsonschema", args, 1)
	if err != nil {
		return nil, err
	}
	return nil, jsonv.ValidateJSONSchema(args[0], schemaSource)
}

func validateJSONSchemaFromFile(args []any) (any, error) {
	if err := requireArgs("validate_jsonschema_from_file", args, 2); err != nil {
		return nil, err
	}
	path, err := stringArg("validate_jsonschema_from_file", args, 1)
	if err != nil {
		return nil, err
	}
	return nil, jsonv.ValidateJSONSchemaFromFile(args[0], path)
}

func convertToJSON(args []any) (any, error) {
	if err := requireArgs("convert_to_json", args, 1); err != nil {
		return nil, err
	}
	return jsonv.ConvertToJSON(args[0])
}

func stringToJSON(args []any) (any, error) {
	if err := requireArgs("string_to_json", args, 1); err != nil {
		return nil, err
	}
	source, err := stringArg("string_to_json", args, 0)
	if err != nil {
		return nil, err
	}
	return jsonv.StringToJSON(source)
}

func jsonToString(args []any) (any, error) {
	if err := requireArgs("json_to_string", args, 1); err != nil {
		return nil, err
	}
	return jsonv.JSONToString(args[0])
}

func getElements(args []any) (any, error) {
	source, expr, err := documentAndExpr("get_elements", args)
	if err != nil {
		return nil, err
	}
	return jsonv.GetElements(source, expr)
}

func selectElements(args []any) (any, error) {
	source, selector, err := documentAndExpr("select_elements", args)
	if err != nil {
		return nil, err
	}
	return jsonv.SelectElements(source, selector)
}

func elementShouldExist(args []any) (any, error) {
	source, expr, err := documentAndExpr("element_should_exist", args)
	if err != nil {
		return nil, err
	}
	return nil, jsonv.ElementShouldExist(source, expr)
}

func elementShouldNotExist(args []any) (any, error) {
	source, expr, err := documentAndExpr("element_should_not_exist", args)
	if err != nil {
		return nil, err
	}
	return nil, jsonv.ElementShouldNotExist(source, expr)
}

func updateJSON(args []any) (any, error) {
	if len(args) != 3 && len(args) != 4 {
		return nil, fmt.Errorf("%w: update_json takes 3 or 4 arguments, got %d", jsonv.ErrArgument, len(args))
	}
	expr, err := stringArg("update_json", args, 1)
	if err != nil {
		return nil, err
	}

	index := 0
	if len(args) == 4 {
		index, err = intArg("update_json", args, 3)
		if err != nil {
			return nil, err
		}
	}

	return jsonv.UpdateJSON(args[0], expr, args[2], index)
}

func prettyPrintJSON(args []any) (any, error) {
	if err := requireArgs("pretty_print_json", args, 1); err != nil {
		return nil, err
	}
	source, err := stringArg("pretty_print_json", args, 0)
	if err != nil {
		return nil, err
	}
	return jsonv.PrettyPrintJSON(source)
}

func documentAndExpr(name string, args []any) (any, string, error) {
	if err := requireArgs(name, args, 2); err != nil {
		return nil, "", err
	}
	expr, err := stringArg(name, args, 1)
	if err != nil {
		return nil, "", err
	}
	return args[0], expr, nil
}

func requireArgs(name string, args []any, want int) error {
	if len(args) != want {
		return fmt.Errorf("%w: %s takes %d argument(s), got %d", jsonv.ErrArgument, name, want, len(args))
	}
	return nil
}

func stringArg(name string, args []any, i int) (string, error) {
	value, ok := args[i].(string)
	if !ok {
		return "", fmt.Errorf("%w: %s argument %d must be a string, got %T", jsonv.ErrArgument, name, i+1, args[i])
	}
	return value, nil
}

// intArg accepts integer-typed values and decimal strings, matching how
// table-driven runners pass numbers as text.
func intArg(name string, args []any, i int) (int, error) {
	if text, ok := args[i].(string); ok {
		parsed, err := strconv.Atoi(strings.TrimSpace(text))
		if err != nil {
			return 0, fmt.Errorf("%w: %s argument %d must be an integer, got %q", jsonv.ErrArgument, name, i+1, text)
		}
		return parsed, nil
	}

	parsed, err := number.ToStrictInt(args[i])
	if err != nil {
		return 0, fmt.Errorf("%w: %s argument %d must be an integer: %v", jsonv.ErrArgument, name, i+1, err)
	}
	return parsed, nil
}
