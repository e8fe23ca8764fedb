package execute

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jacoelho/jsonv/internal/call"
	"github.com/jacoelho/jsonv/internal/document"
	"github.com/jacoelho/jsonv/internal/output"
	"github.com/jacoelho/jsonv/internal/pathing"
	"github.com/jacoelho/jsonv/internal/predicate"
	"github.com/jacoelho/jsonv/internal/template"
)

// executeCall executes a single keyword call: resolve arguments,
// dispatch, check the expectation, store the capture.
func (r *Runner) executeCall(ctx context.Context, c call.Call, variables map[string]any, baseDir string) (bool, error) {
	if err := r.rateLimiter.Wait(ctx); err != nil {
		return false, fmt.Errorf("rate limiting interrupted: %w", err)
	}

	args, err := resolveArgs(c.Args, variables, baseDir)
	if err != nil {
		return false, err
	}

	if r.config != nil && r.config.Debug {
		r.debugCall(c.Keyword, args)
	}

	result, err := r.registry.Run(c.Keyword, args...)
	if c.ExpectError {
		if err == nil {
			return true, fmt.Errorf("expected an error but %s succeeded", c.Keyword)
		}
		if r.config != nil && r.config.Debug {
			r.debugResult(c.Keyword, fmt.Sprintf("error (expected): %v", err))
		}
		return true, nil
	}
	if err != nil {
		return true, err
	}

	if c.Expect != nil {
		if err := evaluateExpect(c.Keyword, *c.Expect, result); err != nil {
			return true, err
		}
	}

	if c.Capture != "" {
		variables[c.Capture] = resultValue(result)
	}

	if r.config != nil && r.config.Debug {
		r.debugResult(c.Keyword, result)
	}

	return true, nil
}

func resolveArgs(args []call.Arg, variables map[string]any, baseDir string) ([]any, error) {
	resolved := make([]any, 0, len(args))
	for i, arg := range args {
		value, err := resolveArg(arg, variables, baseDir)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		resolved = append(resolved, value)
	}
	return resolved, nil
}

// resolveArg expands templates in string arguments and loads file
// arguments. File contents are passed through untouched, except .hjson
// files, which are decoded leniently and re-encoded as strict JSON.
func resolveArg(arg call.Arg, variables map[string]any, baseDir string) (any, error) {
	if arg.IsFile {
		filePath, err := template.Apply(arg.File, variables)
		if err != nil {
			return nil, fmt.Errorf("failed to process file path template: %w", err)
		}
		filePath = pathing.ResolveFileArgPath(filePath, baseDir)

		if strings.EqualFold(filepath.Ext(filePath), ".hjson") {
			decoded, err := document.ParseFile(filePath)
			if err != nil {
				return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
			}

			encoded, err := document.Serialize(decoded)
			if err != nil {
				return nil, fmt.Errorf("failed to encode file %s: %w", filePath, err)
			}
			return encoded, nil
		}

		content, err := os.ReadFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
		}

		return string(content), nil
	}

	if text, ok := arg.Literal.(string); ok {
		processed, err := template.Apply(text, variables)
		if err != nil {
			return nil, fmt.Errorf("failed to process argument template: %w", err)
		}
		return processed, nil
	}

	return arg.Literal, nil
}

// buildExpr converts a parsed expectation into a validated predicate
// expression.
func buildExpr(e call.Expect) (predicate.Expr, error) {
	op, err := predicate.ParseOperator(e.Operation)
	if err != nil {
		return predicate.Expr{}, err
	}

	hasValue := e.HasValue || e.Value != nil

	return predicate.Expr{
		Op:       op,
		Value:    e.Value,
		HasValue: hasValue,
	}, nil
}

func evaluateExpect(keywordName string, e call.Expect, result any) error {
	expr, err := buildExpr(e)
	if err != nil {
		return fmt.Errorf("expect error for %s: %w", keywordName, err)
	}

	actual := resultValue(result)

	ok, err := predicate.EvaluateExpr(expr, actual)
	if err != nil {
		return fmt.Errorf("expect error for %s: %w", keywordName, err)
	}
	if !ok {
		return fmt.Errorf("expect failed for %s: expected %s %v, got %v", keywordName, e.Operation, e.Value, actual)
	}

	return nil
}

// resultValue unwraps element list results to their first element,
// absent when the list is empty. Query keywords return every match as a
// list; expectations and captures work on the first one, the same way a
// selector capture takes the first selected value. Target the enclosing
// container to assert on a whole set.
func resultValue(result any) any {
	if elements, ok := result.([]any); ok {
		if len(elements) == 0 {
			return nil
		}
		return elements[0]
	}
	return result
}

// debugCall outputs the resolved call when debug mode is enabled.
func (r *Runner) debugCall(keywordName string, args []any) {
	if err := output.FormatDebug(r.config.OutputFormat, r.errorWriter(), "CALL", dumpCall(keywordName, args)); err != nil {
		r.logf("Error formatting debug call: %v\n", err)
	}
}

// debugResult outputs the keyword result when debug mode is enabled.
func (r *Runner) debugResult(keywordName string, result any) {
	if err := output.FormatDebug(r.config.OutputFormat, r.errorWriter(), "RESULT "+keywordName, dumpValue(result)); err != nil {
		r.logf("Error formatting debug result: %v\n", err)
	}
}

func dumpCall(keywordName string, args []any) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "keyword: %s", keywordName)
	for i, arg := range args {
		fmt.Fprintf(&buf, "\narg %d: %s", i+1, dumpValue(arg))
	}
	return buf.Bytes()
}

// dumpValue renders structured values as compact JSON so debug output
// stays greppable.
func dumpValue(value any) []byte {
	switch v := value.(type) {
	case nil:
		return []byte("null")
	case string:
		return []byte(v)
	default:
		encoded, err := document.Serialize(value)
		if err != nil {
			return fmt.Appendf(nil, "%v", value)
		}
		return []byte(encoded)
	}
}
