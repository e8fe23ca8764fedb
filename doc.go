// Package jsonv implements JSON validation keywords for test automation:
// JSON Schema checks, JSONPath and JSONSelect queries, existence
// assertions and in-place updates.
//
// Every keyword is stateless: documents and expressions are parsed on
// each call and nothing is cached between calls. Query keywords route
// expressions by dialect. Expressions opening with '$', '..', '[' or a
// bare identifier are JSONPath; expressions opening with '.', ':', '*'
// combinators or a JSONSelect type selector are JSONSelect. Routing is
// decided before evaluation and a syntax error from the routed engine is
// never retried against the other one.
//
// Keywords accept documents either as raw JSON text or as already
// decoded structures (map[string]any, []any), mirroring how test runners
// hand values from one keyword to the next.
package jsonv
