// Package jsonpath evaluates JSONPath expressions against decoded JSON
// documents. Querying delegates to an RFC 9535 engine; relaxed dotted
// expressions ("store.book[0].price") are first normalized into rooted
// queries.
//
// For in-place updates the package compiles its own restricted expression
// form and walks the document collecting mutable locations (parent
// container plus key or index). Supported update selectors:
//   - Child `.` and descendant `..` segments
//   - Name, array index, wildcard `*`, slices `start:end:step`, unions `[a,b]`
//
// Filter selectors are not locatable and fail with ErrNotSupported.
package jsonpath
