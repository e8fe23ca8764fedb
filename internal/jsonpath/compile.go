package jsonpath

import (
	"fmt"
	"strconv"
	"strings"
)

// selector matches a single object key or array position.
type selector interface {
	selectsKey(key string) bool
	selectsIndex(idx int) bool
}

type segment struct {
	deep bool       // true for '..' descendant segments
	sels []selector // selectors for this segment (name, index, wildcard, slice)
}

type (
	nameSel     string
	wildcardSel struct{}
	indexSel    int
	sliceSel    struct{ start, end, step int }
)

func (n nameSel) selectsKey(key string) bool { return key == string(n) }
func (n nameSel) selectsIndex(int) bool      { return false }

func (wildcardSel) selectsKey(string) bool { return true }
func (wildcardSel) selectsIndex(int) bool  { return true }

func (i indexSel) selectsKey(string) bool    { return false }
func (i indexSel) selectsIndex(idx int) bool { return idx == int(i) }

func (s sliceSel) selectsKey(string) bool { return false }

func (s sliceSel) selectsIndex(idx int) bool {
	if idx < s.start || idx >= s.end {
		return false
	}
	return (idx-s.start)%s.step == 0
}

func anySelectsKey(sels []selector, key string) bool {
	for _, s := range sels {
		if s.selectsKey(key) {
			return true
		}
	}
	return false
}

func anySelectsIndex(sels []selector, idx int) bool {
	for _, s := range sels {
		if s.selectsIndex(idx) {
			return true
		}
	}
	return false
}

func compile(expr string) ([]segment, error) {
	if err := validateExpression(expr); err != nil {
		return nil, err
	}

	if expr == "$" {
		return []segment{}, nil
	}

	i := 1 // current parsing index in expr, after '$'
	var segs []segment

	for i < len(expr) {
		seg, newIndex, err := parseSegment(expr, i)
		if err != nil {
			return nil, err
		}
		segs = append(segs, seg)
		i = newIndex
	}

	return segs, nil
}

func validateExpression(expr string) error {
	if expr == "" {
		return fmt.Errorf("%w: expression cannot be empty", ErrSyntax)
	}
	if expr[0] != '$' || (len(expr) > 1 && expr[1] != '.' && expr[1] != '[') {
		return fmt.Errorf("%w: expression must start with '$', '$.', or '$['", ErrSyntax)
	}
	return nil
}

func parseSegment(expr string, i int) (segment, int, error) {
	if expr[i] == '.' {
		return parseDotSegment(expr, i)
	}
	if expr[i] == '[' {
		return parseBracketSegment(expr, i)
	}

	return segment{}, i, fmt.Errorf("%w: unexpected token '%c' at position %d, expected '.' or '['", ErrSyntax, expr[i], i)
}

func parseDotSegment(expr string, i int) (segment, int, error) {
	seg := segment{}

	if i+1 < len(expr) && expr[i+1] == '.' { // descendant '..'
		seg.deep = true
		i += 2
	} else { // child '.'
		i++
	}

	if i >= len(expr) { // path cannot end with '.' or '..'
		return segment{}, i, fmt.Errorf("%w: path segment cannot end with '.' or '..'", ErrSyntax)
	}

	// A descendant segment may continue with a bracket selector, e.g. "$..[0]".
	if seg.deep && expr[i] == '[' {
		bracketSeg, newIndex, err := parseBracketSegment(expr, i)
		if err != nil {
			return segment{}, i, err
		}
		bracketSeg.deep = true
		return bracketSeg, newIndex, nil
	}

	if expr[i] == '*' { // wildcard
		seg.sels = append(seg.sels, wildcardSel{})
		i++
	} else { // name selector
		name, newIndex, err := parseName(expr, i)
		if err != nil {
			return segment{}, i, err
		}
		seg.sels = append(seg.sels, nameSel(name))
		i = newIndex
	}

	return seg, i, nil
}

func parseName(expr string, i int) (string, int, error) {
	start := i
	for i < len(expr) && idRune(expr[i]) {
		i++
	}
	if start == i { // name cannot be empty
		return "", i, fmt.Errorf("%w: name selector cannot be empty after '.'", ErrSyntax)
	}
	return expr[start:i], i, nil
}

// idRune checks if a byte is valid for unquoted names after '.'.
func idRune(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9') || b == '_' || b == '-'
}

func parseBracketSegment(expr string, i int) (segment, int, error) {
	i++ // consume '['
	if i >= len(expr) {
		return segment{}, i, fmt.Errorf("%w: unterminated bracket selector, missing ']'", ErrSyntax)
	}

	if expr[i] == '?' {
		return segment{}, i, fmt.Errorf("%w: filter selectors cannot produce update locations", ErrNotSupported)
	}

	content, next, err := bracketContent(expr, i)
	if err != nil {
		return segment{}, i, err
	}
	i = next

	if strings.TrimSpace(content) == "" {
		return segment{}, i, fmt.Errorf("%w: empty bracket selector '[]'", ErrSyntax)
	}

	seg := segment{}
	for _, part := range splitUnion(content) {
		sel, err := parseBracketPart(part)
		if err != nil {
			return segment{}, i, err
		}
		seg.sels = append(seg.sels, sel)
	}

	return seg, i, nil
}

// bracketContent returns the selector text up to the matching ']' and the
// index just past it. Quoted names may contain ']' and ','.
func bracketContent(expr string, i int) (string, int, error) {
	start := i
	for i < len(expr) {
		switch expr[i] {
		case '\'', '"':
			next, err := skipQuoted(expr, i)
			if err != nil {
				return "", i, err
			}
			i = next
		case ']':
			return expr[start:i], i + 1, nil
		default:
			i++
		}
	}
	return "", i, fmt.Errorf("%w: unterminated bracket selector, missing ']' for content starting at '%s'", ErrSyntax, expr[start:])
}

// skipQuoted returns the index just past the quoted name opening at i.
// A backslash escapes the following byte.
func skipQuoted(expr string, i int) (int, error) {
	quote := expr[i]
	for j := i + 1; j < len(expr); j++ {
		switch expr[j] {
		case '\\':
			j++
		case quote:
			return j + 1, nil
		}
	}
	return len(expr), fmt.Errorf("%w: unterminated %c-quoted name in '%s'", ErrSyntax, quote, expr[i:])
}

// splitUnion splits union selector content on commas outside quotes.
func splitUnion(content string) []string {
	var parts []string
	var quote byte
	start := 0
	for i := 0; i < len(content); i++ {
		c := content[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == ',':
			parts = append(parts, content[start:i])
			start = i + 1
		}
	}
	return append(parts, content[start:])
}

func parseBracketPart(part string) (selector, error) {
	p := strings.TrimSpace(part)
	if p == "" {
		return nil, fmt.Errorf("%w: empty part in union selector", ErrSyntax)
	}

	if p == "*" {
		return wildcardSel{}, nil
	}

	if isQuotedName(p) {
		return nameSel(unquoteName(p)), nil
	}

	if strings.Contains(p, ":") {
		return parseSlice(p)
	}

	idx, err := strconv.Atoi(p)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid content '%s' in bracket selector", ErrSyntax, p)
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: negative array index (%d)", ErrNotSupported, idx)
	}
	return indexSel(idx), nil
}

func isQuotedName(s string) bool {
	return (len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'') ||
		(len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"')
}

// unquoteName strips the surrounding quotes and resolves backslash
// escapes of the quote character and the backslash itself.
func unquoteName(s string) string {
	quote := s[0]
	inner := s[1 : len(s)-1]
	if !strings.Contains(inner, `\`) {
		return inner
	}

	var b strings.Builder
	b.Grow(len(inner))
	for i := 0; i < len(inner); i++ {
		if inner[i] == '\\' && i+1 < len(inner) && (inner[i+1] == quote || inner[i+1] == '\\') {
			i++
		}
		b.WriteByte(inner[i])
	}
	return b.String()
}

func parseSlice(p string) (selector, error) {
	bounds := strings.Split(p, ":")
	if len(bounds) > 3 {
		return nil, fmt.Errorf("%w: too many colons in slice '%s'", ErrSyntax, p)
	}

	s := sliceSel{
		start: 0,
		end:   1 << 30, // effectively "no upper bound"
		step:  1,
	}

	if err := parseSliceBound(&s.start, bounds[0], "start", p); err != nil {
		return nil, err
	}

	if len(bounds) > 1 {
		if err := parseSliceBound(&s.end, bounds[1], "end", p); err != nil {
			return nil, err
		}
	}

	if len(bounds) == 3 {
		if err := parseSliceBound(&s.step, bounds[2], "step", p); err != nil {
			return nil, err
		}
		if s.step == 0 {
			return nil, fmt.Errorf("%w: slice step cannot be zero in '%s'", ErrSyntax, p)
		}
	}

	if s.start < 0 || s.end < 0 || s.step < 0 {
		return nil, fmt.Errorf("%w: negative slice bounds ('%s')", ErrNotSupported, p)
	}

	return s, nil
}

func parseSliceBound(target *int, valueStr, boundType, fullSlice string) error {
	trimmed := strings.TrimSpace(valueStr)
	if trimmed == "" {
		return nil
	}

	v, err := strconv.Atoi(trimmed)
	if err != nil {
		return fmt.Errorf("%w: slice %s '%s' in '%s' is not a number", ErrSyntax, boundType, trimmed, fullSlice)
	}

	*target = v
	return nil
}
