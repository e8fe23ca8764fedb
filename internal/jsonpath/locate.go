package jsonpath

import (
	"fmt"
	"maps"
	"slices"
)

// Location identifies a mutable slot inside a decoded document.
// The zero Location refers to the document root.
type Location struct {
	parent any    // enclosing map[string]any or []any, nil for the root
	key    string // object key when the parent is a map
	index  int    // element index when the parent is an array
}

// Value returns the value currently stored at the location.
// root is returned for the document root location.
func (l Location) Value(root any) any {
	switch parent := l.parent.(type) {
	case map[string]any:
		return parent[l.key]
	case []any:
		return parent[l.index]
	default:
		return root
	}
}

func (l Location) set(root, value any) any {
	switch parent := l.parent.(type) {
	case map[string]any:
		parent[l.key] = value
	case []any:
		parent[l.index] = value
	default:
		return value
	}
	return root
}

// Locate returns every slot selected by expr, walking objects in sorted key
// order and arrays in element order. Relaxed expressions are normalized
// before compiling.
func Locate(root any, expr string) ([]Location, error) {
	normalized, err := Normalize(expr)
	if err != nil {
		return nil, err
	}

	segs, err := compile(normalized)
	if err != nil {
		return nil, err
	}

	if len(segs) == 0 { // "$" selects the root itself
		return []Location{{}}, nil
	}

	c := &collector{}
	c.collect(root, segs)
	return c.locations, nil
}

// Update replaces the n-th match of expr (zero-based) with value and
// returns the document root. The root itself is replaced when expr is '$'.
func Update(root any, expr string, n int, value any) (any, error) {
	locations, err := Locate(root, expr)
	if err != nil {
		return nil, err
	}

	if len(locations) == 0 {
		return nil, fmt.Errorf("%w: expression %s", ErrNoMatch, expr)
	}
	if n < 0 || n >= len(locations) {
		return nil, fmt.Errorf("%w: index %d out of range, expression %s matched %d element(s)", ErrNoMatch, n, expr, len(locations))
	}

	return locations[n].set(root, value), nil
}

type collector struct {
	locations []Location
}

// collect walks node appending the locations selected by segs.
// segs must be non-empty; the root location is handled by Locate.
func (c *collector) collect(node any, segs []segment) {
	seg := segs[0]
	rest := segs[1:]

	switch v := node.(type) {
	case map[string]any:
		for _, key := range slices.Sorted(maps.Keys(v)) {
			child := Location{parent: v, key: key}
			if anySelectsKey(seg.sels, key) {
				c.found(v[key], rest, child)
			}
			if seg.deep {
				c.collect(v[key], segs)
			}
		}
	case []any:
		for i, elem := range v {
			child := Location{parent: v, index: i}
			if anySelectsIndex(seg.sels, i) {
				c.found(elem, rest, child)
			}
			if seg.deep {
				c.collect(elem, segs)
			}
		}
	}
}

func (c *collector) found(value any, rest []segment, loc Location) {
	if len(rest) == 0 {
		c.locations = append(c.locations, loc)
		return
	}
	c.collect(value, rest)
}
