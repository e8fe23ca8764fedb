package jsonpath

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

const storeJSON = `{
  "store": {
    "book": [
      { "category": "reference", "author": "Nigel Rees", "title": "Sayings of the Century", "price": 8.95 },
      { "category": "fiction", "author": "Evelyn Waugh", "title": "Sword of Honour", "price": 12.99 },
      { "category": "fiction", "author": "Herman Melville", "title": "Moby Dick", "isbn": "0-553-21311-3", "price": 8.99 },
      { "category": "fiction", "author": "J. R. R. Tolkien", "title": "The Lord of the Rings", "isbn": "0-395-19395-8", "price": 22.99 }
    ],
    "bicycle": { "color": "red", "price": 19.95 }
  }
}`

func decodeStore(t *testing.T) any {
	t.Helper()

	var doc any
	if err := json.Unmarshal([]byte(storeJSON), &doc); err != nil {
		t.Fatalf("unmarshal fixture: %v", err)
	}
	return doc
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		expr    string
		want    string
		wantErr bool
	}{
		{name: "rooted_passthrough", expr: "$.store.book", want: "$.store.book"},
		{name: "relaxed_dotted", expr: "store.book[0]", want: "$.store.book[0]"},
		{name: "descendant", expr: "..price", want: "$..price"},
		{name: "bracket_first", expr: "[0].name", want: "$[0].name"},
		{name: "trimmed", expr: "  store.book  ", want: "$.store.book"},
		{name: "single_leading_dot", expr: ".author", wantErr: true},
		{name: "empty", expr: "", wantErr: true},
		{name: "blank", expr: "   ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.expr)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Normalize(%q) error = %v, wantErr %v", tt.expr, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tt.expr, got, tt.want)
			}
		})
	}
}

func TestQuery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		query  string
		expect []any
	}{
		{
			name:   "first_book_price",
			query:  "$.store.book[0].price",
			expect: []any{8.95},
		},
		{
			name:   "relaxed_first_book_price",
			query:  "store.book[0].price",
			expect: []any{8.95},
		},
		{
			name:   "wildcard_author_selection",
			query:  "$.store.book[*].author",
			expect: []any{"Nigel Rees", "Evelyn Waugh", "Herman Melville", "J. R. R. Tolkien"},
		},
		{
			name:   "recursive_author_search",
			query:  "..author",
			expect: []any{"Nigel Rees", "Evelyn Waugh", "Herman Melville", "J. R. R. Tolkien"},
		},
		{
			name:   "bicycle_color",
			query:  "$.store.bicycle.color",
			expect: []any{"red"},
		},
		{
			name:   "quoted_names",
			query:  "$['store']['bicycle']['color']",
			expect: []any{"red"},
		},
		{
			name:   "third_book_author",
			query:  "$..book[2].author",
			expect: []any{"Herman Melville"},
		},
		{
			name:   "nonexistent_property",
			query:  "$..book[2].publisher",
			expect: []any{},
		},
		{
			name:  "first_two_books",
			query: "$.store.book[:2]",
			expect: []any{
				map[string]any{"category": "reference", "author": "Nigel Rees", "title": "Sayings of the Century", "price": 8.95},
				map[string]any{"category": "fiction", "author": "Evelyn Waugh", "title": "Sword of Honour", "price": 12.99},
			},
		},
		{
			name:  "books_with_isbn",
			query: "$..book[?(@.isbn)]",
			expect: []any{
				map[string]any{"category": "fiction", "author": "Herman Melville", "title": "Moby Dick", "isbn": "0-553-21311-3", "price": 8.99},
				map[string]any{"category": "fiction", "author": "J. R. R. Tolkien", "title": "The Lord of the Rings", "isbn": "0-395-19395-8", "price": 22.99},
			},
		},
		{
			name:   "cheap_book_titles",
			query:  "$.store.book[?(@.price<10)].title",
			expect: []any{"Sayings of the Century", "Moby Dick"},
		},
		{
			name:   "union_array_indices",
			query:  "$..book[0,2].title",
			expect: []any{"Sayings of the Century", "Moby Dick"},
		},
	}

	doc := decodeStore(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Query(doc, tt.query)
			if err != nil {
				t.Fatalf("Query(%q) error = %v", tt.query, err)
			}
			if !reflect.DeepEqual(got, tt.expect) {
				t.Errorf("Query(%q) = %v, want %v", tt.query, got, tt.expect)
			}
		})
	}
}

func TestQueryDescendantPrices(t *testing.T) {
	t.Parallel()

	// Object member order is engine defined, so only the match set is checked.
	got, err := Query(decodeStore(t), "$..price")
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("Query($..price) matched %d values, want 5", len(got))
	}

	counts := make(map[float64]int)
	for _, value := range got {
		price, ok := value.(float64)
		if !ok {
			t.Fatalf("Query($..price) returned %T, want float64", value)
		}
		counts[price]++
	}
	for _, price := range []float64{8.95, 12.99, 8.99, 22.99, 19.95} {
		if counts[price] != 1 {
			t.Fatalf("Query($..price) matched price %v %d times, want once", price, counts[price])
		}
	}
}

func TestQuerySyntaxErrors(t *testing.T) {
	t.Parallel()

	for _, query := range []string{"", "   ", ".author", "$.store[", "$.store.book[?]"} {
		if _, err := Query(decodeStore(t), query); !errors.Is(err, ErrSyntax) {
			t.Fatalf("Query(%q) error = %v, want ErrSyntax", query, err)
		}
	}
}

func TestLocateWalksSortedKeys(t *testing.T) {
	t.Parallel()

	doc := decodeStore(t)
	locations, err := Locate(doc, "$..price")
	if err != nil {
		t.Fatalf("Locate() error = %v", err)
	}

	got := make([]any, 0, len(locations))
	for _, location := range locations {
		got = append(got, location.Value(doc))
	}

	// "bicycle" sorts before "book", so the bicycle price comes first.
	want := []any{19.95, 8.95, 12.99, 8.99, 22.99}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Locate($..price) values = %v, want %v", got, want)
	}
}

func TestLocateSelectors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		expr  string
		count int
	}{
		{name: "name_chain", expr: "$.store.bicycle.color", count: 1},
		{name: "relaxed_name_chain", expr: "store.bicycle.color", count: 1},
		{name: "array_index", expr: "$.store.book[1]", count: 1},
		{name: "wildcard", expr: "$.store.book[*]", count: 4},
		{name: "dot_wildcard", expr: "$.store.*", count: 2},
		{name: "slice", expr: "$.store.book[:2]", count: 2},
		{name: "slice_with_step", expr: "$.store.book[::2]", count: 2},
		{name: "union", expr: "$.store.book[0,2]", count: 2},
		{name: "quoted_union", expr: "$.store.book[0]['author','title']", count: 2},
		{name: "descendant_color", expr: "$..color", count: 1},
		{name: "root", expr: "$", count: 1},
		{name: "missing", expr: "$.store.basket", count: 0},
	}

	doc := decodeStore(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			locations, err := Locate(doc, tt.expr)
			if err != nil {
				t.Fatalf("Locate(%q) error = %v", tt.expr, err)
			}
			if len(locations) != tt.count {
				t.Fatalf("Locate(%q) matched %d location(s), want %d", tt.expr, len(locations), tt.count)
			}
		})
	}
}

func TestLocateQuotedNamesWithSelectorChars(t *testing.T) {
	t.Parallel()

	doc := map[string]any{
		"a,b":  1.0,
		"a]b":  2.0,
		"it's": 3.0,
	}

	tests := []struct {
		name string
		expr string
		want []any
	}{
		{name: "comma_in_name", expr: `$['a,b']`, want: []any{1.0}},
		{name: "bracket_in_name", expr: `$['a]b']`, want: []any{2.0}},
		{name: "escaped_quote_in_name", expr: `$['it\'s']`, want: []any{3.0}},
		{name: "double_quoted_comma", expr: `$["a,b"]`, want: []any{1.0}},
		{name: "union_of_awkward_names", expr: `$['a,b','a]b']`, want: []any{1.0, 2.0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			locations, err := Locate(doc, tt.expr)
			if err != nil {
				t.Fatalf("Locate(%q) error = %v", tt.expr, err)
			}

			got := make([]any, 0, len(locations))
			for _, location := range locations {
				got = append(got, location.Value(doc))
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Locate(%q) values = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}

	if _, err := Locate(doc, `$['a,b]`); !errors.Is(err, ErrSyntax) {
		t.Fatalf("Locate($['a,b]) error = %v, want ErrSyntax for unterminated quote", err)
	}
}

func TestUpdate(t *testing.T) {
	t.Parallel()

	t.Run("replace_name_match", func(t *testing.T) {
		doc := decodeStore(t)
		updated, err := Update(doc, "$.store.bicycle.color", 0, "blue")
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}

		colors, err := Query(updated, "$.store.bicycle.color")
		if err != nil {
			t.Fatalf("Query() error = %v", err)
		}
		if !reflect.DeepEqual(colors, []any{"blue"}) {
			t.Fatalf("color after update = %v, want [blue]", colors)
		}
	})

	t.Run("replace_nth_match", func(t *testing.T) {
		doc := decodeStore(t)
		updated, err := Update(doc, "$.store.book[*].price", 1, 10.0)
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}

		prices, err := Query(updated, "$.store.book[*].price")
		if err != nil {
			t.Fatalf("Query() error = %v", err)
		}
		if !reflect.DeepEqual(prices, []any{8.95, 10.0, 8.99, 22.99}) {
			t.Fatalf("prices after update = %v", prices)
		}
	})

	t.Run("replace_descendant_match", func(t *testing.T) {
		doc := decodeStore(t)
		updated, err := Update(doc, "..color", 0, "green")
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}

		colors, err := Query(updated, "$.store.bicycle.color")
		if err != nil {
			t.Fatalf("Query() error = %v", err)
		}
		if !reflect.DeepEqual(colors, []any{"green"}) {
			t.Fatalf("color after update = %v, want [green]", colors)
		}
	})

	t.Run("replace_quoted_name_with_comma", func(t *testing.T) {
		doc := map[string]any{"a,b": 1.0}
		updated, err := Update(doc, `$['a,b']`, 0, 9.0)
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}

		root, ok := updated.(map[string]any)
		if !ok {
			t.Fatalf("root after update is %T, want map", updated)
		}
		if root["a,b"] != 9.0 {
			t.Fatalf(`root["a,b"] = %v, want 9`, root["a,b"])
		}
	})

	t.Run("replace_root", func(t *testing.T) {
		updated, err := Update(decodeStore(t), "$", 0, map[string]any{"replaced": true})
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if !reflect.DeepEqual(updated, map[string]any{"replaced": true}) {
			t.Fatalf("root after update = %v", updated)
		}
	})

	t.Run("no_match", func(t *testing.T) {
		if _, err := Update(decodeStore(t), "$.store.book[9].price", 0, 1.0); !errors.Is(err, ErrNoMatch) {
			t.Fatalf("Update() error = %v, want ErrNoMatch", err)
		}
	})

	t.Run("match_index_out_of_range", func(t *testing.T) {
		if _, err := Update(decodeStore(t), "$.store.book[*].price", 9, 1.0); !errors.Is(err, ErrNoMatch) {
			t.Fatalf("Update() error = %v, want ErrNoMatch", err)
		}
	})

	t.Run("filter_not_supported", func(t *testing.T) {
		if _, err := Update(decodeStore(t), "$..book[?(@.isbn)].price", 0, 1.0); !errors.Is(err, ErrNotSupported) {
			t.Fatalf("Update() error = %v, want ErrNotSupported", err)
		}
	})

	t.Run("negative_index_not_supported", func(t *testing.T) {
		if _, err := Update(decodeStore(t), "$.store.book[-1]", 0, nil); !errors.Is(err, ErrNotSupported) {
			t.Fatalf("Update() error = %v, want ErrNotSupported", err)
		}
	})
}
