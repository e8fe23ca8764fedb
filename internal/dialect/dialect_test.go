package dialect

import (
	"errors"
	"testing"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		expr string
		want Kind
	}{
		{name: "rooted_path", expr: "$.store.book[0].price", want: KindPath},
		{name: "descendant_path", expr: "..price", want: KindPath},
		{name: "relaxed_path", expr: "store.book[0].price", want: KindPath},
		{name: "bracket_path", expr: "[0].name", want: KindPath},
		{name: "current_node_path", expr: "@.price", want: KindPath},
		{name: "class_selector", expr: ".author", want: KindSelector},
		{name: "pseudo_class_selector", expr: ":root", want: KindSelector},
		{name: "universal_selector", expr: "* > .price", want: KindSelector},
		{name: "type_selector", expr: "string.title", want: KindSelector},
		{name: "type_selector_with_pseudo", expr: "string:first-child", want: KindSelector},
		{name: "bare_type_selector", expr: "number", want: KindSelector},
		{name: "type_prefix_of_plain_name", expr: "numbers.total", want: KindPath},
		{name: "rooted_type_name_key", expr: "$.string.title", want: KindPath},
		{name: "plain_name", expr: "store", want: KindPath},
		{name: "leading_whitespace", expr: "  .author", want: KindSelector},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Detect(tt.expr)
			if err != nil {
				t.Fatalf("Detect(%q) error = %v", tt.expr, err)
			}
			if got != tt.want {
				t.Fatalf("Detect(%q) = %q, want %q", tt.expr, got, tt.want)
			}
		})
	}
}

func TestDetectEmpty(t *testing.T) {
	t.Parallel()

	for _, expr := range []string{"", "   ", "\t"} {
		if _, err := Detect(expr); !errors.Is(err, ErrEmpty) {
			t.Fatalf("Detect(%q) error = %v, want ErrEmpty", expr, err)
		}
	}
}
