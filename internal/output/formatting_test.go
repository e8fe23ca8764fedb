package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestParseOutputFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   string
		want    OutputFormat
		wantErr bool
	}{
		{
			name:  "empty_defaults_to_text",
			value: "",
			want:  FormatText,
		},
		{
			name:  "text",
			value: "text",
			want:  FormatText,
		},
		{
			name:  "json",
			value: "json",
			want:  FormatJSON,
		},
		{
			name:    "unknown",
			value:   "xml",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseOutputFormat(tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseOutputFormat(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Fatalf("ParseOutputFormat(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestSummaryFormatText(t *testing.T) {
	t.Parallel()

	summary := NewSummary(2)
	summary.Add(FileResult{
		Filename:  "smoke.yaml",
		CallCount: 3,
		Duration:  100 * time.Millisecond,
	})
	summary.Add(FileResult{
		Filename:  "broken.yaml",
		CallCount: 1,
		Duration:  50 * time.Millisecond,
		Error:     errors.New("assertion failed"),
	})
	summary.SetTotalDuration(time.Second)

	var out bytes.Buffer
	if err := summary.FormatText(&out); err != nil {
		t.Fatalf("FormatText() error = %v", err)
	}

	text := out.String()
	for _, want := range []string{
		"smoke.yaml: Success (3 call(s) in 100 ms)",
		"broken.yaml: Failed: assertion failed (1 call(s) in 50 ms)",
		"Executed files: 2",
		"Executed calls: 4",
		"Succeeded files: 1",
		"Failed files:   1",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("FormatText() output missing %q:\n%s", want, text)
		}
	}
}

func TestSummaryFormatJSON(t *testing.T) {
	t.Parallel()

	summary := NewSummary(1)
	summary.Add(FileResult{
		Filename:  "test.yaml",
		CallCount: 2,
		Duration:  1500 * time.Millisecond,
		Error:     errors.New("boom"),
	})
	summary.SetTotalDuration(2 * time.Second)

	var out bytes.Buffer
	if err := summary.Format(FormatJSON, &out); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var payload map[string]any
	if err := json.Unmarshal(out.Bytes(), &payload); err != nil {
		t.Fatalf("result is not valid JSON: %v", err)
	}

	if payload["executed_files"] != float64(1) {
		t.Fatalf("executed_files = %v, want 1", payload["executed_files"])
	}
	if payload["failed_files"] != float64(1) {
		t.Fatalf("failed_files = %v, want 1", payload["failed_files"])
	}
}

func TestFormatAggregatedJSON(t *testing.T) {
	t.Parallel()

	first := NewSummary(1)
	first.Add(FileResult{Filename: "first.yaml", CallCount: 1, Duration: 100 * time.Millisecond})
	first.SetTotalDuration(200 * time.Millisecond)

	second := NewSummary(1)
	second.Add(FileResult{Filename: "second.yaml", CallCount: 2, Duration: 100 * time.Millisecond})
	second.SetTotalDuration(300 * time.Millisecond)

	var out bytes.Buffer
	if err := FormatAggregated(FormatJSON, &out, []*Summary{first, second}); err != nil {
		t.Fatalf("FormatAggregated() error = %v", err)
	}

	var payload map[string]any
	if err := json.Unmarshal(out.Bytes(), &payload); err != nil {
		t.Fatalf("aggregated result is not valid JSON: %v", err)
	}

	if _, ok := payload["iterations"]; !ok {
		t.Fatalf("iterations key missing from aggregated JSON payload")
	}
	if _, ok := payload["aggregated"]; !ok {
		t.Fatalf("aggregated key missing from aggregated JSON payload")
	}
}

func TestFormatAggregatedSingleIterationCollapses(t *testing.T) {
	t.Parallel()

	only := NewSummary(1)
	only.Add(FileResult{Filename: "only.yaml", CallCount: 1, Duration: 100 * time.Millisecond})
	only.SetTotalDuration(100 * time.Millisecond)

	var out bytes.Buffer
	if err := FormatAggregated(FormatJSON, &out, []*Summary{only}); err != nil {
		t.Fatalf("FormatAggregated() error = %v", err)
	}

	var payload map[string]any
	if err := json.Unmarshal(out.Bytes(), &payload); err != nil {
		t.Fatalf("single iteration result is not valid JSON: %v", err)
	}

	if _, ok := payload["iterations"]; ok {
		t.Fatalf("single iteration should render as a plain summary, got aggregated payload")
	}
	if payload["executed_files"] != float64(1) {
		t.Fatalf("executed_files = %v, want 1", payload["executed_files"])
	}
}

func TestFormatAggregatedTextMultipleIterations(t *testing.T) {
	t.Parallel()

	first := NewSummary(1)
	first.Add(FileResult{Filename: "first.yaml", CallCount: 1, Duration: 100 * time.Millisecond})
	first.SetTotalDuration(200 * time.Millisecond)

	second := NewSummary(1)
	second.Add(FileResult{Filename: "second.yaml", CallCount: 2, Duration: 100 * time.Millisecond, Error: errors.New("boom")})
	second.SetTotalDuration(300 * time.Millisecond)

	var out bytes.Buffer
	if err := FormatAggregated(FormatText, &out, []*Summary{first, second}); err != nil {
		t.Fatalf("FormatAggregated() error = %v", err)
	}

	text := out.String()
	for _, want := range []string{
		"ITERATION RESULTS:",
		"Iteration 1: SUCCESS",
		"Iteration 2: FAILED",
		"AGGREGATED RESULTS:",
		"Total iterations:    2",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("FormatAggregated() output missing %q:\n%s", want, text)
		}
	}
}

func TestFormatDebugJSON(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	if err := FormatDebug(FormatJSON, &out, "CALL FILE", []byte("- keyword: validate_jsonschema")); err != nil {
		t.Fatalf("FormatDebug() error = %v", err)
	}

	var payload map[string]any
	if err := json.Unmarshal(out.Bytes(), &payload); err != nil {
		t.Fatalf("debug result is not valid JSON: %v", err)
	}

	if payload["description"] != "CALL FILE" {
		t.Fatalf("description = %v, want CALL FILE", payload["description"])
	}
}

func TestFormatDebugText(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	if err := FormatDebug(FormatText, &out, "CALL FILE", []byte("- keyword: get_elements")); err != nil {
		t.Fatalf("FormatDebug() error = %v", err)
	}

	text := out.String()
	if !strings.Contains(text, "CALL FILE:") {
		t.Fatalf("FormatDebug() output missing description:\n%s", text)
	}
	if !strings.Contains(text, "- keyword: get_elements") {
		t.Fatalf("FormatDebug() output missing payload:\n%s", text)
	}
}
