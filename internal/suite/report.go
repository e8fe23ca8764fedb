package suite

import (
	"encoding/json"
	"fmt"
	"io"
)

// Format determines how summaries are printed.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// GroupResult is the per-group conversion outcome.
type GroupResult struct {
	Source     string `json:"source"`
	OutputPath string `json:"output_path,omitempty"`
	Tests      int    `json:"tests"`
	Converted  bool   `json:"converted"`
	Reason     string `json:"reason,omitempty"`
}

// Summary aggregates outcomes across a case file conversion.
type Summary struct {
	Total     int           `json:"total"`
	Converted int           `json:"converted"`
	Skipped   int           `json:"skipped"`
	Tests     int           `json:"tests"`
	Groups    []GroupResult `json:"groups,omitempty"`
}

// Add records one group result into the summary.
func (s *Summary) Add(result GroupResult) {
	s.Total++
	s.Tests += result.Tests
	s.Groups = append(s.Groups, result)

	if result.Converted {
		s.Converted++
	} else {
		s.Skipped++
	}
}

// HasErrors reports whether any group failed to convert.
func (s Summary) HasErrors() bool {
	return s.Skipped > 0
}

// Write prints the summary in the requested format.
func (s Summary) Write(w io.Writer, format Format) error {
	switch format {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(s)
	case FormatText, "":
		writef := func(format string, args ...any) error {
			if _, err := fmt.Fprintf(w, format, args...); err != nil {
				return err
			}
			return nil
		}

		if err := writef("Case file conversion summary\n"); err != nil {
			return err
		}
		if err := writef("  groups: %d\n", s.Total); err != nil {
			return err
		}
		if err := writef("  converted: %d\n", s.Converted); err != nil {
			return err
		}
		if err := writef("  skipped: %d\n", s.Skipped); err != nil {
			return err
		}
		if err := writef("  tests: %d\n", s.Tests); err != nil {
			return err
		}

		wroteHeader := false
		for _, group := range s.Groups {
			if group.Converted {
				continue
			}
			if !wroteHeader {
				if err := writef("\nSkipped groups:\n"); err != nil {
					return err
				}
				wroteHeader = true
			}
			if err := writef("  - %s: %s\n", group.Source, group.Reason); err != nil {
				return err
			}
		}

		return nil
	default:
		return fmt.Errorf("unsupported report format: %s", format)
	}
}
