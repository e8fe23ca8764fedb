package suite

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jacoelho/jsonv/internal/call"
)

var errOutputExists = errors.New("output file already exists")

// Run executes the case file conversion.
func Run(cfg Config) (Summary, error) {
	file, err := os.Open(cfg.InputFile)
	if err != nil {
		return Summary{}, fmt.Errorf("open input file: %w", err)
	}
	defer file.Close()

	groups, err := Parse(file)
	if err != nil {
		return Summary{}, fmt.Errorf("parse case file: %w", err)
	}

	planner := NewPlanner()
	var summary Summary

	if !cfg.DryRun {
		if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
			return Summary{}, fmt.Errorf("create output directory: %w", err)
		}
	}

	for _, group := range groups {
		relativePath := planner.Next(group.Description)
		absolutePath := filepath.Join(cfg.OutputDir, relativePath)

		entry := GroupResult{
			Source:     group.Description,
			OutputPath: relativePath,
			Tests:      len(group.Tests),
			Converted:  true,
		}

		calls, err := Convert(group)
		switch {
		case err != nil:
			entry.Converted = false
			entry.Reason = err.Error()
		case len(calls) == 0:
			entry.Converted = false
			entry.Reason = "group has no tests"
		}

		if entry.Converted && !cfg.DryRun {
			if err := writeCallFile(absolutePath, cfg.Overwrite, calls); err != nil {
				if errors.Is(err, errOutputExists) {
					entry.Converted = false
					entry.Reason = fmt.Sprintf("output file exists and --overwrite is false: %s", absolutePath)
				} else {
					return Summary{}, fmt.Errorf("write output file: %w", err)
				}
			}
		}

		summary.Add(entry)
	}

	return summary, nil
}

func writeCallFile(filename string, overwrite bool, calls []call.Call) error {
	if !overwrite {
		if _, err := os.Stat(filename); err == nil {
			return errOutputExists
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("stat output file: %w", err)
		}
	}

	payload, err := Encode(calls)
	if err != nil {
		return err
	}

	if err := os.WriteFile(filename, payload, 0644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	return nil
}
