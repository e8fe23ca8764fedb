// Package config parses command line arguments for the jsonv tool.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"maps"
	"os"
	"strings"

	"github.com/jacoelho/jsonv/internal/exit"
	"github.com/jacoelho/jsonv/internal/output"
)

var (
	ErrNoArguments           = errors.New("no arguments provided")
	ErrNoCallFiles           = errors.New("no call files specified")
	ErrInvalidVariableFormat = errors.New("variable must be in format name=value")
	ErrEmptyVariableName     = errors.New("variable name cannot be empty")
)

// Config represents the complete configuration for the jsonv tool.
type Config struct {
	// Call execution
	CallFiles []string
	Debug     bool
	Repeat    int // Additional iterations after first run (negative = infinite)

	// Throttling
	RateLimit float64 // Calls per second (0 = unlimited)

	// Output
	OutputFormat output.OutputFormat

	// Template variables
	Variables map[string]any
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	if len(c.CallFiles) == 0 {
		return ErrNoCallFiles
	}

	for _, file := range c.CallFiles {
		if _, err := os.Stat(file); err != nil {
			return fmt.Errorf("call file %s not found: %w", file, err)
		}
	}

	return nil
}

// variablesFlag implements flag.Value for parsing multiple -variable flags.
type variablesFlag map[string]any

// String returns a string representation of the variables flag for flag.Value interface.
func (v variablesFlag) String() string {
	var pairs []string
	for k, val := range v {
		pairs = append(pairs, fmt.Sprintf("%s=%v", k, val))
	}
	return strings.Join(pairs, ",")
}

// Set parses and stores a variable in name=value format for flag.Value interface.
func (v variablesFlag) Set(value string) error {
	parts := strings.SplitN(value, "=", 2)
	if len(parts) != 2 {
		return fmt.Errorf("%w, got: %s", ErrInvalidVariableFormat, value)
	}

	name := strings.TrimSpace(parts[0])
	if name == "" {
		return ErrEmptyVariableName
	}

	v[name] = parts[1]
	return nil
}

// Parse parses command-line arguments and returns a validated Config.
// If parsing fails or help is requested, returns nil config and exit result.
func Parse(args []string) (*Config, *exit.Result) {
	if len(args) == 0 {
		return nil, exit.Errorf("Error: %v\n\n%s", ErrNoArguments, Usage())
	}

	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)

	// Suppress the default usage output since we handle it ourselves
	fs.Usage = func() {}
	// Suppress error output since we handle it ourselves
	fs.SetOutput(io.Discard)

	var (
		debug        = fs.Bool("debug", false, "Enable debug output showing call arguments and results")
		repeat       = fs.Int("repeat", 0, "Number of additional times to repeat call execution after the first run (negative for infinite loop)")
		format       = fs.String("format", "text", "Summary output format (text or json)")
		variables    = make(variablesFlag)
		variableFile = fs.String("variable-file", "", "Path to key=value file containing template variables")
		rateLimit    = fs.Float64("rate-limit", 0, "Rate limit in calls per second (0 for unlimited)")
	)

	fs.Var(variables, "variable", "Variable in format name=value (can be used multiple times)")

	if err := fs.Parse(args[1:]); err != nil {
		if err == flag.ErrHelp {
			return nil, exit.Success(Usage())
		}
		return nil, exit.Errorf("Error: failed to parse arguments: %v\n\n%s", err, Usage())
	}

	// Get remaining positional arguments as call files
	files := fs.Args()
	if len(files) == 0 {
		return nil, exit.Errorf("Error: %v\n\n%s", ErrNoCallFiles, Usage())
	}

	outputFormat, err := output.ParseOutputFormat(*format)
	if err != nil {
		return nil, exit.Errorf("Error: %v\n\n%s", err, Usage())
	}

	// Load variables with proper precedence: file variables first, then command-line variables
	var finalVariables map[string]any
	if *variableFile != "" {
		fileVariables, err := loadVariableFile(*variableFile)
		if err != nil {
			return nil, exit.Errorf("Error: failed to load variable file: %v\n\n%s", err, Usage())
		}
		finalVariables = make(map[string]any)
		maps.Copy(finalVariables, fileVariables)
	}

	// Command-line variables take precedence over file variables
	if len(variables) > 0 {
		if finalVariables == nil {
			finalVariables = make(map[string]any)
		}
		maps.Copy(finalVariables, variables)
	}

	config := &Config{
		CallFiles:    files,
		Debug:        *debug,
		Repeat:       *repeat,
		RateLimit:    *rateLimit,
		OutputFormat: outputFormat,
		Variables:    finalVariables,
	}

	if err := config.Validate(); err != nil {
		return nil, exit.Errorf("Error: %v\n\n%s", err, Usage())
	}

	return config, nil
}

// loadVariableFile loads variables from a key=value format file.
// It supports comments (lines starting with #) and empty lines.
// Returns an error if the file format is invalid or the file cannot be read.
func loadVariableFile(filename string) (map[string]any, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	variables := make(map[string]any)
	lines := strings.Split(string(data), "\n")

	for lineNum, line := range lines {
		line = strings.TrimSpace(line)

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid format at line %d: %s (expected key=value)", lineNum+1, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		if key == "" {
			return nil, fmt.Errorf("empty key at line %d: %s", lineNum+1, line)
		}

		variables[key] = value
	}

	return variables, nil
}

// Usage returns a usage string for the CLI tool.
func Usage() string {
	return `jsonv - JSON validation keyword runner

Usage: jsonv [options] <file1> [file2] ...

Options:
  --debug                 Enable debug output showing call arguments and results
  --repeat N              Number of additional times to repeat after first run (negative for infinite)
  --format FORMAT         Summary output format: text or json (default: text)
  --rate-limit N          Rate limit in calls per second (0 for unlimited)
  --variable NAME=VALUE   Variable in format name=value (can be used multiple times)
  --variable-file FILE    Path to key=value file containing template variables
  -h, --help              Show this help message

Examples:
  jsonv calls.yaml                           # Run call file once
  jsonv calls.yaml --debug                   # Run with debug output
  jsonv calls.yaml --rate-limit 5            # Rate limit to 5 calls per second
  jsonv calls.yaml --repeat 1                # Run call file twice (1 + 1 additional)
  jsonv calls.yaml --repeat -1               # Run call file infinitely
  jsonv file1.yaml file2.yaml                # Run multiple call files in sequence
  jsonv calls.yaml --format json             # Emit the summary as JSON
  jsonv calls.yaml --variable ENV=staging    # Pass variable to calls`
}
