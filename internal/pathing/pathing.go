// Package pathing resolves file arguments referenced from call files.
package pathing

import (
	"path/filepath"
	"strings"
)

// NormalizeInputPath trims path-like input from config and call fields.
func NormalizeInputPath(path string) string {
	return strings.TrimSpace(path)
}

// IsAbsoluteLike reports whether the path should be treated as absolute
// regardless of host OS path semantics.
func IsAbsoluteLike(path string) bool {
	path = NormalizeInputPath(path)
	if path == "" {
		return false
	}
	if filepath.IsAbs(path) {
		return true
	}
	if strings.HasPrefix(path, `\\`) || strings.HasPrefix(path, `//`) {
		return true
	}
	if strings.HasPrefix(path, "/") {
		return true
	}
	if len(path) >= 3 && isASCIIAlpha(path[0]) && path[1] == ':' && (path[2] == '\\' || path[2] == '/') {
		return true
	}

	return false
}

// ShouldRebaseFileArg reports whether a file argument path should be
// rebased from input file location to output file location.
func ShouldRebaseFileArg(fileArg string) bool {
	fileArg = NormalizeInputPath(fileArg)
	if fileArg == "" || IsAbsoluteLike(fileArg) {
		return false
	}
	if hasTemplateMarkers(fileArg) && strings.HasPrefix(fileArg, "{{") {
		return false
	}

	return true
}

// RebaseFileArgPath rewrites relative file argument paths from the source
// suite location to the generated call file location.
func RebaseFileArgPath(fileArg string, inputFile string, outputFile string) string {
	fileArg = NormalizeInputPath(fileArg)
	if !ShouldRebaseFileArg(fileArg) {
		return fileArg
	}

	inputDir := filepath.Dir(inputFile)
	sourceAbsolute := filepath.Clean(filepath.Join(inputDir, fileArg))
	outputDir := filepath.Dir(outputFile)

	relative, err := filepath.Rel(outputDir, sourceAbsolute)
	if err != nil || NormalizeInputPath(relative) == "" {
		return filepath.ToSlash(sourceAbsolute)
	}

	return filepath.ToSlash(relative)
}

// ResolveFileArgPath resolves a possibly-relative file argument using the
// call file base directory while preserving absolute-like paths.
func ResolveFileArgPath(filePath string, baseDir string) string {
	filePath = NormalizeInputPath(filePath)
	if filePath == "" {
		return ""
	}
	if IsAbsoluteLike(filePath) || NormalizeInputPath(baseDir) == "" {
		return filePath
	}

	return filepath.Join(baseDir, filePath)
}

func hasTemplateMarkers(path string) bool {
	return strings.Contains(path, "{{") || strings.Contains(path, "}}")
}

func isASCIIAlpha(char byte) bool {
	return (char >= 'a' && char <= 'z') || (char >= 'A' && char <= 'Z')
}
