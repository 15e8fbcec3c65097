// Package ingest loads a local repository directory into the ordered file
// records the analysis pipeline consumes. It owns every filtering rule:
// ignored directories, allowed extensions, and binary detection.
package ingest

import (
	"strings"
	"unicode/utf8"
)

// ignoredDirectories are skipped entirely during the walk.
var ignoredDirectories = map[string]bool{
	".git":          true,
	"node_modules":  true,
	"__pycache__":   true,
	".pytest_cache": true,
	".mypy_cache":   true,
	".venv":         true,
	"venv":          true,
	"env":           true,
	"dist":          true,
	"build":         true,
	"vendor":        true,
	"target":        true,
	".idea":         true,
	".vscode":       true,
	"coverage":      true,
	".next":         true,
	".cache":        true,
}

// allowedExtensions bound what counts as analyzable text.
var allowedExtensions = map[string]bool{
	".py": true, ".js": true, ".ts": true, ".jsx": true, ".tsx": true,
	".java": true, ".c": true, ".cpp": true, ".h": true, ".hpp": true,
	".cs": true, ".go": true, ".rs": true, ".rb": true, ".php": true,
	".swift": true, ".kt": true, ".scala": true, ".r": true, ".m": true,
	".sql": true, ".sh": true, ".bash": true,
	".yaml": true, ".yml": true, ".json": true, ".xml": true,
	".md": true, ".txt": true, ".rst": true,
	".toml": true, ".ini": true, ".cfg": true,
}

// filenameAllowlist admits extension-less files that matter to detection.
var filenameAllowlist = map[string]bool{
	"Dockerfile": true,
	"Makefile":   true,
}

// IsIgnoredPath reports whether any segment of the path names an ignored
// directory.
func IsIgnoredPath(path string) bool {
	for _, part := range strings.Split(path, "/") {
		if ignoredDirectories[part] {
			return true
		}
	}
	return false
}

// IsAllowedFile reports whether the file's extension (or exact name) is
// analyzable.
func IsAllowedFile(path string) bool {
	base := path
	if i := strings.LastIndex(base, "/"); i >= 0 {
		base = base[i+1:]
	}
	if filenameAllowlist[base] {
		return true
	}
	i := strings.LastIndex(base, ".")
	if i < 0 {
		return false
	}
	return allowedExtensions[strings.ToLower(base[i:])]
}

const binarySampleSize = 8192

// IsBinary applies a cheap sniff: a NUL byte, or more than 30% control
// characters in the first 8 KiB, marks the content as binary.
func IsBinary(content []byte) bool {
	sample := content
	if len(sample) > binarySampleSize {
		sample = sample[:binarySampleSize]
	}
	if len(sample) == 0 {
		return false
	}

	nonText := 0
	for _, b := range sample {
		if b == 0 {
			return true
		}
		if b < 32 && b != '\t' && b != '\n' && b != '\r' {
			nonText++
		}
	}
	return float64(nonText)/float64(len(sample)) > 0.3
}

// DecodeText converts raw bytes to a string, replacing invalid UTF-8
// sequences so downstream consumers always see decodable text.
func DecodeText(raw []byte) string {
	if utf8.Valid(raw) {
		return string(raw)
	}
	return strings.ToValidUTF8(string(raw), string(utf8.RuneError))
}
