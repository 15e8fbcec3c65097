// Package analysis defines the file record contract shared by every detector.
package analysis

import "strings"

// FileRecord is one repository file as delivered by the ingestion layer:
// a forward-slash relative path plus decoded text content. Records are
// immutable; detectors read them and never write back.
type FileRecord struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// BaseName returns the last path segment of the record's path.
func (r FileRecord) BaseName() string {
	if i := strings.LastIndex(r.Path, "/"); i >= 0 {
		return r.Path[i+1:]
	}
	return r.Path
}

// Ext returns the lowercased extension including the dot, or "" when the
// base name has no dot.
func (r FileRecord) Ext() string {
	return ExtOf(r.Path)
}

// TopFolder returns the first path segment, or "" for files at the
// repository root.
func (r FileRecord) TopFolder() string {
	if i := strings.Index(r.Path, "/"); i >= 0 {
		return r.Path[:i]
	}
	return ""
}

// ExtOf extracts the lowercased extension from a path.
func ExtOf(path string) string {
	base := path
	if i := strings.LastIndex(base, "/"); i >= 0 {
		base = base[i+1:]
	}
	i := strings.LastIndex(base, ".")
	if i < 0 {
		return ""
	}
	return strings.ToLower(base[i:])
}

// Valid reports whether the record satisfies the basic input contract.
// A record without a path cannot be attributed to anything and is skipped
// by every consumer; a missing body is fine (empty files are legal).
func (r FileRecord) Valid() bool {
	return r.Path != ""
}

// Sanitize filters out records that violate the input contract. The
// remaining records keep their original order. It never fails: a partial
// model over partial data beats no model.
func Sanitize(records []FileRecord) []FileRecord {
	out := make([]FileRecord, 0, len(records))
	for _, r := range records {
		if r.Valid() {
			out = append(out, r)
		}
	}
	return out
}

// CountNonBlankLines counts lines that contain at least one
// non-whitespace character.
func CountNonBlankLines(content string) int {
	n := 0
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) != "" {
			n++
		}
	}
	return n
}
