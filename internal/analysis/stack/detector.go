// Package stack detects frameworks, data stores, and infrastructure tooling
// from repository files using declarative pattern rules.
package stack

import (
	"sort"
	"strings"

	"github.com/repolens/repolens/internal/analysis"
)

// Rule describes one technology as a set of optional pattern groups. A rule
// fires when any group matches any file; firing is binary, there is no
// partial credit.
type Rule struct {
	// Name is the technology label exposed in results.
	Name string

	// Imports are case-insensitive substrings searched in file content.
	Imports []string

	// Dependencies are package names searched in dependency manifests
	// (requirements lists, project manifests, package manifests). A
	// package-manifest match requires the name to appear quoted.
	Dependencies []string

	// Config are case-sensitive substrings searched anywhere in content,
	// for connection-string style markers.
	Config []string

	// Filenames are substrings matched against the file path.
	Filenames []string

	// Extensions are path suffixes. When ContentMarkers is non-empty, an
	// extension match only counts if the file also contains one of the
	// markers; the extension alone is insufficient.
	Extensions []string

	// ContentMarkers corroborate Extensions matches.
	ContentMarkers []string
}

// Manifest filenames recognized by the dependency group, and whether a
// match in that manifest must be quoted.
var manifests = []struct {
	name   string
	quoted bool
}{
	{"requirements.txt", false},
	{"pyproject.toml", false},
	{"package.json", true},
}

// Detect evaluates every rule against every record and returns the names of
// the rules that fired, sorted lexicographically.
func Detect(rules []Rule, records []analysis.FileRecord) []string {
	var fired []string
	for _, rule := range rules {
		if rule.Matches(records) {
			fired = append(fired, rule.Name)
		}
	}
	sort.Strings(fired)
	return fired
}

// Matches reports whether any pattern group of the rule matches any record.
func (r Rule) Matches(records []analysis.FileRecord) bool {
	for _, rec := range records {
		if r.matchesRecord(rec) {
			return true
		}
	}
	return false
}

func (r Rule) matchesRecord(rec analysis.FileRecord) bool {
	if len(r.Imports) > 0 && matchImports(rec.Content, r.Imports) {
		return true
	}
	if len(r.Dependencies) > 0 && matchDependencies(rec.Path, rec.Content, r.Dependencies) {
		return true
	}
	for _, cfg := range r.Config {
		if strings.Contains(rec.Content, cfg) {
			return true
		}
	}
	for _, name := range r.Filenames {
		if strings.Contains(rec.Path, name) {
			return true
		}
	}
	for _, ext := range r.Extensions {
		if !strings.HasSuffix(rec.Path, ext) {
			continue
		}
		if len(r.ContentMarkers) == 0 {
			return true
		}
		for _, marker := range r.ContentMarkers {
			if strings.Contains(rec.Content, marker) {
				return true
			}
		}
	}
	return false
}

func matchImports(content string, patterns []string) bool {
	lower := strings.ToLower(content)
	for _, p := range patterns {
		if strings.Contains(lower, strings.ToLower(p)) {
			return true
		}
	}
	return false
}

func matchDependencies(path, content string, names []string) bool {
	for _, m := range manifests {
		if !strings.Contains(path, m.name) {
			continue
		}
		if m.quoted {
			for _, name := range names {
				if strings.Contains(content, `"`+name+`"`) || strings.Contains(content, `'`+name+`'`) {
					return true
				}
			}
			continue
		}
		lower := strings.ToLower(content)
		for _, name := range names {
			if strings.Contains(lower, strings.ToLower(name)) {
				return true
			}
		}
	}
	return false
}

// DetectFrameworks flags application frameworks present in the repository.
func DetectFrameworks(records []analysis.FileRecord) []string {
	return Detect(FrameworkRules, records)
}

// DetectDatabases flags data stores referenced by the repository.
func DetectDatabases(records []analysis.FileRecord) []string {
	return Detect(DatabaseRules, records)
}

// DetectInfrastructure flags DevOps and infrastructure tooling.
func DetectInfrastructure(records []analysis.FileRecord) []string {
	return Detect(InfrastructureRules, records)
}
