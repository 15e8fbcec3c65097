// Package entrypoint locates process entry files, framework bootstrap code,
// and container start commands.
package entrypoint

import (
	"regexp"
	"strings"

	"github.com/repolens/repolens/internal/analysis"
)

// ApplicationFile is a file whose bare name matches a per-language entry
// convention. A name shared by several languages yields one candidate per
// language.
type ApplicationFile struct {
	Path     string `json:"path"`
	Language string `json:"type"`
	Filename string `json:"filename"`
}

// FrameworkEntry is a file whose content matches a framework bootstrap
// signature.
type FrameworkEntry struct {
	Path      string `json:"path"`
	Framework string `json:"framework"`
}

// DockerEntry is a verbatim CMD or ENTRYPOINT line from a container build
// file.
type DockerEntry struct {
	Path    string `json:"path"`
	Command string `json:"command"`
}

// Set groups the three entry-point lists for one analysis run. Lists keep
// discovery order; the first two are deduplicated by path.
type Set struct {
	ApplicationFiles []ApplicationFile `json:"application_files"`
	FrameworkEntries []FrameworkEntry  `json:"framework_entrypoints"`
	DockerEntries    []DockerEntry     `json:"docker_entrypoints"`
}

// languageEntry pairs a language with its conventional entry filenames.
// Matching is exact and case-sensitive on the bare file name.
type languageEntry struct {
	language  string
	filenames []string
}

var entryFilenames = []languageEntry{
	{"Python", []string{"main.py", "app.py", "wsgi.py", "asgi.py", "run.py", "__main__.py"}},
	{"JavaScript", []string{"index.js", "server.js", "app.js", "main.js"}},
	{"TypeScript", []string{"index.ts", "server.ts", "app.ts", "main.ts"}},
	{"Go", []string{"main.go"}},
	{"Java", []string{"Main.java", "Application.java"}},
	{"Rust", []string{"main.rs"}},
}

// frameworkPatterns are ordered bootstrap signature groups; a single match
// inside a group flags the framework for that file. All matching is
// case-insensitive.
type frameworkPattern struct {
	framework string
	patterns  []*regexp.Regexp
}

var frameworkPatterns = []frameworkPattern{
	{"Flask", compileAll(
		`app\s*=\s*Flask\(`,
		`@app\.route\(`,
		`if\s+__name__\s*==\s*['"]__main__['"].*app\.run\(`,
	)},
	{"FastAPI", compileAll(
		`app\s*=\s*FastAPI\(`,
		`@app\.get\(`,
		`@app\.post\(`,
		`uvicorn\.run\(`,
	)},
	{"Django", compileAll(
		`DJANGO_SETTINGS_MODULE`,
		`from\s+django\.core\.wsgi\s+import\s+get_wsgi_application`,
		`from\s+django\.core\.asgi\s+import\s+get_asgi_application`,
	)},
	{"Express", compileAll(
		`express\(\)`,
		`app\.listen\(`,
		`const\s+app\s*=\s*express\(`,
		`var\s+app\s*=\s*express\(`,
	)},
	{"NestJS", compileAll(
		`NestFactory\.create`,
		`@Module\(`,
		`bootstrap\(\)`,
	)},
}

func compileAll(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, regexp.MustCompile(`(?i)`+e))
	}
	return out
}

const dockerfileName = "Dockerfile"

// Find scans the records and returns every detected entry point.
func Find(records []analysis.FileRecord) Set {
	var set Set
	seenFramework := map[string]bool{}

	for _, rec := range records {
		name := rec.BaseName()

		for _, le := range entryFilenames {
			for _, fn := range le.filenames {
				if name == fn {
					set.ApplicationFiles = append(set.ApplicationFiles, ApplicationFile{
						Path:     rec.Path,
						Language: le.language,
						Filename: name,
					})
				}
			}
		}

		for _, fp := range frameworkPatterns {
			if seenFramework[rec.Path] {
				break
			}
			if matchesAny(rec.Content, fp.patterns) {
				set.FrameworkEntries = append(set.FrameworkEntries, FrameworkEntry{
					Path:      rec.Path,
					Framework: fp.framework,
				})
				seenFramework[rec.Path] = true
			}
		}

		if name == dockerfileName || strings.Contains(rec.Path, dockerfileName) {
			for _, cmd := range dockerDirectives(rec.Content) {
				set.DockerEntries = append(set.DockerEntries, DockerEntry{Path: rec.Path, Command: cmd})
			}
		}
	}

	set.ApplicationFiles = dedupApplicationFiles(set.ApplicationFiles)
	return set
}

func matchesAny(content string, patterns []*regexp.Regexp) bool {
	for _, re := range patterns {
		if re.MatchString(content) {
			return true
		}
	}
	return false
}

// dockerDirectives captures trimmed lines that begin with a run directive.
// Entries are not deduplicated: a build file may legitimately hold several.
func dockerDirectives(content string) []string {
	var out []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "CMD") || strings.HasPrefix(line, "ENTRYPOINT") {
			out = append(out, line)
		}
	}
	return out
}

// dedupApplicationFiles keeps the first record per path, preserving order.
func dedupApplicationFiles(in []ApplicationFile) []ApplicationFile {
	seen := map[string]bool{}
	out := in[:0]
	for _, af := range in {
		if seen[af.Path] {
			continue
		}
		seen[af.Path] = true
		out = append(out, af)
	}
	return out
}
