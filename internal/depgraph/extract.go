package depgraph

import (
	"regexp"
	"strings"
)

// Import extraction is syntactic only: leading import statements for the
// Python family, import/require/dynamic-import specifiers for the
// JavaScript family. No other language family is parsed.

var (
	rePyImport = regexp.MustCompile(`^import\s+([\w.]+)`)
	rePyFrom   = regexp.MustCompile(`^from\s+([\w.]+)\s+import`)

	reJSImport  = regexp.MustCompile(`import\s+.*?from\s+['"]([^'"]+)['"]`)
	reJSRequire = regexp.MustCompile(`require\s*\(['"]([^'"]+)['"]\)`)
	reJSDynamic = regexp.MustCompile(`import\s*\(['"]([^'"]+)['"]\)`)
)

// pythonImports extracts top-level module names from Python source.
func pythonImports(content string) []string {
	var found []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		var module string
		if m := rePyImport.FindStringSubmatch(line); m != nil {
			module = m[1]
		} else if m := rePyFrom.FindStringSubmatch(line); m != nil {
			module = m[1]
		} else {
			continue
		}
		// Only the component before the first dot matters for resolution.
		if i := strings.Index(module, "."); i >= 0 {
			module = module[:i]
		}
		found = append(found, module)
	}
	return dedup(found)
}

// jsImports extracts module specifiers from JavaScript or TypeScript
// source. Relative specifiers are dropped; scoped packages keep their
// two-segment identifier.
func jsImports(content string) []string {
	var found []string
	for _, re := range []*regexp.Regexp{reJSImport, reJSRequire, reJSDynamic} {
		for _, m := range re.FindAllStringSubmatch(content, -1) {
			spec := m[1]
			if strings.HasPrefix(spec, ".") || strings.HasPrefix(spec, "/") {
				continue
			}
			parts := strings.Split(spec, "/")
			pkg := parts[0]
			if strings.HasPrefix(pkg, "@") && len(parts) > 1 {
				pkg = parts[0] + "/" + parts[1]
			}
			found = append(found, pkg)
		}
	}
	return dedup(found)
}

// extractImports dispatches on the file extension. Unsupported extensions
// yield nothing, which simply leaves the file as a leaf node.
func extractImports(path, content string) []string {
	switch {
	case strings.HasSuffix(path, ".py"):
		return pythonImports(content)
	case strings.HasSuffix(path, ".js"),
		strings.HasSuffix(path, ".jsx"),
		strings.HasSuffix(path, ".ts"),
		strings.HasSuffix(path, ".tsx"):
		return jsImports(content)
	}
	return nil
}

func dedup(in []string) []string {
	seen := map[string]bool{}
	out := in[:0]
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
