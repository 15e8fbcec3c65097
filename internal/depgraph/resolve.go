package depgraph

import "strings"

// resolver maps extracted import identifiers onto files known to exist in
// the repository. Known paths are normalized to dotted module-like names
// (extension stripped, slashes replaced by dots).
//
// The final contains/ends-with fallback is deliberately loose: a short
// import name can land on an unrelated file that merely contains it. That
// is a documented limitation of the heuristic, pinned by tests, not a bug
// to tighten silently.
type resolver struct {
	entries []resolverEntry // in input order, for deterministic fallback
	byNorm  map[string]string
	byPath  map[string]bool
}

type resolverEntry struct {
	norm, path string
}

func newResolver(paths []string) *resolver {
	r := &resolver{
		byNorm: make(map[string]string, len(paths)),
		byPath: make(map[string]bool, len(paths)),
	}
	for _, p := range paths {
		if p == "" {
			continue
		}
		norm := normalizePath(p)
		r.entries = append(r.entries, resolverEntry{norm: norm, path: p})
		if _, dup := r.byNorm[norm]; !dup {
			r.byNorm[norm] = p
		}
		r.byPath[p] = true
	}
	return r
}

// normalizePath strips the extension and replaces path separators with
// dots, turning "src/app.py" into "src.app".
func normalizePath(path string) string {
	if i := strings.LastIndex(path, "."); i >= 0 {
		path = path[:i]
	}
	return strings.ReplaceAll(path, "/", ".")
}

// resolve returns the repository file an identifier refers to, or "" when
// nothing matches. A miss is a dropped edge, never an error.
func (r *resolver) resolve(ident string) string {
	if ident == "" {
		return ""
	}
	// Identifier already names a known file verbatim.
	if r.byPath[ident] {
		return ident
	}
	if p, ok := r.byNorm[ident]; ok {
		return p
	}
	// Loose fallback: first known file whose normalized form contains or
	// ends with the identifier, in input order.
	for _, e := range r.entries {
		if strings.Contains(e.norm, ident) || strings.HasSuffix(e.norm, ident) {
			return e.path
		}
	}
	return ""
}
