// Package structure assigns semantic roles to top-level repository folders.
package structure

import (
	"strings"

	"github.com/repolens/repolens/internal/analysis"
)

// Role is the semantic category of a folder.
type Role string

const (
	RoleFrontend       Role = "frontend"
	RoleBackend        Role = "backend"
	RoleConfig         Role = "config"
	RoleInfrastructure Role = "infrastructure"
	RoleScripts        Role = "scripts"
	RoleTests          Role = "tests"
	RoleDocs           Role = "docs"
	RoleDatabase       Role = "database"
	RoleMisc           Role = "misc"
)

// Classification describes one folder's assigned role.
type Classification struct {
	Role      Role `json:"role"`
	FileCount int  `json:"file_count"`
}

// namePattern binds a role to the name fragments that imply it. Iteration
// order is fixed: the first role whose fragment appears in the folder name
// wins, so reordering entries changes results.
type namePattern struct {
	role      Role
	fragments []string
}

var namePatterns = []namePattern{
	{RoleFrontend, []string{"frontend", "client", "web", "ui", "app", "public", "static", "assets"}},
	{RoleBackend, []string{"backend", "server", "api", "services", "core", "src/api", "app/api"}},
	{RoleConfig, []string{"config", "configuration", "settings", "env"}},
	{RoleInfrastructure, []string{"infra", "infrastructure", "deploy", "deployment", "k8s", "kubernetes", "docker", ".github", ".gitlab"}},
	{RoleScripts, []string{"scripts", "bin", "tools", "utils", "utilities"}},
	{RoleTests, []string{"tests", "test", "__tests__", "spec", "specs"}},
	{RoleDocs, []string{"docs", "documentation", "doc"}},
	{RoleDatabase, []string{"database", "db", "migrations", "seeds", "fixtures"}},
}

// Path segments that signal a role more strongly than raw extension counts.
var (
	frontendSegments = []string{"components", "pages", "views", "styles", "hooks"}
	backendSegments  = []string{"routes", "controllers", "models", "middleware", "handlers"}
)

// Extension buckets for the content-composition fallback.
var (
	frontendExts = extSet(".jsx", ".tsx", ".vue", ".svelte", ".html", ".css", ".scss", ".sass")
	backendExts  = extSet(".py", ".go", ".java", ".rs", ".rb", ".php")
	configExts   = extSet(".yaml", ".yml", ".json", ".toml", ".ini", ".env", ".config")
	scriptExts   = extSet(".sh", ".bash", ".zsh", ".ps1")
)

func extSet(exts ...string) map[string]bool {
	m := make(map[string]bool, len(exts))
	for _, e := range exts {
		m[e] = true
	}
	return m
}

// Thresholds hold the empirically chosen cutoffs for the content fallback.
// They are parameters rather than constants; the literal comparisons
// (strictly greater) are part of the contract.
type Thresholds struct {
	// MinDominantFiles is the absolute floor a frontend or backend count
	// must exceed, on top of exceeding the opposing count.
	MinDominantFiles int
	// MajorityRatio is the fraction of the folder's files that config or
	// script files must strictly exceed.
	MajorityRatio float64
}

// DefaultThresholds mirror the tuning the heuristics were written with.
func DefaultThresholds() Thresholds {
	return Thresholds{MinDominantFiles: 2, MajorityRatio: 0.5}
}

// ClassifyFolders assigns a role to every top-level folder. Folders are
// independent of one another, so the result does not depend on input order.
func ClassifyFolders(records []analysis.FileRecord) map[string]Classification {
	return ClassifyFoldersWith(records, DefaultThresholds())
}

// ClassifyFoldersWith is ClassifyFolders with explicit thresholds.
func ClassifyFoldersWith(records []analysis.FileRecord, th Thresholds) map[string]Classification {
	byFolder := map[string][]analysis.FileRecord{}
	for _, r := range records {
		if folder := r.TopFolder(); folder != "" {
			byFolder[folder] = append(byFolder[folder], r)
		}
	}

	out := make(map[string]Classification, len(byFolder))
	for folder, files := range byFolder {
		role := classifyByName(folder)
		if role == RoleMisc {
			role = classifyByContent(files, th)
		}
		out[folder] = Classification{Role: role, FileCount: len(files)}
	}
	return out
}

func classifyByName(folder string) Role {
	lower := strings.ToLower(folder)
	for _, p := range namePatterns {
		for _, frag := range p.fragments {
			if strings.Contains(lower, frag) {
				return p.role
			}
		}
	}
	return RoleMisc
}

func classifyByContent(files []analysis.FileRecord, th Thresholds) Role {
	if len(files) == 0 {
		return RoleMisc
	}

	var frontend, backend, config, script int
	hasFrontendSegment := false
	hasBackendSegment := false

	for _, f := range files {
		ext := f.Ext()
		if frontendExts[ext] {
			frontend++
		}
		if backendExts[ext] {
			backend++
		}
		if configExts[ext] {
			config++
		}
		if scriptExts[ext] {
			script++
		}

		lower := strings.ToLower(f.Path)
		if !hasFrontendSegment && hasSegment(lower, frontendSegments) {
			hasFrontendSegment = true
		}
		if !hasBackendSegment && hasSegment(lower, backendSegments) {
			hasBackendSegment = true
		}
	}

	// A role-indicative segment beats raw counts.
	if hasFrontendSegment || (frontend > backend && frontend > th.MinDominantFiles) {
		return RoleFrontend
	}
	if hasBackendSegment || (backend > frontend && backend > th.MinDominantFiles) {
		return RoleBackend
	}
	if float64(config) > float64(len(files))*th.MajorityRatio {
		return RoleConfig
	}
	if float64(script) > float64(len(files))*th.MajorityRatio {
		return RoleScripts
	}
	return RoleMisc
}

func hasSegment(lowerPath string, segments []string) bool {
	for _, seg := range segments {
		if strings.Contains(lowerPath, "/"+seg+"/") || strings.HasSuffix(lowerPath, "/"+seg) {
			return true
		}
	}
	return false
}
