package flow

import (
	"sort"

	"github.com/repolens/repolens/internal/analysis/entrypoint"
	"github.com/repolens/repolens/internal/analysis/structure"
)

// maxEntryComponents caps how many entry paths the entry stage lists.
const maxEntryComponents = 5

// Role families recognized by the stage guards. Folder classification only
// emits the canonical roles, but the families keep the synthesizer open to
// richer role vocabularies from other classifiers.
var (
	frontendRoles   = roleSet("frontend", "client", "ui")
	backendRoles    = roleSet("backend", "api", "services")
	middlewareRoles = roleSet("middleware", "utils", "utilities", "scripts")
	databaseRoles   = roleSet("database", "models")
)

// uiFrameworks gate the entry→frontend connection.
var uiFrameworks = roleSet("React", "Vue", "Angular", "Next.js", "Svelte")

func roleSet(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

// Synthesize runs the fixed sequence of guarded stage insertions:
// entry, frontend, backend, middleware, database, external. Each stage is
// added only when its trigger holds, and connections are appended in the
// same pass, so the output order is a design decision, not derived layout.
func Synthesize(
	entrypoints entrypoint.Set,
	folders map[string]structure.Classification,
	frameworks, databases, infrastructure []string,
) ExecutionFlow {
	var f ExecutionFlow

	var entries []string
	for _, af := range entrypoints.ApplicationFiles {
		entries = append(entries, af.Path)
	}
	for _, fe := range entrypoints.FrameworkEntries {
		entries = append(entries, fe.Path)
	}

	if len(entries) > 0 {
		components := entries
		if len(components) > maxEntryComponents {
			components = components[:maxEntryComponents]
		}
		f.AddStage(StageEntry, "entry_point", components, "Application entry points")
	}

	frontend := foldersWithRole(folders, frontendRoles)
	if len(frontend) > 0 {
		f.AddStage(StageFrontend, "frontend", frontend, "Frontend/UI layer")
		if len(entries) > 0 && containsAny(frameworks, uiFrameworks) {
			f.AddConnection(StageEntry, StageFrontend, "Renders UI")
		}
	}

	backend := foldersWithRole(folders, backendRoles)
	if len(backend) > 0 {
		f.AddStage(StageBackend, "backend", backend, "Backend services and APIs")
		if len(frontend) > 0 {
			f.AddConnection(StageFrontend, StageBackend, "API calls")
		} else if len(entries) > 0 {
			f.AddConnection(StageEntry, StageBackend, "Processes requests")
		}
	}

	// One utility folder is noise; two or more are a layer.
	middleware := foldersWithRole(folders, middlewareRoles)
	if len(middleware) >= 2 {
		f.AddStage(StageMiddleware, "middleware", middleware, "Middleware and utilities")
		if len(backend) > 0 {
			f.AddConnection(StageBackend, StageMiddleware, "Uses utilities")
		}
	}

	dbComponents := foldersWithRole(folders, databaseRoles)
	dbComponents = append(dbComponents, databases...)
	if len(dbComponents) > 0 {
		f.AddStage(StageDatabase, "database", dbComponents, "Data persistence layer")
		if len(backend) > 0 {
			f.AddConnection(StageBackend, StageDatabase, "Data operations")
		} else if len(entries) > 0 {
			f.AddConnection(StageEntry, StageDatabase, "Data operations")
		}
	}

	var external []string
	if containsAny(infrastructure, roleSet("Docker", "Kubernetes")) {
		external = append(external, "Container orchestration")
	}
	for _, db := range databases {
		switch db {
		case "Redis":
			external = append(external, "Redis (caching/queue)")
		case "Elasticsearch":
			external = append(external, "Elasticsearch (search)")
		}
	}
	if len(external) > 0 {
		f.AddStage(StageExternal, "external_services", external, "External services and infrastructure")
		if len(backend) > 0 {
			f.AddConnection(StageBackend, StageExternal, "External calls")
		}
	}

	return f
}

// foldersWithRole returns the sorted folder names whose role belongs to the
// family. Sorting keeps the output independent of map iteration order.
func foldersWithRole(folders map[string]structure.Classification, family map[string]bool) []string {
	var out []string
	for folder, c := range folders {
		if family[string(c.Role)] {
			out = append(out, folder)
		}
	}
	sort.Strings(out)
	return out
}

func containsAny(names []string, set map[string]bool) bool {
	for _, n := range names {
		if set[n] {
			return true
		}
	}
	return false
}
