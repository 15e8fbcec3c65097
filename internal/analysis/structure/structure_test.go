package structure

import (
	"testing"

	"github.com/repolens/repolens/internal/analysis"
)

func recordsIn(folder string, names ...string) []analysis.FileRecord {
	var out []analysis.FileRecord
	for _, name := range names {
		out = append(out, analysis.FileRecord{Path: folder + "/" + name})
	}
	return out
}

func TestClassifyFolders_ByName(t *testing.T) {
	cases := []struct {
		folder string
		want   Role
	}{
		{"frontend", RoleFrontend},
		{"webapp", RoleFrontend},
		{"server", RoleBackend},
		{"config", RoleConfig},
		{"k8s", RoleInfrastructure},
		{"scripts", RoleScripts},
		{"tests", RoleTests},
		{"docs", RoleDocs},
		{"migrations", RoleDatabase},
	}

	for _, c := range cases {
		got := ClassifyFolders(recordsIn(c.folder, "file.txt"))
		if got[c.folder].Role != c.want {
			t.Errorf("folder %q: expected %s, got %s", c.folder, c.want, got[c.folder].Role)
		}
	}
}

func TestClassifyFolders_NameOrderWins(t *testing.T) {
	// "webapi" contains both "web" (frontend) and "api" (backend); the
	// frontend pattern is checked first and wins.
	got := ClassifyFolders(recordsIn("webapi", "main.go"))
	if got["webapi"].Role != RoleFrontend {
		t.Errorf("expected frontend by pattern order, got %s", got["webapi"].Role)
	}
}

func TestClassifyFolders_ContentFallbackBackend(t *testing.T) {
	records := recordsIn("engine", "a.py", "b.py", "c.py", "style.css")

	got := ClassifyFolders(records)
	if got["engine"].Role != RoleBackend {
		t.Errorf("expected backend, got %s", got["engine"].Role)
	}
	if got["engine"].FileCount != 4 {
		t.Errorf("expected 4 files, got %d", got["engine"].FileCount)
	}
}

func TestClassifyFolders_ContentFallbackNeedsDominance(t *testing.T) {
	// Two backend files do not exceed the default floor of 2.
	records := recordsIn("engine", "a.py", "b.py")

	got := ClassifyFolders(records)
	if got["engine"].Role != RoleMisc {
		t.Errorf("expected misc below floor, got %s", got["engine"].Role)
	}
}

func TestClassifyFolders_SegmentBeatsCounts(t *testing.T) {
	// A single components/ segment outweighs the backend extension counts.
	records := []analysis.FileRecord{
		{Path: "mixed/components/button.jsx"},
		{Path: "mixed/a.py"},
		{Path: "mixed/b.py"},
		{Path: "mixed/c.py"},
		{Path: "mixed/d.py"},
	}

	got := ClassifyFolders(records)
	if got["mixed"].Role != RoleFrontend {
		t.Errorf("expected frontend via segment, got %s", got["mixed"].Role)
	}
}

func TestClassifyFolders_ConfigMajority(t *testing.T) {
	records := recordsIn("etc", "a.yaml", "b.yaml", "c.toml", "readme.txt")

	got := ClassifyFolders(records)
	if got["etc"].Role != RoleConfig {
		t.Errorf("expected config majority, got %s", got["etc"].Role)
	}
}

func TestClassifyFolders_RootFilesExcluded(t *testing.T) {
	records := []analysis.FileRecord{
		{Path: "README.md"},
		{Path: "src/main.py"},
	}

	got := ClassifyFolders(records)
	if len(got) != 1 {
		t.Fatalf("expected 1 folder, got %d", len(got))
	}
	if _, ok := got["src"]; !ok {
		t.Error("expected src folder present")
	}
}

func TestClassifyFoldersWith_CustomThresholds(t *testing.T) {
	records := recordsIn("engine", "a.py", "b.py")

	got := ClassifyFoldersWith(records, Thresholds{MinDominantFiles: 1, MajorityRatio: 0.5})
	if got["engine"].Role != RoleBackend {
		t.Errorf("expected backend with lowered floor, got %s", got["engine"].Role)
	}
}
