package analysis

import "testing"

func TestFileRecord_PathAccessors(t *testing.T) {
	r := FileRecord{Path: "src/app/Main.PY"}

	if got := r.BaseName(); got != "Main.PY" {
		t.Errorf("expected base name Main.PY, got %s", got)
	}
	if got := r.Ext(); got != ".py" {
		t.Errorf("expected extension .py, got %s", got)
	}
	if got := r.TopFolder(); got != "src" {
		t.Errorf("expected top folder src, got %s", got)
	}
}

func TestFileRecord_RootFile(t *testing.T) {
	r := FileRecord{Path: "Dockerfile"}

	if got := r.BaseName(); got != "Dockerfile" {
		t.Errorf("expected base name Dockerfile, got %s", got)
	}
	if got := r.Ext(); got != "" {
		t.Errorf("expected empty extension, got %s", got)
	}
	if got := r.TopFolder(); got != "" {
		t.Errorf("expected empty top folder, got %s", got)
	}
}

func TestExtOf_DotInDirectory(t *testing.T) {
	// A dot in a directory name must not be mistaken for an extension.
	if got := ExtOf("v1.2/readme"); got != "" {
		t.Errorf("expected empty extension, got %s", got)
	}
}

func TestSanitize(t *testing.T) {
	records := []FileRecord{
		{Path: "a.py", Content: "print(1)"},
		{Path: "", Content: "orphan"},
		{Path: "b.py"},
	}

	out := Sanitize(records)
	if len(out) != 2 {
		t.Fatalf("expected 2 records, got %d", len(out))
	}
	if out[0].Path != "a.py" || out[1].Path != "b.py" {
		t.Errorf("expected order preserved, got %v", out)
	}
}

func TestCountNonBlankLines(t *testing.T) {
	content := "a\n\n  \nb\n\tc\n"
	if got := CountNonBlankLines(content); got != 3 {
		t.Errorf("expected 3 non-blank lines, got %d", got)
	}
	if got := CountNonBlankLines(""); got != 0 {
		t.Errorf("expected 0 lines for empty content, got %d", got)
	}
}
