package snapshot

import (
	"fmt"
	"io"
	"sort"
)

// DiffType indicates the kind of change.
type DiffType string

const (
	DiffAdded    DiffType = "added"
	DiffRemoved  DiffType = "removed"
	DiffModified DiffType = "modified"
)

// SnapshotDiff represents the complete diff between two analysis snapshots.
type SnapshotDiff struct {
	OldID string `json:"old_id"`
	NewID string `json:"new_id"`
	OldTag string `json:"old_tag,omitempty"`
	NewTag string `json:"new_tag,omitempty"`

	PrimaryLanguageChanged bool   `json:"primary_language_changed"`
	OldPrimaryLanguage     string `json:"old_primary_language,omitempty"`
	NewPrimaryLanguage     string `json:"new_primary_language,omitempty"`

	LanguageDiffs []LanguageDiff `json:"language_diffs"`
	StackDiffs    []StackDiff    `json:"stack_diffs"`
	FolderDiffs   []FolderDiff   `json:"folder_diffs"`

	FilesDelta      int `json:"files_delta"`
	GraphNodesDelta int `json:"graph_nodes_delta"`
	GraphEdgesDelta int `json:"graph_edges_delta"`
	FlowStagesDelta int `json:"flow_stages_delta"`
}

// LanguageDiff captures a percentage shift for one language.
type LanguageDiff struct {
	Language string   `json:"language"`
	Type     DiffType `json:"type"`
	OldShare float64  `json:"old_share,omitempty"`
	NewShare float64  `json:"new_share,omitempty"`
	Delta    float64  `json:"delta"`
}

// StackDiff captures a detected technology appearing or disappearing.
type StackDiff struct {
	Category string   `json:"category"` // framework, database, infrastructure
	Name     string   `json:"name"`
	Type     DiffType `json:"type"`
}

// FolderDiff captures a folder role change between two runs.
type FolderDiff struct {
	Folder  string   `json:"folder"`
	Type    DiffType `json:"type"`
	OldRole string   `json:"old_role,omitempty"`
	NewRole string   `json:"new_role,omitempty"`
}

// Diff computes the differences between two snapshots.
func Diff(old, new *Snapshot) *SnapshotDiff {
	d := &SnapshotDiff{
		OldID:  old.ID,
		NewID:  new.ID,
		OldTag: old.Tag,
		NewTag: new.Tag,

		FilesDelta:      new.Files - old.Files,
		GraphNodesDelta: new.GraphNodes - old.GraphNodes,
		GraphEdgesDelta: new.GraphEdges - old.GraphEdges,
		FlowStagesDelta: new.FlowStages - old.FlowStages,
	}

	if old.PrimaryLanguage != new.PrimaryLanguage {
		d.PrimaryLanguageChanged = true
		d.OldPrimaryLanguage = old.PrimaryLanguage
		d.NewPrimaryLanguage = new.PrimaryLanguage
	}

	d.LanguageDiffs = diffLanguages(old.Languages, new.Languages)
	d.StackDiffs = append(d.StackDiffs, diffStack("framework", old.Frameworks, new.Frameworks)...)
	d.StackDiffs = append(d.StackDiffs, diffStack("database", old.Databases, new.Databases)...)
	d.StackDiffs = append(d.StackDiffs, diffStack("infrastructure", old.Infrastructure, new.Infrastructure)...)
	d.FolderDiffs = diffFolders(old.FolderRoles, new.FolderRoles)

	return d
}

func diffLanguages(oldShares, newShares map[string]float64) []LanguageDiff {
	var diffs []LanguageDiff

	for _, lang := range sortedNames(oldShares) {
		oldShare := oldShares[lang]
		if newShare, ok := newShares[lang]; ok {
			if newShare != oldShare {
				diffs = append(diffs, LanguageDiff{
					Language: lang,
					Type:     DiffModified,
					OldShare: oldShare,
					NewShare: newShare,
					Delta:    newShare - oldShare,
				})
			}
		} else {
			diffs = append(diffs, LanguageDiff{
				Language: lang,
				Type:     DiffRemoved,
				OldShare: oldShare,
				Delta:    -oldShare,
			})
		}
	}
	for _, lang := range sortedNames(newShares) {
		if _, ok := oldShares[lang]; !ok {
			diffs = append(diffs, LanguageDiff{
				Language: lang,
				Type:     DiffAdded,
				NewShare: newShares[lang],
				Delta:    newShares[lang],
			})
		}
	}

	return diffs
}

func diffStack(category string, oldNames, newNames []string) []StackDiff {
	oldSet := make(map[string]bool, len(oldNames))
	for _, name := range oldNames {
		oldSet[name] = true
	}
	newSet := make(map[string]bool, len(newNames))
	for _, name := range newNames {
		newSet[name] = true
	}

	var diffs []StackDiff
	for _, name := range oldNames {
		if !newSet[name] {
			diffs = append(diffs, StackDiff{Category: category, Name: name, Type: DiffRemoved})
		}
	}
	for _, name := range newNames {
		if !oldSet[name] {
			diffs = append(diffs, StackDiff{Category: category, Name: name, Type: DiffAdded})
		}
	}
	return diffs
}

func diffFolders(oldRoles, newRoles map[string]string) []FolderDiff {
	var diffs []FolderDiff

	for _, folder := range sortedNames(oldRoles) {
		oldRole := oldRoles[folder]
		if newRole, ok := newRoles[folder]; ok {
			if oldRole != newRole {
				diffs = append(diffs, FolderDiff{
					Folder:  folder,
					Type:    DiffModified,
					OldRole: oldRole,
					NewRole: newRole,
				})
			}
		} else {
			diffs = append(diffs, FolderDiff{Folder: folder, Type: DiffRemoved, OldRole: oldRole})
		}
	}
	for _, folder := range sortedNames(newRoles) {
		if _, ok := oldRoles[folder]; !ok {
			diffs = append(diffs, FolderDiff{Folder: folder, Type: DiffAdded, NewRole: newRoles[folder]})
		}
	}

	return diffs
}

func sortedNames[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Print writes a human-readable rendering of the diff.
func (d *SnapshotDiff) Print(w io.Writer) {
	fmt.Fprintf(w, "diff %s..%s\n", d.OldID, d.NewID)

	if d.PrimaryLanguageChanged {
		fmt.Fprintf(w, "  primary language: %s -> %s\n", d.OldPrimaryLanguage, d.NewPrimaryLanguage)
	}
	for _, ld := range d.LanguageDiffs {
		switch ld.Type {
		case DiffAdded:
			fmt.Fprintf(w, "  + language %s (%.2f%%)\n", ld.Language, ld.NewShare)
		case DiffRemoved:
			fmt.Fprintf(w, "  - language %s\n", ld.Language)
		default:
			fmt.Fprintf(w, "  ~ language %s %+.2f%%\n", ld.Language, ld.Delta)
		}
	}
	for _, sd := range d.StackDiffs {
		switch sd.Type {
		case DiffAdded:
			fmt.Fprintf(w, "  + %s %s\n", sd.Category, sd.Name)
		case DiffRemoved:
			fmt.Fprintf(w, "  - %s %s\n", sd.Category, sd.Name)
		}
	}
	for _, fd := range d.FolderDiffs {
		switch fd.Type {
		case DiffAdded:
			fmt.Fprintf(w, "  + folder %s (%s)\n", fd.Folder, fd.NewRole)
		case DiffRemoved:
			fmt.Fprintf(w, "  - folder %s\n", fd.Folder)
		default:
			fmt.Fprintf(w, "  ~ folder %s: %s -> %s\n", fd.Folder, fd.OldRole, fd.NewRole)
		}
	}

	if d.FilesDelta != 0 {
		fmt.Fprintf(w, "  files: %+d\n", d.FilesDelta)
	}
	if d.GraphNodesDelta != 0 || d.GraphEdgesDelta != 0 {
		fmt.Fprintf(w, "  graph: %+d nodes, %+d edges\n", d.GraphNodesDelta, d.GraphEdgesDelta)
	}
	if d.FlowStagesDelta != 0 {
		fmt.Fprintf(w, "  flow stages: %+d\n", d.FlowStagesDelta)
	}
}
