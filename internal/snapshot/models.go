// Package snapshot provides point-in-time captures of analysis results
// so successive runs over the same project can be compared.
package snapshot

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/repolens/repolens/internal/analysis/structure"
	"github.com/repolens/repolens/internal/pipeline"
)

// Snapshot represents a point-in-time capture of an analysis run.
type Snapshot struct {
	ID          string            `json:"id"`
	ParentID    string            `json:"parent_id,omitempty"`
	Tag         string            `json:"tag,omitempty"`
	Description string            `json:"description,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	ProjectID   string            `json:"project_id"`
	InputPath   string            `json:"input_path"`
	ContentHash string            `json:"content_hash"`

	PrimaryLanguage string             `json:"primary_language"`
	Languages       map[string]float64 `json:"languages"`
	Frameworks      []string           `json:"frameworks"`
	Databases       []string           `json:"databases"`
	Infrastructure  []string           `json:"infrastructure"`
	FolderRoles     map[string]string  `json:"folder_roles"`

	Files      int `json:"files"`
	GraphNodes int `json:"graph_nodes"`
	GraphEdges int `json:"graph_edges"`
	FlowStages int `json:"flow_stages"`

	Metadata map[string]string `json:"metadata,omitempty"`
}

// Index is a lightweight listing of all snapshots for fast lookup.
type Index struct {
	Snapshots []Summary `json:"snapshots"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Summary is the minimal info for listing snapshots.
type Summary struct {
	ID              string    `json:"id"`
	ParentID        string    `json:"parent_id,omitempty"`
	Tag             string    `json:"tag,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	ProjectID       string    `json:"project_id"`
	PrimaryLanguage string    `json:"primary_language"`
	Files           int       `json:"files"`
	GraphNodes      int       `json:"graph_nodes"`
}

// NewSnapshotFromResult creates a Snapshot from a pipeline result.
func NewSnapshotFromResult(projectID, inputPath string, result *pipeline.Result) *Snapshot {
	snap := &Snapshot{
		CreatedAt:       time.Now(),
		ProjectID:       projectID,
		InputPath:       inputPath,
		PrimaryLanguage: result.Languages.Primary,
		Languages:       make(map[string]float64),
		Frameworks:      result.Frameworks,
		Databases:       result.Databases,
		Infrastructure:  result.Infrastructure,
		FolderRoles:     make(map[string]string),
		Files:           result.Languages.TotalFiles,
		GraphNodes:      len(result.Graph.Nodes),
		FlowStages:      len(result.Flow.Stages),
		Metadata:        make(map[string]string),
	}

	for name, stat := range result.Languages.Languages {
		snap.Languages[name] = stat.Percentage
	}
	for folder, c := range result.Folders {
		snap.FolderRoles[folder] = string(c.Role)
	}
	for _, targets := range result.Graph.Edges {
		snap.GraphEdges += len(targets)
	}

	snap.ContentHash = resultHash(result)
	snap.ID = generateSnapshotID(snap)
	return snap
}

// ContentHash computes SHA-256 of content.
func ContentHash(content []byte) string {
	h := sha256.Sum256(content)
	return hex.EncodeToString(h[:])
}

func resultHash(result *pipeline.Result) string {
	data, _ := json.Marshal(result)
	return ContentHash(data)
}

func generateSnapshotID(snap *Snapshot) string {
	data, _ := json.Marshal(struct {
		Time    int64  `json:"t"`
		Content string `json:"c"`
	}{
		Time:    snap.CreatedAt.UnixNano(),
		Content: snap.ContentHash,
	})
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:8])
}

// Summary returns a lightweight summary of this snapshot.
func (s *Snapshot) Summary() Summary {
	return Summary{
		ID:              s.ID,
		ParentID:        s.ParentID,
		Tag:             s.Tag,
		CreatedAt:       s.CreatedAt,
		ProjectID:       s.ProjectID,
		PrimaryLanguage: s.PrimaryLanguage,
		Files:           s.Files,
		GraphNodes:      s.GraphNodes,
	}
}

// Role returns the recorded role for a folder, or RoleMisc when unknown.
func (s *Snapshot) Role(folder string) structure.Role {
	if role, ok := s.FolderRoles[folder]; ok {
		return structure.Role(role)
	}
	return structure.RoleMisc
}
