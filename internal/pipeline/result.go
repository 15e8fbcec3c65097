package pipeline

import (
	"github.com/repolens/repolens/internal/analysis/entrypoint"
	"github.com/repolens/repolens/internal/analysis/language"
	"github.com/repolens/repolens/internal/analysis/structure"
	"github.com/repolens/repolens/internal/depgraph"
	"github.com/repolens/repolens/internal/flow"
)

// Result is the complete structural model of one repository, produced
// fresh per run. Every field is a plain serializable structure; the
// reporting layer consumes it as-is.
type Result struct {
	Languages      language.Stats                      `json:"languages"`
	Frameworks     []string                            `json:"frameworks"`
	Databases      []string                            `json:"databases"`
	Infrastructure []string                            `json:"infrastructure"`
	Folders        map[string]structure.Classification `json:"folders"`
	EntryPoints    entrypoint.Set                      `json:"entry_points"`
	Graph          depgraph.Transfer                   `json:"graph"`
	Flow           flow.ExecutionFlow                  `json:"flow"`

	// SkippedRecords counts input records rejected for violating the
	// record contract (missing path). Rejection is per-record; the run
	// continues over the rest.
	SkippedRecords int `json:"skipped_records,omitempty"`
}
