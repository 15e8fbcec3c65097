// Package flow synthesizes a high-level execution flow from entry points,
// folder roles, and detected stack elements.
package flow

// Fixed stage id tokens; downstream rendering keys off them.
const (
	StageEntry      = "entry"
	StageFrontend   = "frontend"
	StageBackend    = "backend"
	StageMiddleware = "middleware"
	StageDatabase   = "database"
	StageExternal   = "external"
)

// Stage is one logical phase in the synthesized flow.
type Stage struct {
	ID          string   `json:"id"`
	Type        string   `json:"type"`
	Components  []string `json:"components"`
	Description string   `json:"description"`
}

// Connection is a labeled transition between two stages.
type Connection struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Label string `json:"label"`
}

// ExecutionFlow is an ordered list of stages plus the transitions between
// them. Order reflects construction order, not repository layout.
type ExecutionFlow struct {
	Stages      []Stage      `json:"stages"`
	Connections []Connection `json:"connections"`
}

// AddStage appends a stage.
func (f *ExecutionFlow) AddStage(id, stageType string, components []string, description string) {
	f.Stages = append(f.Stages, Stage{
		ID:          id,
		Type:        stageType,
		Components:  components,
		Description: description,
	})
}

// AddConnection appends a transition. Both ids must name stages already in
// the flow; the builder guarantees this by construction.
func (f *ExecutionFlow) AddConnection(from, to, label string) {
	f.Connections = append(f.Connections, Connection{From: from, To: to, Label: label})
}

// HasStage reports whether a stage with the given id exists.
func (f *ExecutionFlow) HasStage(id string) bool {
	for _, s := range f.Stages {
		if s.ID == id {
			return true
		}
	}
	return false
}
