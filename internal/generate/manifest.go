package generate

import (
	"errors"
	"time"

	"github.com/ShayCichocki/labelcrew/internal/state"
	"github.com/ShayCichocki/labelcrew/pkg/models"
)

// ErrCanceled is matched by the errors recorded for agents and artifacts
// that were not processed because the run was canceled.
var ErrCanceled = errors.New("generation canceled")

// DocumentResult is one written document.
type DocumentResult struct {
	Kind models.DocumentKind
	Path string
	// Digest is the content digest of the written text.
	Digest string
	// Template names the template that rendered the document.
	Template string
}

// AgentResult is the outcome for one agent. Documents and Errors keep
// the order in which document kinds were processed.
type AgentResult struct {
	ID   string
	Name string
	// Skipped is set for agents disabled by the label config. A skipped
	// agent has no documents and no errors.
	Skipped   bool
	Documents []DocumentResult
	// MirrorPath is the OpenClaw copy of the persona document, if written.
	MirrorPath string
	Errors     []error
}

// OK reports whether the agent has no recorded errors.
func (r AgentResult) OK() bool {
	return len(r.Errors) == 0
}

// Artifact is a run-level file written at the output root.
type Artifact struct {
	Name   string
	Path   string
	Digest string
}

// Manifest summarizes a generation run. Agents are always in registry
// order regardless of how many workers ran.
type Manifest struct {
	RunID        string
	Label        string
	ConfigPath   string
	ConfigDigest string
	OutputRoot   string
	Agents       []AgentResult
	Artifacts    []Artifact
	// Errors holds run-level failures, such as an artifact that could not
	// be written.
	Errors     []error
	StartedAt  time.Time
	FinishedAt time.Time
}

// Success is false if any error was recorded for any agent or the run.
func (m *Manifest) Success() bool {
	if len(m.Errors) > 0 {
		return false
	}
	for _, a := range m.Agents {
		if !a.OK() {
			return false
		}
	}
	return true
}

// AllErrors returns every recorded error, agents first in registry order.
func (m *Manifest) AllErrors() []error {
	var out []error
	for _, a := range m.Agents {
		out = append(out, a.Errors...)
	}
	return append(out, m.Errors...)
}

// Written returns the number of agent documents written.
func (m *Manifest) Written() int {
	n := 0
	for _, a := range m.Agents {
		n += len(a.Documents)
	}
	return n
}

// Agent returns the result for id.
func (m *Manifest) Agent(id string) (AgentResult, bool) {
	for _, a := range m.Agents {
		if a.ID == id {
			return a, true
		}
	}
	return AgentResult{}, false
}

// Run converts the manifest into a history record.
func (m *Manifest) Run() *state.Run {
	run := &state.Run{
		ID:           m.RunID,
		Label:        m.Label,
		ConfigPath:   m.ConfigPath,
		OutputRoot:   m.OutputRoot,
		ConfigDigest: m.ConfigDigest,
		Success:      m.Success(),
		StartedAt:    m.StartedAt,
		FinishedAt:   m.FinishedAt,
	}
	for _, a := range m.Agents {
		for _, d := range a.Documents {
			run.Documents = append(run.Documents, state.Document{
				AgentID: a.ID, Kind: string(d.Kind), Path: d.Path, Digest: d.Digest,
			})
		}
		for _, err := range a.Errors {
			run.Documents = append(run.Documents, state.Document{
				AgentID: a.ID, Kind: errorKind(err), Error: err.Error(),
			})
		}
	}
	for _, art := range m.Artifacts {
		run.Documents = append(run.Documents, state.Document{
			Kind: art.Name, Path: art.Path, Digest: art.Digest,
		})
	}
	for _, err := range m.Errors {
		run.Documents = append(run.Documents, state.Document{Kind: "run", Error: err.Error()})
	}
	return run
}
