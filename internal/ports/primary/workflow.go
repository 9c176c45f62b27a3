// Package primary defines the primary ports (driving adapters) of the
// application: the service interfaces the CLI and any future API surface
// call, plus their request/response shapes.
package primary

import "context"

// WorkflowService defines the primary port for template resolution and
// transition execution.
type WorkflowService interface {
	// GetDefaultTemplate returns the default template with its full graph,
	// auto-provisioning the canonical one if no default exists. Idempotent
	// under concurrent callers: at most one default template ever survives.
	GetDefaultTemplate(ctx context.Context) (*TemplateGraph, error)

	// GetTemplate returns a template with its full graph.
	GetTemplate(ctx context.Context, templateID string) (*TemplateGraph, error)

	// ListTemplates lists all templates without their graphs.
	ListTemplates(ctx context.Context) ([]*Template, error)

	// ExecuteTransition validates the requested move against the current
	// default graph, atomically records it and updates the case status,
	// then fires state side-effects best-effort. The actor is taken from
	// the request context; workflow.ErrActorRequired is returned when it
	// is absent.
	ExecuteTransition(ctx context.Context, req ExecuteTransitionRequest) (*AuditEntry, error)
}

// ExecuteTransitionRequest contains parameters for executing a transition.
type ExecuteTransitionRequest struct {
	CaseID     string
	FromStatus string
	ToStatus   string
	Notes      string
}

// Template is the template view returned to callers.
type Template struct {
	ID          string
	Name        string
	Description string
	IsDefault   bool
	CreatedAt   string
}

// State is the state view returned to callers.
type State struct {
	ID         string
	TemplateID string
	Label      string
	StateType  string
	X          float64
	Y          float64

	Assignee             string
	Notify               bool
	NotificationTemplate string
}

// Transition is the transition view returned to callers.
type Transition struct {
	ID          string
	TemplateID  string
	FromStateID string
	ToStateID   string
	Label       string
}

// TemplateGraph is a template together with its states and transitions, the
// shape the editor canvas renders.
type TemplateGraph struct {
	Template    Template
	States      []*State
	Transitions []*Transition
}

// AuditEntry is one executed transition as returned to callers.
type AuditEntry struct {
	ID         string
	CaseID     string
	FromStatus string
	ToStatus   string
	Notes      string
	ActorID    string
	CreatedAt  string
}
