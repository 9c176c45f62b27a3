package primary

import "context"

// EditorService defines the primary port for structural graph mutations.
// This is the entire surface the visual canvas calls; it owns no business
// logic of its own. Every mutation enforces referential integrity before
// writing and is persisted independently (last-write-wins between
// concurrent editors).
type EditorService interface {
	// AddState adds a state to a template.
	AddState(ctx context.Context, req AddStateRequest) (*State, error)

	// RenameState updates a state's display label only.
	RenameState(ctx context.Context, stateID, newLabel string) error

	// DeleteState deletes a state and, first, every transition referencing
	// it as source or target.
	DeleteState(ctx context.Context, stateID string) error

	// RepositionState updates a state's cosmetic canvas position only.
	RepositionState(ctx context.Context, stateID string, x, y float64) error

	// AddTransition adds a directed edge between two states of the template.
	AddTransition(ctx context.Context, req AddTransitionRequest) (*Transition, error)

	// DeleteTransition removes an edge. Endpoint states are not touched.
	DeleteTransition(ctx context.Context, transitionID string) error
}

// AddStateRequest contains parameters for adding a state.
type AddStateRequest struct {
	TemplateID string
	Label      string
	StateType  string
	X          float64
	Y          float64

	// Optional side-effects for the new state.
	Assignee             string
	Notify               bool
	NotificationTemplate string
}

// AddTransitionRequest contains parameters for adding a transition.
type AddTransitionRequest struct {
	TemplateID  string
	FromStateID string
	ToStateID   string
	Label       string
}
