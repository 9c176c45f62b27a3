// Package workflow contains the pure business logic for the workflow template
// graph: state and transition shapes, transition validation, and the canonical
// default graph. Nothing in this package performs I/O.
package workflow

// StateType is the closed-set status tag a case actually stores.
type StateType string

const (
	// StateTypeOpen is the entry status of every new case.
	StateTypeOpen StateType = "open"
	// StateTypeAnalysis marks a case under root-cause analysis.
	StateTypeAnalysis StateType = "analysis"
	// StateTypeResolution marks a case with corrective work in progress.
	StateTypeResolution StateType = "resolution"
	// StateTypeSolved marks a case whose corrective work is done.
	StateTypeSolved StateType = "solved"
	// StateTypeClosing marks a case in final review before closure.
	StateTypeClosing StateType = "closing"
	// StateTypeClosed is the terminal status.
	StateTypeClosed StateType = "closed"
)

// CanonicalOrder is the forward-only status sequence used by the
// auto-provisioned default template.
var CanonicalOrder = []StateType{
	StateTypeOpen,
	StateTypeAnalysis,
	StateTypeResolution,
	StateTypeSolved,
	StateTypeClosing,
	StateTypeClosed,
}

// ValidStateType reports whether s is a member of the closed status set.
func ValidStateType(s string) bool {
	for _, t := range CanonicalOrder {
		if StateType(s) == t {
			return true
		}
	}
	return false
}

// Position is the cosmetic canvas coordinate of a state. The engine passes
// it through unchanged; only the editor canvas interprets it.
type Position struct {
	X float64
	Y float64
}

// SideEffects are the optional actions attached to a state, applied when a
// case arrives at it.
type SideEffects struct {
	Assignee             string // reassign the case to this actor, if set
	Notify               bool
	NotificationTemplate string
}

// Template is a named directed graph of states and transitions defining one
// workflow. At most one template is flagged default at any time.
type Template struct {
	ID          string
	Name        string
	Description string
	IsDefault   bool
	CreatedAt   string
}

// State is a node in a template graph. Label is free display text; Type is
// the status tag cases carry. Types need not be unique within a template.
type State struct {
	ID          string
	TemplateID  string
	Label       string
	Type        StateType
	Position    Position
	SideEffects SideEffects
}

// Transition is a directed edge between two states of the same template.
type Transition struct {
	ID          string
	TemplateID  string
	FromStateID string
	ToStateID   string
	Label       string
}

// Graph is a template together with its full state/transition set, as loaded
// from the store at validation time.
type Graph struct {
	Template    Template
	States      []State
	Transitions []Transition
}

// StateByID returns the state with the given id, or nil.
func (g *Graph) StateByID(id string) *State {
	for i := range g.States {
		if g.States[i].ID == id {
			return &g.States[i]
		}
	}
	return nil
}

// StatesByType returns every state tagged with the given status. Duplicate
// tags are model-legal, so this is a slice, not a single lookup.
func (g *Graph) StatesByType(t StateType) []*State {
	var matches []*State
	for i := range g.States {
		if g.States[i].Type == t {
			matches = append(matches, &g.States[i])
		}
	}
	return matches
}

// Outgoing returns the transitions leaving the given state.
func (g *Graph) Outgoing(stateID string) []*Transition {
	var edges []*Transition
	for i := range g.Transitions {
		if g.Transitions[i].FromStateID == stateID {
			edges = append(edges, &g.Transitions[i])
		}
	}
	return edges
}
