// Package editor contains the pure business logic for structural graph
// mutations. Guards evaluate referential-integrity preconditions without
// side effects; the application layer runs them before any write.
package editor

import (
	"github.com/example/caseflow/internal/core/workflow"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Err     error
}

// Error returns the guard's error if the mutation is not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return r.Err
}

func denied(err error) GuardResult {
	return GuardResult{Allowed: false, Err: err}
}

func allowed() GuardResult {
	return GuardResult{Allowed: true}
}

// AddStateContext provides context for state-creation guards.
type AddStateContext struct {
	TemplateID     string
	TemplateExists bool
	StateType      string
}

// AddTransitionContext provides context for transition-creation guards.
type AddTransitionContext struct {
	TemplateID     string
	TemplateExists bool
	FromStateID    string
	FromState      *workflow.State // nil if not found
	ToStateID      string
	ToState        *workflow.State // nil if not found
}

// StateRefContext provides context for guards on an existing state.
type StateRefContext struct {
	StateID string
	Exists  bool
}

// TransitionRefContext provides context for guards on an existing transition.
type TransitionRefContext struct {
	TransitionID string
	Exists       bool
}

// CanAddState evaluates whether a state can be added.
// Rules:
// - Template must exist
// - State type must come from the closed status set
func CanAddState(ctx AddStateContext) GuardResult {
	if !ctx.TemplateExists {
		return denied(&workflow.InvalidReferenceError{Kind: "template", ID: ctx.TemplateID})
	}
	if !workflow.ValidStateType(ctx.StateType) {
		return denied(&workflow.UnknownStateError{Status: ctx.StateType})
	}
	return allowed()
}

// CanAddTransition evaluates whether a transition can be added.
// Rules:
// - Template must exist
// - Both endpoint states must exist and belong to that template
// Disconnected states, cycles and self-loops are all legal shapes; the only
// invariant enforced here is referential integrity.
func CanAddTransition(ctx AddTransitionContext) GuardResult {
	if !ctx.TemplateExists {
		return denied(&workflow.InvalidReferenceError{Kind: "template", ID: ctx.TemplateID})
	}
	if ctx.FromState == nil || ctx.FromState.TemplateID != ctx.TemplateID {
		return denied(&workflow.InvalidReferenceError{Kind: "state", ID: ctx.FromStateID})
	}
	if ctx.ToState == nil || ctx.ToState.TemplateID != ctx.TemplateID {
		return denied(&workflow.InvalidReferenceError{Kind: "state", ID: ctx.ToStateID})
	}
	return allowed()
}

// CanMutateState evaluates whether a state can be renamed, repositioned or
// deleted. The state only needs to exist; deletion cascades are handled by
// the store layer.
func CanMutateState(ctx StateRefContext) GuardResult {
	if !ctx.Exists {
		return denied(&workflow.InvalidReferenceError{Kind: "state", ID: ctx.StateID})
	}
	return allowed()
}

// CanDeleteTransition evaluates whether a transition can be deleted.
func CanDeleteTransition(ctx TransitionRefContext) GuardResult {
	if !ctx.Exists {
		return denied(&workflow.InvalidReferenceError{Kind: "transition", ID: ctx.TransitionID})
	}
	return allowed()
}
