package workflow

import (
	"errors"
	"fmt"
)

// ErrActorRequired is returned when a transition is requested without an
// authenticated actor. Rejected before any write.
var ErrActorRequired = errors.New("actor required: no actor id in request context")

// IllegalTransitionError reports a requested move that has no edge in the
// current graph. Non-retryable.
type IllegalTransitionError struct {
	From string
	To   string
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("transition from %q to %q is not allowed by the current workflow", e.From, e.To)
}

// UnknownStateError reports a case status that no state in the active
// template carries. The case is stuck until an administrator repairs the
// graph; the engine never defaults it to another state.
type UnknownStateError struct {
	Status string
}

func (e *UnknownStateError) Error() string {
	return fmt.Sprintf("status %q does not exist in the active workflow template", e.Status)
}

// InvalidReferenceError reports an editor call naming an entity that does
// not exist or belongs to a different template. Rejected before any write.
type InvalidReferenceError struct {
	Kind string // "template", "state" or "transition"
	ID   string
}

func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf("%s %s not found in the target template", e.Kind, e.ID)
}
