package workflow

import "strings"

// Canvas layout constants for the provisioned default graph. The states are
// laid out left to right on a single row.
const (
	canonicalOriginX  = 60.0
	canonicalOriginY  = 180.0
	canonicalSpacingX = 220.0
)

// CanonicalStates returns the six states of the default workflow, in
// canonical order, at evenly spaced canvas positions. IDs and template id
// are left empty; the caller assigns them before persisting.
func CanonicalStates() []State {
	states := make([]State, len(CanonicalOrder))
	for i, t := range CanonicalOrder {
		states[i] = State{
			Label: canonicalLabel(t),
			Type:  t,
			Position: Position{
				X: canonicalOriginX + float64(i)*canonicalSpacingX,
				Y: canonicalOriginY,
			},
		}
	}
	return states
}

// CanonicalTransitions returns the five forward edges chaining the given
// states in order. No edge skips a step and no edge points backward; the
// last state has no outgoing edge and is therefore terminal.
func CanonicalTransitions(states []State) []Transition {
	var edges []Transition
	for i := 0; i+1 < len(states); i++ {
		edges = append(edges, Transition{
			TemplateID:  states[i].TemplateID,
			FromStateID: states[i].ID,
			ToStateID:   states[i+1].ID,
			Label:       string(states[i].Type) + " → " + string(states[i+1].Type),
		})
	}
	return edges
}

// DefaultTemplateName is the display name of the auto-provisioned template.
const DefaultTemplateName = "Standard non-conformance workflow"

func canonicalLabel(t StateType) string {
	s := string(t)
	return strings.ToUpper(s[:1]) + s[1:]
}
