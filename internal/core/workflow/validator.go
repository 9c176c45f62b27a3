package workflow

// IsLegal reports whether the graph contains an edge from any state tagged
// from to any state tagged to. Exists semantics: when several states share
// a tag, one qualifying edge is enough. A state with no outgoing edges is a
// de facto terminal state; there is no implicit fallback edge.
func (g *Graph) IsLegal(from, to StateType) bool {
	for _, src := range g.StatesByType(from) {
		for _, edge := range g.Outgoing(src.ID) {
			target := g.StateByID(edge.ToStateID)
			if target != nil && target.Type == to {
				return true
			}
		}
	}
	return false
}

// ValidateTransition checks a requested move against the graph.
// Returns *UnknownStateError when from is not represented at all, and
// *IllegalTransitionError when it is but no edge reaches to.
func (g *Graph) ValidateTransition(from, to StateType) error {
	if len(g.StatesByType(from)) == 0 {
		return &UnknownStateError{Status: string(from)}
	}
	if !g.IsLegal(from, to) {
		return &IllegalTransitionError{From: string(from), To: string(to)}
	}
	return nil
}
