package sqlite

import (
	"context"
	"database/sql"
)

// OwnershipAdapter implements secondary.CaseOwnership over the cases table.
// Reassignment requests are keyed by case id and assignee; the transition
// executor calls this best-effort after its transaction commits.
type OwnershipAdapter struct {
	cases *CaseRepository
}

// NewOwnershipAdapter creates a new OwnershipAdapter.
func NewOwnershipAdapter(db *sql.DB) *OwnershipAdapter {
	return &OwnershipAdapter{cases: NewCaseRepository(db)}
}

// Reassign hands the case to the given assignee.
func (a *OwnershipAdapter) Reassign(ctx context.Context, caseID, assignee string) error {
	return a.cases.UpdateAssignee(ctx, caseID, assignee)
}
