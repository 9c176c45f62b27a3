package primary

import "context"

// CaseService defines the primary port for case operations. Status changes
// go through WorkflowService.ExecuteTransition, never through this service.
type CaseService interface {
	// CreateCase creates a new case seeded at the workflow's initial status.
	CreateCase(ctx context.Context, req CreateCaseRequest) (*Case, error)

	// GetCase retrieves a case by ID.
	GetCase(ctx context.Context, caseID string) (*Case, error)

	// ListCases lists cases with optional filters.
	ListCases(ctx context.Context, filters CaseFilters) ([]*Case, error)

	// GetHistory returns the case's transition audit trail in time order.
	GetHistory(ctx context.Context, caseID string) ([]*AuditEntry, error)
}

// CreateCaseRequest contains parameters for creating a case.
type CreateCaseRequest struct {
	Title       string
	Description string
	Assignee    string // Optional
}

// Case is the case view returned to callers.
type Case struct {
	ID            string
	Title         string
	Description   string
	CurrentStatus string
	Assignee      string
	CreatedAt     string
	UpdatedAt     string
}

// CaseFilters contains filter options for querying cases.
type CaseFilters struct {
	Status   string
	Assignee string
	Limit    int
}
