package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/example/caseflow/internal/core/workflow"
	"github.com/example/caseflow/internal/ports/primary"
	"github.com/example/caseflow/internal/ports/secondary"
)

// CaseServiceImpl implements the CaseService interface. It never touches
// current_status after creation; all moves go through the workflow service.
type CaseServiceImpl struct {
	caseRepo  secondary.CaseRepository
	auditRepo secondary.AuditRepository
	workflows primary.WorkflowService
}

// NewCaseService creates a new CaseService with injected dependencies.
func NewCaseService(
	caseRepo secondary.CaseRepository,
	auditRepo secondary.AuditRepository,
	workflows primary.WorkflowService,
) *CaseServiceImpl {
	return &CaseServiceImpl{
		caseRepo:  caseRepo,
		auditRepo: auditRepo,
		workflows: workflows,
	}
}

// CreateCase creates a new case seeded at the workflow's initial status.
// Resolving the default template first guarantees the graph exists before
// the first case does.
func (s *CaseServiceImpl) CreateCase(ctx context.Context, req primary.CreateCaseRequest) (*primary.Case, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("case title is required")
	}

	if _, err := s.workflows.GetDefaultTemplate(ctx); err != nil {
		return nil, fmt.Errorf("failed to resolve workflow: %w", err)
	}

	nextID, err := s.caseRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate case ID: %w", err)
	}

	record := &secondary.CaseRecord{
		ID:            nextID,
		Title:         req.Title,
		Description:   req.Description,
		CurrentStatus: string(workflow.StateTypeOpen),
		Assignee:      req.Assignee,
	}

	if err := s.caseRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create case: %w", err)
	}

	created, err := s.caseRepo.GetByID(ctx, nextID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created case: %w", err)
	}

	return recordToCase(created), nil
}

// GetCase retrieves a case by ID.
func (s *CaseServiceImpl) GetCase(ctx context.Context, caseID string) (*primary.Case, error) {
	record, err := s.caseRepo.GetByID(ctx, caseID)
	if err != nil {
		if errors.Is(err, secondary.ErrNotFound) {
			return nil, fmt.Errorf("case %s not found", caseID)
		}
		return nil, fmt.Errorf("failed to get case: %w", err)
	}
	return recordToCase(record), nil
}

// ListCases lists cases with optional filters.
func (s *CaseServiceImpl) ListCases(ctx context.Context, filters primary.CaseFilters) ([]*primary.Case, error) {
	records, err := s.caseRepo.List(ctx, secondary.CaseFilters{
		Status:   filters.Status,
		Assignee: filters.Assignee,
		Limit:    filters.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list cases: %w", err)
	}

	cases := make([]*primary.Case, len(records))
	for i, r := range records {
		cases[i] = recordToCase(r)
	}
	return cases, nil
}

// GetHistory returns the case's transition audit trail in time order.
func (s *CaseServiceImpl) GetHistory(ctx context.Context, caseID string) ([]*primary.AuditEntry, error) {
	if _, err := s.caseRepo.GetByID(ctx, caseID); err != nil {
		if errors.Is(err, secondary.ErrNotFound) {
			return nil, fmt.Errorf("case %s not found", caseID)
		}
		return nil, fmt.Errorf("failed to get case: %w", err)
	}

	records, err := s.auditRepo.ListByCase(ctx, caseID)
	if err != nil {
		return nil, fmt.Errorf("failed to load case history: %w", err)
	}

	entries := make([]*primary.AuditEntry, len(records))
	for i, r := range records {
		entries[i] = recordToAuditEntry(r)
	}
	return entries, nil
}

func recordToCase(r *secondary.CaseRecord) *primary.Case {
	return &primary.Case{
		ID:            r.ID,
		Title:         r.Title,
		Description:   r.Description,
		CurrentStatus: r.CurrentStatus,
		Assignee:      r.Assignee,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}
