package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/example/caseflow/internal/ctxutil"
	"github.com/example/caseflow/internal/ports/primary"
	"github.com/example/caseflow/internal/ports/secondary"
)

// AccessServiceImpl implements the AccessService interface for the gate and
// dock access log.
type AccessServiceImpl struct {
	accessRepo secondary.AccessRepository
}

// NewAccessService creates a new AccessService with injected dependencies.
func NewAccessService(accessRepo secondary.AccessRepository) *AccessServiceImpl {
	return &AccessServiceImpl{accessRepo: accessRepo}
}

// RecordEntry records one gate movement.
func (s *AccessServiceImpl) RecordEntry(ctx context.Context, req primary.RecordEntryRequest) (*primary.AccessEntry, error) {
	if req.Gate == "" {
		return nil, fmt.Errorf("gate is required")
	}
	if req.Subject == "" {
		return nil, fmt.Errorf("subject is required")
	}
	if req.Direction != "in" && req.Direction != "out" {
		return nil, fmt.Errorf("direction must be 'in' or 'out', got %q", req.Direction)
	}

	record := &secondary.AccessRecord{
		ID:         uuid.NewString(),
		Gate:       req.Gate,
		Direction:  req.Direction,
		Subject:    req.Subject,
		Carrier:    req.Carrier,
		Notes:      req.Notes,
		RecordedBy: ctxutil.ActorFromContext(ctx),
	}

	if err := s.accessRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to record access entry: %w", err)
	}

	return recordToAccessEntry(record), nil
}

// ListEntries lists recorded movements, newest first.
func (s *AccessServiceImpl) ListEntries(ctx context.Context, filters primary.AccessFilters) ([]*primary.AccessEntry, error) {
	records, err := s.accessRepo.List(ctx, secondary.AccessFilters{
		Gate:      filters.Gate,
		Direction: filters.Direction,
		Limit:     filters.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list access entries: %w", err)
	}

	entries := make([]*primary.AccessEntry, len(records))
	for i, r := range records {
		entries[i] = recordToAccessEntry(r)
	}
	return entries, nil
}

func recordToAccessEntry(r *secondary.AccessRecord) *primary.AccessEntry {
	return &primary.AccessEntry{
		ID:         r.ID,
		Gate:       r.Gate,
		Direction:  r.Direction,
		Subject:    r.Subject,
		Carrier:    r.Carrier,
		Notes:      r.Notes,
		RecordedBy: r.RecordedBy,
		RecordedAt: r.RecordedAt,
	}
}
