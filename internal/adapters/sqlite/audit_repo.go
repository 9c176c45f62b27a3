package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/caseflow/internal/ports/secondary"
)

// AuditRepository implements secondary.AuditRepository with SQLite. It is
// read-only by design: rows are inserted exclusively inside
// CaseRepository.ExecuteTransition and never change afterwards.
type AuditRepository struct {
	db *sql.DB
}

// NewAuditRepository creates a new SQLite audit repository.
func NewAuditRepository(db *sql.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// ListByCase retrieves a case's transition records in time order. rowid
// breaks ties between records written within the same clock second.
func (r *AuditRepository) ListByCase(ctx context.Context, caseID string) ([]*secondary.AuditRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, case_id, from_status, to_status, notes, actor_id, created_at FROM case_transitions WHERE case_id = ? ORDER BY created_at, rowid",
		caseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list case transitions: %w", err)
	}
	defer rows.Close()

	var records []*secondary.AuditRecord
	for rows.Next() {
		var (
			notes     sql.NullString
			createdAt time.Time
		)
		record := &secondary.AuditRecord{}
		err := rows.Scan(&record.ID, &record.CaseID, &record.FromStatus, &record.ToStatus, &notes, &record.ActorID, &createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan case transition: %w", err)
		}
		record.Notes = notes.String
		record.CreatedAt = createdAt.Format(time.RFC3339)
		records = append(records, record)
	}

	return records, rows.Err()
}
