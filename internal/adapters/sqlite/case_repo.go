package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/caseflow/internal/ports/secondary"
)

// CaseRepository implements secondary.CaseRepository with SQLite.
type CaseRepository struct {
	db *sql.DB
}

// NewCaseRepository creates a new SQLite case repository.
func NewCaseRepository(db *sql.DB) *CaseRepository {
	return &CaseRepository{db: db}
}

const caseSelectCols = "id, title, description, current_status, assignee, created_at, updated_at"

// scanCase scans a case row into a CaseRecord.
func scanCase(scanner interface {
	Scan(dest ...any) error
}) (*secondary.CaseRecord, error) {
	var (
		desc      sql.NullString
		assignee  sql.NullString
		createdAt time.Time
		updatedAt time.Time
	)

	record := &secondary.CaseRecord{}
	err := scanner.Scan(&record.ID, &record.Title, &desc, &record.CurrentStatus, &assignee, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	record.Description = desc.String
	record.Assignee = assignee.String
	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)

	return record, nil
}

// Create persists a new case.
func (r *CaseRepository) Create(ctx context.Context, c *secondary.CaseRecord) error {
	var desc, assignee sql.NullString
	if c.Description != "" {
		desc = sql.NullString{String: c.Description, Valid: true}
	}
	if c.Assignee != "" {
		assignee = sql.NullString{String: c.Assignee, Valid: true}
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO cases (id, title, description, current_status, assignee) VALUES (?, ?, ?, ?, ?)",
		c.ID, c.Title, desc, c.CurrentStatus, assignee,
	)
	if err != nil {
		return fmt.Errorf("failed to create case: %w", err)
	}

	return nil
}

// GetByID retrieves a case by its ID.
func (r *CaseRepository) GetByID(ctx context.Context, id string) (*secondary.CaseRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+caseSelectCols+" FROM cases WHERE id = ?", id,
	)

	record, err := scanCase(row)
	if err == sql.ErrNoRows {
		return nil, secondary.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get case: %w", err)
	}

	return record, nil
}

// List retrieves cases matching the given filters.
func (r *CaseRepository) List(ctx context.Context, filters secondary.CaseFilters) ([]*secondary.CaseRecord, error) {
	query := "SELECT " + caseSelectCols + " FROM cases WHERE 1=1"
	var args []any

	if filters.Status != "" {
		query += " AND current_status = ?"
		args = append(args, filters.Status)
	}
	if filters.Assignee != "" {
		query += " AND assignee = ?"
		args = append(args, filters.Assignee)
	}
	query += " ORDER BY created_at DESC, id DESC"
	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list cases: %w", err)
	}
	defer rows.Close()

	var cases []*secondary.CaseRecord
	for rows.Next() {
		record, err := scanCase(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan case: %w", err)
		}
		cases = append(cases, record)
	}

	return cases, rows.Err()
}

// GetNextID returns the next available case ID.
func (r *CaseRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 6) AS INTEGER)), 0) FROM cases",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next case ID: %w", err)
	}

	return fmt.Sprintf("CASE-%03d", maxID+1), nil
}

// ExecuteTransition atomically appends the audit record and updates the
// case status. The UPDATE is guarded by the expected current status, so two
// concurrent executors on the same case cannot both commit: the loser's
// guard matches zero rows and the whole transaction rolls back, audit
// record included.
func (r *CaseRepository) ExecuteTransition(ctx context.Context, record *secondary.AuditRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transition transaction: %w", err)
	}
	defer tx.Rollback()

	var notes sql.NullString
	if record.Notes != "" {
		notes = sql.NullString{String: record.Notes, Valid: true}
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO case_transitions (id, case_id, from_status, to_status, notes, actor_id, created_at) VALUES (?, ?, ?, ?, ?, ?, COALESCE(NULLIF(?, ''), CURRENT_TIMESTAMP))",
		record.ID, record.CaseID, record.FromStatus, record.ToStatus, notes, record.ActorID, record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to write audit record: %w", err)
	}

	result, err := tx.ExecContext(ctx,
		"UPDATE cases SET current_status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND current_status = ?",
		record.ToStatus, record.CaseID, record.FromStatus,
	)
	if err != nil {
		return fmt.Errorf("failed to update case status: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		// Case missing, or its status moved under us. Either way nothing is
		// committed; the caller re-reads and decides.
		return secondary.ErrConflict
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transition transaction: %w", err)
	}

	return nil
}

// UpdateAssignee reassigns the case.
func (r *CaseRepository) UpdateAssignee(ctx context.Context, id, assignee string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE cases SET assignee = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		assignee, id,
	)
	if err != nil {
		return fmt.Errorf("failed to reassign case: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return secondary.ErrNotFound
	}

	return nil
}
