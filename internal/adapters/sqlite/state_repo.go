package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/caseflow/internal/ports/secondary"
)

// execer abstracts *sql.DB and *sql.Tx so insert helpers can run inside the
// provisioning and cascade transactions.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// StateRepository implements secondary.StateRepository with SQLite.
type StateRepository struct {
	db *sql.DB
}

// NewStateRepository creates a new SQLite state repository.
func NewStateRepository(db *sql.DB) *StateRepository {
	return &StateRepository{db: db}
}

const stateSelectCols = "id, template_id, label, state_type, pos_x, pos_y, assignee, notify, notification_template, created_at, updated_at"

// scanState scans a state row into a StateRecord.
func scanState(scanner interface {
	Scan(dest ...any) error
}) (*secondary.StateRecord, error) {
	var (
		assignee     sql.NullString
		notify       bool
		notification sql.NullString
		createdAt    time.Time
		updatedAt    time.Time
	)

	record := &secondary.StateRecord{}
	err := scanner.Scan(
		&record.ID, &record.TemplateID, &record.Label, &record.StateType,
		&record.PosX, &record.PosY, &assignee, &notify, &notification,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.Assignee = assignee.String
	record.Notify = notify
	record.NotificationTemplate = notification.String
	record.CreatedAt = createdAt.Format(time.RFC3339)
	record.UpdatedAt = updatedAt.Format(time.RFC3339)

	return record, nil
}

func insertState(ctx context.Context, ex execer, state *secondary.StateRecord) error {
	var assignee, notification sql.NullString
	if state.Assignee != "" {
		assignee = sql.NullString{String: state.Assignee, Valid: true}
	}
	if state.NotificationTemplate != "" {
		notification = sql.NullString{String: state.NotificationTemplate, Valid: true}
	}

	_, err := ex.ExecContext(ctx,
		"INSERT INTO workflow_states (id, template_id, label, state_type, pos_x, pos_y, assignee, notify, notification_template) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		state.ID, state.TemplateID, state.Label, state.StateType,
		state.PosX, state.PosY, assignee, state.Notify, notification,
	)
	return err
}

// Create persists a new state.
func (r *StateRepository) Create(ctx context.Context, state *secondary.StateRecord) error {
	if err := insertState(ctx, r.db, state); err != nil {
		return fmt.Errorf("failed to create state: %w", err)
	}
	return nil
}

// GetByID retrieves a state by its ID.
func (r *StateRepository) GetByID(ctx context.Context, id string) (*secondary.StateRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+stateSelectCols+" FROM workflow_states WHERE id = ?", id,
	)

	record, err := scanState(row)
	if err == sql.ErrNoRows {
		return nil, secondary.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get state: %w", err)
	}

	return record, nil
}

// ListByTemplate retrieves all states of a template.
func (r *StateRepository) ListByTemplate(ctx context.Context, templateID string) ([]*secondary.StateRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+stateSelectCols+" FROM workflow_states WHERE template_id = ? ORDER BY created_at, id",
		templateID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list states: %w", err)
	}
	defer rows.Close()

	var states []*secondary.StateRecord
	for rows.Next() {
		record, err := scanState(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan state: %w", err)
		}
		states = append(states, record)
	}

	return states, rows.Err()
}

// UpdateLabel updates the display label only.
func (r *StateRepository) UpdateLabel(ctx context.Context, id, label string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE workflow_states SET label = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		label, id,
	)
	if err != nil {
		return fmt.Errorf("failed to rename state: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return secondary.ErrNotFound
	}

	return nil
}

// UpdatePosition updates the cosmetic canvas position only.
func (r *StateRepository) UpdatePosition(ctx context.Context, id string, x, y float64) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE workflow_states SET pos_x = ?, pos_y = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		x, y, id,
	)
	if err != nil {
		return fmt.Errorf("failed to reposition state: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return secondary.ErrNotFound
	}

	return nil
}

// DeleteCascade deletes the state and every transition referencing it, in a
// single transaction. Transitions go first so no edge ever outlives an
// endpoint, even if the run is interrupted.
func (r *StateRepository) DeleteCascade(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin delete transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"DELETE FROM workflow_transitions WHERE from_state_id = ? OR to_state_id = ?",
		id, id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete transitions of state: %w", err)
	}

	result, err := tx.ExecContext(ctx, "DELETE FROM workflow_states WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete state: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return secondary.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit delete transaction: %w", err)
	}

	return nil
}
