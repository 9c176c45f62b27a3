package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/caseflow/internal/ports/secondary"
)

// TransitionRepository implements secondary.TransitionRepository with SQLite.
type TransitionRepository struct {
	db *sql.DB
}

// NewTransitionRepository creates a new SQLite transition repository.
func NewTransitionRepository(db *sql.DB) *TransitionRepository {
	return &TransitionRepository{db: db}
}

const transitionSelectCols = "id, template_id, from_state_id, to_state_id, label"

// scanTransition scans a transition row into a TransitionRecord.
func scanTransition(scanner interface {
	Scan(dest ...any) error
}) (*secondary.TransitionRecord, error) {
	var label sql.NullString

	record := &secondary.TransitionRecord{}
	err := scanner.Scan(&record.ID, &record.TemplateID, &record.FromStateID, &record.ToStateID, &label)
	if err != nil {
		return nil, err
	}

	record.Label = label.String

	return record, nil
}

func insertTransition(ctx context.Context, ex execer, transition *secondary.TransitionRecord) error {
	var label sql.NullString
	if transition.Label != "" {
		label = sql.NullString{String: transition.Label, Valid: true}
	}

	_, err := ex.ExecContext(ctx,
		"INSERT INTO workflow_transitions (id, template_id, from_state_id, to_state_id, label) VALUES (?, ?, ?, ?, ?)",
		transition.ID, transition.TemplateID, transition.FromStateID, transition.ToStateID, label,
	)
	return err
}

// Create persists a new transition.
func (r *TransitionRepository) Create(ctx context.Context, transition *secondary.TransitionRecord) error {
	if err := insertTransition(ctx, r.db, transition); err != nil {
		return fmt.Errorf("failed to create transition: %w", err)
	}
	return nil
}

// GetByID retrieves a transition by its ID.
func (r *TransitionRepository) GetByID(ctx context.Context, id string) (*secondary.TransitionRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+transitionSelectCols+" FROM workflow_transitions WHERE id = ?", id,
	)

	record, err := scanTransition(row)
	if err == sql.ErrNoRows {
		return nil, secondary.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transition: %w", err)
	}

	return record, nil
}

// ListByTemplate retrieves all transitions of a template.
func (r *TransitionRepository) ListByTemplate(ctx context.Context, templateID string) ([]*secondary.TransitionRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+transitionSelectCols+" FROM workflow_transitions WHERE template_id = ? ORDER BY created_at, id",
		templateID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list transitions: %w", err)
	}
	defer rows.Close()

	var transitions []*secondary.TransitionRecord
	for rows.Next() {
		record, err := scanTransition(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transition: %w", err)
		}
		transitions = append(transitions, record)
	}

	return transitions, rows.Err()
}

// Delete removes the transition. Endpoint states are not touched.
func (r *TransitionRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM workflow_transitions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete transition: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return secondary.ErrNotFound
	}

	return nil
}
