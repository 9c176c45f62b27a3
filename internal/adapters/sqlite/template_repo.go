// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/example/caseflow/internal/ports/secondary"
)

// TemplateRepository implements secondary.TemplateRepository with SQLite.
type TemplateRepository struct {
	db *sql.DB
}

// NewTemplateRepository creates a new SQLite template repository.
func NewTemplateRepository(db *sql.DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

const templateSelectCols = "id, name, description, is_default, created_at"

// scanTemplate scans a template row into a TemplateRecord.
func scanTemplate(scanner interface {
	Scan(dest ...any) error
}) (*secondary.TemplateRecord, error) {
	var (
		desc      sql.NullString
		isDefault bool
		createdAt time.Time
	)

	record := &secondary.TemplateRecord{}
	err := scanner.Scan(&record.ID, &record.Name, &desc, &isDefault, &createdAt)
	if err != nil {
		return nil, err
	}

	record.Description = desc.String
	record.IsDefault = isDefault
	record.CreatedAt = createdAt.Format(time.RFC3339)

	return record, nil
}

// Create persists a new template.
func (r *TemplateRepository) Create(ctx context.Context, tmpl *secondary.TemplateRecord) error {
	var desc sql.NullString
	if tmpl.Description != "" {
		desc = sql.NullString{String: tmpl.Description, Valid: true}
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO workflow_templates (id, name, description, is_default) VALUES (?, ?, ?, ?)",
		tmpl.ID, tmpl.Name, desc, tmpl.IsDefault,
	)
	if err != nil {
		if isConstraintErr(err) {
			return secondary.ErrConflict
		}
		return fmt.Errorf("failed to create template: %w", err)
	}

	return nil
}

// GetByID retrieves a template by its ID.
func (r *TemplateRepository) GetByID(ctx context.Context, id string) (*secondary.TemplateRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+templateSelectCols+" FROM workflow_templates WHERE id = ?", id,
	)

	record, err := scanTemplate(row)
	if err == sql.ErrNoRows {
		return nil, secondary.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get template: %w", err)
	}

	return record, nil
}

// GetDefault retrieves the template flagged default.
func (r *TemplateRepository) GetDefault(ctx context.Context) (*secondary.TemplateRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+templateSelectCols+" FROM workflow_templates WHERE is_default = 1",
	)

	record, err := scanTemplate(row)
	if err == sql.ErrNoRows {
		return nil, secondary.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get default template: %w", err)
	}

	return record, nil
}

// List retrieves all templates.
func (r *TemplateRepository) List(ctx context.Context) ([]*secondary.TemplateRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+templateSelectCols+" FROM workflow_templates ORDER BY created_at, id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	defer rows.Close()

	var templates []*secondary.TemplateRecord
	for rows.Next() {
		record, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan template: %w", err)
		}
		templates = append(templates, record)
	}

	return templates, rows.Err()
}

// Exists reports whether a template with the given ID exists.
func (r *TemplateRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM workflow_templates WHERE id = ?", id,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check template existence: %w", err)
	}
	return count > 0, nil
}

// ProvisionDefault persists a default template with its full graph in a
// single transaction. The partial unique index on is_default makes the
// template insert fail for every provisioner but one; losers get
// ErrConflict and nothing of theirs survives.
func (r *TemplateRepository) ProvisionDefault(ctx context.Context, tmpl *secondary.TemplateRecord, states []*secondary.StateRecord, transitions []*secondary.TransitionRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin provisioning transaction: %w", err)
	}
	defer tx.Rollback()

	var desc sql.NullString
	if tmpl.Description != "" {
		desc = sql.NullString{String: tmpl.Description, Valid: true}
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO workflow_templates (id, name, description, is_default) VALUES (?, ?, ?, 1)",
		tmpl.ID, tmpl.Name, desc,
	)
	if err != nil {
		if isConstraintErr(err) {
			return secondary.ErrConflict
		}
		return fmt.Errorf("failed to provision template: %w", err)
	}

	for _, s := range states {
		if err := insertState(ctx, tx, s); err != nil {
			return fmt.Errorf("failed to provision state %s: %w", s.StateType, err)
		}
	}
	for _, t := range transitions {
		if err := insertTransition(ctx, tx, t); err != nil {
			return fmt.Errorf("failed to provision transition: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit provisioning transaction: %w", err)
	}

	return nil
}

// isConstraintErr reports whether err is a SQLite constraint violation
// (unique index, check or foreign key).
func isConstraintErr(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint
}
