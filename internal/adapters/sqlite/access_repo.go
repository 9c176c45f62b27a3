package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/caseflow/internal/ports/secondary"
)

// AccessRepository implements secondary.AccessRepository with SQLite.
type AccessRepository struct {
	db *sql.DB
}

// NewAccessRepository creates a new SQLite access repository.
func NewAccessRepository(db *sql.DB) *AccessRepository {
	return &AccessRepository{db: db}
}

// Create persists a new access entry.
func (r *AccessRepository) Create(ctx context.Context, entry *secondary.AccessRecord) error {
	var carrier, notes, recordedBy sql.NullString
	if entry.Carrier != "" {
		carrier = sql.NullString{String: entry.Carrier, Valid: true}
	}
	if entry.Notes != "" {
		notes = sql.NullString{String: entry.Notes, Valid: true}
	}
	if entry.RecordedBy != "" {
		recordedBy = sql.NullString{String: entry.RecordedBy, Valid: true}
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO access_entries (id, gate, direction, subject, carrier, notes, recorded_by) VALUES (?, ?, ?, ?, ?, ?, ?)",
		entry.ID, entry.Gate, entry.Direction, entry.Subject, carrier, notes, recordedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to create access entry: %w", err)
	}

	return nil
}

// List retrieves access entries matching the given filters, newest first.
func (r *AccessRepository) List(ctx context.Context, filters secondary.AccessFilters) ([]*secondary.AccessRecord, error) {
	query := "SELECT id, gate, direction, subject, carrier, notes, recorded_by, recorded_at FROM access_entries WHERE 1=1"
	var args []any

	if filters.Gate != "" {
		query += " AND gate = ?"
		args = append(args, filters.Gate)
	}
	if filters.Direction != "" {
		query += " AND direction = ?"
		args = append(args, filters.Direction)
	}
	query += " ORDER BY recorded_at DESC, rowid DESC"
	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list access entries: %w", err)
	}
	defer rows.Close()

	var entries []*secondary.AccessRecord
	for rows.Next() {
		var (
			carrier    sql.NullString
			notes      sql.NullString
			recordedBy sql.NullString
			recordedAt time.Time
		)
		record := &secondary.AccessRecord{}
		err := rows.Scan(&record.ID, &record.Gate, &record.Direction, &record.Subject, &carrier, &notes, &recordedBy, &recordedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan access entry: %w", err)
		}
		record.Carrier = carrier.String
		record.Notes = notes.String
		record.RecordedBy = recordedBy.String
		record.RecordedAt = recordedAt.Format(time.RFC3339)
		entries = append(entries, record)
	}

	return entries, rows.Err()
}
