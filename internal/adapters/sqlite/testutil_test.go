package sqlite

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/caseflow/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	database, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	if _, err := database.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}
	if _, err := database.Exec(db.GetSchemaSQL()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	return database
}

func seedTemplate(t *testing.T, database *sql.DB, id, name string, isDefault bool) {
	t.Helper()
	_, err := database.Exec(
		"INSERT INTO workflow_templates (id, name, is_default) VALUES (?, ?, ?)",
		id, name, isDefault,
	)
	if err != nil {
		t.Fatalf("failed to seed template %s: %v", id, err)
	}
}

func seedState(t *testing.T, database *sql.DB, id, templateID, stateType string) {
	t.Helper()
	_, err := database.Exec(
		"INSERT INTO workflow_states (id, template_id, label, state_type) VALUES (?, ?, ?, ?)",
		id, templateID, stateType, stateType,
	)
	if err != nil {
		t.Fatalf("failed to seed state %s: %v", id, err)
	}
}

func seedTransition(t *testing.T, database *sql.DB, id, templateID, fromID, toID string) {
	t.Helper()
	_, err := database.Exec(
		"INSERT INTO workflow_transitions (id, template_id, from_state_id, to_state_id) VALUES (?, ?, ?, ?)",
		id, templateID, fromID, toID,
	)
	if err != nil {
		t.Fatalf("failed to seed transition %s: %v", id, err)
	}
}

func seedCaseRow(t *testing.T, database *sql.DB, id, title, status string) {
	t.Helper()
	_, err := database.Exec(
		"INSERT INTO cases (id, title, current_status) VALUES (?, ?, ?)",
		id, title, status,
	)
	if err != nil {
		t.Fatalf("failed to seed case %s: %v", id, err)
	}
}

func countRows(t *testing.T, database *sql.DB, table, where string, args ...any) int {
	t.Helper()
	var count int
	query := "SELECT COUNT(*) FROM " + table
	if where != "" {
		query += " WHERE " + where
	}
	if err := database.QueryRow(query, args...).Scan(&count); err != nil {
		t.Fatalf("failed to count rows in %s: %v", table, err)
	}
	return count
}
