package db

import (
	"database/sql"
	"fmt"
	"time"
)

// SeedFixtures populates the database with development fixtures: a handful
// of cases at different workflow stages with believable histories, plus a
// day of gate traffic. It assumes the default template has already been
// provisioned.
func SeedFixtures(database *sql.DB) error {
	now := time.Now().Format(time.RFC3339)

	// Cases
	cases := []struct{ id, title, desc, status, assignee string }{
		{"CASE-001", "Scratched housings in lot 4411", "Visual inspection found deep scratches on 12 of 200 housings.", "analysis", "m.weber"},
		{"CASE-002", "Wrong label on pallet 88", "Shipping label shows the 240V variant, pallet contains 110V units.", "open", ""},
		{"CASE-003", "Coolant leak at press 2", "Recurring leak, third incident this quarter.", "resolution", "a.silva"},
		{"CASE-004", "Supplier cert expired", "Incoming steel batch arrived with an expired material certificate.", "closed", "m.weber"},
	}
	for _, c := range cases {
		if _, err := database.Exec(
			"INSERT INTO cases (id, title, description, current_status, assignee, created_at, updated_at) VALUES (?, ?, ?, ?, NULLIF(?, ''), ?, ?)",
			c.id, c.title, c.desc, c.status, c.assignee, now, now,
		); err != nil {
			return fmt.Errorf("seed cases: %w", err)
		}
	}

	// Transition histories consistent with the statuses above
	transitions := []struct{ id, caseID, from, to, notes, actor string }{
		{"LOG-001", "CASE-001", "open", "analysis", "Assigned to incoming QA for root cause", "m.weber"},
		{"LOG-002", "CASE-003", "open", "analysis", "", "a.silva"},
		{"LOG-003", "CASE-003", "analysis", "resolution", "Seal supplier confirmed wrong compound", "a.silva"},
		{"LOG-004", "CASE-004", "open", "analysis", "", "m.weber"},
		{"LOG-005", "CASE-004", "analysis", "resolution", "Requested updated certificate", "m.weber"},
		{"LOG-006", "CASE-004", "resolution", "solved", "Certificate received and verified", "m.weber"},
		{"LOG-007", "CASE-004", "solved", "closing", "", "m.weber"},
		{"LOG-008", "CASE-004", "closing", "closed", "No further action", "j.quality"},
	}
	for _, tr := range transitions {
		if _, err := database.Exec(
			"INSERT INTO case_transitions (id, case_id, from_status, to_status, notes, actor_id, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
			tr.id, tr.caseID, tr.from, tr.to, tr.notes, tr.actor, now,
		); err != nil {
			return fmt.Errorf("seed case transitions: %w", err)
		}
	}

	// Gate traffic
	entries := []struct{ id, gate, direction, subject, carrier string }{
		{"ACC-001", "dock-1", "in", "HH-AB 1234", "Spedition Nord"},
		{"ACC-002", "dock-1", "out", "HH-AB 1234", "Spedition Nord"},
		{"ACC-003", "gate-main", "in", "K. Olsen", ""},
		{"ACC-004", "dock-2", "in", "B-XY 998", "TransCargo"},
	}
	for _, e := range entries {
		if _, err := database.Exec(
			"INSERT INTO access_entries (id, gate, direction, subject, carrier, recorded_by, recorded_at) VALUES (?, ?, ?, ?, NULLIF(?, ''), 'seed', ?)",
			e.id, e.gate, e.direction, e.subject, e.carrier, now,
		); err != nil {
			return fmt.Errorf("seed access entries: %w", err)
		}
	}

	return nil
}
