package db

// SchemaSQL is the complete modern schema for fresh caseflow installs.
// This schema reflects the current state after all migrations.
//
// This is the SINGLE SOURCE OF TRUTH for the database schema. All tests use
// it via GetSchemaSQL() so that test schemas cannot drift from production.
// Do not hardcode CREATE TABLE statements in test files.
//
// When adding new columns or tables:
//  1. Add a migration in internal/db/migrations.go
//  2. Update SchemaSQL here
//  3. Run the test suite to verify alignment
const SchemaSQL = `
-- Workflow templates (one directed graph per template)
CREATE TABLE IF NOT EXISTS workflow_templates (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	description TEXT,
	is_default INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- At most one template may be flagged default. The partial unique index is
-- the mutual-exclusion guarantee for concurrent auto-provisioning.
CREATE UNIQUE INDEX IF NOT EXISTS idx_templates_single_default
	ON workflow_templates(is_default) WHERE is_default = 1;

-- Workflow states (graph nodes)
CREATE TABLE IF NOT EXISTS workflow_states (
	id TEXT PRIMARY KEY,
	template_id TEXT NOT NULL,
	label TEXT NOT NULL,
	state_type TEXT NOT NULL CHECK(state_type IN ('open', 'analysis', 'resolution', 'solved', 'closing', 'closed')),
	pos_x REAL NOT NULL DEFAULT 0,
	pos_y REAL NOT NULL DEFAULT 0,
	assignee TEXT,
	notify INTEGER NOT NULL DEFAULT 0,
	notification_template TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (template_id) REFERENCES workflow_templates(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_states_template ON workflow_states(template_id);

-- Workflow transitions (directed graph edges). The cascading foreign keys
-- are the store-level backstop for the application-level delete cascade: a
-- transition can never outlive either endpoint.
CREATE TABLE IF NOT EXISTS workflow_transitions (
	id TEXT PRIMARY KEY,
	template_id TEXT NOT NULL,
	from_state_id TEXT NOT NULL,
	to_state_id TEXT NOT NULL,
	label TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (template_id) REFERENCES workflow_templates(id) ON DELETE CASCADE,
	FOREIGN KEY (from_state_id) REFERENCES workflow_states(id) ON DELETE CASCADE,
	FOREIGN KEY (to_state_id) REFERENCES workflow_states(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_transitions_template ON workflow_transitions(template_id);
CREATE INDEX IF NOT EXISTS idx_transitions_from ON workflow_transitions(from_state_id);
CREATE INDEX IF NOT EXISTS idx_transitions_to ON workflow_transitions(to_state_id);

-- Cases (quality incidents / non-conformances)
CREATE TABLE IF NOT EXISTS cases (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	description TEXT,
	current_status TEXT NOT NULL DEFAULT 'open',
	assignee TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_cases_status ON cases(current_status);

-- Case transition audit log. Append-only: no code path updates or deletes
-- rows here, and the history stays reconstructible after graph edits.
CREATE TABLE IF NOT EXISTS case_transitions (
	id TEXT PRIMARY KEY,
	case_id TEXT NOT NULL,
	from_status TEXT NOT NULL,
	to_status TEXT NOT NULL,
	notes TEXT,
	actor_id TEXT NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (case_id) REFERENCES cases(id)
);

CREATE INDEX IF NOT EXISTS idx_case_transitions_case ON case_transitions(case_id);

-- Gate/dock access log
CREATE TABLE IF NOT EXISTS access_entries (
	id TEXT PRIMARY KEY,
	gate TEXT NOT NULL,
	direction TEXT NOT NULL CHECK(direction IN ('in', 'out')),
	subject TEXT NOT NULL,
	carrier TEXT,
	notes TEXT,
	recorded_by TEXT,
	recorded_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_access_gate ON access_entries(gate);
`

// InitSchema creates the database schema
func InitSchema() error {
	db, err := GetDB()
	if err != nil {
		return err
	}

	// Check if schema_version table exists to determine if this is a fresh install
	var tableCount int
	err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&tableCount)
	if err != nil {
		return err
	}

	if tableCount == 0 {
		// Completely fresh install - create modern schema directly and mark
		// all migrations as applied so the runner skips them
		if _, err = db.Exec(SchemaSQL); err != nil {
			return err
		}
		_, err = db.Exec(`
			CREATE TABLE IF NOT EXISTS schema_version (
				version INTEGER PRIMARY KEY,
				applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
			)
		`)
		if err != nil {
			return err
		}
		for _, m := range migrations {
			if _, err = db.Exec("INSERT INTO schema_version (version) VALUES (?)", m.Version); err != nil {
				return err
			}
		}
		return nil
	}

	// schema_version table exists - run any pending migrations
	return RunMigrations()
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}
