// Package secondary defines the secondary ports (driven adapters) for the
// application. These are the interfaces through which the application drives
// external systems.
package secondary

import "context"

// TemplateRepository defines the secondary port for workflow template
// persistence.
type TemplateRepository interface {
	// Create persists a new template.
	Create(ctx context.Context, tmpl *TemplateRecord) error

	// GetByID retrieves a template by its ID.
	GetByID(ctx context.Context, id string) (*TemplateRecord, error)

	// GetDefault retrieves the template flagged default.
	// Returns ErrNotFound if no default template exists.
	GetDefault(ctx context.Context) (*TemplateRecord, error)

	// List retrieves all templates.
	List(ctx context.Context) ([]*TemplateRecord, error)

	// Exists reports whether a template with the given ID exists.
	Exists(ctx context.Context, id string) (bool, error)

	// ProvisionDefault persists a default template with its full graph in a
	// single transaction. Returns ErrConflict if another default template
	// already exists (uniqueness is enforced by the store); the caller then
	// discards its work and re-reads the winner.
	ProvisionDefault(ctx context.Context, tmpl *TemplateRecord, states []*StateRecord, transitions []*TransitionRecord) error
}

// TemplateRecord represents a workflow template as stored in persistence.
type TemplateRecord struct {
	ID          string
	Name        string
	Description string
	IsDefault   bool
	CreatedAt   string
}

// StateRepository defines the secondary port for workflow state persistence.
type StateRepository interface {
	// Create persists a new state.
	Create(ctx context.Context, state *StateRecord) error

	// GetByID retrieves a state by its ID.
	// Returns ErrNotFound if the state does not exist.
	GetByID(ctx context.Context, id string) (*StateRecord, error)

	// ListByTemplate retrieves all states of a template.
	ListByTemplate(ctx context.Context, templateID string) ([]*StateRecord, error)

	// UpdateLabel updates the display label only.
	UpdateLabel(ctx context.Context, id, label string) error

	// UpdatePosition updates the cosmetic canvas position only.
	UpdatePosition(ctx context.Context, id string, x, y float64) error

	// DeleteCascade deletes the state and every transition referencing it as
	// source or target, in a single transaction. No transition may outlive
	// either of its endpoints.
	DeleteCascade(ctx context.Context, id string) error
}

// StateRecord represents a workflow state as stored in persistence.
type StateRecord struct {
	ID         string
	TemplateID string
	Label      string
	StateType  string
	PosX       float64
	PosY       float64

	// Side-effects applied when a case arrives at this state.
	Assignee             string
	Notify               bool
	NotificationTemplate string

	CreatedAt string
	UpdatedAt string
}

// TransitionRepository defines the secondary port for workflow transition
// persistence.
type TransitionRepository interface {
	// Create persists a new transition.
	Create(ctx context.Context, transition *TransitionRecord) error

	// GetByID retrieves a transition by its ID.
	// Returns ErrNotFound if the transition does not exist.
	GetByID(ctx context.Context, id string) (*TransitionRecord, error)

	// ListByTemplate retrieves all transitions of a template.
	ListByTemplate(ctx context.Context, templateID string) ([]*TransitionRecord, error)

	// Delete removes the transition. Endpoint states are not touched.
	Delete(ctx context.Context, id string) error
}

// TransitionRecord represents a workflow transition as stored in persistence.
type TransitionRecord struct {
	ID          string
	TemplateID  string
	FromStateID string
	ToStateID   string
	Label       string
}

// CaseRepository defines the secondary port for case persistence.
type CaseRepository interface {
	// Create persists a new case.
	Create(ctx context.Context, c *CaseRecord) error

	// GetByID retrieves a case by its ID.
	// Returns ErrNotFound if the case does not exist.
	GetByID(ctx context.Context, id string) (*CaseRecord, error)

	// List retrieves cases matching the given filters.
	List(ctx context.Context, filters CaseFilters) ([]*CaseRecord, error)

	// GetNextID returns the next available case ID.
	GetNextID(ctx context.Context) (string, error)

	// ExecuteTransition atomically appends the audit record and moves the
	// case from record.FromStatus to record.ToStatus. The status update is
	// guarded by the current status, so a concurrent executor on the same
	// case fails with ErrConflict instead of splitting the two writes.
	ExecuteTransition(ctx context.Context, record *AuditRecord) error

	// UpdateAssignee reassigns the case. Used by the ownership collaborator,
	// never by the transition executor directly.
	UpdateAssignee(ctx context.Context, id, assignee string) error
}

// CaseRecord represents a quality-incident case as stored in persistence.
// CurrentStatus is mutated exclusively through ExecuteTransition.
type CaseRecord struct {
	ID            string
	Title         string
	Description   string
	CurrentStatus string
	Assignee      string
	CreatedAt     string
	UpdatedAt     string
}

// CaseFilters contains filter options for querying cases.
type CaseFilters struct {
	Status   string
	Assignee string
	Limit    int
}

// AuditRepository defines the secondary port for reading the case transition
// log. The log is append-only: inserts happen solely inside
// CaseRepository.ExecuteTransition, and no update or delete operation exists.
type AuditRepository interface {
	// ListByCase retrieves a case's transition records in time order.
	ListByCase(ctx context.Context, caseID string) ([]*AuditRecord, error)
}

// AuditRecord represents one executed transition. Immutable once written.
type AuditRecord struct {
	ID         string
	CaseID     string
	FromStatus string
	ToStatus   string
	Notes      string
	ActorID    string
	CreatedAt  string
}

// AccessRepository defines the secondary port for gate/dock access entries.
type AccessRepository interface {
	// Create persists a new access entry.
	Create(ctx context.Context, entry *AccessRecord) error

	// List retrieves access entries matching the given filters, newest first.
	List(ctx context.Context, filters AccessFilters) ([]*AccessRecord, error)
}

// AccessRecord represents one gate/dock movement.
type AccessRecord struct {
	ID         string
	Gate       string
	Direction  string // "in" or "out"
	Subject    string // person name or vehicle plate
	Carrier    string
	Notes      string
	RecordedBy string
	RecordedAt string
}

// AccessFilters contains filter options for querying access entries.
type AccessFilters struct {
	Gate      string
	Direction string
	Limit     int
}
