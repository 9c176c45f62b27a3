package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/example/caseflow/internal/ports/secondary"
)

// ============================================================================
// Mock Implementations
// ============================================================================

// mockGraphStore implements the template, state and transition repositories
// over in-memory maps. Insertion order is preserved so graph listings come
// back the way they were provisioned.
type mockGraphStore struct {
	templates       map[string]*secondary.TemplateRecord
	states          map[string]*secondary.StateRecord
	stateOrder      []string
	transitions     map[string]*secondary.TransitionRecord
	transitionOrder []string

	provisionCalls    int
	provisionConflict bool // next ProvisionDefault loses the race
	getDefaultErr     error
}

func newMockGraphStore() *mockGraphStore {
	return &mockGraphStore{
		templates:   make(map[string]*secondary.TemplateRecord),
		states:      make(map[string]*secondary.StateRecord),
		transitions: make(map[string]*secondary.TransitionRecord),
	}
}

func (m *mockGraphStore) Create(ctx context.Context, tmpl *secondary.TemplateRecord) error {
	if tmpl.IsDefault && m.hasDefault() {
		return secondary.ErrConflict
	}
	m.templates[tmpl.ID] = tmpl
	return nil
}

func (m *mockGraphStore) GetByID(ctx context.Context, id string) (*secondary.TemplateRecord, error) {
	if tmpl, ok := m.templates[id]; ok {
		return tmpl, nil
	}
	return nil, secondary.ErrNotFound
}

func (m *mockGraphStore) GetDefault(ctx context.Context) (*secondary.TemplateRecord, error) {
	if m.getDefaultErr != nil {
		return nil, m.getDefaultErr
	}
	for _, tmpl := range m.templates {
		if tmpl.IsDefault {
			return tmpl, nil
		}
	}
	return nil, secondary.ErrNotFound
}

func (m *mockGraphStore) List(ctx context.Context) ([]*secondary.TemplateRecord, error) {
	var result []*secondary.TemplateRecord
	for _, tmpl := range m.templates {
		result = append(result, tmpl)
	}
	return result, nil
}

func (m *mockGraphStore) Exists(ctx context.Context, id string) (bool, error) {
	_, ok := m.templates[id]
	return ok, nil
}

func (m *mockGraphStore) ProvisionDefault(ctx context.Context, tmpl *secondary.TemplateRecord, states []*secondary.StateRecord, transitions []*secondary.TransitionRecord) error {
	m.provisionCalls++

	if m.provisionConflict {
		// Simulate a concurrent provisioner winning the unique-index race.
		m.provisionConflict = false
		winner := &secondary.TemplateRecord{ID: "WFT-WINNER", Name: "winner", IsDefault: true}
		m.templates[winner.ID] = winner
		return secondary.ErrConflict
	}
	if m.hasDefault() {
		return secondary.ErrConflict
	}

	tmpl.IsDefault = true
	m.templates[tmpl.ID] = tmpl
	for _, s := range states {
		m.states[s.ID] = s
		m.stateOrder = append(m.stateOrder, s.ID)
	}
	for _, t := range transitions {
		m.transitions[t.ID] = t
		m.transitionOrder = append(m.transitionOrder, t.ID)
	}
	return nil
}

func (m *mockGraphStore) hasDefault() bool {
	for _, tmpl := range m.templates {
		if tmpl.IsDefault {
			return true
		}
	}
	return false
}

// --- StateRepository ---

func (m *mockGraphStore) CreateState(s *secondary.StateRecord) {
	m.states[s.ID] = s
	m.stateOrder = append(m.stateOrder, s.ID)
}

func (m *mockGraphStore) GetStateByID(ctx context.Context, id string) (*secondary.StateRecord, error) {
	if s, ok := m.states[id]; ok {
		return s, nil
	}
	return nil, secondary.ErrNotFound
}

func (m *mockGraphStore) ListStatesByTemplate(ctx context.Context, templateID string) ([]*secondary.StateRecord, error) {
	var result []*secondary.StateRecord
	for _, id := range m.stateOrder {
		if s, ok := m.states[id]; ok && s.TemplateID == templateID {
			result = append(result, s)
		}
	}
	return result, nil
}

func (m *mockGraphStore) UpdateLabel(ctx context.Context, id, label string) error {
	s, ok := m.states[id]
	if !ok {
		return secondary.ErrNotFound
	}
	s.Label = label
	return nil
}

func (m *mockGraphStore) UpdatePosition(ctx context.Context, id string, x, y float64) error {
	s, ok := m.states[id]
	if !ok {
		return secondary.ErrNotFound
	}
	s.PosX = x
	s.PosY = y
	return nil
}

func (m *mockGraphStore) DeleteCascade(ctx context.Context, id string) error {
	if _, ok := m.states[id]; !ok {
		return secondary.ErrNotFound
	}
	var keep []string
	for _, trID := range m.transitionOrder {
		tr := m.transitions[trID]
		if tr.FromStateID == id || tr.ToStateID == id {
			delete(m.transitions, trID)
			continue
		}
		keep = append(keep, trID)
	}
	m.transitionOrder = keep
	delete(m.states, id)
	var keepStates []string
	for _, sID := range m.stateOrder {
		if sID != id {
			keepStates = append(keepStates, sID)
		}
	}
	m.stateOrder = keepStates
	return nil
}

// --- TransitionRepository ---

func (m *mockGraphStore) CreateTransition(ctx context.Context, t *secondary.TransitionRecord) error {
	m.transitions[t.ID] = t
	m.transitionOrder = append(m.transitionOrder, t.ID)
	return nil
}

func (m *mockGraphStore) GetTransitionByID(ctx context.Context, id string) (*secondary.TransitionRecord, error) {
	if t, ok := m.transitions[id]; ok {
		return t, nil
	}
	return nil, secondary.ErrNotFound
}

func (m *mockGraphStore) ListTransitionsByTemplate(ctx context.Context, templateID string) ([]*secondary.TransitionRecord, error) {
	var result []*secondary.TransitionRecord
	for _, id := range m.transitionOrder {
		if t, ok := m.transitions[id]; ok && t.TemplateID == templateID {
			result = append(result, t)
		}
	}
	return result, nil
}

func (m *mockGraphStore) DeleteTransition(ctx context.Context, id string) error {
	if _, ok := m.transitions[id]; !ok {
		return secondary.ErrNotFound
	}
	delete(m.transitions, id)
	var keep []string
	for _, trID := range m.transitionOrder {
		if trID != id {
			keep = append(keep, trID)
		}
	}
	m.transitionOrder = keep
	return nil
}

// stateRepoView and transitionRepoView adapt mockGraphStore's prefixed
// methods onto the secondary interfaces, which share method names.
type stateRepoView struct{ store *mockGraphStore }

func (v stateRepoView) Create(ctx context.Context, s *secondary.StateRecord) error {
	v.store.CreateState(s)
	return nil
}

func (v stateRepoView) GetByID(ctx context.Context, id string) (*secondary.StateRecord, error) {
	return v.store.GetStateByID(ctx, id)
}

func (v stateRepoView) ListByTemplate(ctx context.Context, templateID string) ([]*secondary.StateRecord, error) {
	return v.store.ListStatesByTemplate(ctx, templateID)
}

func (v stateRepoView) UpdateLabel(ctx context.Context, id, label string) error {
	return v.store.UpdateLabel(ctx, id, label)
}

func (v stateRepoView) UpdatePosition(ctx context.Context, id string, x, y float64) error {
	return v.store.UpdatePosition(ctx, id, x, y)
}

func (v stateRepoView) DeleteCascade(ctx context.Context, id string) error {
	return v.store.DeleteCascade(ctx, id)
}

type transitionRepoView struct{ store *mockGraphStore }

func (v transitionRepoView) Create(ctx context.Context, t *secondary.TransitionRecord) error {
	return v.store.CreateTransition(ctx, t)
}

func (v transitionRepoView) GetByID(ctx context.Context, id string) (*secondary.TransitionRecord, error) {
	return v.store.GetTransitionByID(ctx, id)
}

func (v transitionRepoView) ListByTemplate(ctx context.Context, templateID string) ([]*secondary.TransitionRecord, error) {
	return v.store.ListTransitionsByTemplate(ctx, templateID)
}

func (v transitionRepoView) Delete(ctx context.Context, id string) error {
	return v.store.DeleteTransition(ctx, id)
}

// mockCaseStore implements CaseRepository and AuditRepository with the same
// guarded-update semantics as the SQLite adapter.
type mockCaseStore struct {
	cases      map[string]*secondary.CaseRecord
	audits     []*secondary.AuditRecord
	executeErr error
}

func newMockCaseStore() *mockCaseStore {
	return &mockCaseStore{cases: make(map[string]*secondary.CaseRecord)}
}

func (m *mockCaseStore) Create(ctx context.Context, c *secondary.CaseRecord) error {
	m.cases[c.ID] = c
	return nil
}

func (m *mockCaseStore) GetByID(ctx context.Context, id string) (*secondary.CaseRecord, error) {
	if c, ok := m.cases[id]; ok {
		return c, nil
	}
	return nil, secondary.ErrNotFound
}

func (m *mockCaseStore) List(ctx context.Context, filters secondary.CaseFilters) ([]*secondary.CaseRecord, error) {
	var result []*secondary.CaseRecord
	for _, c := range m.cases {
		if filters.Status != "" && c.CurrentStatus != filters.Status {
			continue
		}
		if filters.Assignee != "" && c.Assignee != filters.Assignee {
			continue
		}
		result = append(result, c)
	}
	return result, nil
}

func (m *mockCaseStore) GetNextID(ctx context.Context) (string, error) {
	return fmt.Sprintf("CASE-%03d", len(m.cases)+1), nil
}

func (m *mockCaseStore) ExecuteTransition(ctx context.Context, record *secondary.AuditRecord) error {
	if m.executeErr != nil {
		return m.executeErr
	}
	c, ok := m.cases[record.CaseID]
	if !ok || c.CurrentStatus != record.FromStatus {
		return secondary.ErrConflict
	}
	m.audits = append(m.audits, record)
	c.CurrentStatus = record.ToStatus
	return nil
}

func (m *mockCaseStore) UpdateAssignee(ctx context.Context, id, assignee string) error {
	c, ok := m.cases[id]
	if !ok {
		return secondary.ErrNotFound
	}
	c.Assignee = assignee
	return nil
}

func (m *mockCaseStore) ListByCase(ctx context.Context, caseID string) ([]*secondary.AuditRecord, error) {
	var result []*secondary.AuditRecord
	for _, a := range m.audits {
		if a.CaseID == caseID {
			result = append(result, a)
		}
	}
	return result, nil
}

// mockDispatcher records dispatched notifications.
type mockDispatcher struct {
	mu   sync.Mutex
	sent []secondary.Notification
}

func (m *mockDispatcher) Dispatch(ctx context.Context, n secondary.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, n)
	return nil
}

// mockOwnership records reassignment requests.
type mockOwnership struct {
	reassigned map[string]string // caseID -> assignee
}

func newMockOwnership() *mockOwnership {
	return &mockOwnership{reassigned: make(map[string]string)}
}

func (m *mockOwnership) Reassign(ctx context.Context, caseID, assignee string) error {
	m.reassigned[caseID] = assignee
	return nil
}

// mockAccessRepository implements AccessRepository over a slice.
type mockAccessRepository struct {
	entries []*secondary.AccessRecord
}

func (m *mockAccessRepository) Create(ctx context.Context, entry *secondary.AccessRecord) error {
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockAccessRepository) List(ctx context.Context, filters secondary.AccessFilters) ([]*secondary.AccessRecord, error) {
	var result []*secondary.AccessRecord
	for _, e := range m.entries {
		if filters.Gate != "" && e.Gate != filters.Gate {
			continue
		}
		if filters.Direction != "" && e.Direction != filters.Direction {
			continue
		}
		result = append(result, e)
	}
	return result, nil
}

// newTestWorkflowService wires a WorkflowService over fresh mocks.
func newTestWorkflowService() (*WorkflowServiceImpl, *mockGraphStore, *mockCaseStore, *mockDispatcher, *mockOwnership) {
	graphStore := newMockGraphStore()
	caseStore := newMockCaseStore()
	dispatcher := &mockDispatcher{}
	ownership := newMockOwnership()
	svc := NewWorkflowService(
		graphStore,
		stateRepoView{graphStore},
		transitionRepoView{graphStore},
		caseStore,
		dispatcher,
		ownership,
	)
	return svc, graphStore, caseStore, dispatcher, ownership
}
