// Package app contains the application layer - service implementations
// behind the primary ports.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/example/caseflow/internal/core/workflow"
	"github.com/example/caseflow/internal/ctxutil"
	"github.com/example/caseflow/internal/ports/primary"
	"github.com/example/caseflow/internal/ports/secondary"
)

// WorkflowServiceImpl implements the WorkflowService interface: template
// resolution with auto-provisioning, and the transition-execution protocol.
type WorkflowServiceImpl struct {
	templateRepo   secondary.TemplateRepository
	stateRepo      secondary.StateRepository
	transitionRepo secondary.TransitionRepository
	caseRepo       secondary.CaseRepository
	notifier       secondary.NotificationDispatcher
	ownership      secondary.CaseOwnership
}

// NewWorkflowService creates a new WorkflowService with injected dependencies.
func NewWorkflowService(
	templateRepo secondary.TemplateRepository,
	stateRepo secondary.StateRepository,
	transitionRepo secondary.TransitionRepository,
	caseRepo secondary.CaseRepository,
	notifier secondary.NotificationDispatcher,
	ownership secondary.CaseOwnership,
) *WorkflowServiceImpl {
	return &WorkflowServiceImpl{
		templateRepo:   templateRepo,
		stateRepo:      stateRepo,
		transitionRepo: transitionRepo,
		caseRepo:       caseRepo,
		notifier:       notifier,
		ownership:      ownership,
	}
}

// GetDefaultTemplate returns the default template with its graph,
// provisioning the canonical one on first use.
func (s *WorkflowServiceImpl) GetDefaultTemplate(ctx context.Context) (*primary.TemplateGraph, error) {
	tmpl, err := s.resolveDefault(ctx)
	if err != nil {
		return nil, err
	}
	return s.loadGraphViews(ctx, tmpl)
}

// GetTemplate returns a template with its full graph.
func (s *WorkflowServiceImpl) GetTemplate(ctx context.Context, templateID string) (*primary.TemplateGraph, error) {
	tmpl, err := s.templateRepo.GetByID(ctx, templateID)
	if err != nil {
		if errors.Is(err, secondary.ErrNotFound) {
			return nil, &workflow.InvalidReferenceError{Kind: "template", ID: templateID}
		}
		return nil, err
	}
	return s.loadGraphViews(ctx, tmpl)
}

// ListTemplates lists all templates without their graphs.
func (s *WorkflowServiceImpl) ListTemplates(ctx context.Context) ([]*primary.Template, error) {
	records, err := s.templateRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	templates := make([]*primary.Template, len(records))
	for i, r := range records {
		templates[i] = recordToTemplate(r)
	}
	return templates, nil
}

// ExecuteTransition runs the transition-execution protocol: re-validate
// against the current graph, atomically record and apply, then fire
// side-effects best-effort.
func (s *WorkflowServiceImpl) ExecuteTransition(ctx context.Context, req primary.ExecuteTransitionRequest) (*primary.AuditEntry, error) {
	actorID := ctxutil.ActorFromContext(ctx)
	if actorID == "" {
		return nil, workflow.ErrActorRequired
	}

	if _, err := s.caseRepo.GetByID(ctx, req.CaseID); err != nil {
		if errors.Is(err, secondary.ErrNotFound) {
			return nil, fmt.Errorf("case %s not found", req.CaseID)
		}
		return nil, fmt.Errorf("failed to load case: %w", err)
	}

	// Always validate against the graph as it is now, never against
	// whatever the caller's UI loaded earlier. An edit that removed the
	// edge in the meantime must fail this submission.
	graph, err := s.loadDefaultGraph(ctx)
	if err != nil {
		return nil, err
	}
	if err := graph.ValidateTransition(workflow.StateType(req.FromStatus), workflow.StateType(req.ToStatus)); err != nil {
		return nil, err
	}

	record := &secondary.AuditRecord{
		ID:         uuid.NewString(),
		CaseID:     req.CaseID,
		FromStatus: req.FromStatus,
		ToStatus:   req.ToStatus,
		Notes:      req.Notes,
		ActorID:    actorID,
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
	}

	if err := s.caseRepo.ExecuteTransition(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to execute transition: %w", err)
	}

	// Side-effects are best effort and non-transactional: the audit record
	// and status update above are committed whatever happens here.
	s.applySideEffects(ctx, graph, req.CaseID, workflow.StateType(req.ToStatus))

	return recordToAuditEntry(record), nil
}

// applySideEffects dispatches the notification and reassignment attached to
// the target state. Failures are logged, never surfaced.
func (s *WorkflowServiceImpl) applySideEffects(ctx context.Context, graph *workflow.Graph, caseID string, to workflow.StateType) {
	targets := graph.StatesByType(to)
	if len(targets) == 0 {
		return
	}
	// With duplicate tags the first matching state wins; the canonical
	// template uses each tag once.
	target := targets[0]

	if target.SideEffects.Notify {
		err := s.notifier.Dispatch(ctx, secondary.Notification{
			CaseID:       caseID,
			TemplateName: target.SideEffects.NotificationTemplate,
			Recipient:    target.SideEffects.Assignee,
		})
		if err != nil {
			log.Printf("workflow: notification dispatch failed for case %s: %v", caseID, err)
		}
	}

	if target.SideEffects.Assignee != "" {
		if err := s.ownership.Reassign(ctx, caseID, target.SideEffects.Assignee); err != nil {
			log.Printf("workflow: reassignment failed for case %s: %v", caseID, err)
		}
	}
}

// resolveDefault returns the default template record, auto-provisioning the
// canonical graph if none exists. Idempotent under races: the store allows
// at most one default template, and a provisioner that loses simply
// re-reads the winner.
func (s *WorkflowServiceImpl) resolveDefault(ctx context.Context) (*secondary.TemplateRecord, error) {
	tmpl, err := s.templateRepo.GetDefault(ctx)
	if err == nil {
		return tmpl, nil
	}
	if !errors.Is(err, secondary.ErrNotFound) {
		return nil, fmt.Errorf("failed to resolve default template: %w", err)
	}

	tmpl, err = s.provisionDefault(ctx)
	if errors.Is(err, secondary.ErrConflict) {
		// Another caller provisioned first; our work is discarded.
		tmpl, err = s.templateRepo.GetDefault(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to re-read default template after lost provisioning race: %w", err)
		}
		return tmpl, nil
	}
	if err != nil {
		return nil, err
	}
	return tmpl, nil
}

// provisionDefault builds and persists the canonical linear workflow.
func (s *WorkflowServiceImpl) provisionDefault(ctx context.Context) (*secondary.TemplateRecord, error) {
	tmpl := &secondary.TemplateRecord{
		ID:          uuid.NewString(),
		Name:        workflow.DefaultTemplateName,
		Description: "Auto-provisioned linear workflow",
		IsDefault:   true,
	}

	states := workflow.CanonicalStates()
	for i := range states {
		states[i].ID = uuid.NewString()
		states[i].TemplateID = tmpl.ID
	}
	transitions := workflow.CanonicalTransitions(states)

	stateRecords := make([]*secondary.StateRecord, len(states))
	for i, st := range states {
		stateRecords[i] = stateToRecord(&st)
	}
	transitionRecords := make([]*secondary.TransitionRecord, len(transitions))
	for i, tr := range transitions {
		transitionRecords[i] = &secondary.TransitionRecord{
			ID:          uuid.NewString(),
			TemplateID:  tr.TemplateID,
			FromStateID: tr.FromStateID,
			ToStateID:   tr.ToStateID,
			Label:       tr.Label,
		}
	}

	if err := s.templateRepo.ProvisionDefault(ctx, tmpl, stateRecords, transitionRecords); err != nil {
		if errors.Is(err, secondary.ErrConflict) {
			return nil, secondary.ErrConflict
		}
		return nil, fmt.Errorf("failed to provision default template: %w", err)
	}

	return tmpl, nil
}

// loadDefaultGraph loads the current default template graph as core types,
// provisioning first if needed.
func (s *WorkflowServiceImpl) loadDefaultGraph(ctx context.Context) (*workflow.Graph, error) {
	tmpl, err := s.resolveDefault(ctx)
	if err != nil {
		return nil, err
	}
	return s.loadGraph(ctx, tmpl)
}

// loadGraph loads a template's states and transitions as core types.
func (s *WorkflowServiceImpl) loadGraph(ctx context.Context, tmpl *secondary.TemplateRecord) (*workflow.Graph, error) {
	states, err := s.stateRepo.ListByTemplate(ctx, tmpl.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load states: %w", err)
	}
	transitions, err := s.transitionRepo.ListByTemplate(ctx, tmpl.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transitions: %w", err)
	}

	graph := &workflow.Graph{
		Template: workflow.Template{
			ID:          tmpl.ID,
			Name:        tmpl.Name,
			Description: tmpl.Description,
			IsDefault:   tmpl.IsDefault,
			CreatedAt:   tmpl.CreatedAt,
		},
	}
	for _, st := range states {
		graph.States = append(graph.States, *recordToCoreState(st))
	}
	for _, tr := range transitions {
		graph.Transitions = append(graph.Transitions, workflow.Transition{
			ID:          tr.ID,
			TemplateID:  tr.TemplateID,
			FromStateID: tr.FromStateID,
			ToStateID:   tr.ToStateID,
			Label:       tr.Label,
		})
	}
	return graph, nil
}

// loadGraphViews loads a template graph in the primary-port view shape.
func (s *WorkflowServiceImpl) loadGraphViews(ctx context.Context, tmpl *secondary.TemplateRecord) (*primary.TemplateGraph, error) {
	states, err := s.stateRepo.ListByTemplate(ctx, tmpl.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load states: %w", err)
	}
	transitions, err := s.transitionRepo.ListByTemplate(ctx, tmpl.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transitions: %w", err)
	}

	view := &primary.TemplateGraph{Template: *recordToTemplate(tmpl)}
	for _, st := range states {
		view.States = append(view.States, recordToState(st))
	}
	for _, tr := range transitions {
		view.Transitions = append(view.Transitions, recordToTransition(tr))
	}
	return view, nil
}

func recordToTemplate(r *secondary.TemplateRecord) *primary.Template {
	return &primary.Template{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		IsDefault:   r.IsDefault,
		CreatedAt:   r.CreatedAt,
	}
}

func recordToState(r *secondary.StateRecord) *primary.State {
	return &primary.State{
		ID:                   r.ID,
		TemplateID:           r.TemplateID,
		Label:                r.Label,
		StateType:            r.StateType,
		X:                    r.PosX,
		Y:                    r.PosY,
		Assignee:             r.Assignee,
		Notify:               r.Notify,
		NotificationTemplate: r.NotificationTemplate,
	}
}

func recordToTransition(r *secondary.TransitionRecord) *primary.Transition {
	return &primary.Transition{
		ID:          r.ID,
		TemplateID:  r.TemplateID,
		FromStateID: r.FromStateID,
		ToStateID:   r.ToStateID,
		Label:       r.Label,
	}
}

func recordToCoreState(r *secondary.StateRecord) *workflow.State {
	return &workflow.State{
		ID:         r.ID,
		TemplateID: r.TemplateID,
		Label:      r.Label,
		Type:       workflow.StateType(r.StateType),
		Position:   workflow.Position{X: r.PosX, Y: r.PosY},
		SideEffects: workflow.SideEffects{
			Assignee:             r.Assignee,
			Notify:               r.Notify,
			NotificationTemplate: r.NotificationTemplate,
		},
	}
}

func stateToRecord(s *workflow.State) *secondary.StateRecord {
	return &secondary.StateRecord{
		ID:                   s.ID,
		TemplateID:           s.TemplateID,
		Label:                s.Label,
		StateType:            string(s.Type),
		PosX:                 s.Position.X,
		PosY:                 s.Position.Y,
		Assignee:             s.SideEffects.Assignee,
		Notify:               s.SideEffects.Notify,
		NotificationTemplate: s.SideEffects.NotificationTemplate,
	}
}

func recordToAuditEntry(r *secondary.AuditRecord) *primary.AuditEntry {
	return &primary.AuditEntry{
		ID:         r.ID,
		CaseID:     r.CaseID,
		FromStatus: r.FromStatus,
		ToStatus:   r.ToStatus,
		Notes:      r.Notes,
		ActorID:    r.ActorID,
		CreatedAt:  r.CreatedAt,
	}
}
