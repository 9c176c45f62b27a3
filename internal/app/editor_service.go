package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/example/caseflow/internal/core/editor"
	"github.com/example/caseflow/internal/core/workflow"
	"github.com/example/caseflow/internal/ports/primary"
	"github.com/example/caseflow/internal/ports/secondary"
)

// EditorServiceImpl implements the EditorService interface: the six
// structural graph mutations behind the visual canvas. Each mutation is
// guarded for referential integrity and persisted independently; concurrent
// editors are last-write-wins at the level of individual entities.
type EditorServiceImpl struct {
	templateRepo   secondary.TemplateRepository
	stateRepo      secondary.StateRepository
	transitionRepo secondary.TransitionRepository
}

// NewEditorService creates a new EditorService with injected dependencies.
func NewEditorService(
	templateRepo secondary.TemplateRepository,
	stateRepo secondary.StateRepository,
	transitionRepo secondary.TransitionRepository,
) *EditorServiceImpl {
	return &EditorServiceImpl{
		templateRepo:   templateRepo,
		stateRepo:      stateRepo,
		transitionRepo: transitionRepo,
	}
}

// AddState adds a state to a template.
func (s *EditorServiceImpl) AddState(ctx context.Context, req primary.AddStateRequest) (*primary.State, error) {
	exists, err := s.templateRepo.Exists(ctx, req.TemplateID)
	if err != nil {
		return nil, fmt.Errorf("failed to validate template: %w", err)
	}

	guard := editor.CanAddState(editor.AddStateContext{
		TemplateID:     req.TemplateID,
		TemplateExists: exists,
		StateType:      req.StateType,
	})
	if err := guard.Error(); err != nil {
		return nil, err
	}

	record := &secondary.StateRecord{
		ID:                   uuid.NewString(),
		TemplateID:           req.TemplateID,
		Label:                req.Label,
		StateType:            req.StateType,
		PosX:                 req.X,
		PosY:                 req.Y,
		Assignee:             req.Assignee,
		Notify:               req.Notify,
		NotificationTemplate: req.NotificationTemplate,
	}
	if record.Label == "" {
		record.Label = req.StateType
	}

	if err := s.stateRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to add state: %w", err)
	}

	return recordToState(record), nil
}

// RenameState updates a state's display label only. The state type and all
// transitions are untouched.
func (s *EditorServiceImpl) RenameState(ctx context.Context, stateID, newLabel string) error {
	if err := s.guardState(ctx, stateID); err != nil {
		return err
	}

	if err := s.stateRepo.UpdateLabel(ctx, stateID, newLabel); err != nil {
		if errors.Is(err, secondary.ErrNotFound) {
			return &workflow.InvalidReferenceError{Kind: "state", ID: stateID}
		}
		return fmt.Errorf("failed to rename state: %w", err)
	}
	return nil
}

// DeleteState deletes a state after cascading over every transition that
// references it as source or target.
func (s *EditorServiceImpl) DeleteState(ctx context.Context, stateID string) error {
	if err := s.guardState(ctx, stateID); err != nil {
		return err
	}

	if err := s.stateRepo.DeleteCascade(ctx, stateID); err != nil {
		if errors.Is(err, secondary.ErrNotFound) {
			return &workflow.InvalidReferenceError{Kind: "state", ID: stateID}
		}
		return fmt.Errorf("failed to delete state: %w", err)
	}
	return nil
}

// RepositionState updates a state's cosmetic canvas position. No further
// validation: coordinates are opaque to the engine.
func (s *EditorServiceImpl) RepositionState(ctx context.Context, stateID string, x, y float64) error {
	if err := s.guardState(ctx, stateID); err != nil {
		return err
	}

	if err := s.stateRepo.UpdatePosition(ctx, stateID, x, y); err != nil {
		if errors.Is(err, secondary.ErrNotFound) {
			return &workflow.InvalidReferenceError{Kind: "state", ID: stateID}
		}
		return fmt.Errorf("failed to reposition state: %w", err)
	}
	return nil
}

// AddTransition adds a directed edge between two states of the template.
func (s *EditorServiceImpl) AddTransition(ctx context.Context, req primary.AddTransitionRequest) (*primary.Transition, error) {
	exists, err := s.templateRepo.Exists(ctx, req.TemplateID)
	if err != nil {
		return nil, fmt.Errorf("failed to validate template: %w", err)
	}

	fromState, err := s.lookupState(ctx, req.FromStateID)
	if err != nil {
		return nil, err
	}
	toState, err := s.lookupState(ctx, req.ToStateID)
	if err != nil {
		return nil, err
	}

	guard := editor.CanAddTransition(editor.AddTransitionContext{
		TemplateID:     req.TemplateID,
		TemplateExists: exists,
		FromStateID:    req.FromStateID,
		FromState:      fromState,
		ToStateID:      req.ToStateID,
		ToState:        toState,
	})
	if err := guard.Error(); err != nil {
		return nil, err
	}

	record := &secondary.TransitionRecord{
		ID:          uuid.NewString(),
		TemplateID:  req.TemplateID,
		FromStateID: req.FromStateID,
		ToStateID:   req.ToStateID,
		Label:       req.Label,
	}

	if err := s.transitionRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to add transition: %w", err)
	}

	return recordToTransition(record), nil
}

// DeleteTransition removes an edge. Endpoint states are not touched.
func (s *EditorServiceImpl) DeleteTransition(ctx context.Context, transitionID string) error {
	_, err := s.transitionRepo.GetByID(ctx, transitionID)
	exists := err == nil
	if err != nil && !errors.Is(err, secondary.ErrNotFound) {
		return fmt.Errorf("failed to validate transition: %w", err)
	}

	guard := editor.CanDeleteTransition(editor.TransitionRefContext{
		TransitionID: transitionID,
		Exists:       exists,
	})
	if err := guard.Error(); err != nil {
		return err
	}

	if err := s.transitionRepo.Delete(ctx, transitionID); err != nil {
		if errors.Is(err, secondary.ErrNotFound) {
			return &workflow.InvalidReferenceError{Kind: "transition", ID: transitionID}
		}
		return fmt.Errorf("failed to delete transition: %w", err)
	}
	return nil
}

// guardState rejects mutations on a state that does not exist.
func (s *EditorServiceImpl) guardState(ctx context.Context, stateID string) error {
	_, err := s.stateRepo.GetByID(ctx, stateID)
	exists := err == nil
	if err != nil && !errors.Is(err, secondary.ErrNotFound) {
		return fmt.Errorf("failed to validate state: %w", err)
	}

	return editor.CanMutateState(editor.StateRefContext{
		StateID: stateID,
		Exists:  exists,
	}).Error()
}

// lookupState loads a state as a core type, or nil when absent.
func (s *EditorServiceImpl) lookupState(ctx context.Context, stateID string) (*workflow.State, error) {
	record, err := s.stateRepo.GetByID(ctx, stateID)
	if errors.Is(err, secondary.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load state: %w", err)
	}
	return recordToCoreState(record), nil
}
