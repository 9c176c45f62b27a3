package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/example/caseflow/internal/ports/secondary"
)

func TestTemplateRepository_CreateAndGet(t *testing.T) {
	database := setupTestDB(t)
	repo := NewTemplateRepository(database)
	ctx := context.Background()

	tmpl := &secondary.TemplateRecord{
		ID:          "WFT-1",
		Name:        "Supplier returns",
		Description: "Workflow for supplier non-conformances",
	}
	if err := repo.Create(ctx, tmpl); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := repo.GetByID(ctx, "WFT-1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Name != "Supplier returns" || got.Description != "Workflow for supplier non-conformances" {
		t.Errorf("unexpected template: %+v", got)
	}
	if got.IsDefault {
		t.Error("template should not be default")
	}
	if got.CreatedAt == "" {
		t.Error("expected created_at to be populated")
	}
}

func TestTemplateRepository_GetByID_NotFound(t *testing.T) {
	database := setupTestDB(t)
	repo := NewTemplateRepository(database)

	_, err := repo.GetByID(context.Background(), "WFT-404")
	if !errors.Is(err, secondary.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTemplateRepository_GetDefault_NotFound(t *testing.T) {
	database := setupTestDB(t)
	repo := NewTemplateRepository(database)
	seedTemplate(t, database, "WFT-1", "not the default", false)

	_, err := repo.GetDefault(context.Background())
	if !errors.Is(err, secondary.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTemplateRepository_Create_SecondDefaultConflicts(t *testing.T) {
	database := setupTestDB(t)
	repo := NewTemplateRepository(database)
	ctx := context.Background()

	first := &secondary.TemplateRecord{ID: "WFT-1", Name: "first", IsDefault: true}
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("creating first default failed: %v", err)
	}

	second := &secondary.TemplateRecord{ID: "WFT-2", Name: "second", IsDefault: true}
	err := repo.Create(ctx, second)
	if !errors.Is(err, secondary.ErrConflict) {
		t.Fatalf("expected ErrConflict for second default, got %v", err)
	}

	// Non-default templates are unlimited.
	third := &secondary.TemplateRecord{ID: "WFT-3", Name: "third"}
	if err := repo.Create(ctx, third); err != nil {
		t.Fatalf("creating non-default failed: %v", err)
	}
}

func TestTemplateRepository_ProvisionDefault(t *testing.T) {
	database := setupTestDB(t)
	repo := NewTemplateRepository(database)
	ctx := context.Background()

	tmpl := &secondary.TemplateRecord{ID: "WFT-1", Name: "standard"}
	states := []*secondary.StateRecord{
		{ID: "ST-1", TemplateID: "WFT-1", Label: "Open", StateType: "open"},
		{ID: "ST-2", TemplateID: "WFT-1", Label: "Analysis", StateType: "analysis"},
	}
	transitions := []*secondary.TransitionRecord{
		{ID: "TR-1", TemplateID: "WFT-1", FromStateID: "ST-1", ToStateID: "ST-2"},
	}

	if err := repo.ProvisionDefault(ctx, tmpl, states, transitions); err != nil {
		t.Fatalf("ProvisionDefault failed: %v", err)
	}

	got, err := repo.GetDefault(ctx)
	if err != nil {
		t.Fatalf("GetDefault failed: %v", err)
	}
	if got.ID != "WFT-1" {
		t.Errorf("expected WFT-1 as default, got %s", got.ID)
	}
	if n := countRows(t, database, "workflow_states", "template_id = ?", "WFT-1"); n != 2 {
		t.Errorf("expected 2 states, got %d", n)
	}
	if n := countRows(t, database, "workflow_transitions", "template_id = ?", "WFT-1"); n != 1 {
		t.Errorf("expected 1 transition, got %d", n)
	}
}

func TestTemplateRepository_ProvisionDefault_LoserLeavesNothing(t *testing.T) {
	database := setupTestDB(t)
	repo := NewTemplateRepository(database)
	ctx := context.Background()

	winner := &secondary.TemplateRecord{ID: "WFT-1", Name: "winner"}
	winnerStates := []*secondary.StateRecord{
		{ID: "ST-1", TemplateID: "WFT-1", Label: "Open", StateType: "open"},
	}
	if err := repo.ProvisionDefault(ctx, winner, winnerStates, nil); err != nil {
		t.Fatalf("winner provisioning failed: %v", err)
	}

	loser := &secondary.TemplateRecord{ID: "WFT-2", Name: "loser"}
	loserStates := []*secondary.StateRecord{
		{ID: "ST-9", TemplateID: "WFT-2", Label: "Open", StateType: "open"},
	}
	err := repo.ProvisionDefault(ctx, loser, loserStates, nil)
	if !errors.Is(err, secondary.ErrConflict) {
		t.Fatalf("expected ErrConflict for losing provisioner, got %v", err)
	}

	// Nothing of the loser's graph survives the rollback.
	if n := countRows(t, database, "workflow_templates", "id = ?", "WFT-2"); n != 0 {
		t.Error("losing template persisted")
	}
	if n := countRows(t, database, "workflow_states", "template_id = ?", "WFT-2"); n != 0 {
		t.Error("losing states persisted")
	}
}

func TestTemplateRepository_Exists(t *testing.T) {
	database := setupTestDB(t)
	repo := NewTemplateRepository(database)
	ctx := context.Background()
	seedTemplate(t, database, "WFT-1", "standard", false)

	exists, err := repo.Exists(ctx, "WFT-1")
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if !exists {
		t.Error("expected template to exist")
	}

	exists, err = repo.Exists(ctx, "WFT-404")
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if exists {
		t.Error("expected template to not exist")
	}
}

func TestTemplateRepository_List(t *testing.T) {
	database := setupTestDB(t)
	repo := NewTemplateRepository(database)
	seedTemplate(t, database, "WFT-1", "standard", true)
	seedTemplate(t, database, "WFT-2", "returns", false)

	templates, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(templates) != 2 {
		t.Fatalf("expected 2 templates, got %d", len(templates))
	}
}
