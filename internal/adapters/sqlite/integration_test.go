package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/example/caseflow/internal/app"
	"github.com/example/caseflow/internal/core/workflow"
	"github.com/example/caseflow/internal/ctxutil"
	"github.com/example/caseflow/internal/ports/primary"
	"github.com/example/caseflow/internal/ports/secondary"
)

// noopDispatcher satisfies the notification port without delivering anything.
type noopDispatcher struct{}

func (noopDispatcher) Dispatch(ctx context.Context, n secondary.Notification) error { return nil }

type services struct {
	workflows primary.WorkflowService
	editor    primary.EditorService
	cases     primary.CaseService
}

// newServices wires the full application stack over a real database, the way
// the wire package does in production.
func newServices(database *sql.DB) services {
	templateRepo := NewTemplateRepository(database)
	stateRepo := NewStateRepository(database)
	transitionRepo := NewTransitionRepository(database)
	caseRepo := NewCaseRepository(database)
	auditRepo := NewAuditRepository(database)

	workflows := app.NewWorkflowService(
		templateRepo, stateRepo, transitionRepo, caseRepo,
		noopDispatcher{}, NewOwnershipAdapter(database),
	)
	return services{
		workflows: workflows,
		editor:    app.NewEditorService(templateRepo, stateRepo, transitionRepo),
		cases:     app.NewCaseService(caseRepo, auditRepo, workflows),
	}
}

func TestIntegration_FreshStoreProvisionsCanonicalWorkflow(t *testing.T) {
	database := setupTestDB(t)
	svcs := newServices(database)
	ctx := context.Background()

	graph, err := svcs.workflows.GetDefaultTemplate(ctx)
	if err != nil {
		t.Fatalf("GetDefaultTemplate failed: %v", err)
	}

	if len(graph.States) != 6 {
		t.Fatalf("expected 6 canonical states, got %d", len(graph.States))
	}
	if len(graph.Transitions) != 5 {
		t.Fatalf("expected 5 canonical transitions, got %d", len(graph.Transitions))
	}
	for i, want := range workflow.CanonicalOrder {
		if graph.States[i].StateType != string(want) {
			t.Errorf("state %d: expected %s, got %s", i, want, graph.States[i].StateType)
		}
	}

	// A second resolve reuses the same template.
	again, err := svcs.workflows.GetDefaultTemplate(ctx)
	if err != nil {
		t.Fatalf("second GetDefaultTemplate failed: %v", err)
	}
	if again.Template.ID != graph.Template.ID {
		t.Error("repeat resolve provisioned a second template")
	}
	if n := countRows(t, database, "workflow_templates", ""); n != 1 {
		t.Errorf("expected 1 template, got %d", n)
	}
}

func TestIntegration_CaseLifecycle(t *testing.T) {
	database := setupTestDB(t)
	svcs := newServices(database)
	ctx := ctxutil.WithActorID(context.Background(), "mara")

	created, err := svcs.cases.CreateCase(ctx, primary.CreateCaseRequest{
		Title:       "Scratched housing on batch 42",
		Description: "Deep scratches on 14 units",
	})
	if err != nil {
		t.Fatalf("CreateCase failed: %v", err)
	}
	if created.CurrentStatus != "open" {
		t.Fatalf("expected new case open, got %q", created.CurrentStatus)
	}

	entry, err := svcs.workflows.ExecuteTransition(ctx, primary.ExecuteTransitionRequest{
		CaseID:     created.ID,
		FromStatus: "open",
		ToStatus:   "analysis",
		Notes:      "assigned to incoming inspection",
	})
	if err != nil {
		t.Fatalf("ExecuteTransition failed: %v", err)
	}
	if entry.ActorID != "mara" {
		t.Errorf("expected actor mara on audit entry, got %q", entry.ActorID)
	}

	got, err := svcs.cases.GetCase(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetCase failed: %v", err)
	}
	if got.CurrentStatus != "analysis" {
		t.Errorf("expected status analysis, got %q", got.CurrentStatus)
	}

	history, err := svcs.cases.GetHistory(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetHistory failed: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected 1 history entry, got %d", len(history))
	}
	if history[0].Notes != "assigned to incoming inspection" {
		t.Errorf("notes not preserved in history: %q", history[0].Notes)
	}
}

func TestIntegration_SkippingStagesIsRejected(t *testing.T) {
	database := setupTestDB(t)
	svcs := newServices(database)
	ctx := ctxutil.WithActorID(context.Background(), "mara")

	created, err := svcs.cases.CreateCase(ctx, primary.CreateCaseRequest{Title: "shortcut attempt"})
	if err != nil {
		t.Fatalf("CreateCase failed: %v", err)
	}

	_, err = svcs.workflows.ExecuteTransition(ctx, primary.ExecuteTransitionRequest{
		CaseID:     created.ID,
		FromStatus: "open",
		ToStatus:   "closed",
	})

	var illegalErr *workflow.IllegalTransitionError
	if !errors.As(err, &illegalErr) {
		t.Fatalf("expected IllegalTransitionError, got %v", err)
	}
	if n := countRows(t, database, "case_transitions", ""); n != 0 {
		t.Errorf("expected no audit rows after rejection, got %d", n)
	}
}

func TestIntegration_RemovedEdgeInvalidatesInFlightMove(t *testing.T) {
	database := setupTestDB(t)
	svcs := newServices(database)
	ctx := ctxutil.WithActorID(context.Background(), "mara")

	created, err := svcs.cases.CreateCase(ctx, primary.CreateCaseRequest{Title: "racing an editor"})
	if err != nil {
		t.Fatalf("CreateCase failed: %v", err)
	}
	if _, err := svcs.workflows.ExecuteTransition(ctx, primary.ExecuteTransitionRequest{
		CaseID: created.ID, FromStatus: "open", ToStatus: "analysis",
	}); err != nil {
		t.Fatalf("move to analysis failed: %v", err)
	}

	// An editor removes the analysis -> resolution edge while the executor's
	// UI still shows it.
	graph, err := svcs.workflows.GetDefaultTemplate(ctx)
	if err != nil {
		t.Fatalf("GetDefaultTemplate failed: %v", err)
	}
	var removed bool
	for _, tr := range graph.Transitions {
		var fromType, toType string
		for _, st := range graph.States {
			if st.ID == tr.FromStateID {
				fromType = st.StateType
			}
			if st.ID == tr.ToStateID {
				toType = st.StateType
			}
		}
		if fromType == "analysis" && toType == "resolution" {
			if err := svcs.editor.DeleteTransition(ctx, tr.ID); err != nil {
				t.Fatalf("DeleteTransition failed: %v", err)
			}
			removed = true
		}
	}
	if !removed {
		t.Fatal("canonical graph is missing the analysis -> resolution edge")
	}

	_, err = svcs.workflows.ExecuteTransition(ctx, primary.ExecuteTransitionRequest{
		CaseID:     created.ID,
		FromStatus: "analysis",
		ToStatus:   "resolution",
	})
	var illegalErr *workflow.IllegalTransitionError
	if !errors.As(err, &illegalErr) {
		t.Fatalf("expected IllegalTransitionError after edge removal, got %v", err)
	}
}

func TestIntegration_DeletedStateSeversEdges(t *testing.T) {
	database := setupTestDB(t)
	svcs := newServices(database)
	ctx := ctxutil.WithActorID(context.Background(), "mara")

	created, err := svcs.cases.CreateCase(ctx, primary.CreateCaseRequest{Title: "state removal"})
	if err != nil {
		t.Fatalf("CreateCase failed: %v", err)
	}
	if _, err := svcs.workflows.ExecuteTransition(ctx, primary.ExecuteTransitionRequest{
		CaseID: created.ID, FromStatus: "open", ToStatus: "analysis",
	}); err != nil {
		t.Fatalf("move to analysis failed: %v", err)
	}

	graph, err := svcs.workflows.GetDefaultTemplate(ctx)
	if err != nil {
		t.Fatalf("GetDefaultTemplate failed: %v", err)
	}
	for _, st := range graph.States {
		if st.StateType == "resolution" {
			if err := svcs.editor.DeleteState(ctx, st.ID); err != nil {
				t.Fatalf("DeleteState failed: %v", err)
			}
		}
	}

	// The cascade removed analysis's outgoing edge along with the state, so
	// the move fails as illegal. Only a vanished from-status reads as
	// unknown; the case itself still sits on a live state.
	_, err = svcs.workflows.ExecuteTransition(ctx, primary.ExecuteTransitionRequest{
		CaseID:     created.ID,
		FromStatus: "analysis",
		ToStatus:   "resolution",
	})
	var illegalErr *workflow.IllegalTransitionError
	if !errors.As(err, &illegalErr) {
		t.Fatalf("expected IllegalTransitionError after state deletion, got %v", err)
	}

	// History written before the edit is untouched.
	history, err := svcs.cases.GetHistory(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetHistory failed: %v", err)
	}
	if len(history) != 1 {
		t.Errorf("expected 1 preserved history entry, got %d", len(history))
	}
}

func TestIntegration_CaseStrandedOnDeletedState(t *testing.T) {
	database := setupTestDB(t)
	svcs := newServices(database)
	ctx := ctxutil.WithActorID(context.Background(), "mara")

	created, err := svcs.cases.CreateCase(ctx, primary.CreateCaseRequest{Title: "stranded"})
	if err != nil {
		t.Fatalf("CreateCase failed: %v", err)
	}
	if _, err := svcs.workflows.ExecuteTransition(ctx, primary.ExecuteTransitionRequest{
		CaseID: created.ID, FromStatus: "open", ToStatus: "analysis",
	}); err != nil {
		t.Fatalf("move to analysis failed: %v", err)
	}

	// Delete the state the case currently sits on. Its status tag now
	// exists nowhere in the graph.
	graph, err := svcs.workflows.GetDefaultTemplate(ctx)
	if err != nil {
		t.Fatalf("GetDefaultTemplate failed: %v", err)
	}
	for _, st := range graph.States {
		if st.StateType == "analysis" {
			if err := svcs.editor.DeleteState(ctx, st.ID); err != nil {
				t.Fatalf("DeleteState failed: %v", err)
			}
		}
	}

	// The case is stuck until an administrator repairs the graph; no move
	// out of the vanished status is accepted.
	_, err = svcs.workflows.ExecuteTransition(ctx, primary.ExecuteTransitionRequest{
		CaseID:     created.ID,
		FromStatus: "analysis",
		ToStatus:   "resolution",
	})
	var unknownErr *workflow.UnknownStateError
	if !errors.As(err, &unknownErr) {
		t.Fatalf("expected UnknownStateError for vanished from-status, got %v", err)
	}

	got, err := svcs.cases.GetCase(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetCase failed: %v", err)
	}
	if got.CurrentStatus != "analysis" {
		t.Errorf("stranded case status changed: %q", got.CurrentStatus)
	}
}
