// Package wire provides dependency injection for the caseflow application.
// It creates singleton services with lazy initialization.
package wire

import (
	"log"
	"sync"

	"github.com/example/caseflow/internal/adapters/dispatch"
	"github.com/example/caseflow/internal/adapters/sqlite"
	"github.com/example/caseflow/internal/app"
	"github.com/example/caseflow/internal/db"
	"github.com/example/caseflow/internal/ports/primary"
)

const notificationQueueSize = 64

var (
	workflowService primary.WorkflowService
	editorService   primary.EditorService
	caseService     primary.CaseService
	accessService   primary.AccessService
	dispatcher      *dispatch.Dispatcher
	once            sync.Once
)

// WorkflowService returns the singleton WorkflowService instance.
func WorkflowService() primary.WorkflowService {
	once.Do(initServices)
	return workflowService
}

// EditorService returns the singleton EditorService instance.
func EditorService() primary.EditorService {
	once.Do(initServices)
	return editorService
}

// CaseService returns the singleton CaseService instance.
func CaseService() primary.CaseService {
	once.Do(initServices)
	return caseService
}

// AccessService returns the singleton AccessService instance.
func AccessService() primary.AccessService {
	once.Do(initServices)
	return accessService
}

// Shutdown drains the notification queue. Call on process exit so queued
// side-effects are not lost.
func Shutdown() {
	if dispatcher != nil {
		dispatcher.Close()
	}
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	database, err := db.GetDB()
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// Repository adapters (secondary ports) with injected DB
	templateRepo := sqlite.NewTemplateRepository(database)
	stateRepo := sqlite.NewStateRepository(database)
	transitionRepo := sqlite.NewTransitionRepository(database)
	caseRepo := sqlite.NewCaseRepository(database)
	auditRepo := sqlite.NewAuditRepository(database)
	accessRepo := sqlite.NewAccessRepository(database)

	// Side-effect collaborators
	dispatcher = dispatch.NewDispatcher(dispatch.LogSender{}, notificationQueueSize)
	ownership := sqlite.NewOwnershipAdapter(database)

	// Services (primary ports implementation)
	workflowService = app.NewWorkflowService(templateRepo, stateRepo, transitionRepo, caseRepo, dispatcher, ownership)
	editorService = app.NewEditorService(templateRepo, stateRepo, transitionRepo)
	caseService = app.NewCaseService(caseRepo, auditRepo, workflowService)
	accessService = app.NewAccessService(accessRepo)
}
