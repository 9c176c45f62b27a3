package secondary

import "context"

// Notification is the payload handed to the external notifier when a case
// arrives at a state with notify enabled.
type Notification struct {
	CaseID       string
	TemplateName string
	Recipient    string
}

// NotificationDispatcher defines the secondary port for outbound
// notifications. Dispatch is best-effort and must not block the caller on
// delivery: the transition executor fires it after its transaction commits
// and ignores delivery failures.
type NotificationDispatcher interface {
	// Dispatch enqueues a notification for asynchronous delivery.
	Dispatch(ctx context.Context, n Notification) error
}

// CaseOwnership defines the secondary port for case reassignment, keyed by
// case id and assignee.
type CaseOwnership interface {
	// Reassign hands the case to the given assignee.
	Reassign(ctx context.Context, caseID, assignee string) error
}
