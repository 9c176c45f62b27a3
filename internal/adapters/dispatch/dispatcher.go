// Package dispatch contains the asynchronous, best-effort notification
// dispatcher. Delivery runs on a worker goroutine behind a bounded queue so
// a slow or failing notifier can never stall or roll back a committed
// status transition.
package dispatch

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/example/caseflow/internal/ports/secondary"
)

// Sender delivers one notification to the external notifier.
type Sender interface {
	Send(ctx context.Context, n secondary.Notification) error
}

// LogSender is the default Sender: it records the notification in the
// process log. Real deployments plug in a mail or webhook sender here.
type LogSender struct{}

// Send logs the notification.
func (LogSender) Send(_ context.Context, n secondary.Notification) error {
	log.Printf("notify: case=%s template=%q recipient=%s", n.CaseID, n.TemplateName, n.Recipient)
	return nil
}

// Dispatcher implements secondary.NotificationDispatcher with a bounded
// in-process queue and retrying delivery.
type Dispatcher struct {
	sender     Sender
	queue      chan secondary.Notification
	maxRetries uint64

	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewDispatcher creates a Dispatcher and starts its worker. buffer bounds
// the number of undelivered notifications held in memory.
func NewDispatcher(sender Sender, buffer int) *Dispatcher {
	d := &Dispatcher{
		sender:     sender,
		queue:      make(chan secondary.Notification, buffer),
		maxRetries: 4,
	}
	d.wg.Add(1)
	go d.run()
	return d
}

// Dispatch enqueues a notification without blocking. When the queue is full
// the notification is dropped and logged: losing a notification is
// acceptable, delaying a transition is not.
func (d *Dispatcher) Dispatch(_ context.Context, n secondary.Notification) error {
	select {
	case d.queue <- n:
	default:
		log.Printf("notify: queue full, dropping notification for case %s", n.CaseID)
	}
	return nil
}

// Close stops accepting notifications and waits for the queue to drain.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		close(d.queue)
	})
	d.wg.Wait()
}

func (d *Dispatcher) run() {
	defer d.wg.Done()
	for n := range d.queue {
		d.deliver(n)
	}
}

// deliver retries transient sender failures with exponential backoff and
// logs the final error. Nothing is surfaced to the transition caller.
func (d *Dispatcher) deliver(n secondary.Notification) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 50 * time.Millisecond
	bo.MaxElapsedTime = 10 * time.Second

	err := backoff.Retry(func() error {
		return d.sender.Send(context.Background(), n)
	}, backoff.WithMaxRetries(bo, d.maxRetries))
	if err != nil {
		log.Printf("notify: delivery failed for case %s: %v", n.CaseID, err)
	}
}
