// Package scheduler runs background jobs. Jobs are owned by the composition
// root: main constructs them, starts them after the server is up, and stops
// them during shutdown. Nothing here runs as an import side effect.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jalonhq/jalon/internal/domain/notification"
	"github.com/jalonhq/jalon/internal/ports"
)

// Reminder periodically scans for tasks approaching their due date and
// notifies their assignees. Delivery follows the same policy as workflow
// notifications: failures are logged, never escalated.
type Reminder struct {
	tasks     ports.TaskRepository
	notifier  ports.Notifier
	logger    *slog.Logger
	interval  time.Duration
	lookahead time.Duration
	now       func() time.Time

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewReminder creates a Reminder job. interval is the scan period and
// lookahead is how far ahead of the due date a task starts triggering
// reminders.
func NewReminder(tasks ports.TaskRepository, notifier ports.Notifier, logger *slog.Logger,
	interval, lookahead time.Duration) *Reminder {
	return &Reminder{
		tasks:     tasks,
		notifier:  notifier,
		logger:    logger,
		interval:  interval,
		lookahead: lookahead,
		now:       time.Now,
	}
}

// Start launches the scan loop. It returns immediately; the loop runs until
// Stop is called. Calling Start twice without Stop is an error.
func (r *Reminder) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cancel != nil {
		return fmt.Errorf("reminder job already started")
	}

	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.done = make(chan struct{})

	go r.loop(ctx)
	return nil
}

// Stop halts the scan loop and waits for an in-flight scan to finish.
func (r *Reminder) Stop() {
	r.mu.Lock()
	cancel, done := r.cancel, r.done
	r.cancel = nil
	r.done = nil
	r.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (r *Reminder) loop(ctx context.Context) {
	defer close(r.done)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.scan(ctx)
		}
	}
}

// scan runs one reminder round.
func (r *Reminder) scan(ctx context.Context) {
	deadline := r.now().UTC().Add(r.lookahead)

	due, err := r.tasks.ListDueBefore(ctx, deadline)
	if err != nil {
		r.logger.ErrorContext(ctx, "reminder scan failed", slog.Any("error", err))
		return
	}

	for _, t := range due {
		if t.AssignedTo == "" {
			continue
		}
		n := notification.Notification{
			UserID:    t.AssignedTo,
			Title:     "Échéance proche",
			Message:   fmt.Sprintf("La tâche %q arrive à échéance.", t.Title),
			ActionURL: fmt.Sprintf("/projects/%s/tasks/%s", t.ProjectID, t.ID),
		}
		if err := r.notifier.Notify(ctx, n); err != nil {
			r.logger.WarnContext(ctx, "reminder notification failed",
				slog.String("task_id", t.ID),
				slog.String("user_id", t.AssignedTo),
				slog.Any("error", err),
			)
		}
	}
}
