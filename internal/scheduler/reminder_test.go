package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jalonhq/jalon/internal/domain/notification"
	"github.com/jalonhq/jalon/internal/domain/task"
)

type stubTaskRepo struct {
	due []task.Task
	err error
}

func (s *stubTaskRepo) Create(context.Context, *task.Task) error { return nil }
func (s *stubTaskRepo) FindByID(context.Context, string) (*task.Task, error) {
	return nil, errors.New("not implemented")
}
func (s *stubTaskRepo) Save(context.Context, *task.Task) error { return nil }
func (s *stubTaskRepo) CreateMany(context.Context, []task.Spec) ([]task.Task, error) {
	return nil, errors.New("not implemented")
}
func (s *stubTaskRepo) ListByStage(context.Context, string) ([]task.Task, error) {
	return nil, errors.New("not implemented")
}
func (s *stubTaskRepo) ListDueBefore(context.Context, time.Time) ([]task.Task, error) {
	return s.due, s.err
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []notification.Notification
	err  error
}

func (n *recordingNotifier) Notify(_ context.Context, msg notification.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, msg)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func dueTask(id, assignee string) task.Task {
	due := time.Now().UTC().Add(time.Hour)
	return task.Task{
		ID:         id,
		ProjectID:  "project-1",
		Title:      "Relire le dossier",
		Status:     task.StatusTodo,
		AssignedTo: assignee,
		DueDate:    &due,
	}
}

func TestReminderScanNotifiesAssignees(t *testing.T) {
	t.Parallel()

	repo := &stubTaskRepo{due: []task.Task{
		dueTask("task-1", "user-1"),
		dueTask("task-2", ""),
		dueTask("task-3", "user-2"),
	}}
	notifier := &recordingNotifier{}
	r := NewReminder(repo, notifier, testLogger(), time.Hour, 24*time.Hour)

	r.scan(context.Background())

	require.Len(t, notifier.sent, 2, "unassigned tasks are skipped")
	assert.Equal(t, "user-1", notifier.sent[0].UserID)
	assert.Equal(t, "user-2", notifier.sent[1].UserID)
}

func TestReminderScanSwallowsErrors(t *testing.T) {
	t.Parallel()

	repo := &stubTaskRepo{due: []task.Task{dueTask("task-1", "user-1")}}
	notifier := &recordingNotifier{err: errors.New("gateway down")}
	r := NewReminder(repo, notifier, testLogger(), time.Hour, 24*time.Hour)

	r.scan(context.Background())
}

func TestReminderScanRepositoryError(t *testing.T) {
	t.Parallel()

	repo := &stubTaskRepo{err: errors.New("db closed")}
	notifier := &recordingNotifier{}
	r := NewReminder(repo, notifier, testLogger(), time.Hour, 24*time.Hour)

	r.scan(context.Background())
	assert.Empty(t, notifier.sent)
}

func TestReminderStartStop(t *testing.T) {
	t.Parallel()

	repo := &stubTaskRepo{due: []task.Task{dueTask("task-1", "user-1")}}
	notifier := &recordingNotifier{}
	r := NewReminder(repo, notifier, testLogger(), 10*time.Millisecond, 24*time.Hour)

	require.NoError(t, r.Start())
	assert.Error(t, r.Start(), "second Start without Stop must fail")

	time.Sleep(50 * time.Millisecond)
	r.Stop()

	notifier.mu.Lock()
	sent := len(notifier.sent)
	notifier.mu.Unlock()
	assert.Greater(t, sent, 0, "at least one scan ran")

	// Stop is idempotent and the job can be restarted.
	r.Stop()
	require.NoError(t, r.Start())
	r.Stop()
}
