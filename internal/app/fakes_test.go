package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jalonhq/jalon/internal/domain"
	"github.com/jalonhq/jalon/internal/domain/notification"
	"github.com/jalonhq/jalon/internal/domain/rbac"
	"github.com/jalonhq/jalon/internal/domain/stage"
	"github.com/jalonhq/jalon/internal/domain/task"
	"github.com/jalonhq/jalon/internal/ports"
)

// fakeStageRepo is an in-memory ports.StageRepository with the same
// compare-and-swap semantics as the sqlite adapter.
type fakeStageRepo struct {
	mu      sync.Mutex
	stages  map[string]stage.Stage
	saveErr error
}

func newFakeStageRepo(seed ...stage.Stage) *fakeStageRepo {
	r := &fakeStageRepo{stages: make(map[string]stage.Stage)}
	for _, st := range seed {
		r.stages[st.ID] = st
	}
	return r
}

func (r *fakeStageRepo) Create(_ context.Context, st *stage.Stage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stages[st.ID] = *st
	return nil
}

func (r *fakeStageRepo) FindByID(_ context.Context, id string) (*stage.Stage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	st, ok := r.stages[id]
	if !ok {
		return nil, fmt.Errorf("stage %s: %w", id, domain.ErrNotFound)
	}
	return &st, nil
}

func (r *fakeStageRepo) Save(_ context.Context, st *stage.Stage, expected stage.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	current, ok := r.stages[st.ID]
	if !ok {
		return fmt.Errorf("stage %s: %w", st.ID, domain.ErrNotFound)
	}
	if current.Status != expected {
		return fmt.Errorf("stage %s: %w", st.ID, domain.ErrConflict)
	}
	r.stages[st.ID] = *st
	return nil
}

func (r *fakeStageRepo) ListByProject(_ context.Context, projectID string) ([]stage.Stage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []stage.Stage
	for _, st := range r.stages {
		if st.ProjectID == projectID {
			out = append(out, st)
		}
	}
	return out, nil
}

// fakeTaskRepo is an in-memory ports.TaskRepository. CreateMany is
// all-or-nothing like the sqlite adapter.
type fakeTaskRepo struct {
	mu            sync.Mutex
	tasks         map[string]task.Task
	createManyErr error
}

func newFakeTaskRepo(seed ...task.Task) *fakeTaskRepo {
	r := &fakeTaskRepo{tasks: make(map[string]task.Task)}
	for _, t := range seed {
		r.tasks[t.ID] = t
	}
	return r
}

func (r *fakeTaskRepo) Create(_ context.Context, t *task.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks[t.ID] = *t
	return nil
}

func (r *fakeTaskRepo) FindByID(_ context.Context, id string) (*task.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tasks[id]
	if !ok {
		return nil, fmt.Errorf("task %s: %w", id, domain.ErrNotFound)
	}
	return &t, nil
}

func (r *fakeTaskRepo) Save(_ context.Context, t *task.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[t.ID]; !ok {
		return fmt.Errorf("task %s: %w", t.ID, domain.ErrNotFound)
	}
	r.tasks[t.ID] = *t
	return nil
}

func (r *fakeTaskRepo) CreateMany(_ context.Context, specs []task.Spec) ([]task.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createManyErr != nil {
		return nil, r.createManyErr
	}
	now := time.Now().UTC()
	created := make([]task.Task, 0, len(specs))
	for _, sp := range specs {
		t := task.Task{
			ID:          uuid.NewString(),
			ProjectID:   sp.ProjectID,
			StageID:     sp.StageID,
			Title:       sp.Title,
			Description: sp.Description,
			Status:      task.StatusTodo,
			Priority:    sp.Priority,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		created = append(created, t)
	}
	for _, t := range created {
		r.tasks[t.ID] = t
	}
	return created, nil
}

func (r *fakeTaskRepo) ListByStage(_ context.Context, stageID string) ([]task.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []task.Task
	for _, t := range r.tasks {
		if t.StageID == stageID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTaskRepo) ListDueBefore(_ context.Context, deadline time.Time) ([]task.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []task.Task
	for _, t := range r.tasks {
		if t.DueDate != nil && t.DueDate.Before(deadline) && !t.Status.Terminal() {
			out = append(out, t)
		}
	}
	return out, nil
}

// fakeRoleResolver resolves roles from a static map.
type fakeRoleResolver struct {
	roles map[string]rbac.Role
}

func (r *fakeRoleResolver) RoleOf(_ context.Context, userID string) (rbac.Role, error) {
	role, ok := r.roles[userID]
	if !ok {
		return "", fmt.Errorf("user %s: %w", userID, domain.ErrNotFound)
	}
	return role, nil
}

// fakeNotifier records notifications and optionally fails every delivery.
type fakeNotifier struct {
	mu   sync.Mutex
	sent []notification.Notification
	err  error
}

func (n *fakeNotifier) Notify(_ context.Context, msg notification.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, msg)
	return nil
}

func (n *fakeNotifier) recipients() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, 0, len(n.sent))
	for _, msg := range n.sent {
		out = append(out, msg.UserID)
	}
	return out
}

var _ ports.StageRepository = (*fakeStageRepo)(nil)
var _ ports.TaskRepository = (*fakeTaskRepo)(nil)
var _ ports.RoleResolver = (*fakeRoleResolver)(nil)
var _ ports.Notifier = (*fakeNotifier)(nil)
