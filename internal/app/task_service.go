package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jalonhq/jalon/internal/domain/notification"
	"github.com/jalonhq/jalon/internal/domain/task"
	"github.com/jalonhq/jalon/internal/ports"
)

// Compile-time check that TaskService implements ports.TaskService.
var _ ports.TaskService = (*TaskService)(nil)

// TaskService implements ports.TaskService. It applies the task state
// machine through the domain transition function and keeps assignment
// separate from status changes.
type TaskService struct {
	tasks    ports.TaskRepository
	notifier ports.Notifier
	logger   *slog.Logger
	now      func() time.Time
}

// NewTaskService creates a TaskService wired to the given ports.
func NewTaskService(tasks ports.TaskRepository, notifier ports.Notifier, logger *slog.Logger) *TaskService {
	return &TaskService{
		tasks:    tasks,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// CreateTask validates and creates a new task in todo status.
func (s *TaskService) CreateTask(ctx context.Context, t *task.Task) (*task.Task, error) {
	s.logger.InfoContext(ctx, "creating task",
		slog.String("project_id", t.ProjectID),
		slog.String("title", t.Title),
	)

	now := s.now().UTC()
	t.ID = uuid.NewString()
	t.Status = task.StatusTodo
	t.CompletedAt = nil
	t.CreatedAt = now
	t.UpdatedAt = now

	if err := t.Validate(); err != nil {
		return nil, err
	}

	if err := s.tasks.Create(ctx, t); err != nil {
		s.logger.ErrorContext(ctx, "failed to create task",
			slog.String("operation", "CreateTask"),
			slog.String("project_id", t.ProjectID),
			slog.Any("error", err),
		)
		return nil, err
	}

	return t, nil
}

// GetTask returns a single task by ID.
func (s *TaskService) GetTask(ctx context.Context, id string) (*task.Task, error) {
	t, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to fetch task",
			slog.String("operation", "GetTask"),
			slog.String("task_id", id),
			slog.Any("error", err),
		)
		return nil, err
	}
	return t, nil
}

// ListStageTasks returns the tasks scoped to a stage.
func (s *TaskService) ListStageTasks(ctx context.Context, stageID string) ([]task.Task, error) {
	tasks, err := s.tasks.ListByStage(ctx, stageID)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list tasks",
			slog.String("operation", "ListStageTasks"),
			slog.String("stage_id", stageID),
			slog.Any("error", err),
		)
		return nil, err
	}
	return tasks, nil
}

// AssignTask sets the task's assignee without touching its status, then
// sends a best-effort notification to the assignee. The assignee is not
// checked for project membership.
func (s *TaskService) AssignTask(ctx context.Context, taskID, userID string) (*task.Task, error) {
	s.logger.InfoContext(ctx, "assigning task",
		slog.String("task_id", taskID),
		slog.String("user_id", userID),
	)

	t, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	t.AssignedTo = userID
	t.UpdatedAt = s.now().UTC()

	if err := s.tasks.Save(ctx, t); err != nil {
		s.logger.ErrorContext(ctx, "failed to persist task assignment",
			slog.String("operation", "AssignTask"),
			slog.String("task_id", taskID),
			slog.Any("error", err),
		)
		return nil, err
	}

	n := notification.Notification{
		UserID:    userID,
		Title:     "Nouvelle tâche assignée",
		Message:   fmt.Sprintf("La tâche %q vous a été assignée.", t.Title),
		ActionURL: fmt.Sprintf("/projects/%s/tasks/%s", t.ProjectID, t.ID),
	}
	if err := s.notifier.Notify(ctx, n); err != nil {
		s.logger.WarnContext(ctx, "task assignment notification failed",
			slog.String("task_id", taskID),
			slog.String("user_id", userID),
			slog.Any("error", err),
		)
	}

	return t, nil
}

// UpdateTaskStatus moves the task through its lifecycle using the domain
// transition function.
func (s *TaskService) UpdateTaskStatus(ctx context.Context, taskID string, status task.Status) (*task.Task, error) {
	s.logger.InfoContext(ctx, "updating task status",
		slog.String("task_id", taskID),
		slog.String("status", status.String()),
	)

	t, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	moved, err := task.Transition(*t, status, s.now().UTC())
	if err != nil {
		return nil, err
	}

	if err := s.tasks.Save(ctx, &moved); err != nil {
		s.logger.ErrorContext(ctx, "failed to persist task status",
			slog.String("operation", "UpdateTaskStatus"),
			slog.String("task_id", taskID),
			slog.Any("error", err),
		)
		return nil, err
	}

	return &moved, nil
}
