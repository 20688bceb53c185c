package ports

import (
	"context"
	"time"

	"github.com/jalonhq/jalon/internal/domain/stage"
	"github.com/jalonhq/jalon/internal/domain/task"
)

// StageRepository defines the persistence port for stages. Implemented by
// storage adapters; called by the application layer.
type StageRepository interface {
	// Create persists a new stage.
	Create(ctx context.Context, st *stage.Stage) error

	// FindByID returns a stage by ID.
	// Returns domain.ErrNotFound if the stage does not exist.
	FindByID(ctx context.Context, id string) (*stage.Stage, error)

	// Save persists an updated stage. The write is conditioned on the status
	// the caller read before mutating: if the stored status no longer equals
	// expected, no write happens and domain.ErrConflict is returned. This is
	// the serialization point for racing validations; the workflow itself
	// never locks.
	Save(ctx context.Context, st *stage.Stage, expected stage.Status) error

	// ListByProject returns a project's stages ordered by position.
	ListByProject(ctx context.Context, projectID string) ([]stage.Stage, error)
}

// TaskRepository defines the persistence port for tasks.
type TaskRepository interface {
	// Create persists a new task.
	Create(ctx context.Context, t *task.Task) error

	// FindByID returns a task by ID.
	// Returns domain.ErrNotFound if the task does not exist.
	FindByID(ctx context.Context, id string) (*task.Task, error)

	// Save persists an updated task.
	// Returns domain.ErrNotFound if the task does not exist.
	Save(ctx context.Context, t *task.Task) error

	// CreateMany persists a batch of task specs atomically: either every
	// spec becomes a task or none does. Returns the created tasks in spec
	// order.
	CreateMany(ctx context.Context, specs []task.Spec) ([]task.Task, error)

	// ListByStage returns the tasks scoped to a stage.
	ListByStage(ctx context.Context, stageID string) ([]task.Task, error)

	// ListDueBefore returns open tasks whose due date falls before the given
	// instant. Used by the reminder job.
	ListDueBefore(ctx context.Context, deadline time.Time) ([]task.Task, error)
}
