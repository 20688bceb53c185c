package ports

import (
	"context"

	"github.com/jalonhq/jalon/internal/domain/stage"
	"github.com/jalonhq/jalon/internal/domain/task"
)

// StageService defines the service port for stage operations, including the
// stage-validation workflow. Implemented by the application layer; called by
// inbound adapters (handlers).
type StageService interface {
	// CreateStage validates and creates a new stage in pending status,
	// returning the created entity with server-assigned fields.
	// Returns domain.ErrValidation if the stage fails validation.
	CreateStage(ctx context.Context, st *stage.Stage) (*stage.Stage, error)

	// GetStage returns a single stage by ID.
	// Returns domain.ErrNotFound if the stage does not exist.
	GetStage(ctx context.Context, id string) (*stage.Stage, error)

	// ListProjectStages returns a project's stages ordered by position.
	ListProjectStages(ctx context.Context, projectID string) ([]stage.Stage, error)

	// ValidateStage runs the stage-validation workflow for the given actor:
	// authorize, transition the stage to validated, persist, generate the
	// follow-up tasks in one batch, and notify stakeholders.
	//
	// Returns domain.ErrNotFound if the stage does not exist,
	// domain.ErrForbidden if the actor's role lacks stages:validate,
	// domain.ErrInvalidTransition if the stage is already validated or closed,
	// domain.ErrConflict if a concurrent validation won the race, and
	// domain.ErrPartialFailure if the stage transitioned but the generated
	// tasks did not persist. Notification failures never surface here.
	ValidateStage(ctx context.Context, stageID, actorID string) (*stage.Stage, error)
}

// TaskService defines the service port for task operations, including the
// task-assignment workflow.
type TaskService interface {
	// CreateTask validates and creates a new task in todo status.
	// Returns domain.ErrValidation if the task fails validation.
	CreateTask(ctx context.Context, t *task.Task) (*task.Task, error)

	// GetTask returns a single task by ID.
	// Returns domain.ErrNotFound if the task does not exist.
	GetTask(ctx context.Context, id string) (*task.Task, error)

	// ListStageTasks returns the tasks scoped to a stage.
	ListStageTasks(ctx context.Context, stageID string) ([]task.Task, error)

	// AssignTask sets the task's assignee without changing its status. The
	// assignee is not checked for project membership; that responsibility
	// stays with the caller. A best-effort notification is sent to the
	// assignee afterwards.
	// Returns domain.ErrNotFound if the task does not exist.
	AssignTask(ctx context.Context, taskID, userID string) (*task.Task, error)

	// UpdateTaskStatus moves the task through its lifecycle
	// (todo -> in_progress -> done, cancel from any non-terminal state).
	// Returns domain.ErrNotFound if the task does not exist and
	// domain.ErrInvalidTransition if the move is not allowed.
	UpdateTaskStatus(ctx context.Context, taskID string, status task.Status) (*task.Task, error)
}
