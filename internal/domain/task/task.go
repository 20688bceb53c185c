package task

import (
	"fmt"
	"strings"
	"time"

	"github.com/jalonhq/jalon/internal/domain"
)

// msgRequired is the validation message for mandatory fields.
const msgRequired = "is required"

// Task represents a unit of work within a project, optionally scoped to a
// stage and assignable to a user. CreatedBy is empty for tasks produced by
// the stage-validation generation rule.
type Task struct {
	ID            string
	ProjectID     string
	StageID       string
	Title         string
	Description   string
	Status        Status
	Priority      Priority
	DueDate       *time.Time
	CompletedAt   *time.Time
	AssignedTo    string
	CreatedBy     string
	RefusalReason string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Validate checks business rules for the Task entity.
// Returns a *domain.ValidationError (wrapping domain.ErrValidation) with
// per-field details, or nil if all rules pass.
func (t *Task) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(t.Title) == "" {
		fields["title"] = msgRequired
	}
	if strings.TrimSpace(t.ProjectID) == "" {
		fields["project_id"] = msgRequired
	}
	if !t.Status.IsValid() {
		fields["status"] = fmt.Sprintf("invalid: %q", t.Status)
	}
	if !t.Priority.IsValid() {
		fields["priority"] = fmt.Sprintf("invalid: %q", t.Priority)
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// Transition moves t to the requested status and returns the updated value.
// The input is never mutated.
//
// Allowed transitions:
//
//	todo        -> in_progress
//	in_progress -> done
//	todo|in_progress -> canceled
//
// done and canceled are terminal. Any other combination returns an error
// wrapping domain.ErrInvalidTransition.
func Transition(t Task, next Status, now time.Time) (Task, error) {
	ok := false
	switch t.Status {
	case StatusTodo:
		ok = next == StatusInProgress || next == StatusCanceled
	case StatusInProgress:
		ok = next == StatusDone || next == StatusCanceled
	}
	if !ok {
		return t, fmt.Errorf("%w: task %s is %s, cannot move to %s",
			domain.ErrInvalidTransition, t.ID, t.Status, next)
	}

	t.Status = next
	t.UpdatedAt = now
	if next == StatusDone {
		done := now
		t.CompletedAt = &done
	}
	return t, nil
}
