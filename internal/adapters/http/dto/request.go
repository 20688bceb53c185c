package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/jalonhq/jalon/internal/domain"
	"github.com/jalonhq/jalon/internal/domain/task"
)

const msgRequired = "is required"

// CreateStageRequest represents the JSON body for creating a new stage.
type CreateStageRequest struct {
	ProjectID   string `json:"project_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Position    int    `json:"position"`
	Duration    int    `json:"duration,omitempty"`
	CreatedBy   string `json:"created_by"`
}

// Validate checks that required fields are present.
// Returns a *domain.ValidationError if any checks fail.
func (r *CreateStageRequest) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(r.ProjectID) == "" {
		fields["project_id"] = msgRequired
	}
	if strings.TrimSpace(r.Name) == "" {
		fields["name"] = msgRequired
	}
	if r.Position < 0 {
		fields["position"] = fmt.Sprintf("must not be negative, got %d", r.Position)
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// ValidateStageRequest represents the JSON body for the stage-validation
// endpoint. ActorID identifies who is validating; authorization is checked
// against that user's role.
type ValidateStageRequest struct {
	ActorID string `json:"actor_id"`
}

// Validate checks that required fields are present.
func (r *ValidateStageRequest) Validate() error {
	if strings.TrimSpace(r.ActorID) == "" {
		return &domain.ValidationError{Fields: map[string]string{"actor_id": msgRequired}}
	}
	return nil
}

// CreateTaskRequest represents the JSON body for creating a new task.
type CreateTaskRequest struct {
	ProjectID   string     `json:"project_id"`
	StageID     string     `json:"stage_id,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Priority    string     `json:"priority,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedBy   string     `json:"created_by,omitempty"`
}

// Validate checks that required fields are present and optional fields have
// valid values. Returns a *domain.ValidationError if any checks fail.
func (r *CreateTaskRequest) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(r.ProjectID) == "" {
		fields["project_id"] = msgRequired
	}
	if strings.TrimSpace(r.Title) == "" {
		fields["title"] = msgRequired
	}
	if !task.Priority(r.Priority).IsValid() {
		fields["priority"] = fmt.Sprintf("invalid: %q", r.Priority)
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// AssignTaskRequest represents the JSON body for the task-assignment endpoint.
type AssignTaskRequest struct {
	UserID string `json:"user_id"`
}

// Validate checks that required fields are present.
func (r *AssignTaskRequest) Validate() error {
	if strings.TrimSpace(r.UserID) == "" {
		return &domain.ValidationError{Fields: map[string]string{"user_id": msgRequired}}
	}
	return nil
}

// UpdateTaskStatusRequest represents the JSON body for moving a task through
// its lifecycle.
type UpdateTaskStatusRequest struct {
	Status string `json:"status"`
}

// Validate checks that the target status is a known value. Whether the move
// is allowed from the task's current status is decided by the domain.
func (r *UpdateTaskStatusRequest) Validate() error {
	if !task.Status(r.Status).IsValid() {
		return &domain.ValidationError{Fields: map[string]string{
			"status": fmt.Sprintf("invalid: %q", r.Status),
		}}
	}
	return nil
}
