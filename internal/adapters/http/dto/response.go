// Package dto provides HTTP request/response data transfer objects and
// RFC 9457 Problem Details error responses for the inbound HTTP adapter layer.
package dto

import (
	"time"

	"github.com/jalonhq/jalon/internal/domain/stage"
	"github.com/jalonhq/jalon/internal/domain/task"
)

// StageResponse represents a single stage in HTTP responses.
type StageResponse struct {
	ID          string `json:"id"`
	ProjectID   string `json:"project_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Position    int    `json:"position"`
	Duration    int    `json:"duration,omitempty"`
	Status      string `json:"status"`
	CreatedBy   string `json:"created_by"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// StageListResponse represents a list of stages in HTTP responses.
type StageListResponse struct {
	Stages []StageResponse `json:"stages"`
	Count  int             `json:"count"`
}

// ToStageResponse converts a domain Stage entity to an HTTP response DTO.
func ToStageResponse(st *stage.Stage) StageResponse {
	return StageResponse{
		ID:          st.ID,
		ProjectID:   st.ProjectID,
		Name:        st.Name,
		Description: st.Description,
		Position:    st.Position,
		Duration:    st.Duration,
		Status:      st.Status.String(),
		CreatedBy:   st.CreatedBy,
		CreatedAt:   st.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   st.UpdatedAt.Format(time.RFC3339),
	}
}

// ToStageListResponse converts a slice of domain Stage entities to an HTTP
// list response DTO.
func ToStageListResponse(stages []stage.Stage) StageListResponse {
	items := make([]StageResponse, len(stages))
	for i := range stages {
		items[i] = ToStageResponse(&stages[i])
	}
	return StageListResponse{
		Stages: items,
		Count:  len(items),
	}
}

// TaskResponse represents a single task in HTTP responses.
type TaskResponse struct {
	ID            string `json:"id"`
	ProjectID     string `json:"project_id"`
	StageID       string `json:"stage_id,omitempty"`
	Title         string `json:"title"`
	Description   string `json:"description,omitempty"`
	Status        string `json:"status"`
	Priority      string `json:"priority,omitempty"`
	DueDate       string `json:"due_date,omitempty"`
	CompletedAt   string `json:"completed_at,omitempty"`
	AssignedTo    string `json:"assigned_to,omitempty"`
	CreatedBy     string `json:"created_by,omitempty"`
	RefusalReason string `json:"refusal_reason,omitempty"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

// TaskListResponse represents a list of tasks in HTTP responses.
type TaskListResponse struct {
	Tasks []TaskResponse `json:"tasks"`
	Count int            `json:"count"`
}

// ToTaskResponse converts a domain Task entity to an HTTP response DTO.
func ToTaskResponse(t *task.Task) TaskResponse {
	resp := TaskResponse{
		ID:            t.ID,
		ProjectID:     t.ProjectID,
		StageID:       t.StageID,
		Title:         t.Title,
		Description:   t.Description,
		Status:        t.Status.String(),
		Priority:      t.Priority.String(),
		AssignedTo:    t.AssignedTo,
		CreatedBy:     t.CreatedBy,
		RefusalReason: t.RefusalReason,
		CreatedAt:     t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     t.UpdatedAt.Format(time.RFC3339),
	}
	if t.DueDate != nil {
		resp.DueDate = t.DueDate.Format(time.RFC3339)
	}
	if t.CompletedAt != nil {
		resp.CompletedAt = t.CompletedAt.Format(time.RFC3339)
	}
	return resp
}

// ToTaskListResponse converts a slice of domain Task entities to an HTTP
// list response DTO.
func ToTaskListResponse(tasks []task.Task) TaskListResponse {
	items := make([]TaskResponse, len(tasks))
	for i := range tasks {
		items[i] = ToTaskResponse(&tasks[i])
	}
	return TaskListResponse{
		Tasks: items,
		Count: len(items),
	}
}
