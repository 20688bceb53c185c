// Package handlers provides HTTP request handlers for the service's API endpoints.
package handlers

import (
	"net/http"

	"github.com/jalonhq/jalon/internal/adapters/http/dto"
	"github.com/jalonhq/jalon/internal/domain/stage"
	"github.com/jalonhq/jalon/internal/ports"
)

// StageHandler handles HTTP requests for stage CRUD and the stage-validation
// endpoint.
type StageHandler struct {
	svc ports.StageService
}

// NewStageHandler creates a new StageHandler with the given service port.
func NewStageHandler(svc ports.StageService) *StageHandler {
	return &StageHandler{svc: svc}
}

// CreateStage handles POST /api/v1/stages.
func (h *StageHandler) CreateStage(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateStageRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	st := &stage.Stage{
		ProjectID:   req.ProjectID,
		Name:        req.Name,
		Description: req.Description,
		Position:    req.Position,
		Duration:    req.Duration,
		CreatedBy:   req.CreatedBy,
	}

	created, err := h.svc.CreateStage(r.Context(), st)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ToStageResponse(created))
}

// GetStage handles GET /api/v1/stages/{id}.
func (h *StageHandler) GetStage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	st, err := h.svc.GetStage(r.Context(), id)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToStageResponse(st))
}

// ListProjectStages handles GET /api/v1/projects/{projectId}/stages.
func (h *StageHandler) ListProjectStages(w http.ResponseWriter, r *http.Request) {
	projectID, err := pathID(r, "projectId")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	stages, err := h.svc.ListProjectStages(r.Context(), projectID)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToStageListResponse(stages))
}

// ValidateStage handles POST /api/v1/stages/{id}/validate.
func (h *StageHandler) ValidateStage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var req dto.ValidateStageRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	validated, err := h.svc.ValidateStage(r.Context(), id, req.ActorID)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToStageResponse(validated))
}
