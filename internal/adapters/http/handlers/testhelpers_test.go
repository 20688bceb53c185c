package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jalonhq/jalon/internal/domain/stage"
	"github.com/jalonhq/jalon/internal/domain/task"
)

var testTime = time.Date(2026, 2, 12, 15, 4, 5, 0, time.UTC)

func withChiParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func validStage() stage.Stage {
	return stage.Stage{
		ID:        "stage-1",
		ProjectID: "project-1",
		Name:      "Cadrage",
		Position:  1,
		Status:    stage.StatusPending,
		CreatedBy: "user-1",
		CreatedAt: testTime,
		UpdatedAt: testTime,
	}
}

func validTask() task.Task {
	return task.Task{
		ID:        "task-1",
		ProjectID: "project-1",
		StageID:   "stage-1",
		Title:     "Relire le dossier",
		Status:    task.StatusTodo,
		CreatedAt: testTime,
		UpdatedAt: testTime,
	}
}

// stubStageService implements ports.StageService with overridable funcs.
type stubStageService struct {
	createFn   func(context.Context, *stage.Stage) (*stage.Stage, error)
	getFn      func(context.Context, string) (*stage.Stage, error)
	listFn     func(context.Context, string) ([]stage.Stage, error)
	validateFn func(context.Context, string, string) (*stage.Stage, error)
}

func (s *stubStageService) CreateStage(ctx context.Context, st *stage.Stage) (*stage.Stage, error) {
	return s.createFn(ctx, st)
}

func (s *stubStageService) GetStage(ctx context.Context, id string) (*stage.Stage, error) {
	return s.getFn(ctx, id)
}

func (s *stubStageService) ListProjectStages(ctx context.Context, projectID string) ([]stage.Stage, error) {
	return s.listFn(ctx, projectID)
}

func (s *stubStageService) ValidateStage(ctx context.Context, stageID, actorID string) (*stage.Stage, error) {
	return s.validateFn(ctx, stageID, actorID)
}

// stubTaskService implements ports.TaskService with overridable funcs.
type stubTaskService struct {
	createFn func(context.Context, *task.Task) (*task.Task, error)
	getFn    func(context.Context, string) (*task.Task, error)
	listFn   func(context.Context, string) ([]task.Task, error)
	assignFn func(context.Context, string, string) (*task.Task, error)
	statusFn func(context.Context, string, task.Status) (*task.Task, error)
}

func (s *stubTaskService) CreateTask(ctx context.Context, t *task.Task) (*task.Task, error) {
	return s.createFn(ctx, t)
}

func (s *stubTaskService) GetTask(ctx context.Context, id string) (*task.Task, error) {
	return s.getFn(ctx, id)
}

func (s *stubTaskService) ListStageTasks(ctx context.Context, stageID string) ([]task.Task, error) {
	return s.listFn(ctx, stageID)
}

func (s *stubTaskService) AssignTask(ctx context.Context, taskID, userID string) (*task.Task, error) {
	return s.assignFn(ctx, taskID, userID)
}

func (s *stubTaskService) UpdateTaskStatus(ctx context.Context, taskID string, status task.Status) (*task.Task, error) {
	return s.statusFn(ctx, taskID, status)
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(v); err != nil {
		t.Fatalf("failed to encode JSON body: %v", err)
	}
	return buf
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var result T
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode JSON response: %v", err)
	}
	return result
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Errorf("status = %d, want %d; body = %s", rec.Code, want, rec.Body.String())
	}
}
