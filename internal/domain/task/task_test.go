package task

import (
	"errors"
	"testing"
	"time"

	"github.com/jalonhq/jalon/internal/domain"
)

var testNow = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func validTask() Task {
	return Task{
		ID:        "t1",
		ProjectID: "p1",
		StageID:   "s1",
		Title:     "Draft the architecture note",
		Status:    StatusTodo,
		Priority:  PriorityMedium,
		CreatedBy: "u1",
		CreatedAt: testNow.Add(-time.Hour),
		UpdatedAt: testNow.Add(-time.Hour),
	}
}

func TestStatus_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status Status
		want   bool
	}{
		{StatusTodo, true},
		{StatusInProgress, true},
		{StatusDone, true},
		{StatusCanceled, true},
		{"", false},
		{"paused", false},
	}

	for _, tt := range tests {
		if got := tt.status.IsValid(); got != tt.want {
			t.Errorf("Status(%q).IsValid() = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestPriority_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		priority Priority
		want     bool
	}{
		{"", true},
		{PriorityLow, true},
		{PriorityMedium, true},
		{PriorityHigh, true},
		{"urgent", false},
	}

	for _, tt := range tests {
		if got := tt.priority.IsValid(); got != tt.want {
			t.Errorf("Priority(%q).IsValid() = %v, want %v", tt.priority, got, tt.want)
		}
	}
}

func TestTask_Validate(t *testing.T) {
	t.Parallel()

	t.Run("valid task passes", func(t *testing.T) {
		t.Parallel()
		tk := validTask()
		if err := tk.Validate(); err != nil {
			t.Errorf("Validate() = %v, want nil", err)
		}
	})

	tests := []struct {
		name   string
		mutate func(*Task)
		field  string
	}{
		{name: "missing title", mutate: func(tk *Task) { tk.Title = "" }, field: "title"},
		{name: "missing project", mutate: func(tk *Task) { tk.ProjectID = " " }, field: "project_id"},
		{name: "bad status", mutate: func(tk *Task) { tk.Status = "paused" }, field: "status"},
		{name: "bad priority", mutate: func(tk *Task) { tk.Priority = "urgent" }, field: "priority"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tk := validTask()
			tt.mutate(&tk)

			err := tk.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}

			var verr *domain.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("errors.As(err, *ValidationError) = false, got %T", err)
			}
			if _, ok := verr.Fields[tt.field]; !ok {
				t.Errorf("ValidationError.Fields missing key %q, got %v", tt.field, verr.Fields)
			}
		})
	}
}

func TestTransition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		from    Status
		to      Status
		wantErr bool
	}{
		{name: "todo to in_progress", from: StatusTodo, to: StatusInProgress},
		{name: "in_progress to done", from: StatusInProgress, to: StatusDone},
		{name: "todo to canceled", from: StatusTodo, to: StatusCanceled},
		{name: "in_progress to canceled", from: StatusInProgress, to: StatusCanceled},
		{name: "todo cannot jump to done", from: StatusTodo, to: StatusDone, wantErr: true},
		{name: "done is terminal", from: StatusDone, to: StatusInProgress, wantErr: true},
		{name: "canceled is terminal", from: StatusCanceled, to: StatusTodo, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tk := validTask()
			tk.Status = tt.from

			got, err := Transition(tk, tt.to, testNow)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrInvalidTransition) {
					t.Errorf("Transition() error = %v, want ErrInvalidTransition", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Transition() error = %v, want nil", err)
			}
			if got.Status != tt.to {
				t.Errorf("Status = %q, want %q", got.Status, tt.to)
			}
			if tk.Status != tt.from {
				t.Errorf("input Status = %q, want %q (unchanged)", tk.Status, tt.from)
			}
		})
	}

	t.Run("done sets CompletedAt", func(t *testing.T) {
		t.Parallel()
		tk := validTask()
		tk.Status = StatusInProgress

		got, err := Transition(tk, StatusDone, testNow)
		if err != nil {
			t.Fatalf("Transition() error = %v, want nil", err)
		}
		if got.CompletedAt == nil || !got.CompletedAt.Equal(testNow) {
			t.Errorf("CompletedAt = %v, want %v", got.CompletedAt, testNow)
		}
	})
}

func TestSpec_Validate(t *testing.T) {
	t.Parallel()

	sp := Spec{ProjectID: "p1", StageID: "s1", Title: "Relire le dossier", Priority: PriorityHigh}
	if err := sp.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}

	empty := Spec{}
	err := empty.Validate()
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("Validate() error = %v, want ErrValidation", err)
	}
}
