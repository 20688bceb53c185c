package stage

import (
	"fmt"
	"strings"
	"time"

	"github.com/jalonhq/jalon/internal/domain"
)

// msgRequired is the validation message for mandatory fields.
const msgRequired = "is required"

// Stage represents an ordered phase within a project. A stage is validated
// once its work is accepted, which is the trigger for follow-up task
// generation.
type Stage struct {
	ID          string
	ProjectID   string
	Name        string
	Description string
	Position    int
	Duration    int // planned duration in days; 0 means unplanned
	Status      Status
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks business rules for the Stage entity.
// Returns a *domain.ValidationError (wrapping domain.ErrValidation) with
// per-field details, or nil if all rules pass.
func (s *Stage) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(s.Name) == "" {
		fields["name"] = msgRequired
	}
	if strings.TrimSpace(s.ProjectID) == "" {
		fields["project_id"] = msgRequired
	}
	if !s.Status.IsValid() {
		fields["status"] = fmt.Sprintf("invalid: %q", s.Status)
	}
	if s.Position < 0 {
		fields["position"] = fmt.Sprintf("must not be negative, got %d", s.Position)
	}
	if s.Duration < 0 {
		fields["duration"] = fmt.Sprintf("must not be negative, got %d", s.Duration)
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// Event is a requested state change on a stage.
type Event string

const (
	EventStart    Event = "start"
	EventValidate Event = "validate"
	EventClose    Event = "close"
)

// Transition applies ev to s and returns the updated stage value. The input
// is never mutated, so callers can safely retain the pre-transition stage
// for compare-and-swap persistence.
//
// Allowed transitions:
//
//	pending              --start-->    in_progress
//	pending|in_progress  --validate--> validated
//	validated            --close-->    closed
//
// Any other combination returns an error wrapping domain.ErrInvalidTransition.
// Re-validating an already validated or closed stage is rejected, not
// silently accepted.
func Transition(s Stage, ev Event, now time.Time) (Stage, error) {
	var next Status

	switch ev {
	case EventStart:
		if s.Status != StatusPending {
			return s, transitionErr(s, ev)
		}
		next = StatusInProgress
	case EventValidate:
		if s.Status != StatusPending && s.Status != StatusInProgress {
			return s, transitionErr(s, ev)
		}
		next = StatusValidated
	case EventClose:
		if s.Status != StatusValidated {
			return s, transitionErr(s, ev)
		}
		next = StatusClosed
	default:
		return s, fmt.Errorf("%w: unknown event %q", domain.ErrInvalidTransition, ev)
	}

	s.Status = next
	s.UpdatedAt = now
	return s, nil
}

func transitionErr(s Stage, ev Event) error {
	return fmt.Errorf("%w: stage %s is %s, cannot %s",
		domain.ErrInvalidTransition, s.ID, s.Status, ev)
}
