// Package app provides application services that orchestrate use cases by
// coordinating between domain logic and infrastructure through port interfaces.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jalonhq/jalon/internal/app/fanout"
	"github.com/jalonhq/jalon/internal/app/taskgen"
	"github.com/jalonhq/jalon/internal/domain"
	"github.com/jalonhq/jalon/internal/domain/notification"
	"github.com/jalonhq/jalon/internal/domain/rbac"
	"github.com/jalonhq/jalon/internal/domain/stage"
	"github.com/jalonhq/jalon/internal/ports"
)

// notifyWorkers bounds the concurrency of the notification fan-out after a
// stage validation.
const notifyWorkers = 4

// Compile-time check that StageService implements ports.StageService.
var _ ports.StageService = (*StageService)(nil)

// StageService implements ports.StageService. It orchestrates the
// stage-validation workflow across the authorization, persistence, and
// notification ports; the transition rules themselves live in the domain.
type StageService struct {
	stages   ports.StageRepository
	tasks    ports.TaskRepository
	roles    ports.RoleResolver
	authz    ports.Authorizer
	notifier ports.Notifier
	logger   *slog.Logger
	now      func() time.Time
}

// NewStageService creates a StageService wired to the given ports.
func NewStageService(
	stages ports.StageRepository,
	tasks ports.TaskRepository,
	roles ports.RoleResolver,
	authz ports.Authorizer,
	notifier ports.Notifier,
	logger *slog.Logger,
) *StageService {
	return &StageService{
		stages:   stages,
		tasks:    tasks,
		roles:    roles,
		authz:    authz,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// CreateStage validates and creates a new stage in pending status.
func (s *StageService) CreateStage(ctx context.Context, st *stage.Stage) (*stage.Stage, error) {
	s.logger.InfoContext(ctx, "creating stage",
		slog.String("project_id", st.ProjectID),
		slog.String("name", st.Name),
	)

	now := s.now().UTC()
	st.ID = uuid.NewString()
	st.Status = stage.StatusPending
	st.CreatedAt = now
	st.UpdatedAt = now

	if err := st.Validate(); err != nil {
		return nil, err
	}

	if err := s.stages.Create(ctx, st); err != nil {
		s.logger.ErrorContext(ctx, "failed to create stage",
			slog.String("operation", "CreateStage"),
			slog.String("project_id", st.ProjectID),
			slog.Any("error", err),
		)
		return nil, err
	}

	return st, nil
}

// GetStage returns a single stage by ID.
func (s *StageService) GetStage(ctx context.Context, id string) (*stage.Stage, error) {
	st, err := s.stages.FindByID(ctx, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to fetch stage",
			slog.String("operation", "GetStage"),
			slog.String("stage_id", id),
			slog.Any("error", err),
		)
		return nil, err
	}
	return st, nil
}

// ListProjectStages returns a project's stages ordered by position.
func (s *StageService) ListProjectStages(ctx context.Context, projectID string) ([]stage.Stage, error) {
	stages, err := s.stages.ListByProject(ctx, projectID)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list stages",
			slog.String("operation", "ListProjectStages"),
			slog.String("project_id", projectID),
			slog.Any("error", err),
		)
		return nil, err
	}
	return stages, nil
}

// ValidateStage runs the stage-validation workflow: authorize the actor,
// transition the stage to validated, persist it with a compare-and-swap,
// create the follow-up tasks in one batch, and fan out notifications.
//
// The stage write is the point of no return. A task batch failure after it
// surfaces as domain.ErrPartialFailure rather than rolling the stage back;
// notification failures are logged and never surface at all.
func (s *StageService) ValidateStage(ctx context.Context, stageID, actorID string) (*stage.Stage, error) {
	s.logger.InfoContext(ctx, "validating stage",
		slog.String("stage_id", stageID),
		slog.String("actor_id", actorID),
	)

	st, err := s.stages.FindByID(ctx, stageID)
	if err != nil {
		return nil, err
	}

	role, err := s.roles.RoleOf(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if decision := s.authz.Check(role, rbac.ResourceStages, rbac.ActionValidate); !decision.Allowed {
		s.logger.WarnContext(ctx, "stage validation denied",
			slog.String("stage_id", stageID),
			slog.String("actor_id", actorID),
			slog.String("role", role.String()),
			slog.String("reason", decision.Reason),
		)
		return nil, fmt.Errorf("validate stage %s: %w", stageID, domain.ErrForbidden)
	}

	validated, err := stage.Transition(*st, stage.EventValidate, s.now().UTC())
	if err != nil {
		return nil, err
	}

	if err := s.stages.Save(ctx, &validated, st.Status); err != nil {
		s.logger.ErrorContext(ctx, "failed to persist stage validation",
			slog.String("operation", "ValidateStage"),
			slog.String("stage_id", stageID),
			slog.Any("error", err),
		)
		return nil, err
	}

	specs := taskgen.ForValidatedStage(validated)
	if _, err := s.tasks.CreateMany(ctx, specs); err != nil {
		s.logger.ErrorContext(ctx, "stage validated but follow-up tasks not created",
			slog.String("operation", "ValidateStage"),
			slog.String("stage_id", stageID),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("creating follow-up tasks for stage %s: %w", stageID, domain.ErrPartialFailure)
	}

	s.notifyValidated(ctx, validated, actorID)

	return &validated, nil
}

// notifyValidated fans out the post-validation notifications to the stage's
// stakeholders. Failures are logged per recipient and otherwise ignored.
func (s *StageService) notifyValidated(ctx context.Context, st stage.Stage, actorID string) {
	recipients := stakeholders(st, actorID)
	if len(recipients) == 0 {
		return
	}

	results := fanout.Run(ctx, notifyWorkers, recipients, func(ctx context.Context, userID string) (struct{}, error) {
		n := notification.Notification{
			UserID:    userID,
			Title:     fmt.Sprintf("Jalon %q validé", st.Name),
			Message:   fmt.Sprintf("Le jalon %q a été validé. Deux tâches de suivi ont été créées.", st.Name),
			ActionURL: fmt.Sprintf("/projects/%s/stages/%s", st.ProjectID, st.ID),
		}
		return struct{}{}, s.notifier.Notify(ctx, n)
	})

	for i, res := range results {
		if res.Err != nil {
			s.logger.WarnContext(ctx, "stage validation notification failed",
				slog.String("stage_id", st.ID),
				slog.String("user_id", recipients[i]),
				slog.Any("error", res.Err),
			)
		}
	}
}

// stakeholders returns the deduplicated notification recipients for a
// validated stage: its creator and the validating actor.
func stakeholders(st stage.Stage, actorID string) []string {
	seen := make(map[string]struct{}, 2)
	var out []string
	for _, id := range []string{st.CreatedBy, actorID} {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
