// Package taskgen derives the follow-up tasks that a validated stage fans
// out into. The rule is pure: no clock, no identifiers, no I/O. Callers
// persist the returned specs and stamp identity there.
package taskgen

import (
	"fmt"

	"github.com/jalonhq/jalon/internal/domain/stage"
	"github.com/jalonhq/jalon/internal/domain/task"
)

// ForValidatedStage returns the task specs to create when the given stage is
// validated. The result is deterministic for a given stage: two tasks, in a
// fixed order, both scoped to the stage's project and the stage itself.
func ForValidatedStage(st stage.Stage) []task.Spec {
	return []task.Spec{
		{
			ProjectID:   st.ProjectID,
			StageID:     st.ID,
			Title:       fmt.Sprintf("Préparer les livrables de %q", st.Name),
			Description: fmt.Sprintf("Rassembler et finaliser les livrables attendus pour le jalon %q.", st.Name),
			Priority:    task.PriorityHigh,
		},
		{
			ProjectID:   st.ProjectID,
			StageID:     st.ID,
			Title:       fmt.Sprintf("Validation interne de %q", st.Name),
			Description: fmt.Sprintf("Organiser la revue interne du jalon %q avant communication.", st.Name),
			Priority:    task.PriorityMedium,
		},
	}
}
