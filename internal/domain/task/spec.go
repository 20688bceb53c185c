package task

import (
	"strings"

	"github.com/jalonhq/jalon/internal/domain"
)

// Spec describes a task to be created. It carries no identity, status, or
// timestamps: those are assigned when the spec is persisted. Batch creation
// of specs through the task repository is all-or-nothing.
type Spec struct {
	ProjectID   string
	StageID     string
	Title       string
	Description string
	Priority    Priority
}

// Validate checks that the spec carries enough data to become a task.
func (sp *Spec) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(sp.Title) == "" {
		fields["title"] = msgRequired
	}
	if strings.TrimSpace(sp.ProjectID) == "" {
		fields["project_id"] = msgRequired
	}
	if !sp.Priority.IsValid() {
		fields["priority"] = "invalid: " + string(sp.Priority)
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}
