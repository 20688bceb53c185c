// Package notification defines the fire-and-forget notification value sent
// to users when a workflow completes. Delivery confirmation is not tracked:
// adapters may deliver over email, SMS, or a messaging gateway
// interchangeably.
package notification

import (
	"strings"

	"github.com/jalonhq/jalon/internal/domain"
)

const msgRequired = "is required"

// Notification is a message addressed to a single user.
type Notification struct {
	UserID    string
	Title     string
	Message   string
	ActionURL string
}

// Validate checks that the notification is addressable and non-empty.
func (n *Notification) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(n.UserID) == "" {
		fields["user_id"] = msgRequired
	}
	if strings.TrimSpace(n.Title) == "" {
		fields["title"] = msgRequired
	}
	if strings.TrimSpace(n.Message) == "" {
		fields["message"] = msgRequired
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}
