package notify

import (
	"context"
	"log/slog"

	"github.com/jalonhq/jalon/internal/domain/notification"
	"github.com/jalonhq/jalon/internal/ports"
)

// Compile-time check that Log implements ports.Notifier.
var _ ports.Notifier = (*Log)(nil)

// Log writes notifications to the service log instead of delivering them.
// Used in local profiles and as a safe default.
type Log struct {
	logger *slog.Logger
}

// NewLog creates a Log notifier.
func NewLog(logger *slog.Logger) *Log {
	return &Log{logger: logger}
}

// Notify logs the notification and always succeeds.
func (l *Log) Notify(ctx context.Context, n notification.Notification) error {
	if err := n.Validate(); err != nil {
		return err
	}
	l.logger.InfoContext(ctx, "notification",
		slog.String("user_id", n.UserID),
		slog.String("title", n.Title),
		slog.String("message", n.Message),
		slog.String("action_url", n.ActionURL),
	)
	return nil
}
