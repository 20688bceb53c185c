package ports

import (
	"context"

	"github.com/jalonhq/jalon/internal/domain/notification"
)

// Notifier defines the outbound port for delivering a notification to a
// user. Email, SMS, and messaging-gateway adapters are interchangeable
// behind this contract. Delivery is fire-and-forget at the workflow
// boundary: callers log errors and move on, they never fail a workflow on a
// notification error.
type Notifier interface {
	// Notify delivers a single notification. Implementations should respect
	// context cancellation and apply their own delivery timeouts; the
	// workflow imposes none.
	Notify(ctx context.Context, n notification.Notification) error
}
