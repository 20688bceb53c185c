// Package notify implements the ports.Notifier contract. The gateway adapter
// posts notifications to the messaging gateway's HTTP API; the log adapter
// writes them to the service log for environments without a gateway.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/jalonhq/jalon/internal/domain"
	"github.com/jalonhq/jalon/internal/domain/notification"
	"github.com/jalonhq/jalon/internal/platform/httpclient"
	"github.com/jalonhq/jalon/internal/ports"
)

// Compile-time check that Gateway implements ports.Notifier.
var _ ports.Notifier = (*Gateway)(nil)

// Gateway delivers notifications through the messaging gateway HTTP API.
// Retries, circuit breaking, and tracing come from the underlying client.
type Gateway struct {
	client *httpclient.Client
}

// NewGateway creates a Gateway over the given instrumented client.
func NewGateway(client *httpclient.Client) *Gateway {
	return &Gateway{client: client}
}

type gatewayPayload struct {
	UserID    string `json:"user_id"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	ActionURL string `json:"action_url,omitempty"`
}

// Notify posts the notification to the gateway's /v1/notifications endpoint.
func (g *Gateway) Notify(ctx context.Context, n notification.Notification) error {
	if err := n.Validate(); err != nil {
		return err
	}

	body, err := json.Marshal(gatewayPayload{
		UserID:    n.UserID,
		Title:     n.Title,
		Message:   n.Message,
		ActionURL: n.ActionURL,
	})
	if err != nil {
		return fmt.Errorf("encoding notification: %w", err)
	}

	url := g.client.BaseURL() + "/v1/notifications"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(ctx, req)
	if resp != nil {
		defer func() {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
		}()
	}
	if err != nil {
		return fmt.Errorf("delivering notification to %s: %w", n.UserID, err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("gateway returned %d for user %s: %w",
			resp.StatusCode, n.UserID, domain.ErrUnavailable)
	}
	return nil
}
