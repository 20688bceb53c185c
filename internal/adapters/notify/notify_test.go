package notify_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jalonhq/jalon/internal/adapters/notify"
	"github.com/jalonhq/jalon/internal/domain"
	"github.com/jalonhq/jalon/internal/domain/notification"
	"github.com/jalonhq/jalon/internal/platform/config"
	"github.com/jalonhq/jalon/internal/platform/httpclient"
)

func testClientConfig(baseURL string) *config.ClientConfig {
	return &config.ClientConfig{
		BaseURL: baseURL,
		Timeout: 5 * time.Second,
		Retry: config.RetryConfig{
			MaxAttempts:     1,
			InitialInterval: 10 * time.Millisecond,
			MaxInterval:     100 * time.Millisecond,
			Multiplier:      2.0,
		},
		CircuitBreaker: config.CircuitBreakerConfig{
			MaxFailures:   3,
			Timeout:       time.Second,
			HalfOpenLimit: 1,
		},
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func testNotification() notification.Notification {
	return notification.Notification{
		UserID:    "user-7",
		Title:     "Jalon \"Cadrage\" validé",
		Message:   "Le jalon a été validé.",
		ActionURL: "/projects/p1/stages/s1",
	}
}

func TestGatewayNotify(t *testing.T) {
	t.Parallel()

	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/notifications", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	t.Cleanup(srv.Close)

	client := httpclient.New(testClientConfig(srv.URL), "notification-gateway", nil, testLogger())
	gw := notify.NewGateway(client)

	err := gw.Notify(context.Background(), testNotification())
	require.NoError(t, err)
	assert.Equal(t, "user-7", got["user_id"])
	assert.Equal(t, "Le jalon a été validé.", got["message"])
}

func TestGatewayNotifyServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	t.Cleanup(srv.Close)

	client := httpclient.New(testClientConfig(srv.URL), "notification-gateway", nil, testLogger())
	gw := notify.NewGateway(client)

	err := gw.Notify(context.Background(), testNotification())
	assert.ErrorIs(t, err, domain.ErrUnavailable)
}

func TestGatewayNotifyInvalidNotification(t *testing.T) {
	t.Parallel()

	client := httpclient.New(testClientConfig("http://localhost:0"), "notification-gateway", nil, testLogger())
	gw := notify.NewGateway(client)

	err := gw.Notify(context.Background(), notification.Notification{})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestLogNotify(t *testing.T) {
	t.Parallel()

	l := notify.NewLog(testLogger())
	require.NoError(t, l.Notify(context.Background(), testNotification()))

	err := l.Notify(context.Background(), notification.Notification{})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
