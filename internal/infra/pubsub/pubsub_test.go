package pubsub

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"

	"handly/config"
	"handly/internal/domain/service"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func registeredEvent() *service.AccountEvent {
	return &service.AccountEvent{
		RequestID:  "req-1",
		Type:       service.AccountEventRegistered,
		Subject:    "12345678901",
		Role:       "provider",
		OccurredAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestLocalHTTPPublisher_PublishAccountEvent(t *testing.T) {
	var (
		got       PushMessage
		requestID string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID = r.Header.Get("X-Request-Id")
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	p := newLocalHTTPPublisher(srv.URL, srv.Client(), testLogger())
	p.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 1, 0, time.UTC) }

	require.NoError(t, p.PublishAccountEvent(context.Background(), registeredEvent()))

	assert.Equal(t, "req-1", requestID)
	assert.Equal(t, localSubscription, got.Subscription)
	assert.Equal(t, "2024-05-01T12:00:01Z", got.Message.PublishTime)
	assert.NotEmpty(t, got.Message.MessageID)
	assert.Equal(t, map[string]string{
		"type":       "account.registered",
		"role":       "provider",
		"request_id": "req-1",
	}, got.Message.Attributes)

	raw, err := base64.StdEncoding.DecodeString(got.Message.Data)
	require.NoError(t, err)
	var event service.AccountEvent
	require.NoError(t, json.Unmarshal(raw, &event))
	assert.Equal(t, *registeredEvent(), event)
}

func TestLocalHTTPPublisher_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	p := newLocalHTTPPublisher(srv.URL, srv.Client(), testLogger())

	err := p.PublishAccountEvent(context.Background(), registeredEvent())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestNewEventPublisher(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.PubSubConfig
		wantErr string
		check   func(t *testing.T, p service.EventPublisher)
	}{
		{
			name: "unset section is noop",
			cfg:  nil,
			check: func(t *testing.T, p service.EventPublisher) {
				assert.IsType(t, &noopPublisher{}, p)
				assert.NoError(t, p.PublishAccountEvent(context.Background(), registeredEvent()))
			},
		},
		{
			name: "empty provider is noop",
			cfg:  &config.PubSubConfig{},
			check: func(t *testing.T, p service.EventPublisher) {
				assert.IsType(t, &noopPublisher{}, p)
			},
		},
		{
			name: "local",
			cfg:  &config.PubSubConfig{Provider: ProviderLocal, LocalEndpoint: "http://localhost:8081/push"},
			check: func(t *testing.T, p service.EventPublisher) {
				assert.IsType(t, &localHTTPPublisher{}, p)
			},
		},
		{
			name:    "local without endpoint",
			cfg:     &config.PubSubConfig{Provider: ProviderLocal},
			wantErr: "local endpoint is required",
		},
		{
			name:    "google without project",
			cfg:     &config.PubSubConfig{Provider: ProviderGoogle, TopicID: "accounts"},
			wantErr: "project ID is required",
		},
		{
			name:    "google without topic",
			cfg:     &config.PubSubConfig{Provider: ProviderGoogle, ProjectID: "handly"},
			wantErr: "topic ID is required",
		},
		{
			name:    "unknown provider",
			cfg:     &config.PubSubConfig{Provider: "kafka"},
			wantErr: "unknown pubsub provider: kafka",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lc := fxtest.NewLifecycle(t)

			p, err := NewEventPublisher(PublisherParams{
				Lc:     lc,
				Ctx:    context.Background(),
				Config: &config.Config{PubSub: tt.cfg},
				Logger: testLogger(),
			})

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)

				return
			}
			require.NoError(t, err)
			tt.check(t, p)
			lc.RequireStart().RequireStop()
		})
	}
}
