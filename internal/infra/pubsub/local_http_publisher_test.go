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

	"birdy/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEvent() *service.ConfirmationRequestedEvent {
	return &service.ConfirmationRequestedEvent{
		RequestID:  "req-1",
		EventID:    "evt-1",
		UserID:     42,
		Email:      "a@x.io",
		UniqueTag:  "alice",
		ConfirmURL: "http://localhost/app/confirm?email=a%40x.io&token=t",
		ExpiresAt:  time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
	}
}

func TestLocalHTTPPublisher_Publish(t *testing.T) {
	var received PushMessage
	var requestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID = r.Header.Get("X-Request-Id")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &received)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	publisher := NewLocalHTTPPublisher(server.URL, slog.New(slog.DiscardHandler))
	require.NoError(t, publisher.PublishConfirmationRequested(context.Background(), testEvent()))

	assert.Equal(t, "req-1", requestID)
	assert.Equal(t, "evt-1", received.Message.MessageID)
	assert.Equal(t, EventTypeConfirmationRequested, received.Message.Attributes["event_type"])
	assert.Equal(t, "42", received.Message.Attributes["user_id"])

	data, err := base64.StdEncoding.DecodeString(received.Message.Data)
	require.NoError(t, err)

	var event service.ConfirmationRequestedEvent
	require.NoError(t, json.Unmarshal(data, &event))
	assert.Equal(t, "alice", event.UniqueTag)
	assert.Equal(t, "a@x.io", event.Email)
}

func TestLocalHTTPPublisher_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	publisher := NewLocalHTTPPublisher(server.URL, slog.New(slog.DiscardHandler))
	err := publisher.PublishConfirmationRequested(context.Background(), testEvent())
	assert.Error(t, err)
}

func TestNoopPublisher(t *testing.T) {
	publisher := NewNoopPublisher(slog.New(slog.DiscardHandler))

	assert.NoError(t, publisher.PublishConfirmationRequested(context.Background(), testEvent()))
	assert.NoError(t, publisher.Close())
}
