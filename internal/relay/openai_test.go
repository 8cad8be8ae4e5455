package relay_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgard/charsheet/internal/relay"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOpenAIClientChat(t *testing.T) {
	t.Parallel()

	var received struct {
		Model    string          `json:"model"`
		Messages []relay.Message `json:"messages"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"model": "gpt-3.5-turbo",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "Roll for initiative."}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 5, "completion_tokens": 4, "total_tokens": 9}
		}`)
	}))
	defer srv.Close()

	client, err := relay.NewOpenAIClient("test-key", srv.URL, discardLogger())
	require.NoError(t, err)

	reply, err := client.Chat(context.Background(), "gpt-3.5-turbo", []relay.Message{
		{Role: relay.RoleUser, Content: "What now?"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Roll for initiative.", reply)
	assert.Equal(t, "gpt-3.5-turbo", received.Model)
	assert.Equal(t, []relay.Message{{Role: "user", Content: "What now?"}}, received.Messages)
}

func TestOpenAIClientErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   string
	}{
		{
			name:   "api error",
			status: http.StatusTooManyRequests,
			body:   `{"error": {"message": "rate limited", "type": "requests"}}`,
		},
		{
			name:   "no choices",
			status: http.StatusOK,
			body:   `{"id": "chatcmpl-2", "object": "chat.completion", "choices": []}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			client, err := relay.NewOpenAIClient("test-key", srv.URL, discardLogger())
			require.NoError(t, err)

			_, err = client.Chat(context.Background(), "gpt-3.5-turbo", []relay.Message{{Role: "user", Content: "Hi"}})
			assert.Error(t, err)
		})
	}
}

func TestNewOpenAIClientRequiresKey(t *testing.T) {
	t.Parallel()

	_, err := relay.NewOpenAIClient("", "", discardLogger())
	assert.Error(t, err)
}
