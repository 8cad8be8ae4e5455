// Package relay forwards chat conversations to a hosted language model and
// turns every failure into a RelayError the caller can show to a user.
package relay

//go:generate mockgen -destination=mock/mock_relay.go -package=relaymock github.com/edgard/charsheet/internal/relay Client,HistoryRecorder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/edgard/charsheet/internal/database"
)

// Roles accepted in a conversation.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// HistoryUser labels the human side of recorded relay traffic.
const HistoryUser = "user"

// Message is one turn of a conversation in OpenAI chat format.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client sends a conversation to a model and returns the reply text.
type Client interface {
	Chat(ctx context.Context, model string, messages []Message) (string, error)
}

// HistoryRecorder stores relayed prompts and replies.
type HistoryRecorder interface {
	AddChatMessage(ctx context.Context, from, to, content string) (*database.ChatMessage, error)
}

// Causes wrapped by RelayError that are not upstream failures.
var (
	// ErrNotConfigured means no backend is set up.
	ErrNotConfigured = errors.New("chat relay is not configured")

	// ErrInvalidConversation means the caller sent an unusable message list.
	ErrInvalidConversation = errors.New("invalid conversation")
)

// RelayError reports a failed relay call. Its message is safe to show to users.
type RelayError struct {
	Model string
	Err   error
}

func (e *RelayError) Error() string {
	return fmt.Sprintf("An error occurred: %v", e.Err)
}

func (e *RelayError) Unwrap() error {
	return e.Err
}

// Service relays conversations through a Client. It performs exactly one
// round trip per call: no retries and no streaming.
type Service struct {
	client       Client
	history      HistoryRecorder
	defaultModel string
	logger       *slog.Logger
}

// NewService builds a relay service. client may be nil, in which case every
// call fails with ErrNotConfigured. history may be nil to skip recording.
func NewService(client Client, history HistoryRecorder, defaultModel string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{
		client:       client,
		history:      history,
		defaultModel: defaultModel,
		logger:       logger.With("component", "relay"),
	}
}

// Relay sends messages to model (or the default model when empty) and returns
// the reply. Any failure is returned as *RelayError.
func (s *Service) Relay(ctx context.Context, model string, messages []Message) (string, error) {
	if strings.TrimSpace(model) == "" {
		model = s.defaultModel
	}

	if s.client == nil {
		return "", &RelayError{Model: model, Err: ErrNotConfigured}
	}
	if err := checkMessages(messages); err != nil {
		return "", &RelayError{Model: model, Err: err}
	}

	s.logger.DebugContext(ctx, "Relaying chat", "model", model, "message_count", len(messages))

	reply, err := s.client.Chat(ctx, model, messages)
	if err != nil {
		s.logger.ErrorContext(ctx, "Chat relay failed", "model", model, "error", err)
		return "", &RelayError{Model: model, Err: err}
	}

	s.record(ctx, model, messages[len(messages)-1].Content, reply)
	return reply, nil
}

// record stores the last prompt and the reply. Failures are logged only: the
// reply has already been produced.
func (s *Service) record(ctx context.Context, model, prompt, reply string) {
	if s.history == nil {
		return
	}
	if _, err := s.history.AddChatMessage(ctx, HistoryUser, model, prompt); err != nil {
		s.logger.WarnContext(ctx, "Failed to record relayed prompt", "model", model, "error", err)
		return
	}
	if _, err := s.history.AddChatMessage(ctx, model, HistoryUser, reply); err != nil {
		s.logger.WarnContext(ctx, "Failed to record relayed reply", "model", model, "error", err)
	}
}

func checkMessages(messages []Message) error {
	if len(messages) == 0 {
		return fmt.Errorf("%w: at least one message is required", ErrInvalidConversation)
	}
	for i, m := range messages {
		switch m.Role {
		case RoleSystem, RoleUser, RoleAssistant:
		default:
			return fmt.Errorf("%w: messages[%d]: unsupported role %q", ErrInvalidConversation, i, m.Role)
		}
	}
	return nil
}
