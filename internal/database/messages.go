package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// AddChatMessage appends a message to the chat history. The timestamp is the
// time of the call in UTC.
func (s *sqlxStore) AddChatMessage(ctx context.Context, from, to, content string) (*ChatMessage, error) {
	msg := &ChatMessage{
		From:      from,
		To:        to,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}

	query := `
		INSERT INTO chat_messages (message_from, message_to, content, timestamp)
		VALUES (:message_from, :message_to, :content, :timestamp)
	`

	err := s.inTx(ctx, "add_chat_message", func(tx *sqlx.Tx) error {
		result, err := tx.NamedExecContext(ctx, query, msg)
		if err != nil {
			s.logger.ErrorContext(ctx, "Error saving chat message", "from", from, "to", to, "error", err)
			return fmt.Errorf("failed to save chat message (from %q, to %q): %w", from, to, err)
		}

		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to read id of saved chat message: %w", err)
		}
		msg.ID = id
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.DebugContext(ctx, "Chat message saved", "message_id", msg.ID, "from", from, "to", to)
	return msg, nil
}

// ListChatHistory returns every stored message, oldest first.
func (s *sqlxStore) ListChatHistory(ctx context.Context) ([]*ChatMessage, error) {
	messages := []*ChatMessage{}
	query := `SELECT id, message_from, message_to, content, timestamp FROM chat_messages ORDER BY id`

	err := s.inTx(ctx, "list_chat_history", func(tx *sqlx.Tx) error {
		return tx.SelectContext(ctx, &messages, query)
	})

	switch {
	case isContextErr(err):
		s.logger.WarnContext(ctx, "Context timeout or cancellation while fetching chat history", "error", err)
		return nil, err
	case err != nil:
		s.logger.ErrorContext(ctx, "Error getting chat history", "error", err)
		return nil, fmt.Errorf("failed to get chat history: %w", err)
	}

	s.logger.DebugContext(ctx, "Fetched chat history", "count", len(messages))
	return messages, nil
}
