package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/edgard/charsheet/internal/sheet"
)

// ErrNotFound is returned when no character matches the requested id.
var ErrNotFound = errors.New("character not found")

// CharacterRepository persists character sheets.
type CharacterRepository interface {
	// CreateCharacter inserts c and returns the stored character with its id.
	CreateCharacter(ctx context.Context, c *sheet.Character) (*sheet.Character, error)

	// GetCharacter returns ErrNotFound when id does not exist.
	GetCharacter(ctx context.Context, id int64) (*sheet.Character, error)

	// ListCharacters returns at most limit characters after skipping skip,
	// in insertion order. Out-of-range windows yield an empty slice.
	ListCharacters(ctx context.Context, skip, limit int) ([]*sheet.Character, error)

	// UpdateCharacter replaces every mutable field of the character with the
	// values in c. Returns ErrNotFound when id does not exist.
	UpdateCharacter(ctx context.Context, id int64, c *sheet.Character) (*sheet.Character, error)

	// DeleteCharacter hard-deletes the character and reports whether a row
	// was removed.
	DeleteCharacter(ctx context.Context, id int64) (bool, error)
}

// MessageStore is the append-only chat history.
type MessageStore interface {
	AddChatMessage(ctx context.Context, from, to, content string) (*ChatMessage, error)
	ListChatHistory(ctx context.Context) ([]*ChatMessage, error)
}

// Store groups every database operation used by the service.
type Store interface {
	CharacterRepository
	MessageStore

	// Ping checks the database connection.
	Ping(ctx context.Context) error

	// RunSQLMaintenance compacts the database file.
	RunSQLMaintenance(ctx context.Context) error
}

// sqlxStore implements Store using sqlx.
type sqlxStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStore creates a Store backed by db. A nil logger discards output.
func NewStore(db *sqlx.DB, logger *slog.Logger) Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &sqlxStore{
		db:     db,
		logger: logger.With("component", "store"),
	}
}

func (s *sqlxStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// inTx runs fn inside a transaction owned by a single operation. The
// transaction is committed when fn succeeds and rolled back on every other
// path, including panics unwinding through fn.
func (s *sqlxStore) inTx(ctx context.Context, op string, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to begin transaction", "operation", op, "error", err)
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if tx != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				if !errors.Is(rollbackErr, sql.ErrTxDone) {
					s.logger.WarnContext(ctx, "Error rolling back transaction", "operation", op, "error", rollbackErr)
				}
			}
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.ErrorContext(ctx, "Failed to commit transaction", "operation", op, "error", err)
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	tx = nil
	return nil
}

func isContextErr(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}
