package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/edgard/charsheet/internal/sheet"
)

// Default window for ListCharacters.
const (
	DefaultListSkip  = 0
	DefaultListLimit = 10
)

func (s *sqlxStore) CreateCharacter(ctx context.Context, c *sheet.Character) (*sheet.Character, error) {
	if c == nil {
		return nil, errors.New("cannot create nil character")
	}

	now := time.Now().UTC()
	row := toRow(c)
	row.CreatedAt = now
	row.UpdatedAt = now

	query := `
		INSERT INTO characters (
			name, class_primary, class_secondary, level, race, background,
			experience_points, player, attributes, combat, proficiencies,
			features, spellcasting, equipment, appearance, created_at, updated_at
		) VALUES (
			:name, :class_primary, :class_secondary, :level, :race, :background,
			:experience_points, :player, :attributes, :combat, :proficiencies,
			:features, :spellcasting, :equipment, :appearance, :created_at, :updated_at
		)
	`

	var created *sheet.Character
	err := s.inTx(ctx, "create_character", func(tx *sqlx.Tx) error {
		result, err := tx.NamedExecContext(ctx, query, row)
		if err != nil {
			s.logger.ErrorContext(ctx, "Error inserting character", "name", row.Name, "error", err)
			return fmt.Errorf("failed to insert character %q: %w", row.Name, err)
		}

		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to read id of inserted character: %w", err)
		}

		created, err = s.selectCharacter(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.DebugContext(ctx, "Character created", "character_id", created.ID, "name", created.Basics.Name)
	return created, nil
}

func (s *sqlxStore) GetCharacter(ctx context.Context, id int64) (*sheet.Character, error) {
	var found *sheet.Character
	err := s.inTx(ctx, "get_character", func(tx *sqlx.Tx) error {
		var err error
		found, err = s.selectCharacter(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

func (s *sqlxStore) ListCharacters(ctx context.Context, skip, limit int) ([]*sheet.Character, error) {
	if skip < 0 {
		skip = DefaultListSkip
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}

	query := `SELECT ` + characterColumns + ` FROM characters ORDER BY id LIMIT ? OFFSET ?`

	var rows []characterRow
	err := s.inTx(ctx, "list_characters", func(tx *sqlx.Tx) error {
		return tx.SelectContext(ctx, &rows, query, limit, skip)
	})

	switch {
	case isContextErr(err):
		s.logger.WarnContext(ctx, "Context timeout or cancellation while listing characters", "error", err)
		return nil, err
	case err != nil:
		s.logger.ErrorContext(ctx, "Error listing characters", "skip", skip, "limit", limit, "error", err)
		return nil, fmt.Errorf("failed to list characters (skip %d, limit %d): %w", skip, limit, err)
	}

	characters := make([]*sheet.Character, 0, len(rows))
	for _, r := range rows {
		characters = append(characters, r.toCharacter())
	}

	s.logger.DebugContext(ctx, "Listed characters", "skip", skip, "limit", limit, "count", len(characters))
	return characters, nil
}

func (s *sqlxStore) UpdateCharacter(ctx context.Context, id int64, c *sheet.Character) (*sheet.Character, error) {
	if c == nil {
		return nil, errors.New("cannot update character with nil data")
	}

	row := toRow(c)
	row.ID = id
	row.UpdatedAt = time.Now().UTC()

	// created_at is the only column an update leaves alone.
	query := `
		UPDATE characters SET
			name = :name,
			class_primary = :class_primary,
			class_secondary = :class_secondary,
			level = :level,
			race = :race,
			background = :background,
			experience_points = :experience_points,
			player = :player,
			attributes = :attributes,
			combat = :combat,
			proficiencies = :proficiencies,
			features = :features,
			spellcasting = :spellcasting,
			equipment = :equipment,
			appearance = :appearance,
			updated_at = :updated_at
		WHERE id = :id
	`

	var updated *sheet.Character
	err := s.inTx(ctx, "update_character", func(tx *sqlx.Tx) error {
		result, err := tx.NamedExecContext(ctx, query, row)
		if err != nil {
			s.logger.ErrorContext(ctx, "Error updating character", "character_id", id, "error", err)
			return fmt.Errorf("failed to update character %d: %w", id, err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read affected rows for character %d: %w", id, err)
		}
		if affected == 0 {
			return ErrNotFound
		}

		updated, err = s.selectCharacter(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.DebugContext(ctx, "Character updated", "character_id", id)
	return updated, nil
}

func (s *sqlxStore) DeleteCharacter(ctx context.Context, id int64) (bool, error) {
	var deleted bool
	err := s.inTx(ctx, "delete_character", func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, `DELETE FROM characters WHERE id = ?`, id)
		if err != nil {
			s.logger.ErrorContext(ctx, "Error deleting character", "character_id", id, "error", err)
			return fmt.Errorf("failed to delete character %d: %w", id, err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read affected rows for character %d: %w", id, err)
		}
		deleted = affected > 0
		return nil
	})
	if err != nil {
		return false, err
	}

	s.logger.DebugContext(ctx, "Character delete finished", "character_id", id, "deleted", deleted)
	return deleted, nil
}

func (s *sqlxStore) selectCharacter(ctx context.Context, tx *sqlx.Tx, id int64) (*sheet.Character, error) {
	var row characterRow
	err := tx.GetContext(ctx, &row, `SELECT `+characterColumns+` FROM characters WHERE id = ?`, id)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		s.logger.DebugContext(ctx, "No character found", "character_id", id)
		return nil, ErrNotFound
	case isContextErr(err):
		s.logger.WarnContext(ctx, "Context timeout or cancellation while fetching character",
			"character_id", id, "error", err)
		return nil, err
	case err != nil:
		s.logger.ErrorContext(ctx, "Error getting character by ID", "character_id", id, "error", err)
		return nil, fmt.Errorf("failed to get character %d: %w", id, err)
	}

	return row.toCharacter(), nil
}
