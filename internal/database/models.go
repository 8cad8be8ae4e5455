package database

import (
	"time"

	"gorm.io/datatypes"

	"github.com/edgard/charsheet/internal/sheet"
)

// characterRow is the storage shape of a character: basics as columns, every
// other group as an independent JSON blob. Blobs carry no version tag.
type characterRow struct {
	ID int64 `db:"id"`

	Name             string  `db:"name"`
	ClassPrimary     string  `db:"class_primary"`
	ClassSecondary   *string `db:"class_secondary"`
	Level            int     `db:"level"`
	Race             string  `db:"race"`
	Background       *string `db:"background"`
	ExperiencePoints int     `db:"experience_points"`
	Player           string  `db:"player"`

	Attributes    datatypes.JSONType[sheet.Attributes]    `db:"attributes"`
	Combat        datatypes.JSONType[sheet.Combat]        `db:"combat"`
	Proficiencies datatypes.JSONType[sheet.Proficiencies] `db:"proficiencies"`
	Features      datatypes.JSONType[sheet.Features]      `db:"features"`
	Spellcasting  datatypes.JSONType[sheet.Spellcasting]  `db:"spellcasting"`
	Equipment     datatypes.JSONType[sheet.Equipment]     `db:"equipment"`
	Appearance    datatypes.JSONType[sheet.Appearance]    `db:"appearance"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// ChatMessage is one relayed or recorded chat line. It is not linked to any
// character.
type ChatMessage struct {
	ID        int64     `db:"id"           json:"id"`
	From      string    `db:"message_from" json:"from"`
	To        string    `db:"message_to"   json:"to"`
	Content   string    `db:"content"      json:"content"`
	Timestamp time.Time `db:"timestamp"    json:"timestamp"`
}
