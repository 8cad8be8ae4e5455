package database

import (
	"gorm.io/datatypes"

	"github.com/edgard/charsheet/internal/sheet"
)

const characterColumns = `id, name, class_primary, class_secondary, level, race, background,
	experience_points, player, attributes, combat, proficiencies, features,
	spellcasting, equipment, appearance, created_at, updated_at`

// toRow flattens c into its storage row. ID and timestamps are copied as-is;
// the caller decides which of them the statement writes.
func toRow(c *sheet.Character) characterRow {
	return characterRow{
		ID:               c.ID,
		Name:             c.Basics.Name,
		ClassPrimary:     c.Basics.Class.Primary,
		ClassSecondary:   c.Basics.Class.Secondary,
		Level:            c.Basics.Class.Level,
		Race:             c.Basics.Race,
		Background:       c.Basics.Background,
		ExperiencePoints: c.Basics.ExperiencePoints,
		Player:           c.Basics.Player,

		Attributes:    datatypes.NewJSONType(c.Attributes),
		Combat:        datatypes.NewJSONType(c.Combat),
		Proficiencies: datatypes.NewJSONType(normalizeProficiencies(c.Proficiencies)),
		Features:      datatypes.NewJSONType(normalizeFeatures(c.Features)),
		Spellcasting:  datatypes.NewJSONType(normalizeSpellcasting(c.Spellcasting)),
		Equipment:     datatypes.NewJSONType(normalizeEquipment(c.Equipment)),
		Appearance:    datatypes.NewJSONType(c.Appearance),

		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// toCharacter rebuilds the full nested character from a stored row.
func (r characterRow) toCharacter() *sheet.Character {
	return &sheet.Character{
		ID:        r.ID,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
		Basics: sheet.Basics{
			Name: r.Name,
			Class: sheet.CharacterClass{
				Primary:   r.ClassPrimary,
				Secondary: r.ClassSecondary,
				Level:     r.Level,
			},
			Race:             r.Race,
			Background:       r.Background,
			ExperiencePoints: r.ExperiencePoints,
			Player:           r.Player,
		},
		Attributes:    r.Attributes.Data(),
		Combat:        r.Combat.Data(),
		Proficiencies: r.Proficiencies.Data(),
		Features:      r.Features.Data(),
		Spellcasting:  r.Spellcasting.Data(),
		Equipment:     r.Equipment.Data(),
		Appearance:    r.Appearance.Data(),
	}
}

// The normalize helpers store empty collections as [] and {} instead of null
// so every blob decodes back into the same shape it was validated in.

func normalizeProficiencies(p sheet.Proficiencies) sheet.Proficiencies {
	p.Armor = emptyIfNil(p.Armor)
	p.Weapons = emptyIfNil(p.Weapons)
	p.Languages = emptyIfNil(p.Languages)
	p.Skills = emptyIfNil(p.Skills)
	return p
}

func normalizeFeatures(f sheet.Features) sheet.Features {
	if f.Racial == nil {
		f.Racial = map[string]string{}
	}
	if f.Class == nil {
		f.Class = map[string][]string{}
	}
	return f
}

func normalizeSpellcasting(s sheet.Spellcasting) sheet.Spellcasting {
	s.Spells.Cantrips = emptyIfNil(s.Spells.Cantrips)
	s.Spells.Level1 = emptyIfNil(s.Spells.Level1)
	return s
}

func normalizeEquipment(e sheet.Equipment) sheet.Equipment {
	e.Weapons = emptyIfNil(e.Weapons)
	e.Carried = emptyIfNil(e.Carried)
	return e
}

func emptyIfNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
