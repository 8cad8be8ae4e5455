package database_test

import (
	"errors"
	"fmt"

	"github.com/edgard/charsheet/internal/database"
	"github.com/edgard/charsheet/internal/sheet"
	"github.com/edgard/charsheet/internal/testutil"
)

func (s *storeSuite) TestCreateThenGetKeepsBasics() {
	input := testutil.Character("Aramil")

	created, err := s.store.CreateCharacter(s.ctx, input)
	s.Require().NoError(err)
	s.NotZero(created.ID)
	s.False(created.CreatedAt.IsZero())

	got, err := s.store.GetCharacter(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal(input.Basics, got.Basics)
}

func (s *storeSuite) TestCreateReconstructsNestedGroups() {
	input := testutil.Character("Aramil")

	created, err := s.store.CreateCharacter(s.ctx, input)
	s.Require().NoError(err)

	got, err := s.store.GetCharacter(s.ctx, created.ID)
	s.Require().NoError(err)

	s.Equal(input.Attributes, got.Attributes)
	s.Equal(input.Combat, got.Combat)
	s.Equal(input.Proficiencies, got.Proficiencies)
	s.Equal(input.Features, got.Features)
	s.Equal(input.Spellcasting, got.Spellcasting)
	s.Equal(input.Equipment, got.Equipment)
	s.Equal(input.Appearance, got.Appearance)
}

func (s *storeSuite) TestCreateStoresEmptyCollections() {
	input := testutil.Character("Bare")
	input.Proficiencies.Skills = nil
	input.Features.Racial = nil

	created, err := s.store.CreateCharacter(s.ctx, input)
	s.Require().NoError(err)

	s.NotNil(created.Proficiencies.Skills)
	s.Empty(created.Proficiencies.Skills)
	s.NotNil(created.Features.Racial)
}

func (s *storeSuite) TestGetIsRepeatable() {
	created, err := s.store.CreateCharacter(s.ctx, testutil.Character("Aramil"))
	s.Require().NoError(err)

	first, err := s.store.GetCharacter(s.ctx, created.ID)
	s.Require().NoError(err)
	second, err := s.store.GetCharacter(s.ctx, created.ID)
	s.Require().NoError(err)

	s.Equal(first, second)
}

func (s *storeSuite) TestGetMissing() {
	got, err := s.store.GetCharacter(s.ctx, 4242)
	s.Nil(got)
	s.True(errors.Is(err, database.ErrNotFound))
}

func (s *storeSuite) TestUpdateReplacesEveryField() {
	created, err := s.store.CreateCharacter(s.ctx, testutil.Character("Aramil"))
	s.Require().NoError(err)

	replacement := testutil.Character("Aramil Galanodel")
	replacement.Basics.Class.Level = 4
	replacement.Basics.Background = nil
	replacement.Basics.ExperiencePoints = 2700
	replacement.Combat.HitPoints.Maximum = 22
	replacement.Proficiencies.Languages = []string{"Common"}
	replacement.Features.Class = map[string][]string{"Arcane Tradition": {"School of Evocation"}}
	replacement.Appearance.Hair = "White"

	updated, err := s.store.UpdateCharacter(s.ctx, created.ID, replacement)
	s.Require().NoError(err)
	s.Equal(created.ID, updated.ID)

	got, err := s.store.GetCharacter(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal(replacement.Basics, got.Basics)
	s.Nil(got.Basics.Background)
	s.Equal(22, got.Combat.HitPoints.Maximum)
	s.Equal([]string{"Common"}, got.Proficiencies.Languages)
	s.Equal(replacement.Features, got.Features)
	s.Equal("White", got.Appearance.Hair)
	s.True(got.CreatedAt.Equal(created.CreatedAt))
}

func (s *storeSuite) TestUpdateMissing() {
	updated, err := s.store.UpdateCharacter(s.ctx, 999, testutil.Character("Ghost"))
	s.Nil(updated)
	s.ErrorIs(err, database.ErrNotFound)
	s.Equal(0, s.countRows("characters"))
}

func (s *storeSuite) TestDeleteReportsOnlyFirstRemoval() {
	created, err := s.store.CreateCharacter(s.ctx, testutil.Character("Aramil"))
	s.Require().NoError(err)

	deleted, err := s.store.DeleteCharacter(s.ctx, created.ID)
	s.Require().NoError(err)
	s.True(deleted)

	deleted, err = s.store.DeleteCharacter(s.ctx, created.ID)
	s.Require().NoError(err)
	s.False(deleted)
}

func (s *storeSuite) TestListPaging() {
	for i := range 15 {
		_, err := s.store.CreateCharacter(s.ctx, testutil.Character(fmt.Sprintf("Hero %02d", i)))
		s.Require().NoError(err)
	}

	firstPage, err := s.store.ListCharacters(s.ctx, 0, 10)
	s.Require().NoError(err)
	s.Len(firstPage, 10)
	s.Equal("Hero 00", firstPage[0].Basics.Name)

	secondPage, err := s.store.ListCharacters(s.ctx, 10, 10)
	s.Require().NoError(err)
	s.Len(secondPage, 5)
	s.Equal("Hero 10", secondPage[0].Basics.Name)

	beyond, err := s.store.ListCharacters(s.ctx, 100, 10)
	s.Require().NoError(err)
	s.NotNil(beyond)
	s.Empty(beyond)
}

func (s *storeSuite) TestListDefaults() {
	for i := range 12 {
		_, err := s.store.CreateCharacter(s.ctx, testutil.Character(fmt.Sprintf("Hero %02d", i)))
		s.Require().NoError(err)
	}

	got, err := s.store.ListCharacters(s.ctx, -3, 0)
	s.Require().NoError(err)
	s.Len(got, database.DefaultListLimit)
	s.Equal("Hero 00", got[0].Basics.Name)
}

func (s *storeSuite) TestAramilLifecycle() {
	input := testutil.Character("Aramil")
	input.Basics.Race = "Elf"
	input.Basics.Class = sheet.CharacterClass{Primary: "Wizard", Level: 3}
	input.Basics.ExperiencePoints = 900

	created, err := s.store.CreateCharacter(s.ctx, input)
	s.Require().NoError(err)
	s.NotZero(created.ID)
	s.Equal("Aramil", created.Basics.Name)
	s.Equal(3, created.Basics.Class.Level)

	deleted, err := s.store.DeleteCharacter(s.ctx, created.ID)
	s.Require().NoError(err)
	s.True(deleted)

	_, err = s.store.GetCharacter(s.ctx, created.ID)
	s.ErrorIs(err, database.ErrNotFound)
}

func (s *storeSuite) TestIDsAreNotReused() {
	first, err := s.store.CreateCharacter(s.ctx, testutil.Character("First"))
	s.Require().NoError(err)

	_, err = s.store.DeleteCharacter(s.ctx, first.ID)
	s.Require().NoError(err)

	second, err := s.store.CreateCharacter(s.ctx, testutil.Character("Second"))
	s.Require().NoError(err)
	s.Greater(second.ID, first.ID)
}

func (s *storeSuite) TestBasicsAreColumns() {
	created, err := s.store.CreateCharacter(s.ctx, testutil.Character("Aramil"))
	s.Require().NoError(err)

	var row struct {
		Name    string `db:"name"`
		Primary string `db:"class_primary"`
		Level   int    `db:"level"`
		XP      int    `db:"experience_points"`
	}
	s.Require().NoError(s.db.Get(&row,
		`SELECT name, class_primary, level, experience_points FROM characters WHERE id = ?`, created.ID))
	s.Equal("Aramil", row.Name)
	s.Equal("Wizard", row.Primary)
	s.Equal(3, row.Level)
	s.Equal(900, row.XP)
}
