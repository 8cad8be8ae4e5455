// Package sheet defines the character sheet model and turns loosely typed
// payloads into fully typed characters.
package sheet

import "time"

// Character is a complete character sheet. ID, CreatedAt and UpdatedAt are
// assigned by storage and ignored on input.
type Character struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Basics        Basics        `json:"basics"`
	Attributes    Attributes    `json:"attributes"`
	Combat        Combat        `json:"combat"`
	Proficiencies Proficiencies `json:"proficiencies"`
	Features      Features      `json:"features"`
	Spellcasting  Spellcasting  `json:"spellcasting"`
	Equipment     Equipment     `json:"equipment"`
	Appearance    Appearance    `json:"appearance"`
}

// Basics holds the identifying fields of a character. These are the only
// fields stored as individual columns.
type Basics struct {
	Name             string         `json:"name"`
	Class            CharacterClass `json:"class"`
	Race             string         `json:"race"`
	Background       *string        `json:"background"`
	ExperiencePoints int            `json:"experiencePoints"`
	Player           string         `json:"player"`
}

// CharacterClass is the primary class, an optional multiclass and the level.
type CharacterClass struct {
	Primary   string  `json:"primary"`
	Secondary *string `json:"secondary"`
	Level     int     `json:"level"`
}

// AbilityScore pairs a raw score with its modifier. The two are not checked
// against each other.
type AbilityScore struct {
	Score    int `json:"score"`
	Modifier int `json:"modifier"`
}

// Attributes are the six ability scores.
type Attributes struct {
	Strength     AbilityScore `json:"strength"`
	Dexterity    AbilityScore `json:"dexterity"`
	Constitution AbilityScore `json:"constitution"`
	Intelligence AbilityScore `json:"intelligence"`
	Wisdom       AbilityScore `json:"wisdom"`
	Charisma     AbilityScore `json:"charisma"`
}

type HitPoints struct {
	Maximum   int  `json:"maximum"`
	Current   *int `json:"current"`
	Temporary *int `json:"temporary"`
}

type DeathSaves struct {
	Successes int `json:"successes"`
	Failures  int `json:"failures"`
}

type Combat struct {
	ArmorClass int        `json:"armorClass"`
	Initiative int        `json:"initiative"`
	HitPoints  HitPoints  `json:"hitPoints"`
	HitDice    string     `json:"hitDice"`
	DeathSaves DeathSaves `json:"deathSaves"`
}

// Skill is a proficient skill with its governing ability.
type Skill struct {
	Name     string `json:"name"`
	Ability  string `json:"ability"`
	Modifier int    `json:"modifier"`
}

type Proficiencies struct {
	Armor     []string `json:"armor"`
	Weapons   []string `json:"weapons"`
	Languages []string `json:"languages"`
	Skills    []Skill  `json:"skills"`
}

// Features maps racial feature names to a description and class feature
// names to one or more descriptions.
type Features struct {
	Racial map[string]string   `json:"racial"`
	Class  map[string][]string `json:"class"`
}

type Spell struct {
	Name        string  `json:"name"`
	Source      string  `json:"source"`
	AttackBonus *int    `json:"attackBonus"`
	Damage      *string `json:"damage"`
	Range       *string `json:"range"`
}

type Spells struct {
	Cantrips []Spell `json:"cantrips"`
	Level1   []Spell `json:"level1"`
}

type Spellcasting struct {
	Ability     string `json:"ability"`
	SaveDC      int    `json:"saveDC"`
	AttackBonus int    `json:"attackBonus"`
	Spells      Spells `json:"spells"`
}

type Weapon struct {
	Name        string  `json:"name"`
	AttackBonus *int    `json:"attackBonus"`
	Damage      *string `json:"damage"`
	Properties  *string `json:"properties"`
}

type CarriedItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Weight   float64 `json:"weight"`
}

// CarryWeight holds the aggregate carry-weight figures.
type CarryWeight struct {
	WeightCarried    float64 `json:"weightCarried"`
	WeightEncumbered float64 `json:"weightEncumbered"`
	PushDragLift     float64 `json:"pushDragLift"`
}

type Equipment struct {
	Weapons []Weapon      `json:"weapons"`
	Carried []CarriedItem `json:"carried"`
	Other   CarryWeight   `json:"other"`
}

type Appearance struct {
	Gender string `json:"gender"`
	Age    int    `json:"age"`
	Size   string `json:"size"`
	Height string `json:"height"`
	Weight int    `json:"weight"`
	Faith  string `json:"faith"`
	Skin   string `json:"skin"`
	Eyes   string `json:"eyes"`
	Hair   string `json:"hair"`
}
