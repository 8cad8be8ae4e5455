package sheet

// Wire shapes used while decoding. Pointers distinguish an absent field from
// a zero value so that "required" means present, not non-zero.

type characterPayload struct {
	Basics        *basicsPayload        `json:"basics"        validate:"required"`
	Attributes    *attributesPayload    `json:"attributes"    validate:"required"`
	Combat        *combatPayload        `json:"combat"        validate:"required"`
	Proficiencies *proficienciesPayload `json:"proficiencies" validate:"required"`
	Features      *featuresPayload      `json:"features"      validate:"required"`
	Spellcasting  *spellcastingPayload  `json:"spellcasting"  validate:"required"`
	Equipment     *equipmentPayload     `json:"equipment"     validate:"required"`
	Appearance    *appearancePayload    `json:"appearance"    validate:"required"`
}

type basicsPayload struct {
	Name             *string       `json:"name"             validate:"required"`
	Class            *classPayload `json:"class"            validate:"required"`
	Race             *string       `json:"race"             validate:"required"`
	Background       *string       `json:"background"`
	ExperiencePoints *int          `json:"experiencePoints" validate:"omitempty,min=0"`
	Player           *string       `json:"player"           validate:"required"`
}

type classPayload struct {
	Primary   *string `json:"primary"   validate:"required"`
	Secondary *string `json:"secondary"`
	Level     *int    `json:"level"     validate:"required"`
}

type abilityScorePayload struct {
	Score    *int `json:"score"    validate:"required"`
	Modifier *int `json:"modifier" validate:"required"`
}

type attributesPayload struct {
	Strength     *abilityScorePayload `json:"strength"     validate:"required"`
	Dexterity    *abilityScorePayload `json:"dexterity"    validate:"required"`
	Constitution *abilityScorePayload `json:"constitution" validate:"required"`
	Intelligence *abilityScorePayload `json:"intelligence" validate:"required"`
	Wisdom       *abilityScorePayload `json:"wisdom"       validate:"required"`
	Charisma     *abilityScorePayload `json:"charisma"     validate:"required"`
}

type hitPointsPayload struct {
	Maximum   *int `json:"maximum"   validate:"required"`
	Current   *int `json:"current"`
	Temporary *int `json:"temporary"`
}

type deathSavesPayload struct {
	Successes *int `json:"successes" validate:"required"`
	Failures  *int `json:"failures"  validate:"required"`
}

type combatPayload struct {
	ArmorClass *int               `json:"armorClass" validate:"required"`
	Initiative *int               `json:"initiative" validate:"required"`
	HitPoints  *hitPointsPayload  `json:"hitPoints"  validate:"required"`
	HitDice    *string            `json:"hitDice"    validate:"required"`
	DeathSaves *deathSavesPayload `json:"deathSaves" validate:"required"`
}

type skillPayload struct {
	Name     *string `json:"name"     validate:"required"`
	Ability  *string `json:"ability"  validate:"required"`
	Modifier *int    `json:"modifier" validate:"required"`
}

type proficienciesPayload struct {
	Armor     []*string       `json:"armor"     validate:"required,dive,required"`
	Weapons   []*string       `json:"weapons"   validate:"required,dive,required"`
	Languages []*string       `json:"languages" validate:"required,dive,required"`
	Skills    []*skillPayload `json:"skills"    validate:"required,dive,required"`
}

type featuresPayload struct {
	Racial map[string]*string   `json:"racial" validate:"required,dive,required"`
	Class  map[string][]*string `json:"class"  validate:"required,dive,required,dive,required"`
}

type spellPayload struct {
	Name        *string `json:"name"   validate:"required"`
	Source      *string `json:"source" validate:"required"`
	AttackBonus *int    `json:"attackBonus"`
	Damage      *string `json:"damage"`
	Range       *string `json:"range"`
}

type spellsPayload struct {
	Cantrips []*spellPayload `json:"cantrips" validate:"required,dive,required"`
	Level1   []*spellPayload `json:"level1"   validate:"required,dive,required"`
}

type spellcastingPayload struct {
	Ability     *string        `json:"ability"     validate:"required"`
	SaveDC      *int           `json:"saveDC"      validate:"required"`
	AttackBonus *int           `json:"attackBonus" validate:"required"`
	Spells      *spellsPayload `json:"spells"      validate:"required"`
}

type weaponPayload struct {
	Name        *string `json:"name" validate:"required"`
	AttackBonus *int    `json:"attackBonus"`
	Damage      *string `json:"damage"`
	Properties  *string `json:"properties"`
}

type carriedItemPayload struct {
	Name     *string  `json:"name"     validate:"required"`
	Quantity *int     `json:"quantity" validate:"required"`
	Weight   *float64 `json:"weight"   validate:"required"`
}

type carryWeightPayload struct {
	WeightCarried    *float64 `json:"weightCarried"    validate:"required"`
	WeightEncumbered *float64 `json:"weightEncumbered" validate:"required"`
	PushDragLift     *float64 `json:"pushDragLift"     validate:"required"`
}

type equipmentPayload struct {
	Weapons []*weaponPayload      `json:"weapons" validate:"required,dive,required"`
	Carried []*carriedItemPayload `json:"carried" validate:"required,dive,required"`
	Other   *carryWeightPayload   `json:"other"   validate:"required"`
}

type appearancePayload struct {
	Gender *string `json:"gender" validate:"required"`
	Age    *int    `json:"age"    validate:"required"`
	Size   *string `json:"size"   validate:"required"`
	Height *string `json:"height" validate:"required"`
	Weight *int    `json:"weight" validate:"required"`
	Faith  *string `json:"faith"  validate:"required"`
	Skin   *string `json:"skin"   validate:"required"`
	Eyes   *string `json:"eyes"   validate:"required"`
	Hair   *string `json:"hair"   validate:"required"`
}

// toCharacter must only be called on a payload that passed validation.
func (p *characterPayload) toCharacter() *Character {
	return &Character{
		Basics:        p.Basics.toBasics(),
		Attributes:    p.Attributes.toAttributes(),
		Combat:        p.Combat.toCombat(),
		Proficiencies: p.Proficiencies.toProficiencies(),
		Features:      p.Features.toFeatures(),
		Spellcasting:  p.Spellcasting.toSpellcasting(),
		Equipment:     p.Equipment.toEquipment(),
		Appearance:    p.Appearance.toAppearance(),
	}
}

func (p *basicsPayload) toBasics() Basics {
	b := Basics{
		Name: *p.Name,
		Class: CharacterClass{
			Primary:   *p.Class.Primary,
			Secondary: p.Class.Secondary,
			Level:     *p.Class.Level,
		},
		Race:       *p.Race,
		Background: p.Background,
		Player:     *p.Player,
	}
	if p.ExperiencePoints != nil {
		b.ExperiencePoints = *p.ExperiencePoints
	}
	return b
}

func (p *abilityScorePayload) toScore() AbilityScore {
	return AbilityScore{Score: *p.Score, Modifier: *p.Modifier}
}

func (p *attributesPayload) toAttributes() Attributes {
	return Attributes{
		Strength:     p.Strength.toScore(),
		Dexterity:    p.Dexterity.toScore(),
		Constitution: p.Constitution.toScore(),
		Intelligence: p.Intelligence.toScore(),
		Wisdom:       p.Wisdom.toScore(),
		Charisma:     p.Charisma.toScore(),
	}
}

func (p *combatPayload) toCombat() Combat {
	return Combat{
		ArmorClass: *p.ArmorClass,
		Initiative: *p.Initiative,
		HitPoints: HitPoints{
			Maximum:   *p.HitPoints.Maximum,
			Current:   p.HitPoints.Current,
			Temporary: p.HitPoints.Temporary,
		},
		HitDice: *p.HitDice,
		DeathSaves: DeathSaves{
			Successes: *p.DeathSaves.Successes,
			Failures:  *p.DeathSaves.Failures,
		},
	}
}

func (p *proficienciesPayload) toProficiencies() Proficiencies {
	skills := make([]Skill, 0, len(p.Skills))
	for _, s := range p.Skills {
		skills = append(skills, Skill{Name: *s.Name, Ability: *s.Ability, Modifier: *s.Modifier})
	}
	return Proficiencies{
		Armor:     derefStrings(p.Armor),
		Weapons:   derefStrings(p.Weapons),
		Languages: derefStrings(p.Languages),
		Skills:    skills,
	}
}

func (p *featuresPayload) toFeatures() Features {
	racial := make(map[string]string, len(p.Racial))
	for name, desc := range p.Racial {
		racial[name] = *desc
	}
	class := make(map[string][]string, len(p.Class))
	for name, descs := range p.Class {
		class[name] = derefStrings(descs)
	}
	return Features{Racial: racial, Class: class}
}

func (p *spellPayload) toSpell() Spell {
	return Spell{
		Name:        *p.Name,
		Source:      *p.Source,
		AttackBonus: p.AttackBonus,
		Damage:      p.Damage,
		Range:       p.Range,
	}
}

func toSpells(in []*spellPayload) []Spell {
	out := make([]Spell, 0, len(in))
	for _, s := range in {
		out = append(out, s.toSpell())
	}
	return out
}

func (p *spellcastingPayload) toSpellcasting() Spellcasting {
	return Spellcasting{
		Ability:     *p.Ability,
		SaveDC:      *p.SaveDC,
		AttackBonus: *p.AttackBonus,
		Spells: Spells{
			Cantrips: toSpells(p.Spells.Cantrips),
			Level1:   toSpells(p.Spells.Level1),
		},
	}
}

func (p *equipmentPayload) toEquipment() Equipment {
	weapons := make([]Weapon, 0, len(p.Weapons))
	for _, w := range p.Weapons {
		weapons = append(weapons, Weapon{
			Name:        *w.Name,
			AttackBonus: w.AttackBonus,
			Damage:      w.Damage,
			Properties:  w.Properties,
		})
	}
	carried := make([]CarriedItem, 0, len(p.Carried))
	for _, c := range p.Carried {
		carried = append(carried, CarriedItem{Name: *c.Name, Quantity: *c.Quantity, Weight: *c.Weight})
	}
	return Equipment{
		Weapons: weapons,
		Carried: carried,
		Other: CarryWeight{
			WeightCarried:    *p.Other.WeightCarried,
			WeightEncumbered: *p.Other.WeightEncumbered,
			PushDragLift:     *p.Other.PushDragLift,
		},
	}
}

func (p *appearancePayload) toAppearance() Appearance {
	return Appearance{
		Gender: *p.Gender,
		Age:    *p.Age,
		Size:   *p.Size,
		Height: *p.Height,
		Weight: *p.Weight,
		Faith:  *p.Faith,
		Skin:   *p.Skin,
		Eyes:   *p.Eyes,
		Hair:   *p.Hair,
	}
}

func derefStrings(in []*string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, *s)
	}
	return out
}
