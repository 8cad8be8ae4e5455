// Package testutil provides character fixtures shared by package tests.
package testutil

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/edgard/charsheet/internal/sheet"
)

// CharacterPayload returns a fresh, complete character document for name.
// Callers may mutate the result freely.
func CharacterPayload(name string) map[string]any {
	return map[string]any{
		"basics": map[string]any{
			"name": name,
			"class": map[string]any{
				"primary":   "Wizard",
				"secondary": nil,
				"level":     3,
			},
			"race":             "Elf",
			"background":       "Sage",
			"experiencePoints": 900,
			"player":           "Dana",
		},
		"attributes": map[string]any{
			"strength":     map[string]any{"score": 8, "modifier": -1},
			"dexterity":    map[string]any{"score": 16, "modifier": 3},
			"constitution": map[string]any{"score": 12, "modifier": 1},
			"intelligence": map[string]any{"score": 17, "modifier": 3},
			"wisdom":       map[string]any{"score": 13, "modifier": 1},
			"charisma":     map[string]any{"score": 10, "modifier": 0},
		},
		"combat": map[string]any{
			"armorClass": 13,
			"initiative": 3,
			"hitPoints": map[string]any{
				"maximum":   17,
				"current":   14,
				"temporary": nil,
			},
			"hitDice": "3d6",
			"deathSaves": map[string]any{
				"successes": 0,
				"failures":  0,
			},
		},
		"proficiencies": map[string]any{
			"armor":     []any{},
			"weapons":   []any{"Daggers", "Quarterstaffs", "Longswords"},
			"languages": []any{"Common", "Elvish", "Draconic"},
			"skills": []any{
				map[string]any{"name": "Arcana", "ability": "intelligence", "modifier": 5},
				map[string]any{"name": "History", "ability": "intelligence", "modifier": 5},
			},
		},
		"features": map[string]any{
			"racial": map[string]any{
				"Darkvision": "See in dim light within 60 feet as if it were bright light.",
				"Fey Ancestry": "Advantage on saving throws against being charmed.",
			},
			"class": map[string]any{
				"Arcane Recovery": []any{"Recover spell slots on a short rest."},
			},
		},
		"spellcasting": map[string]any{
			"ability":     "intelligence",
			"saveDC":      13,
			"attackBonus": 5,
			"spells": map[string]any{
				"cantrips": []any{
					map[string]any{"name": "Fire Bolt", "source": "Wizard", "attackBonus": 5, "damage": "1d10 fire", "range": "120 ft"},
					map[string]any{"name": "Mage Hand", "source": "Wizard"},
				},
				"level1": []any{
					map[string]any{"name": "Magic Missile", "source": "Wizard", "damage": "3x 1d4+1 force", "range": "120 ft"},
				},
			},
		},
		"equipment": map[string]any{
			"weapons": []any{
				map[string]any{"name": "Quarterstaff", "attackBonus": 1, "damage": "1d6 bludgeoning", "properties": "Versatile (1d8)"},
			},
			"carried": []any{
				map[string]any{"name": "Spellbook", "quantity": 1, "weight": 3},
				map[string]any{"name": "Rations", "quantity": 5, "weight": 2.0},
			},
			"other": map[string]any{
				"weightCarried":    18.5,
				"weightEncumbered": 40,
				"pushDragLift":     240,
			},
		},
		"appearance": map[string]any{
			"gender": "Male",
			"age":    112,
			"size":   "Medium",
			"height": "5'9\"",
			"weight": 130,
			"faith":  "Corellon",
			"skin":   "Pale",
			"eyes":   "Green",
			"hair":   "Silver",
		},
	}
}

// CharacterDocument returns CharacterPayload(name) encoded as JSON.
func CharacterDocument(name string) []byte {
	data, err := json.Marshal(CharacterPayload(name))
	if err != nil {
		panic(fmt.Sprintf("testutil: marshal fixture: %v", err))
	}
	return data
}

// Character returns CharacterPayload(name) parsed into a typed character.
func Character(name string) *sheet.Character {
	c, err := sheet.FromMap(CharacterPayload(name))
	if err != nil {
		panic(fmt.Sprintf("testutil: fixture does not validate: %v", err))
	}
	return c
}

// Delete removes the value at a dotted path such as "combat.hitPoints.maximum".
func Delete(payload map[string]any, path string) {
	parent, key := walk(payload, path)
	delete(parent, key)
}

// Set replaces the value at a dotted path.
func Set(payload map[string]any, path string, value any) {
	parent, key := walk(payload, path)
	parent[key] = value
}

func walk(payload map[string]any, path string) (map[string]any, string) {
	parts := strings.Split(path, ".")
	current := payload
	for _, p := range parts[:len(parts)-1] {
		next, ok := current[p].(map[string]any)
		if !ok {
			panic(fmt.Sprintf("testutil: %q is not an object in path %q", p, path))
		}
		current = next
	}
	return current, parts[len(parts)-1]
}
