// Package dnd5e implements the D&D 5e entities
package dnd5e

// Character represents a playable character or NPC sheet.
// NOTE: This is a data-only struct. All derived numbers (modifiers, saving
// throws, skill bonuses, life status) come from the engine, not from here.
type Character struct {
	ID            string
	Name          string
	PlayerID      string
	AbilityScores AbilityScores
	Classes       []ClassLevel
	HitPoints     HitPoints
	ArmorClass    int32

	// Proficiencies chosen at creation time
	SavingThrowProficiencies map[string]bool
	SkillProficiencies       map[string]bool

	Equipment []string
	Backstory string
	Notes     string

	CreatedAt int64
	UpdatedAt int64
}

// AbilityScores holds the six raw ability scores (1-30, validated upstream)
type AbilityScores struct {
	Strength     int32
	Dexterity    int32
	Constitution int32
	Intelligence int32
	Wisdom       int32
	Charisma     int32
}

// Score returns the score for the named ability, 0 for unknown names
func (a AbilityScores) Score(ability string) int32 {
	switch ability {
	case AbilityStrength:
		return a.Strength
	case AbilityDexterity:
		return a.Dexterity
	case AbilityConstitution:
		return a.Constitution
	case AbilityIntelligence:
		return a.Intelligence
	case AbilityWisdom:
		return a.Wisdom
	case AbilityCharisma:
		return a.Charisma
	default:
		return 0
	}
}

// SetScore sets the score for the named ability, ignoring unknown names
func (a *AbilityScores) SetScore(ability string, score int32) {
	switch ability {
	case AbilityStrength:
		a.Strength = score
	case AbilityDexterity:
		a.Dexterity = score
	case AbilityConstitution:
		a.Constitution = score
	case AbilityIntelligence:
		a.Intelligence = score
	case AbilityWisdom:
		a.Wisdom = score
	case AbilityCharisma:
		a.Charisma = score
	}
}

// ClassLevel is one entry of a character's class list (1-3 entries, the form
// prevents duplicates)
type ClassLevel struct {
	Class string
	Level int32
}

// HitPoints holds the stored hit point fields; effective HP is derived
type HitPoints struct {
	Maximum   int32
	Current   int32
	Temporary int32
}
