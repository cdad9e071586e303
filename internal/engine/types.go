package engine

import (
	"github.com/tavernkeep/character-api/internal/entities/dnd5e"
)

// DerivedStats is the computed combat snapshot for one character
type DerivedStats struct {
	AbilityModifiers map[string]int32
	SavingThrows     map[string]SavingThrow
	Skills           map[string]SkillBonus

	TotalLevel       int32
	ClassLevels      map[string]int32
	ProficiencyBonus int32

	Initiative int32
	ArmorClass int32

	MaxHP       int32
	EffectiveHP int32
	LifeStatus  dnd5e.LifeStatus
}

// SavingThrow is one ability's saving throw bonus with its proficiency flag
type SavingThrow struct {
	Bonus      int32
	Proficient bool
}

// SkillBonus is one skill's total bonus, its governing ability, and whether
// the character is proficient in it
type SkillBonus struct {
	Bonus      int32
	Ability    string
	Proficient bool
}
