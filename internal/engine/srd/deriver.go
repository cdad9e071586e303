// Package srd implements the engine against the SRD 5e rules
package srd

import (
	"github.com/tavernkeep/character-api/internal/engine"
	"github.com/tavernkeep/character-api/internal/entities/dnd5e"
	"github.com/tavernkeep/character-api/internal/rules"
)

// skillAbilities is the fixed skill -> governing ability table. This is a
// domain constant from the SRD, never computed.
var skillAbilities = map[string]string{
	dnd5e.SkillAcrobatics:     dnd5e.AbilityDexterity,
	dnd5e.SkillAnimalHandling: dnd5e.AbilityWisdom,
	dnd5e.SkillArcana:         dnd5e.AbilityIntelligence,
	dnd5e.SkillAthletics:      dnd5e.AbilityStrength,
	dnd5e.SkillDeception:      dnd5e.AbilityCharisma,
	dnd5e.SkillHistory:        dnd5e.AbilityIntelligence,
	dnd5e.SkillInsight:        dnd5e.AbilityWisdom,
	dnd5e.SkillIntimidation:   dnd5e.AbilityCharisma,
	dnd5e.SkillInvestigation:  dnd5e.AbilityIntelligence,
	dnd5e.SkillMedicine:       dnd5e.AbilityWisdom,
	dnd5e.SkillNature:         dnd5e.AbilityIntelligence,
	dnd5e.SkillPerception:     dnd5e.AbilityWisdom,
	dnd5e.SkillPerformance:    dnd5e.AbilityCharisma,
	dnd5e.SkillPersuasion:     dnd5e.AbilityCharisma,
	dnd5e.SkillReligion:       dnd5e.AbilityIntelligence,
	dnd5e.SkillSleightOfHand:  dnd5e.AbilityDexterity,
	dnd5e.SkillStealth:        dnd5e.AbilityDexterity,
	dnd5e.SkillSurvival:       dnd5e.AbilityWisdom,
}

type deriver struct{}

// New creates the SRD derived-stats engine
func New() engine.Engine {
	return &deriver{}
}

// Ensure deriver implements the Engine interface
var _ engine.Engine = (*deriver)(nil)

func (d *deriver) CalculateAbilityModifier(score int32) int32 {
	return rules.ModifierForScore(score)
}

func (d *deriver) CalculateProficiencyBonus(totalLevel int32) int32 {
	return rules.ProficiencyBonusForLevel(totalLevel)
}

// DeriveStats computes the full derived snapshot for a character. Given
// well-formed input it never fails; the two defined fallbacks are the
// proficiency band clamp for out-of-range totals and the ungoverned-skill
// fallback below.
func (d *deriver) DeriveStats(character *dnd5e.Character) *engine.DerivedStats {
	totalLevel := rules.TotalLevel(character.Classes)
	profBonus := rules.ProficiencyBonusForLevel(totalLevel)

	mods := make(map[string]int32, len(dnd5e.Abilities))
	saves := make(map[string]engine.SavingThrow, len(dnd5e.Abilities))
	for _, ability := range dnd5e.Abilities {
		mod := rules.ModifierForScore(character.AbilityScores.Score(ability))
		mods[ability] = mod

		proficient := character.SavingThrowProficiencies[ability]
		bonus := mod
		if proficient {
			bonus += profBonus
		}
		saves[ability] = engine.SavingThrow{Bonus: bonus, Proficient: proficient}
	}

	skills := make(map[string]engine.SkillBonus, len(character.SkillProficiencies))
	for skill, proficient := range character.SkillProficiencies {
		// A skill missing from the governing table is treated as
		// ungoverned: no ability component, proficiency bonus only.
		ability := skillAbilities[skill]
		var bonus int32
		if ability != "" {
			bonus = mods[ability]
		}
		if proficient {
			bonus += profBonus
		}
		skills[skill] = engine.SkillBonus{
			Bonus:      bonus,
			Ability:    ability,
			Proficient: proficient,
		}
	}

	return &engine.DerivedStats{
		AbilityModifiers: mods,
		SavingThrows:     saves,
		Skills:           skills,
		TotalLevel:       totalLevel,
		ClassLevels:      rules.ClassLevelMap(character.Classes),
		ProficiencyBonus: profBonus,
		Initiative:       mods[dnd5e.AbilityDexterity],
		ArmorClass:       character.ArmorClass,
		MaxHP:            character.HitPoints.Maximum,
		EffectiveHP:      character.HitPoints.Current + character.HitPoints.Temporary,
		LifeStatus:       lifeStatus(character.HitPoints),
	}
}

// lifeStatus classifies hit points three ways. Zero maximum means the record
// never had hit points to lose (a construct or placeholder) and reads as
// dead; otherwise current at or below zero is unconscious.
func lifeStatus(hp dnd5e.HitPoints) dnd5e.LifeStatus {
	switch {
	case hp.Maximum == 0:
		return dnd5e.LifeStatusDead
	case hp.Current <= 0:
		return dnd5e.LifeStatusUnconscious
	default:
		return dnd5e.LifeStatusAlive
	}
}
