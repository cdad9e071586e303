package dnd5e

// Ability constants
const (
	AbilityStrength     = "strength"
	AbilityDexterity    = "dexterity"
	AbilityConstitution = "constitution"
	AbilityIntelligence = "intelligence"
	AbilityWisdom       = "wisdom"
	AbilityCharisma     = "charisma"
)

// Abilities lists the six abilities in display order
var Abilities = []string{
	AbilityStrength,
	AbilityDexterity,
	AbilityConstitution,
	AbilityIntelligence,
	AbilityWisdom,
	AbilityCharisma,
}

// Class constants
const (
	ClassBarbarian = "barbarian"
	ClassBard      = "bard"
	ClassCleric    = "cleric"
	ClassDruid     = "druid"
	ClassFighter   = "fighter"
	ClassMonk      = "monk"
	ClassPaladin   = "paladin"
	ClassRanger    = "ranger"
	ClassRogue     = "rogue"
	ClassSorcerer  = "sorcerer"
	ClassWarlock   = "warlock"
	ClassWizard    = "wizard"
)

// Skill constants
const (
	SkillAcrobatics     = "acrobatics"
	SkillAnimalHandling = "animal-handling"
	SkillArcana         = "arcana"
	SkillAthletics      = "athletics"
	SkillDeception      = "deception"
	SkillHistory        = "history"
	SkillInsight        = "insight"
	SkillIntimidation   = "intimidation"
	SkillInvestigation  = "investigation"
	SkillMedicine       = "medicine"
	SkillNature         = "nature"
	SkillPerception     = "perception"
	SkillPerformance    = "performance"
	SkillPersuasion     = "persuasion"
	SkillReligion       = "religion"
	SkillSleightOfHand  = "sleight-of-hand"
	SkillStealth        = "stealth"
	SkillSurvival       = "survival"
)

// LifeStatus classifies a character's hit point state
type LifeStatus string

// Life status values
const (
	LifeStatusAlive       LifeStatus = "alive"
	LifeStatusUnconscious LifeStatus = "unconscious"
	LifeStatusDead        LifeStatus = "dead"
)

// Level bounds enforced by upstream validation
const (
	MinAbilityScore = 1
	MaxAbilityScore = 30
	MinTotalLevel   = 1
	MaxTotalLevel   = 20
	MaxClassEntries = 3
)
