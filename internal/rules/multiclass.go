package rules

import "github.com/tavernkeep/character-api/internal/entities/dnd5e"

// TotalLevel sums the level entries of a class list. Valid input keeps the
// total within 1-20; the sum is not clamped here, ProficiencyBonusForLevel
// handles out-of-band totals.
func TotalLevel(classes []dnd5e.ClassLevel) int32 {
	var total int32
	for _, c := range classes {
		total += c.Level
	}
	return total
}

// ClassLevelMap reduces a class list to a class-name -> level map.
// A duplicate class name takes the last entry's level; the character form
// prevents duplicates, so this is a documented tolerance, not a rejection.
func ClassLevelMap(classes []dnd5e.ClassLevel) map[string]int32 {
	m := make(map[string]int32, len(classes))
	for _, c := range classes {
		m[c.Class] = c.Level
	}
	return m
}
