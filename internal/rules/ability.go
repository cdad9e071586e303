// Package rules implements the pure D&D 5e arithmetic the engine is built on:
// ability modifiers, the proficiency bonus table, and multiclass aggregation.
package rules

import "fmt"

// Proficiency bonus band bounds
const (
	minProficiencyLevel = 1
	maxProficiencyLevel = 20
)

// ModifierForScore returns the ability modifier for a raw score.
// Precondition: score is 1-30; upstream validation enforces the range, this
// function does not re-check it.
func ModifierForScore(score int32) int32 {
	// floor((score-10)/2); integer division in Go truncates toward zero, so
	// odd scores below 10 need the explicit floor
	diff := score - 10
	if diff < 0 {
		return (diff - 1) / 2
	}
	return diff / 2
}

// ProficiencyBonusForLevel returns the stepped proficiency bonus for a total
// character level: 1-4 give +2, 5-8 give +3, 9-12 give +4, 13-16 give +5,
// 17-20 give +6. Out-of-band totals clamp to the nearest band rather than
// crashing; that is intentional degradation for data the validator should
// have rejected, not silent data loss.
func ProficiencyBonusForLevel(totalLevel int32) int32 {
	if totalLevel < minProficiencyLevel {
		totalLevel = minProficiencyLevel
	}
	if totalLevel > maxProficiencyLevel {
		totalLevel = maxProficiencyLevel
	}
	return 2 + ((totalLevel - 1) / 4)
}

// FormatModifier renders a derived number for display: explicit leading "+"
// for zero and positive values, bare "-" for negative
func FormatModifier(n int32) string {
	return fmt.Sprintf("%+d", n)
}
