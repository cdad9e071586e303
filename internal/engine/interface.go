// Package engine defines the derived-stats engine consumed by the
// orchestrators. Implementations live in subpackages.
package engine

//go:generate mockgen -destination=mock/mock_engine.go -package=enginemock github.com/tavernkeep/character-api/internal/engine Engine

import (
	"github.com/tavernkeep/character-api/internal/entities/dnd5e"
)

// Engine turns raw character attributes into the numbers a game table uses.
type Engine interface {
	// DeriveStats computes the full derived snapshot for a character.
	// It is pure and synchronous: no I/O, no error channel, and two calls
	// on deep-equal input yield deep-equal output. Derived stats are never
	// persisted, only recomputed.
	DeriveStats(character *dnd5e.Character) *DerivedStats

	// Utility calculations
	CalculateAbilityModifier(score int32) int32
	CalculateProficiencyBonus(totalLevel int32) int32
}
