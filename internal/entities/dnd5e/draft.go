package dnd5e

// CharacterPatch is the subset of character fields a player may change from
// the sheet editor. It is a closed struct rather than an open map so unrelated
// fields can never ride along in an update or an autosaved draft.
type CharacterPatch struct {
	AbilityScores AbilityScores `json:"ability_scores"`
	Backstory     string        `json:"backstory"`
	Notes         string        `json:"notes"`
}

// PatchFromCharacter seeds an edit buffer from a character's editable fields
func PatchFromCharacter(c *Character) *CharacterPatch {
	if c == nil {
		return &CharacterPatch{}
	}
	return &CharacterPatch{
		AbilityScores: c.AbilityScores,
		Backstory:     c.Backstory,
		Notes:         c.Notes,
	}
}

// ApplyTo returns a copy of the character with the patch's fields applied.
// The receiver and input are left untouched.
func (p *CharacterPatch) ApplyTo(c *Character) *Character {
	if c == nil {
		return nil
	}
	merged := *c
	if p != nil {
		merged.AbilityScores = p.AbilityScores
		merged.Backstory = p.Backstory
		merged.Notes = p.Notes
	}
	return &merged
}

// AutosaveDraft is a stored snapshot of in-progress edits, keyed by
// (character, player). Distinct from the authoritative character record.
type AutosaveDraft struct {
	CharacterID string         `json:"character_id"`
	PlayerID    string         `json:"player_id"`
	Patch       CharacterPatch `json:"patch"`
	SavedAt     int64          `json:"saved_at"`
}
