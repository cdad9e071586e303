// Package editsession implements the coordinating state machine for one
// open character sheet: view vs. edit mode, the edited-field buffer, the
// live derived-stats preview, and the wiring between explicit save/cancel
// and the autosave controller.
package editsession

import (
	"context"
	"log/slog"
	"sync"

	"github.com/tavernkeep/character-api/internal/autosave"
	"github.com/tavernkeep/character-api/internal/engine"
	"github.com/tavernkeep/character-api/internal/entities/dnd5e"
	"github.com/tavernkeep/character-api/internal/errors"
	characterrepo "github.com/tavernkeep/character-api/internal/repositories/character"
)

// Config holds the dependencies for an edit session
type Config struct {
	CharacterID string
	PlayerID    string

	CharacterRepo characterrepo.Repository
	Engine        engine.Engine
	Autosave      *autosave.Controller
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRequired("CharacterID", c.CharacterID, vb)
	errors.ValidateRequired("PlayerID", c.PlayerID, vb)
	if c.CharacterRepo == nil {
		vb.RequiredField("CharacterRepo")
	}
	if c.Engine == nil {
		vb.RequiredField("Engine")
	}
	if c.Autosave == nil {
		vb.RequiredField("Autosave")
	}

	return vb.Build()
}

// Session coordinates one player's open character sheet. The sheet starts in
// viewing mode; BeginEdit seeds an edit buffer, edits update a live stats
// preview and feed the autosave controller, and explicit save or cancel
// returns to viewing mode.
type Session struct {
	characterID string
	playerID    string

	characterRepo characterrepo.Repository
	engine        engine.Engine
	autosave      *autosave.Controller

	mu        sync.Mutex
	mode      Mode
	character *dnd5e.Character
	buffer    *dnd5e.CharacterPatch
	preview   *engine.DerivedStats
}

// New creates a new edit session in viewing mode. Call Load before use.
func New(cfg *Config) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Session{
		characterID:   cfg.CharacterID,
		playerID:      cfg.PlayerID,
		characterRepo: cfg.CharacterRepo,
		engine:        cfg.Engine,
		autosave:      cfg.Autosave,
		mode:          ModeViewing,
	}, nil
}

// Load fetches the authoritative character and computes its derived stats
func (s *Session) Load(ctx context.Context) error {
	out, err := s.characterRepo.Get(ctx, characterrepo.GetInput{
		CharacterID: s.characterID,
		PlayerID:    s.playerID,
	})
	if err != nil {
		return errors.Wrapf(err, "failed to load character").
			WithMeta("character_id", s.characterID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.character = out.Character
	s.preview = s.engine.DeriveStats(out.Character)
	return nil
}

// Mode returns the current session mode
func (s *Session) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Character returns the authoritative character as last loaded or saved
func (s *Session) Character() *dnd5e.Character {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.character
}

// Stats returns the current derived stats: the base character's numbers in
// viewing mode, the live buffer preview while editing
func (s *Session) Stats() *engine.DerivedStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.preview
}

// BeginEdit enters editing mode, seeding the edit buffer from the editable
// fields and checking the draft store for a restorable snapshot
func (s *Session) BeginEdit(ctx context.Context) error {
	s.mu.Lock()
	if s.character == nil {
		s.mu.Unlock()
		return errors.FailedPrecondition("character is not loaded")
	}
	if s.mode == ModeEditing {
		s.mu.Unlock()
		return nil
	}

	s.mode = ModeEditing
	s.buffer = dnd5e.PatchFromCharacter(s.character)
	s.mu.Unlock()

	s.autosave.BeginEditing(s.characterID, s.playerID)
	if d := s.autosave.LoadExistingDraft(ctx); d != nil {
		slog.Info("restorable draft found",
			"character_id", s.characterID,
			"saved_at", d.SavedAt,
		)
	}
	return nil
}

// SetAbilityScore updates one ability score in the edit buffer
func (s *Session) SetAbilityScore(ability string, score int32) {
	s.mutate(func(p *dnd5e.CharacterPatch) {
		p.AbilityScores.SetScore(ability, score)
	})
}

// SetBackstory updates the backstory in the edit buffer
func (s *Session) SetBackstory(backstory string) {
	s.mutate(func(p *dnd5e.CharacterPatch) {
		p.Backstory = backstory
	})
}

// SetNotes updates the notes in the edit buffer
func (s *Session) SetNotes(notes string) {
	s.mutate(func(p *dnd5e.CharacterPatch) {
		p.Notes = notes
	})
}

// mutate applies one buffer edit, recomputes the live preview from the
// buffer merged over the base character, and forwards the change to the
// autosave controller. Ignored outside editing mode.
func (s *Session) mutate(apply func(*dnd5e.CharacterPatch)) {
	s.mu.Lock()
	if s.mode != ModeEditing || s.buffer == nil {
		s.mu.Unlock()
		return
	}

	apply(s.buffer)
	s.preview = s.engine.DeriveStats(s.buffer.ApplyTo(s.character))
	snapshot := *s.buffer
	s.mu.Unlock()

	s.autosave.OnFieldChanged(&snapshot)
}

// Save submits the full edit buffer to the persistence gateway. On success
// the session adopts the stored result and returns to viewing mode; on
// failure it stays in editing mode and the error is surfaced to the caller
// with no automatic retry.
func (s *Session) Save(ctx context.Context) error {
	s.mu.Lock()
	if s.mode != ModeEditing || s.buffer == nil {
		s.mu.Unlock()
		return errors.InvalidArgument("session is not in editing mode")
	}
	patch := *s.buffer
	s.mu.Unlock()

	out, err := s.characterRepo.Update(ctx, characterrepo.UpdateInput{
		CharacterID: s.characterID,
		PlayerID:    s.playerID,
		Patch:       &patch,
	})
	if err != nil {
		return errors.Wrapf(err, "failed to save character").
			WithMeta("character_id", s.characterID)
	}

	s.autosave.StopEditing()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.character = out.Character
	s.preview = s.engine.DeriveStats(out.Character)
	s.buffer = nil
	s.mode = ModeViewing
	return nil
}

// Cancel discards the edit buffer and returns to viewing mode. Any pending
// autosave deadline is cancelled so no stale save fires afterwards; a draft
// already stored stays available for a later visit.
func (s *Session) Cancel() {
	s.mu.Lock()
	if s.mode != ModeEditing {
		s.mu.Unlock()
		return
	}
	s.buffer = nil
	s.mode = ModeViewing
	s.preview = s.engine.DeriveStats(s.character)
	s.mu.Unlock()

	s.autosave.StopEditing()
}

// RestorableDraft reports whether a stored draft is waiting for the user's
// restore-or-discard decision
func (s *Session) RestorableDraft() bool {
	return s.autosave.Restorable()
}

// RestoreDraft adopts the stored draft as the edit buffer and recomputes
// the preview. Reports whether a draft was restored.
func (s *Session) RestoreDraft() bool {
	s.mu.Lock()
	if s.mode != ModeEditing {
		s.mu.Unlock()
		return false
	}
	s.mu.Unlock()

	restored := s.autosave.Restore()
	if restored == nil {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.buffer = restored
	s.preview = s.engine.DeriveStats(restored.ApplyTo(s.character))
	return true
}

// DiscardDraft deletes the stored draft without applying it
func (s *Session) DiscardDraft(ctx context.Context) {
	s.autosave.Discard(ctx)
}
