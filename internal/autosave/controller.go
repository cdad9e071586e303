// Package autosave implements the draft autosave controller for one
// character-editing session: a debounced timer between field edits and the
// draft store, plus the restore/discard lifecycle for a previously stored
// draft.
package autosave

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/tavernkeep/character-api/internal/entities/dnd5e"
	"github.com/tavernkeep/character-api/internal/errors"
	"github.com/tavernkeep/character-api/internal/pkg/clock"
	"github.com/tavernkeep/character-api/internal/repositories/draft"
)

// State is the debounce state of the controller. It is held as an explicit
// value so tests can assert transitions without faking wall-clock time.
type State string

// Controller states
const (
	// StateIdle: no save scheduled or running
	StateIdle State = "idle"
	// StatePending: a debounce deadline is armed
	StatePending State = "pending"
	// StateSaving: a draft write is in flight
	StateSaving State = "saving"
)

// Default timing windows
const (
	DefaultDebounceWindow    = 2 * time.Second
	DefaultSavedSignalWindow = 2 * time.Second
	DefaultSaveTimeout       = 5 * time.Second
)

// Config holds the dependencies for the autosave controller
type Config struct {
	DraftRepo draft.Repository
	Clock     clock.Clock

	// DebounceWindow is the inactivity period after the last edit before
	// a save fires. Zero means DefaultDebounceWindow.
	DebounceWindow time.Duration
	// SavedSignalWindow bounds how long SavedRecently reports true after
	// a successful save. Zero means DefaultSavedSignalWindow.
	SavedSignalWindow time.Duration
	// SaveTimeout bounds the background draft write. Zero means
	// DefaultSaveTimeout.
	SaveTimeout time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.DraftRepo == nil {
		vb.RequiredField("DraftRepo")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}

	return vb.Build()
}

// Controller owns the autosave lifecycle for one editing session. Saves are
// strictly serialized per (character, player) key: a field change arriving
// while a write is in flight marks the buffer dirty, and a fresh debounce
// window is armed once the write settles.
type Controller struct {
	draftRepo draft.Repository
	clock     clock.Clock

	debounceWindow    time.Duration
	savedSignalWindow time.Duration
	saveTimeout       time.Duration

	mu          sync.Mutex
	editing     bool
	characterID string
	playerID    string

	state      State
	timer      clock.Timer
	timerGen   uint64
	sessionGen uint64

	buffer           *dnd5e.CharacterPatch
	dirtyWhileSaving bool
	restorable       *dnd5e.AutosaveDraft

	lastSaveErr error
	lastSavedAt time.Time
}

// New creates a new autosave controller
func New(cfg *Config) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	debounce := cfg.DebounceWindow
	if debounce <= 0 {
		debounce = DefaultDebounceWindow
	}
	signal := cfg.SavedSignalWindow
	if signal <= 0 {
		signal = DefaultSavedSignalWindow
	}
	timeout := cfg.SaveTimeout
	if timeout <= 0 {
		timeout = DefaultSaveTimeout
	}

	return &Controller{
		draftRepo:         cfg.DraftRepo,
		clock:             cfg.Clock,
		debounceWindow:    debounce,
		savedSignalWindow: signal,
		saveTimeout:       timeout,
		state:             StateIdle,
	}, nil
}

// BeginEditing arms the controller for one editing session
func (c *Controller) BeginEditing(characterID, playerID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.sessionGen++
	c.timerGen++
	c.editing = true
	c.characterID = characterID
	c.playerID = playerID
	c.state = StateIdle
	c.timer = nil
	c.buffer = nil
	c.dirtyWhileSaving = false
	c.restorable = nil
	c.lastSaveErr = nil
}

// StopEditing disarms the controller: any pending deadline is cancelled so
// no stale save fires after the user left edit mode. A write already in
// flight completes in the background but its result no longer touches
// controller state.
func (c *Controller) StopEditing() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cancelTimerLocked()
	c.sessionGen++
	c.editing = false
	c.state = StateIdle
	c.buffer = nil
	c.dirtyWhileSaving = false
	c.restorable = nil
}

// OnFieldChanged records the latest edit buffer and (re)starts the debounce
// window. Rapid changes coalesce into a single scheduled save at last change
// plus window. Ignored outside edit mode.
func (c *Controller) OnFieldChanged(buffer *dnd5e.CharacterPatch) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.editing || buffer == nil {
		return
	}

	snapshot := *buffer
	c.buffer = &snapshot

	if c.state == StateSaving {
		// Serialize with the in-flight write; a new window is armed
		// when it settles
		c.dirtyWhileSaving = true
		return
	}

	c.state = StatePending
	if c.timer != nil {
		c.timer.Reset(c.debounceWindow)
		return
	}

	c.timerGen++
	gen := c.timerGen
	c.timer = c.clock.AfterFunc(c.debounceWindow, func() {
		c.onDebounceElapsed(gen)
	})
}

// CancelPending deterministically cancels any pending debounce deadline
func (c *Controller) CancelPending() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cancelTimerLocked()
	if c.state == StatePending {
		c.state = StateIdle
	}
	c.dirtyWhileSaving = false
}

// cancelTimerLocked stops the armed timer and invalidates any fire already
// racing for the lock. Caller holds the mutex.
func (c *Controller) cancelTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.timerGen++
}

// onDebounceElapsed runs when the debounce deadline fires
func (c *Controller) onDebounceElapsed(gen uint64) {
	c.mu.Lock()
	if gen != c.timerGen || !c.editing || c.state != StatePending || c.buffer == nil {
		c.mu.Unlock()
		return
	}

	c.state = StateSaving
	c.timer = nil
	session := c.sessionGen
	snapshot := *c.buffer
	toSave := &dnd5e.AutosaveDraft{
		CharacterID: c.characterID,
		PlayerID:    c.playerID,
		Patch:       snapshot,
		SavedAt:     c.clock.Now().Unix(),
	}
	c.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), c.saveTimeout)
	defer cancel()
	_, err := c.draftRepo.Save(ctx, draft.SaveInput{Draft: toSave})

	c.mu.Lock()
	defer c.mu.Unlock()

	if session != c.sessionGen {
		// The session ended while the write was in flight; the write
		// was best-effort and must not touch the new session's state
		return
	}

	c.state = StateIdle
	if err != nil {
		// Autosave is a convenience, not a contract: never interrupt
		// typing. The failure stays observable via LastSaveErr.
		c.lastSaveErr = err
		slog.Warn("draft autosave failed",
			"character_id", toSave.CharacterID,
			"error", err,
		)
	} else {
		c.lastSaveErr = nil
		c.lastSavedAt = c.clock.Now()
	}

	if c.dirtyWhileSaving {
		c.dirtyWhileSaving = false
		c.state = StatePending
		c.timerGen++
		next := c.timerGen
		c.timer = c.clock.AfterFunc(c.debounceWindow, func() {
			c.onDebounceElapsed(next)
		})
	}
}

// LoadExistingDraft fetches any stored draft for the session key and marks
// it restorable without applying it. Called once per session start. Lookup
// failures are swallowed; a missing draft is the normal case.
func (c *Controller) LoadExistingDraft(ctx context.Context) *dnd5e.AutosaveDraft {
	c.mu.Lock()
	if !c.editing {
		c.mu.Unlock()
		return nil
	}
	characterID, playerID := c.characterID, c.playerID
	c.mu.Unlock()

	out, err := c.draftRepo.Get(ctx, draft.GetInput{
		CharacterID: characterID,
		PlayerID:    playerID,
	})
	if err != nil {
		if !errors.IsNotFound(err) {
			slog.Warn("draft lookup failed",
				"character_id", characterID,
				"error", err,
			)
		}
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.restorable = out.Draft
	return out.Draft
}

// Restore hands the restorable draft back as the new edit buffer and clears
// the restorable flag. The stored draft is intentionally left in place: a
// restored-then-saved session supersedes it, and a restored-then-cancelled
// session keeps it available for a later visit.
func (c *Controller) Restore() *dnd5e.CharacterPatch {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.restorable == nil {
		return nil
	}

	patch := c.restorable.Patch
	c.restorable = nil
	c.buffer = &patch
	return &patch
}

// Discard deletes the stored draft and clears the restorable flag. The
// delete is best-effort housekeeping; failures are swallowed.
func (c *Controller) Discard(ctx context.Context) {
	c.mu.Lock()
	characterID, playerID := c.characterID, c.playerID
	c.restorable = nil
	c.mu.Unlock()

	if characterID == "" || playerID == "" {
		return
	}

	if _, err := c.draftRepo.Delete(ctx, draft.DeleteInput{
		CharacterID: characterID,
		PlayerID:    playerID,
	}); err != nil && !errors.IsNotFound(err) {
		slog.Warn("draft discard failed",
			"character_id", characterID,
			"error", err,
		)
	}
}

// State returns the current debounce state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Restorable reports whether a stored draft is waiting for an explicit
// restore-or-discard decision
func (c *Controller) Restorable() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.restorable != nil
}

// SavedRecently reports whether the last autosave succeeded within the
// signal window; the host UI may render this as a transient "draft saved"
func (c *Controller) SavedRecently() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.lastSavedAt.IsZero() {
		return false
	}
	return c.clock.Now().Sub(c.lastSavedAt) <= c.savedSignalWindow
}

// LastSaveErr exposes the most recent autosave failure. Never surfaced to
// the user, but observable so failure handling can be asserted.
func (c *Controller) LastSaveErr() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastSaveErr
}
