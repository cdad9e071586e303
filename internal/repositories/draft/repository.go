// Package draft defines the interface for autosave draft persistence.
// A draft is keyed by (character, player): each player keeps at most one
// in-progress snapshot per character.
package draft

//go:generate mockgen -destination=mock/mock_repository.go -package=draftmock github.com/tavernkeep/character-api/internal/repositories/draft Repository

import (
	"context"

	"github.com/tavernkeep/character-api/internal/entities/dnd5e"
)

// Repository defines the interface for autosave draft persistence
type Repository interface {
	// Save creates or replaces the draft for a (character, player) key
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.Internal for storage failures
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)

	// Get retrieves the draft for a (character, player) key
	// Returns errors.InvalidArgument for empty/invalid keys
	// Returns errors.NotFound if no draft exists
	// Returns errors.Internal for storage failures
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Delete removes the draft for a (character, player) key
	// Returns errors.InvalidArgument for empty/invalid keys
	// Returns errors.NotFound if no draft exists
	// Returns errors.Internal for storage failures
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}

// SaveInput defines the input for saving a draft
type SaveInput struct {
	Draft *dnd5e.AutosaveDraft
}

// SaveOutput defines the output for saving a draft
type SaveOutput struct {
	Draft *dnd5e.AutosaveDraft
}

// GetInput defines the input for getting a draft
type GetInput struct {
	CharacterID string
	PlayerID    string
}

// GetOutput defines the output for getting a draft
type GetOutput struct {
	Draft *dnd5e.AutosaveDraft
}

// DeleteInput defines the input for deleting a draft
type DeleteInput struct {
	CharacterID string
	PlayerID    string
}

// DeleteOutput defines the output for deleting a draft
type DeleteOutput struct {
	// Empty for now, can be extended later
}
