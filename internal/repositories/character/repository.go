// Package character defines the interface for character persistence
package character

//go:generate mockgen -destination=mock/mock_repository.go -package=charactermock github.com/tavernkeep/character-api/internal/repositories/character Repository

import (
	"context"

	"github.com/tavernkeep/character-api/internal/entities/dnd5e"
)

// Repository defines the interface for character persistence. Reads and
// updates are scoped to the owning player; a character another player owns
// reads as not found.
type Repository interface {
	// Create stores a new character
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.AlreadyExists if the ID is taken
	// Returns errors.Internal for storage failures
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a character by ID for the given player
	// Returns errors.InvalidArgument for empty/invalid IDs
	// Returns errors.NotFound if the character doesn't exist for the player
	// Returns errors.Internal for storage failures
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Update applies an edit patch to a character and returns the stored
	// result
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.NotFound if the character doesn't exist for the player
	// Returns errors.Internal for storage failures
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)

	// Delete removes a character by ID for the given player
	// Returns errors.InvalidArgument for empty/invalid IDs
	// Returns errors.NotFound if the character doesn't exist for the player
	// Returns errors.Internal for storage failures
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}

// CreateInput defines the input for creating a character
type CreateInput struct {
	Character *dnd5e.Character
}

// CreateOutput defines the output for creating a character
type CreateOutput struct {
	Character *dnd5e.Character
}

// GetInput defines the input for getting a character
type GetInput struct {
	CharacterID string
	PlayerID    string
}

// GetOutput defines the output for getting a character
type GetOutput struct {
	Character *dnd5e.Character
}

// UpdateInput defines the input for updating a character
type UpdateInput struct {
	CharacterID string
	PlayerID    string
	Patch       *dnd5e.CharacterPatch
}

// UpdateOutput defines the output for updating a character
type UpdateOutput struct {
	Character *dnd5e.Character
}

// DeleteInput defines the input for deleting a character
type DeleteInput struct {
	CharacterID string
	PlayerID    string
}

// DeleteOutput defines the output for deleting a character
type DeleteOutput struct {
	// Empty for now, can be extended later
}
