package character

import (
	"context"
	"encoding/json"

	redis "github.com/redis/go-redis/v9"

	"github.com/tavernkeep/character-api/internal/entities/dnd5e"
	"github.com/tavernkeep/character-api/internal/errors"
	"github.com/tavernkeep/character-api/internal/pkg/clock"
	redisclient "github.com/tavernkeep/character-api/internal/redis"
)

const (
	characterKeyPrefix = "character:"

	// Error messages
	errCharacterNil     = "character cannot be nil"
	errCharacterIDEmpty = "character ID cannot be empty"
	errPlayerIDEmpty    = "player ID cannot be empty"
	errPatchNil         = "patch cannot be nil"
)

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// NewRedisRepository creates a new Redis-backed character repository
func NewRedisRepository(client redisclient.Client, clk clock.Clock) Repository {
	return &redisRepository{
		client: client,
		clock:  clk,
	}
}

func characterKey(id string) string {
	return characterKeyPrefix + id
}

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if input.Character == nil {
		return nil, errors.InvalidArgument(errCharacterNil)
	}
	if input.Character.ID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}
	if input.Character.PlayerID == "" {
		return nil, errors.InvalidArgument(errPlayerIDEmpty)
	}

	now := r.clock.Now().Unix()
	input.Character.CreatedAt = now
	input.Character.UpdatedAt = now

	data, err := json.Marshal(input.Character)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal character")
	}

	set, err := r.client.SetNX(ctx, characterKey(input.Character.ID), data, 0).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create character")
	}
	if !set {
		return nil, errors.AlreadyExists("character ID already exists")
	}

	return &CreateOutput{Character: input.Character}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	ch, err := r.load(ctx, input.CharacterID, input.PlayerID)
	if err != nil {
		return nil, err
	}
	return &GetOutput{Character: ch}, nil
}

func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if input.Patch == nil {
		return nil, errors.InvalidArgument(errPatchNil)
	}

	ch, err := r.load(ctx, input.CharacterID, input.PlayerID)
	if err != nil {
		return nil, err
	}

	updated := input.Patch.ApplyTo(ch)
	updated.UpdatedAt = r.clock.Now().Unix()

	data, err := json.Marshal(updated)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal character")
	}
	if err := r.client.Set(ctx, characterKey(updated.ID), data, 0).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to update character")
	}

	return &UpdateOutput{Character: updated}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if _, err := r.load(ctx, input.CharacterID, input.PlayerID); err != nil {
		return nil, err
	}

	if err := r.client.Del(ctx, characterKey(input.CharacterID)).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to delete character")
	}

	return &DeleteOutput{}, nil
}

// load fetches a character and checks ownership. A character owned by
// another player reads as not found so ownership is never leaked.
func (r *redisRepository) load(ctx context.Context, characterID, playerID string) (*dnd5e.Character, error) {
	if characterID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}
	if playerID == "" {
		return nil, errors.InvalidArgument(errPlayerIDEmpty)
	}

	result, err := r.client.Get(ctx, characterKey(characterID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("character %s not found", characterID)
		}
		return nil, errors.Wrapf(err, "failed to get character")
	}

	var ch dnd5e.Character
	if err := json.Unmarshal([]byte(result), &ch); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal character")
	}

	if ch.PlayerID != playerID {
		return nil, errors.NotFoundf("character %s not found", characterID)
	}

	return &ch, nil
}
