package draft

import (
	"context"
	"encoding/json"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/tavernkeep/character-api/internal/entities/dnd5e"
	"github.com/tavernkeep/character-api/internal/errors"
	redisclient "github.com/tavernkeep/character-api/internal/redis"
)

const (
	draftKeyPrefix = "autosave:"
	defaultTTL     = 24 * time.Hour

	// Error messages
	errDraftNil         = "draft cannot be nil"
	errCharacterIDEmpty = "character ID cannot be empty"
	errPlayerIDEmpty    = "player ID cannot be empty"
)

type redisRepository struct {
	client redisclient.Client
}

// NewRedisRepository creates a new Redis-backed draft repository
func NewRedisRepository(client redisclient.Client) Repository {
	return &redisRepository{
		client: client,
	}
}

// draftKey builds the storage key for a (character, player) pair
func draftKey(characterID, playerID string) string {
	return draftKeyPrefix + characterID + ":" + playerID
}

func (r *redisRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if input.Draft == nil {
		return nil, errors.InvalidArgument(errDraftNil)
	}
	if input.Draft.CharacterID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}
	if input.Draft.PlayerID == "" {
		return nil, errors.InvalidArgument(errPlayerIDEmpty)
	}

	data, err := json.Marshal(input.Draft)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal draft")
	}

	key := draftKey(input.Draft.CharacterID, input.Draft.PlayerID)
	if err := r.client.Set(ctx, key, data, defaultTTL).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to save draft")
	}

	return &SaveOutput{Draft: input.Draft}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument(errPlayerIDEmpty)
	}

	key := draftKey(input.CharacterID, input.PlayerID)
	result, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("no draft for character %s", input.CharacterID)
		}
		return nil, errors.Wrapf(err, "failed to get draft")
	}

	var stored dnd5e.AutosaveDraft
	if err := json.Unmarshal([]byte(result), &stored); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal draft")
	}

	return &GetOutput{Draft: &stored}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument(errPlayerIDEmpty)
	}

	key := draftKey(input.CharacterID, input.PlayerID)
	deleted, err := r.client.Del(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete draft")
	}
	if deleted == 0 {
		return nil, errors.NotFoundf("no draft for character %s", input.CharacterID)
	}

	return &DeleteOutput{}, nil
}
