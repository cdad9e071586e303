package draft_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/tavernkeep/character-api/internal/entities/dnd5e"
	"github.com/tavernkeep/character-api/internal/errors"
	"github.com/tavernkeep/character-api/internal/repositories/draft"
	"github.com/tavernkeep/character-api/internal/testutils"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	repo    draft.Repository
	cleanup func()
	ctx     context.Context
}

func TestRedisRepositorySuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	client, cleanup := testutils.CreateTestRedisClient(s.T())
	s.cleanup = cleanup
	s.repo = draft.NewRedisRepository(client)
	s.ctx = context.Background()
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.cleanup()
}

func (s *RedisRepositoryTestSuite) testDraft() *dnd5e.AutosaveDraft {
	return &dnd5e.AutosaveDraft{
		CharacterID: "char_123",
		PlayerID:    "player_456",
		Patch: dnd5e.CharacterPatch{
			AbilityScores: dnd5e.AbilityScores{
				Strength:     20,
				Dexterity:    14,
				Constitution: 13,
				Intelligence: 10,
				Wisdom:       12,
				Charisma:     8,
			},
			Backstory: "Half-finished backstory.",
		},
		SavedAt: 1700000000,
	}
}

func (s *RedisRepositoryTestSuite) TestSaveAndGet() {
	_, err := s.repo.Save(s.ctx, draft.SaveInput{Draft: s.testDraft()})
	s.Require().NoError(err)

	out, err := s.repo.Get(s.ctx, draft.GetInput{
		CharacterID: "char_123",
		PlayerID:    "player_456",
	})
	s.Require().NoError(err)
	s.Equal(s.testDraft(), out.Draft)
}

func (s *RedisRepositoryTestSuite) TestSaveOverwritesPreviousDraft() {
	_, err := s.repo.Save(s.ctx, draft.SaveInput{Draft: s.testDraft()})
	s.Require().NoError(err)

	updated := s.testDraft()
	updated.Patch.AbilityScores.Strength = 8
	updated.SavedAt = 1700000060
	_, err = s.repo.Save(s.ctx, draft.SaveInput{Draft: updated})
	s.Require().NoError(err)

	out, err := s.repo.Get(s.ctx, draft.GetInput{
		CharacterID: "char_123",
		PlayerID:    "player_456",
	})
	s.Require().NoError(err)
	s.Equal(int32(8), out.Draft.Patch.AbilityScores.Strength)
	s.Equal(int64(1700000060), out.Draft.SavedAt)
}

func (s *RedisRepositoryTestSuite) TestDraftsAreScopedPerPlayer() {
	_, err := s.repo.Save(s.ctx, draft.SaveInput{Draft: s.testDraft()})
	s.Require().NoError(err)

	_, err = s.repo.Get(s.ctx, draft.GetInput{
		CharacterID: "char_123",
		PlayerID:    "player_other",
	})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestGetMissingDraft() {
	_, err := s.repo.Get(s.ctx, draft.GetInput{
		CharacterID: "char_missing",
		PlayerID:    "player_456",
	})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestDelete() {
	_, err := s.repo.Save(s.ctx, draft.SaveInput{Draft: s.testDraft()})
	s.Require().NoError(err)

	_, err = s.repo.Delete(s.ctx, draft.DeleteInput{
		CharacterID: "char_123",
		PlayerID:    "player_456",
	})
	s.Require().NoError(err)

	_, err = s.repo.Get(s.ctx, draft.GetInput{
		CharacterID: "char_123",
		PlayerID:    "player_456",
	})
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestDeleteMissingDraft() {
	_, err := s.repo.Delete(s.ctx, draft.DeleteInput{
		CharacterID: "char_missing",
		PlayerID:    "player_456",
	})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestValidation() {
	s.Run("nil draft", func() {
		_, err := s.repo.Save(s.ctx, draft.SaveInput{})
		s.True(errors.IsInvalidArgument(err))
	})

	s.Run("empty character ID", func() {
		d := s.testDraft()
		d.CharacterID = ""
		_, err := s.repo.Save(s.ctx, draft.SaveInput{Draft: d})
		s.True(errors.IsInvalidArgument(err))
	})

	s.Run("empty player ID on get", func() {
		_, err := s.repo.Get(s.ctx, draft.GetInput{CharacterID: "char_123"})
		s.True(errors.IsInvalidArgument(err))
	})

	s.Run("empty character ID on delete", func() {
		_, err := s.repo.Delete(s.ctx, draft.DeleteInput{PlayerID: "player_456"})
		s.True(errors.IsInvalidArgument(err))
	})
}
