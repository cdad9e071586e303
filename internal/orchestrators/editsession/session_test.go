package editsession_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/tavernkeep/character-api/internal/autosave"
	"github.com/tavernkeep/character-api/internal/engine/srd"
	"github.com/tavernkeep/character-api/internal/entities/dnd5e"
	"github.com/tavernkeep/character-api/internal/errors"
	"github.com/tavernkeep/character-api/internal/orchestrators/editsession"
	"github.com/tavernkeep/character-api/internal/pkg/clock"
	characterrepo "github.com/tavernkeep/character-api/internal/repositories/character"
	charactermock "github.com/tavernkeep/character-api/internal/repositories/character/mock"
	draftrepo "github.com/tavernkeep/character-api/internal/repositories/draft"
	draftmock "github.com/tavernkeep/character-api/internal/repositories/draft/mock"
)

const (
	testCharacterID = "char_123"
	testPlayerID    = "player_456"
	debounce        = 2 * time.Second
)

type SessionTestSuite struct {
	suite.Suite
	ctrl          *gomock.Controller
	mockCharRepo  *charactermock.MockRepository
	mockDraftRepo *draftmock.MockRepository
	clock         *clock.Fake
	session       *editsession.Session
	ctx           context.Context
}

func TestSessionSuite(t *testing.T) {
	suite.Run(t, new(SessionTestSuite))
}

func (s *SessionTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockCharRepo = charactermock.NewMockRepository(s.ctrl)
	s.mockDraftRepo = draftmock.NewMockRepository(s.ctrl)
	s.clock = clock.NewFake()
	s.ctx = context.Background()

	controller, err := autosave.New(&autosave.Config{
		DraftRepo:      s.mockDraftRepo,
		Clock:          s.clock,
		DebounceWindow: debounce,
	})
	s.Require().NoError(err)

	session, err := editsession.New(&editsession.Config{
		CharacterID:   testCharacterID,
		PlayerID:      testPlayerID,
		CharacterRepo: s.mockCharRepo,
		Engine:        srd.New(),
		Autosave:      controller,
	})
	s.Require().NoError(err)
	s.session = session
}

func (s *SessionTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *SessionTestSuite) storedCharacter() *dnd5e.Character {
	return &dnd5e.Character{
		ID:       testCharacterID,
		Name:     "Tassa",
		PlayerID: testPlayerID,
		AbilityScores: dnd5e.AbilityScores{
			Strength:     16,
			Dexterity:    14,
			Constitution: 13,
			Intelligence: 10,
			Wisdom:       12,
			Charisma:     8,
		},
		Classes: []dnd5e.ClassLevel{
			{Class: dnd5e.ClassFighter, Level: 3},
			{Class: dnd5e.ClassRogue, Level: 2},
		},
		HitPoints:  dnd5e.HitPoints{Maximum: 44, Current: 38, Temporary: 5},
		ArmorClass: 17,
		SavingThrowProficiencies: map[string]bool{
			dnd5e.AbilityStrength:     true,
			dnd5e.AbilityConstitution: true,
		},
		SkillProficiencies: map[string]bool{
			dnd5e.SkillAthletics: true,
		},
		Backstory: "Raised in the harbor district.",
	}
}

// load brings the session into viewing mode with the stored character
func (s *SessionTestSuite) load() {
	s.mockCharRepo.EXPECT().
		Get(s.ctx, characterrepo.GetInput{CharacterID: testCharacterID, PlayerID: testPlayerID}).
		Return(&characterrepo.GetOutput{Character: s.storedCharacter()}, nil)
	s.Require().NoError(s.session.Load(s.ctx))
}

// beginEdit enters editing mode with no stored draft waiting
func (s *SessionTestSuite) beginEdit() {
	s.mockDraftRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(nil, errors.NotFound("no draft"))
	s.Require().NoError(s.session.BeginEdit(s.ctx))
}

func (s *SessionTestSuite) TestLoadComputesDerivedStats() {
	s.load()

	s.Equal(editsession.ModeViewing, s.session.Mode())
	stats := s.session.Stats()
	s.Require().NotNil(stats)
	s.Equal(int32(5), stats.TotalLevel)
	s.Equal(int32(3), stats.ProficiencyBonus)
	s.Equal(int32(3), stats.AbilityModifiers[dnd5e.AbilityStrength])
}

func (s *SessionTestSuite) TestLoadFailurePropagates() {
	s.mockCharRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(nil, errors.NotFound("character not found"))

	err := s.session.Load(s.ctx)
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *SessionTestSuite) TestBeginEditRequiresLoadedCharacter() {
	err := s.session.BeginEdit(s.ctx)
	s.Require().Error(err)
	s.Equal(errors.CodeFailedPrecondition, errors.GetCode(err))
	s.Equal(editsession.ModeViewing, s.session.Mode())
}

func (s *SessionTestSuite) TestBeginEditEntersEditingMode() {
	s.load()
	s.beginEdit()

	s.Equal(editsession.ModeEditing, s.session.Mode())
	s.False(s.session.RestorableDraft())
}

func (s *SessionTestSuite) TestBeginEditIsIdempotent() {
	s.load()
	s.beginEdit()

	// A second call must not re-arm the session or hit the draft store
	s.Require().NoError(s.session.BeginEdit(s.ctx))
	s.Equal(editsession.ModeEditing, s.session.Mode())
}

func (s *SessionTestSuite) TestEditUpdatesPreviewAndFeedsAutosave() {
	s.load()
	s.beginEdit()

	var saved *dnd5e.AutosaveDraft
	s.mockDraftRepo.EXPECT().
		Save(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input draftrepo.SaveInput) (*draftrepo.SaveOutput, error) {
			saved = input.Draft
			return &draftrepo.SaveOutput{Draft: input.Draft}, nil
		})

	s.session.SetAbilityScore(dnd5e.AbilityStrength, 20)

	// Preview reflects the buffer immediately, before any save
	stats := s.session.Stats()
	s.Equal(int32(5), stats.AbilityModifiers[dnd5e.AbilityStrength])
	s.Equal(int32(8), stats.SavingThrows[dnd5e.AbilityStrength].Bonus)

	// The authoritative character is untouched
	s.Equal(int32(16), s.session.Character().AbilityScores.Strength)

	// Debounce elapses and the buffer lands in the draft store
	s.clock.Advance(debounce)
	s.Require().NotNil(saved)
	s.Equal(int32(20), saved.Patch.AbilityScores.Strength)
}

func (s *SessionTestSuite) TestEditsIgnoredInViewingMode() {
	s.load()

	s.session.SetAbilityScore(dnd5e.AbilityStrength, 20)
	s.session.SetBackstory("ignored")

	s.Equal(int32(3), s.session.Stats().AbilityModifiers[dnd5e.AbilityStrength])
	s.clock.Advance(10 * debounce)
}

func (s *SessionTestSuite) TestSavePersistsBufferAndReturnsToViewing() {
	s.load()
	s.beginEdit()

	s.session.SetBackstory("Rewritten after the shipwreck.")

	updated := s.storedCharacter()
	updated.Backstory = "Rewritten after the shipwreck."
	s.mockCharRepo.EXPECT().
		Update(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input characterrepo.UpdateInput) (*characterrepo.UpdateOutput, error) {
			s.Equal(testCharacterID, input.CharacterID)
			s.Equal(testPlayerID, input.PlayerID)
			s.Equal("Rewritten after the shipwreck.", input.Patch.Backstory)
			return &characterrepo.UpdateOutput{Character: updated}, nil
		})

	s.Require().NoError(s.session.Save(s.ctx))
	s.Equal(editsession.ModeViewing, s.session.Mode())
	s.Equal("Rewritten after the shipwreck.", s.session.Character().Backstory)

	// Saving also cancelled the pending autosave
	s.clock.Advance(10 * debounce)
}

func (s *SessionTestSuite) TestSaveFailureStaysInEditingMode() {
	s.load()
	s.beginEdit()

	s.session.SetAbilityScore(dnd5e.AbilityStrength, 20)

	s.mockCharRepo.EXPECT().
		Update(gomock.Any(), gomock.Any()).
		Return(nil, errors.Unavailable("storage is down"))

	err := s.session.Save(s.ctx)
	s.Require().Error(err)
	s.True(errors.IsUnavailable(err))

	// The buffer and mode survive so the user can retry or cancel
	s.Equal(editsession.ModeEditing, s.session.Mode())
	s.Equal(int32(5), s.session.Stats().AbilityModifiers[dnd5e.AbilityStrength])

	// The debounced autosave still fires with the unsaved buffer
	s.mockDraftRepo.EXPECT().
		Save(gomock.Any(), gomock.Any()).
		Return(&draftrepo.SaveOutput{}, nil)
	s.clock.Advance(debounce)
}

func (s *SessionTestSuite) TestSaveOutsideEditingModeIsRejected() {
	s.load()

	err := s.session.Save(s.ctx)
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *SessionTestSuite) TestCancelDiscardsBufferAndPendingAutosave() {
	s.load()
	s.beginEdit()

	s.session.SetAbilityScore(dnd5e.AbilityStrength, 20)
	s.session.Cancel()

	s.Equal(editsession.ModeViewing, s.session.Mode())
	s.Equal(int32(3), s.session.Stats().AbilityModifiers[dnd5e.AbilityStrength])

	// No stale save fires after cancel
	s.clock.Advance(10 * debounce)
}

func (s *SessionTestSuite) TestRestoreDraftAdoptsStoredBuffer() {
	s.load()

	stored := &dnd5e.AutosaveDraft{
		CharacterID: testCharacterID,
		PlayerID:    testPlayerID,
		Patch: dnd5e.CharacterPatch{
			AbilityScores: dnd5e.AbilityScores{
				Strength:     20,
				Dexterity:    14,
				Constitution: 13,
				Intelligence: 10,
				Wisdom:       12,
				Charisma:     8,
			},
			Backstory: "Draft backstory.",
		},
	}
	s.mockDraftRepo.EXPECT().
		Get(gomock.Any(), draftrepo.GetInput{CharacterID: testCharacterID, PlayerID: testPlayerID}).
		Return(&draftrepo.GetOutput{Draft: stored}, nil)

	s.Require().NoError(s.session.BeginEdit(s.ctx))
	s.True(s.session.RestorableDraft())

	s.Require().True(s.session.RestoreDraft())
	s.False(s.session.RestorableDraft())

	// The preview now reflects the restored draft
	stats := s.session.Stats()
	s.Equal(int32(5), stats.AbilityModifiers[dnd5e.AbilityStrength])

	// A second restore has nothing to hand back
	s.False(s.session.RestoreDraft())
}

func (s *SessionTestSuite) TestRestoreDraftOutsideEditingMode() {
	s.load()
	s.False(s.session.RestoreDraft())
}

func (s *SessionTestSuite) TestDiscardDraftDeletesStoredDraft() {
	s.load()

	stored := &dnd5e.AutosaveDraft{CharacterID: testCharacterID, PlayerID: testPlayerID}
	s.mockDraftRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(&draftrepo.GetOutput{Draft: stored}, nil)
	s.mockDraftRepo.EXPECT().
		Delete(gomock.Any(), draftrepo.DeleteInput{CharacterID: testCharacterID, PlayerID: testPlayerID}).
		Return(&draftrepo.DeleteOutput{}, nil)

	s.Require().NoError(s.session.BeginEdit(s.ctx))
	s.True(s.session.RestorableDraft())

	s.session.DiscardDraft(s.ctx)
	s.False(s.session.RestorableDraft())
	s.Equal(editsession.ModeEditing, s.session.Mode(), "discard keeps the session editing")
}
