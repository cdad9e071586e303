// Package encounter implements the encounter orchestrator: assembling
// player characters and NPCs into an encounter, rolling initiative from
// their derived stats, and cycling the turn order.
package encounter

//go:generate mockgen -destination=mock/mock_service.go -package=encountermock github.com/tavernkeep/character-api/internal/orchestrators/encounter Service

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/tavernkeep/character-api/internal/engine"
	"github.com/tavernkeep/character-api/internal/errors"
	"github.com/tavernkeep/character-api/internal/pkg/idgen"
	characterrepo "github.com/tavernkeep/character-api/internal/repositories/character"
)

// Combatant types
const (
	CombatantTypeCharacter = "character"
	CombatantTypeNPC       = "npc"
)

// Service defines the interface for encounter operations
type Service interface {
	// CreateEncounter starts an empty encounter
	CreateEncounter(ctx context.Context, input *CreateEncounterInput) (*CreateEncounterOutput, error)

	// AddCharacter adds a stored character as a combatant, deriving its
	// initiative modifier through the stats engine
	AddCharacter(ctx context.Context, input *AddCharacterInput) (*AddCharacterOutput, error)

	// AddNPC adds a non-player combatant with explicit numbers
	AddNPC(ctx context.Context, input *AddNPCInput) (*AddNPCOutput, error)

	// RollInitiative rolls 1d20 + initiative modifier for every combatant
	// and fixes the turn order, highest total first
	RollInitiative(ctx context.Context, input *RollInitiativeInput) (*RollInitiativeOutput, error)

	// GetTurnOrder returns the current turn order
	GetTurnOrder(ctx context.Context, input *GetTurnOrderInput) (*GetTurnOrderOutput, error)

	// NextTurn advances to the next combatant, wrapping into a new round
	NextTurn(ctx context.Context, input *NextTurnInput) (*NextTurnOutput, error)
}

// Combatant is one participant in an encounter. It satisfies core.Entity so
// toolkit tooling can address it by ID and type.
type Combatant struct {
	ID            string
	Name          string
	Type          string
	InitiativeMod int32
	MaxHP         int32
	ArmorClass    int32
}

// Ensure Combatant implements core.Entity
var _ core.Entity = (*Combatant)(nil)

// GetID returns the combatant's unique ID
func (c *Combatant) GetID() string {
	return c.ID
}

// GetType returns the combatant's entity type
func (c *Combatant) GetType() string {
	return c.Type
}

// Config holds the dependencies for the encounter orchestrator
type Config struct {
	CharacterRepo characterrepo.Repository
	Engine        engine.Engine
	IDGenerator   idgen.Generator

	// RollD20 overrides the initiative die for tests; nil uses the
	// toolkit dice roller
	RollD20 func() (int32, error)
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.CharacterRepo == nil {
		vb.RequiredField("CharacterRepo")
	}
	if c.Engine == nil {
		vb.RequiredField("Engine")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

type orchestrator struct {
	characterRepo characterrepo.Repository
	engine        engine.Engine
	idGen         idgen.Generator
	rollD20       func() (int32, error)

	// In-memory storage; encounters are table-session scratch state, not
	// documents
	mu         sync.RWMutex
	encounters map[string]*encounterState
}

// encounterState holds the state of one active encounter
type encounterState struct {
	name        string
	combatants  []*Combatant
	order       []InitiativeEntry
	activeIndex int32
	round       int32
}

// NewOrchestrator creates a new encounter orchestrator with the provided
// dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	roll := cfg.RollD20
	if roll == nil {
		roll = rollToolkitD20
	}

	return &orchestrator{
		characterRepo: cfg.CharacterRepo,
		engine:        cfg.Engine,
		idGen:         cfg.IDGenerator,
		rollD20:       roll,
		encounters:    make(map[string]*encounterState),
	}, nil
}

// rollToolkitD20 rolls a single d20 through rpg-toolkit
func rollToolkitD20() (int32, error) {
	roll, err := dice.NewRoll(1, 20)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to roll initiative die")
	}
	return int32(roll.GetValue()), nil
}

func (o *orchestrator) CreateEncounter(ctx context.Context, input *CreateEncounterInput) (*CreateEncounterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	encounterID := o.idGen.Generate()

	o.mu.Lock()
	o.encounters[encounterID] = &encounterState{name: input.Name}
	o.mu.Unlock()

	slog.Info("encounter created",
		"encounter_id", encounterID,
		"name", input.Name,
	)

	return &CreateEncounterOutput{EncounterID: encounterID, Name: input.Name}, nil
}

func (o *orchestrator) AddCharacter(ctx context.Context, input *AddCharacterInput) (*AddCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("encounterID", input.EncounterID, vb)
	errors.ValidateRequired("characterID", input.CharacterID, vb)
	errors.ValidateRequired("playerID", input.PlayerID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	out, err := o.characterRepo.Get(ctx, characterrepo.GetInput{
		CharacterID: input.CharacterID,
		PlayerID:    input.PlayerID,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load character").
			WithMeta("character_id", input.CharacterID)
	}

	stats := o.engine.DeriveStats(out.Character)
	combatant := &Combatant{
		ID:            out.Character.ID,
		Name:          out.Character.Name,
		Type:          CombatantTypeCharacter,
		InitiativeMod: stats.Initiative,
		MaxHP:         stats.MaxHP,
		ArmorClass:    stats.ArmorClass,
	}

	if err := o.addCombatant(input.EncounterID, combatant); err != nil {
		return nil, err
	}

	return &AddCharacterOutput{Combatant: combatant}, nil
}

func (o *orchestrator) AddNPC(ctx context.Context, input *AddNPCInput) (*AddNPCOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("encounterID", input.EncounterID, vb)
	errors.ValidateRequired("name", input.Name, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	combatant := &Combatant{
		ID:            o.idGen.Generate(),
		Name:          input.Name,
		Type:          CombatantTypeNPC,
		InitiativeMod: input.InitiativeMod,
		MaxHP:         input.MaxHP,
		ArmorClass:    input.ArmorClass,
	}

	if err := o.addCombatant(input.EncounterID, combatant); err != nil {
		return nil, err
	}

	return &AddNPCOutput{Combatant: combatant}, nil
}

// addCombatant appends a combatant and invalidates any rolled order
func (o *orchestrator) addCombatant(encounterID string, combatant *Combatant) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	state, ok := o.encounters[encounterID]
	if !ok {
		return errors.NotFoundf("encounter %s not found", encounterID)
	}

	for _, existing := range state.combatants {
		if existing.ID == combatant.ID {
			return errors.AlreadyExists("combatant is already in the encounter")
		}
	}

	state.combatants = append(state.combatants, combatant)
	state.order = nil
	state.activeIndex = 0
	state.round = 0
	return nil
}

func (o *orchestrator) RollInitiative(ctx context.Context, input *RollInitiativeInput) (*RollInitiativeOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	state, ok := o.encounters[input.EncounterID]
	if !ok {
		return nil, errors.NotFoundf("encounter %s not found", input.EncounterID)
	}
	if len(state.combatants) == 0 {
		return nil, errors.FailedPrecondition("encounter has no combatants")
	}

	order := make([]InitiativeEntry, 0, len(state.combatants))
	for _, combatant := range state.combatants {
		roll, err := o.rollD20()
		if err != nil {
			return nil, err
		}
		order = append(order, InitiativeEntry{
			Combatant: combatant,
			Roll:      roll,
			Total:     roll + combatant.InitiativeMod,
		})
	}

	// Highest total acts first; ties go to the higher modifier, then name
	// for a stable order
	sort.SliceStable(order, func(i, j int) bool {
		if order[i].Total != order[j].Total {
			return order[i].Total > order[j].Total
		}
		if order[i].Combatant.InitiativeMod != order[j].Combatant.InitiativeMod {
			return order[i].Combatant.InitiativeMod > order[j].Combatant.InitiativeMod
		}
		return order[i].Combatant.Name < order[j].Combatant.Name
	})

	state.order = order
	state.activeIndex = 0
	state.round = 1

	return &RollInitiativeOutput{Order: order}, nil
}

func (o *orchestrator) GetTurnOrder(ctx context.Context, input *GetTurnOrderInput) (*GetTurnOrderOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	o.mu.RLock()
	defer o.mu.RUnlock()

	state, ok := o.encounters[input.EncounterID]
	if !ok {
		return nil, errors.NotFoundf("encounter %s not found", input.EncounterID)
	}
	if state.order == nil {
		return nil, errors.FailedPrecondition("initiative has not been rolled")
	}

	return &GetTurnOrderOutput{
		Order:       state.order,
		ActiveIndex: state.activeIndex,
		Round:       state.round,
	}, nil
}

func (o *orchestrator) NextTurn(ctx context.Context, input *NextTurnInput) (*NextTurnOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	state, ok := o.encounters[input.EncounterID]
	if !ok {
		return nil, errors.NotFoundf("encounter %s not found", input.EncounterID)
	}
	if state.order == nil {
		return nil, errors.FailedPrecondition("initiative has not been rolled")
	}

	state.activeIndex++
	if state.activeIndex >= int32(len(state.order)) {
		state.activeIndex = 0
		state.round++
	}

	return &NextTurnOutput{
		Active: state.order[state.activeIndex].Combatant,
		Round:  state.round,
	}, nil
}
