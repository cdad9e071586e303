package encounter

// CreateEncounterInput contains the parameters for a new encounter
type CreateEncounterInput struct {
	Name string
}

// CreateEncounterOutput contains the created encounter's ID
type CreateEncounterOutput struct {
	EncounterID string
	Name        string
}

// AddCharacterInput adds a stored character to an encounter
type AddCharacterInput struct {
	EncounterID string
	CharacterID string
	PlayerID    string
}

// AddCharacterOutput contains the combatant entry created for the character
type AddCharacterOutput struct {
	Combatant *Combatant
}

// AddNPCInput adds a non-player combatant with explicit numbers
type AddNPCInput struct {
	EncounterID   string
	Name          string
	InitiativeMod int32
	MaxHP         int32
	ArmorClass    int32
}

// AddNPCOutput contains the combatant entry created for the NPC
type AddNPCOutput struct {
	Combatant *Combatant
}

// RollInitiativeInput identifies the encounter to roll for
type RollInitiativeInput struct {
	EncounterID string
}

// RollInitiativeOutput contains the rolled turn order, highest first
type RollInitiativeOutput struct {
	Order []InitiativeEntry
}

// GetTurnOrderInput identifies the encounter to inspect
type GetTurnOrderInput struct {
	EncounterID string
}

// GetTurnOrderOutput contains the current turn order and active combatant
type GetTurnOrderOutput struct {
	Order       []InitiativeEntry
	ActiveIndex int32
	Round       int32
}

// NextTurnInput advances the encounter to the next combatant
type NextTurnInput struct {
	EncounterID string
}

// NextTurnOutput reports the combatant whose turn begins
type NextTurnOutput struct {
	Active *Combatant
	Round  int32
}

// InitiativeEntry is one combatant's place in the rolled order
type InitiativeEntry struct {
	Combatant *Combatant
	Roll      int32
	Total     int32
}
