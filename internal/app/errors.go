package app

import "errors"

var (
	ErrUnknownPlayer     = errors.New("player not found")
	ErrPlayerEliminated  = errors.New("player is eliminated")
	ErrAlreadyJoined     = errors.New("player already joined")
	ErrRoomFull          = errors.New("room is full")
	ErrEmptyRoom         = errors.New("room has no players")
	ErrNotStarted        = errors.New("game not started")
	ErrAlreadyStarted    = errors.New("game already started")
	ErrGameFinished      = errors.New("game is finished")
	ErrWrongPhase        = errors.New("action not allowed in this phase")
	ErrWrongStage        = errors.New("action not allowed on this stage")
	ErrEmptySlot         = errors.New("shop slot is empty")
	ErrNotPurchasable    = errors.New("species cannot be bought")
	ErrNotEnoughMoney    = errors.New("not enough money")
	ErrBenchFull         = errors.New("bench is full")
	ErrDuplicateMythical = errors.New("mythical already owned")
	ErrNotProposed       = errors.New("not among the propositions")
	ErrAlreadyClaimed    = errors.New("species already claimed this game")
	ErrUnknownCreature   = errors.New("creature not found")
	ErrIllegalMove       = errors.New("illegal move")
	ErrItemNotHeld       = errors.New("item not held")
	ErrNoRecipe          = errors.New("items do not combine")
	ErrItemSlotsFull     = errors.New("creature cannot carry more items")
	ErrItemRejected      = errors.New("creature rejects items")
	ErrDuplicateItem     = errors.New("creature already carries this item")
	ErrMaxLevel          = errors.New("player is at max level")
)

// RejectionError is a refused intent the client must resynchronize after.
// The flags tell the client which regions to refresh.
type RejectionError struct {
	PlayerID    string
	UpdateBoard bool
	UpdateItems bool
	Err         error
}

func (e *RejectionError) Error() string { return e.Err.Error() }

func (e *RejectionError) Unwrap() error { return e.Err }

func rejectBoard(playerID string, err error) error {
	return &RejectionError{PlayerID: playerID, UpdateBoard: true, Err: err}
}

func rejectItems(playerID string, err error) error {
	return &RejectionError{PlayerID: playerID, UpdateItems: true, Err: err}
}
