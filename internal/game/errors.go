package game

import "errors"

// Action errors are sent back to the offending client as an "error" event
// followed by a fresh state_update so the client can resync. None of them
// tear down the connection.
var (
	ErrWrongPassword      = errors.New("incorrect room password")
	ErrRoomFull           = errors.New("room is full")
	ErrAlreadyInRoom      = errors.New("player already in room")
	ErrNotYourTurn        = errors.New("it is not your turn to draw")
	ErrInvalidWordChoice  = errors.New("word is not one of the offered choices")
	ErrGuessLimitReached  = errors.New("no guesses left for this round")
	ErrAllLettersRevealed = errors.New("every letter is already revealed")
	ErrHintCapReached     = errors.New("hint limit reached for this round")
	ErrNotCreator         = errors.New("only the room creator can do that")
	ErrGameAlreadyStarted = errors.New("game has already started")
	ErrNotEnoughPlayers   = errors.New("need at least 2 players to start")
	ErrRoomNotFound       = errors.New("room not found")
	ErrPlayerNotFound     = errors.New("player not found")
	ErrBotNotFound        = errors.New("bot not found")
)
