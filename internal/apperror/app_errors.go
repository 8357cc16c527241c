package apperror

import "errors"

var (
	ErrGameNotFound      = errors.New("game not found")
	ErrGameFinished      = errors.New("game is already finished")
	ErrNotYourTurn       = errors.New("it's not your turn")
	ErrNotBotTurn        = errors.New("it's not the bot's turn")
	ErrCellOccupied      = errors.New("cell is already occupied")
	ErrInvalidCell       = errors.New("invalid cell index")
	ErrInvalidMark       = errors.New("invalid player mark")
	ErrInvalidDifficulty = errors.New("invalid difficulty level")
	ErrInvalidGameMode   = errors.New("invalid game mode")
	ErrUnknownCommand    = errors.New("unknown command")
	ErrMissingOpponent   = errors.New("opponent is required")
	ErrEmptyCommand      = errors.New("command is empty")
	ErrMissingSender     = errors.New("command sender is required")
)
