package rest

import (
	"errors"
	"net/http"

	"github.com/rocketscienceinc/tictactoe-chat/internal/apperror"
)

var ErrInvalidBody = errors.New("invalid request body")

var badRequestErrors = []error{
	ErrInvalidBody,
	apperror.ErrInvalidCell,
	apperror.ErrInvalidMark,
	apperror.ErrInvalidDifficulty,
	apperror.ErrInvalidGameMode,
	apperror.ErrUnknownCommand,
	apperror.ErrMissingOpponent,
	apperror.ErrEmptyCommand,
	apperror.ErrMissingSender,
}

var conflictErrors = []error{
	apperror.ErrGameFinished,
	apperror.ErrNotYourTurn,
	apperror.ErrNotBotTurn,
	apperror.ErrCellOccupied,
}

// statusFor - HTTP status for an error returned by the game manager.
func statusFor(err error) int {
	if errors.Is(err, apperror.ErrGameNotFound) {
		return http.StatusNotFound
	}

	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}

	for _, target := range conflictErrors {
		if errors.Is(err, target) {
			return http.StatusConflict
		}
	}

	return http.StatusInternalServerError
}
