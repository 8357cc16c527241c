package entity

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-chat/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartOptions_Validate(t *testing.T) {
	t.Run("Bot game gets defaults", func(t *testing.T) {
		options := &StartOptions{Mode: ModeBot}

		require.NoError(t, options.Validate(DifficultyMedium))
		assert.Equal(t, DifficultyMedium, options.Difficulty)
		assert.Equal(t, PlayerO, options.BotMark)
	})

	t.Run("Difficulty is normalised", func(t *testing.T) {
		options := &StartOptions{Mode: ModeBot, Difficulty: "Hard", BotMark: PlayerX}

		require.NoError(t, options.Validate(DifficultyMedium))
		assert.Equal(t, DifficultyHard, options.Difficulty)
		assert.Equal(t, PlayerX, options.BotMark)
	})

	t.Run("Human game ignores bot settings", func(t *testing.T) {
		options := &StartOptions{Mode: ModeHuman, Difficulty: "whatever"}

		assert.NoError(t, options.Validate(DifficultyMedium))
	})

	t.Run("Rejects unknown values", func(t *testing.T) {
		assert.ErrorIs(t, (&StartOptions{Mode: "solo"}).Validate(DifficultyMedium), apperror.ErrInvalidGameMode)
		assert.ErrorIs(t, (&StartOptions{Mode: ModeBot, Difficulty: "x"}).Validate(DifficultyMedium), apperror.ErrInvalidDifficulty)
		assert.ErrorIs(t, (&StartOptions{Mode: ModeBot, BotMark: "Z"}).Validate(DifficultyMedium), apperror.ErrInvalidMark)
	})
}
