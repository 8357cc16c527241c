package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-chat/internal/apperror"
)

// StartOptions - how a new game is set up.
type StartOptions struct {
	Mode        string     `json:"mode"`
	Difficulty  Difficulty `json:"difficulty,omitempty"`
	BotMark     string     `json:"bot_mark,omitempty"`
	PlayerXName string     `json:"player_x_name,omitempty"`
	PlayerOName string     `json:"player_o_name,omitempty"`

	Chat    *TelegramChat `json:"-"`
	Players *Players      `json:"-"`
}

// Validate - fills defaults for bot games and rejects unknown modes, levels and marks.
func (that *StartOptions) Validate(defaultDifficulty Difficulty) error {
	switch that.Mode {
	case ModeHuman:
		return nil
	case ModeBot:
	default:
		return fmt.Errorf("%w: %q", apperror.ErrInvalidGameMode, that.Mode)
	}

	if that.Difficulty == "" {
		that.Difficulty = defaultDifficulty
	}

	difficulty, err := ParseDifficulty(string(that.Difficulty))
	if err != nil {
		return err
	}
	that.Difficulty = difficulty

	if that.BotMark == "" {
		that.BotMark = PlayerO
	}

	if !IsValidMark(that.BotMark) {
		return fmt.Errorf("%w: %q", apperror.ErrInvalidMark, that.BotMark)
	}

	return nil
}
