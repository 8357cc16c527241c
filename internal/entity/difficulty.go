package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-chat/internal/apperror"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func ParseDifficulty(value string) (Difficulty, error) {
	difficulty := Difficulty(strings.ToLower(strings.TrimSpace(value)))
	if !difficulty.IsValid() {
		return "", fmt.Errorf("%w: %q", apperror.ErrInvalidDifficulty, value)
	}

	return difficulty, nil
}

func (that Difficulty) IsValid() bool {
	switch that {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	default:
		return false
	}
}

// BotName - display name of the bot playing at the given level.
func BotName(difficulty Difficulty) string {
	switch difficulty {
	case DifficultyEasy:
		return "NoviceBot"
	case DifficultyMedium:
		return "TacticalBot"
	case DifficultyHard:
		return "MasterBot"
	default:
		return "Bot"
	}
}
