package telegram

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-chat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-chat/internal/entity"
)

const (
	CommandStart = "/start"
	CommandBot   = "/bot"
	CommandVs    = "/vs"

	chatTypeGroup = "group"
)

type Command struct {
	Name string
	Args []string
}

// ParseCommand - splits text on whitespace; the command name is lower-cased.
func ParseCommand(text string) (Command, error) {
	parts := strings.Fields(text)
	if len(parts) == 0 {
		return Command{}, apperror.ErrEmptyCommand
	}

	return Command{
		Name: strings.ToLower(parts[0]),
		Args: parts[1:],
	}, nil
}

// BuildStart - translates a chat command into the options of a new game, sender always plays X.
func BuildStart(text string, chatID int64, from *entity.TelegramUser, defaultDifficulty entity.Difficulty) (*entity.StartOptions, error) {
	if from == nil {
		return nil, apperror.ErrMissingSender
	}

	command, err := ParseCommand(text)
	if err != nil {
		return nil, err
	}

	options := &entity.StartOptions{
		Chat:        &entity.TelegramChat{ID: chatID, Type: chatTypeGroup},
		Players:     &entity.Players{X: from},
		PlayerXName: from.DisplayName(),
	}

	switch command.Name {
	case CommandStart:
		options.Mode = entity.ModeHuman
	case CommandBot:
		difficulty := defaultDifficulty
		if len(command.Args) > 0 {
			if difficulty, err = entity.ParseDifficulty(command.Args[0]); err != nil {
				return nil, fmt.Errorf("failed to parse difficulty: %w", err)
			}
		}

		options.Mode = entity.ModeBot
		options.Difficulty = difficulty
		options.BotMark = entity.PlayerO
	case CommandVs:
		if len(command.Args) == 0 || strings.TrimPrefix(command.Args[0], "@") == "" {
			return nil, apperror.ErrMissingOpponent
		}

		opponent := &entity.TelegramUser{Username: strings.TrimPrefix(command.Args[0], "@")}
		opponent.FirstName = opponent.Username

		options.Mode = entity.ModeHuman
		options.Players.O = opponent
		options.PlayerOName = opponent.DisplayName()
	default:
		return nil, fmt.Errorf("%w: %s", apperror.ErrUnknownCommand, command.Name)
	}

	return options, nil
}
