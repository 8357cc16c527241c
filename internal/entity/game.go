package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-chat/internal/apperror"
)

const (
	ModeBot   = "bot"
	ModeHuman = "human"
)

const (
	DefaultPlayerXName = "Player X"
	DefaultPlayerOName = "Player O"
)

type Game struct {
	ID            string        `json:"id"`
	Board         Board         `json:"board"`
	Turn          string        `json:"player_turn"`
	Status        string        `json:"status"`
	Winner        string        `json:"winner,omitempty"`
	WinningLine   []int         `json:"winning_line,omitempty"`
	Mode          string        `json:"mode"`
	BotDifficulty Difficulty    `json:"bot_difficulty,omitempty"`
	BotMark       string        `json:"bot_mark,omitempty"`
	PlayerXName   string        `json:"player_x_name"`
	PlayerOName   string        `json:"player_o_name"`
	MoveCount     int           `json:"move_count"`
	Chat          *TelegramChat `json:"chat,omitempty"`
	Players       *Players      `json:"players,omitempty"`
}

func NewGame(id, mode string) *Game {
	return &Game{
		ID:          id,
		Turn:        PlayerX,
		Status:      StatusPlaying,
		Mode:        mode,
		PlayerXName: DefaultPlayerXName,
		PlayerOName: DefaultPlayerOName,
	}
}

// MakeTurn - places mark at cell and moves the game to its next state.
func (that *Game) MakeTurn(playerMark string, cell int) error {
	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	if cell < 0 || cell >= len(that.Board) {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if that.Turn != playerMark {
		return apperror.ErrNotYourTurn
	}

	if that.Board[cell] != EmptyCell {
		return apperror.ErrCellOccupied
	}

	that.Board[cell] = playerMark
	that.MoveCount++

	that.UpdateGameState()

	return nil
}

func (that *Game) UpdateGameState() {
	result := that.Board.Evaluate()

	switch {
	case result.HasWinner():
		that.Status = StatusWon
		that.Winner = result.Winner
		that.WinningLine = result.Line
	case that.Board.IsFull():
		that.Status = StatusDraw
	default:
		that.Status = StatusPlaying
		that.Turn = Opponent(that.Turn)
	}
}

// Reset - fresh board, same mode, difficulty and names.
func (that *Game) Reset() {
	that.Board = Board{}
	that.Turn = PlayerX
	that.Status = StatusPlaying
	that.Winner = EmptyCell
	that.WinningLine = nil
	that.MoveCount = 0
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusWon || that.Status == StatusDraw
}

func (that *Game) IsPlaying() bool {
	return that.Status == StatusPlaying
}

func (that *Game) IsWithBot() bool {
	return that.Mode == ModeBot
}

func (that *Game) IsBotTurn() bool {
	return that.IsWithBot() && that.IsPlaying() && that.Turn == that.BotMark
}

// HumanMark - the mark a human plays with; in human mode it is whoever moves next.
func (that *Game) HumanMark() string {
	if that.IsWithBot() {
		return Opponent(that.BotMark)
	}
	return that.Turn
}

// PlayerName - display name of the side playing mark.
func (that *Game) PlayerName(mark string) string {
	if mark == PlayerX {
		return that.PlayerXName
	}
	return that.PlayerOName
}

// SetPlayerNames - empty names fall back to defaults; the bot side always carries the bot name.
func (that *Game) SetPlayerNames(playerX, playerO string) {
	if playerX == "" {
		playerX = DefaultPlayerXName
	}

	if playerO == "" {
		playerO = DefaultPlayerOName
	}

	that.PlayerXName = playerX
	that.PlayerOName = playerO

	if that.IsWithBot() {
		switch that.BotMark {
		case PlayerX:
			that.PlayerXName = BotName(that.BotDifficulty)
		default:
			that.PlayerOName = BotName(that.BotDifficulty)
		}
	}
}
