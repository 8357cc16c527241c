package bot

import (
	"fmt"
	"math/rand/v2"

	"github.com/rocketscienceinc/tictactoe-chat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-chat/internal/entity"
)

// NoMove - returned by Select when the board has no empty cells.
const NoMove = -1

const (
	DefaultEasyRandomRate = 0.3
	DefaultMistakeRate    = 0.2

	centerCell = 4
)

var (
	corners         = [4]int{0, 2, 6, 8}
	oppositeCorners = [2][2]int{{0, 8}, {2, 6}}
)

// Random - source of move variety. *rand.Rand from math/rand/v2 satisfies it.
type Random interface {
	Float64() float64
	IntN(n int) int
}

type Option func(*Selector)

// WithRand - use r instead of a freshly seeded generator.
func WithRand(r Random) Option {
	return func(that *Selector) {
		that.random = r
	}
}

// WithEasyRandomRate - probability that the easy bot ignores the board entirely.
func WithEasyRandomRate(rate float64) Option {
	return func(that *Selector) {
		that.easyRandomRate = rate
	}
}

// WithMistakeRate - probability that the medium bot plays a random cell.
func WithMistakeRate(rate float64) Option {
	return func(that *Selector) {
		that.mistakeRate = rate
	}
}

// Selector - picks the bot's move. Not safe for concurrent use.
type Selector struct {
	random         Random
	easyRandomRate float64
	mistakeRate    float64
}

func NewSelector(opts ...Option) *Selector {
	selector := &Selector{
		random:         rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())), //nolint: gosec // move variety only
		easyRandomRate: DefaultEasyRandomRate,
		mistakeRate:    DefaultMistakeRate,
	}

	for _, opt := range opts {
		opt(selector)
	}

	return selector
}

// Select - returns an empty cell for botMark to play, or NoMove if the board is full.
func (that *Selector) Select(board entity.Board, difficulty entity.Difficulty, botMark string) (int, error) {
	if !entity.IsValidMark(botMark) {
		return NoMove, fmt.Errorf("%w: %q", apperror.ErrInvalidMark, botMark)
	}

	if !difficulty.IsValid() {
		return NoMove, fmt.Errorf("%w: %q", apperror.ErrInvalidDifficulty, difficulty)
	}

	available := board.EmptyCells()
	if len(available) == 0 {
		return NoMove, nil
	}

	switch difficulty {
	case entity.DifficultyEasy:
		return that.easyMove(board, available, botMark), nil
	case entity.DifficultyMedium:
		return that.mediumMove(board, available, botMark), nil
	default:
		return newSearch(botMark, true).bestMove(board), nil
	}
}

// easyMove - mostly win-or-block, sometimes random.
func (that *Selector) easyMove(board entity.Board, available []int, botMark string) int {
	if that.random.Float64() < that.easyRandomRate {
		return that.randomCell(available)
	}

	if cell, ok := findWinningMove(board, available, botMark); ok {
		return cell
	}

	if cell, ok := findWinningMove(board, available, entity.Opponent(botMark)); ok {
		return cell
	}

	return that.randomCell(available)
}

// mediumMove - win, block, center, opposite corner, any corner; with occasional mistakes.
func (that *Selector) mediumMove(board entity.Board, available []int, botMark string) int {
	if that.random.Float64() < that.mistakeRate {
		return that.randomCell(available)
	}

	opponent := entity.Opponent(botMark)

	if cell, ok := findWinningMove(board, available, botMark); ok {
		return cell
	}

	if cell, ok := findWinningMove(board, available, opponent); ok {
		return cell
	}

	if board[centerCell] == entity.EmptyCell {
		return centerCell
	}

	// only the two diagonal pairs are considered
	for _, pair := range oppositeCorners {
		c1, c2 := pair[0], pair[1]
		if board[c1] == opponent && board[c2] == entity.EmptyCell {
			return c2
		}
		if board[c2] == opponent && board[c1] == entity.EmptyCell {
			return c1
		}
	}

	freeCorners := make([]int, 0, len(corners))
	for _, corner := range corners {
		if board[corner] == entity.EmptyCell {
			freeCorners = append(freeCorners, corner)
		}
	}

	if len(freeCorners) > 0 {
		return that.randomCell(freeCorners)
	}

	return that.randomCell(available)
}

func (that *Selector) randomCell(cells []int) int {
	return cells[that.random.IntN(len(cells))]
}

// findWinningMove - first cell in available that completes a line for mark.
func findWinningMove(board entity.Board, available []int, mark string) (int, bool) {
	for _, cell := range available {
		if board.With(cell, mark).Evaluate().Winner == mark {
			return cell, true
		}
	}

	return NoMove, false
}
