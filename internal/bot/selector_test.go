package bot

import (
	"math/rand/v2"
	"testing"

	"github.com/rocketscienceinc/tictactoe-chat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-chat/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	x = entity.PlayerX
	o = entity.PlayerO
	e = entity.EmptyCell
)

var difficulties = []entity.Difficulty{entity.DifficultyEasy, entity.DifficultyMedium, entity.DifficultyHard}

// fixedRandom - always returns the same draw; index is clamped to the slice.
type fixedRandom struct {
	float float64
	index int
}

func (that fixedRandom) Float64() float64 {
	return that.float
}

func (that fixedRandom) IntN(n int) int {
	return min(that.index, n-1)
}

func seeded() Option {
	return WithRand(rand.New(rand.NewPCG(1, 2)))
}

func TestSelector_Select_Errors(t *testing.T) {
	selector := NewSelector(seeded())

	t.Run("Unknown difficulty is rejected", func(t *testing.T) {
		// When: asking for a move at an unknown level
		cell, err := selector.Select(entity.Board{}, "nightmare", entity.PlayerO)

		// Then: ErrInvalidDifficulty is returned
		require.ErrorIs(t, err, apperror.ErrInvalidDifficulty)
		assert.Equal(t, NoMove, cell)
	})

	t.Run("Unknown mark is rejected", func(t *testing.T) {
		_, err := selector.Select(entity.Board{}, entity.DifficultyHard, "Z")
		require.ErrorIs(t, err, apperror.ErrInvalidMark)
	})

	t.Run("Full board returns NoMove for every difficulty", func(t *testing.T) {
		// Given: a drawn board
		board := entity.Board{
			x, o, x,
			o, x, o,
			o, x, o,
		}

		for _, difficulty := range difficulties {
			// When: asking for a move
			cell, err := selector.Select(board, difficulty, entity.PlayerO)

			// Then: NoMove without an error
			require.NoError(t, err)
			assert.Equal(t, NoMove, cell, difficulty)
		}
	})
}

func TestSelector_Select_OneEmptyCell(t *testing.T) {
	// Given: a board with only cell 8 free
	board := entity.Board{
		x, o, x,
		o, x, o,
		o, x, e,
	}

	for _, difficulty := range difficulties {
		for seed := range uint64(20) {
			selector := NewSelector(WithRand(rand.New(rand.NewPCG(seed, seed))))

			// When: asking for a move with any random draw
			cell, err := selector.Select(board, difficulty, entity.PlayerX)

			// Then: the only free cell is returned
			require.NoError(t, err)
			assert.Equal(t, 8, cell, difficulty)
		}
	}
}

func TestSelector_Select_DoesNotMutateBoard(t *testing.T) {
	board := entity.Board{
		x, e, e,
		e, o, e,
		e, e, x,
	}
	before := board

	for _, difficulty := range difficulties {
		_, err := NewSelector(seeded()).Select(board, difficulty, entity.PlayerO)
		require.NoError(t, err)
	}

	assert.Equal(t, before, board)
}

func TestSelector_Select_AlwaysPicksEmptyCell(t *testing.T) {
	selector := NewSelector(seeded())

	for board, turn := range reachablePositions() {
		for _, difficulty := range difficulties[:2] {
			cell, err := selector.Select(board, difficulty, turn)
			require.NoError(t, err)
			require.Equal(t, entity.EmptyCell, board[cell], "board %v difficulty %s", board, difficulty)
		}
	}
}

func TestSelector_Medium(t *testing.T) {
	t.Run("Takes the win before blocking", func(t *testing.T) {
		// Given: O can win at 5 and X threatens 2
		board := entity.Board{
			x, x, e,
			o, o, e,
			x, e, e,
		}
		selector := NewSelector(WithMistakeRate(0), WithRand(fixedRandom{float: 0.99}))

		// When: the medium bot plays O
		cell, err := selector.Select(board, entity.DifficultyMedium, entity.PlayerO)

		// Then: it wins
		require.NoError(t, err)
		assert.Equal(t, 5, cell)
	})

	t.Run("Blocks the opponent", func(t *testing.T) {
		// Given: X threatens the top row
		board := entity.Board{
			x, x, e,
			e, o, e,
			e, e, e,
		}
		selector := NewSelector(WithMistakeRate(0), WithRand(fixedRandom{}))

		// When: the medium bot plays O
		cell, err := selector.Select(board, entity.DifficultyMedium, entity.PlayerO)

		// Then: it blocks at 2
		require.NoError(t, err)
		assert.Equal(t, 2, cell)
	})

	t.Run("Takes the center", func(t *testing.T) {
		board := entity.Board{x, e, e, e, e, e, e, e, e}
		selector := NewSelector(WithMistakeRate(0), WithRand(fixedRandom{}))

		cell, err := selector.Select(board, entity.DifficultyMedium, entity.PlayerO)

		require.NoError(t, err)
		assert.Equal(t, 4, cell)
	})

	t.Run("Takes the corner opposite the opponent's", func(t *testing.T) {
		// Given: X holds corner 6, a random corner would be 0
		board := entity.Board{
			e, x, e,
			e, o, e,
			x, e, e,
		}
		selector := NewSelector(WithMistakeRate(0), WithRand(fixedRandom{index: 0}))

		// When: the medium bot plays O
		cell, err := selector.Select(board, entity.DifficultyMedium, entity.PlayerO)

		// Then: it answers on the same diagonal
		require.NoError(t, err)
		assert.Equal(t, 2, cell)
	})

	t.Run("Takes a random free corner", func(t *testing.T) {
		// Given: X in the center, every corner free
		board := entity.Board{e, e, e, e, x, e, e, e, e}
		selector := NewSelector(WithMistakeRate(0), WithRand(fixedRandom{index: 2}))

		// When: the medium bot plays O
		cell, err := selector.Select(board, entity.DifficultyMedium, entity.PlayerO)

		// Then: the third corner is picked
		require.NoError(t, err)
		assert.Equal(t, 6, cell)
	})

	t.Run("Mistake ignores the board", func(t *testing.T) {
		// Given: O could win at 2
		board := entity.Board{
			o, o, e,
			x, x, e,
			x, e, e,
		}
		selector := NewSelector(WithRand(fixedRandom{float: 0.1, index: 3}))

		// When: the draw falls below the mistake rate
		cell, err := selector.Select(board, entity.DifficultyMedium, entity.PlayerO)

		// Then: the fourth empty cell is played instead
		require.NoError(t, err)
		assert.Equal(t, 8, cell)
	})
}

func TestSelector_Medium_WinsThenBlocksEverywhere(t *testing.T) {
	selector := NewSelector(WithMistakeRate(0), seeded())

	for board, turn := range reachablePositions() {
		available := board.EmptyCells()
		wins := winningCells(board, available, turn)
		blocks := winningCells(board, available, entity.Opponent(turn))

		cell, err := selector.Select(board, entity.DifficultyMedium, turn)
		require.NoError(t, err)

		switch {
		case len(wins) > 0:
			require.Contains(t, wins, cell, "board %v must win", board)
		case len(blocks) > 0:
			require.Contains(t, blocks, cell, "board %v must block", board)
		}
	}
}

func TestSelector_Easy(t *testing.T) {
	// Given: O can win at 5 and X threatens 2
	board := entity.Board{
		x, x, e,
		o, o, e,
		x, e, e,
	}

	t.Run("Smart draw wins", func(t *testing.T) {
		selector := NewSelector(WithRand(fixedRandom{float: 0.5}))

		cell, err := selector.Select(board, entity.DifficultyEasy, entity.PlayerO)

		require.NoError(t, err)
		assert.Equal(t, 5, cell)
	})

	t.Run("Smart draw blocks when it cannot win", func(t *testing.T) {
		// Given: X threatens the top row, O has no line to finish
		threatened := entity.Board{
			x, x, e,
			e, o, e,
			e, e, e,
		}
		selector := NewSelector(WithRand(fixedRandom{float: 0.5}))

		cell, err := selector.Select(threatened, entity.DifficultyEasy, entity.PlayerO)

		require.NoError(t, err)
		assert.Equal(t, 2, cell)
	})

	t.Run("Random draw plays any cell", func(t *testing.T) {
		selector := NewSelector(WithRand(fixedRandom{float: 0.1, index: 3}))

		cell, err := selector.Select(board, entity.DifficultyEasy, entity.PlayerO)

		require.NoError(t, err)
		assert.Equal(t, 8, cell)
	})

	t.Run("No threats falls back to random", func(t *testing.T) {
		selector := NewSelector(WithEasyRandomRate(0), WithRand(fixedRandom{index: 1}))

		cell, err := selector.Select(entity.Board{x, e, e, e, e, e, e, e, e}, entity.DifficultyEasy, entity.PlayerO)

		require.NoError(t, err)
		assert.Equal(t, 2, cell)
	})
}

func winningCells(board entity.Board, available []int, mark string) []int {
	var cells []int
	for _, cell := range available {
		if board.With(cell, mark).Evaluate().Winner == mark {
			cells = append(cells, cell)
		}
	}
	return cells
}

// reachablePositions - every non-terminal position of legal play, mapped to the side to move.
func reachablePositions() map[entity.Board]string {
	positions := make(map[entity.Board]string)

	var walk func(board entity.Board, turn string)
	walk = func(board entity.Board, turn string) {
		if board.IsTerminal() {
			return
		}
		if _, seen := positions[board]; seen {
			return
		}
		positions[board] = turn

		for _, cell := range board.EmptyCells() {
			walk(board.With(cell, turn), entity.Opponent(turn))
		}
	}
	walk(entity.Board{}, entity.PlayerX)

	return positions
}
