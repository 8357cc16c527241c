package bot

import (
	"math"

	"github.com/rocketscienceinc/tictactoe-chat/internal/entity"
)

const winScore = 10

// search - one minimax run from the bot's point of view.
type search struct {
	bot      string
	opponent string
	prune    bool

	// nodes visited, for comparing pruned and exhaustive runs
	nodes int
}

func newSearch(botMark string, prune bool) *search {
	return &search{
		bot:      botMark,
		opponent: entity.Opponent(botMark),
		prune:    prune,
	}
}

// bestMove - first empty cell, in index order, with the highest minimax score.
func (that *search) bestMove(board entity.Board) int {
	bestMove, bestScore := NoMove, math.MinInt
	alpha, beta := math.MinInt, math.MaxInt

	for _, cell := range board.EmptyCells() {
		score := that.minimax(board.With(cell, that.bot), 0, false, alpha, beta)
		if score > bestScore {
			bestScore = score
			bestMove = cell
		}

		if that.prune {
			alpha = max(alpha, bestScore)
		}
	}

	return bestMove
}

// minimax - board is a private copy; depth counts plies below the root's children.
func (that *search) minimax(board entity.Board, depth int, maximizing bool, alpha, beta int) int {
	that.nodes++

	switch winner := board.Evaluate().Winner; {
	case winner == that.bot:
		return winScore - depth
	case winner == that.opponent:
		return depth - winScore
	case board.IsFull():
		return 0
	}

	if maximizing {
		best := math.MinInt
		for _, cell := range board.EmptyCells() {
			best = max(best, that.minimax(board.With(cell, that.bot), depth+1, false, alpha, beta))
			alpha = max(alpha, best)
			if that.prune && beta <= alpha {
				break
			}
		}
		return best
	}

	best := math.MaxInt
	for _, cell := range board.EmptyCells() {
		best = min(best, that.minimax(board.With(cell, that.opponent), depth+1, true, alpha, beta))
		beta = min(beta, best)
		if that.prune && beta <= alpha {
			break
		}
	}

	return best
}
