package entity

const (
	PlayerX = "X"
	PlayerO = "O"

	EmptyCell = ""
)

const (
	StatusPlaying = "playing"
	StatusWon     = "won"
	StatusDraw    = "draw"
)

const BoardSize = 9

// WinCombos - the lines that win the game, in scan order.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Board - 3x3 grid stored row by row. Being an array, it is copied on assignment.
type Board [BoardSize]string

// Result - outcome of a board scan. Line is nil when there is no winner.
type Result struct {
	Winner string `json:"winner,omitempty"`
	Line   []int  `json:"line,omitempty"`
}

func (that Result) HasWinner() bool {
	return that.Winner != EmptyCell
}

// Evaluate - returns the first completed line in WinCombos order, or an empty Result.
func (that Board) Evaluate() Result {
	for _, combo := range WinCombos {
		a, b, c := that[combo[0]], that[combo[1]], that[combo[2]]
		if a != EmptyCell && a == b && b == c {
			return Result{
				Winner: a,
				Line:   []int{combo[0], combo[1], combo[2]},
			}
		}
	}

	return Result{}
}

func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

// Status - StatusWon, StatusDraw or StatusPlaying.
func (that Board) Status() string {
	if that.Evaluate().HasWinner() {
		return StatusWon
	}

	if that.IsFull() {
		return StatusDraw
	}

	return StatusPlaying
}

// IsTerminal - no further moves are legal.
func (that Board) IsTerminal() bool {
	return that.Status() != StatusPlaying
}

// EmptyCells - indices of empty cells in ascending order.
func (that Board) EmptyCells() []int {
	cells := make([]int, 0, BoardSize)
	for i, cell := range that {
		if cell == EmptyCell {
			cells = append(cells, i)
		}
	}

	return cells
}

// With - returns a copy of the board with mark placed at cell.
func (that Board) With(cell int, mark string) Board {
	that[cell] = mark
	return that
}

func IsValidMark(mark string) bool {
	return mark == PlayerX || mark == PlayerO
}

func Opponent(mark string) string {
	if mark == PlayerX {
		return PlayerO
	}
	return PlayerX
}
