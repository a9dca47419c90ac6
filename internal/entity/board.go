package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-timed/internal/apperror"
)

type Mark string

const (
	MarkX Mark = "X"
	MarkO Mark = "O"

	EmptyCell Mark = ""
)

// Opponent - returns the other side's mark. EmptyCell has no opponent.
func (that Mark) Opponent() Mark {
	switch that {
	case MarkX:
		return MarkO
	case MarkO:
		return MarkX
	default:
		return EmptyCell
	}
}

func (that Mark) IsPlayer() bool {
	return that == MarkX || that == MarkO
}

// ParseMark - accepts "X"/"O" in either case.
func ParseMark(value string) (Mark, error) {
	switch value {
	case "X", "x":
		return MarkX, nil
	case "O", "o":
		return MarkO, nil
	default:
		return EmptyCell, fmt.Errorf("%w: %q", apperror.ErrUnknownSide, value)
	}
}

const BoardSize = 9

// Board - row-major 3x3 grid, index 0 is the top left cell.
type Board [BoardSize]Mark

type WinLine [3]int

// WinLines - the enumeration order is significant: Evaluate reports the first satisfied line.
var WinLines = [8]WinLine{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

type OutcomeState string

const (
	OutcomeInProgress OutcomeState = "in_progress"
	OutcomeWin        OutcomeState = "win"
	OutcomeDraw       OutcomeState = "draw"
)

type Outcome struct {
	State  OutcomeState `json:"state"`
	Winner Mark         `json:"winner,omitempty"`
	Line   WinLine      `json:"-"`
}

func InProgress() Outcome {
	return Outcome{State: OutcomeInProgress}
}

func (that Outcome) IsTerminal() bool {
	return that.State == OutcomeWin || that.State == OutcomeDraw
}

// Squares - indices of the winning line, empty unless the outcome is a win.
func (that Outcome) Squares() []int {
	if that.State != OutcomeWin {
		return []int{}
	}

	return []int{that.Line[0], that.Line[1], that.Line[2]}
}

// ApplyMove - returns a copy of board with mark placed at index. The input board is never changed.
func ApplyMove(board Board, index int, mark Mark) (Board, error) {
	if index < 0 || index >= BoardSize {
		return board, fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, index)
	}

	if !mark.IsPlayer() {
		return board, fmt.Errorf("%w: %q", apperror.ErrInvalidMark, mark)
	}

	if board[index] != EmptyCell {
		return board, fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, index)
	}

	board[index] = mark

	return board, nil
}

// Evaluate - checks the board for a win or a draw.
func Evaluate(board Board) Outcome {
	for _, line := range WinLines {
		a, b, c := board[line[0]], board[line[1]], board[line[2]]
		if a != EmptyCell && a == b && b == c {
			return Outcome{State: OutcomeWin, Winner: a, Line: line}
		}
	}

	// the game will continue until all the squares are full
	if !board.IsFull() {
		return InProgress()
	}

	return Outcome{State: OutcomeDraw}
}

func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

func (that Board) EmptyCells() []int {
	cells := make([]int, 0, BoardSize)
	for i, cell := range that {
		if cell == EmptyCell {
			cells = append(cells, i)
		}
	}

	return cells
}
