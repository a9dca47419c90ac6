package entity

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-timed/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	x = MarkX
	o = MarkO
	e = EmptyCell
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name    string
		board   Board
		outcome Outcome
	}{
		{
			name:    "top row X wins",
			board:   Board{x, x, x, e, o, o, e, e, e},
			outcome: Outcome{State: OutcomeWin, Winner: x, Line: WinLine{0, 1, 2}},
		},
		{
			name:    "middle row O wins",
			board:   Board{x, e, x, o, o, o, x, e, e},
			outcome: Outcome{State: OutcomeWin, Winner: o, Line: WinLine{3, 4, 5}},
		},
		{
			name:    "bottom row X wins",
			board:   Board{o, o, e, e, e, e, x, x, x},
			outcome: Outcome{State: OutcomeWin, Winner: x, Line: WinLine{6, 7, 8}},
		},
		{
			name:    "left column X wins",
			board:   Board{x, o, e, x, o, e, x, e, e},
			outcome: Outcome{State: OutcomeWin, Winner: x, Line: WinLine{0, 3, 6}},
		},
		{
			name:    "middle column O wins",
			board:   Board{x, o, e, e, o, x, e, o, x},
			outcome: Outcome{State: OutcomeWin, Winner: o, Line: WinLine{1, 4, 7}},
		},
		{
			name:    "right column X wins",
			board:   Board{o, e, x, e, o, x, e, e, x},
			outcome: Outcome{State: OutcomeWin, Winner: x, Line: WinLine{2, 5, 8}},
		},
		{
			name:    "main diagonal X wins",
			board:   Board{x, o, e, e, x, o, e, e, x},
			outcome: Outcome{State: OutcomeWin, Winner: x, Line: WinLine{0, 4, 8}},
		},
		{
			name:    "anti diagonal O wins",
			board:   Board{x, x, o, e, o, e, o, e, x},
			outcome: Outcome{State: OutcomeWin, Winner: o, Line: WinLine{2, 4, 6}},
		},
		{
			name:    "full board without a line is a draw",
			board:   Board{x, o, x, x, o, o, o, x, x},
			outcome: Outcome{State: OutcomeDraw},
		},
		{
			name:    "empty board is in progress",
			board:   Board{},
			outcome: InProgress(),
		},
		{
			name:    "partial board is in progress",
			board:   Board{x, o, x, e, o, e, o, x, e},
			outcome: InProgress(),
		},
		{
			name:    "win on the last cell beats draw",
			board:   Board{x, o, x, o, x, o, o, x, x},
			outcome: Outcome{State: OutcomeWin, Winner: x, Line: WinLine{0, 4, 8}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// When: evaluating the board
			outcome := Evaluate(tt.board)

			// Then: the expected outcome is reported
			assert.Equal(t, tt.outcome, outcome)
		})
	}
}

func TestEvaluate_FirstLineWins(t *testing.T) {
	t.Run("Two satisfied lines report the first in enumeration order", func(t *testing.T) {
		// Given: a board where the top row and the left column are both X
		board := Board{x, x, x, x, o, o, x, o, o}

		// When: evaluating the board
		outcome := Evaluate(board)

		// Then: the top row is reported
		assert.Equal(t, WinLine{0, 1, 2}, outcome.Line)
		assert.Equal(t, []int{0, 1, 2}, outcome.Squares())
	})

	t.Run("Lines of different marks report the first in enumeration order", func(t *testing.T) {
		// Given: an unreachable board where O holds the middle row and X the bottom row
		board := Board{e, e, e, o, o, o, x, x, x}

		// When: evaluating the board
		outcome := Evaluate(board)

		// Then: O's middle row wins because it comes first
		assert.Equal(t, o, outcome.Winner)
		assert.Equal(t, WinLine{3, 4, 5}, outcome.Line)
	})
}

func TestApplyMove(t *testing.T) {
	t.Run("Places the mark on an empty cell", func(t *testing.T) {
		// Given: an empty board
		board := Board{}

		// When: X plays the center
		next, err := ApplyMove(board, 4, x)

		// Then: only the center changes and the input is untouched
		require.NoError(t, err)
		assert.Equal(t, Board{e, e, e, e, x, e, e, e, e}, next)
		assert.Equal(t, Board{}, board)
	})

	t.Run("Occupied cell is rejected and the board is unchanged", func(t *testing.T) {
		// Given: a board with X in the corner
		board := Board{x, e, e, e, e, e, e, e, e}

		// When: O tries the same cell
		next, err := ApplyMove(board, 0, o)

		// Then: the move is invalid and nothing changes
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		require.ErrorIs(t, err, apperror.ErrInvalidMove)
		assert.Equal(t, board, next)
	})

	t.Run("Index out of range is rejected", func(t *testing.T) {
		for _, index := range []int{-1, 9, 20} {
			// When: a move is made outside the grid
			_, err := ApplyMove(Board{}, index, x)

			// Then: the move is invalid
			require.ErrorIs(t, err, apperror.ErrInvalidCell, "index %d", index)
			require.ErrorIs(t, err, apperror.ErrInvalidMove)
		}
	})

	t.Run("Empty mark is rejected", func(t *testing.T) {
		// When: a move is made without a mark
		_, err := ApplyMove(Board{}, 0, EmptyCell)

		// Then: the move is invalid
		require.ErrorIs(t, err, apperror.ErrInvalidMark)
	})
}

func TestBoard_EmptyCells(t *testing.T) {
	// Given: a board with three marks
	board := Board{x, e, o, e, x, e, e, e, e}

	// Then: the free cells are listed in ascending order
	assert.Equal(t, []int{1, 3, 5, 6, 7, 8}, board.EmptyCells())
	assert.False(t, board.IsFull())
	assert.True(t, Board{x, o, x, x, o, o, o, x, x}.IsFull())
}

func TestMark_Opponent(t *testing.T) {
	assert.Equal(t, o, x.Opponent())
	assert.Equal(t, x, o.Opponent())
	assert.Equal(t, EmptyCell, EmptyCell.Opponent())
}

func TestParseMark(t *testing.T) {
	mark, err := ParseMark("o")
	require.NoError(t, err)
	assert.Equal(t, MarkO, mark)

	_, err = ParseMark("Z")
	require.ErrorIs(t, err, apperror.ErrUnknownSide)
}
