package service

import (
	"math/rand/v2"
	"testing"

	"github.com/rocketscienceinc/tictactoe-timed/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	x = entity.MarkX
	o = entity.MarkO
	e = entity.EmptyCell
)

var difficulties = []entity.Difficulty{entity.DifficultyEasy, entity.DifficultyMedium, entity.DifficultyHard}

func newTestBot() BotService {
	return NewBotService(rand.New(rand.NewPCG(1, 2)))
}

func TestBotService_ChooseMove_BlocksImmediateLoss(t *testing.T) {
	// Given: X threatens the top row and the computer plays O
	board := entity.Board{x, x, e, e, o, e, e, e, e}

	// When: the hard bot chooses a move
	cell, ok := newTestBot().ChooseMove(board, o, x, entity.DifficultyHard)

	// Then: it blocks at index 2
	require.True(t, ok)
	assert.Equal(t, 2, cell)
}

func TestBotService_ChooseMove_FullBoard(t *testing.T) {
	bot := newTestBot()

	for _, difficulty := range difficulties {
		// Given: a board without an empty cell
		board := entity.Board{x, o, x, x, o, o, o, x, x}

		// When: the bot is asked for a move
		cell, ok := bot.ChooseMove(board, o, x, difficulty)

		// Then: no move is returned
		assert.False(t, ok, difficulty)
		assert.Equal(t, -1, cell, difficulty)
	}
}

func TestBotService_ChooseMove_DoesNotMutateBoard(t *testing.T) {
	// Given: a mid game board
	board := entity.Board{x, e, e, e, o, e, e, e, x}
	original := board

	// When: the hard bot searches it
	_, ok := newTestBot().ChooseMove(board, o, x, entity.DifficultyHard)
	require.True(t, ok)

	// Then: the board is the same
	assert.Equal(t, original, board)
}

func TestBestMove_RestoresScratchBoard(t *testing.T) {
	// Given: a scratch board shared with the search
	board := entity.Board{x, e, o, e, x, e, e, e, e}
	scratch := board

	// When: running the search directly on it
	minimax(&scratch, false, o, x)

	// Then: every simulated placement has been undone
	assert.Equal(t, board, scratch)
}

func TestBotService_ChooseMove_NeverPicksOccupiedCell(t *testing.T) {
	bot := newTestBot()

	// every combination of marks, including ones reachable only through forfeits
	var board entity.Board
	var walk func(index int)
	walk = func(index int) {
		if index == entity.BoardSize {
			if entity.Evaluate(board).IsTerminal() {
				return
			}

			for _, computer := range []entity.Mark{x, o} {
				for _, difficulty := range difficulties {
					cell, ok := bot.ChooseMove(board, computer, computer.Opponent(), difficulty)
					require.True(t, ok)
					require.Equal(t, e, board[cell], "board %v difficulty %s", board, difficulty)
				}
			}

			return
		}

		for _, mark := range []entity.Mark{e, x, o} {
			board[index] = mark
			walk(index + 1)
		}
		board[index] = e
	}

	walk(0)
}

func TestBotService_Hard_NeverLoses(t *testing.T) {
	bot := newTestBot()

	for _, computer := range []entity.Mark{x, o} {
		t.Run("hard plays "+string(computer), func(t *testing.T) {
			var losses, games int

			// the opponent tries every legal move, the computer answers with its choice
			var play func(board entity.Board, turn entity.Mark)
			play = func(board entity.Board, turn entity.Mark) {
				outcome := entity.Evaluate(board)
				if outcome.IsTerminal() {
					games++
					if outcome.State == entity.OutcomeWin && outcome.Winner != computer {
						losses++
					}

					return
				}

				if turn == computer {
					cell, ok := bot.ChooseMove(board, computer, computer.Opponent(), entity.DifficultyHard)
					require.True(t, ok)

					next, err := entity.ApplyMove(board, cell, computer)
					require.NoError(t, err)
					play(next, turn.Opponent())

					return
				}

				for _, cell := range board.EmptyCells() {
					next, err := entity.ApplyMove(board, cell, turn)
					require.NoError(t, err)
					play(next, turn.Opponent())
				}
			}

			play(entity.Board{}, x)

			assert.Positive(t, games)
			assert.Zero(t, losses)
		})
	}
}

func TestBotService_HardVersusHard_Draws(t *testing.T) {
	bot := newTestBot()

	// Given: an empty board with X to move
	board := entity.Board{}
	turn := x

	// When: both sides play hard until the game ends
	for !entity.Evaluate(board).IsTerminal() {
		cell, ok := bot.ChooseMove(board, turn, turn.Opponent(), entity.DifficultyHard)
		require.True(t, ok)

		var err error
		board, err = entity.ApplyMove(board, cell, turn)
		require.NoError(t, err)

		turn = turn.Opponent()
	}

	// Then: the game is a draw
	assert.Equal(t, entity.OutcomeDraw, entity.Evaluate(board).State)
}

func TestBotService_Easy_UsesEveryEmptyCell(t *testing.T) {
	bot := newTestBot()

	// Given: a board with three free cells
	board := entity.Board{x, o, e, x, o, e, o, x, e}
	seen := make(map[int]int)

	// When: the easy bot picks many times
	for range 300 {
		cell, ok := bot.ChooseMove(board, o, x, entity.DifficultyEasy)
		require.True(t, ok)
		seen[cell]++
	}

	// Then: only free cells are picked and each of them shows up
	assert.Len(t, seen, 3)
	for _, cell := range []int{2, 5, 8} {
		assert.Positive(t, seen[cell], "cell %d", cell)
	}
}

func TestBotService_Medium_MixesRandomAndOptimal(t *testing.T) {
	bot := newTestBot()

	// Given: a board where only index 2 avoids losing
	board := entity.Board{x, x, e, e, o, e, e, e, e}
	var blocks, others int

	// When: the medium bot picks many times
	for range 400 {
		cell, ok := bot.ChooseMove(board, o, x, entity.DifficultyMedium)
		require.True(t, ok)

		if cell == 2 {
			blocks++
		} else {
			others++
		}
	}

	// Then: it blocks more often than chance alone would, but not always
	assert.Greater(t, blocks, others)
	assert.Positive(t, others)
}
