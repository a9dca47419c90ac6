package service

import (
	"math"
	"math/rand/v2"
	"sync"

	"github.com/rocketscienceinc/tictactoe-timed/internal/entity"
)

const (
	winScore  = 10
	lossScore = -10
	drawScore = 0
)

type BotService interface {
	// ChooseMove - picks a cell for computer. Returns false when the board has no empty cell.
	ChooseMove(board entity.Board, computer, opponent entity.Mark, difficulty entity.Difficulty) (int, bool)
}

type botService struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewBotService - creates a computer opponent drawing randomness from rnd. A nil rnd uses a randomly seeded source.
func NewBotService(rnd *rand.Rand) BotService {
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())) //nolint: gosec // it's ok
	}

	return &botService{rnd: rnd}
}

func (that *botService) ChooseMove(board entity.Board, computer, opponent entity.Mark, difficulty entity.Difficulty) (int, bool) {
	availableCells := board.EmptyCells()
	if len(availableCells) == 0 {
		return -1, false
	}

	switch difficulty {
	case entity.DifficultyHard:
		return bestMove(board, computer, opponent), true
	case entity.DifficultyMedium:
		if that.coinFlip() {
			return that.randomCell(availableCells), true
		}

		return bestMove(board, computer, opponent), true
	default:
		return that.randomCell(availableCells), true
	}
}

func (that *botService) randomCell(availableCells []int) int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return availableCells[that.rnd.IntN(len(availableCells))]
}

func (that *botService) coinFlip() bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.rnd.IntN(2) == 0
}

// bestMove - full minimax over the remaining cells. Equal scores keep the lowest index.
func bestMove(board entity.Board, computer, opponent entity.Mark) int {
	scratch := board

	bestScore := math.MinInt
	bestCell := -1

	for cell := range scratch {
		if scratch[cell] != entity.EmptyCell {
			continue
		}

		scratch[cell] = computer
		score := minimax(&scratch, false, computer, opponent)
		scratch[cell] = entity.EmptyCell

		if score > bestScore {
			bestScore = score
			bestCell = cell
		}
	}

	return bestCell
}

// minimax - every placement on board is undone before returning, so the caller gets it back unchanged.
func minimax(board *entity.Board, maximizing bool, computer, opponent entity.Mark) int {
	switch outcome := entity.Evaluate(*board); outcome.State {
	case entity.OutcomeWin:
		if outcome.Winner == computer {
			return winScore
		}

		return lossScore
	case entity.OutcomeDraw:
		return drawScore
	case entity.OutcomeInProgress:
	}

	mark, best := opponent, math.MaxInt
	if maximizing {
		mark, best = computer, math.MinInt
	}

	for cell := range board {
		if board[cell] != entity.EmptyCell {
			continue
		}

		board[cell] = mark
		score := minimax(board, !maximizing, computer, opponent)
		board[cell] = entity.EmptyCell

		if (maximizing && score > best) || (!maximizing && score < best) {
			best = score
		}
	}

	return best
}
