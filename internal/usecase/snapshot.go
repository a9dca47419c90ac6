package usecase

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-timed/internal/entity"
	"github.com/rocketscienceinc/tictactoe-timed/internal/tictactoe"
)

// Snapshot - everything a view needs to draw the table.
type Snapshot struct {
	GameID           string          `json:"game_id"`
	Board            entity.Board    `json:"board"`
	Phase            tictactoe.Phase `json:"phase"`
	ActiveMark       entity.Mark     `json:"active_mark"`
	SecondsRemaining int             `json:"seconds_remaining"`
	Outcome          entity.Outcome  `json:"outcome"`
	WinningSquares   []int           `json:"winning_squares"`
	Status           string          `json:"status"`
	Players          entity.Players  `json:"players"`
	AI               entity.AIConfig `json:"ai"`
	Stats            entity.Stats    `json:"stats"`
}

// StatusLine - the one line summary shown under the board.
func StatusLine(snapshot Snapshot) string {
	switch snapshot.Outcome.State {
	case entity.OutcomeDraw:
		return "It's a Draw!"
	case entity.OutcomeWin:
		return "Winner: " + snapshot.Players.Name(snapshot.Outcome.Winner)
	default:
		return fmt.Sprintf("Next player: %s (Time left: %ds)", snapshot.Players.Name(snapshot.ActiveMark), snapshot.SecondsRemaining)
	}
}

func Rules(turnSeconds int) []string {
	return []string{
		"Get 3 in a row to win.",
		fmt.Sprintf("You have %d seconds per turn.", turnSeconds),
		"Fail to play? Your turn is skipped.",
		"AI plays if enabled.",
	}
}

// Rules - the rules for this session's turn budget.
func (that *Session) Rules() []string {
	return Rules(that.turn.Budget())
}
