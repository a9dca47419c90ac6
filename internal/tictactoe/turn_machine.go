package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-timed/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timed/internal/entity"
)

const DefaultTurnSeconds = 10

type Phase string

const (
	PhaseWaitingForMove Phase = "waiting_for_move"
	PhaseTerminal       Phase = "terminal"
)

// TurnState - whose move it is and how long they have left.
// Generation changes whenever a new turn starts or the game ends, so timers armed for an older turn can be told apart.
type TurnState struct {
	Phase            Phase          `json:"phase"`
	ActiveMark       entity.Mark    `json:"active_mark"`
	SecondsRemaining int            `json:"seconds_remaining"`
	Outcome          entity.Outcome `json:"outcome"`
	Generation       uint64         `json:"-"`
}

func (that TurnState) IsTerminal() bool {
	return that.Phase == PhaseTerminal
}

type TickResult int

const (
	// TickStale - the tick was armed for a turn that is already over; nothing changed.
	TickStale TickResult = iota
	TickCountdown
	// TickForfeit - time ran out and the turn passed to the other side without a move.
	TickForfeit
)

func (that TickResult) String() string {
	switch that {
	case TickCountdown:
		return "countdown"
	case TickForfeit:
		return "forfeit"
	default:
		return "stale"
	}
}

type TurnMachine struct {
	budget int
	state  TurnState
}

// NewTurnMachine - creates a machine waiting for X with a full budget. A non-positive budget falls back to DefaultTurnSeconds.
func NewTurnMachine(budget int) *TurnMachine {
	if budget <= 0 {
		budget = DefaultTurnSeconds
	}

	machine := &TurnMachine{budget: budget}
	machine.Reset()

	return machine
}

func (that *TurnMachine) Budget() int {
	return that.budget
}

func (that *TurnMachine) State() TurnState {
	return that.state
}

// Reset - starts over with X to move, valid from any state.
func (that *TurnMachine) Reset() {
	that.state = TurnState{
		Phase:            PhaseWaitingForMove,
		ActiveMark:       entity.MarkX,
		SecondsRemaining: that.budget,
		Outcome:          entity.InProgress(),
		Generation:       that.state.Generation + 1,
	}
}

// Moved - advances after the active side's move has been applied to the board and evaluated.
func (that *TurnMachine) Moved(outcome entity.Outcome) (TurnState, error) {
	if that.state.IsTerminal() {
		return that.state, fmt.Errorf("%w: outcome %s", apperror.ErrGameFinished, that.state.Outcome.State)
	}

	that.state.Generation++

	if outcome.IsTerminal() {
		that.state.Phase = PhaseTerminal
		that.state.Outcome = outcome

		return that.state, nil
	}

	that.passTurn()

	return that.state, nil
}

// Tick - one second elapsed for the timer armed at generation.
func (that *TurnMachine) Tick(generation uint64) (TurnState, TickResult) {
	if that.state.IsTerminal() || generation != that.state.Generation {
		return that.state, TickStale
	}

	if that.state.SecondsRemaining > 1 {
		that.state.SecondsRemaining--

		return that.state, TickCountdown
	}

	that.state.Generation++
	that.passTurn()

	return that.state, TickForfeit
}

func (that *TurnMachine) passTurn() {
	that.state.ActiveMark = that.state.ActiveMark.Opponent()
	that.state.SecondsRemaining = that.budget
}
