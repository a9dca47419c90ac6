package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"github.com/rocketscienceinc/tictactoe-timed/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timed/internal/entity"
	"github.com/rocketscienceinc/tictactoe-timed/internal/tictactoe"
)

const (
	tickInterval    = time.Second
	DefaultBotDelay = time.Second

	persistTimeout = 5 * time.Second
)

type statsRepo interface {
	Get(ctx context.Context) (*entity.Stats, error)
	Save(ctx context.Context, stats *entity.Stats) error
}

type botService interface {
	ChooseMove(board entity.Board, computer, opponent entity.Mark, difficulty entity.Difficulty) (int, bool)
}

type Options struct {
	TurnSeconds int
	BotDelay    time.Duration
	Players     entity.Players
	AI          entity.AIConfig
	AIName      string
}

// Session - owns the board, the turn machine and the stats of a single table.
// All state changes happen under mu, whether they come from a caller or from a timer.
type Session struct {
	logger    *slog.Logger
	clock     clock.Clock
	statsRepo statsRepo
	bot       botService

	botDelay time.Duration
	aiName   string

	mu      sync.Mutex
	baseCtx context.Context
	closed  bool

	gameID  string
	board   entity.Board
	turn    *tictactoe.TurnMachine
	stats   entity.Stats
	players entity.Players
	ai      entity.AIConfig

	// epoch changes with the board, the active mark, the terminal status or the AI flag.
	// A pending computer move only fires if the epoch it was armed with is still current.
	epoch     uint64
	tickTimer *clock.Timer
	botTimer  *clock.Timer

	nextListenerID int
	listeners      map[int]func(Snapshot)
}

func NewSession(logger *slog.Logger, clk clock.Clock, statsRepo statsRepo, bot botService, opts Options) *Session {
	if clk == nil {
		clk = clock.New()
	}

	if opts.BotDelay <= 0 {
		opts.BotDelay = DefaultBotDelay
	}

	if opts.AIName == "" {
		opts.AIName = entity.DefaultAIName
	}

	if !opts.AI.Mark.IsPlayer() {
		opts.AI.Mark = entity.MarkO
	}

	if opts.AI.Difficulty == "" {
		opts.AI.Difficulty = entity.DifficultyEasy
	}

	if opts.Players.X == "" {
		opts.Players.X = entity.DefaultPlayerXName
	}

	if opts.Players.O == "" {
		opts.Players.O = entity.DefaultPlayerOName
	}

	return &Session{
		logger:    logger.With("component", "session"),
		clock:     clk,
		statsRepo: statsRepo,
		bot:       bot,
		botDelay:  opts.BotDelay,
		aiName:    opts.AIName,
		baseCtx:   context.Background(),
		turn:      tictactoe.NewTurnMachine(opts.TurnSeconds),
		players:   opts.Players,
		ai:        opts.AI,
		listeners: make(map[int]func(Snapshot)),
	}
}

// Start - loads the stats and begins the first game. ctx bounds the stats writes made later by the session.
func (that *Session) Start(ctx context.Context) Snapshot {
	stats := that.loadStats(ctx)

	that.mu.Lock()
	defer that.mu.Unlock()

	that.baseCtx = ctx
	that.closed = false
	that.stats = stats
	that.newGameLocked()

	return that.publishLocked()
}

// Stop - cancels the pending tick and computer move. Later timer firings are ignored.
func (that *Session) Stop() {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.closed = true
	that.stopTimersLocked()
}

func (that *Session) Snapshot() Snapshot {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.snapshotLocked()
}

// Subscribe - registers fn for every state change. fn runs with the session locked,
// so it must not block or call back into the session.
func (that *Session) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	that.mu.Lock()
	defer that.mu.Unlock()

	id := that.nextListenerID
	that.nextListenerID++
	that.listeners[id] = fn

	return func() {
		that.mu.Lock()
		defer that.mu.Unlock()

		delete(that.listeners, id)
	}
}

// PlaceMark - applies a human move for the active side.
// A rejected move wraps apperror.ErrInvalidMove and leaves the session untouched.
func (that *Session) PlaceMark(_ context.Context, cell int) (Snapshot, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	state := that.turn.State()

	if state.IsTerminal() {
		return that.snapshotLocked(), apperror.ErrGameFinished
	}

	if that.ai.Controls(state.ActiveMark) {
		return that.snapshotLocked(), fmt.Errorf("%w: %s is played by the computer", apperror.ErrNotYourTurn, state.ActiveMark)
	}

	if err := that.applyMoveLocked(cell, "human"); err != nil {
		that.logger.Debug("move rejected", "game_id", that.gameID, "cell", cell, "error", err)

		return that.snapshotLocked(), err
	}

	return that.publishLocked(), nil
}

// ToggleAI - switches the computer opponent on or off and starts a new game. Scores are kept.
func (that *Session) ToggleAI(_ context.Context) Snapshot {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.ai.Enabled = !that.ai.Enabled
	that.logger.Info("computer opponent toggled", "enabled", that.ai.Enabled, "mark", that.ai.Mark)

	that.newGameLocked()

	return that.publishLocked()
}

// SetDifficulty - takes effect from the computer's next move.
func (that *Session) SetDifficulty(_ context.Context, difficulty entity.Difficulty) (Snapshot, error) {
	parsed, err := entity.ParseDifficulty(string(difficulty))
	if err != nil {
		return that.Snapshot(), err
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	that.ai.Difficulty = parsed
	that.logger.Info("difficulty changed", "difficulty", parsed)

	return that.publishLocked(), nil
}

// ResetGame - starts a new game; with clearScores the stats are zeroed and persisted as well.
func (that *Session) ResetGame(_ context.Context, clearScores bool) Snapshot {
	that.mu.Lock()
	defer that.mu.Unlock()

	if clearScores {
		that.stats = entity.Stats{}
		that.persistStatsLocked()
	}

	that.newGameLocked()

	return that.publishLocked()
}

// RenamePlayer - sets the human name of a side. While the computer plays that side its name is shown instead.
func (that *Session) RenamePlayer(_ context.Context, side entity.Mark, name string) (Snapshot, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if err := that.players.Rename(side, name); err != nil {
		return that.snapshotLocked(), fmt.Errorf("failed to rename player: %w", err)
	}

	return that.publishLocked(), nil
}

func (that *Session) loadStats(ctx context.Context) entity.Stats {
	log := that.logger.With("method", "loadStats")

	stats, err := that.statsRepo.Get(ctx)
	switch {
	case errors.Is(err, apperror.ErrNotFound):
		log.Info("no stored stats, starting from zero")
		return entity.Stats{}
	case err != nil:
		log.Warn("could not read stored stats, starting from zero", "error", err)
		return entity.Stats{}
	case stats == nil || !stats.IsValid():
		log.Warn("stored stats are inconsistent, starting from zero", "stats", stats)
		return entity.Stats{}
	}

	return *stats
}

func (that *Session) newGameLocked() {
	that.stopTimersLocked()

	that.gameID = uuid.NewString()
	that.board = entity.Board{}
	that.turn.Reset()
	that.epoch++

	that.logger.Info("game started", "game_id", that.gameID, "ai", that.ai.Enabled, "difficulty", that.ai.Difficulty)

	that.armTurnLocked()
}

func (that *Session) applyMoveLocked(cell int, origin string) error {
	mark := that.turn.State().ActiveMark

	board, err := entity.ApplyMove(that.board, cell, mark)
	if err != nil {
		return fmt.Errorf("failed to apply move: %w", err)
	}

	state, err := that.turn.Moved(entity.Evaluate(board))
	if err != nil {
		return fmt.Errorf("failed to advance turn: %w", err)
	}

	that.board = board
	that.epoch++

	that.logger.Debug("move applied", "game_id", that.gameID, "origin", origin, "mark", mark, "cell", cell)

	if state.IsTerminal() {
		that.finishGameLocked(state.Outcome)
		return nil
	}

	that.armTurnLocked()

	return nil
}

// finishGameLocked - runs exactly once per game, from the move that ended it.
func (that *Session) finishGameLocked(outcome entity.Outcome) {
	that.stopTimersLocked()

	that.stats.Record(outcome)

	that.logger.Info("game finished",
		"game_id", that.gameID,
		"outcome", outcome.State,
		"winner", outcome.Winner,
		"total_games", that.stats.TotalGames,
	)

	that.persistStatsLocked()
}

// persistStatsLocked - a failed write is logged and otherwise ignored; the in-memory stats stay authoritative.
func (that *Session) persistStatsLocked() {
	ctx, cancel := context.WithTimeout(that.baseCtx, persistTimeout)
	defer cancel()

	stats := that.stats
	if err := that.statsRepo.Save(ctx, &stats); err != nil {
		that.logger.Warn("could not persist stats", "game_id", that.gameID, "error", err)
		return
	}

	that.logger.Debug("stats persisted", "stats", stats)
}

// armTurnLocked - restarts the countdown for the active side and schedules the computer when it is to move.
func (that *Session) armTurnLocked() {
	that.stopTimersLocked()

	state := that.turn.State()
	if state.IsTerminal() || that.closed {
		return
	}

	that.armTickLocked(state.Generation)

	if that.ai.Controls(state.ActiveMark) {
		epoch := that.epoch
		that.botTimer = that.clock.AfterFunc(that.botDelay, func() {
			that.onBotMove(epoch)
		})
	}
}

func (that *Session) armTickLocked(generation uint64) {
	that.tickTimer = that.clock.AfterFunc(tickInterval, func() {
		that.onTick(generation)
	})
}

func (that *Session) stopTimersLocked() {
	if that.tickTimer != nil {
		that.tickTimer.Stop()
		that.tickTimer = nil
	}

	if that.botTimer != nil {
		that.botTimer.Stop()
		that.botTimer = nil
	}
}

func (that *Session) onTick(generation uint64) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.closed {
		return
	}

	state, result := that.turn.Tick(generation)

	switch result {
	case tictactoe.TickStale:
		return
	case tictactoe.TickCountdown:
		that.armTickLocked(generation)
	case tictactoe.TickForfeit:
		that.epoch++
		that.logger.Info("turn forfeited",
			"game_id", that.gameID,
			"forfeited", state.ActiveMark.Opponent(),
			"active", state.ActiveMark,
		)
		that.armTurnLocked()
	}

	that.publishLocked()
}

func (that *Session) onBotMove(epoch uint64) {
	that.mu.Lock()
	defer that.mu.Unlock()

	state := that.turn.State()
	if that.closed || epoch != that.epoch || state.IsTerminal() || !that.ai.Controls(state.ActiveMark) {
		return
	}

	computer := state.ActiveMark

	cell, ok := that.bot.ChooseMove(that.board, computer, computer.Opponent(), that.ai.Difficulty)
	if !ok {
		return
	}

	if err := that.applyMoveLocked(cell, "computer"); err != nil {
		that.logger.Error("computer move rejected", "game_id", that.gameID, "cell", cell, "error", err)
		return
	}

	that.publishLocked()
}

func (that *Session) publishLocked() Snapshot {
	snapshot := that.snapshotLocked()
	for _, fn := range that.listeners {
		fn(snapshot)
	}

	return snapshot
}

func (that *Session) snapshotLocked() Snapshot {
	state := that.turn.State()

	players := that.players
	if that.ai.Enabled {
		if that.ai.Mark == entity.MarkX {
			players.X = that.aiName
		} else {
			players.O = that.aiName
		}
	}

	snapshot := Snapshot{
		GameID:           that.gameID,
		Board:            that.board,
		Phase:            state.Phase,
		ActiveMark:       state.ActiveMark,
		SecondsRemaining: state.SecondsRemaining,
		Outcome:          state.Outcome,
		WinningSquares:   state.Outcome.Squares(),
		Players:          players,
		AI:               that.ai,
		Stats:            that.stats,
	}
	snapshot.Status = StatusLine(snapshot)

	return snapshot
}
