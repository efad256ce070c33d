package game

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/game/core"
	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/game/events"
	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/game/states"
	"github.com/rs/zerolog"
)

// MoveSelector picks the computer's move. It only reads the state.
type MoveSelector interface {
	SelectMove(gs *GameState, rng core.RandomSource) (core.Move, bool)
}

// PowerUpChooser is implemented by selectors that also decide when to spend a
// held power-up. Returning false keeps it.
type PowerUpChooser interface {
	ChoosePowerUp(gs *GameState, rng core.RandomSource) (core.PowerUpType, core.Position, bool)
}

// Engine is a play session: one human against the computer. It serialises all
// transitions and owns the current snapshot.
type Engine struct {
	mu sync.Mutex

	gs            *GameState
	rng           core.RandomSource
	reducer       *Reducer
	turnProcessor *TurnProcessor
	selector      MoveSelector
	stateMachine  *states.StateMachine
	eventBus      *events.EventBus
	logger        zerolog.Logger

	humanColor    core.Color
	thinkingDelay time.Duration
	stateOpts     []StateOption
	startFEN      string
	history       []core.Move

	// generation changes on every reset so a computer turn started before it is dropped
	generation uint64
}

// NewEngine creates and initializes a session from the given configuration
func NewEngine(ctx context.Context, cfg GameConfig) (*Engine, error) {
	return NewEngineInitializer(cfg).Initialize(ctx)
}

// GameState returns the current snapshot. Snapshots are never modified.
func (e *Engine) GameState() *GameState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.gs
}

// IsGameOver reports whether the current game has finished
func (e *Engine) IsGameOver() bool {
	return e.GameState().IsOver()
}

// Winner returns the winner, WinnerNone while the game is running
func (e *Engine) Winner() Winner {
	return e.GameState().Winner
}

func (e *Engine) HumanColor() core.Color    { return e.humanColor }
func (e *Engine) ComputerColor() core.Color { return e.humanColor.Opposite() }
func (e *Engine) EventBus() *events.EventBus {
	return e.eventBus
}

// Phase returns the session phase
func (e *Engine) Phase() states.GamePhase {
	return e.stateMachine.CurrentPhase()
}

// IsHumanTurn reports whether the session is waiting on the human
func (e *Engine) IsHumanTurn() bool {
	return e.Phase() == states.PhaseHumanTurn
}

// History returns the moves played so far
func (e *Engine) History() []core.Move {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]core.Move(nil), e.history...)
}

// LegalMoves returns what the side to move may play, teleports included
func (e *Engine) LegalMoves() []core.Move {
	gs := e.GameState()
	moves := LegalMoves(gs, gs.CurrentPlayer)
	return append(moves, TeleportMoves(gs, gs.CurrentPlayer)...)
}

// SubmitMove plays the human's move
func (e *Engine) SubmitMove(ctx context.Context, m core.Move) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.checkSide(e.humanColor); err != nil {
		return core.WrapMoveError(m, err)
	}
	return e.turnProcessor.ProcessMove(ctx, m)
}

// SubmitUCI parses a move in coordinate notation against the current board and plays it
func (e *Engine) SubmitUCI(ctx context.Context, uci string, teleport bool) error {
	gs := e.GameState()
	m, err := core.ParseUCI(&gs.Board, uci)
	if err != nil {
		return err
	}
	if teleport {
		m = teleportMove(gs, m.From, m.To)
	}
	return e.SubmitMove(ctx, m)
}

// UsePowerUp spends the human's held power-up
func (e *Engine) UsePowerUp(ctx context.Context, kind core.PowerUpType, target core.Position) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.checkSide(e.humanColor); err != nil {
		return core.NewGameError(e.gs.TurnCount, e.humanColor, "use "+kind.String(), err)
	}
	return e.turnProcessor.ProcessPowerUp(ctx, kind, target)
}

// RunComputerTurn waits out the thinking delay and then plays the computer's
// move. Cancelling ctx or resetting the session abandons the turn. A nil move
// with a nil error means the computer had nothing to play and passed.
func (e *Engine) RunComputerTurn(ctx context.Context) (*core.Move, error) {
	e.mu.Lock()
	if err := e.checkSide(e.ComputerColor()); err != nil {
		e.mu.Unlock()
		return nil, err
	}
	gen := e.generation
	e.mu.Unlock()

	if e.thinkingDelay > 0 {
		timer := time.NewTimer(e.thinkingDelay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %w", core.ErrComputerTurnAborted, ctx.Err())
		case <-timer.C:
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.generation != gen {
		e.logger.Debug().Msg("Session reset while computer was thinking")
		return nil, core.ErrComputerTurnAborted
	}
	if err := e.checkSide(e.ComputerColor()); err != nil {
		return nil, err
	}

	if chooser, ok := e.selector.(PowerUpChooser); ok {
		if kind, target, use := chooser.ChoosePowerUp(e.gs, e.rng); use {
			if err := e.turnProcessor.ProcessPowerUp(ctx, kind, target); err != nil {
				e.logger.Debug().Err(err).Str("power_up", kind.String()).Msg("Computer power-up rejected")
			}
		}
	}

	m, ok := e.selector.SelectMove(e.gs, e.rng)
	if !ok {
		return nil, e.turnProcessor.ProcessPass(ctx)
	}
	if err := e.turnProcessor.ProcessMove(ctx, m); err != nil {
		return nil, err
	}
	return &m, nil
}

// checkSide reports whether c may act now. Callers hold the lock.
func (e *Engine) checkSide(c core.Color) error {
	if e.gs.IsOver() {
		return core.WrapGameStateError(e.gs.TurnCount, states.PhaseGameOver.String(), core.ErrGameOver)
	}
	if e.gs.CurrentPlayer != c {
		return core.WrapGameStateError(e.gs.TurnCount, e.stateMachine.CurrentPhase().String(), core.ErrNotYourTurn)
	}
	return nil
}

// Reset abandons the current game, including any computer turn in progress,
// and starts a fresh one with the same settings
func (e *Engine) Reset() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.generation++
	if err := e.stateMachine.Reset("reset requested"); err != nil {
		return fmt.Errorf("failed to reset session: %w", err)
	}
	e.startGame()
	return e.enterFirstTurn()
}

// startGame installs a fresh initial state. Callers hold the lock.
func (e *Engine) startGame() {
	e.gs = e.reducer.CreateInitialGameState(e.rng, e.stateOpts...)
	e.gs = e.reducer.EvaluateGameOver(e.gs)
	e.history = nil

	gameCtx := e.stateMachine.GetContext()
	gameCtx.GameID = e.gs.GameID
	gameCtx.Logger = e.logger.With().Str("game_id", e.gs.GameID).Logger()

	e.eventBus.Publish(events.NewGameStartedEvent(e.gs.GameID, e.humanColor, e.startFEN))
}

// enterFirstTurn moves the session out of initialization. Callers hold the lock.
func (e *Engine) enterFirstTurn() error {
	if e.gs.IsOver() {
		return e.stateMachine.Finish(e.gs.Winner.String(), e.gs.EndReason, e.gs.TurnCount)
	}
	return e.stateMachine.Start(e.gs.CurrentPlayer)
}
