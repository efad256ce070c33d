package game

import (
	"context"
	"fmt"
	"time"

	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/game/core"
	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/game/states"
	"github.com/rs/zerolog"
)

// TurnProcessor handles the orchestration of a single turn. Callers hold the
// engine lock for the duration of every method.
type TurnProcessor struct {
	engine *Engine
	logger zerolog.Logger
}

// NewTurnProcessor creates a new turn processor
func NewTurnProcessor(engine *Engine) *TurnProcessor {
	return &TurnProcessor{
		engine: engine,
		logger: engine.logger,
	}
}

// ProcessMove plays a move for the side to move and runs the rest of the turn
func (tp *TurnProcessor) ProcessMove(ctx context.Context, m core.Move) error {
	// Check context at start
	if err := tp.checkContext(ctx, "before move"); err != nil {
		return err
	}

	// Validate game state
	if err := tp.validateGameState(); err != nil {
		return err
	}

	prev := tp.engine.gs

	// Create turn-scoped logger
	turnLogger := tp.logger.With().Int("turn", prev.TurnCount+1).Str("side", prev.CurrentPlayer.String()).Logger()
	turnLogger.Debug().Str("move", m.UCI()).Msg("Starting turn")
	turnStartTime := time.Now()

	next, err := tp.engine.reducer.TryApplyMove(prev, m)
	if err != nil {
		turnLogger.Debug().Err(err).Msg("Move rejected")
		return core.WrapGameStateError(prev.TurnCount, tp.engine.stateMachine.CurrentPhase().String(), err)
	}

	// Mechanics phase
	if err := tp.checkContext(ctx, "before mechanics"); err != nil {
		return core.WrapGameStateError(prev.TurnCount, "mechanics", fmt.Errorf("context cancelled: %w", err))
	}
	next = tp.engine.reducer.AdvanceTurnMechanics(next, tp.engine.rng)

	// End of turn phase
	next = tp.engine.reducer.EvaluateGameOver(next)

	action := states.ActionMove
	if prev.ExtraMoveArmed[prev.CurrentPlayer] && next.CurrentPlayer == prev.CurrentPlayer {
		action = states.ActionExtraMove
	}
	tp.commit(next, action, turnLogger)
	tp.engine.history = append(tp.engine.history, *next.LastMove)

	turnLogger.Debug().
		Dur("duration", time.Since(turnStartTime)).
		Int("events", len(next.Events)).
		Msg("Turn finished")
	return nil
}

// ProcessPowerUp spends the side to move's held power-up. The turn does not end.
func (tp *TurnProcessor) ProcessPowerUp(ctx context.Context, kind core.PowerUpType, target core.Position) error {
	if err := tp.checkContext(ctx, "before power-up"); err != nil {
		return err
	}
	if err := tp.validateGameState(); err != nil {
		return err
	}

	prev := tp.engine.gs
	next, err := tp.engine.reducer.TryUsePowerUp(prev, prev.CurrentPlayer, kind, target)
	if err != nil {
		return err
	}
	tp.commit(next, states.ActionPowerUp, tp.logger.With().Int("turn", prev.TurnCount).Logger())
	return nil
}

// ProcessPass hands the move over when the side to move has nothing to play
func (tp *TurnProcessor) ProcessPass(ctx context.Context) error {
	if err := tp.checkContext(ctx, "before pass"); err != nil {
		return err
	}
	if err := tp.validateGameState(); err != nil {
		return err
	}

	prev := tp.engine.gs
	turnLogger := tp.logger.With().Int("turn", prev.TurnCount).Logger()
	turnLogger.Info().Str("side", prev.CurrentPlayer.String()).Msg("No legal move, passing")
	tp.commit(tp.engine.reducer.PassTurn(prev), states.ActionPass, turnLogger)
	return nil
}

// commit installs the new snapshot, publishes what it produced and records the
// action with the session phase machine
func (tp *TurnProcessor) commit(next *GameState, action states.Action, turnLogger zerolog.Logger) {
	tp.engine.gs = next
	tp.engine.eventBus.PublishAll(next.Events)

	sm := tp.engine.stateMachine
	var err error
	if next.IsOver() {
		err = sm.Finish(next.Winner.String(), next.EndReason, next.TurnCount)
	} else {
		err = sm.Advance(action, next.CurrentPlayer, next.TurnCount)
	}
	if err != nil {
		turnLogger.Error().Err(err).Str("action", action.String()).Msg("Session phase rejected the turn")
	}
}

// checkContext checks if the context is cancelled
func (tp *TurnProcessor) checkContext(ctx context.Context, phase string) error {
	select {
	case <-ctx.Done():
		tp.logger.Warn().
			Err(ctx.Err()).
			Int("turn", tp.engine.gs.TurnCount).
			Str("phase", phase).
			Msg("Turn cancelled or timed out")
		return ctx.Err()
	default:
		return nil
	}
}

// validateGameState ensures the game can receive moves
func (tp *TurnProcessor) validateGameState() error {
	if tp.engine.gs.IsOver() {
		tp.logger.Warn().
			Int("turn", tp.engine.gs.TurnCount).
			Msg("Attempted to play a game that is already over")
		return core.WrapGameStateError(tp.engine.gs.TurnCount, "move", core.ErrGameOver)
	}

	currentPhase := tp.engine.stateMachine.CurrentPhase()
	if !currentPhase.CanReceiveMoves() {
		tp.logger.Warn().
			Str("current_phase", currentPhase.String()).
			Int("turn", tp.engine.gs.TurnCount).
			Msg("Attempted to move in phase that cannot receive moves")
		return fmt.Errorf("game is in %s phase and cannot receive moves", currentPhase)
	}

	return nil
}
