package states

import (
	"errors"
	"fmt"
	"sync"

	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/game/core"
	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/game/events"
)

var (
	// ErrInvalidTransition is returned when the phase graph does not allow a transition
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrTurnOrder is returned when an action does not fit whose turn it is
	ErrTurnOrder = errors.New("turn order violated")
)

// State represents a game state with lifecycle callbacks
type State interface {
	// Phase returns the GamePhase this state represents
	Phase() GamePhase

	// Enter is called when transitioning into this state
	Enter(ctx *GameContext) error

	// Exit is called when transitioning out of this state
	Exit(ctx *GameContext) error

	// Validate checks if the state is valid given the context
	Validate(ctx *GameContext) error
}

// StateMachine tracks the session phase and enforces turn order. Only an extra
// move or a power-up keeps a side on turn; every other action must hand it over.
type StateMachine struct {
	mu           sync.RWMutex
	currentPhase GamePhase
	states       map[GamePhase]State
	context      *GameContext
	eventBus     events.Publisher
}

// NewStateMachine creates a new state machine
func NewStateMachine(ctx *GameContext, eventBus events.Publisher) *StateMachine {
	sm := &StateMachine{
		currentPhase: PhaseInitializing,
		states:       make(map[GamePhase]State),
		context:      ctx,
		eventBus:     eventBus,
	}
	for _, s := range []State{
		NewInitializingState(),
		NewHumanTurnState(),
		NewComputerTurnState(),
		NewGameOverState(),
		NewResetState(),
	} {
		sm.states[s.Phase()] = s
	}
	return sm
}

// CurrentPhase returns the current game phase
func (sm *StateMachine) CurrentPhase() GamePhase {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.currentPhase
}

// GetContext returns the game context
func (sm *StateMachine) GetContext() *GameContext {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.context
}

// Start leaves setup and opens the first turn for toMove
func (sm *StateMachine) Start(toMove core.Color) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.currentPhase != PhaseInitializing {
		return fmt.Errorf("%w: cannot start from %s", ErrInvalidTransition, sm.currentPhase)
	}
	return sm.transitionLocked(sm.context.PhaseFor(toMove), "game started")
}

// Advance records an action by the side on turn. toMove is the side to move after
// it and turn the game's turn counter.
func (sm *StateMachine) Advance(action Action, toMove core.Color, turn int) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ctx := sm.context
	if !sm.currentPhase.CanReceiveMoves() {
		return fmt.Errorf("%w: %s during %s", ErrTurnOrder, action, sm.currentPhase)
	}
	if action.KeepsTurn() != (toMove == ctx.ToMove) {
		return fmt.Errorf("%w: %s by %s cannot leave %s to move", ErrTurnOrder, action, ctx.ToMove, toMove)
	}
	ctx.Turn = turn

	switch action {
	case ActionPowerUp:
		if ctx.PowerUpUsed {
			return fmt.Errorf("%w: %s already spent a power-up this turn", ErrTurnOrder, ctx.ToMove)
		}
		ctx.PowerUpUsed = true
		return nil
	case ActionExtraMove:
		ctx.beginTurn(toMove)
		ctx.ExtraMoves++
		ctx.Logger.Debug().
			Int("turn", turn).
			Str("side", toMove.String()).
			Msg("Extra move, same side continues")
		return nil
	default:
		return sm.transitionLocked(ctx.PhaseFor(toMove), fmt.Sprintf("%s after %s", toMove, action))
	}
}

// Finish records the result and enters PhaseGameOver
func (sm *StateMachine) Finish(winner, reason string, turn int) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.context.Winner = winner
	sm.context.Reason = reason
	sm.context.Turn = turn
	return sm.transitionLocked(PhaseGameOver, reason)
}

// Reset passes through PhaseReset back to PhaseInitializing from any phase
func (sm *StateMachine) Reset(reason string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.currentPhase == PhaseInitializing {
		return nil
	}
	if sm.currentPhase != PhaseReset {
		if err := sm.transitionLocked(PhaseReset, reason); err != nil {
			return err
		}
	}
	return sm.transitionLocked(PhaseInitializing, reason)
}

func (sm *StateMachine) transitionLocked(targetPhase GamePhase, reason string) error {
	if !sm.currentPhase.CanTransitionTo(targetPhase) {
		return fmt.Errorf("%w from %s to %s", ErrInvalidTransition, sm.currentPhase, targetPhase)
	}

	currentState, hasCurrentState := sm.states[sm.currentPhase]
	targetState, hasTargetState := sm.states[targetPhase]
	if !hasTargetState {
		return fmt.Errorf("no state implementation for phase %s", targetPhase)
	}

	if err := targetState.Validate(sm.context); err != nil {
		return fmt.Errorf("target state validation failed: %w", err)
	}

	if hasCurrentState {
		if err := currentState.Exit(sm.context); err != nil {
			sm.context.Logger.Error().
				Err(err).
				Str("from_phase", sm.currentPhase.String()).
				Str("to_phase", targetPhase.String()).
				Msg("Error exiting state")
			// Continue with transition despite exit error
		}
	}

	previousPhase := sm.currentPhase
	sm.currentPhase = targetPhase

	if err := targetState.Enter(sm.context); err != nil {
		// Rollback on enter failure
		sm.currentPhase = previousPhase
		return fmt.Errorf("failed to enter state %s: %w", targetPhase, err)
	}

	if sm.eventBus != nil {
		sm.eventBus.Publish(events.NewStateTransitionEvent(
			sm.context.GameID,
			previousPhase.String(),
			targetPhase.String(),
			reason,
		))
	}

	sm.context.Logger.Debug().
		Str("from_phase", previousPhase.String()).
		Str("to_phase", targetPhase.String()).
		Str("reason", reason).
		Msg("State transition completed")

	return nil
}
