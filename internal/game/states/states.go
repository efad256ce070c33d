package states

import (
	"errors"
	"time"
)

// InitializingState represents board setup before the first turn
type InitializingState struct{}

func NewInitializingState() State {
	return &InitializingState{}
}

func (s *InitializingState) Phase() GamePhase {
	return PhaseInitializing
}

func (s *InitializingState) Enter(ctx *GameContext) error {
	ctx.Logger.Debug().Msg("Entering Initializing state")
	ctx.Winner = ""
	ctx.Reason = ""
	ctx.Turn = 0
	ctx.ExtraMoves = 0
	ctx.PowerUpUsed = false
	return nil
}

func (s *InitializingState) Exit(ctx *GameContext) error {
	ctx.StartTime = time.Now()
	ctx.Logger.Debug().Str("human_color", ctx.HumanColor.String()).Msg("Exiting Initializing state")
	return nil
}

func (s *InitializingState) Validate(ctx *GameContext) error {
	return nil
}

// HumanTurnState waits for the human player's move
type HumanTurnState struct{}

func NewHumanTurnState() State {
	return &HumanTurnState{}
}

func (s *HumanTurnState) Phase() GamePhase {
	return PhaseHumanTurn
}

func (s *HumanTurnState) Enter(ctx *GameContext) error {
	ctx.beginTurn(ctx.HumanColor)
	ctx.Logger.Debug().Int("turn", ctx.Turn).Msg("Waiting for human move")
	return nil
}

func (s *HumanTurnState) Exit(ctx *GameContext) error {
	return nil
}

func (s *HumanTurnState) Validate(ctx *GameContext) error {
	return nil
}

// ComputerTurnState covers the computer's thinking delay and move
type ComputerTurnState struct{}

func NewComputerTurnState() State {
	return &ComputerTurnState{}
}

func (s *ComputerTurnState) Phase() GamePhase {
	return PhaseComputerTurn
}

func (s *ComputerTurnState) Enter(ctx *GameContext) error {
	ctx.beginTurn(ctx.ComputerColor())
	ctx.Logger.Debug().Int("turn", ctx.Turn).Str("color", ctx.ComputerColor().String()).Msg("Computer thinking")
	return nil
}

func (s *ComputerTurnState) Exit(ctx *GameContext) error {
	return nil
}

func (s *ComputerTurnState) Validate(ctx *GameContext) error {
	return nil
}

// GameOverState represents a finished game
type GameOverState struct{}

func NewGameOverState() State {
	return &GameOverState{}
}

func (s *GameOverState) Phase() GamePhase {
	return PhaseGameOver
}

func (s *GameOverState) Enter(ctx *GameContext) error {
	ctx.Logger.Info().
		Str("winner", ctx.Winner).
		Str("reason", ctx.Reason).
		Int("final_turn", ctx.Turn).
		Int("extra_moves", ctx.ExtraMoves).
		Dur("elapsed", ctx.GetElapsedTime()).
		Msg("Game over")
	return nil
}

func (s *GameOverState) Exit(ctx *GameContext) error {
	return nil
}

func (s *GameOverState) Validate(ctx *GameContext) error {
	if ctx.Winner == "" {
		return errors.New("cannot end game without a result")
	}
	return nil
}

// ResetState tears down the current game
type ResetState struct{}

func NewResetState() State {
	return &ResetState{}
}

func (s *ResetState) Phase() GamePhase {
	return PhaseReset
}

func (s *ResetState) Enter(ctx *GameContext) error {
	ctx.Logger.Info().Int("turn", ctx.Turn).Msg("Resetting game")
	ctx.StartTime = time.Time{}
	return nil
}

func (s *ResetState) Exit(ctx *GameContext) error {
	return nil
}

func (s *ResetState) Validate(ctx *GameContext) error {
	return nil
}
