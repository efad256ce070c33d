package core

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidPosition      = errors.New("invalid position")
	ErrIllegalMove          = errors.New("illegal move")
	ErrNotYourTurn          = errors.New("not your turn")
	ErrGameOver             = errors.New("game is over")
	ErrNoPowerUp            = errors.New("no such power-up held")
	ErrInvalidPowerUpTarget = errors.New("invalid power-up target")
	ErrNoLegalMoves         = errors.New("no legal moves available")
	ErrComputerTurnAborted  = errors.New("computer turn abandoned")
)

// WrapMoveError adds the move's context to an error
func WrapMoveError(m Move, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: move from %s to %s: %w", m.Piece.Color, m.From.Algebraic(), m.To.Algebraic(), err)
}

// WrapGameStateError adds the turn and phase to an error
func WrapGameStateError(turn int, phase string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("game turn %d [%s]: %w", turn, phase, err)
}

// GameError is a structured error carrying the turn and side it occurred on
type GameError struct {
	Turn      int
	Color     Color
	Operation string
	Err       error
}

// NewGameError creates a new GameError
func NewGameError(turn int, color Color, operation string, err error) *GameError {
	return &GameError{Turn: turn, Color: color, Operation: operation, Err: err}
}

func (e *GameError) Error() string {
	return fmt.Sprintf("turn %d: %s %s: %v", e.Turn, e.Color, e.Operation, e.Err)
}

func (e *GameError) Unwrap() error {
	return e.Err
}
