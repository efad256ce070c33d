package states

import "fmt"

// GamePhase represents the current phase of a play session
type GamePhase int

const (
	// PhaseInitializing - Board setup, waiting for the first turn
	PhaseInitializing GamePhase = iota

	// PhaseHumanTurn - Waiting for the human player's move
	PhaseHumanTurn

	// PhaseComputerTurn - The computer is thinking or moving
	PhaseComputerTurn

	// PhaseGameOver - Winner decided, no more moves accepted
	PhaseGameOver

	// PhaseReset - Tearing down the current game before starting a new one
	PhaseReset
)

// String returns the string representation of a GamePhase
func (p GamePhase) String() string {
	switch p {
	case PhaseInitializing:
		return "Initializing"
	case PhaseHumanTurn:
		return "HumanTurn"
	case PhaseComputerTurn:
		return "ComputerTurn"
	case PhaseGameOver:
		return "GameOver"
	case PhaseReset:
		return "Reset"
	default:
		return fmt.Sprintf("Unknown(%d)", p)
	}
}

// IsTerminal returns true if the phase represents a finished game
func (p GamePhase) IsTerminal() bool {
	return p == PhaseGameOver
}

// CanReceiveMoves returns true if a move may be submitted in this phase
func (p GamePhase) CanReceiveMoves() bool {
	return p == PhaseHumanTurn || p == PhaseComputerTurn
}

// AllowedTransitions returns the valid phases this phase can transition to
func (p GamePhase) AllowedTransitions() []GamePhase {
	switch p {
	case PhaseInitializing:
		return []GamePhase{PhaseHumanTurn, PhaseComputerTurn, PhaseGameOver}
	case PhaseHumanTurn:
		return []GamePhase{PhaseComputerTurn, PhaseGameOver, PhaseReset}
	case PhaseComputerTurn:
		return []GamePhase{PhaseHumanTurn, PhaseGameOver, PhaseReset}
	case PhaseGameOver:
		return []GamePhase{PhaseReset}
	case PhaseReset:
		return []GamePhase{PhaseInitializing}
	default:
		return []GamePhase{}
	}
}

// CanTransitionTo checks if a transition from this phase to the target phase is allowed
func (p GamePhase) CanTransitionTo(target GamePhase) bool {
	for _, phase := range p.AllowedTransitions() {
		if phase == target {
			return true
		}
	}
	return false
}

// Action is what the side to move did to end a step of the session
type Action int

const (
	// ActionMove - A move that hands the turn to the other side
	ActionMove Action = iota

	// ActionExtraMove - A move played under an armed extra move; the same side goes again
	ActionExtraMove

	// ActionPowerUp - A held power-up was spent; the turn does not end
	ActionPowerUp

	// ActionPass - The side to move had nothing to play
	ActionPass
)

// String returns the string representation of an Action
func (a Action) String() string {
	switch a {
	case ActionMove:
		return "move"
	case ActionExtraMove:
		return "extra move"
	case ActionPowerUp:
		return "power-up"
	case ActionPass:
		return "pass"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// KeepsTurn reports whether the action leaves the same side to move
func (a Action) KeepsTurn() bool {
	return a == ActionExtraMove || a == ActionPowerUp
}
