package states

import (
	"time"

	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/game/core"
	"github.com/rs/zerolog"
)

// GameContext provides session information to states for making decisions
type GameContext struct {
	// GameID uniquely identifies this game instance
	GameID string

	// Logger for state-specific logging
	Logger zerolog.Logger

	// HumanColor is the side the human plays
	HumanColor core.Color

	// StartTime is when the first turn began
	StartTime time.Time

	// Turn mirrors the game's turn counter for logging
	Turn int

	// ToMove is the side the current turn phase belongs to
	ToMove core.Color

	// PowerUpUsed is set once ToMove has spent a power-up this turn
	PowerUpUsed bool

	// ExtraMoves counts the turns a side kept through an extra move
	ExtraMoves int

	// Winner and Reason are set when the game ends
	Winner string
	Reason string
}

// NewGameContext creates a new game context
func NewGameContext(gameID string, human core.Color, logger zerolog.Logger) *GameContext {
	return &GameContext{
		GameID:     gameID,
		HumanColor: human,
		Logger:     logger.With().Str("game_id", gameID).Logger(),
	}
}

// ComputerColor is the side the computer plays
func (gc *GameContext) ComputerColor() core.Color {
	return gc.HumanColor.Opposite()
}

// PhaseFor returns the turn phase for the side to move
func (gc *GameContext) PhaseFor(toMove core.Color) GamePhase {
	if toMove == gc.HumanColor {
		return PhaseHumanTurn
	}
	return PhaseComputerTurn
}

// GetElapsedTime returns the time elapsed since the first turn
func (gc *GameContext) GetElapsedTime() time.Duration {
	if gc.StartTime.IsZero() {
		return 0
	}
	return time.Since(gc.StartTime)
}

// beginTurn hands the turn to c with a fresh power-up allowance
func (gc *GameContext) beginTurn(c core.Color) {
	gc.ToMove = c
	gc.PowerUpUsed = false
}
