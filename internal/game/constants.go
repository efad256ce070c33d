package game

import (
	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/config"
	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/game/core"
)

// Shrinking board
func ShrinkEnabled() bool {
	return config.Get().Game.Shrink.Enabled
}

func ShrinkCycleTurns() int {
	return config.Get().Game.Shrink.CycleTurns
}

func ShrinkWarningTurns() int {
	return config.Get().Game.Shrink.WarningTurns
}

func ShrinkMaxLevel() int {
	return config.Get().Game.Shrink.MaxLevel
}

// Respawn
func RespawnEnabled() bool {
	return config.Get().Game.Respawn.Enabled
}

func RespawnIntervalTurns() int {
	return config.Get().Game.Respawn.IntervalTurns
}

func RespawnWeights() []core.Weighted[core.PieceType] {
	return pieceWeights(config.Get().Game.Respawn.Weights)
}

// Power-ups
func PowerUpsEnabled() bool {
	return config.Get().Game.PowerUps.Enabled
}

func PowerUpSpawnInterval() int {
	return config.Get().Game.PowerUps.SpawnInterval
}

func PowerUpLifetimeTurns() int {
	return config.Get().Game.PowerUps.LifetimeTurns
}

func ShieldTurns() int {
	return config.Get().Game.PowerUps.ShieldTurns
}

// Transformation
func TransformationEnabled() bool {
	return config.Get().Game.Transformation.Enabled
}

func TransformationIntervalTurns() int {
	return config.Get().Game.Transformation.IntervalTurns
}

func TransformationIdleThreshold() int {
	return config.Get().Game.Transformation.IdleThreshold
}

func TransformationWeights() []core.Weighted[core.PieceType] {
	return pieceWeights(config.Get().Game.Transformation.Weights)
}

func pieceWeights(w config.PieceWeights) []core.Weighted[core.PieceType] {
	return []core.Weighted[core.PieceType]{
		{Value: core.Pawn, Weight: w.Pawn},
		{Value: core.Knight, Weight: w.Knight},
		{Value: core.Bishop, Weight: w.Bishop},
		{Value: core.Rook, Weight: w.Rook},
		{Value: core.Queen, Weight: w.Queen},
	}
}

// Rules is the snapshot of mechanic settings a game is played under. It is
// copied into every GameState so a config reload never changes a game in flight.
type Rules struct {
	ShrinkEnabled      bool
	ShrinkCycleTurns   int
	ShrinkWarningTurns int
	ShrinkMaxLevel     int

	RespawnEnabled       bool
	RespawnIntervalTurns int
	RespawnWeights       []core.Weighted[core.PieceType]

	PowerUpsEnabled      bool
	PowerUpSpawnInterval int
	PowerUpLifetimeTurns int
	ShieldTurns          int

	TransformationEnabled       bool
	TransformationIntervalTurns int
	TransformationIdleThreshold int
	TransformationWeights       []core.Weighted[core.PieceType]
}

// DefaultRules reads the current configuration
func DefaultRules() Rules {
	return Rules{
		ShrinkEnabled:      ShrinkEnabled(),
		ShrinkCycleTurns:   ShrinkCycleTurns(),
		ShrinkWarningTurns: ShrinkWarningTurns(),
		ShrinkMaxLevel:     ShrinkMaxLevel(),

		RespawnEnabled:       RespawnEnabled(),
		RespawnIntervalTurns: RespawnIntervalTurns(),
		RespawnWeights:       RespawnWeights(),

		PowerUpsEnabled:      PowerUpsEnabled(),
		PowerUpSpawnInterval: PowerUpSpawnInterval(),
		PowerUpLifetimeTurns: PowerUpLifetimeTurns(),
		ShieldTurns:          ShieldTurns(),

		TransformationEnabled:       TransformationEnabled(),
		TransformationIntervalTurns: TransformationIntervalTurns(),
		TransformationIdleThreshold: TransformationIdleThreshold(),
		TransformationWeights:       TransformationWeights(),
	}
}

// shrinkCountdown is how many ticks a newly scheduled block waits before it vanishes
func (r Rules) shrinkCountdown() int {
	if n := r.ShrinkCycleTurns - r.ShrinkWarningTurns; n > 0 {
		return n
	}
	return 1
}

// due reports whether a cadence of the given interval fires on this turn
func due(turn, interval int) bool {
	return interval > 0 && turn > 0 && turn%interval == 0
}
