package game

import (
	"fmt"

	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/game/core"
	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/game/events"
	"github.com/rs/zerolog"
)

// PowerUpManager spawns, expires and resolves power-ups
type PowerUpManager struct {
	logger zerolog.Logger
}

// NewPowerUpManager creates a new power-up manager
func NewPowerUpManager(logger zerolog.Logger) *PowerUpManager {
	return &PowerUpManager{
		logger: logger.With().Str("component", "PowerUpManager").Logger(),
	}
}

// ProcessTurnPowerUps ages shields and board power-ups, then spawns new ones on cadence
func (pm *PowerUpManager) ProcessTurnPowerUps(gs *GameState, rng core.RandomSource) {
	pm.tickShields(gs)
	if !gs.Rules.PowerUpsEnabled {
		return
	}
	pm.expire(gs)
	if due(gs.TurnCount, gs.Rules.PowerUpSpawnInterval) {
		pm.spawn(gs, rng)
	}
}

func (pm *PowerUpManager) tickShields(gs *GameState) {
	for id, left := range gs.ShieldedPieces {
		if left <= 1 {
			delete(gs.ShieldedPieces, id)
			continue
		}
		gs.ShieldedPieces[id] = left - 1
	}
}

func (pm *PowerUpManager) expire(gs *GameState) {
	live := gs.PowerUps[:0]
	for _, pu := range gs.PowerUps {
		pu.TurnsRemaining--
		if pu.TurnsRemaining <= 0 {
			gs.emit(events.NewPowerUpEvent(events.TypePowerUpExpired, gs.GameID, gs.TurnCount, gs.CurrentPlayer, pu, pu.Position))
			continue
		}
		live = append(live, pu)
	}
	gs.PowerUps = live
}

// spawn places one power-up per side that still has pieces on the board
func (pm *PowerUpManager) spawn(gs *GameState, rng core.RandomSource) {
	for _, c := range core.Colors {
		if gs.Board.CountPieces(c) == 0 {
			continue
		}
		candidates := pm.spawnSquares(gs)
		if len(candidates) == 0 {
			pm.logger.Debug().
				Int("turn", gs.TurnCount).
				Str("color", c.String()).
				Msg("No free square for power-up")
			return
		}
		pu := core.PowerUp{
			ID:             core.NewID(rng),
			Type:           core.PowerUpTypes[rng.Intn(len(core.PowerUpTypes))],
			Position:       candidates[rng.Intn(len(candidates))],
			TurnsRemaining: gs.Rules.PowerUpLifetimeTurns,
		}
		gs.PowerUps = append(gs.PowerUps, pu)
		gs.emit(events.NewPowerUpEvent(events.TypePowerUpSpawned, gs.GameID, gs.TurnCount, c, pu, pu.Position))

		pm.logger.Debug().
			Int("turn", gs.TurnCount).
			Str("type", pu.Type.String()).
			Str("square", pu.Position.Algebraic()).
			Msg("Power-up spawned")
	}
}

// spawnSquares lists empty live squares with no power-up or trap and no king within one step
func (pm *PowerUpManager) spawnSquares(gs *GameState) []core.Position {
	var kings []core.Position
	for _, c := range core.Colors {
		if k, ok := gs.Board.FindKing(c); ok {
			kings = append(kings, k)
		}
	}
	var out []core.Position
	for _, p := range core.AllPositions() {
		if !gs.Board.IsEmpty(p) || gs.ShrunkSquares.Has(p) || gs.PowerUpAt(p) >= 0 {
			continue
		}
		if _, trapped := gs.IsTrap(p); trapped {
			continue
		}
		nearKing := false
		for _, k := range kings {
			if k.Chebyshev(p) <= 1 {
				nearKing = true
				break
			}
		}
		if !nearKing {
			out = append(out, p)
		}
	}
	return out
}

// Collect hands the power-up on p to the side whose piece just arrived, if
// that side's slot is free. A side with a held power-up leaves it on the board.
func (pm *PowerUpManager) Collect(gs *GameState, c core.Color, p core.Position) bool {
	i := gs.PowerUpAt(p)
	if i < 0 {
		return false
	}
	if _, holding := gs.PlayerPowerUps[c]; holding {
		return false
	}
	pu := gs.PowerUps[i]
	gs.PowerUps = append(gs.PowerUps[:i], gs.PowerUps[i+1:]...)
	gs.PlayerPowerUps[c] = pu
	gs.emit(events.NewPowerUpEvent(events.TypePowerUpCollected, gs.GameID, gs.TurnCount, c, pu, p))

	pm.logger.Debug().
		Int("turn", gs.TurnCount).
		Str("color", c.String()).
		Str("type", pu.Type.String()).
		Msg("Power-up collected")
	return true
}

// Use spends the held power-up of kind on target. The state is only modified on success.
func (pm *PowerUpManager) Use(gs *GameState, c core.Color, kind core.PowerUpType, target core.Position) error {
	held, ok := gs.PlayerPowerUps[c]
	if !ok || held.Type != kind {
		return fmt.Errorf("%s %s: %w", c, kind, core.ErrNoPowerUp)
	}

	switch kind {
	case core.PowerUpShield:
		pc := gs.Board.At(target)
		if !target.IsValid() || pc.IsEmpty() || pc.Color != c {
			return fmt.Errorf("shield on %s: %w", target, core.ErrInvalidPowerUpTarget)
		}
		gs.ShieldedPieces[pc.ID] = gs.Rules.ShieldTurns
	case core.PowerUpTrap:
		if !target.IsValid() || !gs.Board.IsEmpty(target) || gs.ShrunkSquares.Has(target) {
			return fmt.Errorf("trap on %s: %w", target, core.ErrInvalidPowerUpTarget)
		}
		if _, exists := gs.IsTrap(target); exists || gs.PowerUpAt(target) >= 0 {
			return fmt.Errorf("trap on %s: %w", target, core.ErrInvalidPowerUpTarget)
		}
		gs.TrapSquares[target.Key()] = c
	case core.PowerUpExtraMove:
		gs.ExtraMoveArmed[c] = true
	case core.PowerUpTeleport:
		gs.TeleportArmed[c] = true
	default:
		return fmt.Errorf("%s: %w", kind, core.ErrNoPowerUp)
	}

	delete(gs.PlayerPowerUps, c)
	gs.emit(events.NewPowerUpEvent(events.TypePowerUpUsed, gs.GameID, gs.TurnCount, c, held, target))

	pm.logger.Debug().
		Int("turn", gs.TurnCount).
		Str("color", c.String()).
		Str("type", kind.String()).
		Str("target", target.String()).
		Msg("Power-up used")
	return nil
}
