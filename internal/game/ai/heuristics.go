package ai

import (
	"math"

	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/common"
	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/game"
	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/game/core"
	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/game/rules"
)

const boardCenter = float64(core.BoardSize-1) / 2

// score sums the weighted heuristics for one candidate move
func (cp *ComputerPlayer) score(gs *game.GameState, m core.Move, rng core.RandomSource) float64 {
	w := cp.weights
	c := m.Piece.Color
	opp := c.Opposite()
	after := resultingBoard(&gs.Board, m)

	s := 0.0
	if rules.IsInCheck(&after, opp, gs.ShrunkSquares) {
		s += w.CheckBonus
	}
	s += cp.captureScore(gs, m)
	s += cp.kingSafetyScore(gs, &after, m)
	s += w.CenterWeight * centerProximity(m.To)

	if !m.Piece.IsKing() && rules.IsSquareAttacked(&after, m.To, opp, gs.ShrunkSquares) {
		s -= w.AttackedPenalty * float64(m.Piece.Value())
	}
	s += cp.powerUpScore(gs, m)

	if block, pending := gs.ShrinkBlockAt(m.To); pending {
		s -= w.ShrinkWarnPenalty / float64(common.Max(block.TurnsUntilShrink, 1))
	}

	s += w.MaterialWeight * float64(after.Material(c)-after.Material(opp))
	if w.Noise > 0 {
		s += rng.Float64() * w.Noise
	}
	return s
}

func (cp *ComputerPlayer) captureScore(gs *game.GameState, m core.Move) float64 {
	if m.Captured == nil {
		return 0
	}
	s := float64(m.Captured.Value()) * cp.weights.CaptureMultiplier
	king, ok := gs.Board.FindKing(m.Piece.Color)
	if ok && rules.Attacks(&gs.Board, m.To, king) {
		s += cp.weights.KingThreatBonus
	}
	return s
}

// kingSafetyScore keeps the king off the edge and out of doomed squares and
// keeps the other pieces close enough to guard it
func (cp *ComputerPlayer) kingSafetyScore(gs *game.GameState, after *core.Board, m core.Move) float64 {
	w := cp.weights
	if m.Piece.IsKing() {
		s := w.KingEdgeWeight * float64(m.To.EdgeDistance())
		if _, pending := gs.ShrinkBlockAt(m.To); pending {
			s -= w.KingWarningPenalty
		}
		return s
	}
	king, ok := after.FindKing(m.Piece.Color)
	if ok && m.To.Chebyshev(king) <= w.GuardRadius {
		return w.GuardBonus
	}
	return 0
}

// powerUpScore pulls pieces toward the nearest uncollected power-up while the
// side has a free slot
func (cp *ComputerPlayer) powerUpScore(gs *game.GameState, m core.Move) float64 {
	if _, holding := gs.HeldPowerUp(m.Piece.Color); holding || len(gs.PowerUps) == 0 {
		return 0
	}
	best := 0.0
	for _, pu := range gs.PowerUps {
		d := m.To.Chebyshev(pu.Position)
		best = math.Max(best, cp.weights.PowerUpBonus*common.InverseDistance(d))
	}
	return common.Clamp(best, 0, cp.weights.PowerUpBonus)
}

// centerProximity is 0 in the corners and grows toward the four central squares
func centerProximity(p core.Position) float64 {
	d := math.Abs(float64(p.Row)-boardCenter) + math.Abs(float64(p.Col)-boardCenter)
	return 2*boardCenter - d
}
