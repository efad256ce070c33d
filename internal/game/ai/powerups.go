package ai

import (
	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/game"
	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/game/core"
	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/game/rules"
)

// ChoosePowerUp decides whether to spend the held power-up before moving.
// An extra move is spent at once; the others wait until they help.
func (cp *ComputerPlayer) ChoosePowerUp(gs *game.GameState, _ core.RandomSource) (core.PowerUpType, core.Position, bool) {
	c := gs.CurrentPlayer
	pu, ok := gs.HeldPowerUp(c)
	if !ok || gs.IsOver() {
		return 0, core.Position{}, false
	}

	var target core.Position
	use := false
	switch pu.Type {
	case core.PowerUpExtraMove:
		use = true
	case core.PowerUpShield:
		target, use = shieldTarget(gs, c)
	case core.PowerUpTrap:
		target, use = trapTarget(gs, c)
	case core.PowerUpTeleport:
		use = kingInDanger(gs, c)
	}
	if use {
		cp.logger.Debug().
			Str("side", c.String()).
			Str("power_up", pu.Type.String()).
			Str("target", target.Algebraic()).
			Msg("Spending power-up")
	}
	return pu.Type, target, use
}

// shieldTarget picks the most valuable attacked piece that is not yet shielded
func shieldTarget(gs *game.GameState, c core.Color) (core.Position, bool) {
	var best core.Position
	bestValue := 0
	for _, pp := range gs.Board.Pieces(c) {
		if pp.Piece.IsKing() || gs.IsShielded(pp.Piece.ID) {
			continue
		}
		if !rules.IsSquareAttacked(&gs.Board, pp.Position, c.Opposite(), gs.ShrunkSquares) {
			continue
		}
		if v := pp.Piece.Value(); v > bestValue {
			best, bestValue = pp.Position, v
		}
	}
	return best, bestValue > 0
}

// trapTarget picks the free square the most enemy pieces could land on,
// preferring squares close to the own king
func trapTarget(gs *game.GameState, c core.Color) (core.Position, bool) {
	king, hasKing := gs.Board.FindKing(c)
	var best core.Position
	bestAttackers, bestDist := 0, core.BoardSize
	for _, p := range core.AllPositions() {
		if !gs.Board.IsEmpty(p) || gs.ShrunkSquares.Has(p) || gs.PowerUpAt(p) >= 0 {
			continue
		}
		if _, trapped := gs.IsTrap(p); trapped {
			continue
		}
		n := len(rules.Attackers(&gs.Board, p, c.Opposite(), gs.ShrunkSquares))
		if n == 0 {
			continue
		}
		dist := core.BoardSize
		if hasKing {
			dist = p.Chebyshev(king)
		}
		if n > bestAttackers || (n == bestAttackers && dist < bestDist) {
			best, bestAttackers, bestDist = p, n, dist
		}
	}
	return best, bestAttackers > 0
}

// kingInDanger reports whether the king is in check or standing on a square about to vanish
func kingInDanger(gs *game.GameState, c core.Color) bool {
	if rules.IsInCheck(&gs.Board, c, gs.ShrunkSquares) {
		return true
	}
	king, ok := gs.Board.FindKing(c)
	if !ok {
		return false
	}
	_, pending := gs.ShrinkBlockAt(king)
	return pending
}
