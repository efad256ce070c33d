package rules

import "github.com/mitchelldurbincs/BattleRoyaleChess/internal/game/core"

// IsSquareAttacked reports whether any piece of the attacking color could move onto pos.
// Nothing can move onto a shrunk square, so those are never attacked.
func IsSquareAttacked(b *core.Board, pos core.Position, by core.Color, shrunk core.SquareSet) bool {
	if !pos.IsValid() || shrunk.Has(pos) {
		return false
	}
	for _, pp := range b.Pieces(by) {
		if Attacks(b, pp.Position, pos) {
			return true
		}
	}
	return false
}

// Attackers returns the squares of the pieces of the given color attacking pos
func Attackers(b *core.Board, pos core.Position, by core.Color, shrunk core.SquareSet) []core.Position {
	if !pos.IsValid() || shrunk.Has(pos) {
		return nil
	}
	var out []core.Position
	for _, pp := range b.Pieces(by) {
		if Attacks(b, pp.Position, pos) {
			out = append(out, pp.Position)
		}
	}
	return out
}

// IsInCheck reports whether the color's king is attacked. A side without a king is
// not in check; WinConditionChecker deals with that case.
func IsInCheck(b *core.Board, color core.Color, shrunk core.SquareSet) bool {
	king, ok := b.FindKing(color)
	if !ok {
		return false
	}
	return IsSquareAttacked(b, king, color.Opposite(), shrunk)
}

// IsCheckmate reports whether the color is in check with no legal move
func IsCheckmate(b *core.Board, color core.Color, shrunk core.SquareSet) bool {
	return IsInCheck(b, color, shrunk) && !HasLegalMove(b, color, shrunk, nil)
}

// IsStalemate reports whether the color is not in check and has no legal move
func IsStalemate(b *core.Board, color core.Color, shrunk core.SquareSet) bool {
	return !IsInCheck(b, color, shrunk) && !HasLegalMove(b, color, shrunk, nil)
}
