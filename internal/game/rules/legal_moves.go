package rules

import "github.com/mitchelldurbincs/BattleRoyaleChess/internal/game/core"

// MoveFilter vetoes otherwise legal moves. Callers use it for effects the board alone
// cannot express, such as shielded pieces. A nil filter allows everything.
type MoveFilter func(core.Move) bool

func (f MoveFilter) allows(m core.Move) bool {
	return f == nil || f(m)
}

// AllPseudoLegalMoves returns every move the color's pieces can make under the movement
// rules, ignoring whether the mover's king ends up in check. Pieces are visited in
// row-major order.
func AllPseudoLegalMoves(b *core.Board, color core.Color, shrunk core.SquareSet) []core.Move {
	var moves []core.Move
	for _, pp := range b.Pieces(color) {
		for _, to := range Destinations(b, pp.Position, shrunk) {
			moves = append(moves, core.NewMove(b, pp.Position, to))
		}
	}
	return moves
}

// AllLegalMoves returns the pseudo-legal moves that do not leave the mover's king in check
func AllLegalMoves(b *core.Board, color core.Color, shrunk core.SquareSet) []core.Move {
	return FilteredLegalMoves(b, color, shrunk, nil)
}

// FilteredLegalMoves is AllLegalMoves with an extra veto applied to each move
func FilteredLegalMoves(b *core.Board, color core.Color, shrunk core.SquareSet, allow MoveFilter) []core.Move {
	pseudo := AllPseudoLegalMoves(b, color, shrunk)
	legal := make([]core.Move, 0, len(pseudo))
	for _, m := range pseudo {
		if !allow.allows(m) || LeavesKingInCheck(b, m, shrunk) {
			continue
		}
		legal = append(legal, m)
	}
	return legal
}

// LeavesKingInCheck plays the move on a scratch copy of the board and reports whether
// the mover's own king is attacked afterwards
func LeavesKingInCheck(b *core.Board, m core.Move, shrunk core.SquareSet) bool {
	scratch := b.With(m.From, m.To)
	return IsInCheck(&scratch, m.Piece.Color, shrunk)
}

// HasLegalMove reports whether the color has at least one legal move. It stops at the
// first one found.
func HasLegalMove(b *core.Board, color core.Color, shrunk core.SquareSet, allow MoveFilter) bool {
	for _, m := range AllPseudoLegalMoves(b, color, shrunk) {
		if allow.allows(m) && !LeavesKingInCheck(b, m, shrunk) {
			return true
		}
	}
	return false
}
