package rules

import (
	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/common"
	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/game/core"
)

type offset struct{ dRow, dCol int }

var (
	knightOffsets = []offset{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
	kingOffsets   = []offset{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
	rookDirs      = []offset{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	bishopDirs    = []offset{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	queenDirs     = append(append([]offset{}, rookDirs...), bishopDirs...)
)

// IsLegalMove reports whether the piece on from may move to to under the movement
// rules alone. Whether the move exposes the mover's king is checked by LeavesKingInCheck.
func IsLegalMove(b *core.Board, from, to core.Position, shrunk core.SquareSet) bool {
	if !from.IsValid() || !to.IsValid() || from == to {
		return false
	}
	pc := b.At(from)
	if pc.IsEmpty() || !canLandOn(b, pc.Color, to, shrunk) {
		return false
	}
	for _, dest := range Destinations(b, from, shrunk) {
		if dest == to {
			return true
		}
	}
	return false
}

// Destinations returns every square the piece on from can move to, in generation order
func Destinations(b *core.Board, from core.Position, shrunk core.SquareSet) []core.Position {
	pc := b.At(from)
	if pc.IsEmpty() {
		return nil
	}
	switch pc.Type {
	case core.Pawn:
		return pawnDestinations(b, from, pc, shrunk)
	case core.Knight:
		return stepDestinations(b, from, pc.Color, knightOffsets, shrunk)
	case core.King:
		return stepDestinations(b, from, pc.Color, kingOffsets, shrunk)
	case core.Bishop:
		return slideDestinations(b, from, pc.Color, bishopDirs, shrunk)
	case core.Rook:
		return slideDestinations(b, from, pc.Color, rookDirs, shrunk)
	case core.Queen:
		return slideDestinations(b, from, pc.Color, queenDirs, shrunk)
	}
	return nil
}

// canLandOn reports whether a piece of the mover's color may end on to. Kings are
// never captured: a king that cannot escape is mated instead.
func canLandOn(b *core.Board, mover core.Color, to core.Position, shrunk core.SquareSet) bool {
	if !to.IsValid() || shrunk.Has(to) {
		return false
	}
	return capturable(b.At(to), mover)
}

func capturable(target core.Piece, mover core.Color) bool {
	return target.IsEmpty() || (target.Color != mover && !target.IsKing())
}

func pawnDestinations(b *core.Board, from core.Position, pc core.Piece, shrunk core.SquareSet) []core.Position {
	var out []core.Position
	dir := pc.Color.Forward()

	one := from.Add(dir, 0)
	if one.IsValid() && b.IsEmpty(one) && !shrunk.Has(one) {
		out = append(out, one)
		two := from.Add(2*dir, 0)
		if from.Row == pc.Color.PawnStartRow() && !pc.HasMoved && b.IsEmpty(two) && !shrunk.Has(two) {
			out = append(out, two)
		}
	}

	for _, dc := range []int{-1, 1} {
		diag := from.Add(dir, dc)
		if !diag.IsValid() || shrunk.Has(diag) {
			continue
		}
		if target := b.At(diag); !target.IsEmpty() && capturable(target, pc.Color) {
			out = append(out, diag)
		}
	}
	return out
}

func stepDestinations(b *core.Board, from core.Position, mover core.Color, offsets []offset, shrunk core.SquareSet) []core.Position {
	out := make([]core.Position, 0, len(offsets))
	for _, o := range offsets {
		to := from.Add(o.dRow, o.dCol)
		if canLandOn(b, mover, to, shrunk) {
			out = append(out, to)
		}
	}
	return out
}

func slideDestinations(b *core.Board, from core.Position, mover core.Color, dirs []offset, shrunk core.SquareSet) []core.Position {
	var out []core.Position
	for _, d := range dirs {
		for to := from.Add(d.dRow, d.dCol); to.IsValid(); to = to.Add(d.dRow, d.dCol) {
			target := b.At(to)
			if canLandOn(b, mover, to, shrunk) {
				out = append(out, to)
			}
			if !target.IsEmpty() {
				break
			}
		}
	}
	return out
}

// Attacks reports whether the piece on from attacks target, regardless of what stands
// on target. Pawns attack diagonally forward only.
func Attacks(b *core.Board, from, target core.Position) bool {
	pc := b.At(from)
	if pc.IsEmpty() || from == target || !target.IsValid() {
		return false
	}
	dRow := target.Row - from.Row
	dCol := target.Col - from.Col

	switch pc.Type {
	case core.Pawn:
		return dRow == pc.Color.Forward() && (dCol == 1 || dCol == -1)
	case core.Knight:
		for _, o := range knightOffsets {
			if o.dRow == dRow && o.dCol == dCol {
				return true
			}
		}
		return false
	case core.King:
		return from.Chebyshev(target) == 1
	case core.Rook:
		return (dRow == 0 || dCol == 0) && pathClear(b, from, target)
	case core.Bishop:
		return common.Abs(dRow) == common.Abs(dCol) && pathClear(b, from, target)
	case core.Queen:
		return (dRow == 0 || dCol == 0 || common.Abs(dRow) == common.Abs(dCol)) && pathClear(b, from, target)
	}
	return false
}

// pathClear reports whether every square strictly between from and to is empty.
// from and to must share a line or a diagonal.
func pathClear(b *core.Board, from, to core.Position) bool {
	step := offset{dRow: sign(to.Row - from.Row), dCol: sign(to.Col - from.Col)}
	for p := from.Add(step.dRow, step.dCol); p != to; p = p.Add(step.dRow, step.dCol) {
		if !b.IsEmpty(p) {
			return false
		}
	}
	return true
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
