package testutil

import (
	"fmt"

	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/game/core"
)

// BoardFromRows builds a board from eight rank strings, row 0 (black's back rank) first.
// Uppercase letters are white, lowercase black, '.' empty. Pieces get IDs derived from
// their square and are marked as moved unless they are pawns on their start row.
func BoardFromRows(rows ...string) core.Board {
	if len(rows) != core.BoardSize {
		panic(fmt.Sprintf("testutil: want %d rows, got %d", core.BoardSize, len(rows)))
	}
	var b core.Board
	for r, row := range rows {
		if len(row) != core.BoardSize {
			panic(fmt.Sprintf("testutil: row %d has %d squares", r, len(row)))
		}
		for c := 0; c < core.BoardSize; c++ {
			ch := row[c]
			if ch == '.' {
				continue
			}
			pc, ok := pieceFromLetter(ch)
			if !ok {
				panic(fmt.Sprintf("testutil: unknown piece letter %q", ch))
			}
			pos := core.NewPosition(r, c)
			pc.ID = core.InitialPieceID(pc.Color, pc.Type, pos)
			pc.HasMoved = !(pc.Type == core.Pawn && r == pc.Color.PawnStartRow())
			b.Set(pos, pc)
		}
	}
	return b
}

// KingsOnly returns a board holding just the two kings on their usual squares
func KingsOnly() core.Board {
	return BoardFromRows(
		"....k...",
		"........",
		"........",
		"........",
		"........",
		"........",
		"........",
		"....K...",
	)
}

// Square parses an algebraic square such as "e4" and panics on bad input
func Square(s string) core.Position {
	p, err := core.ParseAlgebraic(s)
	if err != nil {
		panic(err)
	}
	return p
}

// Shrunk builds a square set from algebraic squares
func Shrunk(squares ...string) core.SquareSet {
	set := core.NewSquareSet()
	for _, s := range squares {
		set.Add(Square(s))
	}
	return set
}

func pieceFromLetter(ch byte) (core.Piece, bool) {
	color := core.Black
	if ch >= 'A' && ch <= 'Z' {
		color = core.White
		ch = ch - 'A' + 'a'
	}
	var t core.PieceType
	switch ch {
	case 'p':
		t = core.Pawn
	case 'n':
		t = core.Knight
	case 'b':
		t = core.Bishop
	case 'r':
		t = core.Rook
	case 'q':
		t = core.Queen
	case 'k':
		t = core.King
	default:
		return core.Piece{}, false
	}
	return core.Piece{Type: t, Color: color}, true
}
