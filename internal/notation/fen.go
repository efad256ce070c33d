// Package notation converts boards to and from FEN and draws them as text
package notation

import (
	"fmt"

	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/game/core"
	"github.com/notnil/chess"
)

var pieceTypes = map[chess.PieceType]core.PieceType{
	chess.Pawn:   core.Pawn,
	chess.Knight: core.Knight,
	chess.Bishop: core.Bishop,
	chess.Rook:   core.Rook,
	chess.Queen:  core.Queen,
	chess.King:   core.King,
}

var chessTypes = map[core.PieceType]chess.PieceType{
	core.Pawn:   chess.Pawn,
	core.Knight: chess.Knight,
	core.Bishop: chess.Bishop,
	core.Rook:   chess.Rook,
	core.Queen:  chess.Queen,
	core.King:   chess.King,
}

// ParseFEN reads the piece placement and side to move of a FEN record.
// Castling and en passant fields are accepted and ignored. Pieces get their
// square-derived starting IDs; pawns off their start rank count as moved.
func ParseFEN(fen string) (core.Board, core.Color, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return core.Board{}, core.White, fmt.Errorf("parse FEN %q: %w", fen, err)
	}
	pos := chess.NewGame(opt).Position()
	return FromChessBoard(pos.Board()), fromChessColor(pos.Turn()), nil
}

// ToFEN encodes the board and side to move. Castling and en passant are not
// part of the game, so those fields are always empty.
func ToFEN(b *core.Board, toMove core.Color) string {
	side := "w"
	if toMove == core.Black {
		side = "b"
	}
	return fmt.Sprintf("%s %s - - 0 1", ToChessBoard(b).String(), side)
}

// Draw renders the piece layout with notnil/chess's text board
func Draw(b *core.Board) string {
	return ToChessBoard(b).Draw()
}

// FromChessBoard converts a notnil/chess board
func FromChessBoard(cb *chess.Board) core.Board {
	var b core.Board
	for sq, pc := range cb.SquareMap() {
		t, ok := pieceTypes[pc.Type()]
		if !ok {
			continue
		}
		c := fromChessColor(pc.Color())
		p := squareToPosition(sq)
		piece := core.NewPiece(t, c, core.InitialPieceID(c, t, p))
		piece.HasMoved = t == core.Pawn && p.Row != c.PawnStartRow()
		b.Set(p, piece)
	}
	return b
}

// ToChessBoard converts to a notnil/chess board. Piece identity and flags are dropped.
func ToChessBoard(b *core.Board) *chess.Board {
	m := make(map[chess.Square]chess.Piece)
	for _, p := range core.AllPositions() {
		pc := b.At(p)
		if pc.IsEmpty() {
			continue
		}
		m[positionToSquare(p)] = chess.NewPiece(chessTypes[pc.Type], toChessColor(pc.Color))
	}
	return chess.NewBoard(m)
}

// row 0 is rank 8
func squareToPosition(sq chess.Square) core.Position {
	return core.NewPosition(core.BoardSize-1-int(sq.Rank()), int(sq.File()))
}

func positionToSquare(p core.Position) chess.Square {
	return chess.NewSquare(chess.File(p.Col), chess.Rank(core.BoardSize-1-p.Row))
}

func fromChessColor(c chess.Color) core.Color {
	if c == chess.Black {
		return core.Black
	}
	return core.White
}

func toChessColor(c core.Color) chess.Color {
	if c == core.Black {
		return chess.Black
	}
	return chess.White
}
