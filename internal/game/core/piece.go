package core

import "fmt"

// Color identifies a side
type Color int

const (
	White Color = iota
	Black
)

// Opposite returns the other side
func (c Color) Opposite() Color {
	if c == White {
		return Black
	}
	return White
}

// Forward returns the row delta a pawn of this color moves by
func (c Color) Forward() int {
	if c == White {
		return -1
	}
	return 1
}

// PawnStartRow is the row pawns of this color begin on
func (c Color) PawnStartRow() int {
	if c == White {
		return BoardSize - 2
	}
	return 1
}

// BackRow is the row the color's pieces start on
func (c Color) BackRow() int {
	if c == White {
		return BoardSize - 1
	}
	return 0
}

// PromotionRow is the far rank for this color's pawns
func (c Color) PromotionRow() int {
	return c.Opposite().BackRow()
}

func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	default:
		return fmt.Sprintf("Color(%d)", int(c))
	}
}

// Colors lists both sides in turn order
var Colors = [2]Color{White, Black}

// PieceType is the kind of chess piece. NoPiece marks an empty square.
type PieceType int

const (
	NoPiece PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

func (t PieceType) String() string {
	switch t {
	case NoPiece:
		return "none"
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	default:
		return fmt.Sprintf("PieceType(%d)", int(t))
	}
}

// Value is the material value of the piece type
func (t PieceType) Value() int {
	switch t {
	case Pawn:
		return 1
	case Knight, Bishop:
		return 3
	case Rook:
		return 5
	case Queen:
		return 9
	case King:
		return 100
	default:
		return 0
	}
}

// TransformationKind records how a piece came to be upgraded
type TransformationKind int

const (
	TransformationNone TransformationKind = iota
	// TransformationFusion is kept for the legacy merge variant; the engine never produces it
	TransformationFusion
	TransformationVeteran
)

func (k TransformationKind) String() string {
	switch k {
	case TransformationFusion:
		return "fusion"
	case TransformationVeteran:
		return "veteran"
	default:
		return "none"
	}
}

// Piece is a value type; the zero Piece is an empty square
type Piece struct {
	Type               PieceType
	Color              Color
	ID                 string
	HasMoved           bool
	TurnsWithoutMoving int
	Transformed        bool
	Transformation     TransformationKind
}

// NewPiece creates an unmoved piece
func NewPiece(t PieceType, c Color, id string) Piece {
	return Piece{Type: t, Color: c, ID: id}
}

func (p Piece) IsEmpty() bool { return p.Type == NoPiece }
func (p Piece) IsKing() bool  { return p.Type == King }
func (p Piece) Value() int    { return p.Type.Value() }

// Symbol returns the FEN letter for the piece (uppercase for white)
func (p Piece) Symbol() string {
	var s string
	switch p.Type {
	case Pawn:
		s = "p"
	case Knight:
		s = "n"
	case Bishop:
		s = "b"
	case Rook:
		s = "r"
	case Queen:
		s = "q"
	case King:
		s = "k"
	default:
		return "."
	}
	if p.Color == White {
		return string(s[0] - 'a' + 'A')
	}
	return s
}

func (p Piece) String() string {
	if p.IsEmpty() {
		return "empty"
	}
	return fmt.Sprintf("%s %s [%s]", p.Color, p.Type, p.ID)
}
