package core

import "fmt"

// Board is an 8x8 grid of pieces stored by value. Assigning a Board copies it,
// so a GameState snapshot never shares squares with its successor.
type Board [BoardSize][BoardSize]Piece

// At returns the piece on the square, or the empty piece when off the board
func (b *Board) At(p Position) Piece {
	if !p.IsValid() {
		return Piece{}
	}
	return b[p.Row][p.Col]
}

// IsEmpty reports whether the square holds no piece
func (b *Board) IsEmpty(p Position) bool {
	return b.At(p).IsEmpty()
}

// Set places a piece on the square. Callers work on their own copy.
func (b *Board) Set(p Position, pc Piece) {
	if !p.IsValid() {
		return
	}
	b[p.Row][p.Col] = pc
}

// Clear empties the square
func (b *Board) Clear(p Position) {
	b.Set(p, Piece{})
}

// With returns a copy of the board with the piece moved from one square to another.
// Whatever stood on the destination is dropped.
func (b Board) With(from, to Position) Board {
	pc := b.At(from)
	b.Clear(from)
	b.Set(to, pc)
	return b
}

// FindKing returns the position of the color's king
func (b *Board) FindKing(c Color) (Position, bool) {
	for r := 0; r < BoardSize; r++ {
		for col := 0; col < BoardSize; col++ {
			pc := b[r][col]
			if pc.Type == King && pc.Color == c {
				return Position{Row: r, Col: col}, true
			}
		}
	}
	return Position{}, false
}

// FindPiece returns the position of the piece with the given ID
func (b *Board) FindPiece(id string) (Position, bool) {
	if id == "" {
		return Position{}, false
	}
	for r := 0; r < BoardSize; r++ {
		for c := 0; c < BoardSize; c++ {
			if b[r][c].ID == id {
				return Position{Row: r, Col: c}, true
			}
		}
	}
	return Position{}, false
}

// PlacedPiece pairs a piece with its square
type PlacedPiece struct {
	Position Position
	Piece    Piece
}

// Pieces returns every piece of the color in row-major order
func (b *Board) Pieces(c Color) []PlacedPiece {
	out := make([]PlacedPiece, 0, 16)
	for r := 0; r < BoardSize; r++ {
		for col := 0; col < BoardSize; col++ {
			pc := b[r][col]
			if !pc.IsEmpty() && pc.Color == c {
				out = append(out, PlacedPiece{Position: Position{Row: r, Col: col}, Piece: pc})
			}
		}
	}
	return out
}

// CountPieces returns the number of pieces the color has on the board
func (b *Board) CountPieces(c Color) int {
	n := 0
	for r := 0; r < BoardSize; r++ {
		for col := 0; col < BoardSize; col++ {
			if pc := b[r][col]; !pc.IsEmpty() && pc.Color == c {
				n++
			}
		}
	}
	return n
}

// Material sums the piece values of the color, kings excluded
func (b *Board) Material(c Color) int {
	total := 0
	for r := 0; r < BoardSize; r++ {
		for col := 0; col < BoardSize; col++ {
			pc := b[r][col]
			if pc.IsEmpty() || pc.Color != c || pc.IsKing() {
				continue
			}
			total += pc.Value()
		}
	}
	return total
}

// String renders the piece layout, one rank per line, using FEN letters
func (b *Board) String() string {
	out := make([]byte, 0, BoardSize*(BoardSize+1))
	for r := 0; r < BoardSize; r++ {
		for c := 0; c < BoardSize; c++ {
			out = append(out, b[r][c].Symbol()...)
		}
		out = append(out, '\n')
	}
	return string(out)
}

// StandardBoard returns the orthodox starting position with stable piece IDs
func StandardBoard() Board {
	var b Board
	backRank := [BoardSize]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for _, c := range Colors {
		for col := 0; col < BoardSize; col++ {
			back := Position{Row: c.BackRow(), Col: col}
			b.Set(back, NewPiece(backRank[col], c, InitialPieceID(c, backRank[col], back)))
			pawn := Position{Row: c.PawnStartRow(), Col: col}
			b.Set(pawn, NewPiece(Pawn, c, InitialPieceID(c, Pawn, pawn)))
		}
	}
	return b
}

// InitialPieceID builds the readable ID given to pieces present at game start
func InitialPieceID(c Color, t PieceType, p Position) string {
	return fmt.Sprintf("%s-%s-%d-%d", c, t, p.Row, p.Col)
}
