package core

import "fmt"

// Move describes a piece moving from one square to another. It is a value: building
// one never touches a board.
type Move struct {
	From  Position
	To    Position
	Piece Piece // the piece as it stood before moving
	// Captured is set when the destination held an enemy piece
	Captured    *Piece
	UsedPowerUp *PowerUp
}

// NewMove builds a move from the current contents of the board
func NewMove(b *Board, from, to Position) Move {
	m := Move{From: from, To: to, Piece: b.At(from)}
	if target := b.At(to); !target.IsEmpty() && target.Color != m.Piece.Color {
		m.Captured = &target
	}
	return m
}

// IsCapture reports whether the move takes a piece
func (m Move) IsCapture() bool {
	return m.Captured != nil
}

// IsTeleport reports whether the move is made with a teleport power-up
func (m Move) IsTeleport() bool {
	return m.UsedPowerUp != nil && m.UsedPowerUp.Type == PowerUpTeleport
}

// IsPromotion reports whether a pawn reaches its far rank
func (m Move) IsPromotion() bool {
	return m.Piece.Type == Pawn && m.To.Row == m.Piece.Color.PromotionRow()
}

// UCI returns the move in coordinate notation, e.g. "e2e4"
func (m Move) UCI() string {
	return m.From.Algebraic() + m.To.Algebraic()
}

// ParseUCI parses coordinate notation against the board
func ParseUCI(b *Board, s string) (Move, error) {
	if len(s) != 4 {
		return Move{}, fmt.Errorf("move %q: %w", s, ErrInvalidPosition)
	}
	from, err := ParseAlgebraic(s[:2])
	if err != nil {
		return Move{}, err
	}
	to, err := ParseAlgebraic(s[2:])
	if err != nil {
		return Move{}, err
	}
	return NewMove(b, from, to), nil
}

func (m Move) String() string {
	s := fmt.Sprintf("%s %s %s->%s", m.Piece.Color, m.Piece.Type, m.From.Algebraic(), m.To.Algebraic())
	if m.Captured != nil {
		s += " x" + m.Captured.Type.String()
	}
	if m.IsTeleport() {
		s += " (teleport)"
	}
	return s
}
