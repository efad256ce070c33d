package core

import (
	"fmt"
	"strconv"
	"strings"
)

// BoardSize is the number of rows and columns on the board
const BoardSize = 8

// Position represents a square on the board. Row 0 is black's back rank.
type Position struct {
	Row, Col int
}

// NewPosition creates a new position with the given row and column
func NewPosition(row, col int) Position {
	return Position{Row: row, Col: col}
}

// IsValid checks if the position is on the board
func (p Position) IsValid() bool {
	return p.Row >= 0 && p.Row < BoardSize && p.Col >= 0 && p.Col < BoardSize
}

// Key returns the canonical "row-col" string used for set and map keys
func (p Position) Key() string {
	return strconv.Itoa(p.Row) + "-" + strconv.Itoa(p.Col)
}

// ParseKey converts a "row-col" key back into a position
func ParseKey(key string) (Position, error) {
	rowStr, colStr, ok := strings.Cut(key, "-")
	if !ok {
		return Position{}, fmt.Errorf("position key %q: %w", key, ErrInvalidPosition)
	}
	row, err := strconv.Atoi(rowStr)
	if err != nil {
		return Position{}, fmt.Errorf("position key %q: %w", key, ErrInvalidPosition)
	}
	col, err := strconv.Atoi(colStr)
	if err != nil {
		return Position{}, fmt.Errorf("position key %q: %w", key, ErrInvalidPosition)
	}
	p := Position{Row: row, Col: col}
	if !p.IsValid() {
		return Position{}, fmt.Errorf("position key %q: %w", key, ErrInvalidPosition)
	}
	return p, nil
}

// Add returns the position offset by the given row and column deltas
func (p Position) Add(dRow, dCol int) Position {
	return Position{Row: p.Row + dRow, Col: p.Col + dCol}
}

// Chebyshev returns the king-move distance to another position
func (p Position) Chebyshev(other Position) int {
	dr := abs(p.Row - other.Row)
	dc := abs(p.Col - other.Col)
	if dr > dc {
		return dr
	}
	return dc
}

// Manhattan returns the Manhattan distance to another position
func (p Position) Manhattan(other Position) int {
	return abs(p.Row-other.Row) + abs(p.Col-other.Col)
}

// IsAdjacentTo reports whether other is one of the 8 surrounding squares
func (p Position) IsAdjacentTo(other Position) bool {
	return p != other && p.Chebyshev(other) == 1
}

// EdgeDistance returns how many squares separate the position from the nearest board edge
func (p Position) EdgeDistance() int {
	d := p.Row
	for _, v := range []int{BoardSize - 1 - p.Row, p.Col, BoardSize - 1 - p.Col} {
		if v < d {
			d = v
		}
	}
	return d
}

// Neighbors returns the on-board squares surrounding this position
func (p Position) Neighbors() []Position {
	out := make([]Position, 0, 8)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			n := p.Add(dr, dc)
			if n.IsValid() {
				out = append(out, n)
			}
		}
	}
	return out
}

// Ring returns the on-board squares at exactly the given Chebyshev radius, in row-major order
func (p Position) Ring(radius int) []Position {
	if radius <= 0 {
		return nil
	}
	var out []Position
	for r := p.Row - radius; r <= p.Row+radius; r++ {
		for c := p.Col - radius; c <= p.Col+radius; c++ {
			n := Position{Row: r, Col: c}
			if !n.IsValid() || p.Chebyshev(n) != radius {
				continue
			}
			out = append(out, n)
		}
	}
	return out
}

// Algebraic returns the square in algebraic notation, e.g. (6,4) is "e2"
func (p Position) Algebraic() string {
	if !p.IsValid() {
		return p.String()
	}
	return string(rune('a'+p.Col)) + strconv.Itoa(BoardSize-p.Row)
}

// ParseAlgebraic parses a square such as "e2"
func ParseAlgebraic(s string) (Position, error) {
	if len(s) != 2 {
		return Position{}, fmt.Errorf("square %q: %w", s, ErrInvalidPosition)
	}
	col := int(s[0] - 'a')
	rank := int(s[1] - '0')
	p := Position{Row: BoardSize - rank, Col: col}
	if !p.IsValid() {
		return Position{}, fmt.Errorf("square %q: %w", s, ErrInvalidPosition)
	}
	return p, nil
}

// String returns a string representation of the position
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// AllPositions returns every square on the board in row-major order
func AllPositions() []Position {
	out := make([]Position, 0, BoardSize*BoardSize)
	for r := 0; r < BoardSize; r++ {
		for c := 0; c < BoardSize; c++ {
			out = append(out, Position{Row: r, Col: c})
		}
	}
	return out
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
