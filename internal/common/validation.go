package common

import (
	"fmt"
	"strings"

	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/game/core"
)

// ParseColor parses a side name, case-insensitively
func ParseColor(s string) (core.Color, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "white", "w":
		return core.White, nil
	case "black", "b":
		return core.Black, nil
	default:
		return core.White, fmt.Errorf("unknown side %q: want white or black", s)
	}
}

// IsValidSquare checks that s names a board square in algebraic notation
func IsValidSquare(s string) bool {
	_, err := core.ParseAlgebraic(strings.ToLower(s))
	return err == nil
}

// IsValidCoordinate checks if the given coordinates are within the bounds of the board
func IsValidCoordinate(row, col int) bool {
	return row >= 0 && row < core.BoardSize && col >= 0 && col < core.BoardSize
}

// ManhattanDistance calculates the Manhattan distance between two points
func ManhattanDistance(r1, c1, r2, c2 int) int {
	return Abs(r1-r2) + Abs(c1-c2)
}
