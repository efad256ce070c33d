package testutil

import (
	"testing"

	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/game/core"
	"github.com/rs/zerolog"
)

// NewTestRNG creates a deterministic random source for tests
func NewTestRNG(seed int64) core.RandomSource {
	return core.NewRandomSource(seed)
}

// NopLogger returns a no-op logger for tests
func NopLogger() zerolog.Logger {
	return zerolog.Nop()
}

// HasMove reports whether moves contains a move between the two algebraic squares
func HasMove(moves []core.Move, from, to string) bool {
	f, t := Square(from), Square(to)
	for _, m := range moves {
		if m.From == f && m.To == t {
			return true
		}
	}
	return false
}

// AssertPanic asserts that the given function panics
func AssertPanic(t *testing.T, f func(), msgAndArgs ...interface{}) {
	t.Helper()
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Expected panic but none occurred: %v", msgAndArgs)
		}
	}()
	f()
}
