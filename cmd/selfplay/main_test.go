package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/simulation"
	"github.com/stretchr/testify/assert"
)

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	s := simulation.Summary{
		Games:        3,
		WhiteWins:    2,
		Draws:        1,
		AverageTurns: 41.5,
		LongestGame:  60,
		Reasons:      map[string]int{"stalemate": 1, "checkmate": 2},
	}

	printSummary(&buf, s, 1500*time.Millisecond)

	out := buf.String()
	assert.Contains(t, out, "Games:        3 (1.5s)")
	assert.Contains(t, out, "White wins:   2")
	assert.Contains(t, out, "Avg turns:    41.5 (longest 60)")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("checkmate")), bytes.Index(buf.Bytes(), []byte("stalemate")))
}
