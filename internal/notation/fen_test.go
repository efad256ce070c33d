package notation

import (
	"testing"

	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/game/core"
	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const startFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

func TestParseFEN_StartPosition_MatchesStandardBoard(t *testing.T) {
	b, toMove, err := ParseFEN(startFEN)

	require.NoError(t, err)
	assert.Equal(t, core.White, toMove)
	assert.Equal(t, core.StandardBoard(), b)
}

func TestParseFEN_SideToMoveAndPawnFlags(t *testing.T) {
	b, toMove, err := ParseFEN("4k3/8/8/8/4P3/8/3P4/4K3 b - - 0 1")

	require.NoError(t, err)
	assert.Equal(t, core.Black, toMove)

	advanced := b.At(testutil.Square("e4"))
	assert.Equal(t, core.Pawn, advanced.Type)
	assert.Equal(t, core.White, advanced.Color)
	assert.True(t, advanced.HasMoved)

	home := b.At(testutil.Square("d2"))
	assert.False(t, home.HasMoved)

	king := b.At(testutil.Square("e8"))
	assert.Equal(t, core.King, king.Type)
	assert.Equal(t, core.Black, king.Color)
	assert.Equal(t, "black-king-0-4", king.ID)
}

func TestParseFEN_Invalid(t *testing.T) {
	tests := []string{
		"",
		"not a fen",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w KQkq - 0 1",
	}
	for _, fen := range tests {
		t.Run(fen, func(t *testing.T) {
			_, _, err := ParseFEN(fen)
			assert.Error(t, err)
		})
	}
}

func TestToFEN(t *testing.T) {
	b := core.StandardBoard()

	assert.Equal(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1", ToFEN(&b, core.White))

	kings := testutil.KingsOnly()
	assert.Equal(t, "4k3/8/8/8/8/8/8/4K3 b - - 0 1", ToFEN(&kings, core.Black))
}

func TestToFEN_ParsesBack(t *testing.T) {
	b := testutil.BoardFromRows(
		"r...k..r",
		".p....p.",
		"........",
		"...Q....",
		"..n.....",
		"........",
		"P....PPP",
		"....K..R",
	)

	parsed, toMove, err := ParseFEN(ToFEN(&b, core.Black))

	require.NoError(t, err)
	assert.Equal(t, core.Black, toMove)
	for _, p := range core.AllPositions() {
		want, got := b.At(p), parsed.At(p)
		assert.Equal(t, want.Type, got.Type, p.Algebraic())
		assert.Equal(t, want.Color, got.Color, p.Algebraic())
	}
}

func TestDraw(t *testing.T) {
	b := testutil.KingsOnly()

	out := Draw(&b)

	assert.Contains(t, out, "A B C D E F G H")
	assert.Contains(t, out, "♔")
	assert.Contains(t, out, "♚")
}
