package game

import (
	"testing"

	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/game/core"
	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/game/events"
	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/testutil"
	"github.com/stretchr/testify/require"
)

// testRules mirrors the shipped defaults without reading any config file
func testRules() Rules {
	return Rules{
		ShrinkEnabled:      true,
		ShrinkCycleTurns:   16,
		ShrinkWarningTurns: 8,
		ShrinkMaxLevel:     3,

		RespawnEnabled:       true,
		RespawnIntervalTurns: 15,
		RespawnWeights: []core.Weighted[core.PieceType]{
			{Value: core.Pawn, Weight: 50},
			{Value: core.Knight, Weight: 20},
			{Value: core.Bishop, Weight: 15},
			{Value: core.Rook, Weight: 10},
			{Value: core.Queen, Weight: 5},
		},

		PowerUpsEnabled:      true,
		PowerUpSpawnInterval: 12,
		PowerUpLifetimeTurns: 20,
		ShieldTurns:          6,

		TransformationEnabled:       true,
		TransformationIntervalTurns: 25,
		TransformationIdleThreshold: 15,
		TransformationWeights: []core.Weighted[core.PieceType]{
			{Value: core.Knight, Weight: 40},
			{Value: core.Bishop, Weight: 30},
			{Value: core.Rook, Weight: 20},
			{Value: core.Queen, Weight: 10},
		},
	}
}

func newTestReducer() *Reducer {
	return NewReducer(testutil.NopLogger())
}

// newTestState builds a playing state on the given board with default rules
func newTestState(t *testing.T, b core.Board, toMove core.Color) *GameState {
	t.Helper()
	gs := newTestReducer().CreateInitialGameState(testutil.NewTestRNG(1),
		WithBoard(b), WithRules(testRules()), WithSideToMove(toMove))
	require.NotNil(t, gs)
	return gs
}

// playUCI plays a move given in coordinate notation and fails the test if it is rejected
func playUCI(t *testing.T, r *Reducer, gs *GameState, uci string) *GameState {
	t.Helper()
	m, err := core.ParseUCI(&gs.Board, uci)
	require.NoError(t, err)
	next, err := r.TryApplyMove(gs, m)
	require.NoError(t, err, "move %s", uci)
	return next
}

func eventTypes(evts []events.Event) []string {
	out := make([]string, 0, len(evts))
	for _, e := range evts {
		out = append(out, e.Type())
	}
	return out
}

func heldPowerUp(kind core.PowerUpType) core.PowerUp {
	return core.PowerUp{ID: "held-" + kind.String(), Type: kind}
}
