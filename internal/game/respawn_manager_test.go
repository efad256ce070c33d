package game

import (
	"testing"

	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/game/core"
	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/game/events"
	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/game/rules"
	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captured(c core.Color, t core.PieceType, id string) core.Piece {
	return core.NewPiece(t, c, id)
}

func TestRespawnManager_RebuildQueue_InterleavesWhiteFirst(t *testing.T) {
	rm := NewRespawnManager(testutil.NopLogger())
	gs := newTestState(t, core.StandardBoard(), core.White)
	gs.CapturedPieces = []core.Piece{
		captured(core.Black, core.Knight, "b1"),
		captured(core.White, core.Pawn, "w1"),
		captured(core.White, core.Rook, "w2"),
		captured(core.White, core.Bishop, "w3"),
		captured(core.Black, core.Queen, "b2"),
	}

	rm.RebuildQueue(gs)

	ids := make([]string, len(gs.RespawnQueue))
	for i, e := range gs.RespawnQueue {
		ids[i] = e.Original.ID
	}
	assert.Equal(t, []string{"w1", "b1", "w2", "b2", "w3"}, ids)
}

func TestRespawnManager_RebuildQueue_SkipsRespawnedAndKings(t *testing.T) {
	rm := NewRespawnManager(testutil.NopLogger())
	gs := newTestState(t, core.StandardBoard(), core.White)
	gs.CapturedPieces = []core.Piece{
		captured(core.White, core.Pawn, "w1"),
		captured(core.Black, core.King, "bk"),
		captured(core.Black, core.Pawn, "b1"),
	}
	gs.RespawnedIDs["w1"] = true

	rm.RebuildQueue(gs)

	require.Len(t, gs.RespawnQueue, 1)
	assert.Equal(t, "b1", gs.RespawnQueue[0].Original.ID)
}

func TestRespawnManager_OnCadence_PlacesHead(t *testing.T) {
	rm := NewRespawnManager(testutil.NopLogger())
	gs := newTestState(t, testutil.KingsOnly(), core.White)
	gs.CapturedPieces = []core.Piece{captured(core.Black, core.Rook, "gone-rook")}
	rm.RebuildQueue(gs)
	gs.TurnCount = 15

	rm.ProcessTurnRespawn(gs, testutil.NewTestRNG(9))

	assert.Empty(t, gs.RespawnQueue)
	assert.True(t, gs.RespawnedIDs["gone-rook"])
	assert.Equal(t, 2, gs.Board.CountPieces(core.Black))
	var placed core.Piece
	for _, pp := range gs.Board.Pieces(core.Black) {
		if !pp.Piece.IsKing() {
			placed = pp.Piece
		}
	}
	assert.NotEqual(t, core.King, placed.Type)
	assert.NotEqual(t, "gone-rook", placed.ID, "respawned pieces get a fresh identity")
	assert.Equal(t, []string{events.TypePieceRespawned}, eventTypes(gs.Events))
}

func TestRespawnManager_OffCadence_Waits(t *testing.T) {
	rm := NewRespawnManager(testutil.NopLogger())
	gs := newTestState(t, testutil.KingsOnly(), core.White)
	gs.CapturedPieces = []core.Piece{captured(core.Black, core.Rook, "r")}
	rm.RebuildQueue(gs)
	gs.TurnCount = 14

	rm.ProcessTurnRespawn(gs, testutil.NewTestRNG(9))

	assert.Len(t, gs.RespawnQueue, 1)
}

func TestRespawnManager_NoSquare_EntryStaysAtHead(t *testing.T) {
	rm := NewRespawnManager(testutil.NopLogger())
	gs := newTestState(t, testutil.KingsOnly(), core.White)
	for _, p := range core.AllPositions() {
		if gs.Board.IsEmpty(p) {
			gs.ShrunkSquares.Add(p)
		}
	}
	gs.CapturedPieces = []core.Piece{
		captured(core.White, core.Knight, "w"),
		captured(core.Black, core.Knight, "b"),
	}
	rm.RebuildQueue(gs)
	gs.TurnCount = 30

	rm.ProcessTurnRespawn(gs, testutil.NewTestRNG(9))

	require.Len(t, gs.RespawnQueue, 2)
	assert.Equal(t, "w", gs.RespawnQueue[0].Original.ID)
	assert.Equal(t, []string{events.TypeRespawnDeferred}, eventTypes(gs.Events))
}

func TestRespawnManager_Pawn_NeverOnFirstOrLastRow(t *testing.T) {
	rm := NewRespawnManager(testutil.NopLogger())
	for seed := int64(1); seed <= 40; seed++ {
		gs := newTestState(t, testutil.KingsOnly(), core.White)
		gs.Rules.RespawnWeights = []core.Weighted[core.PieceType]{{Value: core.Pawn, Weight: 1}}
		gs.CapturedPieces = []core.Piece{captured(core.White, core.Knight, "w")}
		rm.RebuildQueue(gs)
		gs.TurnCount = 15

		rm.ProcessTurnRespawn(gs, testutil.NewTestRNG(seed))

		for _, pp := range gs.Board.Pieces(core.White) {
			if pp.Piece.Type == core.Pawn {
				assert.NotContains(t, []int{0, core.BoardSize - 1}, pp.Position.Row, "seed %d", seed)
			}
		}
	}
}

func TestRespawnManager_AvoidsPowerUpsAndTraps(t *testing.T) {
	rm := NewRespawnManager(testutil.NopLogger())
	gs := newTestState(t, testutil.KingsOnly(), core.White)
	// leave only c5 (beside a power-up), f3 (a trap) and h4 open
	open := map[core.Position]bool{
		testutil.Square("c5"): true,
		testutil.Square("f3"): true,
		testutil.Square("h4"): true,
		testutil.Square("b5"): true,
	}
	for _, p := range core.AllPositions() {
		if gs.Board.IsEmpty(p) && !open[p] {
			gs.ShrunkSquares.Add(p)
		}
	}
	gs.PowerUps = []core.PowerUp{{ID: "pu", Position: testutil.Square("b5"), TurnsRemaining: 5}}
	gs.TrapSquares[testutil.Square("f3").Key()] = core.White
	gs.Rules.RespawnWeights = []core.Weighted[core.PieceType]{{Value: core.Knight, Weight: 1}}
	gs.CapturedPieces = []core.Piece{captured(core.Black, core.Knight, "b")}
	rm.RebuildQueue(gs)
	gs.TurnCount = 15

	rm.ProcessTurnRespawn(gs, testutil.NewTestRNG(2))

	assert.Equal(t, core.Knight, gs.Board.At(testutil.Square("h4")).Type)
}

func TestRespawnManager_NeverChecksSideNotToMove(t *testing.T) {
	rm := NewRespawnManager(testutil.NopLogger())
	for seed := int64(1); seed <= 40; seed++ {
		// white is on move, so black could not answer a check from the new queen
		gs := newTestState(t, testutil.KingsOnly(), core.White)
		gs.Rules.RespawnWeights = []core.Weighted[core.PieceType]{{Value: core.Queen, Weight: 1}}
		gs.CapturedPieces = []core.Piece{captured(core.White, core.Rook, "w")}
		rm.RebuildQueue(gs)
		gs.TurnCount = 15

		rm.ProcessTurnRespawn(gs, testutil.NewTestRNG(seed))

		require.Empty(t, gs.RespawnQueue, "seed %d", seed)
		assert.False(t, rules.IsInCheck(&gs.Board, core.Black, gs.ShrunkSquares), "seed %d", seed)
	}
}

func TestRespawnManager_MayCheckSideToMove(t *testing.T) {
	rm := NewRespawnManager(testutil.NopLogger())
	gs := newTestState(t, testutil.KingsOnly(), core.Black)
	// only e4 is open: a white rook there checks black, who is on move and can answer
	for _, p := range core.AllPositions() {
		if gs.Board.IsEmpty(p) && p != testutil.Square("e4") {
			gs.ShrunkSquares.Add(p)
		}
	}
	gs.Rules.RespawnWeights = []core.Weighted[core.PieceType]{{Value: core.Rook, Weight: 1}}
	gs.CapturedPieces = []core.Piece{captured(core.White, core.Rook, "w")}
	rm.RebuildQueue(gs)
	gs.TurnCount = 15

	rm.ProcessTurnRespawn(gs, testutil.NewTestRNG(3))

	assert.Equal(t, core.Rook, gs.Board.At(testutil.Square("e4")).Type)
	assert.True(t, rules.IsInCheck(&gs.Board, core.Black, gs.ShrunkSquares))
}
