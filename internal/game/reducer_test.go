package game

import (
	"errors"
	"testing"

	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/game/core"
	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/game/events"
	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/game/rules"
	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateInitialGameState_Defaults(t *testing.T) {
	gs := newTestReducer().CreateInitialGameState(testutil.NewTestRNG(7), WithRules(testRules()))

	assert.NotEmpty(t, gs.GameID)
	assert.Equal(t, core.StandardBoard(), gs.Board)
	assert.Equal(t, core.White, gs.CurrentPlayer)
	assert.Equal(t, PhasePlaying, gs.Phase)
	assert.Equal(t, WinnerNone, gs.Winner)
	assert.Equal(t, 0, gs.TurnCount)
	assert.Empty(t, gs.ShrunkSquares)
	assert.Empty(t, gs.PowerUps)
	assert.Empty(t, gs.RespawnQueue)
	assert.NotNil(t, gs.PlayerPowerUps)
	assert.NotNil(t, gs.TrapSquares)
	assert.NotNil(t, gs.ShieldedPieces)
}

func TestCreateInitialGameState_SameSeed_SameGameID(t *testing.T) {
	r := newTestReducer()
	a := r.CreateInitialGameState(testutil.NewTestRNG(42))
	b := r.CreateInitialGameState(testutil.NewTestRNG(42))
	c := r.CreateInitialGameState(testutil.NewTestRNG(43))

	assert.Equal(t, a.GameID, b.GameID)
	assert.NotEqual(t, a.GameID, c.GameID)
}

func TestApplyMove_PawnDoubleStep_AdvancesTurn(t *testing.T) {
	r := newTestReducer()
	gs := newTestState(t, core.StandardBoard(), core.White)

	next := playUCI(t, r, gs, "e2e4")

	assert.Equal(t, 1, next.TurnCount)
	assert.Equal(t, core.Black, next.CurrentPlayer)
	moved := next.Board.At(testutil.Square("e4"))
	assert.Equal(t, core.Pawn, moved.Type)
	assert.True(t, moved.HasMoved)
	assert.True(t, next.Board.IsEmpty(testutil.Square("e2")))
	require.NotNil(t, next.LastMove)
	assert.Equal(t, "e2e4", next.LastMove.UCI())
	assert.Contains(t, eventTypes(next.Events), events.TypeMoveExecuted)

	// the input snapshot is untouched
	assert.Equal(t, 0, gs.TurnCount)
	assert.Equal(t, core.Pawn, gs.Board.At(testutil.Square("e2")).Type)
	assert.True(t, gs.Board.IsEmpty(testutil.Square("e4")))
}

func TestApplyMove_PawnDoubleStep_BlockedAfterFirstMove(t *testing.T) {
	r := newTestReducer()
	gs := newTestState(t, core.StandardBoard(), core.White)
	gs = playUCI(t, r, gs, "e2e3")
	gs = playUCI(t, r, gs, "a7a6")

	m, err := core.ParseUCI(&gs.Board, "e3e5")
	require.NoError(t, err)
	_, err = r.TryApplyMove(gs, m)
	assert.ErrorIs(t, err, core.ErrIllegalMove)
}

func TestApplyMove_IllegalMove_ReturnsSameState(t *testing.T) {
	r := newTestReducer()
	gs := newTestState(t, core.StandardBoard(), core.White)
	m, err := core.ParseUCI(&gs.Board, "e2e5")
	require.NoError(t, err)

	assert.Same(t, gs, r.ApplyMove(gs, m))

	_, err = r.TryApplyMove(gs, m)
	assert.ErrorIs(t, err, core.ErrIllegalMove)
}

func TestApplyMove_OpponentPiece_NotYourTurn(t *testing.T) {
	r := newTestReducer()
	gs := newTestState(t, core.StandardBoard(), core.White)
	m, err := core.ParseUCI(&gs.Board, "e7e5")
	require.NoError(t, err)

	_, err = r.TryApplyMove(gs, m)
	assert.ErrorIs(t, err, core.ErrNotYourTurn)
}

func TestApplyMove_EmptySource_Illegal(t *testing.T) {
	r := newTestReducer()
	gs := newTestState(t, core.StandardBoard(), core.White)
	m, err := core.ParseUCI(&gs.Board, "e4e5")
	require.NoError(t, err)

	_, err = r.TryApplyMove(gs, m)
	assert.ErrorIs(t, err, core.ErrIllegalMove)
	assert.NotErrorIs(t, err, core.ErrNotYourTurn)
}

func TestApplyMove_OffBoardSquare_InvalidPosition(t *testing.T) {
	r := newTestReducer()
	gs := newTestState(t, core.StandardBoard(), core.White)
	m := core.Move{From: core.NewPosition(6, 4), To: core.NewPosition(8, 4)}

	_, err := r.TryApplyMove(gs, m)
	assert.ErrorIs(t, err, core.ErrInvalidPosition)
}

func TestApplyMove_Capture_QueuesRespawn(t *testing.T) {
	r := newTestReducer()
	gs := newTestState(t, testutil.BoardFromRows(
		"n...k...",
		"........",
		"........",
		"........",
		"........",
		"........",
		"........",
		"R...K...",
	), core.White)

	next := playUCI(t, r, gs, "a1a8")

	require.Len(t, next.CapturedPieces, 1)
	assert.Equal(t, core.Knight, next.CapturedPieces[0].Type)
	require.Len(t, next.RespawnQueue, 1)
	assert.Equal(t, core.Black, next.RespawnQueue[0].Owner)
	assert.Equal(t, next.CapturedPieces[0].ID, next.RespawnQueue[0].Original.ID)
	assert.Subset(t, eventTypes(next.Events), []string{events.TypePieceCaptured, events.TypeKingInCheck})
	assert.Empty(t, gs.CapturedPieces)
}

func TestApplyMove_PawnOnLastRank_PromotesToQueen(t *testing.T) {
	r := newTestReducer()
	gs := newTestState(t, testutil.BoardFromRows(
		"....k...",
		"P.......",
		"........",
		"........",
		"........",
		"........",
		"........",
		"....K...",
	), core.White)

	next := playUCI(t, r, gs, "a7a8")

	promoted := next.Board.At(testutil.Square("a8"))
	assert.Equal(t, core.Queen, promoted.Type)
	assert.Equal(t, core.White, promoted.Color)
	assert.Contains(t, eventTypes(next.Events), events.TypePiecePromoted)
}

func TestApplyMove_OntoPowerUp_Collects(t *testing.T) {
	r := newTestReducer()
	gs := newTestState(t, core.StandardBoard(), core.White)
	gs.PowerUps = []core.PowerUp{{ID: "pu-1", Type: core.PowerUpShield, Position: testutil.Square("e4"), TurnsRemaining: 5}}

	next := playUCI(t, r, gs, "e2e4")

	held, ok := next.HeldPowerUp(core.White)
	require.True(t, ok)
	assert.Equal(t, core.PowerUpShield, held.Type)
	assert.Empty(t, next.PowerUps)
	assert.Contains(t, eventTypes(next.Events), events.TypePowerUpCollected)
}

func TestApplyMove_OntoPowerUpWhileHolding_LeavesIt(t *testing.T) {
	r := newTestReducer()
	gs := newTestState(t, core.StandardBoard(), core.White)
	gs.PowerUps = []core.PowerUp{{ID: "pu-1", Type: core.PowerUpShield, Position: testutil.Square("e4"), TurnsRemaining: 5}}
	gs.PlayerPowerUps[core.White] = heldPowerUp(core.PowerUpTrap)

	next := playUCI(t, r, gs, "e2e4")

	held, _ := next.HeldPowerUp(core.White)
	assert.Equal(t, core.PowerUpTrap, held.Type)
	assert.Len(t, next.PowerUps, 1)
}

func TestLegalMoves_ShieldedPiece_CannotBeCaptured(t *testing.T) {
	gs := newTestState(t, testutil.BoardFromRows(
		"n...k...",
		"........",
		"........",
		"........",
		"........",
		"........",
		"........",
		"R...K...",
	), core.White)
	require.True(t, testutil.HasMove(LegalMoves(gs, core.White), "a1", "a8"))

	knight := gs.Board.At(testutil.Square("a8"))
	gs.ShieldedPieces[knight.ID] = 3

	moves := LegalMoves(gs, core.White)
	assert.False(t, testutil.HasMove(moves, "a1", "a8"))
	assert.True(t, testutil.HasMove(moves, "a1", "a7"))
}

func TestUsePowerUp_Shield_ProtectsOwnPiece(t *testing.T) {
	r := newTestReducer()
	gs := newTestState(t, core.StandardBoard(), core.White)
	gs.PlayerPowerUps[core.White] = heldPowerUp(core.PowerUpShield)

	next, err := r.TryUsePowerUp(gs, core.White, core.PowerUpShield, testutil.Square("d1"))
	require.NoError(t, err)

	queen := next.Board.At(testutil.Square("d1"))
	assert.Equal(t, testRules().ShieldTurns, next.ShieldedPieces[queen.ID])
	_, holding := next.HeldPowerUp(core.White)
	assert.False(t, holding)
	assert.Equal(t, core.White, next.CurrentPlayer, "using a power-up does not end the turn")
	assert.Contains(t, eventTypes(next.Events), events.TypePowerUpUsed)
}

func TestUsePowerUp_Invalid_ReturnsSameState(t *testing.T) {
	r := newTestReducer()
	gs := newTestState(t, core.StandardBoard(), core.White)
	gs.PlayerPowerUps[core.White] = heldPowerUp(core.PowerUpShield)

	tests := []struct {
		name   string
		color  core.Color
		kind   core.PowerUpType
		target string
		want   error
	}{
		{"wrong type", core.White, core.PowerUpTrap, "e4", core.ErrNoPowerUp},
		{"not holder's turn", core.Black, core.PowerUpShield, "d8", core.ErrNotYourTurn},
		{"shield on enemy", core.White, core.PowerUpShield, "d8", core.ErrInvalidPowerUpTarget},
		{"shield on empty", core.White, core.PowerUpShield, "e4", core.ErrInvalidPowerUpTarget},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := testutil.Square(tt.target)
			assert.Same(t, gs, r.UsePowerUp(gs, tt.color, tt.kind, target))

			_, err := r.TryUsePowerUp(gs, tt.color, tt.kind, target)
			assert.ErrorIs(t, err, tt.want)
			var gameErr *core.GameError
			assert.True(t, errors.As(err, &gameErr))
		})
	}
}

func TestUsePowerUp_ExtraMove_SameSideMovesAgain(t *testing.T) {
	r := newTestReducer()
	gs := newTestState(t, core.StandardBoard(), core.White)
	gs.PlayerPowerUps[core.White] = heldPowerUp(core.PowerUpExtraMove)

	gs = r.UsePowerUp(gs, core.White, core.PowerUpExtraMove, core.Position{})
	require.True(t, gs.ExtraMoveArmed[core.White])

	gs = playUCI(t, r, gs, "e2e4")
	assert.Equal(t, core.White, gs.CurrentPlayer)
	assert.Equal(t, 1, gs.TurnCount)
	assert.False(t, gs.ExtraMoveArmed[core.White])

	gs = playUCI(t, r, gs, "d2d4")
	assert.Equal(t, core.Black, gs.CurrentPlayer)
	assert.Equal(t, 2, gs.TurnCount)
}

func TestUsePowerUp_ExtraMove_ForfeitedWhenGivingCheck(t *testing.T) {
	r := newTestReducer()
	gs := newTestState(t, testutil.BoardFromRows(
		"....k...",
		"........",
		"........",
		"........",
		"........",
		"........",
		"........",
		"...QK...",
	), core.White)
	gs.PlayerPowerUps[core.White] = heldPowerUp(core.PowerUpExtraMove)
	gs = r.UsePowerUp(gs, core.White, core.PowerUpExtraMove, core.Position{})
	require.True(t, gs.ExtraMoveArmed[core.White])

	gs = playUCI(t, r, gs, "d1e2")

	assert.Equal(t, core.Black, gs.CurrentPlayer, "a checked side always answers")
	assert.False(t, gs.ExtraMoveArmed[core.White])
	assert.Contains(t, eventTypes(gs.Events), events.TypeKingInCheck)

	m, err := core.ParseUCI(&gs.Board, "e2e8")
	require.NoError(t, err)
	_, err = r.TryApplyMove(gs, m)
	assert.ErrorIs(t, err, core.ErrNotYourTurn)

	// even on white's move the king is never taken
	gs.CurrentPlayer = core.White
	_, err = r.TryApplyMove(gs, m)
	assert.ErrorIs(t, err, core.ErrIllegalMove)
	assert.Empty(t, gs.CapturedPieces)
}

func TestUsePowerUp_Trap_CapturesArrivingEnemy(t *testing.T) {
	r := newTestReducer()
	gs := newTestState(t, core.StandardBoard(), core.White)
	gs.PlayerPowerUps[core.White] = heldPowerUp(core.PowerUpTrap)

	gs, err := r.TryUsePowerUp(gs, core.White, core.PowerUpTrap, testutil.Square("e5"))
	require.NoError(t, err)
	owner, ok := gs.IsTrap(testutil.Square("e5"))
	require.True(t, ok)
	assert.Equal(t, core.White, owner)

	gs = playUCI(t, r, gs, "a2a3")
	gs = playUCI(t, r, gs, "e7e5")

	assert.True(t, gs.Board.IsEmpty(testutil.Square("e5")))
	_, stillTrapped := gs.IsTrap(testutil.Square("e5"))
	assert.False(t, stillTrapped)
	require.Len(t, gs.CapturedPieces, 1)
	assert.Equal(t, core.Black, gs.CapturedPieces[0].Color)
	assert.Len(t, gs.RespawnQueue, 1)
	assert.Contains(t, eventTypes(gs.Events), events.TypeTrapTriggered)
}

func TestUsePowerUp_Trap_OccupiedSquareRejected(t *testing.T) {
	r := newTestReducer()
	gs := newTestState(t, core.StandardBoard(), core.White)
	gs.PlayerPowerUps[core.White] = heldPowerUp(core.PowerUpTrap)

	_, err := r.TryUsePowerUp(gs, core.White, core.PowerUpTrap, testutil.Square("e7"))
	assert.ErrorIs(t, err, core.ErrInvalidPowerUpTarget)
}

func TestUsePowerUp_Trap_PowerUpSquareRejected(t *testing.T) {
	r := newTestReducer()
	gs := newTestState(t, core.StandardBoard(), core.White)
	gs.PlayerPowerUps[core.White] = heldPowerUp(core.PowerUpTrap)
	gs.PowerUps = append(gs.PowerUps, core.PowerUp{ID: "pu-e5", Type: core.PowerUpShield, Position: testutil.Square("e5"), TurnsRemaining: 5})

	next, err := r.TryUsePowerUp(gs, core.White, core.PowerUpTrap, testutil.Square("e5"))
	assert.ErrorIs(t, err, core.ErrInvalidPowerUpTarget)
	assert.Same(t, gs, next)
	_, trapped := gs.IsTrap(testutil.Square("e5"))
	assert.False(t, trapped)
	assert.Contains(t, gs.PlayerPowerUps, core.White)
}

func TestApplyMove_Teleport_RelocatesPiece(t *testing.T) {
	r := newTestReducer()
	gs := newTestState(t, core.StandardBoard(), core.White)
	gs.PlayerPowerUps[core.White] = heldPowerUp(core.PowerUpTeleport)
	gs = r.UsePowerUp(gs, core.White, core.PowerUpTeleport, core.Position{})
	require.True(t, gs.TeleportArmed[core.White])
	require.NotEmpty(t, TeleportMoves(gs, core.White))

	m := teleportMove(gs, testutil.Square("b1"), testutil.Square("e5"))
	next, err := r.TryApplyMove(gs, m)
	require.NoError(t, err)

	assert.Equal(t, core.Knight, next.Board.At(testutil.Square("e5")).Type)
	assert.True(t, next.Board.IsEmpty(testutil.Square("b1")))
	assert.False(t, next.TeleportArmed[core.White])
	assert.Equal(t, core.Black, next.CurrentPlayer)
	assert.Empty(t, TeleportMoves(next, core.White))
}

func TestApplyMove_Teleport_Rejected(t *testing.T) {
	r := newTestReducer()
	gs := newTestState(t, core.StandardBoard(), core.White)

	unarmed := teleportMove(gs, testutil.Square("b1"), testutil.Square("e5"))
	_, err := r.TryApplyMove(gs, unarmed)
	assert.ErrorIs(t, err, core.ErrNoPowerUp)

	gs.TeleportArmed[core.White] = true
	occupied := teleportMove(gs, testutil.Square("b1"), testutil.Square("e7"))
	_, err = r.TryApplyMove(gs, occupied)
	assert.ErrorIs(t, err, core.ErrInvalidPowerUpTarget)
}

func TestApplyMove_Teleport_CannotExposeKing(t *testing.T) {
	r := newTestReducer()
	gs := newTestState(t, testutil.BoardFromRows(
		"....k...",
		"....r...",
		"........",
		"........",
		"........",
		"........",
		"....R...",
		"....K...",
	), core.White)
	gs.TeleportArmed[core.White] = true

	m := teleportMove(gs, testutil.Square("e2"), testutil.Square("a4"))
	_, err := r.TryApplyMove(gs, m)
	assert.ErrorIs(t, err, core.ErrIllegalMove)
}

func TestEvaluateGameOver_Checkmate_OpponentWins(t *testing.T) {
	r := newTestReducer()
	gs := newTestState(t, testutil.BoardFromRows(
		"R.....k.",
		".....ppp",
		"........",
		"........",
		"........",
		"........",
		"........",
		"....K...",
	), core.Black)

	over := r.EvaluateGameOver(gs)

	assert.Equal(t, PhaseGameOver, over.Phase)
	assert.Equal(t, WinnerWhite, over.Winner)
	assert.Equal(t, rules.ReasonCheckmate, over.EndReason)
	assert.Contains(t, eventTypes(over.Events), events.TypeGameEnded)
	assert.Equal(t, PhasePlaying, gs.Phase)
}

func TestEvaluateGameOver_Idempotent(t *testing.T) {
	r := newTestReducer()
	gs := newTestState(t, testutil.BoardFromRows(
		"k.......",
		"........",
		".Q......",
		"........",
		"........",
		"........",
		"........",
		"....K...",
	), core.Black)

	once := r.EvaluateGameOver(gs)
	twice := r.EvaluateGameOver(once)

	assert.Equal(t, WinnerDraw, once.Winner)
	assert.Equal(t, rules.ReasonStalemate, once.EndReason)
	assert.Same(t, once, twice)
}

func TestEvaluateGameOver_KingMissing(t *testing.T) {
	r := newTestReducer()
	gs := newTestState(t, testutil.BoardFromRows(
		"........",
		"........",
		"........",
		"...q....",
		"........",
		"........",
		"........",
		"....K...",
	), core.Black)

	over := r.EvaluateGameOver(gs)

	assert.Equal(t, WinnerWhite, over.Winner)
	assert.Equal(t, rules.ReasonKingMissing, over.EndReason)
}

func TestEvaluateGameOver_Ongoing_ReturnsSameState(t *testing.T) {
	r := newTestReducer()
	gs := newTestState(t, core.StandardBoard(), core.White)

	assert.Same(t, gs, r.EvaluateGameOver(gs))
}

func TestApplyMove_AfterGameOver_Rejected(t *testing.T) {
	r := newTestReducer()
	gs := newTestState(t, core.StandardBoard(), core.White)
	gs.Phase = PhaseGameOver
	m, err := core.ParseUCI(&gs.Board, "e2e4")
	require.NoError(t, err)

	_, err = r.TryApplyMove(gs, m)
	assert.ErrorIs(t, err, core.ErrGameOver)
	assert.Same(t, gs, r.AdvanceTurnMechanics(gs, testutil.NewTestRNG(1)))
}

func TestPassTurn_SwitchesSideWithoutCountingTurn(t *testing.T) {
	r := newTestReducer()
	gs := newTestState(t, core.StandardBoard(), core.Black)

	next := r.PassTurn(gs)

	assert.Equal(t, core.White, next.CurrentPlayer)
	assert.Equal(t, gs.TurnCount, next.TurnCount)
	assert.Equal(t, []string{events.TypeTurnPassed}, eventTypes(next.Events))
}

func TestPlay_FoolsMate_BlackWins(t *testing.T) {
	r := newTestReducer()
	rng := testutil.NewTestRNG(3)
	gs := newTestState(t, core.StandardBoard(), core.White)

	for _, uci := range []string{"f2f3", "e7e5", "g2g4", "d8h4"} {
		m, err := core.ParseUCI(&gs.Board, uci)
		require.NoError(t, err)
		gs, err = r.Play(gs, m, rng)
		require.NoError(t, err, uci)
	}

	assert.True(t, gs.IsOver())
	assert.Equal(t, WinnerBlack, gs.Winner)
	assert.Equal(t, rules.ReasonCheckmate, gs.EndReason)
	assert.Equal(t, 4, gs.TurnCount)
	assert.Contains(t, gs.Describe(), "game over")
}

func TestClone_IsIndependent(t *testing.T) {
	gs := newTestState(t, core.StandardBoard(), core.White)
	gs.ShieldedPieces["x"] = 2
	gs.PowerUps = []core.PowerUp{{ID: "p"}}

	c := gs.Clone()
	c.ShieldedPieces["x"] = 9
	c.PowerUps[0].ID = "q"
	c.ShrunkSquares.Add(testutil.Square("a1"))
	c.Board.Clear(testutil.Square("e1"))

	assert.Equal(t, 2, gs.ShieldedPieces["x"])
	assert.Equal(t, "p", gs.PowerUps[0].ID)
	assert.False(t, gs.ShrunkSquares.Has(testutil.Square("a1")))
	assert.Equal(t, core.King, gs.Board.At(testutil.Square("e1")).Type)
}
