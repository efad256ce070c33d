package simulation

import (
	"context"
	"testing"

	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/config"
	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/game"
	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/game/core"
	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(games, workers, maxTurns int) Config {
	return Config{
		Games:    games,
		Workers:  workers,
		MaxTurns: maxTurns,
		Seed:     100,
		Rules:    game.DefaultRules(),
		AI: config.AIConfig{
			TopK:               3,
			RankDecay:          0.75,
			CheckBonus:         5,
			CaptureMultiplier:  10,
			KingThreatBonus:    15,
			KingEdgeWeight:     2,
			KingWarningPenalty: 50,
			GuardRadius:        2,
			GuardBonus:         1.5,
			CenterWeight:       0.5,
			AttackedPenalty:    8,
			PowerUpBonus:       6,
			ShrinkWarnPenalty:  20,
			MaterialWeight:     1,
			Noise:              0.5,
		},
	}
}

func TestPlayGame_SameSeed_SameResult(t *testing.T) {
	r := NewRunner(testConfig(1, 1, 60), testutil.NopLogger())

	first, err := r.PlayGame(context.Background(), 0, 7)
	require.NoError(t, err)
	second, err := r.PlayGame(context.Background(), 0, 7)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.LessOrEqual(t, first.Turns, 60)
}

func TestPlayGame_MateInOne_FinishesOnFirstTurn(t *testing.T) {
	b := testutil.BoardFromRows(
		"......k.",
		".....ppp",
		"........",
		"........",
		"........",
		"........",
		"........",
		"R...K...",
	)
	cfg := testConfig(1, 1, 10)
	cfg.StartBoard = &b

	res, err := NewRunner(cfg, testutil.NopLogger()).PlayGame(context.Background(), 0, 1)

	require.NoError(t, err)
	assert.True(t, res.Finished)
	assert.Equal(t, game.WinnerWhite, res.Winner)
	assert.Equal(t, 1, res.Turns)
	assert.Equal(t, "white", res.Outcome())
}

func TestPlayGame_StalematedStart_EndsImmediately(t *testing.T) {
	b := testutil.BoardFromRows(
		"k.......",
		"........",
		".Q......",
		"........",
		"........",
		"........",
		"........",
		"....K...",
	)
	black := core.Black
	cfg := testConfig(1, 1, 10)
	cfg.StartBoard = &b
	cfg.SideToMove = &black

	res, err := NewRunner(cfg, testutil.NopLogger()).PlayGame(context.Background(), 0, 1)

	require.NoError(t, err)
	assert.True(t, res.Finished)
	assert.Equal(t, game.WinnerDraw, res.Winner)
	assert.Equal(t, 0, res.Turns)
}

func TestRun_AggregatesEveryGame(t *testing.T) {
	r := NewRunner(testConfig(6, 3, 40), testutil.NopLogger())

	summary, results, err := r.Run(context.Background())

	require.NoError(t, err)
	require.Len(t, results, 6)
	for i, res := range results {
		assert.Equal(t, i, res.Index)
		assert.Equal(t, int64(100+i), res.Seed)
		assert.NotEmpty(t, res.GameID)
	}
	assert.Equal(t, 6, summary.Games)
	assert.Equal(t, 6, summary.WhiteWins+summary.BlackWins+summary.Draws+summary.Unfinished)
	assert.LessOrEqual(t, summary.LongestGame, 40)
}

func TestRun_ResultsDoNotDependOnWorkerCount(t *testing.T) {
	_, serial, err := NewRunner(testConfig(4, 1, 30), testutil.NopLogger()).Run(context.Background())
	require.NoError(t, err)
	_, parallel, err := NewRunner(testConfig(4, 4, 30), testutil.NopLogger()).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, serial, parallel)
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := NewRunner(testConfig(3, 2, 40), testutil.NopLogger()).Run(ctx)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestSummarize(t *testing.T) {
	results := []GameResult{
		{Winner: game.WinnerWhite, Reason: "checkmate", Turns: 30, Finished: true, Captures: 4},
		{Winner: game.WinnerBlack, Reason: "king eliminated", Turns: 50, Finished: true, Captures: 6},
		{Winner: game.WinnerDraw, Reason: "stalemate", Turns: 20, Finished: true},
		{Turns: 100, Captures: 2},
	}

	s := Summarize(results)

	assert.Equal(t, 4, s.Games)
	assert.Equal(t, 1, s.WhiteWins)
	assert.Equal(t, 1, s.BlackWins)
	assert.Equal(t, 1, s.Draws)
	assert.Equal(t, 1, s.Unfinished)
	assert.Equal(t, 50.0, s.AverageTurns)
	assert.Equal(t, 100, s.LongestGame)
	assert.Equal(t, 12, s.Captures)
	assert.Equal(t, map[string]int{"checkmate": 1, "king eliminated": 1, "stalemate": 1}, s.Reasons)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)

	assert.Zero(t, s.Games)
	assert.Zero(t, s.AverageTurns)
}

func TestGameResult_Outcome(t *testing.T) {
	assert.Equal(t, "unfinished", GameResult{Winner: game.WinnerWhite}.Outcome())
	assert.Equal(t, "draw", GameResult{Winner: game.WinnerDraw, Finished: true}.Outcome())
}
