// Package simulation plays seeded computer-versus-computer games in parallel
package simulation

import (
	"context"
	"fmt"
	"time"

	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/config"
	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/game"
	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/game/ai"
	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/game/core"
	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/monitoring"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// maxConsecutivePasses ends a game in which neither side can move
const maxConsecutivePasses = 2

// Config describes a batch of self-play games
type Config struct {
	Games    int
	Workers  int
	MaxTurns int
	// Seed of game i is Seed+i, so any single game can be replayed
	Seed  int64
	Rules game.Rules
	AI    config.AIConfig
	// StartBoard replaces the standard layout when set
	StartBoard *core.Board
	SideToMove *core.Color
	// ProgressInterval enables periodic progress logging
	ProgressInterval time.Duration
}

// ConfigFromSettings builds a batch configuration from the loaded settings
func ConfigFromSettings(cfg *config.Config) Config {
	return Config{
		Games:    cfg.Simulation.Games,
		Workers:  cfg.Simulation.Workers,
		MaxTurns: cfg.Simulation.MaxTurns,
		Seed:     cfg.Simulation.Seed,
		Rules:    game.DefaultRules(),
		AI:       cfg.AI,
	}
}

// Runner plays batches of games
type Runner struct {
	cfg    Config
	logger zerolog.Logger
}

// NewRunner creates a runner. Workers below one means one worker.
func NewRunner(cfg Config, logger zerolog.Logger) *Runner {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return &Runner{
		cfg:    cfg,
		logger: logger.With().Str("component", "SimulationRunner").Logger(),
	}
}

// Run plays every game of the batch and aggregates the results. The first
// failing game cancels the rest.
func (r *Runner) Run(ctx context.Context) (Summary, []GameResult, error) {
	results := make([]GameResult, r.cfg.Games)
	progress := monitoring.NewProgressMonitor(r.cfg.Games, r.cfg.ProgressInterval, r.logger)
	progress.Start()
	defer progress.Stop()

	r.logger.Info().
		Int("games", r.cfg.Games).
		Int("workers", r.cfg.Workers).
		Int64("seed", r.cfg.Seed).
		Msg("Starting simulation")

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(r.cfg.Workers)
	for i := 0; i < r.cfg.Games; i++ {
		eg.Go(func() error {
			progress.GameStarted()
			res, err := r.PlayGame(ctx, i, r.cfg.Seed+int64(i))
			progress.GameFinished(res.Outcome(), err)
			if err != nil {
				return fmt.Errorf("game %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return Summary{}, nil, err
	}

	summary := Summarize(results)
	r.logger.Info().
		Int("white_wins", summary.WhiteWins).
		Int("black_wins", summary.BlackWins).
		Int("draws", summary.Draws).
		Int("unfinished", summary.Unfinished).
		Float64("avg_turns", summary.AverageTurns).
		Msg("Simulation finished")
	return summary, results, nil
}

// PlayGame plays one game to the end or to the turn limit
func (r *Runner) PlayGame(ctx context.Context, index int, seed int64) (GameResult, error) {
	logger := r.logger.With().Int("game", index).Int64("seed", seed).Logger()
	rng := core.NewRandomSource(seed)
	reducer := game.NewReducer(logger)
	player := ai.NewComputerPlayer(r.cfg.AI, logger)

	opts := []game.StateOption{game.WithRules(r.cfg.Rules)}
	if r.cfg.StartBoard != nil {
		opts = append(opts, game.WithBoard(*r.cfg.StartBoard))
	}
	if r.cfg.SideToMove != nil {
		opts = append(opts, game.WithSideToMove(*r.cfg.SideToMove))
	}
	gs := reducer.EvaluateGameOver(reducer.CreateInitialGameState(rng, opts...))

	res := GameResult{Index: index, Seed: seed, GameID: gs.GameID}
	passes := 0
	for !gs.IsOver() {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if r.cfg.MaxTurns > 0 && gs.TurnCount >= r.cfg.MaxTurns {
			break
		}

		if kind, target, use := player.ChoosePowerUp(gs, rng); use {
			if next := reducer.UsePowerUp(gs, gs.CurrentPlayer, kind, target); next != gs {
				res.tally(next.Events)
				gs = next
			}
		}

		m, ok := player.SelectMove(gs, rng)
		if !ok {
			passes++
			if passes >= maxConsecutivePasses {
				break
			}
			gs = reducer.PassTurn(gs)
			res.tally(gs.Events)
			continue
		}
		passes = 0

		next, err := reducer.Play(gs, m, rng)
		if err != nil {
			return res, fmt.Errorf("computer chose %s: %w", m.UCI(), err)
		}
		res.tally(next.Events)
		gs = next
	}

	res.Winner = gs.Winner
	res.Reason = gs.EndReason
	res.Turns = gs.TurnCount
	res.Finished = gs.IsOver()
	res.ShrunkSquares = len(gs.ShrunkSquares)

	logger.Debug().
		Str("outcome", res.Outcome()).
		Int("turns", res.Turns).
		Str("reason", res.Reason).
		Msg("Game finished")
	return res, nil
}
