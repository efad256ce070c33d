package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/config"
	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/notation"
	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/simulation"
)

func main() {
	// Command line flags
	configPath := flag.String("config", "", "Path to config file")
	games := flag.Int("games", -1, "Number of games to play (-1 to use config default)")
	workers := flag.Int("workers", -1, "Games played in parallel (-1 to use config default)")
	maxTurns := flag.Int("max-turns", -1, "Turn limit per game, 0 for none (-1 to use config default)")
	seed := flag.Int64("seed", -1, "Seed of the first game (-1 to use config default)")
	fen := flag.String("fen", "", "Start every game from this FEN position (empty to use config default)")
	progress := flag.Duration("progress", 5*time.Second, "Progress log interval, 0 to disable")
	verbose := flag.Bool("v", false, "Print one line per game")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error) (empty to use config default)")
	flag.Parse()

	// Initialize configuration
	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	cfg := config.Get()

	// Use config defaults if not overridden by flags
	simCfg := simulation.ConfigFromSettings(cfg)
	if *games != -1 {
		simCfg.Games = *games
	}
	if *workers != -1 {
		simCfg.Workers = *workers
	}
	if *maxTurns != -1 {
		simCfg.MaxTurns = *maxTurns
	}
	if *seed != -1 {
		simCfg.Seed = *seed
	}
	if *fen == "" {
		*fen = cfg.Game.StartFEN
	}
	if *logLevel == "" {
		*logLevel = cfg.Logging.Level
	}
	simCfg.ProgressInterval = *progress

	setupLogging(*logLevel, cfg.Logging.Format)

	if *fen != "" {
		board, toMove, err := notation.ParseFEN(*fen)
		if err != nil {
			log.Fatal().Err(err).Msg("Invalid start position")
		}
		simCfg.StartBoard = &board
		simCfg.SideToMove = &toMove
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	summary, results, err := simulation.NewRunner(simCfg, log.Logger).Run(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Simulation failed")
	}

	if *verbose {
		for _, r := range results {
			fmt.Printf("game %3d seed %-6d %-10s turns %-4d %s\n", r.Index, r.Seed, r.Outcome(), r.Turns, r.Reason)
		}
		fmt.Println()
	}
	printSummary(os.Stdout, summary, time.Since(start))
}

func printSummary(w io.Writer, s simulation.Summary, elapsed time.Duration) {
	fmt.Fprintf(w, "Games:        %d (%s)\n", s.Games, elapsed.Round(time.Millisecond))
	fmt.Fprintf(w, "White wins:   %d\n", s.WhiteWins)
	fmt.Fprintf(w, "Black wins:   %d\n", s.BlackWins)
	fmt.Fprintf(w, "Draws:        %d\n", s.Draws)
	fmt.Fprintf(w, "Unfinished:   %d\n", s.Unfinished)
	fmt.Fprintf(w, "Avg turns:    %.1f (longest %d)\n", s.AverageTurns, s.LongestGame)
	fmt.Fprintf(w, "Captures:     %d, respawns %d, power-ups used %d, transformations %d, stranded kings %d\n",
		s.Captures, s.Respawns, s.PowerUpsUsed, s.Transformations, s.KingsStranded)

	reasons := make([]string, 0, len(s.Reasons))
	for r := range s.Reasons {
		reasons = append(reasons, r)
	}
	sort.Strings(reasons)
	for _, r := range reasons {
		fmt.Fprintf(w, "  %-20s %d\n", r, s.Reasons[r])
	}
}

func setupLogging(level, format string) {
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		logLevel = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	if format == "json" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
		return
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	})
}
