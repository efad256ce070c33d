package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/common"
	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/config"
	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/game"
	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/game/ai"
	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/game/core"
	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/game/events"
	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/game/events/subscribers"
	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/notation"
)

func main() {
	// Command line flags
	configPath := flag.String("config", "", "Path to config file")
	env := flag.String("env", "", "Environment overlay to merge (loads config.<env>.yaml)")
	fen := flag.String("fen", "", "Start from this FEN position (empty to use config default)")
	color := flag.String("color", "", "Side you play, white or black (empty to use config default)")
	seed := flag.Int64("seed", -1, "Random seed, 0 picks one from the clock (-1 to use config default)")
	delay := flag.Int("delay", -1, "Computer thinking delay in milliseconds (-1 to use config default)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error) (empty to use config default)")
	bell := flag.Bool("bell", true, "Ring the terminal bell on check and game over")
	flag.Parse()

	// Initialize configuration
	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	if err := config.LoadEnvironmentConfig(*env); err != nil {
		log.Fatal().Err(err).Msg("Failed to load environment config")
	}
	cfg := config.Get()

	// Use config defaults if not overridden by flags
	if *fen == "" {
		*fen = cfg.Game.StartFEN
	}
	if *color == "" {
		*color = cfg.Session.HumanColor
	}
	if *seed == -1 {
		*seed = cfg.Session.Seed
	}
	if *delay == -1 {
		*delay = cfg.Session.ThinkingDelayMs
	}
	if *logLevel == "" {
		*logLevel = cfg.Logging.Level
	}

	setupLogging(*logLevel, cfg.Logging.Format)

	human, err := common.ParseColor(*color)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid side")
	}

	// Rule changes picked up by the watcher apply from the next reset
	var reloaded atomic.Bool
	if config.ConfigFilePath() != "" {
		config.WatchConfig(func(err error) {
			if err != nil {
				log.Warn().Err(err).Msg("Config reload rejected, keeping previous values")
				return
			}
			reloaded.Store(true)
			log.Info().Str("file", config.ConfigFilePath()).Msg("Config reloaded, new rules apply from the next game")
		})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bus := events.NewEventBus()
	eventLogger := subscribers.NewLoggerSubscriber("cli-event-logger", log.Logger, zerolog.DebugLevel)
	eventLogger.SetEventFilter(cfg.Logging.Events)
	bus.Subscribe(eventLogger)
	notifier := subscribers.NewNotifierSubscriber("cli-notifier", terminalNotifier{out: os.Stdout, bell: *bell}, cfg.Session.NotifyBuffer, log.Logger)
	bus.Subscribe(notifier)
	defer notifier.Close()
	// detach before closing so no event reaches a closed notifier
	defer bus.Unsubscribe(notifier.ID())

	s := &session{
		bus:    bus,
		human:  human,
		seed:   *seed,
		delay:  time.Duration(*delay) * time.Millisecond,
		fen:    *fen,
		out:    os.Stdout,
		reload: &reloaded,
	}
	if err := s.start(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to start game")
	}

	fmt.Fprintln(s.out, "Battle Royale Chess. Type help for commands.")
	if err := s.run(ctx, readLines(ctx, os.Stdin)); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("Session ended with error")
		os.Exit(1)
	}
}

// session drives one terminal player against the computer
type session struct {
	engine *game.Engine
	bus    *events.EventBus
	human  core.Color
	seed   int64
	delay  time.Duration
	fen    string
	out    io.Writer
	reload *atomic.Bool
}

// start builds a fresh engine from the current config
func (s *session) start(ctx context.Context) error {
	cfg := config.Get()
	rules := game.DefaultRules()
	gameCfg := game.GameConfig{
		HumanColor:    s.human,
		ThinkingDelay: s.delay,
		Selector:      ai.NewComputerPlayer(cfg.AI, log.Logger),
		Rules:         &rules,
		Seed:          s.seed,
		EventBus:      s.bus,
		Logger:        log.Logger,
	}
	if s.fen != "" {
		board, toMove, err := notation.ParseFEN(s.fen)
		if err != nil {
			return err
		}
		gameCfg.StartBoard = &board
		gameCfg.SideToMove = &toMove
		gameCfg.StartFEN = s.fen
	}

	engine, err := game.NewEngine(ctx, gameCfg)
	if err != nil {
		return err
	}
	s.engine = engine
	return nil
}

// run alternates between the computer's turns and the human's commands until
// the player quits or ctx is cancelled
func (s *session) run(ctx context.Context, lines <-chan string) error {
	fmt.Fprintln(s.out, s.engine.Board())
	for {
		if !s.engine.IsGameOver() && !s.engine.IsHumanTurn() {
			if err := s.computerTurn(ctx); err != nil {
				return err
			}
			continue
		}

		if s.engine.IsGameOver() {
			fmt.Fprintln(s.out, "Game over. Type reset for a new game or quit to leave.")
		}
		fmt.Fprint(s.out, "> ")

		var line string
		select {
		case <-ctx.Done():
			return ctx.Err()
		case l, ok := <-lines:
			if !ok {
				return nil
			}
			line = l
		}

		cmd, err := parseCommand(line)
		if errors.Is(err, errEmptyCommand) {
			continue
		}
		if err != nil {
			fmt.Fprintln(s.out, err)
			continue
		}
		if cmd.kind == cmdQuit {
			return nil
		}
		if err := s.execute(ctx, cmd); err != nil {
			fmt.Fprintln(s.out, describeError(err))
		}
	}
}

func (s *session) computerTurn(ctx context.Context) error {
	fmt.Fprintln(s.out, "Computer is thinking...")
	m, err := s.engine.RunComputerTurn(ctx)
	switch {
	case errors.Is(err, core.ErrComputerTurnAborted):
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return nil
	case err != nil:
		return err
	case m == nil:
		fmt.Fprintln(s.out, "Computer has no move and passes.")
	default:
		fmt.Fprintf(s.out, "Computer plays %s\n", m)
	}
	fmt.Fprintln(s.out, s.engine.Board())
	return nil
}

func (s *session) execute(ctx context.Context, cmd command) error {
	switch cmd.kind {
	case cmdMove, cmdTeleport:
		if err := s.engine.SubmitUCI(ctx, cmd.uci, cmd.kind == cmdTeleport); err != nil {
			return err
		}
		fmt.Fprintln(s.out, s.engine.Board())
	case cmdUsePowerUp:
		if err := s.engine.UsePowerUp(ctx, cmd.powerUp, cmd.target); err != nil {
			return err
		}
		fmt.Fprintf(s.out, "Used %s.\n", cmd.powerUp)
		fmt.Fprintln(s.out, s.engine.Board())
	case cmdMoves:
		var names []string
		for _, m := range s.engine.LegalMoves() {
			name := m.UCI()
			if m.IsTeleport() {
				name = "tp " + name
			}
			names = append(names, name)
		}
		fmt.Fprintln(s.out, strings.Join(names, " "))
	case cmdBoard:
		fmt.Fprintln(s.out, s.engine.Board())
	case cmdFEN:
		gs := s.engine.GameState()
		fmt.Fprintln(s.out, notation.ToFEN(&gs.Board, gs.CurrentPlayer))
		fmt.Fprintln(s.out, notation.Draw(&gs.Board))
	case cmdReset:
		if s.reload.Swap(false) {
			if err := s.start(ctx); err != nil {
				return err
			}
		} else if err := s.engine.Reset(); err != nil {
			return err
		}
		fmt.Fprintln(s.out, s.engine.Board())
	case cmdHelp:
		fmt.Fprintln(s.out, helpText)
	}
	return nil
}

// describeError turns engine errors into short player-facing messages
func describeError(err error) string {
	switch {
	case errors.Is(err, core.ErrIllegalMove):
		return "That move is not legal."
	case errors.Is(err, core.ErrNotYourTurn):
		return "It is not your turn."
	case errors.Is(err, core.ErrGameOver):
		return "The game is over."
	case errors.Is(err, core.ErrNoPowerUp):
		return "You do not hold that power-up."
	case errors.Is(err, core.ErrInvalidPowerUpTarget):
		return "That square is not a valid target."
	case errors.Is(err, core.ErrInvalidPosition):
		return "Unknown square."
	}
	return err.Error()
}

// readLines feeds stdin lines to a channel so the session can also watch ctx
func readLines(ctx context.Context, r io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return lines
}

func setupLogging(level, format string) {
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		logLevel = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	// Logs go to stderr so they never interleave with the board on stdout
	if format == "json" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
		return
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	})
}
