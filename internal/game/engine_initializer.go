package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/game/core"
	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/game/events"
	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/game/states"
	"github.com/rs/zerolog"
)

// GameConfig holds everything needed to start a session
type GameConfig struct {
	HumanColor    core.Color
	ThinkingDelay time.Duration
	Selector      MoveSelector

	// StartBoard replaces the standard layout; StartFEN is only reported in the started event
	StartBoard *core.Board
	StartFEN   string
	SideToMove *core.Color
	Rules      *Rules

	// Rng wins over Seed; a zero Seed picks one from the clock
	Rng  core.RandomSource
	Seed int64

	EventBus *events.EventBus
	Logger   zerolog.Logger
}

// EngineInitializer handles the initialization of a game engine
type EngineInitializer struct {
	config GameConfig
	logger zerolog.Logger
}

// NewEngineInitializer creates a new engine initializer
func NewEngineInitializer(cfg GameConfig) *EngineInitializer {
	logger := cfg.Logger.With().Str("component", "GameEngine").Logger()
	return &EngineInitializer{
		config: cfg,
		logger: logger,
	}
}

// Initialize creates and initializes a new game engine
func (ei *EngineInitializer) Initialize(ctx context.Context) (*Engine, error) {
	// Check context early
	select {
	case <-ctx.Done():
		ei.logger.Error().Err(ctx.Err()).Msg("Engine creation cancelled or timed out during initial phase")
		return nil, ctx.Err()
	default:
	}

	if ei.config.Selector == nil {
		return nil, errors.New("engine requires a move selector for the computer side")
	}

	// Setup configuration defaults
	ei.setupDefaults()

	// Create engine components
	engine := ei.createEngine()

	// Perform initial game setup
	engine.mu.Lock()
	engine.startGame()
	err := engine.enterFirstTurn()
	engine.mu.Unlock()
	if err != nil {
		ei.logger.Error().Err(err).Msg("Failed to enter first turn")
		return nil, fmt.Errorf("state machine initialization failed: %w", err)
	}

	ei.logger.Info().
		Str("game_id", engine.gs.GameID).
		Str("human", ei.config.HumanColor.String()).
		Dur("thinking_delay", ei.config.ThinkingDelay).
		Str("phase", engine.stateMachine.CurrentPhase().String()).
		Msg("Engine created successfully")

	return engine, nil
}

// setupDefaults sets up default values for missing configuration
func (ei *EngineInitializer) setupDefaults() {
	if ei.config.Rng == nil {
		ei.logger.Debug().Int64("seed", ei.config.Seed).Msg("No RNG provided, creating seeded RNG")
		ei.config.Rng = core.NewRandomSource(ei.config.Seed)
	}

	if ei.config.EventBus == nil {
		ei.config.EventBus = events.NewEventBus()
	}

	if ei.config.Rules == nil {
		rules := DefaultRules()
		ei.config.Rules = &rules
	}
}

// stateOptions translates the configuration into initial state options
func (ei *EngineInitializer) stateOptions() []StateOption {
	opts := []StateOption{WithRules(*ei.config.Rules)}
	if ei.config.StartBoard != nil {
		opts = append(opts, WithBoard(*ei.config.StartBoard))
	}
	if ei.config.SideToMove != nil {
		opts = append(opts, WithSideToMove(*ei.config.SideToMove))
	}
	return opts
}

// createEngine creates the engine with all its components
func (ei *EngineInitializer) createEngine() *Engine {
	// Create game context for state machine; the game ID is filled in per game
	gameContext := states.NewGameContext("", ei.config.HumanColor, ei.logger)

	engine := &Engine{
		rng:           ei.config.Rng,
		reducer:       NewReducer(ei.logger),
		selector:      ei.config.Selector,
		stateMachine:  states.NewStateMachine(gameContext, ei.config.EventBus),
		eventBus:      ei.config.EventBus,
		logger:        ei.logger,
		humanColor:    ei.config.HumanColor,
		thinkingDelay: ei.config.ThinkingDelay,
		stateOpts:     ei.stateOptions(),
		startFEN:      ei.config.StartFEN,
	}
	engine.turnProcessor = NewTurnProcessor(engine)

	return engine
}
