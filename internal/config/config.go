package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Game       GameConfig       `mapstructure:"game"`
	AI         AIConfig         `mapstructure:"ai"`
	Session    SessionConfig    `mapstructure:"session"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Simulation SimulationConfig `mapstructure:"simulation"`
}

// GameConfig holds game mechanics configuration
type GameConfig struct {
	Shrink         ShrinkConfig         `mapstructure:"shrink"`
	Respawn        RespawnConfig        `mapstructure:"respawn"`
	PowerUps       PowerUpConfig        `mapstructure:"powerups"`
	Transformation TransformationConfig `mapstructure:"transformation"`
	// StartFEN replaces the standard opening position when set
	StartFEN string `mapstructure:"start_fen"`
}

// ShrinkConfig holds the shrinking board schedule
type ShrinkConfig struct {
	Enabled      bool `mapstructure:"enabled"`
	CycleTurns   int  `mapstructure:"cycle_turns"`
	WarningTurns int  `mapstructure:"warning_turns"`
	MaxLevel     int  `mapstructure:"max_level"`
}

// PieceWeights holds relative draw weights per piece type
type PieceWeights struct {
	Pawn   int `mapstructure:"pawn"`
	Knight int `mapstructure:"knight"`
	Bishop int `mapstructure:"bishop"`
	Rook   int `mapstructure:"rook"`
	Queen  int `mapstructure:"queen"`
}

// Total returns the sum of all weights
func (w PieceWeights) Total() int {
	return w.Pawn + w.Knight + w.Bishop + w.Rook + w.Queen
}

// RespawnConfig holds respawn queue settings
type RespawnConfig struct {
	Enabled       bool         `mapstructure:"enabled"`
	IntervalTurns int          `mapstructure:"interval_turns"`
	Weights       PieceWeights `mapstructure:"weights"`
}

// PowerUpConfig holds power-up spawn settings
type PowerUpConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	SpawnInterval int  `mapstructure:"spawn_interval"`
	LifetimeTurns int  `mapstructure:"lifetime_turns"`
	ShieldTurns   int  `mapstructure:"shield_turns"`
}

// TransformationConfig holds idle pawn upgrade settings
type TransformationConfig struct {
	Enabled       bool         `mapstructure:"enabled"`
	IntervalTurns int          `mapstructure:"interval_turns"`
	IdleThreshold int          `mapstructure:"idle_threshold"`
	Weights       PieceWeights `mapstructure:"weights"`
}

// AIConfig holds the computer player's heuristic weights
type AIConfig struct {
	TopK               int     `mapstructure:"top_k"`
	RankDecay          float64 `mapstructure:"rank_decay"`
	CheckBonus         float64 `mapstructure:"check_bonus"`
	CaptureMultiplier  float64 `mapstructure:"capture_multiplier"`
	KingThreatBonus    float64 `mapstructure:"king_threat_bonus"`
	KingEdgeWeight     float64 `mapstructure:"king_edge_weight"`
	KingWarningPenalty float64 `mapstructure:"king_warning_penalty"`
	GuardRadius        int     `mapstructure:"guard_radius"`
	GuardBonus         float64 `mapstructure:"guard_bonus"`
	CenterWeight       float64 `mapstructure:"center_weight"`
	AttackedPenalty    float64 `mapstructure:"attacked_penalty"`
	PowerUpBonus       float64 `mapstructure:"powerup_bonus"`
	ShrinkWarnPenalty  float64 `mapstructure:"shrink_warning_penalty"`
	MaterialWeight     float64 `mapstructure:"material_weight"`
	Noise              float64 `mapstructure:"noise"`
}

// SessionConfig holds interactive session settings
type SessionConfig struct {
	HumanColor      string `mapstructure:"human_color"`
	ThinkingDelayMs int    `mapstructure:"thinking_delay_ms"`
	Seed            int64  `mapstructure:"seed"`
	NotifyBuffer    int    `mapstructure:"notify_buffer"`
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	// Events limits the game event log to these bus patterns; empty logs every event
	Events []string `mapstructure:"events"`
}

// SimulationConfig holds batch self-play settings
type SimulationConfig struct {
	Games    int   `mapstructure:"games"`
	Workers  int   `mapstructure:"workers"`
	MaxTurns int   `mapstructure:"max_turns"`
	Seed     int64 `mapstructure:"seed"`
}

var (
	// Global config instance
	cfg *Config
	v   *viper.Viper
)

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	// Shrinking board
	v.SetDefault("game.shrink.enabled", true)
	v.SetDefault("game.shrink.cycle_turns", 16)
	v.SetDefault("game.shrink.warning_turns", 8)
	v.SetDefault("game.shrink.max_level", 3)

	// Respawn
	v.SetDefault("game.respawn.enabled", true)
	v.SetDefault("game.respawn.interval_turns", 15)
	v.SetDefault("game.respawn.weights.pawn", 50)
	v.SetDefault("game.respawn.weights.knight", 20)
	v.SetDefault("game.respawn.weights.bishop", 15)
	v.SetDefault("game.respawn.weights.rook", 10)
	v.SetDefault("game.respawn.weights.queen", 5)

	// Power-ups
	v.SetDefault("game.powerups.enabled", true)
	v.SetDefault("game.powerups.spawn_interval", 12)
	v.SetDefault("game.powerups.lifetime_turns", 20)
	v.SetDefault("game.powerups.shield_turns", 6)

	// Transformation
	v.SetDefault("game.transformation.enabled", true)
	v.SetDefault("game.transformation.interval_turns", 25)
	v.SetDefault("game.transformation.idle_threshold", 15)
	v.SetDefault("game.transformation.weights.pawn", 0)
	v.SetDefault("game.transformation.weights.knight", 40)
	v.SetDefault("game.transformation.weights.bishop", 30)
	v.SetDefault("game.transformation.weights.rook", 20)
	v.SetDefault("game.transformation.weights.queen", 10)

	v.SetDefault("game.start_fen", "")

	// Computer player
	v.SetDefault("ai.top_k", 3)
	v.SetDefault("ai.rank_decay", 0.75)
	v.SetDefault("ai.check_bonus", 5.0)
	v.SetDefault("ai.capture_multiplier", 10.0)
	v.SetDefault("ai.king_threat_bonus", 15.0)
	v.SetDefault("ai.king_edge_weight", 2.0)
	v.SetDefault("ai.king_warning_penalty", 50.0)
	v.SetDefault("ai.guard_radius", 2)
	v.SetDefault("ai.guard_bonus", 1.5)
	v.SetDefault("ai.center_weight", 0.5)
	v.SetDefault("ai.attacked_penalty", 8.0)
	v.SetDefault("ai.powerup_bonus", 6.0)
	v.SetDefault("ai.shrink_warning_penalty", 20.0)
	v.SetDefault("ai.material_weight", 1.0)
	v.SetDefault("ai.noise", 0.5)

	// Session
	v.SetDefault("session.human_color", "white")
	v.SetDefault("session.thinking_delay_ms", 600)
	v.SetDefault("session.seed", 0)
	v.SetDefault("session.notify_buffer", 16)

	// Logging
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.events", []string{})

	// Simulation
	v.SetDefault("simulation.games", 100)
	v.SetDefault("simulation.workers", 4)
	v.SetDefault("simulation.max_turns", 300)
	v.SetDefault("simulation.seed", 1)
}

// Init initializes the configuration
func Init(configPath string) error {
	v = viper.New()

	// Set defaults before loading any config
	setViperDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Default config locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/battle-chess")
	}

	// Environment variables override everything: BRC_GAME_SHRINK_CYCLE_TURNS
	v.SetEnvPrefix("BRC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// A missing file falls back to defaults; a malformed one is an error
	if err := v.ReadInConfig(); err != nil && !isNotFound(err) {
		return fmt.Errorf("error reading config file: %w", err)
	}

	cfg = &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	return nil
}

// Get returns the global config instance
func Get() *Config {
	if cfg == nil {
		// Initialize with defaults if not already initialized
		if err := Init(""); err != nil {
			panic("failed to initialize config with defaults: " + err.Error())
		}
	}
	return cfg
}

// GetViper returns the viper instance for advanced usage
func GetViper() *viper.Viper {
	if v == nil {
		panic("config not initialized - call Init() first")
	}
	return v
}

// LoadEnvironmentConfig loads environment-specific config overlay
func LoadEnvironmentConfig(env string) error {
	if env == "" {
		return nil
	}

	envFile := fmt.Sprintf("config.%s.yaml", env)

	v.SetConfigFile(envFile)
	if err := v.MergeInConfig(); err != nil && !isNotFound(err) {
		return fmt.Errorf("error merging environment config %s: %w", envFile, err)
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode merged config into struct: %w", err)
	}

	return Validate(cfg)
}

// Set allows runtime config updates
func Set(key string, value interface{}) {
	v.Set(key, value)
	// Re-unmarshal to update struct
	_ = v.Unmarshal(cfg)
}

// GetString gets a string value from config
func GetString(key string) string {
	return v.GetString(key)
}

// GetInt gets an int value from config
func GetInt(key string) int {
	return v.GetInt(key)
}

// GetBool gets a bool value from config
func GetBool(key string) bool {
	return v.GetBool(key)
}

// GetFloat64 gets a float64 value from config
func GetFloat64(key string) float64 {
	return v.GetFloat64(key)
}

// ConfigFilePath returns the path of the loaded config file
func ConfigFilePath() string {
	return v.ConfigFileUsed()
}

// WatchConfig enables hot-reloading of the config file. A reload that fails
// validation keeps the previous values and reports the error to onChange.
func WatchConfig(onChange func(error)) {
	v.OnConfigChange(func(e fsnotify.Event) {
		next := &Config{}
		err := v.Unmarshal(next)
		if err == nil {
			err = Validate(next)
		}
		if err == nil {
			*cfg = *next
		}
		if onChange != nil {
			onChange(err)
		}
	})
	v.WatchConfig()
}

// Validate validates the configuration values
func Validate(c *Config) error {
	// Game mechanics
	if c.Game.Shrink.CycleTurns <= 0 {
		return fmt.Errorf("game.shrink.cycle_turns must be positive")
	}
	if c.Game.Shrink.WarningTurns <= 0 || c.Game.Shrink.WarningTurns >= c.Game.Shrink.CycleTurns {
		return fmt.Errorf("game.shrink.warning_turns must be between 1 and cycle_turns-1")
	}
	if c.Game.Shrink.MaxLevel < 0 || c.Game.Shrink.MaxLevel > 3 {
		return fmt.Errorf("game.shrink.max_level must be between 0 and 3")
	}
	if c.Game.Respawn.IntervalTurns <= 0 {
		return fmt.Errorf("game.respawn.interval_turns must be positive")
	}
	if err := validateWeights(c.Game.Respawn.Weights, "game.respawn.weights"); err != nil {
		return err
	}
	if c.Game.PowerUps.SpawnInterval <= 0 {
		return fmt.Errorf("game.powerups.spawn_interval must be positive")
	}
	if c.Game.PowerUps.LifetimeTurns <= 0 {
		return fmt.Errorf("game.powerups.lifetime_turns must be positive")
	}
	if c.Game.PowerUps.ShieldTurns <= 0 {
		return fmt.Errorf("game.powerups.shield_turns must be positive")
	}
	if c.Game.Transformation.IntervalTurns <= 0 {
		return fmt.Errorf("game.transformation.interval_turns must be positive")
	}
	if c.Game.Transformation.IdleThreshold < 0 {
		return fmt.Errorf("game.transformation.idle_threshold must be non-negative")
	}
	if c.Game.Transformation.Weights.Pawn != 0 {
		return fmt.Errorf("game.transformation.weights.pawn must be 0")
	}
	if err := validateWeights(c.Game.Transformation.Weights, "game.transformation.weights"); err != nil {
		return err
	}

	// Computer player
	if c.AI.TopK < 1 {
		return fmt.Errorf("ai.top_k must be at least 1")
	}
	if c.AI.RankDecay <= 0 || c.AI.RankDecay > 1 {
		return fmt.Errorf("ai.rank_decay must be in (0, 1]")
	}
	if c.AI.Noise < 0 {
		return fmt.Errorf("ai.noise must be non-negative")
	}
	if c.AI.GuardRadius < 0 {
		return fmt.Errorf("ai.guard_radius must be non-negative")
	}

	// Session
	switch strings.ToLower(c.Session.HumanColor) {
	case "white", "black":
	default:
		return fmt.Errorf("session.human_color must be white or black, got %q", c.Session.HumanColor)
	}
	if c.Session.ThinkingDelayMs < 0 {
		return fmt.Errorf("session.thinking_delay_ms must be non-negative")
	}
	if c.Session.NotifyBuffer < 1 {
		return fmt.Errorf("session.notify_buffer must be at least 1")
	}

	// Logging
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}

	// Simulation
	if c.Simulation.Games < 1 {
		return fmt.Errorf("simulation.games must be at least 1")
	}
	if c.Simulation.Workers < 1 {
		return fmt.Errorf("simulation.workers must be at least 1")
	}
	if c.Simulation.MaxTurns < 1 {
		return fmt.Errorf("simulation.max_turns must be at least 1")
	}

	return nil
}

func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}

func validateWeights(w PieceWeights, name string) error {
	for _, n := range []int{w.Pawn, w.Knight, w.Bishop, w.Rook, w.Queen} {
		if n < 0 {
			return fmt.Errorf("%s must be non-negative", name)
		}
	}
	if w.Total() == 0 {
		return fmt.Errorf("%s must not all be zero", name)
	}
	return nil
}
