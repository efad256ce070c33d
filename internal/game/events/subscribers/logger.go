package subscribers

import (
	"encoding/json"

	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/game/events"
	"github.com/rs/zerolog"
)

// LoggerSubscriber logs events to structured logs
type LoggerSubscriber struct {
	id              string
	logger          zerolog.Logger
	logLevel        zerolog.Level
	eventFilter     []string // If non-empty, only log event types matching one of these patterns
	devMode         bool            // If true, log full event details
}

// NewLoggerSubscriber creates a new logger subscriber
func NewLoggerSubscriber(id string, logger zerolog.Logger, logLevel zerolog.Level) *LoggerSubscriber {
	return &LoggerSubscriber{
		id:       id,
		logger:   logger.With().Str("subscriber", "event_logger").Logger(),
		logLevel: logLevel,
	}
}

// ID returns the subscriber's unique identifier
func (ls *LoggerSubscriber) ID() string {
	return ls.id
}

// SetEventFilter sets which event types to log as bus patterns: exact types,
// topics such as "shrink", or "*" (nil means log all)
func (ls *LoggerSubscriber) SetEventFilter(patterns []string) {
	ls.eventFilter = append([]string(nil), patterns...)
}

// SetDevMode enables or disables development mode logging
func (ls *LoggerSubscriber) SetDevMode(enabled bool) {
	ls.devMode = enabled
}

// InterestedIn returns true if the subscriber wants to receive this event type
func (ls *LoggerSubscriber) InterestedIn(eventType string) bool {
	// If no filter is set, interested in all events
	if len(ls.eventFilter) == 0 {
		return true
	}
	for _, pattern := range ls.eventFilter {
		if events.Matches(pattern, eventType) {
			return true
		}
	}
	return false
}

// HandleEvent processes an event by logging it
func (ls *LoggerSubscriber) HandleEvent(event events.Event) {
	eventLogger := ls.logger.With().
		Str("event_type", event.Type()).
		Str("game_id", event.GameID()).
		Time("timestamp", event.Timestamp()).
		Logger()

	// Create the base event log
	var logEvent *zerolog.Event
	switch ls.logLevel {
	case zerolog.DebugLevel:
		logEvent = eventLogger.Debug()
	case zerolog.InfoLevel:
		logEvent = eventLogger.Info()
	case zerolog.WarnLevel:
		logEvent = eventLogger.Warn()
	case zerolog.ErrorLevel:
		logEvent = eventLogger.Error()
	default:
		logEvent = eventLogger.Info()
	}

	// Add event-specific fields based on type
	switch e := event.(type) {
	case *events.GameStartedEvent:
		logEvent.
			Str("human_color", e.HumanColor.String()).
			Str("start_fen", e.StartFEN)

	case *events.GameEndedEvent:
		logEvent.
			Str("winner", e.Winner).
			Str("reason", e.Reason).
			Int("final_turn", e.FinalTurn)

	case *events.MoveExecutedEvent:
		logEvent.
			Int("turn", e.Metadata.Turn).
			Str("side", e.Metadata.Side).
			Str("piece", e.Move.Piece.Type.String()).
			Str("from", e.Move.From.Algebraic()).
			Str("to", e.Move.To.Algebraic()).
			Bool("capture", e.Move.IsCapture()).
			Bool("teleport", e.Move.IsTeleport())

	case *events.PieceCapturedEvent:
		logEvent.
			Int("turn", e.Metadata.Turn).
			Str("piece_id", e.Piece.ID).
			Str("piece", e.Piece.Type.String()).
			Str("at", e.At.Algebraic()).
			Bool("by_trap", e.ByTrap)

	case *events.KingInCheckEvent:
		logEvent.Int("turn", e.Metadata.Turn).Str("side", e.Color.String())

	case *events.ShrinkWarningEvent:
		logEvent.
			Int("turn", e.Metadata.Turn).
			Int("squares", len(e.Squares)).
			Int("level", e.Level).
			Int("turns_until_shrink", e.TurnsUntilShrink)

	case *events.SquaresShrunkEvent:
		logEvent.Int("turn", e.Metadata.Turn).Int("squares", len(e.Squares))

	case *events.KingRelocatedEvent:
		logEvent.
			Int("turn", e.Metadata.Turn).
			Str("side", e.Color.String()).
			Str("from", e.From.Algebraic()).
			Str("to", e.To.Algebraic())

	case *events.KingStrandedEvent:
		logEvent.
			Int("turn", e.Metadata.Turn).
			Str("side", e.Color.String()).
			Str("at", e.At.Algebraic())

	case *events.PieceEliminatedEvent:
		logEvent.
			Int("turn", e.Metadata.Turn).
			Str("piece_id", e.Piece.ID).
			Str("at", e.At.Algebraic())

	case *events.PieceRespawnedEvent:
		logEvent.
			Int("turn", e.Metadata.Turn).
			Str("piece", e.Piece.Type.String()).
			Str("side", e.Piece.Color.String()).
			Str("at", e.At.Algebraic()).
			Str("original_id", e.OriginalID)

	case *events.RespawnDeferredEvent:
		logEvent.Int("turn", e.Metadata.Turn).Str("owner", e.Owner.String()).Int("queued", e.Queued)

	case *events.PowerUpEvent:
		logEvent.
			Int("turn", e.Metadata.Turn).
			Str("power_up", e.PowerUp.Type.String()).
			Str("power_up_id", e.PowerUp.ID).
			Str("at", e.PowerUp.Position.Algebraic())

	case *events.TrapTriggeredEvent:
		logEvent.
			Int("turn", e.Metadata.Turn).
			Str("victim", e.Victim.ID).
			Str("at", e.At.Algebraic())

	case *events.PieceTransformedEvent:
		logEvent.
			Int("turn", e.Metadata.Turn).
			Str("from_type", e.FromType.String()).
			Str("to_type", e.Piece.Type.String()).
			Str("at", e.At.Algebraic())

	case *events.TurnPassedEvent:
		logEvent.Int("turn", e.Metadata.Turn).Str("side", e.Color.String())

	case *events.StateTransitionEvent:
		logEvent.
			Str("from_phase", e.FromPhase).
			Str("to_phase", e.ToPhase).
			Str("reason", e.Reason)
	}

	// In dev mode, also log the full event as JSON
	if ls.devMode {
		if jsonData, err := json.Marshal(event); err == nil {
			logEvent.RawJSON("event_data", jsonData)
		}
	}

	// Send the log
	logEvent.Msg("Game event")
}
