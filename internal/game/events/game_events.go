package events

import (
	"time"

	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/game/core"
)

// Event type constants
const (
	TypeGameStarted      = "game.started"
	TypeGameEnded        = "game.ended"
	TypeMoveExecuted     = "move.executed"
	TypePieceCaptured    = "piece.captured"
	TypeKingInCheck      = "king.check"
	TypePiecePromoted    = "piece.promoted"
	TypeShrinkWarning    = "shrink.warning"
	TypeSquaresShrunk    = "shrink.applied"
	TypeKingRelocated    = "king.relocated"
	TypeKingStranded     = "king.stranded"
	TypePieceEliminated  = "piece.eliminated"
	TypePieceRespawned   = "respawn.placed"
	TypeRespawnDeferred  = "respawn.deferred"
	TypePowerUpSpawned   = "powerup.spawned"
	TypePowerUpExpired   = "powerup.expired"
	TypePowerUpCollected = "powerup.collected"
	TypePowerUpUsed      = "powerup.used"
	TypeTrapTriggered    = "trap.triggered"
	TypePieceTransformed = "piece.transformed"
	TypeTurnPassed       = "turn.passed"
	TypeStateTransition  = "state.transition"
)

func newBase(eventType, gameID string) BaseEvent {
	return BaseEvent{
		EventType: eventType,
		Time:      time.Now(),
		Game:      gameID,
	}
}

func turnMeta(turn int, side core.Color) EventMetadata {
	return EventMetadata{Turn: turn, Side: side.String()}
}

// GameStartedEvent is published when a new game begins
type GameStartedEvent struct {
	BaseEvent
	Metadata   EventMetadata
	HumanColor core.Color
	StartFEN   string
}

// NewGameStartedEvent creates a new GameStartedEvent
func NewGameStartedEvent(gameID string, human core.Color, startFEN string) *GameStartedEvent {
	return &GameStartedEvent{
		BaseEvent:  newBase(TypeGameStarted, gameID),
		Metadata:   EventMetadata{Side: human.String()},
		HumanColor: human,
		StartFEN:   startFEN,
	}
}

// GameEndedEvent is published when a game ends
type GameEndedEvent struct {
	BaseEvent
	Metadata  EventMetadata
	Winner    string
	Reason    string
	FinalTurn int
}

// NewGameEndedEvent creates a new GameEndedEvent
func NewGameEndedEvent(gameID, winner, reason string, finalTurn int) *GameEndedEvent {
	return &GameEndedEvent{
		BaseEvent: newBase(TypeGameEnded, gameID),
		Metadata:  EventMetadata{Turn: finalTurn},
		Winner:    winner,
		Reason:    reason,
		FinalTurn: finalTurn,
	}
}

// MoveExecutedEvent is published after a move has been applied to the board
type MoveExecutedEvent struct {
	BaseEvent
	Metadata EventMetadata
	Move     core.Move
}

// NewMoveExecutedEvent creates a new MoveExecutedEvent
func NewMoveExecutedEvent(gameID string, turn int, m core.Move) *MoveExecutedEvent {
	return &MoveExecutedEvent{
		BaseEvent: newBase(TypeMoveExecuted, gameID),
		Metadata:  turnMeta(turn, m.Piece.Color),
		Move:      m,
	}
}

// PieceCapturedEvent is published when a piece is taken, by a move or by a trap
type PieceCapturedEvent struct {
	BaseEvent
	Metadata EventMetadata
	Piece    core.Piece
	At       core.Position
	ByTrap   bool
}

// NewPieceCapturedEvent creates a new PieceCapturedEvent
func NewPieceCapturedEvent(gameID string, turn int, pc core.Piece, at core.Position, byTrap bool) *PieceCapturedEvent {
	return &PieceCapturedEvent{
		BaseEvent: newBase(TypePieceCaptured, gameID),
		Metadata:  turnMeta(turn, pc.Color),
		Piece:     pc,
		At:        at,
		ByTrap:    byTrap,
	}
}

// KingInCheckEvent is published when a move leaves the opponent's king attacked
type KingInCheckEvent struct {
	BaseEvent
	Metadata EventMetadata
	Color    core.Color
}

// NewKingInCheckEvent creates a new KingInCheckEvent
func NewKingInCheckEvent(gameID string, turn int, c core.Color) *KingInCheckEvent {
	return &KingInCheckEvent{
		BaseEvent: newBase(TypeKingInCheck, gameID),
		Metadata:  turnMeta(turn, c),
		Color:     c,
	}
}

// PiecePromotedEvent is published when a pawn reaches the far rank
type PiecePromotedEvent struct {
	BaseEvent
	Metadata EventMetadata
	Piece    core.Piece
	At       core.Position
}

// NewPiecePromotedEvent creates a new PiecePromotedEvent
func NewPiecePromotedEvent(gameID string, turn int, pc core.Piece, at core.Position) *PiecePromotedEvent {
	return &PiecePromotedEvent{
		BaseEvent: newBase(TypePiecePromoted, gameID),
		Metadata:  turnMeta(turn, pc.Color),
		Piece:     pc,
		At:        at,
	}
}

// ShrinkWarningEvent is published when a new batch of squares is scheduled to vanish
type ShrinkWarningEvent struct {
	BaseEvent
	Metadata         EventMetadata
	Squares          []core.Position
	Level            int
	TurnsUntilShrink int
}

// NewShrinkWarningEvent creates a new ShrinkWarningEvent
func NewShrinkWarningEvent(gameID string, turn int, squares []core.Position, level, turnsUntil int) *ShrinkWarningEvent {
	return &ShrinkWarningEvent{
		BaseEvent:        newBase(TypeShrinkWarning, gameID),
		Metadata:         EventMetadata{Turn: turn},
		Squares:          squares,
		Level:            level,
		TurnsUntilShrink: turnsUntil,
	}
}

// SquaresShrunkEvent is published when squares are removed from play
type SquaresShrunkEvent struct {
	BaseEvent
	Metadata EventMetadata
	Squares  []core.Position
}

// NewSquaresShrunkEvent creates a new SquaresShrunkEvent
func NewSquaresShrunkEvent(gameID string, turn int, squares []core.Position) *SquaresShrunkEvent {
	return &SquaresShrunkEvent{
		BaseEvent: newBase(TypeSquaresShrunk, gameID),
		Metadata:  EventMetadata{Turn: turn},
		Squares:   squares,
	}
}

// KingRelocatedEvent is published when a king is pushed off a vanishing square
type KingRelocatedEvent struct {
	BaseEvent
	Metadata EventMetadata
	Color    core.Color
	From     core.Position
	To       core.Position
}

// NewKingRelocatedEvent creates a new KingRelocatedEvent
func NewKingRelocatedEvent(gameID string, turn int, c core.Color, from, to core.Position) *KingRelocatedEvent {
	return &KingRelocatedEvent{
		BaseEvent: newBase(TypeKingRelocated, gameID),
		Metadata:  turnMeta(turn, c),
		Color:     c,
		From:      from,
		To:        to,
	}
}

// KingStrandedEvent is published when a king on a vanishing square has nowhere to go
type KingStrandedEvent struct {
	BaseEvent
	Metadata EventMetadata
	Color    core.Color
	At       core.Position
}

// NewKingStrandedEvent creates a new KingStrandedEvent
func NewKingStrandedEvent(gameID string, turn int, c core.Color, at core.Position) *KingStrandedEvent {
	return &KingStrandedEvent{
		BaseEvent: newBase(TypeKingStranded, gameID),
		Metadata:  turnMeta(turn, c),
		Color:     c,
		At:        at,
	}
}

// PieceEliminatedEvent is published when a piece is lost to a shrinking square.
// Eliminated pieces never respawn.
type PieceEliminatedEvent struct {
	BaseEvent
	Metadata EventMetadata
	Piece    core.Piece
	At       core.Position
}

// NewPieceEliminatedEvent creates a new PieceEliminatedEvent
func NewPieceEliminatedEvent(gameID string, turn int, pc core.Piece, at core.Position) *PieceEliminatedEvent {
	return &PieceEliminatedEvent{
		BaseEvent: newBase(TypePieceEliminated, gameID),
		Metadata:  turnMeta(turn, pc.Color),
		Piece:     pc,
		At:        at,
	}
}

// PieceRespawnedEvent is published when a captured piece comes back as a new piece
type PieceRespawnedEvent struct {
	BaseEvent
	Metadata   EventMetadata
	Piece      core.Piece
	At         core.Position
	OriginalID string
}

// NewPieceRespawnedEvent creates a new PieceRespawnedEvent
func NewPieceRespawnedEvent(gameID string, turn int, pc core.Piece, at core.Position, originalID string) *PieceRespawnedEvent {
	return &PieceRespawnedEvent{
		BaseEvent:  newBase(TypePieceRespawned, gameID),
		Metadata:   turnMeta(turn, pc.Color),
		Piece:      pc,
		At:         at,
		OriginalID: originalID,
	}
}

// RespawnDeferredEvent is published when the queue head could not be placed this tick
type RespawnDeferredEvent struct {
	BaseEvent
	Metadata EventMetadata
	Owner    core.Color
	Queued   int
}

// NewRespawnDeferredEvent creates a new RespawnDeferredEvent
func NewRespawnDeferredEvent(gameID string, turn int, owner core.Color, queued int) *RespawnDeferredEvent {
	return &RespawnDeferredEvent{
		BaseEvent: newBase(TypeRespawnDeferred, gameID),
		Metadata:  turnMeta(turn, owner),
		Owner:     owner,
		Queued:    queued,
	}
}

// PowerUpEvent covers the power-up lifecycle: spawned, expired, collected and used
type PowerUpEvent struct {
	BaseEvent
	Metadata EventMetadata
	PowerUp  core.PowerUp
	Target   core.Position
}

// NewPowerUpEvent creates a power-up lifecycle event of the given type.
// Side is only meaningful for collected and used events.
func NewPowerUpEvent(eventType, gameID string, turn int, side core.Color, pu core.PowerUp, target core.Position) *PowerUpEvent {
	return &PowerUpEvent{
		BaseEvent: newBase(eventType, gameID),
		Metadata:  turnMeta(turn, side),
		PowerUp:   pu,
		Target:    target,
	}
}

// TrapTriggeredEvent is published when an enemy piece steps onto a trap
type TrapTriggeredEvent struct {
	BaseEvent
	Metadata EventMetadata
	Victim   core.Piece
	At       core.Position
}

// NewTrapTriggeredEvent creates a new TrapTriggeredEvent
func NewTrapTriggeredEvent(gameID string, turn int, victim core.Piece, at core.Position) *TrapTriggeredEvent {
	return &TrapTriggeredEvent{
		BaseEvent: newBase(TypeTrapTriggered, gameID),
		Metadata:  turnMeta(turn, victim.Color),
		Victim:    victim,
		At:        at,
	}
}

// PieceTransformedEvent is published when an idle pawn is upgraded
type PieceTransformedEvent struct {
	BaseEvent
	Metadata EventMetadata
	Piece    core.Piece
	At       core.Position
	FromType core.PieceType
}

// NewPieceTransformedEvent creates a new PieceTransformedEvent
func NewPieceTransformedEvent(gameID string, turn int, pc core.Piece, at core.Position, from core.PieceType) *PieceTransformedEvent {
	return &PieceTransformedEvent{
		BaseEvent: newBase(TypePieceTransformed, gameID),
		Metadata:  turnMeta(turn, pc.Color),
		Piece:     pc,
		At:        at,
		FromType:  from,
	}
}

// TurnPassedEvent is published when a side with no legal move has its turn skipped
type TurnPassedEvent struct {
	BaseEvent
	Metadata EventMetadata
	Color    core.Color
}

// NewTurnPassedEvent creates a new TurnPassedEvent
func NewTurnPassedEvent(gameID string, turn int, c core.Color) *TurnPassedEvent {
	return &TurnPassedEvent{
		BaseEvent: newBase(TypeTurnPassed, gameID),
		Metadata:  turnMeta(turn, c),
		Color:     c,
	}
}

// StateTransitionEvent is published when the session state machine transitions between phases
type StateTransitionEvent struct {
	BaseEvent
	FromPhase string
	ToPhase   string
	Reason    string
}

// NewStateTransitionEvent creates a new StateTransitionEvent
func NewStateTransitionEvent(gameID, fromPhase, toPhase, reason string) *StateTransitionEvent {
	return &StateTransitionEvent{
		BaseEvent: newBase(TypeStateTransition, gameID),
		FromPhase: fromPhase,
		ToPhase:   toPhase,
		Reason:    reason,
	}
}
