package game

import (
	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/game/core"
	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/game/events"
)

// Phase is the reducer-level lifecycle of a game
type Phase int

const (
	PhasePlaying Phase = iota
	PhaseGameOver
)

func (p Phase) String() string {
	if p == PhaseGameOver {
		return "gameOver"
	}
	return "playing"
}

// Winner is the outcome of a finished game
type Winner int

const (
	WinnerNone Winner = iota
	WinnerWhite
	WinnerBlack
	WinnerDraw
)

func (w Winner) String() string {
	switch w {
	case WinnerWhite:
		return "white"
	case WinnerBlack:
		return "black"
	case WinnerDraw:
		return "draw"
	default:
		return "none"
	}
}

// WinnerFor returns the Winner value for a side
func WinnerFor(c core.Color) Winner {
	if c == core.White {
		return WinnerWhite
	}
	return WinnerBlack
}

// GameState is an immutable snapshot of a game. Every transition clones it
// first, so a snapshot handed out is never modified afterwards.
type GameState struct {
	GameID        string
	Board         core.Board
	CurrentPlayer core.Color
	Phase         Phase
	Winner        Winner
	EndReason     string
	TurnCount     int

	ShrunkSquares core.SquareSet
	ShrinkBlocks  []core.ShrinkBlock
	ShrinkCycle   int // index of the next batch to schedule
	StrandedKings map[string]bool

	CapturedPieces []core.Piece
	RespawnedIDs   map[string]bool
	RespawnQueue   []core.RespawnEntry

	PowerUps       []core.PowerUp
	PlayerPowerUps map[core.Color]core.PowerUp
	TrapSquares    map[string]core.Color
	ShieldedPieces map[string]int
	ExtraMoveArmed map[core.Color]bool
	TeleportArmed  map[core.Color]bool

	LastMove *core.Move
	Rules    Rules

	// Events holds what the last transition chain produced
	Events []events.Event
}

// Clone deep-copies every map and slice
func (gs *GameState) Clone() *GameState {
	next := *gs
	next.ShrunkSquares = gs.ShrunkSquares.Clone()
	next.ShrinkBlocks = append([]core.ShrinkBlock(nil), gs.ShrinkBlocks...)
	next.StrandedKings = cloneMap(gs.StrandedKings)
	next.CapturedPieces = append([]core.Piece(nil), gs.CapturedPieces...)
	next.RespawnedIDs = cloneMap(gs.RespawnedIDs)
	next.RespawnQueue = append([]core.RespawnEntry(nil), gs.RespawnQueue...)
	next.PowerUps = append([]core.PowerUp(nil), gs.PowerUps...)
	next.PlayerPowerUps = cloneMap(gs.PlayerPowerUps)
	next.TrapSquares = cloneMap(gs.TrapSquares)
	next.ShieldedPieces = cloneMap(gs.ShieldedPieces)
	next.ExtraMoveArmed = cloneMap(gs.ExtraMoveArmed)
	next.TeleportArmed = cloneMap(gs.TeleportArmed)
	if gs.LastMove != nil {
		m := *gs.LastMove
		next.LastMove = &m
	}
	next.Rules.RespawnWeights = append([]core.Weighted[core.PieceType](nil), gs.Rules.RespawnWeights...)
	next.Rules.TransformationWeights = append([]core.Weighted[core.PieceType](nil), gs.Rules.TransformationWeights...)
	next.Events = append([]events.Event(nil), gs.Events...)
	return &next
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// IsOver reports whether the game has finished
func (gs *GameState) IsOver() bool {
	return gs.Phase == PhaseGameOver
}

// HeldPowerUp returns the power-up a side is holding
func (gs *GameState) HeldPowerUp(c core.Color) (core.PowerUp, bool) {
	pu, ok := gs.PlayerPowerUps[c]
	return pu, ok
}

// PowerUpAt returns the index of the power-up lying on p, or -1
func (gs *GameState) PowerUpAt(p core.Position) int {
	for i, pu := range gs.PowerUps {
		if pu.Position == p {
			return i
		}
	}
	return -1
}

// IsShielded reports whether the piece with this ID cannot be captured
func (gs *GameState) IsShielded(id string) bool {
	return gs.ShieldedPieces[id] > 0
}

// IsTrap reports whether p holds a trap and who laid it
func (gs *GameState) IsTrap(p core.Position) (core.Color, bool) {
	c, ok := gs.TrapSquares[p.Key()]
	return c, ok
}

// ShrinkBlockAt returns the pending block on p, if any
func (gs *GameState) ShrinkBlockAt(p core.Position) (core.ShrinkBlock, bool) {
	for _, b := range gs.ShrinkBlocks {
		if b.Position == p {
			return b, true
		}
	}
	return core.ShrinkBlock{}, false
}

// emit records an event produced by the current transition
func (gs *GameState) emit(evts ...events.Event) {
	gs.Events = append(gs.Events, evts...)
}
