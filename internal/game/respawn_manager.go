package game

import (
	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/game/core"
	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/game/events"
	"github.com/rs/zerolog"
)

// RespawnManager returns captured material to the board on a fixed cadence
type RespawnManager struct {
	logger zerolog.Logger
}

// NewRespawnManager creates a new respawn manager
func NewRespawnManager(logger zerolog.Logger) *RespawnManager {
	return &RespawnManager{
		logger: logger.With().Str("component", "RespawnManager").Logger(),
	}
}

// RebuildQueue derives the queue from the capture history: every captured
// non-king piece not yet respawned, alternating white and black, white first.
func (rm *RespawnManager) RebuildQueue(gs *GameState) {
	var byColor [2][]core.RespawnEntry
	for _, pc := range gs.CapturedPieces {
		if pc.IsKing() || gs.RespawnedIDs[pc.ID] {
			continue
		}
		byColor[pc.Color] = append(byColor[pc.Color], core.RespawnEntry{Owner: pc.Color, Original: pc})
	}
	white, black := byColor[core.White], byColor[core.Black]
	queue := make([]core.RespawnEntry, 0, len(white)+len(black))
	for i := 0; i < max(len(white), len(black)); i++ {
		if i < len(white) {
			queue = append(queue, white[i])
		}
		if i < len(black) {
			queue = append(queue, black[i])
		}
	}
	gs.RespawnQueue = queue
}

// ProcessTurnRespawn places the head of the queue when the cadence fires.
// When no square qualifies the entry stays at the head for the next attempt.
func (rm *RespawnManager) ProcessTurnRespawn(gs *GameState, rng core.RandomSource) {
	if !gs.Rules.RespawnEnabled || len(gs.RespawnQueue) == 0 {
		return
	}
	if !due(gs.TurnCount, gs.Rules.RespawnIntervalTurns) {
		return
	}

	head := gs.RespawnQueue[0]
	pieceType, ok := core.PickWeighted(rng, gs.Rules.RespawnWeights)
	if !ok {
		pieceType = core.Pawn
	}
	candidates := rm.respawnSquares(gs, pieceType, head.Owner)
	if len(candidates) == 0 {
		gs.emit(events.NewRespawnDeferredEvent(gs.GameID, gs.TurnCount, head.Owner, len(gs.RespawnQueue)))
		rm.logger.Debug().
			Int("turn", gs.TurnCount).
			Str("owner", head.Owner.String()).
			Str("type", pieceType.String()).
			Msg("No square for respawn, entry kept at head")
		return
	}

	at := candidates[rng.Intn(len(candidates))]
	pc := core.NewPiece(pieceType, head.Owner, core.NewID(rng))
	pc.HasMoved = pieceType != core.Pawn || at.Row != head.Owner.PawnStartRow()
	gs.Board.Set(at, pc)
	gs.RespawnedIDs[head.Original.ID] = true
	gs.RespawnQueue = gs.RespawnQueue[1:]
	gs.emit(events.NewPieceRespawnedEvent(gs.GameID, gs.TurnCount, pc, at, head.Original.ID))

	rm.logger.Debug().
		Int("turn", gs.TurnCount).
		Str("owner", head.Owner.String()).
		Str("type", pieceType.String()).
		Str("square", at.Algebraic()).
		Int("still_queued", len(gs.RespawnQueue)).
		Msg("Piece respawned")
}

// respawnSquares lists the squares a piece of type t may reappear on for owner
func (rm *RespawnManager) respawnSquares(gs *GameState, t core.PieceType, owner core.Color) []core.Position {
	var out []core.Position
	candidate := core.Piece{Type: t, Color: owner}
	for _, p := range core.AllPositions() {
		if !gs.Board.IsEmpty(p) || gs.ShrunkSquares.Has(p) {
			continue
		}
		if checksWaitingSide(gs, p, candidate) {
			continue
		}
		if _, trapped := gs.IsTrap(p); trapped {
			continue
		}
		if t == core.Pawn && (p.Row == 0 || p.Row == core.BoardSize-1) {
			continue
		}
		nearPowerUp := false
		for _, pu := range gs.PowerUps {
			if pu.Position.Chebyshev(p) <= 1 {
				nearPowerUp = true
				break
			}
		}
		if !nearPowerUp {
			out = append(out, p)
		}
	}
	return out
}
