package game

import (
	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/game/core"
	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/game/events"
	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/game/rules"
	"github.com/rs/zerolog"
)

// innermostShrinkLevel is the last ring that can vanish; the centre 2x2 never does
const innermostShrinkLevel = 3

// ShrinkBatch is one group of squares scheduled together
type ShrinkBatch struct {
	Level   int
	Squares []core.Position
}

// ShrinkBatches precomputes the removal order up to maxLevel. Level n removes
// ring n-1; inside a ring the corners go first, then squares one step further
// along the edge, and so on inward.
func ShrinkBatches(maxLevel int) []ShrinkBatch {
	if maxLevel > innermostShrinkLevel {
		maxLevel = innermostShrinkLevel
	}
	var batches []ShrinkBatch
	for level := 1; level <= maxLevel; level++ {
		ring := level - 1
		side := core.BoardSize - 2*ring
		groups := make([][]core.Position, (side+1)/2)
		for _, p := range core.AllPositions() {
			if p.EdgeDistance() != ring {
				continue
			}
			d := cornerDistance(p, ring)
			groups[d] = append(groups[d], p)
		}
		for _, g := range groups {
			if len(g) > 0 {
				batches = append(batches, ShrinkBatch{Level: level, Squares: g})
			}
		}
	}
	return batches
}

// cornerDistance is how far along its ring edge p lies from the nearest ring corner
func cornerDistance(p core.Position, ring int) int {
	far := core.BoardSize - 1 - ring
	rowD := min(p.Row-ring, far-p.Row)
	colD := min(p.Col-ring, far-p.Col)
	return max(rowD, colD)
}

// ShrinkScheduler removes the board from the outside in
type ShrinkScheduler struct {
	logger zerolog.Logger
}

// NewShrinkScheduler creates a new shrink scheduler
func NewShrinkScheduler(logger zerolog.Logger) *ShrinkScheduler {
	return &ShrinkScheduler{
		logger: logger.With().Str("component", "ShrinkScheduler").Logger(),
	}
}

// ProcessTurnShrink counts down pending blocks, removes the squares that reach
// zero and schedules the next batch when the cycle comes round.
func (ss *ShrinkScheduler) ProcessTurnShrink(gs *GameState) {
	if !gs.Rules.ShrinkEnabled {
		return
	}
	ss.tick(gs)
	if due(gs.TurnCount, gs.Rules.ShrinkCycleTurns) {
		ss.scheduleNext(gs)
	}
}

func (ss *ShrinkScheduler) tick(gs *GameState) {
	if len(gs.ShrinkBlocks) == 0 {
		return
	}
	remaining := gs.ShrinkBlocks[:0]
	var vanished []core.Position
	for _, b := range gs.ShrinkBlocks {
		b.TurnsUntilShrink--
		if b.TurnsUntilShrink <= 0 {
			vanished = append(vanished, b.Position)
			continue
		}
		remaining = append(remaining, b)
	}
	gs.ShrinkBlocks = remaining
	if len(vanished) == 0 {
		return
	}

	// Mark every square first so displaced kings never land on one vanishing this tick
	for _, p := range vanished {
		gs.ShrunkSquares.Add(p)
	}
	gs.emit(events.NewSquaresShrunkEvent(gs.GameID, gs.TurnCount, vanished))

	for _, p := range vanished {
		ss.clearSquare(gs, p)
	}

	ss.logger.Debug().
		Int("turn", gs.TurnCount).
		Int("squares", len(vanished)).
		Int("total_shrunk", len(gs.ShrunkSquares)).
		Msg("Squares shrunk")
}

// clearSquare deals with whatever occupies a square that just vanished
func (ss *ShrinkScheduler) clearSquare(gs *GameState, p core.Position) {
	if i := gs.PowerUpAt(p); i >= 0 {
		gs.PowerUps = append(gs.PowerUps[:i], gs.PowerUps[i+1:]...)
	}
	delete(gs.TrapSquares, p.Key())

	pc := gs.Board.At(p)
	switch {
	case pc.IsEmpty():
		return
	case pc.IsKing():
		dest, ok := nearestFreeSquare(gs, p, pc.Color)
		if !ok {
			gs.StrandedKings[pc.ID] = true
			gs.emit(events.NewKingStrandedEvent(gs.GameID, gs.TurnCount, pc.Color, p))
			ss.logger.Warn().
				Int("turn", gs.TurnCount).
				Str("color", pc.Color.String()).
				Str("square", p.Algebraic()).
				Msg("King stranded on shrunk square")
			return
		}
		gs.Board.Clear(p)
		gs.Board.Set(dest, pc)
		delete(gs.StrandedKings, pc.ID)
		gs.emit(events.NewKingRelocatedEvent(gs.GameID, gs.TurnCount, pc.Color, p, dest))
	default:
		gs.Board.Clear(p)
		delete(gs.ShieldedPieces, pc.ID)
		gs.emit(events.NewPieceEliminatedEvent(gs.GameID, gs.TurnCount, pc, p))
	}
}

// nearestFreeSquare searches the 8 neighbours, then rings of growing radius,
// row-major within each ring. A square the enemy attacks is only taken when no
// safe square exists anywhere.
func nearestFreeSquare(gs *GameState, from core.Position, king core.Color) (core.Position, bool) {
	var fallback *core.Position
	for radius := 1; radius < core.BoardSize; radius++ {
		for _, p := range from.Ring(radius) {
			if !gs.Board.IsEmpty(p) || gs.ShrunkSquares.Has(p) {
				continue
			}
			scratch := gs.Board.With(from, p)
			if !rules.IsSquareAttacked(&scratch, p, king.Opposite(), gs.ShrunkSquares) {
				return p, true
			}
			if fallback == nil {
				fallback = &p
			}
		}
	}
	if fallback != nil {
		return *fallback, true
	}
	return core.Position{}, false
}

func (ss *ShrinkScheduler) scheduleNext(gs *GameState) {
	batches := ShrinkBatches(gs.Rules.ShrinkMaxLevel)
	if gs.ShrinkCycle >= len(batches) {
		return
	}
	batch := batches[gs.ShrinkCycle]
	gs.ShrinkCycle++

	countdown := gs.Rules.shrinkCountdown()
	var warned []core.Position
	for _, p := range batch.Squares {
		if gs.ShrunkSquares.Has(p) {
			continue
		}
		if _, pending := gs.ShrinkBlockAt(p); pending {
			continue
		}
		gs.ShrinkBlocks = append(gs.ShrinkBlocks, core.ShrinkBlock{
			Position:         p,
			TurnsUntilShrink: countdown,
			IsWarning:        true,
			Level:            batch.Level,
		})
		warned = append(warned, p)
	}
	if len(warned) == 0 {
		return
	}
	gs.emit(events.NewShrinkWarningEvent(gs.GameID, gs.TurnCount, warned, batch.Level, countdown))

	ss.logger.Debug().
		Int("turn", gs.TurnCount).
		Int("level", batch.Level).
		Int("batch", gs.ShrinkCycle-1).
		Int("squares", len(warned)).
		Msg("Shrink batch scheduled")
}
