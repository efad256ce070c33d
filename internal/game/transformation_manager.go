package game

import (
	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/game/core"
	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/game/events"
	"github.com/rs/zerolog"
)

// TransformationManager promotes pawns that have stood still long enough
type TransformationManager struct {
	logger zerolog.Logger
}

// NewTransformationManager creates a new transformation manager
func NewTransformationManager(logger zerolog.Logger) *TransformationManager {
	return &TransformationManager{
		logger: logger.With().Str("component", "TransformationManager").Logger(),
	}
}

// AgePieces bumps the idle counter of every piece on the board
func (tm *TransformationManager) AgePieces(gs *GameState) {
	for _, p := range core.AllPositions() {
		pc := gs.Board.At(p)
		if pc.IsEmpty() {
			continue
		}
		pc.TurnsWithoutMoving++
		gs.Board.Set(p, pc)
	}
}

// ProcessTurnTransformation upgrades at most one idle pawn per side when the cadence fires
func (tm *TransformationManager) ProcessTurnTransformation(gs *GameState, rng core.RandomSource) {
	if !gs.Rules.TransformationEnabled || !due(gs.TurnCount, gs.Rules.TransformationIntervalTurns) {
		return
	}
	for _, c := range core.Colors {
		var eligible []core.PlacedPiece
		for _, placed := range gs.Board.Pieces(c) {
			if placed.Piece.Type == core.Pawn && placed.Piece.TurnsWithoutMoving >= gs.Rules.TransformationIdleThreshold {
				eligible = append(eligible, placed)
			}
		}
		if len(eligible) == 0 {
			continue
		}
		newType, ok := core.PickWeighted(rng, gs.Rules.TransformationWeights)
		if !ok {
			return
		}
		eligible = withoutChecks(gs, eligible, newType)
		if len(eligible) == 0 {
			tm.logger.Debug().
				Int("turn", gs.TurnCount).
				Str("color", c.String()).
				Str("new_type", newType.String()).
				Msg("Every candidate would give check, transformation skipped")
			continue
		}
		chosen := eligible[rng.Intn(len(eligible))]
		pc := chosen.Piece
		pc.Type = newType
		pc.Transformed = true
		pc.Transformation = core.TransformationVeteran
		gs.Board.Set(chosen.Position, pc)
		gs.emit(events.NewPieceTransformedEvent(gs.GameID, gs.TurnCount, pc, chosen.Position, core.Pawn))

		tm.logger.Debug().
			Int("turn", gs.TurnCount).
			Str("color", c.String()).
			Str("square", chosen.Position.Algebraic()).
			Str("new_type", newType.String()).
			Int("idle_turns", pc.TurnsWithoutMoving).
			Msg("Pawn transformed")
	}
}

// withoutChecks drops the pawns whose upgrade to t would check the side not to move
func withoutChecks(gs *GameState, pawns []core.PlacedPiece, t core.PieceType) []core.PlacedPiece {
	out := pawns[:0:0]
	for _, placed := range pawns {
		upgraded := placed.Piece
		upgraded.Type = t
		if !checksWaitingSide(gs, placed.Position, upgraded) {
			out = append(out, placed)
		}
	}
	return out
}
