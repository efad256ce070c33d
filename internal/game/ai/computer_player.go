// Package ai implements the computer opponent: a one-ply heuristic that scores
// every candidate move and samples among the best few.
package ai

import (
	"sort"

	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/config"
	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/game"
	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/game/core"
	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/game/rules"
	"github.com/rs/zerolog"
)

// ScoredMove is a candidate move with its heuristic score
type ScoredMove struct {
	Move  core.Move
	Score float64
}

// ComputerPlayer selects moves for the side to move. It never modifies the state it reads.
type ComputerPlayer struct {
	weights config.AIConfig
	logger  zerolog.Logger
}

// NewComputerPlayer creates a computer player using the given heuristic weights
func NewComputerPlayer(weights config.AIConfig, logger zerolog.Logger) *ComputerPlayer {
	if weights.TopK < 1 {
		weights.TopK = 1
	}
	if weights.RankDecay <= 0 || weights.RankDecay > 1 {
		weights.RankDecay = 0.75
	}
	return &ComputerPlayer{
		weights: weights,
		logger:  logger.With().Str("component", "ComputerPlayer").Logger(),
	}
}

// SelectMove picks a move for the side to move. A move that mates is always
// played. Otherwise one of the top scored moves is drawn, better ranks being
// more likely. Returns false when there is nothing to play.
func (cp *ComputerPlayer) SelectMove(gs *game.GameState, rng core.RandomSource) (core.Move, bool) {
	if gs.IsOver() {
		return core.Move{}, false
	}
	c := gs.CurrentPlayer
	candidates := candidateMoves(gs, c)
	if len(candidates) == 0 {
		cp.logger.Debug().Str("side", c.String()).Msg("No candidate moves")
		return core.Move{}, false
	}

	for _, m := range candidates {
		if deliversMate(gs, m) {
			cp.logger.Debug().Str("move", m.UCI()).Msg("Playing mate in one")
			return m, true
		}
	}

	scored := cp.ScoreMoves(gs, candidates, rng)
	pick := pickRanked(scored, cp.weights.TopK, cp.weights.RankDecay, rng)
	cp.logger.Debug().
		Str("side", c.String()).
		Int("candidates", len(scored)).
		Str("move", scored[pick].Move.UCI()).
		Float64("score", scored[pick].Score).
		Int("rank", pick).
		Msg("Selected move")
	return scored[pick].Move, true
}

// ScoreMoves scores each candidate and returns them best first
func (cp *ComputerPlayer) ScoreMoves(gs *game.GameState, candidates []core.Move, rng core.RandomSource) []ScoredMove {
	scored := make([]ScoredMove, 0, len(candidates))
	for _, m := range candidates {
		scored = append(scored, ScoredMove{Move: m, Score: cp.score(gs, m, rng)})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

// candidateMoves lists the legal moves plus any relocation an armed teleport offers
func candidateMoves(gs *game.GameState, c core.Color) []core.Move {
	moves := game.LegalMoves(gs, c)
	return append(moves, game.TeleportMoves(gs, c)...)
}

// resultingBoard plays m on a copy of the board, promotion included
func resultingBoard(b *core.Board, m core.Move) core.Board {
	after := b.With(m.From, m.To)
	if m.IsPromotion() {
		pc := after.At(m.To)
		pc.Type = core.Queen
		after.Set(m.To, pc)
	}
	return after
}

// deliversMate reports whether m leaves the opponent in check with no reply
func deliversMate(gs *game.GameState, m core.Move) bool {
	opp := m.Piece.Color.Opposite()
	after := resultingBoard(&gs.Board, m)
	if !rules.IsInCheck(&after, opp, gs.ShrunkSquares) {
		return false
	}
	return !rules.HasLegalMove(&after, opp, gs.ShrunkSquares, game.ShieldFilter(gs))
}

// pickRanked draws an index among the first k entries; each rank is decay times
// as likely as the one before it
func pickRanked(scored []ScoredMove, k int, decay float64, rng core.RandomSource) int {
	if k > len(scored) {
		k = len(scored)
	}
	if k <= 1 {
		return 0
	}
	weights := make([]float64, k)
	total := 0.0
	w := 1.0
	for i := range weights {
		weights[i] = w
		total += w
		w *= decay
	}
	roll := rng.Float64() * total
	for i, w := range weights {
		if roll < w {
			return i
		}
		roll -= w
	}
	return k - 1
}
