package rules

import (
	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/game/core"
	"github.com/rs/zerolog"
)

// Result is the outcome of a position
type Result int

const (
	ResultOngoing Result = iota
	ResultWhiteWins
	ResultBlackWins
	ResultDraw
)

func (r Result) String() string {
	switch r {
	case ResultWhiteWins:
		return "white wins"
	case ResultBlackWins:
		return "black wins"
	case ResultDraw:
		return "draw"
	default:
		return "ongoing"
	}
}

// Reasons reported alongside a finished result
const (
	ReasonKingMissing = "king_missing"
	ReasonCheckmate   = "checkmate"
	ReasonStalemate   = "stalemate"
)

// Verdict is a result and the reason it was reached
type Verdict struct {
	Result Result
	Reason string
}

// IsOver reports whether the verdict ends the game
func (v Verdict) IsOver() bool {
	return v.Result != ResultOngoing
}

// WinFor returns the result in which the color wins
func WinFor(c core.Color) Result {
	if c == core.White {
		return ResultWhiteWins
	}
	return ResultBlackWins
}

// WinConditionChecker handles game over detection and winner determination
type WinConditionChecker struct {
	logger zerolog.Logger
}

// NewWinConditionChecker creates a new win condition checker
func NewWinConditionChecker(logger zerolog.Logger) *WinConditionChecker {
	return &WinConditionChecker{
		logger: logger.With().Str("component", "WinConditionChecker").Logger(),
	}
}

// Evaluate decides whether the game is over with toMove to play. A missing king loses
// outright and is checked before mate or stalemate.
func (wc *WinConditionChecker) Evaluate(b *core.Board, toMove core.Color, shrunk core.SquareSet, allow MoveFilter) Verdict {
	wc.logger.Debug().Str("to_move", toMove.String()).Msg("Checking game over conditions")

	_, whiteKing := b.FindKing(core.White)
	_, blackKing := b.FindKing(core.Black)
	switch {
	case !whiteKing && !blackKing:
		wc.logger.Info().Msg("Both kings gone, game drawn")
		return Verdict{Result: ResultDraw, Reason: ReasonKingMissing}
	case !whiteKing:
		wc.logger.Info().Str("winner", core.Black.String()).Msg("White king missing")
		return Verdict{Result: ResultBlackWins, Reason: ReasonKingMissing}
	case !blackKing:
		wc.logger.Info().Str("winner", core.White.String()).Msg("Black king missing")
		return Verdict{Result: ResultWhiteWins, Reason: ReasonKingMissing}
	}

	if HasLegalMove(b, toMove, shrunk, allow) {
		return Verdict{Result: ResultOngoing}
	}

	if IsInCheck(b, toMove, shrunk) {
		winner := toMove.Opposite()
		wc.logger.Info().Str("winner", winner.String()).Msg("Checkmate")
		return Verdict{Result: WinFor(winner), Reason: ReasonCheckmate}
	}

	wc.logger.Info().Str("stalemated", toMove.String()).Msg("Stalemate, game drawn")
	return Verdict{Result: ResultDraw, Reason: ReasonStalemate}
}
