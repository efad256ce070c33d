package simulation

import (
	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/game"
	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/game/events"
)

// GameResult is the outcome of one self-play game
type GameResult struct {
	Index    int
	Seed     int64
	GameID   string
	Winner   game.Winner
	Reason   string
	Turns    int
	Finished bool

	Captures        int
	Respawns        int
	PowerUpsUsed    int
	TrapsTriggered  int
	Transformations int
	KingsRelocated  int
	KingsStranded   int
	ShrunkSquares   int
}

// Outcome labels the result: the winner, or "unfinished" at the turn limit
func (r GameResult) Outcome() string {
	if !r.Finished {
		return "unfinished"
	}
	return r.Winner.String()
}

// tally counts the notable events of one transition
func (r *GameResult) tally(evts []events.Event) {
	for _, e := range evts {
		switch e.Type() {
		case events.TypePieceCaptured:
			r.Captures++
		case events.TypePieceRespawned:
			r.Respawns++
		case events.TypePowerUpUsed:
			r.PowerUpsUsed++
		case events.TypeTrapTriggered:
			r.TrapsTriggered++
		case events.TypePieceTransformed:
			r.Transformations++
		case events.TypeKingRelocated:
			r.KingsRelocated++
		case events.TypeKingStranded:
			r.KingsStranded++
		}
	}
}

// Summary aggregates a batch of results
type Summary struct {
	Games        int
	WhiteWins    int
	BlackWins    int
	Draws        int
	Unfinished   int
	AverageTurns float64
	LongestGame  int
	Reasons      map[string]int

	Captures        int
	Respawns        int
	PowerUpsUsed    int
	Transformations int
	KingsStranded   int
}

// Summarize aggregates the results of a batch
func Summarize(results []GameResult) Summary {
	s := Summary{Games: len(results), Reasons: make(map[string]int)}
	totalTurns := 0
	for _, r := range results {
		totalTurns += r.Turns
		if r.Turns > s.LongestGame {
			s.LongestGame = r.Turns
		}
		s.Captures += r.Captures
		s.Respawns += r.Respawns
		s.PowerUpsUsed += r.PowerUpsUsed
		s.Transformations += r.Transformations
		s.KingsStranded += r.KingsStranded

		if !r.Finished {
			s.Unfinished++
			continue
		}
		s.Reasons[r.Reason]++
		switch r.Winner {
		case game.WinnerWhite:
			s.WhiteWins++
		case game.WinnerBlack:
			s.BlackWins++
		default:
			s.Draws++
		}
	}
	if len(results) > 0 {
		s.AverageTurns = float64(totalTurns) / float64(len(results))
	}
	return s
}
