package game

import (
	"fmt"

	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/game/core"
	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/game/events"
	"github.com/mitchelldurbincs/BattleRoyaleChess/internal/game/rules"
	"github.com/rs/zerolog"
)

// Reducer turns one GameState into the next. It holds no game data of its own:
// every method takes a snapshot, clones it and returns the result, leaving the
// input untouched.
type Reducer struct {
	logger       zerolog.Logger
	shrink       *ShrinkScheduler
	respawn      *RespawnManager
	powerUps     *PowerUpManager
	transform    *TransformationManager
	winCondition *rules.WinConditionChecker
}

// NewReducer creates a reducer with its mechanic components
func NewReducer(logger zerolog.Logger) *Reducer {
	return &Reducer{
		logger:       logger.With().Str("component", "Reducer").Logger(),
		shrink:       NewShrinkScheduler(logger),
		respawn:      NewRespawnManager(logger),
		powerUps:     NewPowerUpManager(logger),
		transform:    NewTransformationManager(logger),
		winCondition: rules.NewWinConditionChecker(logger),
	}
}

// StateOption customises the initial state
type StateOption func(*GameState)

// WithBoard starts from the given layout instead of the standard one
func WithBoard(b core.Board) StateOption {
	return func(gs *GameState) { gs.Board = b }
}

// WithRules overrides the configured mechanic settings
func WithRules(r Rules) StateOption {
	return func(gs *GameState) { gs.Rules = r }
}

// WithSideToMove sets who plays first
func WithSideToMove(c core.Color) StateOption {
	return func(gs *GameState) { gs.CurrentPlayer = c }
}

// CreateInitialGameState builds a fresh game: standard layout, white to move, no
// mechanics triggered yet.
func (r *Reducer) CreateInitialGameState(rng core.RandomSource, opts ...StateOption) *GameState {
	gs := &GameState{
		GameID:         core.NewID(rng),
		Board:          core.StandardBoard(),
		CurrentPlayer:  core.White,
		Phase:          PhasePlaying,
		Winner:         WinnerNone,
		ShrunkSquares:  core.NewSquareSet(),
		StrandedKings:  make(map[string]bool),
		RespawnedIDs:   make(map[string]bool),
		PlayerPowerUps: make(map[core.Color]core.PowerUp),
		TrapSquares:    make(map[string]core.Color),
		ShieldedPieces: make(map[string]int),
		ExtraMoveArmed: make(map[core.Color]bool),
		TeleportArmed:  make(map[core.Color]bool),
		Rules:          DefaultRules(),
	}
	for _, opt := range opts {
		opt(gs)
	}

	r.logger.Debug().
		Str("game_id", gs.GameID).
		Str("to_move", gs.CurrentPlayer.String()).
		Msg("Initial game state created")
	return gs
}

// ShieldFilter vetoes captures of shielded pieces
func ShieldFilter(gs *GameState) rules.MoveFilter {
	if len(gs.ShieldedPieces) == 0 {
		return nil
	}
	return func(m core.Move) bool {
		return m.Captured == nil || !gs.IsShielded(m.Captured.ID)
	}
}

// checksWaitingSide reports whether pc standing on at would attack the king of the
// side that is not to move. That side cannot answer a check, so mechanics never
// create one.
func checksWaitingSide(gs *GameState, at core.Position, pc core.Piece) bool {
	if pc.Color != gs.CurrentPlayer {
		return false
	}
	king, ok := gs.Board.FindKing(pc.Color.Opposite())
	if !ok || gs.ShrunkSquares.Has(king) {
		return false
	}
	scratch := gs.Board
	scratch.Set(at, pc)
	return rules.Attacks(&scratch, at, king)
}

// LegalMoves returns the moves the color may make in this state, shields included
func LegalMoves(gs *GameState, c core.Color) []core.Move {
	return rules.FilteredLegalMoves(&gs.Board, c, gs.ShrunkSquares, ShieldFilter(gs))
}

// TeleportMoves lists every relocation an armed teleport allows the color
func TeleportMoves(gs *GameState, c core.Color) []core.Move {
	if !gs.TeleportArmed[c] {
		return nil
	}
	var moves []core.Move
	for _, placed := range gs.Board.Pieces(c) {
		for _, to := range core.AllPositions() {
			m := teleportMove(gs, placed.Position, to)
			if validTeleport(gs, c, m) == nil {
				moves = append(moves, m)
			}
		}
	}
	return moves
}

func teleportMove(gs *GameState, from, to core.Position) core.Move {
	m := core.NewMove(&gs.Board, from, to)
	pu := core.PowerUp{Type: core.PowerUpTeleport, Position: to}
	m.UsedPowerUp = &pu
	return m
}

func validTeleport(gs *GameState, c core.Color, m core.Move) error {
	if !gs.TeleportArmed[c] {
		return core.ErrNoPowerUp
	}
	pc := gs.Board.At(m.From)
	if pc.IsEmpty() || pc.Color != c {
		return core.ErrIllegalMove
	}
	if !m.To.IsValid() || m.To == m.From || !gs.Board.IsEmpty(m.To) || gs.ShrunkSquares.Has(m.To) {
		return core.ErrInvalidPowerUpTarget
	}
	scratch := gs.Board.With(m.From, m.To)
	if rules.IsInCheck(&scratch, c, gs.ShrunkSquares) {
		return core.ErrIllegalMove
	}
	return nil
}

// ApplyMove plays a move for the side to move. An illegal move returns the state unchanged.
func (r *Reducer) ApplyMove(gs *GameState, m core.Move) *GameState {
	next, err := r.TryApplyMove(gs, m)
	if err != nil {
		r.logger.Debug().Err(err).Int("turn", gs.TurnCount).Msg("Move rejected")
		return gs
	}
	return next
}

// TryApplyMove is ApplyMove reporting why a move was rejected
func (r *Reducer) TryApplyMove(gs *GameState, m core.Move) (*GameState, error) {
	if gs.IsOver() {
		return gs, core.WrapMoveError(m, core.ErrGameOver)
	}
	c := gs.CurrentPlayer
	if !m.From.IsValid() || !m.To.IsValid() {
		return gs, core.WrapMoveError(m, core.ErrInvalidPosition)
	}
	switch pc := gs.Board.At(m.From); {
	case pc.IsEmpty():
		return gs, core.WrapMoveError(m, core.ErrIllegalMove)
	case pc.Color != c:
		return gs, core.WrapMoveError(m, core.ErrNotYourTurn)
	}

	var actual core.Move
	if m.IsTeleport() {
		actual = teleportMove(gs, m.From, m.To)
		if err := validTeleport(gs, c, actual); err != nil {
			return gs, core.WrapMoveError(actual, err)
		}
	} else {
		found := false
		for _, legal := range LegalMoves(gs, c) {
			if legal.From == m.From && legal.To == m.To {
				actual, found = legal, true
				break
			}
		}
		if !found {
			return gs, core.WrapMoveError(core.NewMove(&gs.Board, m.From, m.To), core.ErrIllegalMove)
		}
	}

	next := gs.Clone()
	next.Events = nil
	next.TurnCount++
	r.executeMove(next, actual)

	givesCheck := rules.IsInCheck(&next.Board, c.Opposite(), next.ShrunkSquares)
	switch {
	case next.ExtraMoveArmed[c] && givesCheck:
		// a checked side always gets to answer, so the extra move is forfeited
		delete(next.ExtraMoveArmed, c)
		next.CurrentPlayer = c.Opposite()
		r.logger.Debug().
			Int("turn", next.TurnCount).
			Str("color", c.String()).
			Msg("Extra move forfeited by giving check")
	case next.ExtraMoveArmed[c]:
		delete(next.ExtraMoveArmed, c)
	default:
		next.CurrentPlayer = c.Opposite()
	}

	if givesCheck {
		next.emit(events.NewKingInCheckEvent(next.GameID, next.TurnCount, c.Opposite()))
	}

	r.logger.Debug().
		Int("turn", next.TurnCount).
		Str("move", actual.String()).
		Str("next_to_move", next.CurrentPlayer.String()).
		Msg("Move applied")
	return next, nil
}

// executeMove updates the board and all bookkeeping a move touches
func (r *Reducer) executeMove(gs *GameState, m core.Move) {
	c := m.Piece.Color
	mover := m.Piece
	mover.HasMoved = true
	mover.TurnsWithoutMoving = 0

	gs.emit(events.NewMoveExecutedEvent(gs.GameID, gs.TurnCount, m))

	if m.Captured != nil {
		r.recordCapture(gs, *m.Captured, m.To, false)
	}
	if m.IsTeleport() {
		delete(gs.TeleportArmed, c)
	}

	gs.Board.Clear(m.From)
	if m.IsPromotion() {
		mover.Type = core.Queen
		gs.emit(events.NewPiecePromotedEvent(gs.GameID, gs.TurnCount, mover, m.To))
	}
	gs.Board.Set(m.To, mover)
	last := m
	gs.LastMove = &last

	if owner, trapped := gs.IsTrap(m.To); trapped && owner != c && !mover.IsKing() && !gs.IsShielded(mover.ID) {
		gs.Board.Clear(m.To)
		delete(gs.TrapSquares, m.To.Key())
		gs.emit(events.NewTrapTriggeredEvent(gs.GameID, gs.TurnCount, mover, m.To))
		r.recordCapture(gs, mover, m.To, true)
		return
	}

	r.powerUps.Collect(gs, c, m.To)
}

// recordCapture removes a piece from play and owes it back through the respawn queue
func (r *Reducer) recordCapture(gs *GameState, pc core.Piece, at core.Position, byTrap bool) {
	gs.CapturedPieces = append(gs.CapturedPieces, pc)
	delete(gs.ShieldedPieces, pc.ID)
	delete(gs.StrandedKings, pc.ID)
	gs.emit(events.NewPieceCapturedEvent(gs.GameID, gs.TurnCount, pc, at, byTrap))
	r.respawn.RebuildQueue(gs)
}

// UsePowerUp spends the side's held power-up. Invalid use returns the state unchanged.
func (r *Reducer) UsePowerUp(gs *GameState, c core.Color, kind core.PowerUpType, target core.Position) *GameState {
	next, err := r.TryUsePowerUp(gs, c, kind, target)
	if err != nil {
		r.logger.Debug().Err(err).Int("turn", gs.TurnCount).Msg("Power-up use rejected")
		return gs
	}
	return next
}

// TryUsePowerUp is UsePowerUp reporting why the use was rejected
func (r *Reducer) TryUsePowerUp(gs *GameState, c core.Color, kind core.PowerUpType, target core.Position) (*GameState, error) {
	if gs.IsOver() {
		return gs, core.NewGameError(gs.TurnCount, c, "use "+kind.String(), core.ErrGameOver)
	}
	if c != gs.CurrentPlayer {
		return gs, core.NewGameError(gs.TurnCount, c, "use "+kind.String(), core.ErrNotYourTurn)
	}
	next := gs.Clone()
	next.Events = nil
	if err := r.powerUps.Use(next, c, kind, target); err != nil {
		return gs, core.NewGameError(gs.TurnCount, c, "use "+kind.String(), err)
	}
	return next, nil
}

// AdvanceTurnMechanics runs the per-turn mechanics after a move: idle counters
// and shields age, the board shrinks, power-ups expire and spawn, captured
// pieces respawn and idle pawns transform.
func (r *Reducer) AdvanceTurnMechanics(gs *GameState, rng core.RandomSource) *GameState {
	if gs.IsOver() {
		return gs
	}
	next := gs.Clone()
	r.transform.AgePieces(next)
	r.shrink.ProcessTurnShrink(next)
	r.powerUps.ProcessTurnPowerUps(next, rng)
	r.respawn.ProcessTurnRespawn(next, rng)
	r.transform.ProcessTurnTransformation(next, rng)
	return next
}

// EvaluateGameOver ends the game when a king is missing or the side to move is
// mated or stalemated. A finished state is returned as is.
func (r *Reducer) EvaluateGameOver(gs *GameState) *GameState {
	if gs.IsOver() {
		return gs
	}
	verdict := r.winCondition.Evaluate(&gs.Board, gs.CurrentPlayer, gs.ShrunkSquares, ShieldFilter(gs))
	if !verdict.IsOver() {
		return gs
	}

	next := gs.Clone()
	next.Phase = PhaseGameOver
	next.EndReason = verdict.Reason
	switch verdict.Result {
	case rules.ResultWhiteWins:
		next.Winner = WinnerWhite
	case rules.ResultBlackWins:
		next.Winner = WinnerBlack
	default:
		next.Winner = WinnerDraw
	}
	next.emit(events.NewGameEndedEvent(next.GameID, next.Winner.String(), next.EndReason, next.TurnCount))

	r.logger.Info().
		Int("turn", next.TurnCount).
		Str("winner", next.Winner.String()).
		Str("reason", next.EndReason).
		Msg("Game over")
	return next
}

// PassTurn hands the move to the other side without counting a turn. Used when
// the side to move has nothing it can play.
func (r *Reducer) PassTurn(gs *GameState) *GameState {
	if gs.IsOver() {
		return gs
	}
	next := gs.Clone()
	next.Events = nil
	passed := next.CurrentPlayer
	next.CurrentPlayer = passed.Opposite()
	next.emit(events.NewTurnPassedEvent(next.GameID, next.TurnCount, passed))
	return next
}

// Play runs the full transition chain for one move: apply it, advance the
// mechanics, then check for the end of the game.
func (r *Reducer) Play(gs *GameState, m core.Move, rng core.RandomSource) (*GameState, error) {
	next, err := r.TryApplyMove(gs, m)
	if err != nil {
		return gs, err
	}
	next = r.AdvanceTurnMechanics(next, rng)
	return r.EvaluateGameOver(next), nil
}

// Describe summarises the state for logs and the CLI status line
func (gs *GameState) Describe() string {
	s := fmt.Sprintf("turn %d, %s to move", gs.TurnCount, gs.CurrentPlayer)
	if gs.IsOver() {
		s = fmt.Sprintf("turn %d, game over: %s (%s)", gs.TurnCount, gs.Winner, gs.EndReason)
	}
	return s
}
