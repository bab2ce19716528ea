package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Irokanade/iro-chess-gui/internal/board"
	"github.com/Irokanade/iro-chess-gui/internal/domain"
	"github.com/Irokanade/iro-chess-gui/internal/ports"
)

// fiftyMoveLimit is the halfmove clock value (100 plies) at which the game is drawn.
const fiftyMoveLimit = 100

type SessionOptions struct {
	// StartFEN is empty for the standard starting position.
	StartFEN  string
	Mode      domain.Mode
	HumanSide domain.Side

	// Engine is required in ModeEngine.
	Engine     ports.MoveEngine
	EngineName string

	Logger *slog.Logger
	Now    func() time.Time
}

// Session is one game between a human and either the engine or a second human.
// It is not safe for concurrent use; UIs hand EnginePosition snapshots to other goroutines
// and apply the result back with ApplyEngineMove.
type Session struct {
	id        string
	board     board.Board
	startFEN  string
	moves     []string
	outcome   domain.Outcome
	mode      domain.Mode
	humanSide domain.Side

	engine     ports.MoveEngine
	engineName string

	log       *slog.Logger
	now       func() time.Time
	startedAt time.Time
}

func NewSession(opts SessionOptions) (*Session, error) {
	b := board.NewBoard()
	if opts.StartFEN != "" {
		parsed, err := board.ParseFEN(opts.StartFEN)
		if err != nil {
			return nil, &domain.OpError{Op: "session.new", Kind: domain.KindInvalidConfig, Err: err}
		}
		b = parsed
	}

	mode := opts.Mode
	if mode == "" {
		mode = domain.ModeTwoPlayer
	}
	if mode == domain.ModeEngine && opts.Engine == nil {
		return nil, &domain.OpError{
			Op:   "session.new",
			Kind: domain.KindInvalidConfig,
			Err:  errors.New("engine mode needs an engine"),
		}
	}

	side := opts.HumanSide
	if side == "" {
		side = domain.SideWhite
	}

	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	s := &Session{
		id:         uuid.NewString(),
		board:      b,
		startFEN:   opts.StartFEN,
		mode:       mode,
		humanSide:  side,
		engine:     opts.Engine,
		engineName: opts.EngineName,
		log:        log,
		now:        now,
		startedAt:  now(),
	}
	s.updateOutcome()

	log.Info("game.start", "id", s.id, "mode", mode, "human", side, "fen", b.FEN())
	return s, nil
}

func (s *Session) ID() string { return s.id }

// Board returns a copy of the current position.
func (s *Session) Board() board.Board { return s.board }

func (s *Session) Moves() []string { return append([]string(nil), s.moves...) }

func (s *Session) Outcome() domain.Outcome { return s.outcome }

func (s *Session) Mode() domain.Mode { return s.mode }

func (s *Session) HumanSide() domain.Side { return s.humanSide }

// SideToMove reports whose turn it is.
func (s *Session) SideToMove() domain.Side {
	if s.board.SideToMove() == board.Black {
		return domain.SideBlack
	}
	return domain.SideWhite
}

// LegalMovesFrom lists the legal moves of the piece on from. Promotions appear once per piece.
func (s *Session) LegalMovesFrom(from board.Square) []board.Move {
	var out []board.Move
	for _, m := range s.board.LegalMoves() {
		if m.Source() == from {
			out = append(out, m)
		}
	}
	return out
}

// NeedsPromotion reports whether from-to is a legal pawn move that requires choosing a piece.
func (s *Session) NeedsPromotion(from, to board.Square) bool {
	for _, m := range s.LegalMovesFrom(from) {
		if m.Target() == to && m.Promoted() != board.NoPiece {
			return true
		}
	}
	return false
}

// ApplyMove plays a move in UCI notation for the side to move.
func (s *Session) ApplyMove(uci string) error {
	if s.outcome.Finished() {
		return &domain.OpError{Op: "session.apply", Kind: domain.KindIllegalMove, Err: domain.ErrGameOver}
	}

	m, err := s.board.ParseMove(uci)
	if err != nil {
		return &domain.OpError{
			Op:   "session.apply",
			Kind: domain.KindIllegalMove,
			Err:  fmt.Errorf("%w: %w", domain.ErrIllegalMove, err),
		}
	}
	if !s.board.MakeMove(m, board.AllMoves) {
		return &domain.OpError{
			Op:   "session.apply",
			Kind: domain.KindIllegalMove,
			Err:  fmt.Errorf("%w: %s leaves the king in check", domain.ErrIllegalMove, uci),
		}
	}

	s.moves = append(s.moves, m.UCI())
	s.updateOutcome()

	s.log.Debug("game.move", "id", s.id, "move", m.UCI(), "ply", len(s.moves), "fen", s.board.FEN())
	if s.outcome.Finished() {
		s.log.Info("game.over", "id", s.id, "outcome", s.outcome, "plies", len(s.moves))
	}
	return nil
}

// EngineTurn reports whether the engine should move now.
func (s *Session) EngineTurn() bool {
	return s.mode == domain.ModeEngine && !s.outcome.Finished() && s.SideToMove() != s.humanSide
}

// EnginePosition is the snapshot handed to the engine.
func (s *Session) EnginePosition() domain.Position {
	return domain.Position{StartFEN: s.startFEN, Moves: s.Moves()}
}

// ApplyEngineMove plays the engine's answer. It fails if it is not the engine's turn.
func (s *Session) ApplyEngineMove(uci string) error {
	if !s.EngineTurn() {
		return &domain.OpError{
			Op:   "session.engine",
			Kind: domain.KindEngine,
			Err:  fmt.Errorf("engine move %q out of turn", uci),
		}
	}
	if err := s.ApplyMove(uci); err != nil {
		return &domain.OpError{Op: "session.engine", Kind: domain.KindEngine, Err: err}
	}
	return nil
}

// EngineReply asks the engine for a move and plays it. It returns "" when it is not the
// engine's turn.
func (s *Session) EngineReply(ctx context.Context) (string, error) {
	if !s.EngineTurn() {
		return "", nil
	}

	move, err := s.engine.BestMove(ctx, s.EnginePosition())
	if err != nil {
		s.log.Error("engine.error", "id", s.id, "err", err)
		return "", err
	}
	if err := s.ApplyEngineMove(move); err != nil {
		return "", err
	}
	return move, nil
}

// Play applies the human move and, when playing the engine, the engine's reply.
func (s *Session) Play(ctx context.Context, uci string) (string, error) {
	if s.EngineTurn() {
		return "", &domain.OpError{
			Op:   "session.play",
			Kind: domain.KindIllegalMove,
			Err:  fmt.Errorf("%w: waiting for the engine", domain.ErrIllegalMove),
		}
	}
	if err := s.ApplyMove(uci); err != nil {
		return "", err
	}
	return s.EngineReply(ctx)
}

func (s *Session) updateOutcome() {
	switch {
	case !s.board.HasLegalMoves():
		switch {
		case !s.board.InCheck():
			s.outcome = domain.OutcomeStalemate
		case s.board.SideToMove() == board.White:
			s.outcome = domain.OutcomeBlackWins
		default:
			s.outcome = domain.OutcomeWhiteWins
		}
	case s.board.HalfmoveClock() >= fiftyMoveLimit:
		s.outcome = domain.OutcomeFiftyMove
	default:
		s.outcome = domain.OutcomeOngoing
	}
}

// Record snapshots the game for persistence.
func (s *Session) Record() domain.GameRecord {
	start := s.startFEN
	if start == "" {
		start = board.StartFEN
	}

	rec := domain.GameRecord{
		ID:        s.id,
		StartedAt: s.startedAt,
		EndedAt:   s.now(),
		Mode:      s.mode,
		StartFEN:  start,
		Moves:     s.Moves(),
		FinalFEN:  s.board.FEN(),
		Outcome:   s.outcome,
	}
	if rec.Moves == nil {
		rec.Moves = []string{}
	}
	if s.mode == domain.ModeEngine {
		rec.HumanSide = s.humanSide
		rec.Engine = s.engineName
	}
	return rec
}
