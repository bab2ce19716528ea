package usecase

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/Irokanade/iro-chess-gui/internal/board"
	"github.com/Irokanade/iro-chess-gui/internal/domain"
	"github.com/Irokanade/iro-chess-gui/internal/ports"
)

// ErrEmptyGame is returned when saving a game in which no move was played.
var ErrEmptyGame = errors.New("no moves to save")

// Games saves and browses recorded games.
type Games struct {
	store ports.GameStore
	log   *slog.Logger
}

func NewGames(store ports.GameStore, log *slog.Logger) *Games {
	if log == nil {
		log = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &Games{store: store, log: log}
}

// Save persists a game record, usually Session.Record. Games without moves are not saved.
func (uc *Games) Save(rec domain.GameRecord) (string, error) {
	if len(rec.Moves) == 0 {
		return "", ErrEmptyGame
	}

	id, err := uc.store.SaveGame(rec)
	if err != nil {
		uc.log.Error("game.save.failed", "id", rec.ID, "err", err)
		return "", err
	}
	uc.log.Info("game.saved", "id", id, "outcome", rec.Outcome, "plies", len(rec.Moves))
	return id, nil
}

func (uc *Games) List() ([]domain.GameSummary, error) {
	return uc.store.ListGames()
}

func (uc *Games) Show(id string) (domain.GameRecord, error) {
	return uc.store.LoadGame(id)
}

func (uc *Games) Query(id, expr string) (any, error) {
	return uc.store.QueryGame(id, expr)
}

// Replay plays a recorded game from its start position and returns the final board.
func Replay(rec domain.GameRecord) (board.Board, error) {
	positions, err := ReplayPositions(rec)
	if err != nil {
		return board.Board{}, err
	}
	return positions[len(positions)-1], nil
}

// ReplayPositions returns the board before the first move and after every move of rec.
func ReplayPositions(rec domain.GameRecord) ([]board.Board, error) {
	b := board.NewBoard()
	if rec.StartFEN != "" {
		parsed, err := board.ParseFEN(rec.StartFEN)
		if err != nil {
			return nil, &domain.OpError{Op: "games.replay", Kind: domain.KindInvalidConfig, Err: err}
		}
		b = parsed
	}

	positions := make([]board.Board, 0, len(rec.Moves)+1)
	positions = append(positions, b)
	for i, uci := range rec.Moves {
		m, err := b.ParseMove(uci)
		if err == nil && !b.MakeMove(m, board.AllMoves) {
			err = board.ErrIllegalMove
		}
		if err != nil {
			return nil, &domain.OpError{
				Op:   "games.replay",
				Kind: domain.KindIllegalMove,
				Err:  fmt.Errorf("ply %d (%s): %w", i+1, uci, err),
			}
		}
		positions = append(positions, b)
	}
	return positions, nil
}
