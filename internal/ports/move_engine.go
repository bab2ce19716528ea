package ports

import (
	"context"

	"github.com/Irokanade/iro-chess-gui/internal/domain"
)

// MoveEngine picks a move for the side to move in a position, returned in UCI notation.
type MoveEngine interface {
	BestMove(ctx context.Context, pos domain.Position) (string, error)
}
