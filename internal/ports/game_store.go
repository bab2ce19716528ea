package ports

import "github.com/Irokanade/iro-chess-gui/internal/domain"

// GameStore persists finished or abandoned games.
type GameStore interface {
	SaveGame(game domain.GameRecord) (id string, err error)
	ListGames() ([]domain.GameSummary, error)
	LoadGame(id string) (domain.GameRecord, error)
	// QueryGame evaluates a JSONPath expression against the stored record.
	QueryGame(id, expr string) (any, error)
}
