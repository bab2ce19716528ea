package tui

import (
	"log/slog"

	"github.com/Irokanade/iro-chess-gui/internal/domain"
	"github.com/Irokanade/iro-chess-gui/internal/ports"
	"github.com/Irokanade/iro-chess-gui/internal/usecase"
)

type Deps struct {
	WorkspaceLocator     ports.WorkspaceLocator
	WorkspaceInitializer ports.WorkspaceInitializer

	// Engine is nil when no engine could be started; EngineErr then says why.
	Engine     ports.MoveEngine
	EngineName string
	EngineErr  error

	Games    *usecase.Games
	Config   domain.Config
	StartFEN string

	Logger *slog.Logger
	Debug  bool
}
