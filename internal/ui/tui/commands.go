package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Irokanade/iro-chess-gui/internal/domain"
	"github.com/Irokanade/iro-chess-gui/internal/ports"
	"github.com/Irokanade/iro-chess-gui/internal/usecase"
)

func cmdRefreshWorkspace(deps Deps) tea.Cmd {
	return func() tea.Msg {
		wd, err := os.Getwd()
		if err != nil {
			return workspaceRefreshedMsg{cwd: "", found: false, err: fmt.Errorf("getwd: %w", err)}
		}
		if deps.WorkspaceLocator == nil {
			return workspaceRefreshedMsg{cwd: wd, found: false, err: errors.New("WorkspaceLocator is nil")}
		}

		root, findErr := deps.WorkspaceLocator.FindRoot(wd)
		if findErr != nil {
			return workspaceRefreshedMsg{cwd: wd, found: false, err: findErr}
		}

		return workspaceRefreshedMsg{cwd: wd, found: true, root: root, err: nil}
	}
}

func cmdInitWorkspaceHere(deps Deps) tea.Cmd {
	return func() tea.Msg {
		wd, err := os.Getwd()
		if err != nil {
			return initWorkspaceDoneMsg{err: fmt.Errorf("getwd: %w", err)}
		}
		if deps.WorkspaceInitializer == nil {
			return initWorkspaceDoneMsg{root: wd, err: errors.New("WorkspaceInitializer is nil")}
		}

		err = usecase.NewInitWorkspace(deps.WorkspaceInitializer).Execute(wd, false)
		return initWorkspaceDoneMsg{root: wd, err: err}
	}
}

// cmdEngineMove asks the engine for a move off the UI goroutine. It only sees a snapshot of
// the position; the reply is applied when the message comes back.
func cmdEngineMove(ctx context.Context, eng ports.MoveEngine, gameID string, pos domain.Position, log *slog.Logger) tea.Cmd {
	return func() tea.Msg {
		move, err := eng.BestMove(ctx, pos)
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Error("engine.move.failed", "game", gameID, "err", err)
		}
		return engineMoveMsg{gameID: gameID, move: move, err: err}
	}
}

func cmdSaveGame(games *usecase.Games, rec domain.GameRecord) tea.Cmd {
	return func() tea.Msg {
		if games == nil {
			return gameSavedMsg{err: errors.New("no game store")}
		}
		id, err := games.Save(rec)
		return gameSavedMsg{id: id, err: err}
	}
}

func cmdLoadGames(games *usecase.Games) tea.Cmd {
	return func() tea.Msg {
		if games == nil {
			return gamesLoadedMsg{err: errors.New("no game store")}
		}
		list, err := games.List()
		return gamesLoadedMsg{games: list, err: err}
	}
}

func cmdLoadGame(games *usecase.Games, id string) tea.Cmd {
	return func() tea.Msg {
		rec, err := games.Show(id)
		if err != nil {
			return gameLoadedMsg{err: err}
		}
		positions, err := usecase.ReplayPositions(rec)
		return gameLoadedMsg{rec: rec, positions: positions, err: err}
	}
}
