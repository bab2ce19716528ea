package tui

import (
	"github.com/Irokanade/iro-chess-gui/internal/board"
	"github.com/Irokanade/iro-chess-gui/internal/domain"
)

type workspaceRefreshedMsg struct {
	cwd   string
	found bool
	root  string
	err   error
}

type initWorkspaceDoneMsg struct {
	root string
	err  error
}

// engineMoveMsg carries the engine's answer for the game with the given session id.
type engineMoveMsg struct {
	gameID string
	move   string
	err    error
}

type gameSavedMsg struct {
	id  string
	err error
}

type gamesLoadedMsg struct {
	games []domain.GameSummary
	err   error
}

// gameLoadedMsg holds a saved game and every position it went through.
type gameLoadedMsg struct {
	rec       domain.GameRecord
	positions []board.Board
	err       error
}

type newGameMsg struct {
	mode domain.Mode
	side domain.Side
}
