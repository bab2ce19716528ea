// Package tui is the interactive terminal front end: a menu, a playable board, and a browser
// for saved games.
package tui

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Irokanade/iro-chess-gui/internal/domain"
)

type screen int

const (
	screenHome screen = iota
	screenGame
	screenGames
	screenReplay
)

type menuAction int

const (
	actionPlayWhite menuAction = iota
	actionPlayBlack
	actionTwoPlayer
	actionSavedGames
	actionInitWorkspace
	actionQuit
)

type menuItem struct {
	title  string
	desc   string
	action menuAction
}

func (m menuItem) Title() string       { return m.title }
func (m menuItem) Description() string { return m.desc }
func (m menuItem) FilterValue() string { return m.title }

type model struct {
	theme Theme
	deps  Deps
	log   *slog.Logger

	scr    screen
	menu   list.Model
	width  int
	height int
	toast  string

	workspaceFound bool
	workspaceRoot  string

	game   gameState
	games  list.Model
	replay replayState
}

func Run(deps Deps) error {
	m := newModel(deps)
	p := tea.NewProgram(wrapSafe(m, m.log), tea.WithAltScreen())
	final, err := p.Run()

	// a game still on screen is saved on the way out
	if sm, ok := final.(safeModel); ok {
		sm.m.stopEngine()
		if rec, ok := sm.m.unsavedRecord(); ok && deps.Games != nil {
			if _, serr := deps.Games.Save(rec); serr != nil {
				m.log.Error("game.save.on_exit.failed", "err", serr)
			}
		}
	}
	return err
}

func newModel(deps Deps) model {
	log := deps.Logger
	if log == nil {
		log = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	l := list.New(menuItems(deps), list.NewDefaultDelegate(), 0, 0)
	l.Title = "iro chess"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	g := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	g.Title = "Saved games"
	g.SetShowStatusBar(true)
	g.SetFilteringEnabled(true)
	g.SetShowHelp(false)

	m := model{
		theme: DefaultTheme(),
		deps:  deps,
		log:   log,
		scr:   screenHome,
		menu:  l,
		games: g,
		game:  newGameState(),
	}

	if deps.EngineErr != nil {
		m.toast = "Engine unavailable: " + userMessage(deps.EngineErr)
	}

	wd, err := os.Getwd()
	if err == nil && deps.WorkspaceLocator != nil {
		root, findErr := deps.WorkspaceLocator.FindRoot(wd)
		if findErr == nil {
			m.workspaceFound = true
			m.workspaceRoot = root
		}
	}

	return m
}

func menuItems(deps Deps) []list.Item {
	var items []list.Item
	if deps.Engine != nil {
		items = append(items,
			menuItem{"Play white", "You move first against the engine", actionPlayWhite},
			menuItem{"Play black", "The engine opens the game", actionPlayBlack},
		)
	}
	items = append(items,
		menuItem{"Two players", "Both sides share this terminal", actionTwoPlayer},
		menuItem{"Saved games", "Browse and replay recorded games", actionSavedGames},
		menuItem{"Init workspace", "Create iro.yaml, games/ and engine/ here", actionInitWorkspace},
		menuItem{"Quit", "Exit iro", actionQuit},
	)
	return items
}

// Init jumps straight into a game when a starting position was given on the command line.
func (m model) Init() tea.Cmd {
	if m.deps.StartFEN == "" {
		return nil
	}
	if m.deps.Config.Play.Computer && m.deps.Engine != nil {
		return func() tea.Msg { return newGameMsg{mode: domain.ModeEngine, side: m.deps.Config.Play.HumanSide} }
	}
	return func() tea.Msg { return newGameMsg{mode: domain.ModeTwoPlayer, side: domain.SideWhite} }
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.menu.SetSize(msg.Width-4, msg.Height-12)
		m.games.SetSize(msg.Width-4, msg.Height-10)
		return m, nil

	case workspaceRefreshedMsg:
		m.workspaceFound = msg.found
		m.workspaceRoot = msg.root
		return m, nil

	case initWorkspaceDoneMsg:
		if msg.err != nil {
			m.toast = userMessage(msg.err)
			return m, nil
		}
		m.toast = "Workspace ready at " + msg.root
		return m, cmdRefreshWorkspace(m.deps)

	case newGameMsg:
		cmd := m.startGame(msg.mode, msg.side)
		return m, cmd

	case engineMoveMsg:
		return m.handleEngineMove(msg)

	case gameSavedMsg:
		if msg.err != nil {
			m.toast = userMessage(msg.err)
			return m, nil
		}
		m.toast = "Saved game " + shortID(msg.id)
		return m, nil

	case gamesLoadedMsg:
		if msg.err != nil {
			m.toast = userMessage(msg.err)
			return m, nil
		}
		cmd := m.games.SetItems(gameItems(msg.games))
		m.scr = screenGames
		return m, cmd

	case gameLoadedMsg:
		if msg.err != nil {
			m.toast = userMessage(msg.err)
			return m, nil
		}
		m.replay = newReplayState(msg)
		m.scr = screenReplay
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m.quit()
		}
	}

	switch m.scr {
	case screenGame:
		return m.updateGame(msg)
	case screenGames:
		return m.updateGames(msg)
	case screenReplay:
		return m.updateReplay(msg)
	default:
		return m.updateHome(msg)
	}
}

// quit leaves saving an unfinished game to Run, which sees the final model.
func (m model) quit() (tea.Model, tea.Cmd) {
	m.stopEngine()
	return m, tea.Quit
}

func (m model) updateHome(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "q":
			return m.quit()
		case "enter":
			it, ok := m.menu.SelectedItem().(menuItem)
			if !ok {
				return m, nil
			}
			m.toast = ""
			var cmd tea.Cmd
			switch it.action {
			case actionPlayWhite:
				cmd = m.startGame(domain.ModeEngine, domain.SideWhite)
			case actionPlayBlack:
				cmd = m.startGame(domain.ModeEngine, domain.SideBlack)
			case actionTwoPlayer:
				cmd = m.startGame(domain.ModeTwoPlayer, domain.SideWhite)
			case actionSavedGames:
				return m, cmdLoadGames(m.deps.Games)
			case actionInitWorkspace:
				return m, cmdInitWorkspaceHere(m.deps)
			case actionQuit:
				return m.quit()
			}
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.menu, cmd = m.menu.Update(msg)
	return m, cmd
}

func (m model) View() string {
	wrap := lipgloss.NewStyle().Padding(1, 2)
	header := m.theme.Title.Render("iro chess") + "\n" +
		m.theme.Subtitle.Render("Terminal chess against a UCI engine") + "\n"

	var body string
	switch m.scr {
	case screenHome:
		body = m.viewHome()
	case screenGame:
		body = m.viewGame()
	case screenGames:
		body = m.theme.Card.Render(m.games.View()) + "\n" +
			m.theme.Help.Render("↑/↓ navigate • enter replay • / search • esc back")
	case screenReplay:
		body = m.viewReplay()
	default:
		body = "unknown state"
	}

	if m.toast != "" {
		body += "\n\n" + m.theme.Toast.Render(m.toast)
	}
	return wrap.Render(header + "\n" + body)
}

func (m model) viewHome() string {
	var banner string
	if m.workspaceFound {
		banner = m.theme.Help.Render(fmt.Sprintf("Workspace: %s", m.workspaceRoot))
	} else {
		banner = m.theme.Card.Render("⚠ No workspace found.\n\nGames are saved under ./games. Choose Init workspace to create iro.yaml here.")
	}
	if m.deps.Engine != nil && m.deps.EngineName != "" {
		banner += "\n" + m.theme.Help.Render("Engine: "+m.deps.EngineName)
	}

	help := m.theme.Help.Render("↑/↓ navigate • enter open • q quit")
	return banner + "\n\n" + m.theme.Card.Render(m.menu.View()) + "\n" + help
}
