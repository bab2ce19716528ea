package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Irokanade/iro-chess-gui/internal/board"
	"github.com/Irokanade/iro-chess-gui/internal/domain"
)

type gameItem struct {
	sum domain.GameSummary
}

func (g gameItem) Title() string {
	return fmt.Sprintf("%s  %s", g.sum.StartedAt.Local().Format("2006-01-02 15:04"), outcomeText(g.sum.Outcome))
}

func (g gameItem) Description() string {
	return fmt.Sprintf("%s • %d plies • %s", modeText(g.sum.Mode), g.sum.Moves, clampString(g.sum.File, 40))
}

func (g gameItem) FilterValue() string { return g.sum.ID + " " + g.sum.File }

func gameItems(games []domain.GameSummary) []list.Item {
	items := make([]list.Item, 0, len(games))
	for _, g := range games {
		items = append(items, gameItem{sum: g})
	}
	return items
}

func outcomeText(o domain.Outcome) string {
	if !o.Finished() {
		return "unfinished"
	}
	return o.Label()
}

func modeText(md domain.Mode) string {
	if md == domain.ModeTwoPlayer {
		return "two players"
	}
	return "vs engine"
}

func (m model) updateGames(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && m.games.FilterState() != list.Filtering {
		switch km.String() {
		case "esc", "q":
			m.scr = screenHome
			return m, nil
		case "enter":
			it, ok := m.games.SelectedItem().(gameItem)
			if !ok {
				return m, nil
			}
			return m, cmdLoadGame(m.deps.Games, it.sum.ID)
		}
	}

	var cmd tea.Cmd
	m.games, cmd = m.games.Update(msg)
	return m, cmd
}

// replayState steps through the positions of a saved game.
type replayState struct {
	rec       domain.GameRecord
	positions []board.Board
	ply       int
}

func newReplayState(msg gameLoadedMsg) replayState {
	return replayState{rec: msg.rec, positions: msg.positions, ply: len(msg.positions) - 1}
}

func (m model) updateReplay(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	last := len(m.replay.positions) - 1

	switch km.String() {
	case "left", "h":
		if m.replay.ply > 0 {
			m.replay.ply--
		}
	case "right", "l":
		if m.replay.ply < last {
			m.replay.ply++
		}
	case "home", "g":
		m.replay.ply = 0
	case "end", "G":
		m.replay.ply = last
	case "esc", "q":
		m.scr = screenGames
	}
	return m, nil
}

func (m model) viewReplay() string {
	r := m.replay
	if len(r.positions) == 0 {
		return "no game loaded"
	}

	hl := noHighlights()
	if r.ply > 0 {
		uci := r.rec.Moves[r.ply-1]
		hl.lastFrom, _ = board.ParseSquare(uci[0:2])
		hl.lastTo, _ = board.ParseSquare(uci[2:4])
	}
	flipped := r.rec.Mode == domain.ModeEngine && r.rec.HumanSide == domain.SideBlack
	grid := renderBoard(m.theme, r.positions[r.ply], flipped, hl)

	var side strings.Builder
	fmt.Fprintf(&side, "Game %s\n", shortID(r.rec.ID))
	fmt.Fprintf(&side, "%s", r.rec.StartedAt.Local().Format("2006-01-02 15:04"))
	if r.rec.Engine != "" {
		fmt.Fprintf(&side, " • %s", r.rec.Engine)
	}
	side.WriteString("\n\n")
	fmt.Fprintf(&side, "Ply %d / %d\n", r.ply, len(r.positions)-1)
	if r.rec.Outcome.Finished() {
		side.WriteString(m.theme.Banner.Render(r.rec.Outcome.Label()) + "\n")
	}
	side.WriteString("\n")

	shown := r.rec.Moves[:r.ply]
	toMove := domain.SideWhite
	if r.positions[r.ply].SideToMove() == board.Black {
		toMove = domain.SideBlack
	}
	side.WriteString(formatMoves(shown, toMove))

	panel := lipgloss.NewStyle().PaddingLeft(3).Render(side.String())
	help := m.theme.Help.Render("←/→ step • g/G first/last • esc back")
	return lipgloss.JoinHorizontal(lipgloss.Top, grid, panel) + "\n" + help
}
