package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Irokanade/iro-chess-gui/internal/board"
	"github.com/Irokanade/iro-chess-gui/internal/domain"
	"github.com/Irokanade/iro-chess-gui/internal/usecase"
)

type gameState struct {
	session *usecase.Session
	flipped bool

	cursor   board.Square
	selected board.Square
	targets  uint64

	promoting bool
	promoFrom board.Square
	promoTo   board.Square

	thinking bool
	cancel   context.CancelFunc

	lastFrom board.Square
	lastTo   board.Square

	input  textinput.Model
	typing bool

	savedPlies int
}

func newGameState() gameState {
	ti := textinput.New()
	ti.Placeholder = "e2e4"
	ti.Prompt = "move> "
	ti.CharLimit = 5

	return gameState{
		cursor:   board.E2,
		selected: board.NoSquare,
		lastFrom: board.NoSquare,
		lastTo:   board.NoSquare,
		input:    ti,
	}
}

// startGame replaces the current game. It returns the engine request when the engine opens.
func (m *model) startGame(mode domain.Mode, side domain.Side) tea.Cmd {
	m.stopEngine()

	var saveCmd tea.Cmd
	if rec, ok := m.unsavedRecord(); ok {
		saveCmd = cmdSaveGame(m.deps.Games, rec)
	}

	opts := usecase.SessionOptions{
		StartFEN:  m.deps.StartFEN,
		Mode:      mode,
		HumanSide: side,
		Logger:    m.log,
	}
	if mode == domain.ModeEngine {
		opts.Engine = m.deps.Engine
		opts.EngineName = m.deps.EngineName
	}

	s, err := usecase.NewSession(opts)
	if err != nil {
		m.toast = userMessage(err)
		return saveCmd
	}

	m.game = newGameState()
	m.game.session = s
	m.game.flipped = mode == domain.ModeEngine && side == domain.SideBlack
	if m.game.flipped {
		m.game.cursor = board.E7
	}
	m.scr = screenGame

	return tea.Batch(saveCmd, m.requestEngineMove())
}

// requestEngineMove starts the engine when it is its turn.
func (m *model) requestEngineMove() tea.Cmd {
	s := m.game.session
	if s == nil || !s.EngineTurn() || m.deps.Engine == nil {
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.game.cancel = cancel
	m.game.thinking = true
	return cmdEngineMove(ctx, m.deps.Engine, s.ID(), s.EnginePosition(), m.log)
}

func (m *model) stopEngine() {
	if m.game.cancel != nil {
		m.game.cancel()
		m.game.cancel = nil
	}
	m.game.thinking = false
}

// unsavedRecord returns the current game if it has moves that were not saved yet.
func (m model) unsavedRecord() (domain.GameRecord, bool) {
	s := m.game.session
	if s == nil || m.deps.Games == nil {
		return domain.GameRecord{}, false
	}
	rec := s.Record()
	if len(rec.Moves) == 0 || len(rec.Moves) == m.game.savedPlies {
		return domain.GameRecord{}, false
	}
	return rec, true
}

func (m model) handleEngineMove(msg engineMoveMsg) (tea.Model, tea.Cmd) {
	s := m.game.session
	if s == nil || msg.gameID != s.ID() {
		// answer for a game that is gone
		return m, nil
	}
	m.stopEngine()

	if msg.err != nil {
		if !errors.Is(msg.err, context.Canceled) {
			m.toast = userMessage(msg.err) + " (r to retry)"
		}
		return m, nil
	}

	if err := s.ApplyEngineMove(msg.move); err != nil {
		m.toast = userMessage(err) + " (r to retry)"
		return m, nil
	}
	m.markLastMove(msg.move)
	m.toast = ""
	return m, m.gameOverCmd()
}

// gameOverCmd saves a game as soon as it ends.
func (m *model) gameOverCmd() tea.Cmd {
	if !m.game.session.Outcome().Finished() {
		return nil
	}
	rec, ok := m.unsavedRecord()
	if !ok {
		return nil
	}
	m.game.savedPlies = len(rec.Moves)
	return cmdSaveGame(m.deps.Games, rec)
}

func (m *model) markLastMove(uci string) {
	if len(uci) < 4 {
		return
	}
	from, err1 := board.ParseSquare(uci[0:2])
	to, err2 := board.ParseSquare(uci[2:4])
	if err1 != nil || err2 != nil {
		return
	}
	m.game.lastFrom, m.game.lastTo = from, to
}

// engineStalled reports whether the engine owes a move but is not working on one.
func (m model) engineStalled() bool {
	s := m.game.session
	return s != nil && !s.Outcome().Finished() && s.EngineTurn() && !m.game.thinking
}

func (m model) humanToMove() bool {
	s := m.game.session
	return s != nil && !s.Outcome().Finished() && !s.EngineTurn() && !m.game.thinking
}

func (m model) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.game.typing {
			var cmd tea.Cmd
			m.game.input, cmd = m.game.input.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if m.game.typing {
		return m.updateMoveInput(km)
	}
	if m.game.promoting {
		return m.updatePromotion(km)
	}

	switch km.String() {
	case "up", "k":
		m.moveCursor(-1, 0)
	case "down", "j":
		m.moveCursor(1, 0)
	case "left", "h":
		m.moveCursor(0, -1)
	case "right", "l":
		m.moveCursor(0, 1)
	case "enter", " ":
		cmd := m.selectSquare(m.game.cursor)
		return m, cmd
	case ":", "m":
		if m.humanToMove() {
			m.game.typing = true
			m.game.input.SetValue("")
			return m, m.game.input.Focus()
		}
	case "r":
		if m.engineStalled() {
			m.toast = ""
			return m, m.requestEngineMove()
		}
	case "s":
		if rec, ok := m.unsavedRecord(); ok {
			m.game.savedPlies = len(rec.Moves)
			return m, cmdSaveGame(m.deps.Games, rec)
		}
		m.toast = "Nothing to save"
	case "n":
		s := m.game.session
		cmd := m.startGame(s.Mode(), s.HumanSide())
		return m, cmd
	case "esc":
		if m.game.selected != board.NoSquare {
			m.clearSelection()
			return m, nil
		}
		return m.leaveGame()
	case "q":
		return m.leaveGame()
	}
	return m, nil
}

func (m model) leaveGame() (tea.Model, tea.Cmd) {
	m.stopEngine()
	var cmd tea.Cmd
	if rec, ok := m.unsavedRecord(); ok {
		m.game.savedPlies = len(rec.Moves)
		cmd = cmdSaveGame(m.deps.Games, rec)
	}
	m.game = newGameState()
	m.scr = screenHome
	return m, cmd
}

func (m model) updateMoveInput(km tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch km.String() {
	case "esc":
		m.game.typing = false
		m.game.input.Blur()
		return m, nil
	case "enter":
		uci := strings.ToLower(strings.TrimSpace(m.game.input.Value()))
		m.game.typing = false
		m.game.input.Blur()
		if uci == "" {
			return m, nil
		}
		cmd := m.playHuman(uci)
		return m, cmd
	}

	var cmd tea.Cmd
	m.game.input, cmd = m.game.input.Update(km)
	return m, cmd
}

func (m model) updatePromotion(km tea.KeyMsg) (tea.Model, tea.Cmd) {
	var suffix string
	switch km.String() {
	case "q", "r", "b", "n":
		suffix = km.String()
	case "esc":
		m.game.promoting = false
		m.clearSelection()
		return m, nil
	default:
		return m, nil
	}

	m.game.promoting = false
	uci := m.game.promoFrom.String() + m.game.promoTo.String() + suffix
	cmd := m.playHuman(uci)
	return m, cmd
}

// moveCursor moves in screen directions, so the board orientation is taken into account.
func (m *model) moveCursor(dRow, dFile int) {
	if m.game.flipped {
		dRow, dFile = -dRow, -dFile
	}
	row := clamp(m.game.cursor.Row()+dRow, 0, 7)
	file := clamp(m.game.cursor.File()+dFile, 0, 7)
	m.game.cursor = board.SquareAt(file, row)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (m *model) clearSelection() {
	m.game.selected = board.NoSquare
	m.game.targets = 0
}

// selectSquare implements click-to-move: the first press picks a piece, the second a target.
func (m *model) selectSquare(sq board.Square) tea.Cmd {
	if !m.humanToMove() {
		return nil
	}
	s := m.game.session
	b := s.Board()

	if m.game.selected != board.NoSquare {
		from := m.game.selected
		switch {
		case sq == from:
			m.clearSelection()
			return nil
		case m.game.targets&sq.Bitboard() != 0:
			if s.NeedsPromotion(from, sq) {
				m.game.promoting = true
				m.game.promoFrom, m.game.promoTo = from, sq
				return nil
			}
			return m.playHuman(from.String() + sq.String())
		}
	}

	p := b.PieceAt(sq)
	if p == board.NoPiece || p.Color() != b.SideToMove() {
		m.clearSelection()
		return nil
	}

	var targets uint64
	for _, mv := range s.LegalMovesFrom(sq) {
		targets |= mv.Target().Bitboard()
	}
	if targets == 0 {
		m.toast = "That piece cannot move"
		m.clearSelection()
		return nil
	}
	m.game.selected = sq
	m.game.targets = targets
	return nil
}

// playHuman applies a human move and starts the engine's reply when it is due.
func (m *model) playHuman(uci string) tea.Cmd {
	m.clearSelection()
	if !m.humanToMove() {
		return nil
	}
	if err := m.game.session.ApplyMove(uci); err != nil {
		m.toast = userMessage(err)
		return nil
	}
	m.markLastMove(uci)
	m.toast = ""

	if over := m.gameOverCmd(); over != nil {
		return over
	}
	return m.requestEngineMove()
}

func (m model) viewGame() string {
	s := m.game.session
	if s == nil {
		return "no game"
	}
	b := s.Board()

	grid := renderBoard(m.theme, b, m.game.flipped, highlights{
		cursor:   m.game.cursor,
		selected: m.game.selected,
		targets:  m.game.targets,
		lastFrom: m.game.lastFrom,
		lastTo:   m.game.lastTo,
	})

	var side strings.Builder
	if s.Mode() == domain.ModeEngine {
		fmt.Fprintf(&side, "You play %s vs %s\n\n", s.HumanSide(), engineLabel(m.deps.EngineName))
	} else {
		side.WriteString("Two players\n\n")
	}

	switch {
	case s.Outcome().Finished():
		side.WriteString(m.theme.Banner.Render(s.Outcome().Label()))
	case m.game.thinking:
		side.WriteString("Engine is thinking…")
	default:
		turn := "White's turn"
		if s.SideToMove() == domain.SideBlack {
			turn = "Black's turn"
		}
		side.WriteString(turn)
		if b.InCheck() {
			side.WriteString(" " + m.theme.Banner.Render("Check!"))
		}
	}
	side.WriteString("\n\n")

	if m.game.promoting {
		side.WriteString(m.theme.Title.Render("Promoting to:") + " [q]ueen [r]ook [b]ishop k[n]ight\n\n")
	}

	side.WriteString(formatMoves(s.Moves(), s.SideToMove()))
	side.WriteString("\n")

	if m.game.typing {
		side.WriteString("\n" + m.game.input.View() + "\n")
	}

	panel := lipgloss.NewStyle().PaddingLeft(3).Render(side.String())
	help := m.theme.Help.Render("arrows/hjkl move • enter select • m type move • r retry engine • s save • n new game • q back")
	return lipgloss.JoinHorizontal(lipgloss.Top, grid, panel) + "\n" + help
}

func engineLabel(name string) string {
	if name == "" {
		return "the engine"
	}
	return name
}

// formatMoves numbers the move list, showing the last few moves only.
func formatMoves(moves []string, toMove domain.Side) string {
	if len(moves) == 0 {
		return "No moves yet"
	}

	// derive who moved first from parity and the side to move now
	whiteFirst := (toMove == domain.SideWhite) == (len(moves)%2 == 0)

	var lines []string
	i, num := 0, 1
	if !whiteFirst {
		lines = append(lines, fmt.Sprintf("%d. … %s", num, moves[0]))
		i, num = 1, 2
	}
	for ; i < len(moves); i += 2 {
		line := fmt.Sprintf("%d. %s", num, moves[i])
		if i+1 < len(moves) {
			line += " " + moves[i+1]
		}
		lines = append(lines, line)
		num++
	}

	const keep = 12
	if len(lines) > keep {
		lines = append([]string{"…"}, lines[len(lines)-keep:]...)
	}
	return strings.Join(lines, "\n")
}
