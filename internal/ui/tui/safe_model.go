package tui

import (
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
)

const panicToast = "Unexpected error (see logs)"

// safeModel keeps a panic in Update or View from tearing down the terminal. The game in
// progress survives so it can still be saved on exit.
type safeModel struct {
	m   model
	log *slog.Logger
}

func wrapSafe(m model, log *slog.Logger) safeModel {
	if log == nil {
		log = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return safeModel{m: m, log: log}
}

func (s safeModel) logPanic(where string, r any) {
	attrs := []any{
		"where", where,
		"panic", fmt.Sprint(r),
		"screen", int(s.m.scr),
		"stack", string(debug.Stack()),
	}
	if g := s.m.game.session; g != nil {
		attrs = append(attrs, "game", g.ID())
	}
	s.log.Error("panic.recovered", attrs...)
}

func (s safeModel) Init() tea.Cmd {
	return s.m.Init()
}

func (s safeModel) Update(msg tea.Msg) (tm tea.Model, cmd tea.Cmd) {
	defer func() {
		if r := recover(); r != nil {
			s.logPanic("tui.update", r)
			s.m.resetAfterPanic()
			tm, cmd = s, nil
		}
	}()

	inner, c := s.m.Update(msg)
	switch v := inner.(type) {
	case model:
		s.m = v
	case safeModel:
		s = v
	}
	return s, c
}

func (s safeModel) View() (out string) {
	defer func() {
		if r := recover(); r != nil {
			s.logPanic("tui.view", r)
			out = panicToast
		}
	}()
	return s.m.View()
}

// resetAfterPanic drops transient input state and returns to the menu.
func (m *model) resetAfterPanic() {
	m.stopEngine()
	m.game.promoting = false
	m.game.typing = false
	m.clearSelection()
	m.scr = screenHome
	m.toast = panicToast
}

var _ tea.Model = (*safeModel)(nil)
