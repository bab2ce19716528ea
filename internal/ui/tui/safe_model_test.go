package tui

import (
	"testing"

	"github.com/Irokanade/iro-chess-gui/internal/board"
)

func TestSafeModelRecoversUpdatePanic(t *testing.T) {
	m := newModel(Deps{})
	// a game screen without a session panics on "n"
	m.scr = screenGame

	next, cmd := wrapSafe(m, nil).Update(key("n"))
	sm, ok := next.(safeModel)
	if !ok {
		t.Fatalf("expected safeModel, got %T", next)
	}
	if cmd != nil {
		t.Fatalf("no command expected after a panic")
	}
	if sm.m.scr != screenHome || sm.m.toast != panicToast {
		t.Fatalf("expected reset to home, got screen=%d toast=%q", sm.m.scr, sm.m.toast)
	}
}

func TestSafeModelRecoversViewPanic(t *testing.T) {
	m := newModel(Deps{})
	m.scr = screenReplay
	// a ply past the recorded moves
	m.replay = replayState{positions: []board.Board{board.NewBoard(), board.NewBoard()}, ply: 1}

	if got := wrapSafe(m, nil).View(); got != panicToast {
		t.Fatalf("expected panic toast, got %q", got)
	}
}
