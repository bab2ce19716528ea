package domain

import (
	"errors"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Engine.Depth != 6 {
		t.Fatalf("expected depth 6, got %d", cfg.Engine.Depth)
	}
	if cfg.Engine.MoveTimeout != 30*time.Second {
		t.Fatalf("unexpected move timeout %s", cfg.Engine.MoveTimeout)
	}
	if !cfg.Play.Computer || cfg.Play.HumanSide != SideWhite {
		t.Fatalf("expected to play white against the computer by default")
	}
	if cfg.Paths.GamesDir != "games" {
		t.Fatalf("unexpected games dir %q", cfg.Paths.GamesDir)
	}
}

func TestParseSide(t *testing.T) {
	for in, want := range map[string]Side{"white": SideWhite, "W": SideWhite, " black ": SideBlack, "b": SideBlack} {
		got, err := ParseSide(in)
		if err != nil {
			t.Fatalf("ParseSide(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseSide(%q)=%q want %q", in, got, want)
		}
	}

	if _, err := ParseSide("red"); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
	if SideWhite.Other() != SideBlack || SideBlack.Other() != SideWhite {
		t.Fatalf("Other should flip sides")
	}
}

func TestOutcomeFinished(t *testing.T) {
	if OutcomeOngoing.Finished() || Outcome("").Finished() {
		t.Fatalf("ongoing games are not finished")
	}
	for _, o := range []Outcome{OutcomeWhiteWins, OutcomeBlackWins, OutcomeStalemate, OutcomeFiftyMove} {
		if !o.Finished() {
			t.Fatalf("%s should be finished", o)
		}
		if o.Label() == OutcomeOngoing.Label() {
			t.Fatalf("%s needs its own label", o)
		}
	}
}
