package workspacefinder

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Irokanade/iro-chess-gui/internal/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "iro.yaml"), []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return root
}

func TestLoadConfig_AppliesDefaults(t *testing.T) {
	// Partial config (only play)
	root := writeConfig(t, "iro:\n  play:\n    computer: false\n")

	cfg, err := LoadConfig(root)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}

	if cfg.Play.Computer != false {
		t.Fatalf("expected computer=false, got=%v", cfg.Play.Computer)
	}
	if cfg.Play.HumanSide != domain.SideWhite {
		t.Fatalf("expected default side white, got=%s", cfg.Play.HumanSide)
	}
	if cfg.Engine.Depth != 6 {
		t.Fatalf("expected default depth=6, got=%d", cfg.Engine.Depth)
	}
	if cfg.Engine.MoveTimeout != 30*time.Second {
		t.Fatalf("expected default timeout=30s, got=%s", cfg.Engine.MoveTimeout)
	}
	if cfg.Paths.GamesDir != "games" {
		t.Fatalf("expected games dir=games, got=%s", cfg.Paths.GamesDir)
	}
}

func TestLoadConfig_ParsesAllFields(t *testing.T) {
	root := writeConfig(t, `iro:
  engine:
    path: bin/stockfish
    depth: 12
    move_timeout: 1m30s
  play:
    computer: true
    human_side: black
  paths:
    games_dir: archive
`)

	cfg, err := LoadConfig(root)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}

	if cfg.Engine.Path != "bin/stockfish" {
		t.Fatalf("unexpected engine path %q", cfg.Engine.Path)
	}
	if cfg.Engine.Depth != 12 {
		t.Fatalf("unexpected depth %d", cfg.Engine.Depth)
	}
	if cfg.Engine.MoveTimeout != 90*time.Second {
		t.Fatalf("unexpected timeout %s", cfg.Engine.MoveTimeout)
	}
	if cfg.Play.HumanSide != domain.SideBlack {
		t.Fatalf("unexpected side %s", cfg.Play.HumanSide)
	}
	if cfg.Paths.GamesDir != "archive" {
		t.Fatalf("unexpected games dir %s", cfg.Paths.GamesDir)
	}
}

func TestLoadConfig_RejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"depth":   "iro:\n  engine:\n    depth: 0\n",
		"timeout": "iro:\n  engine:\n    move_timeout: soon\n",
		"side":    "iro:\n  play:\n    human_side: green\n",
		"yaml":    "iro: [\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, content))
			if !domain.IsKind(err, domain.KindInvalidConfig) {
				t.Fatalf("expected KindInvalidConfig, got: %v", err)
			}
		})
	}
}

func TestLoadConfig_Missing(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected KindNotFound, got: %v", err)
	}
	if cfg.Engine.Depth != 6 {
		t.Fatalf("defaults should still be returned")
	}
}
