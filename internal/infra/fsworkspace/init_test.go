package fsworkspace

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Irokanade/iro-chess-gui/internal/domain"
)

func TestInitializer_Init_CreatesWorkspaceFiles(t *testing.T) {
	tmp := t.TempDir()

	i := NewInitializer()
	if err := i.Init(domain.WorkspaceSpec{Root: tmp}, false); err != nil {
		t.Fatalf("Init error: %v", err)
	}

	assertFileExists(t, filepath.Join(tmp, "iro.yaml"))
	assertFileExists(t, filepath.Join(tmp, "engine", "README.md"))
	for _, d := range []string{"games", filepath.Join(".iro", "logs"), filepath.Join("engine", "linux"), filepath.Join("engine", "mac"), filepath.Join("engine", "windows")} {
		info, err := os.Stat(filepath.Join(tmp, d))
		if err != nil || !info.IsDir() {
			t.Fatalf("expected dir %s, err=%v", d, err)
		}
	}

	b, err := os.ReadFile(filepath.Join(tmp, "iro.yaml"))
	if err != nil {
		t.Fatalf("read iro.yaml: %v", err)
	}
	if !strings.Contains(string(b), "games_dir: games") {
		t.Fatalf("unexpected template content:\n%s", b)
	}
}

func TestInitializer_Init_SkipsExistingFilesUnlessForce(t *testing.T) {
	tmp := t.TempDir()

	cfgPath := filepath.Join(tmp, "iro.yaml")
	if err := os.WriteFile(cfgPath, []byte("custom\n"), 0o644); err != nil {
		t.Fatalf("write existing iro.yaml: %v", err)
	}

	i := NewInitializer()

	if err := i.Init(domain.WorkspaceSpec{Root: tmp}, false); err != nil {
		t.Fatalf("Init (force=false) error: %v", err)
	}

	b, err := os.ReadFile(cfgPath)
	if err != nil {
		t.Fatalf("read iro.yaml: %v", err)
	}
	if string(b) != "custom\n" {
		t.Fatalf("expected iro.yaml preserved, got %q", string(b))
	}

	if err := i.Init(domain.WorkspaceSpec{Root: tmp}, true); err != nil {
		t.Fatalf("Init (force=true) error: %v", err)
	}

	b, err = os.ReadFile(cfgPath)
	if err != nil {
		t.Fatalf("read iro.yaml after force: %v", err)
	}
	if !strings.Contains(string(b), "iro:") {
		t.Fatalf("expected iro.yaml overwritten with template, got %q", string(b))
	}
}

func TestInitializer_Init_UsesConfiguredGamesDir(t *testing.T) {
	tmp := t.TempDir()

	cfg := "iro:\n  paths:\n    games_dir: saved/games\n"
	if err := os.WriteFile(filepath.Join(tmp, "iro.yaml"), []byte(cfg), 0o644); err != nil {
		t.Fatalf("write iro.yaml: %v", err)
	}

	if err := NewInitializer().Init(domain.WorkspaceSpec{Root: tmp}, false); err != nil {
		t.Fatalf("Init error: %v", err)
	}

	if info, err := os.Stat(filepath.Join(tmp, "saved", "games")); err != nil || !info.IsDir() {
		t.Fatalf("expected configured games dir, err=%v", err)
	}
	b, err := os.ReadFile(filepath.Join(tmp, ".gitignore"))
	if err != nil {
		t.Fatalf("read .gitignore: %v", err)
	}
	if !strings.Contains(string(b), "saved/games/\n") {
		t.Fatalf("expected configured games dir ignored, got:\n%s", b)
	}
	if strings.Contains(string(b), "\ngames/\n") {
		t.Fatalf("default games dir should not be listed, got:\n%s", b)
	}
}

func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected file %s, stat err=%v", path, err)
	}
}
