// Package fsworkspace scaffolds an iro workspace on disk.
package fsworkspace

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/Irokanade/iro-chess-gui/internal/domain"
	"github.com/Irokanade/iro-chess-gui/internal/infra/config"
	"github.com/Irokanade/iro-chess-gui/internal/ports"
)

const gitignoreHeader = "# iro"

// gitignoreEntries lists what iro keeps out of version control. The games directory is
// included only when it lives inside the workspace.
func gitignoreEntries(root, gamesDir string) []string {
	var entries []string
	rel := gamesDir
	if filepath.IsAbs(rel) {
		r, err := filepath.Rel(root, rel)
		if err != nil {
			r = ".."
		}
		rel = r
	}
	rel = filepath.ToSlash(filepath.Clean(rel))
	if rel != "." && rel != ".." && !strings.HasPrefix(rel, "../") {
		entries = append(entries, rel+"/")
	}
	return append(entries, ".iro/")
}

type Initializer struct{}

func NewInitializer() *Initializer {
	return &Initializer{}
}

var _ ports.WorkspaceInitializer = (*Initializer)(nil)

// Init creates the workspace layout under spec.Root. Existing template files are kept unless
// force is set. The games directory follows paths.games_dir of the resulting iro.yaml.
func (i *Initializer) Init(spec domain.WorkspaceSpec, force bool) error {
	root := filepath.Clean(spec.Root)

	err := fs.WalkDir(templatesFS, "templates", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		return writeTemplate(root, p, force)
	})
	if err != nil {
		return err
	}

	// an unreadable iro.yaml falls back to the default games dir
	cfg, _ := config.Load(filepath.Join(root, "iro.yaml"))
	gamesDir := cfg.Paths.GamesDir
	if !filepath.IsAbs(gamesDir) {
		gamesDir = filepath.Join(root, gamesDir)
	}

	dirs := []string{
		gamesDir,
		filepath.Join(root, ".iro", "logs"),
		filepath.Join(root, "engine", "linux"),
		filepath.Join(root, "engine", "mac"),
		filepath.Join(root, "engine", "windows"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return &domain.OpError{Op: "fsworkspace.mkdir", Kind: domain.KindExecution, Path: d, Err: err}
		}
	}

	if err := ensureGitignore(root, gitignoreEntries(root, gamesDir)); err != nil {
		return &domain.OpError{Op: "fsworkspace.gitignore", Kind: domain.KindExecution, Path: root, Err: err}
	}
	return nil
}

func writeTemplate(root, name string, force bool) error {
	dst := filepath.Join(root, filepath.FromSlash(strings.TrimPrefix(name, "templates/")))

	if !force {
		if _, err := os.Stat(dst); err == nil {
			return nil
		}
	}

	b, err := fs.ReadFile(templatesFS, name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(dst, b, 0o644); err != nil {
		return &domain.OpError{Op: "fsworkspace.template", Kind: domain.KindExecution, Path: dst, Err: err}
	}
	return nil
}

// ensureGitignore adds entries to .gitignore, creating it if needed. Lines already present
// are not repeated.
func ensureGitignore(root string, entries []string) error {
	path := filepath.Join(root, ".gitignore")

	b, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	existing := string(b)

	present := map[string]bool{}
	for _, line := range strings.Split(existing, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			present[trimmed] = true
		}
	}

	var missing []string
	for _, e := range entries {
		if !present[e] {
			missing = append(missing, e)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	var out strings.Builder
	out.WriteString(existing)
	if existing != "" {
		if !strings.HasSuffix(existing, "\n") {
			out.WriteByte('\n')
		}
		out.WriteByte('\n')
	}
	if !present[gitignoreHeader] {
		out.WriteString(gitignoreHeader + "\n")
	}
	out.WriteString(strings.Join(missing, "\n") + "\n")

	return os.WriteFile(path, []byte(out.String()), 0o644)
}
