package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/Irokanade/iro-chess-gui/internal/domain"
	"github.com/Irokanade/iro-chess-gui/internal/infra/gamestore"
	"github.com/Irokanade/iro-chess-gui/internal/infra/uci"
	"github.com/Irokanade/iro-chess-gui/internal/infra/workspacefinder"
	"github.com/Irokanade/iro-chess-gui/internal/ports"
)

type workspaceCtx struct {
	root  string
	found bool
	cfg   domain.Config

	store ports.GameStore
}

// loadWorkspace opens the workspace named by the flag, or the one around the working directory.
// Without a workspace the working directory and the default config are used, so games still
// land in ./games.
func loadWorkspace(workspaceFlag string) (*workspaceCtx, error) {
	root, found, err := resolveWorkspaceRoot(workspaceFlag)
	if err != nil {
		return nil, err
	}

	cfg := domain.DefaultConfig()
	if found {
		cfg, err = workspacefinder.LoadConfig(root)
		if err != nil {
			return nil, err
		}
	}

	return &workspaceCtx{
		root:  root,
		found: found,
		cfg:   cfg,
		store: gamestore.NewJSONStore(root, cfg, gamestore.WithIndex(true)),
	}, nil
}

// resolveWorkspaceRoot returns an absolute root and whether it holds an iro.yaml.
func resolveWorkspaceRoot(workspaceFlag string) (string, bool, error) {
	w := strings.TrimSpace(workspaceFlag)
	if w != "" {
		abs, err := filepath.Abs(w)
		if err != nil {
			return "", false, fmt.Errorf("invalid workspace path: %w", err)
		}
		return abs, fileExists(filepath.Join(abs, workspacefinder.ConfigFile)), nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", false, fmt.Errorf("get working directory: %w", err)
	}

	root, found := workspacefinder.NewFinder().FindRootOr(wd)
	return root, found, nil
}

// enginePath picks the configured engine, falling back to one shipped next to the executable.
func (ws *workspaceCtx) enginePath() string {
	p := uci.ResolveEnginePath(ws.root, ws.cfg.Engine.Path)
	if fileExists(p) || ws.cfg.Engine.Path != "" {
		return p
	}

	exe, err := os.Executable()
	if err != nil {
		return p
	}
	if alt := uci.ResolveEnginePath(filepath.Dir(exe), ""); fileExists(alt) {
		return alt
	}
	return p
}

// startEngine launches the engine with the workspace settings. The caller closes it.
func (ws *workspaceCtx) startEngine(ctx context.Context, log *slog.Logger) (*uci.Client, error) {
	c := uci.New(ws.enginePath(),
		uci.WithDepth(ws.cfg.Engine.Depth),
		uci.WithMoveTimeout(ws.cfg.Engine.MoveTimeout),
		uci.WithLogger(log),
	)
	if err := c.Start(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
