package cli

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Irokanade/iro-chess-gui/internal/board"
	"github.com/Irokanade/iro-chess-gui/internal/domain"
	"github.com/Irokanade/iro-chess-gui/internal/infra/fsworkspace"
	"github.com/Irokanade/iro-chess-gui/internal/infra/logger"
	"github.com/Irokanade/iro-chess-gui/internal/infra/workspacefinder"
	"github.com/Irokanade/iro-chess-gui/internal/ui/tui"
	"github.com/Irokanade/iro-chess-gui/internal/usecase"
)

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var debug bool
	var workspace string
	var noEngine bool
	var fen string

	cmd := &cobra.Command{
		Use:          "iro",
		Short:        "iro: terminal chess against a UCI engine",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateFEN(fen); err != nil {
				return err
			}

			ws, err := loadWorkspace(workspace)
			if err != nil {
				return err
			}

			cleanup := setupLogging(ws.root, debug)
			defer cleanup()
			log := logger.L()

			deps := tui.Deps{
				WorkspaceLocator:     workspacefinder.NewFinder(),
				WorkspaceInitializer: fsworkspace.NewInitializer(),
				Games:                usecase.NewGames(ws.store, log),
				Config:               ws.cfg,
				StartFEN:             fen,
				Logger:               log,
				Debug:                debug,
			}

			if !noEngine && ws.cfg.Play.Computer {
				eng, err := ws.startEngine(cmd.Context(), log)
				if err != nil {
					log.Warn("engine.unavailable", "err", err)
					deps.EngineErr = err
				} else {
					defer func() { _ = eng.Close() }()
					deps.Engine = eng
					deps.EngineName = engineName(eng.Path())
				}
			}

			return tui.Run(deps)
		},
	}

	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable verbose logging to .iro/logs/iro.log")
	cmd.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	cmd.Flags().BoolVar(&noEngine, "no-engine", false, "Start without the engine (two players only)")
	cmd.Flags().StringVar(&fen, "fen", "", "Start straight into a game from this position")

	cmd.AddCommand(
		playCmd(),
		perftCmd(),
		benchCmd(),
		magicCmd(),
		gamesCmd(),
		initCmd(),
		versionCmd(),
	)
	return cmd
}

// setupLogging starts the file logger under root. Logging problems never stop a command.
func setupLogging(root string, debug bool) func() {
	cleanup, err := logger.Setup(logger.Config{Root: root, Debug: debug})
	if err != nil || cleanup == nil {
		return func() {}
	}
	return func() { _ = cleanup() }
}

func debugFlag(cmd *cobra.Command) bool {
	v, err := cmd.Flags().GetBool("debug")
	return err == nil && v
}

func validateFEN(fen string) error {
	if strings.TrimSpace(fen) == "" {
		return nil
	}
	if _, err := board.ParseFEN(fen); err != nil {
		return &domain.OpError{Op: "cli.fen", Kind: domain.KindInvalidConfig, Err: err}
	}
	return nil
}

func engineName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), ".exe")
}
