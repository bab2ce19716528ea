package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Irokanade/iro-chess-gui/internal/domain"
	"github.com/Irokanade/iro-chess-gui/internal/infra/logger"
	"github.com/Irokanade/iro-chess-gui/internal/usecase"
)

const playHelp = `Commands:
  <move> | move <move>  play a move in UCI notation (e2e4, e7e8q)
  board | d             show the board
  fen                   show the position as FEN
  moves                 list the moves played
  help                  show this help
  quit | exit           leave the game`

func playCmd() *cobra.Command {
	var workspace string
	var noEngine bool
	var fen string
	var side string
	var depth int
	var noSave bool

	c := &cobra.Command{
		Use:   "play",
		Short: "Play a game reading moves from standard input",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateFEN(fen); err != nil {
				return err
			}

			ws, err := loadWorkspace(workspace)
			if err != nil {
				return err
			}
			if depth > 0 {
				ws.cfg.Engine.Depth = depth
			}

			humanSide := ws.cfg.Play.HumanSide
			if side != "" {
				humanSide, err = domain.ParseSide(side)
				if err != nil {
					return &domain.OpError{Op: "cli.play", Kind: domain.KindInvalidConfig, Err: err}
				}
			}

			cleanup := setupLogging(ws.root, debugFlag(cmd))
			defer cleanup()
			log := logger.L()

			opts := usecase.SessionOptions{
				StartFEN:  fen,
				Mode:      domain.ModeTwoPlayer,
				HumanSide: humanSide,
				Logger:    log,
			}
			if !noEngine && ws.cfg.Play.Computer {
				eng, err := ws.startEngine(cmd.Context(), log)
				if err != nil {
					return err
				}
				defer func() { _ = eng.Close() }()
				opts.Mode = domain.ModeEngine
				opts.Engine = eng
				opts.EngineName = engineName(eng.Path())
			}

			s, err := usecase.NewSession(opts)
			if err != nil {
				return err
			}

			playErr := playLoop(cmd, s)

			if !noSave {
				games := usecase.NewGames(ws.store, log)
				id, err := games.Save(s.Record())
				switch {
				case errors.Is(err, usecase.ErrEmptyGame):
				case err != nil:
					fmt.Fprintf(cmd.ErrOrStderr(), "could not save game: %v\n", err)
				default:
					fmt.Fprintf(cmd.OutOrStdout(), "Saved game %s\n", id)
				}
			}
			return playErr
		},
	}

	c.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	c.Flags().BoolVar(&noEngine, "no-engine", false, "Two players at one keyboard, no engine")
	c.Flags().StringVar(&fen, "fen", "", "Starting position (default: standard start)")
	c.Flags().StringVar(&side, "side", "", "Side you play against the engine: white|black")
	c.Flags().IntVar(&depth, "depth", 0, "Engine search depth (default from iro.yaml)")
	c.Flags().BoolVar(&noSave, "no-save", false, "Do not save the game under games/")
	return c
}

// playLoop reads commands until quit, end of input, or the end of the game.
func playLoop(cmd *cobra.Command, s *usecase.Session) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if s.Mode() == domain.ModeEngine {
		fmt.Fprintf(out, "You play %s.\n", s.HumanSide())
	}
	printBoard(out, s)

	if reply, err := s.EngineReply(ctx); err != nil {
		return err
	} else if reply != "" {
		fmt.Fprintf(out, "Engine plays %s\n", reply)
		printBoard(out, s)
	}

	sc := bufio.NewScanner(cmd.InOrStdin())
	for !s.Outcome().Finished() {
		fmt.Fprint(out, "> ")
		if !sc.Scan() {
			fmt.Fprintln(out)
			break
		}

		fields := strings.Fields(strings.ToLower(sc.Text()))
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "quit", "exit":
			return nil
		case "board", "d":
			printBoard(out, s)
			continue
		case "fen":
			b := s.Board()
			fmt.Fprintln(out, b.FEN())
			continue
		case "moves":
			fmt.Fprintln(out, strings.Join(s.Moves(), " "))
			continue
		case "help", "?":
			fmt.Fprintln(out, playHelp)
			continue
		case "move":
			if len(fields) < 2 {
				fmt.Fprintln(out, "usage: move <uci>")
				continue
			}
			fields = fields[1:]
		}

		reply, err := s.Play(ctx, fields[0])
		switch {
		case domain.IsKind(err, domain.KindIllegalMove):
			fmt.Fprintf(out, "Illegal move: %s\n", fields[0])
			continue
		case err != nil:
			return err
		}
		if reply != "" {
			fmt.Fprintf(out, "Engine plays %s\n", reply)
		}
		printBoard(out, s)
	}

	if err := sc.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	if o := s.Outcome(); o.Finished() {
		fmt.Fprintln(out, o.Label())
	}
	return nil
}

func printBoard(w io.Writer, s *usecase.Session) {
	b := s.Board()
	fmt.Fprint(w, b.String())
	fmt.Fprintln(w)
}
