package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/Irokanade/iro-chess-gui/internal/infra/logger"
	"github.com/Irokanade/iro-chess-gui/internal/usecase"
)

func gamesCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "games",
		Short: "Browse saved games",
	}

	c.AddCommand(gamesListCmd(), gamesShowCmd())
	return c
}

func gamesListCmd() *cobra.Command {
	var workspace string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved games, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(workspace)
			if err != nil {
				return err
			}

			list, err := usecase.NewGames(ws.store, logger.L()).List()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(list) == 0 {
				fmt.Fprintln(out, "(no saved games)")
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tSTARTED\tMODE\tPLIES\tOUTCOME")
			for _, g := range list {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
					shortGameID(g.ID), g.StartedAt.Local().Format(time.DateTime), g.Mode, g.Moves, g.Outcome)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	return cmd
}

func gamesShowCmd() *cobra.Command {
	var workspace string
	var path string
	var showBoard bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print a saved game as JSON (id, file name or unique id prefix)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := loadWorkspace(workspace)
			if err != nil {
				return err
			}
			games := usecase.NewGames(ws.store, logger.L())
			out := cmd.OutOrStdout()

			if path != "" {
				v, err := games.Query(args[0], path)
				if err != nil {
					return err
				}
				return writeJSON(out, v)
			}

			rec, err := games.Show(args[0])
			if err != nil {
				return err
			}
			if showBoard {
				b, err := usecase.Replay(rec)
				if err != nil {
					return err
				}
				fmt.Fprint(out, b.String())
				fmt.Fprintln(out)
				if rec.Outcome.Finished() {
					fmt.Fprintln(out, rec.Outcome.Label())
				}
				return nil
			}
			return writeJSON(out, rec)
		},
	}

	cmd.Flags().StringVarP(&workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	cmd.Flags().StringVar(&path, "path", "", "JSONPath expression to extract (e.g. $.moves[0])")
	cmd.Flags().BoolVar(&showBoard, "board", false, "Replay the game and print the final position")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func shortGameID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
