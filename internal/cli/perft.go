package cli

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/Irokanade/iro-chess-gui/internal/board"
	"github.com/Irokanade/iro-chess-gui/internal/domain"
)

func perftCmd() *cobra.Command {
	var fen string
	var divide bool
	var workers int

	c := &cobra.Command{
		Use:   "perft <depth>",
		Short: "Count leaf nodes of the legal move tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			depth, err := strconv.Atoi(args[0])
			if err != nil || depth < 1 {
				return &domain.OpError{Op: "cli.perft", Kind: domain.KindInvalidConfig, Err: fmt.Errorf("depth must be a positive integer, got %q", args[0])}
			}

			b := board.NewBoard()
			if fen != "" {
				b, err = board.ParseFEN(fen)
				if err != nil {
					return &domain.OpError{Op: "cli.perft", Kind: domain.KindInvalidConfig, Err: err}
				}
			}

			start := time.Now()
			entries, err := b.DivideParallel(cmd.Context(), depth, workers)
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			out := cmd.OutOrStdout()
			if divide {
				for _, e := range entries {
					fmt.Fprintf(out, "%s: %d\n", e.Move.UCI(), e.Nodes)
				}
				fmt.Fprintln(out)
			}
			printPerftSummary(out, board.TotalNodes(entries), elapsed)
			return nil
		},
	}

	c.Flags().StringVar(&fen, "fen", "", "Position to search (default: standard start)")
	c.Flags().BoolVar(&divide, "divide", false, "Print the node count below each root move")
	c.Flags().IntVar(&workers, "workers", 0, "Goroutines for root moves (0: one per CPU)")
	return c
}

func printPerftSummary(w io.Writer, nodes uint64, elapsed time.Duration) {
	fmt.Fprintf(w, "Nodes: %d\n", nodes)
	fmt.Fprintf(w, "Time:  %s\n", elapsed.Round(time.Millisecond))
	if secs := elapsed.Seconds(); secs > 0 {
		fmt.Fprintf(w, "NPS:   %.0f\n", float64(nodes)/secs)
	}
}
