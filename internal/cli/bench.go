package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/Irokanade/iro-chess-gui/internal/board"
)

type benchPosition struct {
	name  string
	fen   string
	nodes []uint64 // known perft results by depth, starting at 1
}

var benchSuite = []benchPosition{
	{"start", board.StartFEN, []uint64{20, 400, 8902, 197281, 4865609}},
	{"kiwipete", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", []uint64{48, 2039, 97862, 4085603}},
	{"position3", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", []uint64{14, 191, 2812, 43238, 674624}},
	{"position4", "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1", []uint64{6, 264, 9467, 422333}},
	{"position5", "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8", []uint64{44, 1486, 62379, 2103487}},
}

type benchResult struct {
	name    string
	depth   int
	nodes   uint64
	want    uint64
	elapsed time.Duration
}

func getProgressBar(n int, desc string, quiet bool) *progressbar.ProgressBar {
	if quiet || os.Getenv("CI") == "true" {
		return progressbar.NewOptions(n, progressbar.OptionSetVisibility(false))
	}
	return progressbar.NewOptions(n,
		progressbar.OptionSetDescription(desc),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(os.Stderr, "\n")
		}),
	)
}

func benchCmd() *cobra.Command {
	var depth int
	var workers int
	var quiet bool

	c := &cobra.Command{
		Use:   "bench",
		Short: "Run perft on reference positions and check the node counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if depth < 1 {
				return fmt.Errorf("depth must be at least 1")
			}

			bar := getProgressBar(len(benchSuite), "perft", quiet)
			var results []benchResult
			for _, p := range benchSuite {
				b := board.MustParseFEN(p.fen)
				d := min(depth, len(p.nodes))

				start := time.Now()
				entries, err := b.DivideParallel(cmd.Context(), d, workers)
				if err != nil {
					return err
				}
				results = append(results, benchResult{
					name:    p.name,
					depth:   d,
					nodes:   board.TotalNodes(entries),
					want:    p.nodes[d-1],
					elapsed: time.Since(start),
				})
				_ = bar.Add(1)
			}
			_ = bar.Finish()

			return printBench(cmd, results)
		},
	}

	c.Flags().IntVar(&depth, "depth", 4, "Perft depth (capped per position at the deepest known count)")
	c.Flags().IntVar(&workers, "workers", 0, "Goroutines for root moves (0: one per CPU)")
	c.Flags().BoolVarP(&quiet, "quiet", "q", false, "Hide the progress bar")
	return c
}

func printBench(cmd *cobra.Command, results []benchResult) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "POSITION\tDEPTH\tNODES\tTIME\tNPS\tOK")

	var total uint64
	var elapsed time.Duration
	mismatches := 0
	for _, r := range results {
		ok := "yes"
		if r.nodes != r.want {
			ok = fmt.Sprintf("no (want %d)", r.want)
			mismatches++
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%.0f\t%s\n", r.name, r.depth, r.nodes, r.elapsed.Round(time.Millisecond), nps(r.nodes, r.elapsed), ok)
		total += r.nodes
		elapsed += r.elapsed
	}
	fmt.Fprintf(tw, "total\t\t%d\t%s\t%.0f\t\n", total, elapsed.Round(time.Millisecond), nps(total, elapsed))
	if err := tw.Flush(); err != nil {
		return err
	}

	if mismatches > 0 {
		return fmt.Errorf("%d position(s) returned wrong node counts", mismatches)
	}
	return nil
}

func nps(nodes uint64, d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return float64(nodes) / d.Seconds()
}
