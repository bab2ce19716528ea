package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Irokanade/iro-chess-gui/internal/board"
)

func magicCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "magic",
		Short: "Check the slider magic numbers against every blocker subset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			failed := 0
			for _, s := range []board.Slider{board.Bishop, board.Rook} {
				if err := board.ValidateMagics(s); err != nil {
					fmt.Fprintf(out, "%s: %v\n", s, err)
					failed++
					continue
				}
				fmt.Fprintf(out, "%s: ok\n", s)
			}
			if failed > 0 {
				return fmt.Errorf("%d slider table(s) have magic collisions", failed)
			}
			return nil
		},
	}
}
