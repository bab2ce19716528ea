package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Irokanade/iro-chess-gui/internal/infra/fsworkspace"
	"github.com/Irokanade/iro-chess-gui/internal/usecase"
)

func initCmd() *cobra.Command {
	var path string
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create an iro workspace (iro.yaml, games/, engine/)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			root := path
			if root == "" {
				wd, err := os.Getwd()
				if err != nil {
					return fmt.Errorf("get working directory: %w", err)
				}
				root = wd
			}
			root, err := filepath.Abs(root)
			if err != nil {
				return fmt.Errorf("invalid path: %w", err)
			}

			uc := usecase.NewInitWorkspace(fsworkspace.NewInitializer())
			if err := uc.Execute(root, force); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Workspace ready at %s\n", root)
			fmt.Fprintln(cmd.OutOrStdout(), "Put the engine binary under engine/<os>/ or set engine.path in iro.yaml.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "path", "p", "", "Directory to initialize (default: current directory)")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite template files that already exist")
	return cmd
}
