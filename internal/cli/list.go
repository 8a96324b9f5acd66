package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/quizimport/internal/bank"
)

func (a *app) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the question files an import would process",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := a.resolveSourceDir()
			if err != nil {
				return err
			}
			files, err := bank.Scan(dir)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: %d JSON files\n", dir, len(files))
			for i, f := range files {
				fmt.Fprintf(out, "   %d. %s (%s)\n", i+1, f.Name, f.HumanSize())
			}
			return nil
		},
	}
}
