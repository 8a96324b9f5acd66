package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/quizimport/internal/bank"
)

func (a *app) newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Parse every question file without touching the database",
		Long: `check reads each question file the import would process, converts every
question, and reports which files or questions would be rejected. It exits
with an error when any file cannot be parsed.`,
		Args: cobra.NoArgs,
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
			var rejected, questions, failed int
			for _, f := range files {
				report := bank.Check(f)
				if report.ParseErr != nil {
					rejected++
					fmt.Fprintf(out, "%s: rejected: %v\n", f.Name, report.ParseErr)
					continue
				}
				questions += report.Valid
				failed += len(report.Failures)
				fmt.Fprintf(out, "%s: %d questions, %d ok, %d failing\n",
					f.Name, report.Total, report.Valid, len(report.Failures))
				for _, qe := range report.Failures {
					fmt.Fprintf(out, "   question %d: %v\n", qe.Index, qe.Err)
				}
			}

			fmt.Fprintf(out, "\n%d files, %d rejected, %d questions ok, %d failing\n",
				len(files), rejected, questions, failed)
			if rejected > 0 {
				return fmt.Errorf("%d of %d files rejected", rejected, len(files))
			}
			return nil
		},
	}
}
