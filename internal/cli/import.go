package cli

import (
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/quizimport/internal/console"
	"github.com/mesh-intelligence/quizimport/internal/importer"
	"github.com/mesh-intelligence/quizimport/internal/store"
	"github.com/mesh-intelligence/quizimport/pkg/types"
)

// runImport performs the interactive import. Conditions that end the run
// early are reported on stdout by the runner and do not change the exit code.
func (a *app) runImport(cmd *cobra.Command, args []string) error {
	cfg, err := a.storeConfig()
	if err != nil {
		return err
	}
	sourceDir, err := a.resolveSourceDir()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	r := &importer.Runner{
		Open:      func() (importer.Backend, error) { return attachBackend(cfg) },
		SourceDir: sourceDir,
		Prompt:    console.New(cmd.InOrStdin(), out),
		Out:       out,
	}

	summary, err := r.Run()
	entry := logger.WithFields(logger.Fields{
		"files":    summary.FilesFound,
		"imported": summary.QuestionsImported,
		"failed":   summary.QuestionsFailed,
		"halted":   summary.Halted,
	})
	if err != nil {
		entry.WithError(err).Info("import ended early")
		return nil
	}
	entry.Info("import finished")
	return nil
}

// attachBackend creates a backend and attaches it to cfg.
func attachBackend(cfg types.Config) (*store.Backend, error) {
	b := store.NewBackend()
	if err := b.Attach(cfg); err != nil {
		return nil, err
	}
	return b, nil
}
