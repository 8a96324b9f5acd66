// Package cli implements the quizimport command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	sourceDir string
	database  string
	driver    string
	logLevel  string
}

// app carries the state shared by the commands of one root command.
type app struct {
	flags rootFlags
	v     *viper.Viper
}

// NewRootCmd creates the top-level "quizimport" command. Run without a
// subcommand it performs the interactive import.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "quizimport",
		Short: "Import JSON question banks into the quiz database",
		Long: `quizimport scans a directory of JSON question banks and loads every
question into the quiz database, filed under a category and chapter chosen
interactively for each file or once for the whole run.`,
		Version: Version,
		// Do not print usage on errors returned by subcommands.
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.prepare(cmd)
		},
		RunE: a.runImport,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: ./.quizimport or the user config dir)")
	pf.StringVar(&a.flags.sourceDir, "source-dir", "", "directory scanned for question files (default: ./json)")
	pf.StringVar(&a.flags.database, "database", "", "SQLite file or PostgreSQL DSN (default: ./database.sqlite)")
	pf.StringVar(&a.flags.driver, "driver", "", "database driver: sqlite or postgres")
	pf.StringVar(&a.flags.logLevel, "log-level", "", "diagnostic log level (default: warn)")

	root.AddCommand(newVersionCmd())
	root.AddCommand(a.newInitCmd())
	root.AddCommand(a.newListCmd())
	root.AddCommand(a.newCheckCmd())

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		os.Exit(exitUserError)
	}
	os.Exit(exitSuccess)
}

// prepare loads .env, config.yaml and the logging setup before any command runs.
func (a *app) prepare(cmd *cobra.Command) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	configDir, err := a.resolveConfigDir()
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}

	v, err := loadConfig(configDir, cmd.Flags())
	if err != nil {
		return err
	}
	a.v = v

	return configureLogging(v.GetString(cfgKeyLogLevel), cmd.ErrOrStderr())
}
