package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/quizimport/internal/paths"
	"github.com/mesh-intelligence/quizimport/pkg/types"
)

// configFile holds the structure written to config.yaml.
type configFile struct {
	Driver    string              `yaml:"driver"`
	Database  string              `yaml:"database,omitempty"`
	SourceDir string              `yaml:"source_dir,omitempty"`
	LogLevel  string              `yaml:"log_level"`
	Category  types.CategoryStyle `yaml:"category"`
}

func (a *app) newInitCmd() *cobra.Command {
	var createSchema bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config and optionally bootstrap the schema",
		Long: `init writes config.yaml to the config directory if it is missing. With
--create-schema it also creates the Categories, Chapters and Questions tables
in the configured database when they do not exist, for development databases.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configDir := a.flags.configDir
			if configDir == "" {
				configDir = os.Getenv(paths.EnvConfigDir)
			}
			if configDir == "" {
				var err error
				if configDir, err = paths.LocalConfigDir(); err != nil {
					return err
				}
			}

			if err := os.MkdirAll(configDir, 0o755); err != nil {
				return fmt.Errorf("create config directory: %w", err)
			}
			configPath := filepath.Join(configDir, configFileExt)
			written, err := writeConfigIfMissing(configPath, a.flags.sourceDir, a.flags.database)
			if err != nil {
				return fmt.Errorf("write config: %w", err)
			}
			out := cmd.OutOrStdout()
			if written {
				fmt.Fprintf(out, "Wrote %s\n", configPath)
			} else {
				fmt.Fprintf(out, "Kept existing %s\n", configPath)
			}

			if !createSchema {
				return nil
			}
			cfg, err := a.storeConfig()
			if err != nil {
				return err
			}
			b, err := attachBackend(cfg)
			if err != nil {
				return fmt.Errorf("connect: %w", err)
			}
			defer b.Detach()
			if err := b.CreateSchema(); err != nil {
				return err
			}
			fmt.Fprintf(out, "Schema ready in %s\n", cfg.Database)
			return nil
		},
	}
	cmd.Flags().BoolVar(&createSchema, "create-schema", false, "create missing tables in the configured database")
	return cmd
}

// writeConfigIfMissing creates config.yaml with default values if the file
// does not exist. If it already exists, the function returns false (idempotent).
func writeConfigIfMissing(path, sourceDir, database string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}

	cfg := configFile{
		Driver:    types.BackendSQLite,
		Database:  database,
		SourceDir: sourceDir,
		LogLevel:  defaultLogLevel,
		Category:  types.CategoryStyle{}.WithDefaults(),
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	return true, os.WriteFile(path, data, 0o644)
}
