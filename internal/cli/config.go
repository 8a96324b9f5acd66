package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/quizimport/internal/paths"
	"github.com/mesh-intelligence/quizimport/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"
	envPrefix      = "QUIZIMPORT"

	// Config keys.
	cfgKeyDriver        = "driver"
	cfgKeyDatabase      = "database"
	cfgKeySourceDir     = "source_dir"
	cfgKeyLogLevel      = "log_level"
	cfgKeyCategoryIcon  = "category.icon"
	cfgKeyCategoryColor = "category.color"
	cfgKeyCategoryDesc  = "category.description"

	defaultLogLevel = "warn"
)

// flagKeys binds flags to the viper keys they override. source_dir and
// database are resolved through internal/paths instead, so that config.yaml
// outranks the environment for them.
var flagKeys = map[string]string{
	"driver":    cfgKeyDriver,
	"log-level": cfgKeyLogLevel,
}

// loadConfig reads config.yaml from configDir using Viper. A missing file is
// not an error; defaults apply. QUIZIMPORT_DRIVER, QUIZIMPORT_LOG_LEVEL and
// QUIZIMPORT_CATEGORY_* are read from the environment.
func loadConfig(configDir string, flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyDriver, types.BackendSQLite)
	v.SetDefault(cfgKeyLogLevel, defaultLogLevel)
	v.SetDefault(cfgKeyCategoryIcon, types.DefaultCategoryIcon)
	v.SetDefault(cfgKeyCategoryColor, types.DefaultCategoryColor)
	v.SetDefault(cfgKeyCategoryDesc, types.DefaultCategoryDescription)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range []string{cfgKeyDriver, cfgKeyLogLevel, cfgKeyCategoryIcon, cfgKeyCategoryColor, cfgKeyCategoryDesc} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	for name, key := range flagKeys {
		if f := flags.Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// resolveConfigDir returns the configuration directory from flag, env, or default.
func (a *app) resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(a.flags.configDir)
}

// resolveSourceDir returns the source directory following
// --source-dir > config.yaml source_dir > QUIZIMPORT_SOURCE_DIR > ./json.
func (a *app) resolveSourceDir() (string, error) {
	return paths.ResolveSourceDir(a.flags.sourceDir, a.v.GetString(cfgKeySourceDir))
}

// storeConfig assembles and validates the backend configuration.
func (a *app) storeConfig() (types.Config, error) {
	cfg := types.Config{
		Backend: a.v.GetString(cfgKeyDriver),
		Category: types.CategoryStyle{
			Icon:        a.v.GetString(cfgKeyCategoryIcon),
			Color:       a.v.GetString(cfgKeyCategoryColor),
			Description: a.v.GetString(cfgKeyCategoryDesc),
		},
	}

	configured := a.v.GetString(cfgKeyDatabase)
	if cfg.Backend == types.BackendSQLite {
		db, err := paths.ResolveDatabase(a.flags.database, configured)
		if err != nil {
			return cfg, fmt.Errorf("resolve database: %w", err)
		}
		cfg.Database = db
	} else {
		cfg.Database = paths.ResolveDSN(a.flags.database, configured)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
