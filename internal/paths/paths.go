// Package paths resolves the configuration directory, the question source
// directory and the database location.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// CWD-relative names used when nothing else is configured.
const (
	DefaultConfigDirName = ".quizimport"
	DefaultSourceDirName = "json"
	DefaultDatabaseName  = "database.sqlite"
)

// Environment variable names for overrides.
const (
	EnvConfigDir = "QUIZIMPORT_CONFIG_DIR"
	EnvSourceDir = "QUIZIMPORT_SOURCE_DIR"
	EnvDatabase  = "QUIZIMPORT_DATABASE"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
	workDir       func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
	workDir:       os.Getwd,
}

// UserConfigDir returns the platform-specific per-user configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/quizimport (fallback ~/.config/quizimport)
// macOS:   ~/Library/Application Support/quizimport
// Windows: %APPDATA%/quizimport
func UserConfigDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "quizimport"), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", "quizimport"), nil
	default:
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, "quizimport"), nil
	}
}

// ResolveConfigDir returns the configuration directory following the precedence
// chain: flag > QUIZIMPORT_CONFIG_DIR env > $(CWD)/.quizimport when it exists >
// UserConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	cwd, err := platformDir.workDir()
	if err != nil {
		return "", err
	}
	local := filepath.Join(cwd, DefaultConfigDirName)
	if info, err := os.Stat(local); err == nil && info.IsDir() {
		return local, nil
	}
	return UserConfigDir()
}

// LocalConfigDir returns $(CWD)/.quizimport, where init writes config.yaml
// when no directory was given.
func LocalConfigDir() (string, error) {
	cwd, err := platformDir.workDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultConfigDirName), nil
}

// ResolveSourceDir returns the directory scanned for question files:
// flag > configYAMLValue > QUIZIMPORT_SOURCE_DIR env > $(CWD)/json.
func ResolveSourceDir(flag, configYAMLValue string) (string, error) {
	return resolve(flag, configYAMLValue, EnvSourceDir, DefaultSourceDirName)
}

// ResolveDatabase returns the SQLite database file:
// flag > configYAMLValue > QUIZIMPORT_DATABASE env > $(CWD)/database.sqlite.
// Non-file backends use ResolveDSN instead.
func ResolveDatabase(flag, configYAMLValue string) (string, error) {
	return resolve(flag, configYAMLValue, EnvDatabase, DefaultDatabaseName)
}

// ResolveDSN applies the same precedence as ResolveDatabase but returns the
// winning value verbatim, for connection strings that are not paths.
func ResolveDSN(flag, configYAMLValue string) string {
	for _, v := range []string{flag, configYAMLValue, os.Getenv(EnvDatabase)} {
		if v != "" {
			return v
		}
	}
	return ""
}

func resolve(flag, configYAMLValue, env, defaultName string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configYAMLValue != "" {
		return filepath.Abs(configYAMLValue)
	}
	if v := os.Getenv(env); v != "" {
		return filepath.Abs(v)
	}
	cwd, err := platformDir.workDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, defaultName), nil
}
