package cli

import (
	"fmt"
	"io"

	logger "github.com/sirupsen/logrus"
)

// configureLogging sends diagnostics to w at the given level. Console output
// for the operator does not go through the logger.
func configureLogging(level string, w io.Writer) error {
	lvl, err := logger.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	logger.SetOutput(w)
	logger.SetLevel(lvl)
	logger.SetFormatter(&logger.TextFormatter{
		DisableTimestamp: true,
		DisableColors:    true,
	})
	return nil
}
