package config

import (
	"log/slog"
	"os"
	"slices"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/salesday/pkg/domain/model"
	"github.com/secmon-lab/salesday/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

var logLevels = []string{"debug", "info", "warn", "error"}

// Logger holds logger configuration
type Logger struct {
	Level  string
	Format string
}

// Flags returns CLI flags for Logger configuration
func (l *Logger) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level (debug, info, warn, error)",
			Category:    "Logging",
			Value:       "info",
			Sources:     cli.EnvVars("SALESDAY_LOG_LEVEL"),
			Destination: &l.Level,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "Log format (console, json, auto), auto picks console on a terminal",
			Category:    "Logging",
			Value:       "auto",
			Sources:     cli.EnvVars("SALESDAY_LOG_FORMAT"),
			Destination: &l.Format,
		},
	}
}

// Configure builds the logger. Logs go to stderr.
func (l *Logger) Configure() (*slog.Logger, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}

	format, _ := logging.ParseFormat(l.Format)
	return logging.NewLoggerWithFormat(logging.ParseLogLevel(l.Level), os.Stderr, format), nil
}

// LogValue returns structured log value
func (l Logger) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("level", l.Level),
		slog.String("format", l.Format),
	)
}

// Validate rejects unknown levels and formats
func (l *Logger) Validate() error {
	if !slices.Contains(logLevels, l.Level) {
		return goerr.New("invalid log level",
			goerr.V("level", l.Level),
			goerr.V("allowed", logLevels),
			goerr.T(model.ErrTagConfig))
	}
	if _, ok := logging.ParseFormat(l.Format); !ok {
		return goerr.New("invalid log format", goerr.V("format", l.Format), goerr.T(model.ErrTagConfig))
	}
	return nil
}
