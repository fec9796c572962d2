// Package logger configures the application's structured logging.
//
// It uses zerolog for all application output and provides the adapter
// levels used to route pgx query tracing through zerolog when SQL
// statement logging is enabled.
package logger

import (
	"os"

	"github.com/biztime/api/internal/config"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
)

// New creates the main application logger.
//
// In the local environment output is pretty-printed to stderr at debug
// level; everywhere else it is JSON on stdout at info level.
func New(cfg *config.Config) *zerolog.Logger {
	var log zerolog.Logger
	if cfg.IsLocal() {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(zerolog.DebugLevel).
			With().Timestamp().Logger()
	} else {
		log = zerolog.New(os.Stdout).
			Level(zerolog.InfoLevel).
			With().Timestamp().Logger()
	}
	return &log
}

// NewPgxLogger creates the logger used for SQL query tracing output.
func NewPgxLogger(level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Str("component", "pgx").Logger()
}

// GetPgxTraceLogLevel converts the application log level into a pgx
// tracelog level. Query-level tracing only happens at debug and below.
func GetPgxTraceLogLevel(level zerolog.Level) tracelog.LogLevel {
	switch {
	case level <= zerolog.DebugLevel:
		return tracelog.LogLevelDebug
	case level == zerolog.InfoLevel:
		return tracelog.LogLevelInfo
	case level == zerolog.WarnLevel:
		return tracelog.LogLevelWarn
	default:
		return tracelog.LogLevelError
	}
}
