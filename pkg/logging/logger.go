// Package logging wraps zerolog for hemicycle. Terminals get console output,
// everything else gets JSON.
//
// Loggers travel in the context. The load pipeline tags them with the
// dataset being fetched, the reconciler with the member being merged and
// the API handlers with the member or bill a request names:
//
//	ctx = logging.WithSource(ctx, "contacts")
//	logging.FromContext(ctx).Debug().Msg("Decoding directory")
//
//	ctx = logging.WithMember(ctx, "ayse-yilmaz")
//	logging.FromContext(ctx).Debug().Msg("Member not found")
package logging

import (
	"os"

	"github.com/rs/zerolog"
)

// defaultLogger serves callers without a context logger.
var defaultLogger = NewLoggerFromConfig(envConfig())

// envConfig reads LOG_LEVEL, LOG_FORMAT, LOG_OUTPUT and NO_COLOR. DEBUG
// set to anything lowers the default level to debug.
func envConfig() *Config {
	cfg := DefaultConfig()
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Level = level
	} else if os.Getenv("DEBUG") != "" {
		cfg.Level = "debug"
	}
	if format := os.Getenv("LOG_FORMAT"); format != "" {
		cfg.Format = format
	}
	if output := os.Getenv("LOG_OUTPUT"); output != "" {
		cfg.Output = output
	}
	return cfg
}

// Default returns the process-wide logger.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// Error starts an error event on the default logger. Background loops
// without a request context report through it.
func Error() *zerolog.Event {
	return defaultLogger.Error()
}
