package server

import "github.com/decred/slog"

// log is disabled until the caller installs a logger with UseLogger.
var log = slog.Disabled

func UseLogger(logger slog.Logger) {
	log = logger
}
