package testutil

import (
	"log/slog"
)

// DiscardLogger returns a slog.Logger that discards all output.
// This is the standard library pattern for test loggers.
//
// Use this in tests to reduce noise. For components that take log.Logger
// (a type alias for *slog.Logger), log.NewNop() returns the same thing;
// prefer it when the internal/log package is already imported.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
