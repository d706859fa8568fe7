// Package should provides cleanup helpers for operations that should succeed
// but may fail in practice. Instead of returning errors they log failures,
// which suits deferred cleanup and destruction of owned values, where there is
// no caller left to hand an error to.
package should

import (
	"io"
	"log/slog"
)

// Close closes closer and logs an error through slog.Default() if it fails.
// A nil closer is a no-op.
//
// Example:
//
//	defer should.Close(conn, "failed to close connection")
func Close(closer io.Closer, msg string, args ...any) {
	CloseWith(slog.Default(), closer, msg, args...)
}

// CloseWith is like Close but logs through logger. Extra args are attached to
// the log record alongside the error.
func CloseWith(logger *slog.Logger, closer io.Closer, msg string, args ...any) {
	if closer == nil {
		return
	}

	if err := closer.Close(); err != nil {
		if logger == nil {
			logger = slog.Default()
		}

		logger.Error(msg, append(args, "error", err)...)
	}
}
