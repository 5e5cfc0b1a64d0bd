package cli

import (
	"io"
	"log/slog"
)

// newLogger returns the diagnostics logger handed to the engine. Stage
// transitions show up with --verbose; otherwise only warnings are printed.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
