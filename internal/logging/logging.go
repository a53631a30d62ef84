package logging

import (
	"log/slog"
	"os"
)

// New creates the logger used across the CLI. Output goes to stderr
// so build output and logs don't interleave with anything piped from
// stdout. Verbose enables debug-level records.
func New(verbose bool) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}
	if verbose {
		opts.Level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
