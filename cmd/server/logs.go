package main

import (
	"io"
	"log/slog"
)

// newLogger creates a text logger at the given level
func newLogger(writer io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	opts := slog.HandlerOptions{
		AddSource: debug,
		Level:     level,
	}
	return slog.New(slog.NewTextHandler(writer, &opts))
}
