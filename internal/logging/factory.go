package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Output formats understood by New.
const (
	FormatConsole = "console"
	FormatText    = "text"
	FormatJSON    = "json"
)

// New builds the logger for a configured format: "console" is zerolog's
// human-readable writer, "text" and "json" go through slog handlers.
func New(w io.Writer, format, level string) (Logger, error) {
	switch strings.ToLower(format) {
	case "", FormatConsole:
		return NewConsoleLogger(w, level), nil
	case FormatText:
		return NewTextLogger(w, slogLevel(level)), nil
	case FormatJSON:
		return NewSlogLogger(slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slogLevel(level)}))), nil
	}
	return nil, fmt.Errorf("unknown log format %q", format)
}

// slogLevel parses "debug", "info", "warn" or "error"; anything else is info.
func slogLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return l
}
