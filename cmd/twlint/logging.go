package main

import (
	"io"
	"log/slog"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	logMaxSizeMB  = 10
	logMaxBackups = 3
	logMaxAgeDays = 28
)

// configureLogger configures the global slog logger.
//
// Logs go to stderr at Warn unless a level is given; verbose forces Debug.
// With a log file the output is rotated through lumberjack instead.
func configureLogger(stderr io.Writer, logPath, level string, verbose bool) {
	logLevel := parseSlogLevel(level, slog.LevelWarn)
	if verbose {
		logLevel = slog.LevelDebug
	}

	out := stderr
	if strings.TrimSpace(logPath) != "" {
		out = &lumberjack.Logger{
			Filename:   logPath,
			MaxSize:    logMaxSizeMB,
			MaxBackups: logMaxBackups,
			MaxAge:     logMaxAgeDays,
		}
	}

	handler := slog.NewTextHandler(out, &slog.HandlerOptions{
		AddSource: verbose,
		Level:     logLevel,
	})
	slog.SetDefault(slog.New(handler))
}

// parseSlogLevel parses a level name, falling back to def.
func parseSlogLevel(level string, def slog.Level) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return def
	}
}
