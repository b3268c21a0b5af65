// Adapted from vice's pkg/log/log.go.
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package log is a small wrapper around log/slog that writes JSON to a rotated file.
// A nil *Logger is valid: debug and info messages are dropped, warnings and errors
// go to the default slog logger.
package log

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

type Logger struct {
	*slog.Logger
	LogFile string
	LogDir  string
	Start   time.Time

	w *lumberjack.Logger
}

// ParseLevel maps "debug", "info", "warn" and "error" onto slog levels. Anything else
// is info.
func ParseLevel(level string) (slog.Level, bool) {
	switch level {
	case "debug": return slog.LevelDebug, true
	case "info":  return slog.LevelInfo, true
	case "warn":  return slog.LevelWarn, true
	case "error": return slog.LevelError, true
	default:      return slog.LevelInfo, false
	}
}

// New logs into dir/flightlog.slog. An empty dir means a flightlog directory under the
// user's config dir.
func New(level string, dir string) *Logger {
	if dir == "" {
		var err error
		dir, err = os.UserConfigDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Unable to find user config dir: %v\n", err)
			dir = "."
		}
		dir = filepath.Join(dir, "flightlog")
	}

	w := &lumberjack.Logger{
		Filename:   filepath.Join(dir, "flightlog.slog"),
		MaxSize:    32, // MB
		MaxAge:     14,
		MaxBackups: 3,
	}
	if level == "debug" {
		w.MaxSize = 256
	}

	lvl,ok := ParseLevel(level)
	if !ok {
		fmt.Fprintf(os.Stderr, "%s: invalid log level\n", level)
	}

	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})
	l := &Logger{
		Logger:  slog.New(h),
		LogFile: w.Filename,
		LogDir:  dir,
		Start:   time.Now(),
		w:       w,
	}

	l.Info("Hello logging", slog.Time("start", l.Start),
		slog.String("GOARCH", runtime.GOARCH),
		slog.String("GOOS", runtime.GOOS))

	return l
}

// Close flushes and closes the log file.
func (l *Logger) Close() error {
	if l == nil || l.w == nil { return nil }
	return l.w.Close()
}

func (l *Logger) enabled(lvl slog.Level) bool {
	return l != nil && l.Logger.Enabled(context.Background(), lvl)
}

func (l *Logger) Debug(msg string, args ...any) {
	if l.enabled(slog.LevelDebug) {
		l.Logger.Debug(msg, args...)
	}
}

// Debugf is a convenience wrapper that logs just a message and allows printf-style
// formatting of the provided args.
func (l *Logger) Debugf(msg string, args ...any) {
	if l.enabled(slog.LevelDebug) {
		l.Logger.Debug(fmt.Sprintf(msg, args...))
	}
}

func (l *Logger) Info(msg string, args ...any) {
	if l.enabled(slog.LevelInfo) {
		l.Logger.Info(msg, args...)
	}
}

func (l *Logger) Infof(msg string, args ...any) {
	if l.enabled(slog.LevelInfo) {
		l.Logger.Info(fmt.Sprintf(msg, args...))
	}
}

func (l *Logger) Warn(msg string, args ...any) {
	if l == nil {
		slog.Warn(msg, args...)
	} else {
		l.Logger.Warn(msg, args...)
	}
}

func (l *Logger) Warnf(msg string, args ...any) {
	l.Warn(fmt.Sprintf(msg, args...))
}

// Error always reaches the default slog logger (stderr, for a CLI) as well as the file.
func (l *Logger) Error(msg string, args ...any) {
	slog.Error(msg, args...)
	if l != nil {
		l.Logger.Error(msg, args...)
	}
}

func (l *Logger) Errorf(msg string, args ...any) {
	l.Error(fmt.Sprintf(msg, args...))
}

func (l *Logger) With(args ...any) *Logger {
	if l == nil { return nil }
	return &Logger{
		Logger:  l.Logger.With(args...),
		LogFile: l.LogFile,
		LogDir:  l.LogDir,
		Start:   l.Start,
		w:       l.w,
	}
}
