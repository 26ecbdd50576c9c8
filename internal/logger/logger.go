// Package logger provides the leveled, structured logging used by the FS
// operations layer for diagnostics: a small set of package-level severity
// functions (Tracef/Debugf/Infof/Warnf/Errorf) backed by a swappable
// *slog.Logger, a text-or-JSON handler factory, and optional file output
// with rotation via lumberjack.
//
// There is no async buffering here: the FS core runs a process-wide
// session with no background writer, so there is no contention to buffer
// around.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Severity levels, spaced out the way slog reserves room between its
// built-in levels for custom ones. TRACE sits below slog.LevelDebug;
// WARNING and ERROR line up with slog's Warn/Error so handlers that only
// know the stdlib levels still make sane decisions.
const (
	LevelTrace slog.Level = -8
	LevelDebug slog.Level = slog.LevelDebug
	LevelInfo  slog.Level = slog.LevelInfo
	LevelWarn  slog.Level = slog.LevelWarn
	LevelError slog.Level = slog.LevelError
	// LevelOff is above any real severity, so nothing is ever logged at it.
	LevelOff slog.Level = 100
)

// Severity names accepted by SetLoggingLevel.
const (
	Trace   = "TRACE"
	Debug   = "DEBUG"
	Info    = "INFO"
	Warning = "WARNING"
	Error   = "ERROR"
	Off     = "OFF"
)

type factory struct {
	format string // "text" or "json"
	level  *slog.LevelVar
	file   *lumberjack.Logger
	writer io.Writer // destination when file is nil (defaults to stderr)
}

var defaultFactory = &factory{
	format: "text",
	level:  levelVarAt(LevelInfo),
	writer: os.Stderr,
}

var defaultLogger = slog.New(defaultFactory.handler())

func levelVarAt(l slog.Level) *slog.LevelVar {
	v := new(slog.LevelVar)
	v.Set(l)
	return v
}

// levelAttrReplacer renames slog's "level" key to "severity" and prints the
// severity names, including the custom TRACE name. OFF is never printed,
// since nothing is logged at LevelOff.
func levelAttrReplacer(groups []string, a slog.Attr) slog.Attr {
	if a.Key == slog.LevelKey {
		level := a.Value.Any().(slog.Level)
		a.Key = "severity"
		a.Value = slog.StringValue(severityName(level))
	}
	return a
}

func severityName(l slog.Level) string {
	switch {
	case l < LevelDebug:
		return Trace
	case l < LevelInfo:
		return Debug
	case l < LevelWarn:
		return Info
	case l < LevelError:
		return Warning
	default:
		return Error
	}
}

func (f *factory) handler() slog.Handler {
	var w io.Writer = f.writer
	if f.file != nil {
		w = f.file
	}
	if w == nil {
		w = os.Stderr
	}

	opts := &slog.HandlerOptions{
		Level:       f.level,
		ReplaceAttr: levelAttrReplacer,
	}
	if f.format == "json" {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// SetLogFormat switches the default logger between "text" and "json"
// output. An unrecognized format falls back to "json".
func SetLogFormat(format string) {
	if format != "text" && format != "json" {
		format = "json"
	}
	defaultFactory.format = format
	defaultLogger = slog.New(defaultFactory.handler())
}

// SetLoggingLevel sets the minimum severity the default logger emits.
// Unrecognized names are treated as Off.
func SetLoggingLevel(severity string) {
	var level slog.Level
	switch severity {
	case Trace:
		level = LevelTrace
	case Debug:
		level = LevelDebug
	case Info:
		level = LevelInfo
	case Warning:
		level = LevelWarn
	case Error:
		level = LevelError
	default:
		level = LevelOff
	}
	defaultFactory.level.Set(level)
}

// InitLogFile redirects the default logger's output to path, rotating via
// lumberjack once it exceeds maxSizeMB, keeping at most backupCount old
// files (compressed when compress is true). Passing an empty path leaves
// output on stderr.
func InitLogFile(path string, maxSizeMB, backupCount int, compress bool) error {
	if path == "" {
		defaultFactory.file = nil
		defaultLogger = slog.New(defaultFactory.handler())
		return nil
	}

	lj := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: backupCount,
		Compress:   compress,
	}
	defaultFactory.file = lj
	defaultLogger = slog.New(defaultFactory.handler())
	return nil
}

func log(level slog.Level, format string, args ...any) {
	if !defaultLogger.Enabled(context.Background(), level) {
		return
	}
	defaultLogger.Log(context.Background(), level, fmt.Sprintf(format, args...))
}

// Tracef logs at the lowest severity: per-call resolution detail that is
// noisy even for normal debugging.
func Tracef(format string, args ...any) { log(LevelTrace, format, args...) }

// Debugf logs operation entry points: path/handle and the flags they were
// called with.
func Debugf(format string, args ...any) { log(LevelDebug, format, args...) }

// Infof logs session lifecycle events (Init/Destroy).
func Infof(format string, args ...any) { log(LevelInfo, format, args...) }

// Warnf logs operation failures that are expected outcomes (bad handle,
// pool exhaustion) rather than programmer errors.
func Warnf(format string, args ...any) { log(LevelWarn, format, args...) }

// Errorf logs failures serious enough to warrant attention even at a
// terse severity threshold.
func Errorf(format string, args ...any) { log(LevelError, format, args...) }
