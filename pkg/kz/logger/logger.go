package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// LogLevel represents the severity level for logging.
type LogLevel int

const (
	DebugLevel LogLevel = iota
	InfoLevel
	ErrorLevel
)

// Logger provides structured logging with level-based filtering.
type Logger interface {
	Debug(v ...any)
	Debugf(format string, a ...any)
	Info(v ...any)
	Infof(format string, a ...any)
	Error(v ...any)
	Errorf(format string, a ...any)
	With(args ...any) Logger
}

type zeroLogger struct {
	logger   zerolog.Logger
	logLevel LogLevel
}

// New creates a logger with the specified level and output format.
// Accepts levels "debug", "dbg", "info", "inf", "error", "err" (case-insensitive)
// and formats "json" or "console". Unrecognized values fall back to info/console.
func New(logLevelStr, format string) Logger {
	return NewWithWriter(os.Stdout, logLevelStr, format)
}

// NewWithWriter creates a logger writing to w.
func NewWithWriter(w io.Writer, logLevelStr, format string) Logger {
	level := parseLevel(logLevelStr)

	out := w
	if !strings.EqualFold(format, "json") {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	zl := zerolog.New(out).
		Level(toZerologLevel(level)).
		With().
		Timestamp().
		Str("service", "kozmo-site").
		Logger()

	return &zeroLogger{
		logger:   zl,
		logLevel: level,
	}
}

func (l *zeroLogger) Debug(v ...any) {
	if l.logLevel <= DebugLevel {
		l.logger.Debug().Msg(fmt.Sprint(v...))
	}
}

func (l *zeroLogger) Debugf(format string, a ...any) {
	if l.logLevel <= DebugLevel {
		l.logger.Debug().Msgf(format, a...)
	}
}

func (l *zeroLogger) Info(v ...any) {
	if l.logLevel <= InfoLevel {
		l.logger.Info().Msg(fmt.Sprint(v...))
	}
}

func (l *zeroLogger) Infof(format string, a ...any) {
	if l.logLevel <= InfoLevel {
		l.logger.Info().Msgf(format, a...)
	}
}

func (l *zeroLogger) Error(v ...any) {
	if l.logLevel <= ErrorLevel {
		l.logger.Error().Msg(fmt.Sprint(v...))
	}
}

func (l *zeroLogger) Errorf(format string, a ...any) {
	if l.logLevel <= ErrorLevel {
		l.logger.Error().Msgf(format, a...)
	}
}

// With returns a new logger with additional contextual fields given as
// alternating key/value pairs. A trailing key without a value is dropped.
// The returned logger preserves the current log level.
func (l *zeroLogger) With(args ...any) Logger {
	ctx := l.logger.With()
	for i := 0; i+1 < len(args); i += 2 {
		key := fmt.Sprint(args[i])
		ctx = ctx.Interface(key, args[i+1])
	}
	return &zeroLogger{
		logger:   ctx.Logger(),
		logLevel: l.logLevel,
	}
}

type noopLogger struct{}

func (noopLogger) Debug(v ...any)                 {}
func (noopLogger) Debugf(format string, a ...any) {}
func (noopLogger) Info(v ...any)                  {}
func (noopLogger) Infof(format string, a ...any)  {}
func (noopLogger) Error(v ...any)                 {}
func (noopLogger) Errorf(format string, a ...any) {}
func (noopLogger) With(args ...any) Logger        { return noopLogger{} }

// NewNoopLogger creates a no-op logger that discards all log output.
func NewNoopLogger() Logger {
	return noopLogger{}
}

func parseLevel(level string) LogLevel {
	level = strings.ToLower(level)
	switch level {
	case "debug", "dbg":
		return DebugLevel
	case "info", "inf":
		return InfoLevel
	case "error", "err":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

func toZerologLevel(level LogLevel) zerolog.Level {
	switch level {
	case DebugLevel:
		return zerolog.DebugLevel
	case InfoLevel:
		return zerolog.InfoLevel
	case ErrorLevel:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
