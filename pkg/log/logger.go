package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/YuminosukeSato/adaboost/pkg/errors"
)

// zerologLogger implements Logger on top of zerolog. The minimum level is
// shared with the provider that created it, so SetLevel also affects loggers
// handed out earlier.
type zerologLogger struct {
	zl    zerolog.Logger
	level *atomic.Int64
}

// NewZerologLogger returns a standalone Logger writing JSON lines to w.
func NewZerologLogger(w io.Writer, level Level) Logger {
	lv := &atomic.Int64{}
	lv.Store(int64(level))
	return &zerologLogger{
		zl:    zerolog.New(w).With().Timestamp().Logger(),
		level: lv,
	}
}

func (l *zerologLogger) event(level Level) *zerolog.Event {
	if level < Level(l.level.Load()) {
		return nil
	}
	switch {
	case level >= LevelError:
		return l.zl.Error()
	case level >= LevelWarn:
		return l.zl.Warn()
	case level >= LevelInfo:
		return l.zl.Info()
	default:
		return l.zl.Debug()
	}
}

// Debug implements Logger.Debug.
func (l *zerologLogger) Debug(msg string, fields ...any) {
	emit(l.event(LevelDebug), msg, fields)
}

// Info implements Logger.Info.
func (l *zerologLogger) Info(msg string, fields ...any) {
	emit(l.event(LevelInfo), msg, fields)
}

// Warn implements Logger.Warn.
func (l *zerologLogger) Warn(msg string, fields ...any) {
	emit(l.event(LevelWarn), msg, fields)
}

// Error implements Logger.Error. A leading error field becomes the record's
// error together with its stack trace.
func (l *zerologLogger) Error(msg string, fields ...any) {
	ev := l.event(LevelError)
	if ev == nil {
		return
	}
	if len(fields) > 0 {
		if err, ok := fields[0].(error); ok {
			ev = ev.Stack().Err(err)
			fields = fields[1:]
		}
	}
	emit(ev, msg, fields)
}

// With implements Logger.With.
func (l *zerologLogger) With(fields ...any) Logger {
	ctx := l.zl.With()
	for i := 0; i+1 < len(fields); i += 2 {
		key := fmt.Sprint(fields[i])
		switch v := fields[i+1].(type) {
		case zerolog.LogObjectMarshaler:
			ctx = ctx.Object(key, v)
		case error:
			ctx = ctx.AnErr(key, v)
		default:
			ctx = ctx.Interface(key, v)
		}
	}
	return &zerologLogger{zl: ctx.Logger(), level: l.level}
}

// Enabled implements Logger.Enabled.
func (l *zerologLogger) Enabled(_ context.Context, level Level) bool {
	return level >= Level(l.level.Load())
}

func emit(ev *zerolog.Event, msg string, fields []any) {
	if ev == nil {
		return
	}
	for i := 0; i+1 < len(fields); i += 2 {
		key := fmt.Sprint(fields[i])
		switch v := fields[i+1].(type) {
		case zerolog.LogObjectMarshaler:
			ev.Object(key, v)
		case error:
			ev.AnErr(key, v)
		case []float64:
			ev.Floats64(key, v)
		default:
			ev.Interface(key, v)
		}
	}
	ev.Msg(msg)
}

// ZerologProvider hands out zerolog-backed loggers sharing one writer and
// one minimum level.
type ZerologProvider struct {
	base  zerolog.Logger
	level *atomic.Int64
}

// NewZerologProvider creates a provider writing to w.
func NewZerologProvider(w io.Writer, level Level) *ZerologProvider {
	lv := &atomic.Int64{}
	lv.Store(int64(level))
	return &ZerologProvider{
		base:  zerolog.New(w).With().Timestamp().Logger(),
		level: lv,
	}
}

// GetLogger implements LoggerProvider.GetLogger.
func (p *ZerologProvider) GetLogger() Logger {
	return &zerologLogger{zl: p.base, level: p.level}
}

// GetLoggerWithName implements LoggerProvider.GetLoggerWithName.
func (p *ZerologProvider) GetLoggerWithName(name string) Logger {
	return &zerologLogger{
		zl:    p.base.With().Str(ComponentKey, name).Logger(),
		level: p.level,
	}
}

// SetLevel implements LoggerProvider.SetLevel.
func (p *ZerologProvider) SetLevel(level Level) {
	p.level.Store(int64(level))
}

var (
	providerMu sync.RWMutex
	provider   LoggerProvider = NewZerologProvider(os.Stderr, LevelWarn)
)

// SetProvider replaces the process-wide logger provider.
func SetProvider(p LoggerProvider) {
	providerMu.Lock()
	defer providerMu.Unlock()
	provider = p
}

// GetLogger returns the default logger of the installed provider.
func GetLogger() Logger {
	providerMu.RLock()
	defer providerMu.RUnlock()
	return provider.GetLogger()
}

// GetLoggerWithName returns a component logger of the installed provider.
func GetLoggerWithName(name string) Logger {
	providerMu.RLock()
	defer providerMu.RUnlock()
	return provider.GetLoggerWithName(name)
}

// SetLevel sets the minimum level of the installed provider.
func SetLevel(level Level) {
	providerMu.RLock()
	defer providerMu.RUnlock()
	provider.SetLevel(level)
}

// SetupLogger installs a zerolog provider writing to stderr and routes
// errors.Warn through it. format is "json" or "console".
func SetupLogger(loglevel, format string) error {
	level, err := ToLogLevel(loglevel)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stderr
	switch format {
	case "", "json":
	case "console":
		w = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	default:
		return errors.NewValidationError("log-format", "must be json or console", format)
	}

	SetProvider(NewZerologProvider(w, level))
	errors.SetZerologWarnFunc(func(warning error) {
		GetLoggerWithName("warnings").Warn(warning.Error(), "warning", warning)
	})
	return nil
}

// ToLogLevel parses a level name.
func ToLogLevel(level string) (Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, errors.NewValidationError("log-level", "must be debug, info, warn or error", level)
	}
}
