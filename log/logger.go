// Package log provides the structured logger used across the SDK.
// Call sites build events fluently: log.Info().Str("room", id).Msg("joined").
package log

import (
	"fmt"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Logger produces leveled log events.
type Logger interface {
	Debug() *LogEvent
	Info() *LogEvent
	Warn() *LogEvent
	Error() *LogEvent
	Fatal() *LogEvent
	AddAppender(appender LogAppender)
	OnEventEnd(e *LogEvent)
}

// SDKLogger is the default Logger implementation. Events are pooled to
// keep the logging path allocation-free when a level is disabled.
type SDKLogger struct {
	appenders         []LogAppender
	minLevel          atomic.Uint32
	callerSkip        int
	enabledCallerInfo bool
	eventPool         *sync.Pool
}

// NewLogger creates a logger from cfg; nil selects the default config.
func NewLogger(cfg *LogCfg) *SDKLogger {
	if cfg == nil {
		cfg = getDefaultCfg()
	}

	logger := &SDKLogger{
		callerSkip:        cfg.CallerSkip,
		enabledCallerInfo: cfg.EnabledCallerInfo,
	}
	logger.minLevel.Store(uint32(cfg.LogLevel))
	logger.eventPool = &sync.Pool{
		New: func() any {
			return newEvent(logger)
		},
	}

	if cfg.ConsoleAppender {
		logger.AddAppender(NewConsoleAppender())
	}

	return logger
}

// SetLevel changes the minimum level at runtime.
func (x *SDKLogger) SetLevel(level Level) {
	x.minLevel.Store(uint32(level))
}

// AddAppender registers an additional output destination.
func (x *SDKLogger) AddAppender(appender LogAppender) {
	x.appenders = append(x.appenders, appender)
}

// OnEventEnd writes a finished event to all appenders and returns it to
// the pool. Fatal events panic after being written.
func (x *SDKLogger) OnEventEnd(e *LogEvent) {
	for _, appender := range x.appenders {
		appender.Write(e.buf.Bytes())
	}
	level := e.level
	x.eventPool.Put(e)
	if level == FatalLevel {
		panic("fatal log event")
	}
}

// Debug creates a debug-level event, or nil if the level is disabled.
func (x *SDKLogger) Debug() *LogEvent { return x.log(DebugLevel) }

// Info creates an info-level event, or nil if the level is disabled.
func (x *SDKLogger) Info() *LogEvent { return x.log(InfoLevel) }

// Warn creates a warn-level event, or nil if the level is disabled.
func (x *SDKLogger) Warn() *LogEvent { return x.log(WarnLevel) }

// Error creates an error-level event, or nil if the level is disabled.
func (x *SDKLogger) Error() *LogEvent { return x.log(ErrorLevel) }

// Fatal creates a fatal-level event; finishing it panics.
func (x *SDKLogger) Fatal() *LogEvent { return x.log(FatalLevel) }

func (x *SDKLogger) log(level Level) *LogEvent {
	if Level(x.minLevel.Load()) > level {
		return nil
	}

	e := x.eventPool.Get().(*LogEvent)
	e.Reset()
	e.level = level

	t := time.Now()
	e.Time("time", &t)
	e.Str("level", level.String())

	if x.enabledCallerInfo {
		e.Str("caller", x.callerInfo())
	}
	return e
}

// callerInfo resolves the call site as "dir/file.go:line", trimmed to
// the last two path elements.
func (x *SDKLogger) callerInfo() string {
	_, file, line, ok := runtime.Caller(3 + x.callerSkip)
	if !ok {
		return "unknown"
	}
	if idx := strings.LastIndexByte(file, '/'); idx > 0 {
		if idx2 := strings.LastIndexByte(file[:idx], '/'); idx2 >= 0 {
			file = file[idx2+1:]
		}
	}
	return fmt.Sprintf("%s:%d", file, line)
}

var _defaultLogger Logger = NewLogger(nil)

// SetDefaultLogger replaces the package-level logger.
func SetDefaultLogger(logger Logger) {
	_defaultLogger = logger
}

// AddAppender adds an appender to the package-level logger.
func AddAppender(appender LogAppender) {
	_defaultLogger.AddAppender(appender)
}

// Debug creates a debug-level event on the package-level logger.
func Debug() *LogEvent { return _defaultLogger.Debug() }

// Info creates an info-level event on the package-level logger.
func Info() *LogEvent { return _defaultLogger.Info() }

// Warn creates a warn-level event on the package-level logger.
func Warn() *LogEvent { return _defaultLogger.Warn() }

// Error creates an error-level event on the package-level logger.
func Error() *LogEvent { return _defaultLogger.Error() }

// Fatal creates a fatal-level event on the package-level logger.
func Fatal() *LogEvent { return _defaultLogger.Fatal() }
