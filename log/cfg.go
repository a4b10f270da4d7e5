package log

import "fmt"

// Level is the severity of a log event.
type Level uint32

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
	FatalLevel
)

// String returns the lowercase name of the level.
func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "debug"
	case InfoLevel:
		return "info"
	case WarnLevel:
		return "warn"
	case ErrorLevel:
		return "error"
	case FatalLevel:
		return "fatal"
	}
	return "unknown"
}

// ParseLevel converts a level name into a Level.
func ParseLevel(s string) (Level, error) {
	switch s {
	case "debug":
		return DebugLevel, nil
	case "info":
		return InfoLevel, nil
	case "warn":
		return WarnLevel, nil
	case "error":
		return ErrorLevel, nil
	case "fatal":
		return FatalLevel, nil
	}
	return DebugLevel, fmt.Errorf("unknown log level %q", s)
}

// LogCfg configures the SDK logger.
type LogCfg struct {
	// LogLevel is the minimum level that will be written.
	LogLevel Level `mapstructure:"level"`

	// ConsoleAppender enables console (stderr) output.
	ConsoleAppender bool `mapstructure:"consoleAppender"`

	// EnabledCallerInfo adds file:line of the call site to each event.
	EnabledCallerInfo bool `mapstructure:"enabledCallerInfo"`

	// CallerSkip adjusts the number of stack frames skipped when
	// resolving caller information, for wrapper layers.
	CallerSkip int `mapstructure:"callerSkip"`
}

// GetName returns the configuration name used for registration.
func (c *LogCfg) GetName() string {
	return "logger"
}

// Validate checks the configuration parameters.
func (c *LogCfg) Validate() error {
	if c.LogLevel > FatalLevel {
		return fmt.Errorf("invalid log level %d", c.LogLevel)
	}
	if c.CallerSkip < 0 {
		return fmt.Errorf("callerSkip must not be negative")
	}
	return nil
}

var _defaultCfg = &LogCfg{
	LogLevel:        InfoLevel,
	ConsoleAppender: true,
}

func getDefaultCfg() *LogCfg {
	return _defaultCfg
}
