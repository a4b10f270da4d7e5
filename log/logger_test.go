package log

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureAppender records written lines for assertions.
type captureAppender struct {
	lines []string
}

func (a *captureAppender) Write(line []byte) {
	a.lines = append(a.lines, string(line))
}

func (a *captureAppender) Refresh() {}

func newTestLogger(level Level) (*SDKLogger, *captureAppender) {
	logger := NewLogger(&LogCfg{LogLevel: level})
	cap := &captureAppender{}
	logger.AddAppender(cap)
	return logger, cap
}

func TestLoggerWritesJSONLine(t *testing.T) {
	logger, cap := newTestLogger(DebugLevel)

	logger.Info().
		Str("module", "multiplayer").
		Int("players", 4).
		Bool("ready", true).
		Msg("room created")

	require.Len(t, cap.lines, 1)
	line := cap.lines[0]
	assert.True(t, strings.HasSuffix(line, "\n"))

	var fields map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &fields))
	assert.Equal(t, "info", fields["level"])
	assert.Equal(t, "multiplayer", fields["module"])
	assert.Equal(t, float64(4), fields["players"])
	assert.Equal(t, true, fields["ready"])
	assert.Equal(t, "room created", fields["msg"])
	assert.Contains(t, fields, "time")
}

func TestLoggerLevelFiltering(t *testing.T) {
	logger, cap := newTestLogger(WarnLevel)

	assert.Nil(t, logger.Debug())
	assert.Nil(t, logger.Info())

	logger.Warn().Msg("kept")
	logger.Error().Err(errors.New("bad")).Msg("also kept")

	assert.Len(t, cap.lines, 2)
}

func TestNilEventIsSafe(t *testing.T) {
	logger, cap := newTestLogger(ErrorLevel)

	// Every fluent method must tolerate the nil event returned for a
	// disabled level.
	now := time.Now()
	logger.Debug().
		Str("a", "b").
		Int("c", 1).
		Int64("d", 2).
		Float64("e", 3.5).
		Bool("f", false).
		Dur("g", time.Second).
		Time("h", &now).
		Err(errors.New("x")).
		Any("i", struct{}{}).
		Msg("dropped")

	assert.Empty(t, cap.lines)
}

func TestSetLevel(t *testing.T) {
	logger, cap := newTestLogger(ErrorLevel)
	assert.Nil(t, logger.Info())

	logger.SetLevel(DebugLevel)
	logger.Info().Msg("now visible")
	assert.Len(t, cap.lines, 1)
}

func TestFatalPanics(t *testing.T) {
	logger, _ := newTestLogger(DebugLevel)
	assert.Panics(t, func() {
		logger.Fatal().Msg("boom")
	})
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", DebugLevel, false},
		{"info", InfoLevel, false},
		{"warn", WarnLevel, false},
		{"error", ErrorLevel, false},
		{"fatal", FatalLevel, false},
		{"verbose", DebugLevel, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestLogCfgValidate(t *testing.T) {
	assert.NoError(t, (&LogCfg{LogLevel: InfoLevel}).Validate())
	assert.Error(t, (&LogCfg{LogLevel: Level(42)}).Validate())
	assert.Error(t, (&LogCfg{CallerSkip: -1}).Validate())
	assert.Equal(t, "logger", (&LogCfg{}).GetName())
}
