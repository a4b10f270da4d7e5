package log

import (
	"os"
	"sync"
)

// LogAppender writes finished log lines to an output destination.
type LogAppender interface {
	Write(line []byte)
	Refresh()
}

// ConsoleAppender writes log lines to stderr.
type ConsoleAppender struct {
	mu sync.Mutex
}

// NewConsoleAppender creates a console appender.
func NewConsoleAppender() *ConsoleAppender {
	return &ConsoleAppender{}
}

// Write emits one log line.
func (a *ConsoleAppender) Write(line []byte) {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, _ = os.Stderr.Write(line)
}

// Refresh is a no-op for the console appender.
func (a *ConsoleAppender) Refresh() {}
