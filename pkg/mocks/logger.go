package mocks

import (
	"fmt"
	"sync"

	"github.com/user/pairshow/pkg/ports"
)

// Logger is a mock implementation of ports.Logger that records messages.
type Logger struct {
	mu       sync.Mutex
	Messages []LogEntry
}

// LogEntry records a single log call.
type LogEntry struct {
	Level     ports.LogLevel
	Component string
	Message   string
}

func (m *Logger) record(level ports.LogLevel, msg string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Messages = append(m.Messages, LogEntry{
		Level:   level,
		Message: fmt.Sprintf(msg, args...),
	})
}

func (m *Logger) Debug(msg string, args ...interface{}) { m.record(ports.LevelDebug, msg, args...) }
func (m *Logger) Info(msg string, args ...interface{})  { m.record(ports.LevelInfo, msg, args...) }
func (m *Logger) Warn(msg string, args ...interface{})  { m.record(ports.LevelWarn, msg, args...) }
func (m *Logger) Error(msg string, args ...interface{}) { m.record(ports.LevelError, msg, args...) }

func (m *Logger) WithComponent(name string) ports.Logger { return m }

var _ ports.Logger = (*Logger)(nil)
