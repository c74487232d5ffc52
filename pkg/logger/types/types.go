package types

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a named sugared zap logger
type Logger struct {
	*zap.SugaredLogger
	LogsPath string
	Name     string
}

// Child returns a logger named "<parent>.<name>" sharing the same outputs.
func (l *Logger) Child(name string) *Logger {
	return &Logger{
		SugaredLogger: l.SugaredLogger.Named(name),
		LogsPath:      l.LogsPath,
		Name:          l.Name + "." + name,
	}
}

// Log is a log entry handed to a LogHook
type Log struct {
	Timestamp  time.Time
	Caller     string
	LoggerName string
	Level      zapcore.Level
	Message    string
}

// LogHook is a function that will be called for each log entry
type LogHook func(log Log)

// AtLeast wraps the hook so it only sees entries at or above level.
func (h LogHook) AtLeast(level zapcore.Level) LogHook {
	return func(log Log) {
		if log.Level >= level {
			h(log)
		}
	}
}
