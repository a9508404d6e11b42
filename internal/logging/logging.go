package logging

import (
	"log"
	"os"
	"strings"
)

// Level controls which messages a Logger emits.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel maps a LOG_LEVEL string to a Level. Unknown values fall back to
// info so a typo in an env file never silences the logger.
func ParseLevel(s string) Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LevelDebug
	case "WARN", "WARNING":
		return LevelWarn
	case "ERROR":
		return LevelError
	default:
		return LevelInfo
	}
}

// Logger is a simple leveled logger that writes to the console.
type Logger struct {
	*log.Logger
	level Level
}

// NewLogger creates a new Logger at info level.
func NewLogger() *Logger {
	return NewLoggerWithLevel(LevelInfo)
}

// NewLoggerWithLevel creates a new Logger emitting messages at or above level.
func NewLoggerWithLevel(level Level) *Logger {
	return &Logger{
		Logger: log.New(os.Stdout, "", log.LstdFlags),
		level:  level,
	}
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, args ...interface{}) {
	if l.level <= LevelDebug {
		l.Printf("DEBUG: "+msg, args...)
	}
}

// Info logs an informational message.
func (l *Logger) Info(msg string, args ...interface{}) {
	if l.level <= LevelInfo {
		l.Printf("INFO: "+msg, args...)
	}
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, args ...interface{}) {
	if l.level <= LevelWarn {
		l.Printf("WARN: "+msg, args...)
	}
}

// Error logs an error message.
func (l *Logger) Error(msg string, args ...interface{}) {
	if l.level <= LevelError {
		l.Printf("ERROR: "+msg, args...)
	}
}
