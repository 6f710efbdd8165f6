package logger

import (
	"log/slog"
	"os"
)

// Logger provides structured logging
type Logger struct {
	logger *slog.Logger
}

// New creates a new logger writing key=value lines to stdout
func New() *Logger {
	return &Logger{
		logger: slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})),
	}
}

// Info logs an info message
func (l *Logger) Info(message string, fields ...Field) {
	l.logger.Info(message, args(fields)...)
}

// Error logs an error message
func (l *Logger) Error(message string, fields ...Field) {
	l.logger.Error(message, args(fields)...)
}

// Debug logs a debug message
func (l *Logger) Debug(message string, fields ...Field) {
	l.logger.Debug(message, args(fields)...)
}

// Field represents a key-value pair for structured logging
type Field struct {
	Key   string
	Value string
}

// F creates a Field
func F(key, value string) Field {
	return Field{Key: key, Value: value}
}

func args(fields []Field) []any {
	out := make([]any, 0, len(fields)*2)
	for _, f := range fields {
		out = append(out, f.Key, f.Value)
	}
	return out
}
