// Package logging is a small structured logger that writes one JSON object
// per line. Lines are assembled in a pooled builder.Builder and handed to
// the writer in a single Write. A logger and the children derived from it
// with With share one write lock, so they never interleave entries even on
// a writer that is not safe for concurrent use. Loggers built by separate
// NewJSONLogger calls need a writer that serialises its own Writes.
package logging

import (
	"io"
	"sync"
)

// Field is a key-value pair attached to an entry.
type Field struct {
	Key   string
	Value any
}

// Logger is implemented by JSONLogger and NopLogger.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	// With returns a child logger that adds fields to every entry.
	With(fields ...Field) Logger
	SetLevel(level Level)
	GetLevel() Level
}

// JSONLogger writes entries as JSON lines.
type JSONLogger struct {
	mu     sync.Mutex
	writer io.Writer
	out    *sync.Mutex // shared with With children
	level  Level
	fields []Field
}

// LogEntry is the shape of one line, for readers that decode the output.
type LogEntry struct {
	Time    string         `json:"time"`
	Level   string         `json:"level"`
	Message string         `json:"msg"`
	Fields  map[string]any `json:"fields,omitempty"`
}
