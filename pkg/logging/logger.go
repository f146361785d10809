package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dd0wney/bytebuilder/pkg/builder"
	"github.com/dd0wney/bytebuilder/pkg/pools"
)

// NewJSONLogger returns a logger that writes entries at or above level to w.
func NewJSONLogger(w io.Writer, level Level) *JSONLogger {
	return &JSONLogger{writer: w, out: new(sync.Mutex), level: level}
}

// NewDefaultLogger writes INFO and above to stdout.
func NewDefaultLogger() *JSONLogger {
	return NewJSONLogger(os.Stdout, InfoLevel)
}

func (l *JSONLogger) log(level Level, msg string, fields []Field) {
	l.mu.Lock()
	if level < l.level {
		l.mu.Unlock()
		return
	}
	inherited := l.fields
	l.mu.Unlock()

	line, err := builder.New(pools.Default())
	if err != nil {
		l.write([]byte(fmt.Sprintf("[ERROR] log buffer: %v\n", err)))
		return
	}
	defer line.Release()

	all := fields
	if len(inherited) > 0 {
		all = make([]Field, 0, len(inherited)+len(fields))
		all = append(all, inherited...)
		all = append(all, fields...)
	}
	appendEntry(line, time.Now(), level, msg, all)

	l.write(line.Bytes())
}

// write hands p to the writer under the lock shared with every logger
// derived from the same NewJSONLogger call.
func (l *JSONLogger) write(p []byte) {
	out := l.out
	if out == nil {
		out = &l.mu
	}
	out.Lock()
	defer out.Unlock()
	l.writer.Write(p)
}

func (l *JSONLogger) Debug(msg string, fields ...Field) { l.log(DebugLevel, msg, fields) }
func (l *JSONLogger) Info(msg string, fields ...Field)  { l.log(InfoLevel, msg, fields) }
func (l *JSONLogger) Warn(msg string, fields ...Field)  { l.log(WarnLevel, msg, fields) }
func (l *JSONLogger) Error(msg string, fields ...Field) { l.log(ErrorLevel, msg, fields) }

// With returns a child sharing l's writer. The child's level starts at l's
// and changes independently afterwards.
func (l *JSONLogger) With(fields ...Field) Logger {
	l.mu.Lock()
	defer l.mu.Unlock()

	inherited := make([]Field, 0, len(l.fields)+len(fields))
	inherited = append(inherited, l.fields...)
	inherited = append(inherited, fields...)

	return &JSONLogger{
		writer: l.writer,
		out:    l.out,
		level:  l.level,
		fields: inherited,
	}
}

func (l *JSONLogger) SetLevel(level Level) {
	l.mu.Lock()
	l.level = level
	l.mu.Unlock()
}

func (l *JSONLogger) GetLevel() Level {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}
