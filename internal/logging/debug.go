// Package logging provides the optional file-backed debug log.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// sink is the file shared by a logger and every run-scoped copy of it.
type sink struct {
	mu sync.Mutex
	w  io.WriteCloser
}

// DebugLogger appends lines to the labelcrew debug log. Loggers returned
// by WithRun share the parent's file and tag each line with the run id.
// A nil logger, or one opened with an empty path, discards everything.
type DebugLogger struct {
	out    *sink
	prefix string
}

// NewDebugLogger opens logPath for appending. An empty path yields a
// logger that writes nothing.
func NewDebugLogger(logPath string) (*DebugLogger, error) {
	if logPath == "" {
		return Nop(), nil
	}
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	l := &DebugLogger{out: &sink{w: f}}
	l.Log("--- labelcrew pid %d opened log %s ---", os.Getpid(), time.Now().Format(time.RFC3339))
	return l, nil
}

func Nop() *DebugLogger {
	return &DebugLogger{}
}

// WithRun returns a logger whose lines carry "[run <id>]". Closing it
// is a no-op; the parent owns the file.
func (l *DebugLogger) WithRun(runID string) *DebugLogger {
	if l == nil {
		return Nop()
	}
	return &DebugLogger{out: l.out, prefix: "[run " + runID + "] "}
}

func (l *DebugLogger) Log(format string, args ...any) {
	if l == nil || l.out == nil {
		return
	}
	line := time.Now().Format("15:04:05.000") + " " + l.prefix + fmt.Sprintf(format, args...) + "\n"

	l.out.mu.Lock()
	defer l.out.mu.Unlock()
	io.WriteString(l.out.w, line)
	if f, ok := l.out.w.(*os.File); ok {
		f.Sync()
	}
}

// Close closes the underlying file. Only the logger returned by
// NewDebugLogger closes anything.
func (l *DebugLogger) Close() error {
	if l == nil || l.out == nil || l.prefix != "" {
		return nil
	}
	l.out.mu.Lock()
	defer l.out.mu.Unlock()
	return l.out.w.Close()
}
