package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDebugLogger_WritesLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "debug.log")

	l, err := NewDebugLogger(path)
	if err != nil {
		t.Fatalf("NewDebugLogger failed: %v", err)
	}
	l.Log("render %s/%s", "director", "persona")
	if err := l.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and one line, got %d lines", len(lines))
	}
	if !strings.HasSuffix(lines[1], "render director/persona") {
		t.Errorf("unexpected log line %q", lines[1])
	}
}

func TestDebugLogger_Nop(t *testing.T) {
	for _, l := range []*DebugLogger{nil, Nop()} {
		l.Log("ignored %d", 1)
		if err := l.Close(); err != nil {
			t.Errorf("expected nil error, got %v", err)
		}
	}

	l, err := NewDebugLogger("")
	if err != nil || l == nil {
		t.Fatalf("expected no-op logger, got %v, %v", l, err)
	}
}

func TestDebugLogger_WithRunPrefixesLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")

	l, err := NewDebugLogger(path)
	if err != nil {
		t.Fatalf("NewDebugLogger failed: %v", err)
	}
	rl := l.WithRun("3f9a1c2e")
	rl.Log("write %s", "nexus/SOUL.md")
	if err := rl.Close(); err != nil {
		t.Fatalf("expected run logger Close to be a no-op, got %v", err)
	}
	l.Log("after run")
	if err := l.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), lines)
	}
	if !strings.HasSuffix(lines[1], " [run 3f9a1c2e] write nexus/SOUL.md") {
		t.Errorf("expected run prefix, got %q", lines[1])
	}
	if strings.Contains(lines[2], "[run ") {
		t.Errorf("expected parent lines without run prefix, got %q", lines[2])
	}
}

func TestDebugLogger_WithRunOnNil(t *testing.T) {
	var l *DebugLogger
	rl := l.WithRun("abc")
	if rl == nil {
		t.Fatal("expected non-nil logger")
	}
	rl.Log("ignored")
}
