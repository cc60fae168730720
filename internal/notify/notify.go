// Package notify delivers reminder, nudge and receipt notifications to the
// desktop or to an in-memory log.
package notify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"runtime"
	"strings"
	"sync"
	"time"
)

type Level string

const (
	LevelInfo   Level = "info"
	LevelWarn   Level = "warn"
	LevelReward Level = "reward"
)

type Notification struct {
	Title string
	Body  string
	Level Level
	At    time.Time
}

type Notifier interface {
	Send(ctx context.Context, n Notification) error
}

type Noop struct{}

func (Noop) Send(context.Context, Notification) error { return nil }

// Runner executes an external command. Exec uses it so tests can capture
// the command line instead of spawning a process.
type Runner func(ctx context.Context, name string, args ...string) error

func execRunner(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

// Exec shells out to notify-send on Linux and osascript on macOS. Other
// platforms are a no-op.
type Exec struct {
	GOOS string
	Run  Runner
}

func NewExec() Exec {
	return Exec{GOOS: runtime.GOOS, Run: execRunner}
}

func (e Exec) Send(ctx context.Context, n Notification) error {
	run := e.Run
	if run == nil {
		run = execRunner
	}
	goos := e.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}
	switch goos {
	case "linux":
		args := []string{n.Title, n.Body}
		if n.Level == LevelWarn {
			args = append([]string{"--urgency=critical"}, args...)
		}
		if err := run(ctx, "notify-send", args...); err != nil {
			return fmt.Errorf("notify: notify-send: %w", err)
		}
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(n.Body), escapeAppleScript(n.Title))
		if err := run(ctx, "osascript", "-e", script); err != nil {
			return fmt.Errorf("notify: osascript: %w", err)
		}
	}
	return nil
}

func escapeAppleScript(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}

// Log keeps the most recent notifications in memory.
type Log struct {
	mu    sync.Mutex
	limit int
	items []Notification
}

func NewLog(limit int) *Log {
	if limit <= 0 {
		limit = 40
	}
	return &Log{limit: limit}
}

func (l *Log) Send(_ context.Context, n Notification) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = append(l.items, n)
	if len(l.items) > l.limit {
		l.items = l.items[len(l.items)-l.limit:]
	}
	return nil
}

func (l *Log) Items() []Notification {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Notification(nil), l.items...)
}

func (l *Log) Last() (Notification, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.items) == 0 {
		return Notification{}, false
	}
	return l.items[len(l.items)-1], true
}

// Writer prints one line per notification, for terminals without a
// notification daemon.
type Writer struct {
	mu  sync.Mutex
	out io.Writer
}

func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

func (w *Writer) Send(_ context.Context, n Notification) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, err := fmt.Fprintf(w.out, "%s [%s] %s: %s\n", n.At.Format("15:04"), n.Level, n.Title, n.Body)
	return err
}

// Multi fans a notification out to every notifier and joins their errors.
type Multi []Notifier

func (m Multi) Send(ctx context.Context, n Notification) error {
	var errs []error
	for _, notifier := range m {
		if notifier == nil {
			continue
		}
		if err := notifier.Send(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
