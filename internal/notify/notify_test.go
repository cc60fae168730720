package notify

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

type call struct {
	name string
	args []string
}

func recordRunner(calls *[]call, err error) Runner {
	return func(_ context.Context, name string, args ...string) error {
		*calls = append(*calls, call{name: name, args: args})
		return err
	}
}

func TestExecLinuxUsesNotifySend(t *testing.T) {
	var calls []call
	n := Exec{GOOS: "linux", Run: recordRunner(&calls, nil)}
	if err := n.Send(context.Background(), Notification{Title: "Reminder", Body: "Dentist", Level: LevelWarn}); err != nil {
		t.Fatalf("send: %v", err)
	}
	if len(calls) != 1 || calls[0].name != "notify-send" {
		t.Fatalf("unexpected calls %+v", calls)
	}
	if got := strings.Join(calls[0].args, "|"); got != "--urgency=critical|Reminder|Dentist" {
		t.Fatalf("unexpected args %q", got)
	}
}

func TestExecDarwinEscapesQuotes(t *testing.T) {
	var calls []call
	n := Exec{GOOS: "darwin", Run: recordRunner(&calls, nil)}
	if err := n.Send(context.Background(), Notification{Title: `Say "hi"`, Body: "ok"}); err != nil {
		t.Fatalf("send: %v", err)
	}
	if len(calls) != 1 || calls[0].name != "osascript" {
		t.Fatalf("unexpected calls %+v", calls)
	}
	if !strings.Contains(calls[0].args[1], `Say \"hi\"`) {
		t.Fatalf("expected escaped title, got %q", calls[0].args[1])
	}
}

func TestExecOtherPlatformIsNoop(t *testing.T) {
	var calls []call
	n := Exec{GOOS: "windows", Run: recordRunner(&calls, nil)}
	if err := n.Send(context.Background(), Notification{Title: "x"}); err != nil || len(calls) != 0 {
		t.Fatalf("expected noop, got err=%v calls=%d", err, len(calls))
	}
}

func TestExecWrapsRunnerError(t *testing.T) {
	boom := errors.New("boom")
	var calls []call
	n := Exec{GOOS: "linux", Run: recordRunner(&calls, boom)}
	if err := n.Send(context.Background(), Notification{Title: "x"}); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped runner error, got %v", err)
	}
}

func TestLogKeepsMostRecent(t *testing.T) {
	l := NewLog(2)
	for _, title := range []string{"a", "b", "c"} {
		_ = l.Send(context.Background(), Notification{Title: title})
	}
	items := l.Items()
	if len(items) != 2 || items[0].Title != "b" || items[1].Title != "c" {
		t.Fatalf("unexpected items %+v", items)
	}
	if last, ok := l.Last(); !ok || last.Title != "c" {
		t.Fatalf("unexpected last %+v", last)
	}
}

func TestMultiJoinsErrors(t *testing.T) {
	boom := errors.New("boom")
	var calls []call
	l := NewLog(4)
	m := Multi{l, nil, Exec{GOOS: "linux", Run: recordRunner(&calls, boom)}}
	err := m.Send(context.Background(), Notification{Title: "x"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected joined error, got %v", err)
	}
	if len(l.Items()) != 1 {
		t.Fatalf("expected log to still receive the notification")
	}
}

func TestWriterPrintsOneLine(t *testing.T) {
	var buf strings.Builder
	w := NewWriter(&buf)
	at := time.Date(2026, 4, 14, 21, 0, 0, 0, time.UTC)
	if err := w.Send(context.Background(), Notification{Title: "Life receipt", Body: "3 completed", Level: LevelReward, At: at}); err != nil {
		t.Fatalf("send: %v", err)
	}
	if got, want := buf.String(), "21:00 [reward] Life receipt: 3 completed\n"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
