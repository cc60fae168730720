package model

import (
	"testing"
	"time"
)

func TestReminderFor(t *testing.T) {
	task := validTask()
	rem, ok := ReminderFor(task, time.UTC)
	if !ok {
		t.Fatal("expected reminder")
	}
	want := time.Date(2026, 3, 4, 6, 15, 0, 0, time.UTC)
	if !rem.TriggerAt.Equal(want) {
		t.Fatalf("expected trigger %v, got %v", want, rem.TriggerAt)
	}
	if err := rem.Validate(); err != nil {
		t.Fatalf("expected valid reminder, got %v", err)
	}

	task.Reminder = nil
	if _, ok := ReminderFor(task, time.UTC); ok {
		t.Fatal("expected no reminder without offset")
	}
}

func TestReminderValidateRequiresTask(t *testing.T) {
	rem := Reminder{TriggerAt: time.Date(2026, 2, 9, 13, 0, 0, 0, time.UTC)}
	if err := rem.Validate(); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestFormatReminder(t *testing.T) {
	cases := map[int]string{
		0:    "0 min before",
		15:   "15 min before",
		60:   "1 hour before",
		150:  "2 hours before",
		1440: "1 day before",
		4320: "3 days before",
	}
	for minutes, want := range cases {
		if got := FormatReminder(minutes); got != want {
			t.Fatalf("FormatReminder(%d) = %q, want %q", minutes, got, want)
		}
	}
}
