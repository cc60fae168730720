package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Reminder is the notification derived from a task with a reminder offset.
type Reminder struct {
	TaskID        string
	Title         string
	MinutesBefore int
	DueAt         time.Time
	TriggerAt     time.Time
}

// ReminderFor derives the reminder of t, if it has one.
func ReminderFor(t Task, loc *time.Location) (Reminder, bool) {
	if t.Reminder == nil {
		return Reminder{}, false
	}
	due := t.Due(loc)
	return Reminder{
		TaskID:        t.ID,
		Title:         t.Title,
		MinutesBefore: *t.Reminder,
		DueAt:         due,
		TriggerAt:     due.Add(-time.Duration(*t.Reminder) * time.Minute),
	}, true
}

func (r Reminder) Validate() error {
	if strings.TrimSpace(r.TaskID) == "" {
		return errors.New("model: reminder task id is required")
	}
	if r.TriggerAt.IsZero() {
		return errors.New("model: reminder trigger time is required")
	}
	if r.MinutesBefore < 0 {
		return fmt.Errorf("model: reminder offset %d is negative", r.MinutesBefore)
	}
	return nil
}

// FormatReminder renders a minutes-before offset the way the reminder list
// shows it.
func FormatReminder(minutes int) string {
	switch {
	case minutes < 60:
		return fmt.Sprintf("%d min before", minutes)
	case minutes < 1440:
		return plural(minutes/60, "hour") + " before"
	default:
		return plural(minutes/1440, "day") + " before"
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
