// Package insight derives read-only views from a task list. Every function
// is pure: it takes the full list and a reference time and never mutates.
package insight

import (
	"cmp"
	"slices"
	"time"

	"github.com/sandeepkv93/taskjar/internal/model"
	"github.com/sandeepkv93/taskjar/internal/schedule"
)

// OnDate returns the tasks scheduled on d, in list order.
func OnDate(tasks []model.Task, d model.Date) []model.Task {
	out := make([]model.Task, 0)
	for _, task := range tasks {
		if task.Date == d {
			out = append(out, task)
		}
	}
	return out
}

// VisibleAt applies the night-only rule: such tasks only show between 18:00
// and 06:00.
func VisibleAt(task model.Task, now time.Time) bool {
	return !task.NightOnly || schedule.IsNightTime(now)
}

// Agenda lists today's visible tasks, incomplete first, lightest effort
// first within each group.
func Agenda(tasks []model.Task, now time.Time) []model.Task {
	today := OnDate(tasks, model.DateOf(now))
	out := make([]model.Task, 0, len(today))
	for _, task := range today {
		if VisibleAt(task, now) {
			out = append(out, task)
		}
	}
	slices.SortStableFunc(out, func(a, b model.Task) int {
		if a.Completed != b.Completed {
			if a.Completed {
				return 1
			}
			return -1
		}
		return cmp.Compare(a.Effort, b.Effort)
	})
	return out
}

// DateEvents lists the tasks of one day, incomplete first, then by time.
func DateEvents(tasks []model.Task, d model.Date) []model.Task {
	out := OnDate(tasks, d)
	slices.SortStableFunc(out, func(a, b model.Task) int {
		if a.Completed != b.Completed {
			if a.Completed {
				return 1
			}
			return -1
		}
		return cmp.Compare(a.Time.Minutes(), b.Time.Minutes())
	})
	return out
}

// DayLabel renders d relative to today the way the day sheet titles it.
func DayLabel(d, today model.Date) string {
	switch d {
	case today:
		return "Today"
	case today.AddDays(1):
		return "Tomorrow"
	default:
		return d.In(time.UTC).Format("Monday, January 2, 2006")
	}
}
