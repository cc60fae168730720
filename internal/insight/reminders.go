package insight

import (
	"slices"
	"time"

	"github.com/sandeepkv93/taskjar/internal/model"
)

// Reminders lists the reminders of incomplete tasks ordered by trigger time.
func Reminders(tasks []model.Task, loc *time.Location) []model.Reminder {
	out := make([]model.Reminder, 0)
	for _, task := range tasks {
		if task.Completed {
			continue
		}
		if rem, ok := model.ReminderFor(task, loc); ok {
			out = append(out, rem)
		}
	}
	slices.SortStableFunc(out, func(a, b model.Reminder) int {
		return a.TriggerAt.Compare(b.TriggerAt)
	})
	return out
}
