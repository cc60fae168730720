package insight

import (
	"time"

	"github.com/sandeepkv93/taskjar/internal/model"
)

// Dashboard bundles every derived view for one reference instant.
type Dashboard struct {
	Now       time.Time
	Agenda    []model.Task
	Calendar  Month
	BrainLoad BrainLoad
	Buckets   []BucketRatio
	Habits    []Habit
	Reminders []model.Reminder
	Profile   ProfileStats
	Focus     FocusView
}

func Compute(tasks []model.Task, now time.Time) Dashboard {
	today := model.DateOf(now)
	return Dashboard{
		Now:       now,
		Agenda:    Agenda(tasks, now),
		Calendar:  CalendarMonth(tasks, today.Year, today.Month, today),
		BrainLoad: ComputeBrainLoad(tasks, now),
		Buckets:   BucketRatios(tasks, now),
		Habits:    Habits(tasks),
		Reminders: Reminders(tasks, now.Location()),
		Profile:   Profile(tasks),
		Focus:     Focus(tasks, now),
	}
}
