// Package schedule holds the stateless helpers that turn energy and effort
// into a default time and priority, and decide when a task was missed.
package schedule

import (
	"time"

	"github.com/sandeepkv93/taskjar/internal/model"
)

type band struct {
	low, high int
	startHour int
}

// Each band spans three hours of the day.
var energyBands = []band{
	{low: 0, high: 33, startHour: 6},
	{low: 33, high: 67, startHour: 12},
	{low: 67, high: 100, startHour: 18},
}

const bandMinutes = 180

// TimeFromEnergy maps an energy level to a time of day. Low energy lands in
// the early morning, medium around midday and high in the evening, moving
// linearly through each band.
func TimeFromEnergy(energy int) model.Clock {
	energy = min(max(energy, 0), 100)
	b := energyBands[len(energyBands)-1]
	for _, candidate := range energyBands {
		if energy < candidate.high {
			b = candidate
			break
		}
	}
	offset := (energy - b.low) * bandMinutes / (b.high - b.low)
	total := b.startHour*60 + offset
	return model.Clock{Hour: total / 60, Minute: total % 60}
}

func PriorityFromEffort(effort int) model.Priority {
	switch {
	case effort > 70:
		return model.PriorityHigh
	case effort > 40:
		return model.PriorityMedium
	default:
		return model.PriorityLow
	}
}

// IsMissed reports whether an incomplete task's scheduled time has passed.
func IsMissed(task model.Task, now time.Time) bool {
	if task.Completed {
		return false
	}
	return task.Due(now.Location()).Before(now)
}

// Tomorrow is the date a missed task is shifted to.
func Tomorrow(now time.Time) model.Date {
	return model.DateOf(now).AddDays(1)
}

// IsNightTime reports whether night-only tasks are visible at now.
func IsNightTime(now time.Time) bool {
	h := now.Hour()
	return h >= 18 || h < 6
}
