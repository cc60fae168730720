package insight

import (
	"fmt"
	"strings"
	"time"

	"github.com/sandeepkv93/taskjar/internal/model"
)

const minutesSavedPerTask = 30

type ProfileStats struct {
	Total     int
	Completed int
	Pending   int
}

func Profile(tasks []model.Task) ProfileStats {
	var out ProfileStats
	for _, task := range tasks {
		out.Total++
		if task.Completed {
			out.Completed++
		}
	}
	out.Pending = out.Total - out.Completed
	return out
}

// Receipt summarises one day of completed work.
type Receipt struct {
	Date         model.Date
	Completed    int
	AvgEnergy    int
	MinutesSaved int
	RewardPoints int
}

func LifeReceipt(tasks []model.Task, now time.Time, rewardPoints int) Receipt {
	today := model.DateOf(now)
	out := Receipt{Date: today, RewardPoints: rewardPoints}
	energy := 0
	for _, task := range OnDate(tasks, today) {
		if task.Completed {
			out.Completed++
			energy += task.EnergyLevel
		}
	}
	out.AvgEnergy = (energy + max(out.Completed, 1)/2) / max(out.Completed, 1)
	out.MinutesSaved = out.Completed * minutesSavedPerTask
	return out
}

// Markdown renders the receipt as a small table.
func (r Receipt) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "### Life receipt, %s\n\n", r.Date)
	b.WriteString("| item | value |\n|---|---|\n")
	fmt.Fprintf(&b, "| tasks completed | %d |\n", r.Completed)
	fmt.Fprintf(&b, "| average energy | %d%% |\n", r.AvgEnergy)
	fmt.Fprintf(&b, "| minutes saved | %d |\n", r.MinutesSaved)
	fmt.Fprintf(&b, "| reward points | %d |\n", r.RewardPoints)
	return b.String()
}

// CompletedOn counts completed tasks scheduled on d.
func CompletedOn(tasks []model.Task, d model.Date) int {
	n := 0
	for _, task := range tasks {
		if task.Date == d && task.Completed {
			n++
		}
	}
	return n
}
