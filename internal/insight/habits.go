package insight

import "github.com/sandeepkv93/taskjar/internal/model"

const (
	habitMinOccurrences = 3
	habitMaxGrowth      = 10
)

type HabitTier string

const (
	TierSeedling HabitTier = "seedling"
	TierSprout   HabitTier = "sprout"
	TierTree     HabitTier = "tree"
)

type Habit struct {
	Title     string
	Count     int
	Completed int
}

// Growth caps completed occurrences at ten.
func (h Habit) Growth() int {
	return min(h.Completed, habitMaxGrowth)
}

func (h Habit) Tier() HabitTier {
	switch g := h.Growth(); {
	case g < 3:
		return TierSeedling
	case g < 7:
		return TierSprout
	default:
		return TierTree
	}
}

// Habits groups every task by exact title and keeps titles seen at least
// three times, in order of first appearance.
func Habits(tasks []model.Task) []Habit {
	order := make([]string, 0)
	byTitle := make(map[string]*Habit)
	for _, task := range tasks {
		h, ok := byTitle[task.Title]
		if !ok {
			h = &Habit{Title: task.Title}
			byTitle[task.Title] = h
			order = append(order, task.Title)
		}
		h.Count++
		if task.Completed {
			h.Completed++
		}
	}

	out := make([]Habit, 0)
	for _, title := range order {
		if h := byTitle[title]; h.Count >= habitMinOccurrences {
			out = append(out, *h)
		}
	}
	return out
}
