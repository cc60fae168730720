package insight

import (
	"fmt"
	"time"

	"github.com/sandeepkv93/taskjar/internal/model"
)

// Layout names one way of looking at the task list.
type Layout string

const (
	LayoutList     Layout = "list"
	LayoutMagnet   Layout = "magnet"
	LayoutFocus    Layout = "focus"
	LayoutMemory   Layout = "memory"
	LayoutWheel    Layout = "wheel"
	LayoutPuzzle   Layout = "puzzle"
	LayoutStory    Layout = "story"
	LayoutIceberg  Layout = "iceberg"
	LayoutPacking  Layout = "packing"
	LayoutCalendar Layout = "calendar"
)

var Layouts = []Layout{
	LayoutList, LayoutCalendar, LayoutMagnet, LayoutFocus, LayoutMemory,
	LayoutWheel, LayoutPuzzle, LayoutStory, LayoutIceberg, LayoutPacking,
}

func (l Layout) IsValid() bool {
	for _, known := range Layouts {
		if l == known {
			return true
		}
	}
	return false
}

func ParseLayout(value string) (Layout, error) {
	l := Layout(value)
	if !l.IsValid() {
		return "", fmt.Errorf("insight: unknown layout %q", value)
	}
	return l, nil
}

const (
	packingCapacity = 10
	memoryDepth     = 10
	icebergEffort   = 70
	magnetColumns   = 3
)

// FocusView is the single task the focus layout puts in front of the user.
type FocusView struct {
	Task      model.Task
	HasTask   bool
	Completed int
	Total     int
}

func Focus(tasks []model.Task, now time.Time) FocusView {
	today := OnDate(tasks, model.DateOf(now))
	out := FocusView{Total: len(today)}
	for _, task := range today {
		if task.Completed {
			out.Completed++
			continue
		}
		if !out.HasTask {
			out.Task = task
			out.HasTask = true
		}
	}
	return out
}

// Story splits today's tasks by the hour they are scheduled.
type Story struct {
	Morning []model.Task
	Work    []model.Task
	Night   []model.Task
}

func StoryOf(tasks []model.Task, now time.Time) Story {
	var out Story
	for _, task := range OnDate(tasks, model.DateOf(now)) {
		switch {
		case task.Time.Hour < 12:
			out.Morning = append(out.Morning, task)
		case task.Time.Hour < 18:
			out.Work = append(out.Work, task)
		default:
			out.Night = append(out.Night, task)
		}
	}
	return out
}

// Iceberg separates today's heavy tasks from the rest.
type Iceberg struct {
	Visible []model.Task
	Hidden  []model.Task
}

func IcebergOf(tasks []model.Task, now time.Time) Iceberg {
	var out Iceberg
	for _, task := range OnDate(tasks, model.DateOf(now)) {
		if task.Effort > icebergEffort {
			out.Hidden = append(out.Hidden, task)
		} else {
			out.Visible = append(out.Visible, task)
		}
	}
	return out
}

// Packing fills a backpack of ten slots with today's pending tasks.
type Packing struct {
	Packed   []model.Task
	Left     []model.Task
	Capacity int
}

func PackingOf(tasks []model.Task, now time.Time) Packing {
	out := Packing{Capacity: packingCapacity}
	for _, task := range OnDate(tasks, model.DateOf(now)) {
		if task.Completed {
			continue
		}
		if len(out.Packed) < packingCapacity {
			out.Packed = append(out.Packed, task)
		} else {
			out.Left = append(out.Left, task)
		}
	}
	return out
}

// Memories returns the ten most recently added tasks, newest first.
func Memories(tasks []model.Task) []model.Task {
	start := max(len(tasks)-memoryDepth, 0)
	out := make([]model.Task, 0, len(tasks)-start)
	for i := len(tasks) - 1; i >= start; i-- {
		out = append(out, tasks[i])
	}
	return out
}

// Magnets lays today's pending tasks out in rows of three.
func Magnets(tasks []model.Task, now time.Time) [][]model.Task {
	rows := make([][]model.Task, 0)
	for _, task := range OnDate(tasks, model.DateOf(now)) {
		if task.Completed {
			continue
		}
		if len(rows) == 0 || len(rows[len(rows)-1]) == magnetColumns {
			rows = append(rows, make([]model.Task, 0, magnetColumns))
		}
		rows[len(rows)-1] = append(rows[len(rows)-1], task)
	}
	return rows
}

// Segment is one slice of the daily wheel.
type Segment struct {
	Task       model.Task
	StartAngle float64
	Sweep      float64
}

func Wheel(tasks []model.Task, now time.Time) []Segment {
	today := OnDate(tasks, model.DateOf(now))
	out := make([]Segment, 0, len(today))
	if len(today) == 0 {
		return out
	}
	sweep := 360.0 / float64(len(today))
	for i, task := range today {
		out = append(out, Segment{Task: task, StartAngle: float64(i) * sweep, Sweep: sweep})
	}
	return out
}

// Puzzle returns today's tasks as pieces; completed pieces are placed.
func Puzzle(tasks []model.Task, now time.Time) []model.Task {
	return OnDate(tasks, model.DateOf(now))
}
