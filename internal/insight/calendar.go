package insight

import (
	"fmt"
	"strings"
	"time"

	"github.com/sandeepkv93/taskjar/internal/model"
)

const (
	CalendarCells    = 42
	overflowAfter    = 3
	calendarWeekDays = 7
)

// DayCell aggregates the tasks of one calendar day.
type DayCell struct {
	Date      model.Date
	InMonth   bool
	IsToday   bool
	Total     int
	Completed int
	// Pending holds the distinct priorities of pending tasks in first-seen order.
	Pending []model.Priority
	// Overflow is the task count when more than three tasks share the day.
	Overflow int
}

func (c DayCell) OnlyCompleted() bool {
	return c.Total > 0 && c.Completed == c.Total
}

type Month struct {
	Year  int
	Month time.Month
	Cells [CalendarCells]DayCell
}

// CalendarMonth builds a six-week grid for the month, starting on the
// Sunday on or before the first day and padded with neighbouring months.
func CalendarMonth(tasks []model.Task, year int, month time.Month, today model.Date) Month {
	first := model.Date{Year: year, Month: month, Day: 1}
	start := first.AddDays(-int(first.Weekday()))

	byDate := make(map[model.Date][]model.Task)
	for _, task := range tasks {
		byDate[task.Date] = append(byDate[task.Date], task)
	}

	out := Month{Year: year, Month: month}
	for i := range out.Cells {
		d := start.AddDays(i)
		out.Cells[i] = aggregateDay(d, byDate[d])
		out.Cells[i].InMonth = d.Month == month && d.Year == year
		out.Cells[i].IsToday = d == today
	}
	return out
}

func aggregateDay(d model.Date, tasks []model.Task) DayCell {
	cell := DayCell{Date: d, Total: len(tasks)}
	seen := make(map[model.Priority]bool, 3)
	for _, task := range tasks {
		if task.Completed {
			cell.Completed++
			continue
		}
		if !seen[task.Priority] {
			seen[task.Priority] = true
			cell.Pending = append(cell.Pending, task.Priority)
		}
	}
	if cell.Total > overflowAfter {
		cell.Overflow = cell.Total
	}
	return cell
}

// Label renders a day as its number followed by one mark per pending
// priority, a tick when everything is done, or +N past three tasks.
func (cell DayCell) Label(selected model.Date) string {
	if !cell.InMonth {
		return ""
	}
	var b strings.Builder
	day := fmt.Sprintf("%d", cell.Date.Day)
	switch {
	case cell.Date == selected:
		day = "[" + day + "]"
	case cell.IsToday:
		day = "*" + day
	}
	b.WriteString(day)
	switch {
	case cell.Overflow > 0:
		b.WriteString(fmt.Sprintf("+%d", cell.Overflow))
	case cell.OnlyCompleted():
		b.WriteString("✓")
	default:
		for _, p := range cell.Pending {
			b.WriteString(strings.ToUpper(string(p)[:1]))
		}
	}
	return b.String()
}

// Weeks splits the grid into rows of seven.
func (m Month) Weeks() [][]DayCell {
	out := make([][]DayCell, 0, CalendarCells/calendarWeekDays)
	for i := 0; i < CalendarCells; i += calendarWeekDays {
		out = append(out, m.Cells[i:i+calendarWeekDays])
	}
	return out
}

// Shift moves a (year, month) pair by delta months.
func Shift(year int, month time.Month, delta int) (int, time.Month) {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, delta, 0)
	return t.Year(), t.Month()
}
