package update

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/taskjar/internal/insight"
	"github.com/sandeepkv93/taskjar/internal/model"
	"github.com/sandeepkv93/taskjar/internal/views"
)

func (m Model) handleCalendarKey(msg tea.KeyMsg) Model {
	sel := m.Calendar.Selected
	switch msg.String() {
	case "h", "left":
		sel = sel.AddDays(-1)
	case "l", "right":
		sel = sel.AddDays(1)
	case "k", "up":
		sel = sel.AddDays(-7)
	case "j", "down":
		sel = sel.AddDays(7)
	case "H":
		sel = shiftMonth(sel, -1)
	case "L":
		sel = shiftMonth(sel, 1)
	case "t":
		sel = model.DateOf(m.store.Now())
	default:
		return m
	}
	m.Calendar.Selected = sel
	m.Status = StatusBar{Text: fmt.Sprintf("calendar: %s", sel)}
	return m
}

// shiftMonth moves to the same day of another month, clamped to its
// last day.
func shiftMonth(d model.Date, delta int) model.Date {
	year, month := insight.Shift(d.Year, d.Month, delta)
	days := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	return model.Date{Year: year, Month: month, Day: min(d.Day, days)}
}

func (m Model) renderCalendarView() string {
	sel := m.Calendar.Selected
	month := m.store.Month(sel.Year, sel.Month)

	rows := make([]table.Row, 0, 6)
	for _, week := range month.Weeks() {
		row := make(table.Row, 0, len(week))
		for _, cell := range week {
			row = append(row, cell.Label(sel))
		}
		rows = append(rows, row)
	}
	grid := m.calendarTable
	grid.SetRows(rows)

	events := m.store.DateEvents(sel)
	eventRows := make([]views.TaskRowData, 0, len(events))
	for _, task := range events {
		eventRows = append(eventRows, m.taskRow(0, task))
	}
	return views.RenderCalendarPanel(views.CalendarPanelData{
		Title:    fmt.Sprintf("%s %d", sel.Month, sel.Year),
		GridView: grid.View(),
		DayLabel: insight.DayLabel(sel, model.DateOf(m.store.Now())),
		Events:   eventRows,
	})
}
