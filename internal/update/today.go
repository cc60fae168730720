package update

import (
	"errors"
	"fmt"
	"slices"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/taskjar/internal/insight"
	"github.com/sandeepkv93/taskjar/internal/model"
	"github.com/sandeepkv93/taskjar/internal/notify"
	"github.com/sandeepkv93/taskjar/internal/schedule"
	"github.com/sandeepkv93/taskjar/internal/tasks"
	"github.com/sandeepkv93/taskjar/internal/views"
)

// refresh recomputes the derived views and rebuilds the today rows,
// keeping the selection on the same task when it is still visible.
func (m *Model) refresh() {
	dash := m.store.Refresh()
	all := m.store.List(tasks.Filter{})
	m.Today.Sections = layoutSections(m.store.Layout(), m.store.Mood(), dash, all)
	rows := make([]model.Task, 0, len(all))
	for _, s := range m.Today.Sections {
		rows = append(rows, s.Tasks...)
	}
	m.Today.Rows = rows
	if i := slices.IndexFunc(m.Today.Rows, func(t model.Task) bool { return t.ID == m.SelectedTaskID }); i >= 0 {
		m.Today.Cursor = i
	}
	m.Today.Cursor = min(max(m.Today.Cursor, 0), max(len(m.Today.Rows)-1, 0))
	m.syncSelectedTaskToTodayCursor()
}

func layoutSections(layout insight.Layout, mood insight.Mood, dash insight.Dashboard, all []model.Task) []Section {
	now := dash.Now
	switch layout {
	case insight.LayoutMagnet:
		rows := insight.Magnets(all, now)
		out := make([]Section, 0, len(rows))
		for i, row := range rows {
			out = append(out, Section{Title: fmt.Sprintf("Fridge row %d", i+1), Tasks: row})
		}
		return out
	case insight.LayoutFocus:
		fv := dash.Focus
		s := Section{Title: fmt.Sprintf("One thing now (%d/%d done)", fv.Completed, fv.Total)}
		if fv.HasTask {
			s.Tasks = []model.Task{fv.Task}
		}
		return []Section{s}
	case insight.LayoutMemory:
		return []Section{{Title: "Memory lane", Tasks: insight.Memories(all)}}
	case insight.LayoutWheel:
		segs := insight.Wheel(all, now)
		s := Section{Title: fmt.Sprintf("Wheel (%d slices)", len(segs))}
		for _, seg := range segs {
			s.Tasks = append(s.Tasks, seg.Task)
		}
		return []Section{s}
	case insight.LayoutPuzzle:
		placed, loose := Section{Title: "Placed pieces"}, Section{Title: "Loose pieces"}
		for _, t := range insight.Puzzle(all, now) {
			if t.Completed {
				placed.Tasks = append(placed.Tasks, t)
			} else {
				loose.Tasks = append(loose.Tasks, t)
			}
		}
		return []Section{loose, placed}
	case insight.LayoutStory:
		st := insight.StoryOf(all, now)
		return []Section{
			{Title: "Morning", Tasks: st.Morning},
			{Title: "Work", Tasks: st.Work},
			{Title: "Night", Tasks: st.Night},
		}
	case insight.LayoutIceberg:
		ice := insight.IcebergOf(all, now)
		return []Section{
			{Title: "Above water", Tasks: ice.Visible},
			{Title: "Below water", Tasks: ice.Hidden},
		}
	case insight.LayoutPacking:
		p := insight.PackingOf(all, now)
		return []Section{
			{Title: fmt.Sprintf("Packed %d/%d", len(p.Packed), p.Capacity), Tasks: p.Packed},
			{Title: "Left behind", Tasks: p.Left},
		}
	default:
		return []Section{{Title: "Agenda", Tasks: mood.Limit(dash.Agenda)}}
	}
}

func (m *Model) syncSelectedTaskToTodayCursor() {
	if task, ok := m.currentTodayTask(); ok {
		m.SelectedTaskID = task.ID
		return
	}
	m.SelectedTaskID = ""
}

func (m Model) currentTodayTask() (model.Task, bool) {
	if m.Today.Cursor < 0 || m.Today.Cursor >= len(m.Today.Rows) {
		return model.Task{}, false
	}
	return m.Today.Rows[m.Today.Cursor], true
}

func (m Model) handleTodayKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	task, ok := m.currentTodayTask()
	switch msg.String() {
	case "up", "k":
		if m.Today.Cursor > 0 {
			m.Today.Cursor--
		}
		m.syncSelectedTaskToTodayCursor()
		return m, nil
	case "down", "j":
		if m.Today.Cursor < len(m.Today.Rows)-1 {
			m.Today.Cursor++
		}
		m.syncSelectedTaskToTodayCursor()
		return m, nil
	case "L":
		next := nextLayout(m.store.Layout())
		m.setLayout(next)
		return m, nil
	case "a":
		return m.openPalette("add "), nil
	}
	if !ok {
		return m, nil
	}
	switch msg.String() {
	case "x", " ":
		m.toggleTask(task.ID)
	case "s":
		m.shiftTask(task.ID)
	case "X":
		m.dropTask(task.ID)
	case "d":
		m.deleteTask(task.ID)
	case "f":
		if m.store.FocusedID() == task.ID {
			m.clearFocus()
		} else {
			m.focusTask(task)
		}
	}
	return m, nil
}

func nextLayout(current insight.Layout) insight.Layout {
	i := slices.Index(insight.Layouts, current)
	return insight.Layouts[(i+1)%len(insight.Layouts)]
}

func (m *Model) setLayout(l insight.Layout) {
	m.store.SetLayout(l)
	if l == insight.LayoutCalendar {
		m.CurrentView = ViewCalendar
	}
	m.refresh()
	m.Status = StatusBar{Text: fmt.Sprintf("layout: %s", l)}
}

func (m *Model) toggleTask(id string) {
	res, err := m.store.ToggleComplete(m.ctx, id)
	m.afterMutation()
	if err != nil && !errors.Is(err, model.ErrPersistence) {
		m.setError(err)
		return
	}
	switch {
	case res.Missed:
		m.Status = StatusBar{Text: fmt.Sprintf("%q was missed: [s] shift to tomorrow or [X] drop", res.Task.Title)}
	case res.Task.Completed:
		m.Status = StatusBar{Text: fmt.Sprintf("done: %s", res.Task.Title)}
	default:
		m.Status = StatusBar{Text: fmt.Sprintf("reopened: %s", res.Task.Title)}
	}
	if res.Streak.Rewarded {
		m.notify("Reward jar", fmt.Sprintf("Jar filled! %d reward points", m.store.Streak().RewardPoints), notify.LevelReward)
	}
	if res.Task.Completed {
		m.maybeSurprise(insight.SurpriseOnComplete)
		m.maybeShowAd()
	}
	if err != nil {
		m.setError(err)
	}
}

func (m *Model) setMood(mood insight.Mood) {
	m.store.SetMood(mood)
	m.refresh()
	m.Status = StatusBar{Text: fmt.Sprintf("mood: %s", mood)}
}

func (m *Model) shiftTask(id string) {
	task, err := m.store.Shift(m.ctx, id)
	m.afterMutation()
	if err != nil {
		m.setError(err)
		return
	}
	m.Status = StatusBar{Text: fmt.Sprintf("shifted %q to %s", task.Title, task.Date)}
}

func (m *Model) dropTask(id string) {
	err := m.store.Drop(m.ctx, id)
	m.afterMutation()
	if err != nil {
		m.setError(err)
		return
	}
	m.Status = StatusBar{Text: "task dropped"}
}

func (m *Model) deleteTask(id string) {
	err := m.store.Delete(m.ctx, id)
	m.afterMutation()
	if err != nil {
		m.setError(err)
		return
	}
	m.Status = StatusBar{Text: "task deleted"}
}

func (m *Model) focusTask(task model.Task) {
	if err := m.store.FocusAura(task.ID); err != nil {
		m.setError(err)
		return
	}
	m.Focus.TaskID = task.ID
	m.Focus.TaskTitle = task.Title
	m.Ad = nil
	m.refresh()
	m.Status = StatusBar{Text: fmt.Sprintf("focus aura on %q", task.Title)}
}

func (m *Model) clearFocus() {
	m.store.ClearFocusAura()
	m.refresh()
	m.Status = StatusBar{Text: "focus aura off"}
}

// afterMutation rebuilds the rows and reminder queue once the store
// changed, whether or not the save succeeded.
func (m *Model) afterMutation() {
	m.refresh()
	m.syncReminders()
}

func (m *Model) setError(err error) {
	m.LastError = err
	m.Status = StatusBar{Text: err.Error(), IsError: true}
}

func (m Model) taskRow(i int, task model.Task) views.TaskRowData {
	now := m.store.Now()
	row := views.TaskRowData{
		Index:     i,
		ID:        task.ID,
		Title:     task.Title,
		Emoji:     task.Emoji,
		Date:      task.Date.String(),
		Time:      task.Time.Kitchen(),
		Priority:  string(task.Priority),
		Bucket:    string(task.Bucket),
		Completed: task.Completed,
		Missed:    schedule.IsMissed(task, now),
		Selected:  task.ID == m.SelectedTaskID,
		Focused:   task.ID == m.store.FocusedID(),
	}
	if cd, ok := insight.CountdownTo(task, now); ok && cd.Urgent {
		row.Countdown = cd.String()
	}
	return row
}

func (m Model) renderTodayView() string {
	dash := m.store.Dashboard()
	filled, capacity := m.store.Jar()
	st := m.store.Streak()
	risk := m.store.Risk()

	sections := make([]views.SectionData, 0, len(m.Today.Sections))
	n := 0
	for _, s := range m.Today.Sections {
		sd := views.SectionData{Title: s.Title}
		for _, task := range s.Tasks {
			n++
			sd.Rows = append(sd.Rows, m.taskRow(n, task))
		}
		sections = append(sections, sd)
	}
	streakData := views.StreakData{
		Count:        st.Count,
		JarFilled:    filled,
		JarCapacity:  capacity,
		RewardPoints: st.RewardPoints,
		AtRisk:       risk.AtRisk,
	}
	if risk.HasSuggestion {
		streakData.Suggestion = risk.Suggestion.Title
	}
	return views.RenderTodayPanel(views.TodayPanelData{
		Greeting: greeting(m.store.UserName(), dash.Now.Hour()),
		DayLabel: dash.Now.Format("Monday, January 2, 2006"),
		Layout:   string(m.store.Layout()),
		Sections: sections,
		Streak:   streakData,
	})
}

func greeting(name string, hour int) string {
	switch {
	case hour < 12:
		return "Good morning, " + name
	case hour < 18:
		return "Good afternoon, " + name
	default:
		return "Good evening, " + name
	}
}

func (m Model) renderTaskDetail() string {
	task, ok := m.currentTodayTask()
	if !ok {
		return views.RenderTaskDetail(views.TaskDetailData{})
	}
	now := m.store.Now()
	data := views.TaskDetailData{
		Title:    task.Title,
		Emoji:    task.Emoji,
		When:     fmt.Sprintf("%s %s", insight.DayLabel(task.Date, model.DateOf(now)), task.Time.Kitchen()),
		Priority: task.Priority.Label(),
		Bucket:   string(task.Bucket),
		TaskType: string(task.TaskType),
		Effort:   task.Effort,
		Energy:   task.EnergyLevel,
		Place:    task.Place,
		Why:      task.Why,
		HasImage: task.Image != "",
		Missed:   schedule.IsMissed(task, now),
	}
	if task.Reminder != nil {
		data.Reminder = model.FormatReminder(*task.Reminder)
	}
	if cd, ok := insight.CountdownTo(task, now); ok {
		data.Countdown = cd.String()
	}
	if task.Description != "" {
		data.DescriptionView = views.RenderMarkdown(task.Description)
	}
	return views.RenderTaskDetail(data)
}
