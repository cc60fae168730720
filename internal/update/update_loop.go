package update

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/taskjar/internal/model"
	"github.com/sandeepkv93/taskjar/internal/views"
)

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{clockTickCmd()}
	if m.Scheduler != nil {
		cmds = append(cmds, waitForReminderCmd(m.Scheduler.C()))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(typed)
	case SwitchViewMsg:
		if !isKnownView(typed.View) {
			return m, nil
		}
		return m.switchView(typed.View), nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
	case ClearStatusMsg:
		m.Status = StatusBar{}
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
		}
	case FocusTickMsg:
		return m.onFocusTick()
	case ClockTickMsg:
		m.refresh()
		return m, clockTickCmd()
	case ReminderDueMsg:
		m.applyReminder(typed.Event)
		if m.Scheduler != nil {
			return m, waitForReminderCmd(m.Scheduler.C())
		}
	}
	return m, nil
}

// viewForKey maps the global number keys to their views.
func (m Model) viewForKey(key string) (View, bool) {
	switch key {
	case m.Keys.Today:
		return ViewToday, true
	case m.Keys.Calendar:
		return ViewCalendar, true
	case m.Keys.Insights:
		return ViewInsights, true
	case m.Keys.Focus:
		return ViewFocus, true
	}
	return "", false
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.Palette.Active {
		return m.handlePaletteKey(msg), nil
	}
	key := msg.String()
	if v, ok := m.viewForKey(key); ok {
		return m.switchView(v), nil
	}
	switch key {
	case "/":
		return m.openPalette(""), nil
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		m.Status = StatusBar{Text: "help hidden"}
		if m.HelpVisible {
			m.Status = StatusBar{Text: "help shown"}
		}
		return m, nil
	case "ctrl+c", m.Keys.Quit:
		m.Quitting = true
		return m, tea.Quit
	}

	switch m.CurrentView {
	case ViewToday:
		return m.handleTodayKey(msg)
	case ViewCalendar:
		return m.handleCalendarKey(msg), nil
	case ViewFocus:
		return m.handleFocusKey(msg)
	}
	return m, nil
}

func (m Model) switchView(v View) Model {
	if m.CurrentView == v {
		return m
	}
	m.CurrentView = v
	if v == ViewFocus {
		m.bootstrapFocusTask()
	}
	if v == ViewCalendar {
		m.Calendar.Selected = m.selectedDate()
	}
	m.refresh()
	m.maybeShowAd()
	return m
}

func (m Model) selectedDate() model.Date {
	if task, ok := m.currentTodayTask(); ok {
		return task.Date
	}
	return m.Calendar.Selected
}

// mainPane renders the left column for the current view.
func (m Model) mainPane() string {
	switch m.CurrentView {
	case ViewCalendar:
		return m.renderCalendarView()
	case ViewInsights:
		return m.renderInsightsView()
	case ViewFocus:
		return m.renderFocusView()
	default:
		return m.renderTodayView()
	}
}

func (m Model) lastReminderLine() string {
	if len(m.ReminderLog) == 0 {
		return ""
	}
	last := m.ReminderLog[len(m.ReminderLog)-1]
	return fmt.Sprintf("last-reminder: %s @ %s", last.Title, last.TriggerAt.Format("15:04"))
}

func (m Model) footer() string {
	k := m.Keys
	return fmt.Sprintf("keys: %s today | %s cal | %s insights | %s focus | / cmd | %s help | %s quit",
		k.Today, k.Calendar, k.Insights, k.Focus, k.Help, k.Quit)
}

func (m Model) View() string {
	side := strings.TrimSpace(m.renderCommandPalette() + "\n" + m.renderTaskDetail())
	notes := strings.TrimSpace(m.lastReminderLine() + "\n" + strings.TrimSpace(m.renderNotificationsView()))

	return views.RenderApp(views.AppData{
		Header:       fmt.Sprintf("taskjar | %s | view: %s | streak: %d", m.store.UserName(), m.CurrentView, m.store.Streak().Count),
		LeftPane:     m.mainPane(),
		RightPane:    side + m.renderHelpIfVisible(),
		StatusLine:   m.Status.Text,
		StatusError:  m.Status.IsError,
		Sponsored:    m.renderAdSlot(),
		Notification: notes,
		Footer:       m.footer(),
	})
}

var knownViews = map[View]bool{ViewToday: true, ViewCalendar: true, ViewInsights: true, ViewFocus: true}

func isKnownView(v View) bool { return knownViews[v] }

func clockTickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return ClockTickMsg{} })
}
