package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/taskjar/internal/model"
	"github.com/sandeepkv93/taskjar/internal/notify"
	"github.com/sandeepkv93/taskjar/internal/scheduler"
)

const reminderHistory = 20

// syncReminders rebuilds the engine queue from the future reminders of
// the store.
func (m *Model) syncReminders() {
	if m.Scheduler == nil {
		return
	}
	now := m.store.Now()
	events := make([]scheduler.ReminderEvent, 0)
	for _, rem := range m.store.Dashboard().Reminders {
		if rem.TriggerAt.Before(now) {
			continue
		}
		events = append(events, scheduler.EventFor(rem))
	}
	if _, err := m.Scheduler.Replace(events); err != nil {
		m.setError(fmt.Errorf("reminder queue: %w", err))
	}
}

func (m *Model) applyReminder(ev scheduler.ReminderEvent) {
	task, err := m.store.Get(ev.TaskID)
	if err != nil || task.Completed {
		return
	}
	m.ReminderLog = append(m.ReminderLog, ev)
	if len(m.ReminderLog) > reminderHistory {
		m.ReminderLog = m.ReminderLog[len(m.ReminderLog)-reminderHistory:]
	}
	body := fmt.Sprintf("%s at %s (%s)", task.Title, task.Time.Kitchen(), model.FormatReminder(ev.MinutesBefore))
	m.Status = StatusBar{Text: "reminder: " + body}
	m.notify("Reminder", body, notify.LevelInfo)
}

func waitForReminderCmd(ch <-chan scheduler.ReminderEvent) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return ReminderDueMsg{Event: ev}
	}
}
