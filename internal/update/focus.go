package update

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/taskjar/internal/views"
)

// phaseLength is the full length of the current phase in seconds.
func (f FocusState) phaseLength() int {
	if f.Phase == FocusPhaseBreak {
		return f.BreakDurationSec
	}
	return f.WorkDurationSec
}

// progress reports how much of the current phase has elapsed, in [0,1].
func (f FocusState) progress() float64 {
	total := f.phaseLength()
	if total <= 0 {
		return 0
	}
	return float64(total-f.RemainingSec) / float64(total)
}

func (f FocusState) clock() string {
	return fmt.Sprintf("%02d:%02d", f.RemainingSec/60, f.RemainingSec%60)
}

// advance moves to the other phase and leaves the timer stopped.
func (f *FocusState) advance() string {
	f.Running = false
	if f.Phase == FocusPhaseWork {
		f.CompletedPomodoros++
		f.Phase = FocusPhaseBreak
		f.RemainingSec = f.BreakDurationSec
		return "break ready"
	}
	f.Phase = FocusPhaseWork
	f.RemainingSec = f.WorkDurationSec
	return "focus block ready"
}

// tick counts one second down and reports whether the phase just ended.
func (f *FocusState) tick() bool {
	if !f.Running {
		return false
	}
	if f.RemainingSec > 0 {
		f.RemainingSec--
	}
	if f.RemainingSec > 0 {
		return false
	}
	f.Running = false
	return true
}

func (m Model) handleFocusKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	text := ""
	switch msg.String() {
	case " ":
		if m.Focus.Running {
			m.Focus.Running = false
			text = "focus paused"
			break
		}
		if m.Focus.RemainingSec <= 0 {
			m.Focus.RemainingSec = m.Focus.phaseLength()
		}
		m.Focus.Running = true
		text, cmd = "focus running", focusTickCmd()
	case "r":
		m.Focus.Running = false
		m.Focus.RemainingSec = m.Focus.phaseLength()
		text = "focus reset"
	case "n":
		text = m.Focus.advance()
	case "x":
		if m.Focus.TaskID != "" {
			m.toggleTask(m.Focus.TaskID)
		}
		return m, nil
	default:
		return m, nil
	}
	m.Status = StatusBar{Text: text}
	return m, cmd
}

func (m Model) onFocusTick() (tea.Model, tea.Cmd) {
	if !m.Focus.Running {
		return m, nil
	}
	if !m.Focus.tick() {
		return m, focusTickCmd()
	}
	next := "start break"
	if m.Focus.Phase == FocusPhaseBreak {
		next = "start the next block"
	}
	m.Status = StatusBar{Text: fmt.Sprintf("%s session complete; press n to %s", m.Focus.Phase, next)}
	return m, nil
}

// bootstrapFocusTask picks the focused task, else the selected row, else
// the first pending task of today.
func (m *Model) bootstrapFocusTask() {
	if id := m.store.FocusedID(); id != "" {
		if task, err := m.store.Get(id); err == nil {
			m.Focus.TaskID, m.Focus.TaskTitle = task.ID, task.Title
			return
		}
	}
	if m.Focus.TaskID != "" {
		if _, err := m.store.Get(m.Focus.TaskID); err == nil {
			return
		}
		m.Focus.TaskID, m.Focus.TaskTitle = "", ""
	}
	if task, ok := m.currentTodayTask(); ok && !task.Completed {
		m.Focus.TaskID, m.Focus.TaskTitle = task.ID, task.Title
		return
	}
	if fv := m.store.Dashboard().Focus; fv.HasTask {
		m.Focus.TaskID, m.Focus.TaskTitle = fv.Task.ID, fv.Task.Title
	}
}

func (m Model) renderFocusView() string {
	pct := m.Focus.progress()
	return views.RenderFocusPanel(views.FocusPanelData{
		TaskTitle:          m.Focus.TaskTitle,
		Phase:              string(m.Focus.Phase),
		Timer:              m.Focus.clock(),
		ProgressView:       m.focusProgress.ViewAs(pct),
		ProgressPct:        int(pct * 100),
		CompletedPomodoros: m.Focus.CompletedPomodoros,
		ShowEndPrompt:      m.Focus.RemainingSec == 0 && !m.Focus.Running,
		Aura:               m.store.FocusedID() != "",
	})
}

func focusTickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return FocusTickMsg{} })
}
