package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/taskjar/internal/commands"
	"github.com/sandeepkv93/taskjar/internal/insight"
	"github.com/sandeepkv93/taskjar/internal/model"
	"github.com/sandeepkv93/taskjar/internal/notify"
)

func (m Model) openPalette(prefill string) Model {
	m.Palette.Active = true
	m.commandInput.SetValue(prefill)
	m.commandInput.CursorEnd()
	m.commandInput.Focus()
	m.Palette.Input = prefill
	m.Status = StatusBar{Text: "command palette active", IsError: false}
	return m
}

func (m Model) closePalette() Model {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
	return m
}

func (m Model) handlePaletteKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m = m.closePalette()
		m.Status = StatusBar{Text: "command palette closed", IsError: false}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		m = m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m
		}
		m.commandInput, _ = m.commandInput.Update(msg)
		m.Palette.Input = m.commandInput.Value()
	}
	return m
}

// resolveRef maps a palette reference to a task: numbers index the rows
// of the today pane, anything else is an id or unique id prefix.
func (m Model) resolveRef(ref commands.Ref) (model.Task, error) {
	if ref.Index > 0 {
		if ref.Index > len(m.Today.Rows) {
			return model.Task{}, &commands.CommandError{
				Code:    commands.ErrCodeInvalidArgument,
				Message: fmt.Sprintf("no task #%d on screen", ref.Index),
			}
		}
		return m.Today.Rows[ref.Index-1], nil
	}
	return m.store.Resolve(ref.ID)
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m.closePalette()
	}

	withTask := func(ref commands.Ref, fn func(model.Task) (commands.Result, error)) (commands.Result, error) {
		task, err := m.resolveRef(ref)
		if err != nil {
			return commands.Result{}, err
		}
		return fn(task)
	}

	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			task, err := m.store.Create(m.ctx, a.Input())
			m.afterMutation()
			if err != nil {
				return commands.Result{}, err
			}
			m.SelectedTaskID = task.ID
			m.refresh()
			m.maybeSurprise(insight.SurpriseOnSave)
			return commands.Result{Message: fmt.Sprintf("added %q for %s at %s", task.Title, task.Date, task.Time)}, nil
		},
		Done: func(ref commands.Ref) (commands.Result, error) {
			return withTask(ref, func(task model.Task) (commands.Result, error) {
				m.toggleTask(task.ID)
				return commands.Result{Message: m.Status.Text}, m.statusErr()
			})
		},
		Remove: func(ref commands.Ref) (commands.Result, error) {
			return withTask(ref, func(task model.Task) (commands.Result, error) {
				m.deleteTask(task.ID)
				return commands.Result{Message: fmt.Sprintf("deleted %q", task.Title)}, m.statusErr()
			})
		},
		Shift: func(ref commands.Ref) (commands.Result, error) {
			return withTask(ref, func(task model.Task) (commands.Result, error) {
				m.shiftTask(task.ID)
				return commands.Result{Message: m.Status.Text}, m.statusErr()
			})
		},
		Drop: func(ref commands.Ref) (commands.Result, error) {
			return withTask(ref, func(task model.Task) (commands.Result, error) {
				m.dropTask(task.ID)
				return commands.Result{Message: fmt.Sprintf("dropped %q", task.Title)}, m.statusErr()
			})
		},
		Emoji: func(a commands.EmojiArgs) (commands.Result, error) {
			return withTask(a.Target, func(task model.Task) (commands.Result, error) {
				_, err := m.store.AttachEmoji(m.ctx, task.ID, a.Emoji)
				m.afterMutation()
				return commands.Result{Message: fmt.Sprintf("%s attached to %q", a.Emoji, task.Title)}, err
			})
		},
		Layout: func(l insight.Layout) (commands.Result, error) {
			m.setLayout(l)
			return commands.Result{Message: m.Status.Text}, nil
		},
		Focus: func(a commands.FocusArgs) (commands.Result, error) {
			if a.Off {
				m.clearFocus()
				return commands.Result{Message: m.Status.Text}, nil
			}
			return withTask(a.Target, func(task model.Task) (commands.Result, error) {
				m.focusTask(task)
				return commands.Result{Message: m.Status.Text}, m.statusErr()
			})
		},
		Mood: func(mood insight.Mood) (commands.Result, error) {
			m.setMood(mood)
			return commands.Result{Message: m.Status.Text}, nil
		},
		Premium: func() (commands.Result, error) {
			if err := m.store.UnlockPremium(m.ctx); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: "premium features unlocked for 24 hours"}, nil
		},
		Help: func() (commands.Result, error) {
			m.HelpVisible = true
			return commands.Result{Message: "help shown"}, nil
		},
	})
	if err != nil {
		m.setError(err)
		m.notify("Command failed", err.Error(), notify.LevelWarn)
	} else {
		m.Status = StatusBar{Text: res.Message, IsError: false}
	}
	return m.closePalette()
}

func (m Model) statusErr() error {
	if m.Status.IsError {
		return m.LastError
	}
	return nil
}
