package update

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/sandeepkv93/taskjar/internal/commands"
	"github.com/sandeepkv93/taskjar/internal/views"
)

func binding(keys, desc string) key.Binding {
	return key.NewBinding(key.WithKeys(keys), key.WithHelp(keys, desc))
}

var (
	todayKeys = []key.Binding{
		binding("j/k", "move"),
		binding("x", "done"),
		binding("s", "shift missed"),
		binding("X", "drop missed"),
		binding("d", "delete"),
		binding("f", "focus aura"),
		binding("L", "next layout"),
		binding("a", "add"),
	}
	calendarKeys = []key.Binding{
		binding("h/l", "day"),
		binding("j/k", "week"),
		binding("H/L", "month"),
		binding("t", "today"),
	}
	focusKeys = []key.Binding{
		binding("space", "start/pause"),
		binding("r", "reset"),
		binding("n", "next phase"),
		binding("x", "complete task"),
	}
)

// helpKeyMap groups global keys and the current view's keys as the two
// columns of the full help.
type helpKeyMap struct {
	global []key.Binding
	view   []key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding { return k.global }

func (k helpKeyMap) FullHelp() [][]key.Binding {
	if len(k.view) == 0 {
		return [][]key.Binding{k.global}
	}
	return [][]key.Binding{k.global, k.view}
}

func (m Model) keyMap() helpKeyMap {
	km := helpKeyMap{
		global: []key.Binding{
			binding(m.Keys.Today, "today"),
			binding(m.Keys.Calendar, "calendar"),
			binding(m.Keys.Insights, "insights"),
			binding(m.Keys.Focus, "focus"),
			binding("/", "command"),
			binding(m.Keys.Help, "help"),
			binding(m.Keys.Quit, "quit"),
		},
	}
	switch m.CurrentView {
	case ViewToday:
		km.view = todayKeys
	case ViewCalendar:
		km.view = calendarKeys
	case ViewFocus:
		km.view = focusKeys
	}
	return km
}

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return "\n" + m.renderHelpView()
}

func (m Model) renderHelpView() string {
	usage := make([]string, 0, len(commands.Types))
	for _, t := range commands.Types {
		usage = append(usage, commands.Usage(t))
	}
	hm := m.helpModel
	hm.ShowAll = true
	return views.RenderHelpPanel(views.HelpPanelData{
		CurrentView: string(m.CurrentView),
		HelpView:    hm.View(m.keyMap()),
		Commands:    usage,
	})
}
