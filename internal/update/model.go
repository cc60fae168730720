package update

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/sandeepkv93/taskjar/internal/ads"
	"github.com/sandeepkv93/taskjar/internal/insight"
	"github.com/sandeepkv93/taskjar/internal/model"
	"github.com/sandeepkv93/taskjar/internal/notify"
	"github.com/sandeepkv93/taskjar/internal/scheduler"
	"github.com/sandeepkv93/taskjar/internal/tasks"
)

type View string

const (
	ViewToday    View = "Today"
	ViewCalendar View = "Calendar"
	ViewInsights View = "Insights"
	ViewFocus    View = "Focus"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Today    string
	Calendar string
	Insights string
	Focus    string
	Help     string
	Quit     string
}

type Model struct {
	CurrentView    View
	SelectedTaskID string
	Today          TodayState
	Calendar       CalendarState
	Focus          FocusState
	Palette        CommandPaletteState
	HelpVisible    bool
	Scheduler      *scheduler.Engine
	ReminderLog    []scheduler.ReminderEvent
	Notifications  []notify.Notification
	DesktopEnabled bool
	Ad             *ads.Creative
	Surprise       *insight.Surprise
	Status         StatusBar
	Keys           GlobalKeyMap
	Quitting       bool
	LastError      error

	store    *tasks.Store
	ctx      context.Context
	notifier notify.Notifier
	dice     insight.Dice

	calendarTable table.Model
	commandInput  textinput.Model
	focusProgress progress.Model
	helpModel     help.Model
}

// Section is one titled group of rows in the today pane. Its layout
// decides how tasks are grouped.
type Section struct {
	Title string
	Tasks []model.Task
}

// TodayState holds the rows in display order. Palette commands address
// tasks by their 1-based position in Rows.
type TodayState struct {
	Sections []Section
	Rows     []model.Task
	Cursor   int
}

type CalendarState struct {
	Selected model.Date
}

type FocusPhase string

const (
	FocusPhaseWork  FocusPhase = "work"
	FocusPhaseBreak FocusPhase = "break"
)

type FocusState struct {
	TaskID             string
	TaskTitle          string
	WorkDurationSec    int
	BreakDurationSec   int
	RemainingSec       int
	Running            bool
	Phase              FocusPhase
	CompletedPomodoros int
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type FocusTickMsg struct{}

// ClockTickMsg refreshes countdowns and night-only visibility.
type ClockTickMsg struct{}

type ReminderDueMsg struct {
	Event scheduler.ReminderEvent
}

func NewModel(store *tasks.Store) Model {
	return NewModelWithConfig(store, nil, nil, DefaultRuntimeConfig())
}

// DefaultKeyMap binds the number row to the four views.
func DefaultKeyMap() GlobalKeyMap {
	return GlobalKeyMap{Today: "1", Calendar: "2", Insights: "3", Focus: "4", Help: "?", Quit: "q"}
}

func newFocusState(workMinutes, breakMinutes int) FocusState {
	if workMinutes <= 0 {
		workMinutes = 25
	}
	if breakMinutes <= 0 {
		breakMinutes = 5
	}
	return FocusState{
		WorkDurationSec:  workMinutes * 60,
		BreakDurationSec: breakMinutes * 60,
		RemainingSec:     workMinutes * 60,
		Phase:            FocusPhaseWork,
	}
}

// NewModelWithConfig builds the model around store. engine and notifier
// are optional.
func NewModelWithConfig(store *tasks.Store, engine *scheduler.Engine, notifier notify.Notifier, cfg RuntimeConfig) Model {
	if notifier == nil {
		notifier = notify.Noop{}
	}
	m := Model{
		CurrentView:    ViewToday,
		Scheduler:      engine,
		DesktopEnabled: cfg.DesktopNotifications,
		Calendar:       CalendarState{Selected: model.DateOf(store.Now())},
		Focus:          newFocusState(cfg.FocusWorkMinutes, cfg.FocusBreakMinutes),
		Keys:           DefaultKeyMap(),
		store:          store,
		ctx:            context.Background(),
		notifier:       notifier,
		dice:           insight.RandomDice,
	}
	m.initBubbleComponents()
	m.refresh()
	m.syncReminders()
	if err := store.LoadErr(); err != nil {
		m.Status = StatusBar{Text: "saved state could not be fully read; starting from what was recovered", IsError: true}
	}
	return m
}

// WithContext sets the context used for store writes.
func (m Model) WithContext(ctx context.Context) Model {
	m.ctx = ctx
	return m
}

// WithDice replaces the randomness behind surprise rewards.
func (m Model) WithDice(d insight.Dice) Model {
	m.dice = d
	return m
}

func (m *Model) initBubbleComponents() {
	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.Placeholder = "add pay rent @2026-05-01 !high #paisa ~40"
	m.commandInput.CharLimit = 200

	m.focusProgress = progress.New(progress.WithDefaultGradient(), progress.WithWidth(30))
	m.helpModel = help.New()

	columns := make([]table.Column, 0, 7)
	for _, day := range []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"} {
		columns = append(columns, table.Column{Title: day, Width: 6})
	}
	m.calendarTable = table.New(table.WithColumns(columns), table.WithHeight(7))
}
