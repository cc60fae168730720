package views

import (
	"fmt"
	"strings"
)

type TaskRowData struct {
	Index     int
	ID        string
	Title     string
	Emoji     string
	Date      string
	Time      string
	Priority  string
	Bucket    string
	Countdown string
	Completed bool
	Missed    bool
	Selected  bool
	Focused   bool
}

type SectionData struct {
	Title string
	Rows  []TaskRowData
}

type StreakData struct {
	Count        int
	JarFilled    int
	JarCapacity  int
	RewardPoints int
	AtRisk       bool
	Suggestion   string
}

type TodayPanelData struct {
	Greeting string
	DayLabel string
	Layout   string
	Sections []SectionData
	Streak   StreakData
}

type TaskDetailData struct {
	Title           string
	Emoji           string
	When            string
	Priority        string
	Bucket          string
	TaskType        string
	Effort          int
	Energy          int
	Place           string
	Why             string
	Reminder        string
	Countdown       string
	HasImage        bool
	Missed          bool
	DescriptionView string
}

type CalendarPanelData struct {
	Title    string
	GridView string
	DayLabel string
	Events   []TaskRowData
}

type BucketData struct {
	Name      string
	Completed int
	Total     int
}

type HabitData struct {
	Title  string
	Tier   string
	Count  int
	Growth int
}

type ReminderData struct {
	Title  string
	When   string
	Offset string
}

type InsightsPanelData struct {
	LoadScore   int
	LoadLevel   string
	Buckets     []BucketData
	Habits      []HabitData
	Reminders   []ReminderData
	Total       int
	Completed   int
	Pending     int
	ReceiptView string
}

type FocusPanelData struct {
	TaskTitle          string
	Phase              string
	Timer              string
	ProgressView       string
	ProgressPct        int
	CompletedPomodoros int
	ShowEndPrompt      bool
	Aura               bool
}

type HelpPanelData struct {
	CurrentView string
	HelpView    string
	Commands    []string
}

type AdData struct {
	Icon        string
	Title       string
	Description string
	CTA         string
}

func RenderTodayPanel(data TodayPanelData) string {
	var b strings.Builder
	b.WriteString(accentStyle.Render(data.Greeting) + "\n")
	b.WriteString(fmt.Sprintf("%s | layout: %s\n", data.DayLabel, data.Layout))
	b.WriteString(renderStreak(data.Streak) + "\n")
	b.WriteString("actions: [j/k]move [x]done [s]shift [X]drop [d]delete [f]focus [L]layout\n")
	for _, section := range data.Sections {
		renderSection(&b, section)
	}
	return strings.TrimSpace(b.String())
}

func renderStreak(s StreakData) string {
	jar := strings.Repeat("■", min(s.JarFilled, s.JarCapacity)) + strings.Repeat("□", max(s.JarCapacity-s.JarFilled, 0))
	line := fmt.Sprintf("streak: %d day(s) | jar: %s %d/%d | points: %d", s.Count, jar, min(s.JarFilled, s.JarCapacity), s.JarCapacity, s.RewardPoints)
	if s.AtRisk {
		line += "\n" + errorStyle.Render("streak at risk")
		if s.Suggestion != "" {
			line += errorStyle.Render(": try " + s.Suggestion)
		}
	}
	return line
}

func renderSection(b *strings.Builder, section SectionData) {
	b.WriteString(fmt.Sprintf("\n%s:\n", section.Title))
	if len(section.Rows) == 0 {
		b.WriteString(mutedStyle.Render("  (none)") + "\n")
		return
	}
	for _, row := range section.Rows {
		b.WriteString(RenderTaskRow(row) + "\n")
	}
}

func RenderTaskRow(row TaskRowData) string {
	cursor := " "
	if row.Selected {
		cursor = ">"
	}
	check := "[ ]"
	if row.Completed {
		check = "[x]"
	}
	title := row.Title
	if row.Emoji != "" {
		title = row.Emoji + " " + title
	}
	if row.Completed {
		title = doneStyle.Render(title)
	}
	index := "  "
	if row.Index > 0 {
		index = fmt.Sprintf("%2d", row.Index)
	}
	line := fmt.Sprintf("%s %s %s %s %s", cursor, index, check, PriorityBadge(row.Priority), title)
	if row.Time != "" {
		line += " " + mutedStyle.Render("@"+row.Time)
	}
	if row.Bucket != "" {
		line += " " + mutedStyle.Render("#"+row.Bucket)
	}
	if row.Countdown != "" {
		line += " " + row.Countdown
	}
	if row.Missed {
		line += " " + errorStyle.Render("missed")
	}
	if row.Focused {
		line += " " + accentStyle.Render("✦")
	}
	return line
}

func RenderTaskDetail(data TaskDetailData) string {
	if strings.TrimSpace(data.Title) == "" {
		return "details:\n(no selection)"
	}
	var b strings.Builder
	title := data.Title
	if data.Emoji != "" {
		title = data.Emoji + " " + title
	}
	b.WriteString("details:\n")
	b.WriteString(accentStyle.Render(title) + "\n")
	b.WriteString(fmt.Sprintf("when: %s\n", data.When))
	b.WriteString(fmt.Sprintf("priority: %s %s\n", PriorityBadge(data.Priority), data.Priority))
	b.WriteString(fmt.Sprintf("effort: %d | energy: %d\n", data.Effort, data.Energy))
	optional := [][2]string{
		{"bucket", data.Bucket},
		{"type", data.TaskType},
		{"place", data.Place},
		{"why", data.Why},
		{"reminder", data.Reminder},
		{"countdown", data.Countdown},
	}
	for _, kv := range optional {
		if kv[1] != "" {
			b.WriteString(fmt.Sprintf("%s: %s\n", kv[0], kv[1]))
		}
	}
	if data.HasImage {
		b.WriteString("image: attached\n")
	}
	if data.Missed {
		b.WriteString(errorStyle.Render("missed: [s] shift to tomorrow or [X] drop") + "\n")
	}
	if data.DescriptionView != "" {
		b.WriteString("\n" + data.DescriptionView)
	}
	return strings.TrimSpace(b.String())
}

func RenderCalendarPanel(data CalendarPanelData) string {
	var b strings.Builder
	b.WriteString("calendar: " + data.Title + "\n")
	b.WriteString("actions: [h/l]day [j/k]week [H/L]month [t]today\n")
	b.WriteString(data.GridView + "\n")
	b.WriteString(fmt.Sprintf("\n%s:\n", data.DayLabel))
	if len(data.Events) == 0 {
		b.WriteString(mutedStyle.Render("  (no tasks)"))
		return b.String()
	}
	for _, row := range data.Events {
		b.WriteString(RenderTaskRow(row) + "\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderInsightsPanel(data InsightsPanelData) string {
	var b strings.Builder
	b.WriteString("insights:\n")
	b.WriteString(fmt.Sprintf("brain load: %d (%s)\n", data.LoadScore, data.LoadLevel))
	b.WriteString(fmt.Sprintf("tasks: %d total, %d done, %d pending\n", data.Total, data.Completed, data.Pending))

	b.WriteString("\nlife buckets:\n")
	for _, bucket := range data.Buckets {
		b.WriteString(fmt.Sprintf("  %-7s %d/%d\n", bucket.Name, bucket.Completed, bucket.Total))
	}

	b.WriteString("\nhabits:\n")
	if len(data.Habits) == 0 {
		b.WriteString(mutedStyle.Render("  (repeat a task three times to grow one)") + "\n")
	}
	for _, h := range data.Habits {
		b.WriteString(fmt.Sprintf("  %s %s %d/%d (%d%%)\n", h.Tier, h.Title, h.Count, h.Count, h.Growth))
	}

	b.WriteString("\nreminders:\n")
	if len(data.Reminders) == 0 {
		b.WriteString(mutedStyle.Render("  (none)") + "\n")
	}
	for _, r := range data.Reminders {
		b.WriteString(fmt.Sprintf("  %s %s (%s)\n", r.When, r.Title, r.Offset))
	}
	if data.ReceiptView != "" {
		b.WriteString("\n" + data.ReceiptView)
	}
	return strings.TrimSpace(b.String())
}

func RenderFocusPanel(data FocusPanelData) string {
	var b strings.Builder
	b.WriteString("focus:\n")
	if data.TaskTitle != "" {
		b.WriteString(fmt.Sprintf("task: %s\n", data.TaskTitle))
	} else {
		b.WriteString("task: (none selected)\n")
	}
	if data.Aura {
		b.WriteString(accentStyle.Render("focus aura on, ads paused") + "\n")
	}
	b.WriteString(fmt.Sprintf("phase: %s\n", strings.ToUpper(data.Phase)))
	b.WriteString(fmt.Sprintf("timer: %s\n", data.Timer))
	b.WriteString(fmt.Sprintf("progress: %s %d%%\n", data.ProgressView, data.ProgressPct))
	b.WriteString(fmt.Sprintf("pomodoros completed: %d\n", data.CompletedPomodoros))
	b.WriteString("actions: [space]start/pause [r]reset [n]next-phase [x]done\n")
	if data.ShowEndPrompt {
		b.WriteString("prompt: session ended, press [n] to continue")
	}
	return strings.TrimSpace(b.String())
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: %s", input)
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("notification: [%s] %s", strings.ToUpper(level), body)
}

func RenderAd(data AdData) string {
	if data.Title == "" {
		return ""
	}
	return fmt.Sprintf("%s sponsored | %s: %s [%s]",
		data.Icon, data.Title, data.Description, data.CTA)
}

func RenderHelpPanel(data HelpPanelData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "help (%s view):\n%s\n", strings.ToLower(data.CurrentView), data.HelpView)
	if len(data.Commands) > 0 {
		b.WriteString("\ncommands:\n")
		for _, c := range data.Commands {
			b.WriteString("  " + mutedStyle.Render(c) + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
