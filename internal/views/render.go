package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

type AppData struct {
	Header       string
	LeftPane     string
	RightPane    string
	StatusLine   string
	StatusError  bool
	Footer       string
	Notification string
	Sponsored    string
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	adStyle     = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("8")).Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Strikethrough(true)
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true)

	priorityStyles = map[string]lipgloss.Style{
		"high":   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		"medium": lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		"low":    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	}
)

const (
	mainPaneWidth = 58
	sidePaneWidth = 50
)

func renderStatus(text string, isErr bool) string {
	switch {
	case text == "":
		return ""
	case isErr:
		return errorStyle.Render("error: " + text)
	default:
		return statusStyle.Render(text)
	}
}

// RenderApp stacks the header, the two panes and whichever of the status,
// ad, notification and footer blocks are non-empty.
func RenderApp(data AppData) string {
	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		panelStyle.Width(mainPaneWidth).Render(data.LeftPane),
		panelStyle.Width(sidePaneWidth).Render(data.RightPane),
	)
	blocks := []string{headerStyle.Render(data.Header), panes}
	optional := []struct {
		text  string
		style lipgloss.Style
	}{
		{data.Sponsored, adStyle},
		{data.Notification, panelStyle},
		{data.Footer, footerStyle},
	}
	if status := renderStatus(data.StatusLine, data.StatusError); status != "" {
		blocks = append(blocks, status)
	}
	for _, o := range optional {
		if o.text != "" {
			blocks = append(blocks, o.style.Render(o.text))
		}
	}
	return strings.Join(blocks, "\n")
}

func RenderMarkdown(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	out, err := glamour.Render(md, "dark")
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}

// PriorityBadge colours a priority label.
func PriorityBadge(priority string) string {
	style, ok := priorityStyles[strings.ToLower(priority)]
	if !ok {
		return priority
	}
	return style.Render("●")
}
