package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/taskjar/internal/model"
	"github.com/sandeepkv93/taskjar/internal/views"
)

var calendarCmd = &cobra.Command{
	Use:   "calendar [YYYY-MM]",
	Short: "Show a month grid",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCalendar,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show profile stats, streak, reward jar and today's life receipt",
	RunE:  runStats,
}

var habitsCmd = &cobra.Command{
	Use:   "habits",
	Short: "Show the habit garden",
	RunE:  runHabits,
}

var remindersCmd = &cobra.Command{
	Use:   "reminders",
	Short: "List upcoming reminders",
	RunE:  runReminders,
}

func init() {
	statsCmd.Flags().Bool("plain", false, "Print the receipt as raw markdown")
	remindersCmd.Flags().Bool("all", false, "Include reminders whose time has passed")
}

func runCalendar(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer a.Close()

	month := ""
	if len(args) == 1 {
		month = args[0]
	}
	return printCalendar(a, cmd.OutOrStdout(), month)
}

func printCalendar(a *app, out io.Writer, month string) error {
	today := model.DateOf(a.store.Now())
	year, mon := today.Year, today.Month
	if month != "" {
		t, err := time.Parse("2006-01", month)
		if err != nil {
			return fmt.Errorf("invalid month %q, expected YYYY-MM", month)
		}
		year, mon = t.Year(), t.Month()
	}

	grid := a.store.Month(year, mon)
	rows := make([][]string, 0, 6)
	for _, week := range grid.Weeks() {
		row := make([]string, 0, len(week))
		for _, cell := range week {
			row = append(row, cell.Label(model.Date{}))
		}
		rows = append(rows, row)
	}
	fmt.Fprintf(out, "%s %d\n", mon, year)
	fmt.Fprintln(out, table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat").
		Rows(rows...).
		Render())
	fmt.Fprintln(out, "*today  H/M/L pending priorities  ✓ all done  +N busy day")
	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
	plain, _ := cmd.Flags().GetBool("plain")
	a, err := loadApp(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer a.Close()
	return printStats(a, cmd.OutOrStdout(), plain)
}

func printStats(a *app, out io.Writer, plain bool) error {
	profile := a.store.Dashboard().Profile
	st := a.store.Streak()
	done, goal := a.store.Jar()

	fmt.Fprintf(out, "%s\n", a.store.UserName())
	fmt.Fprintf(out, "Tasks: %d total, %d completed, %d pending\n", profile.Total, profile.Completed, profile.Pending)
	fmt.Fprintf(out, "Streak: %d day(s)\n", st.Count)
	fmt.Fprintf(out, "Reward jar: %d/%d today, %d reward point(s)\n", done, goal, st.RewardPoints)
	if risk := a.store.Risk(); risk.AtRisk {
		line := "Streak at risk: finish one task today"
		if risk.HasSuggestion {
			line += fmt.Sprintf(" (try %q)", risk.Suggestion.Title)
		}
		fmt.Fprintln(out, line)
	}
	fmt.Fprintln(out)

	md := a.store.Receipt().Markdown()
	if plain {
		fmt.Fprint(out, md)
		return nil
	}
	fmt.Fprintln(out, views.RenderMarkdown(md))
	return nil
}

func runHabits(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer a.Close()
	return printHabits(a, cmd.OutOrStdout())
}

func printHabits(a *app, out io.Writer) error {
	habits := a.store.Dashboard().Habits
	if len(habits) == 0 {
		fmt.Fprintln(out, "No habits yet. Repeat a task title three times to plant one.")
		return nil
	}
	for _, h := range habits {
		bar := strings.Repeat("#", h.Growth()) + strings.Repeat(".", 10-h.Growth())
		fmt.Fprintf(out, "%-9s [%s] %s (%d/%d done)\n", h.Tier(), bar, h.Title, h.Completed, h.Count)
	}
	return nil
}

func runReminders(cmd *cobra.Command, args []string) error {
	all, _ := cmd.Flags().GetBool("all")
	a, err := loadApp(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer a.Close()
	return printReminders(a, cmd.OutOrStdout(), all)
}

func printReminders(a *app, out io.Writer, all bool) error {
	now := a.store.Now()
	n := 0
	for _, r := range a.store.Dashboard().Reminders {
		if !all && r.TriggerAt.Before(now) {
			continue
		}
		fmt.Fprintf(out, "%s  %s  %s (%s)\n",
			r.TriggerAt.Format("Mon Jan 2 15:04"), shortID(r.TaskID), r.Title, model.FormatReminder(r.MinutesBefore))
		n++
	}
	if n == 0 {
		fmt.Fprintln(out, "No upcoming reminders.")
	}
	return nil
}
