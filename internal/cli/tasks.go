package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/taskjar/internal/insight"
	"github.com/sandeepkv93/taskjar/internal/model"
	"github.com/sandeepkv93/taskjar/internal/tasks"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	RunE:  runList,
}

var agendaCmd = &cobra.Command{
	Use:   "agenda [date]",
	Short: "Show the day sheet for today or a date",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAgenda,
}

var doneCmd = &cobra.Command{
	Use:   "done [id]",
	Short: "Toggle a task between done and pending",
	Args:  cobra.ExactArgs(1),
	RunE:  runDone,
}

var rmCmd = &cobra.Command{
	Use:   "rm [id]",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runRemove,
}

var shiftCmd = &cobra.Command{
	Use:   "shift [id]",
	Short: "Move a missed task to tomorrow",
	Args:  cobra.ExactArgs(1),
	RunE:  runShift,
}

var dropCmd = &cobra.Command{
	Use:   "drop [id]",
	Short: "Give up on a missed task",
	Args:  cobra.ExactArgs(1),
	RunE:  runDrop,
}

func init() {
	listCmd.Flags().String("date", "", "Only tasks on this date (YYYY-MM-DD, today or tomorrow)")
	listCmd.Flags().Bool("pending", false, "Only pending tasks")
	listCmd.Flags().Bool("done", false, "Only completed tasks")
	listCmd.Flags().StringP("bucket", "b", "", "Only tasks in this bucket")
	agendaCmd.Flags().String("mood", "", "normal or tired; tired shows only the first 3 tasks")
}

type listOptions struct {
	date    string
	pending bool
	done    bool
	bucket  string
}

func runList(cmd *cobra.Command, args []string) error {
	var opts listOptions
	opts.date, _ = cmd.Flags().GetString("date")
	opts.pending, _ = cmd.Flags().GetBool("pending")
	opts.done, _ = cmd.Flags().GetBool("done")
	opts.bucket, _ = cmd.Flags().GetString("bucket")

	a, err := loadApp(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer a.Close()
	return listTasks(a, cmd.OutOrStdout(), opts)
}

func listTasks(a *app, out io.Writer, opts listOptions) error {
	if opts.pending && opts.done {
		return errors.New("--pending and --done cannot be combined")
	}
	var f tasks.Filter
	if opts.date != "" {
		d, err := parseDay(opts.date, model.DateOf(a.store.Now()))
		if err != nil {
			return describe(err)
		}
		f.Date = &d
	}
	if opts.pending || opts.done {
		completed := opts.done
		f.Completed = &completed
	}
	if opts.bucket != "" {
		b := model.Bucket(strings.ToLower(opts.bucket))
		if !b.IsValid() {
			return describe(&model.ValidationError{Field: "bucket", Reason: "must be health, paisa, family or growth"})
		}
		f.Bucket = &b
	}

	list := a.store.List(f)
	if len(list) == 0 {
		fmt.Fprintln(out, "No tasks.")
		return nil
	}
	fmt.Fprintln(out, taskTable(list, a.store.Now()))
	return nil
}

func taskTable(list []model.Task, now time.Time) string {
	rows := make([][]string, 0, len(list))
	for i, t := range list {
		state := "pending"
		if t.Completed {
			state = "done"
		} else if cd, ok := insight.CountdownTo(t, now); ok && cd.Overdue {
			state = "missed"
		}
		title := t.Title
		if t.Emoji != "" {
			title = t.Emoji + " " + title
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			shortID(t.ID),
			t.Date.String(),
			t.Time.Kitchen(),
			t.Priority.Label(),
			string(t.Bucket),
			title,
			state,
		})
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "ID", "DATE", "TIME", "PRIORITY", "BUCKET", "TITLE", "STATE").
		Rows(rows...).
		Render()
}

func runAgenda(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer a.Close()

	if cmd.Flags().Changed("mood") {
		raw, _ := cmd.Flags().GetString("mood")
		mood, err := insight.ParseMood(raw)
		if err != nil {
			return err
		}
		a.store.SetMood(mood)
	}
	day := ""
	if len(args) == 1 {
		day = args[0]
	}
	return printAgenda(a, cmd.OutOrStdout(), day)
}

func printAgenda(a *app, out io.Writer, day string) error {
	now := a.store.Now()
	today := model.DateOf(now)
	d := today
	if day != "" {
		var err error
		if d, err = parseDay(day, today); err != nil {
			return describe(err)
		}
	}

	var list []model.Task
	if d == today {
		list = a.store.Agenda()
	} else {
		list = a.store.DateEvents(d)
	}

	fmt.Fprintf(out, "%s (%s)\n", insight.DayLabel(d, today), d)
	if d == today {
		load := a.store.Dashboard().BrainLoad
		done, goal := a.store.Jar()
		fmt.Fprintf(out, "Brain load: %s (%.0f)  Reward jar: %d/%d\n", load.Level, load.Score, done, goal)
	}
	if len(list) == 0 {
		fmt.Fprintln(out, "Nothing planned.")
		return nil
	}
	for _, t := range list {
		mark := "[ ]"
		if t.Completed {
			mark = "[x]"
		}
		line := fmt.Sprintf("%s %8s  %s  %s", mark, t.Time.Kitchen(), shortID(t.ID), t.Title)
		if cd, ok := insight.CountdownTo(t, now); ok && d == today {
			line += "  (" + cd.String() + ")"
		}
		fmt.Fprintln(out, line)
	}
	return nil
}

func runDone(cmd *cobra.Command, args []string) error {
	return withTask(cmd, args[0], toggleTask)
}

func runRemove(cmd *cobra.Command, args []string) error {
	return withTask(cmd, args[0], removeTask)
}

func runShift(cmd *cobra.Command, args []string) error {
	return withTask(cmd, args[0], shiftTask)
}

func runDrop(cmd *cobra.Command, args []string) error {
	return withTask(cmd, args[0], dropTask)
}

type taskAction func(ctx context.Context, a *app, out io.Writer, task model.Task) error

// withTask opens the store, resolves ref to a task and runs fn on it.
func withTask(cmd *cobra.Command, ref string, fn taskAction) error {
	a, err := loadApp(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer a.Close()

	task, err := a.store.Resolve(ref)
	if err != nil {
		return describe(err)
	}
	return fn(cmd.Context(), a, cmd.OutOrStdout(), task)
}

func toggleTask(ctx context.Context, a *app, out io.Writer, task model.Task) error {
	res, err := a.store.ToggleComplete(ctx, task.ID)
	if err != nil && res.Task.ID == "" {
		return describe(err)
	}
	if res.Task.Completed {
		fmt.Fprintf(out, "Completed %q\n", res.Task.Title)
	} else {
		fmt.Fprintf(out, "Reopened %q\n", res.Task.Title)
	}
	if res.Missed {
		fmt.Fprintf(out, "Its time has passed: run 'taskjar shift %s' or 'taskjar drop %s'\n", shortID(task.ID), shortID(task.ID))
	}
	if res.Streak.Extended || res.Streak.Reset {
		fmt.Fprintf(out, "Streak: %d day(s)\n", a.store.Streak().Count)
	}
	if res.Streak.Rewarded {
		fmt.Fprintf(out, "Reward jar filled! You now have %d reward point(s)\n", a.store.Streak().RewardPoints)
	}
	return describe(err)
}

func removeTask(ctx context.Context, a *app, out io.Writer, task model.Task) error {
	if err := a.store.Delete(ctx, task.ID); err != nil {
		return describe(err)
	}
	fmt.Fprintf(out, "Deleted %q\n", task.Title)
	return nil
}

func shiftTask(ctx context.Context, a *app, out io.Writer, task model.Task) error {
	moved, err := a.store.Shift(ctx, task.ID)
	if err != nil && moved.ID == "" {
		return describe(err)
	}
	fmt.Fprintf(out, "Moved %q to %s at %s\n", moved.Title, moved.Date, moved.Time.Kitchen())
	return describe(err)
}

func dropTask(ctx context.Context, a *app, out io.Writer, task model.Task) error {
	if err := a.store.Drop(ctx, task.ID); err != nil {
		return describe(err)
	}
	fmt.Fprintf(out, "Dropped %q\n", task.Title)
	return nil
}
