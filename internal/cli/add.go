package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/taskjar/internal/model"
)

var addCmd = &cobra.Command{
	Use:   "add [title...]",
	Short: "Add a task",
	Long: `Add a task for today, or for --date. Time and priority are derived from
energy and effort unless given.

Use -i to fill in the task with a form.`,
	RunE: runAdd,
}

var editCmd = &cobra.Command{
	Use:   "edit [id]",
	Short: "Change a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runEdit,
}

func init() {
	addTaskFlags(addCmd)
	addTaskFlags(editCmd)
	editCmd.Flags().String("title", "", "New title")
	editCmd.Flags().Bool("no-reminder", false, "Remove the reminder")
}

func addTaskFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("interactive", "i", false, "Fill in the task with a form")
	cmd.Flags().StringP("description", "d", "", "Longer description (markdown)")
	cmd.Flags().String("date", "", "Date as YYYY-MM-DD, today or tomorrow")
	cmd.Flags().String("time", "", "Time as HH:MM")
	cmd.Flags().StringP("priority", "p", "", "high, medium or low")
	cmd.Flags().StringP("bucket", "b", "", "health, paisa, family or growth")
	cmd.Flags().String("type", "", "quick, long or urgent")
	cmd.Flags().Int("effort", model.DefaultEffort, "Effort 0-100")
	cmd.Flags().Int("energy", model.DefaultEffort, "Energy level 0-100")
	cmd.Flags().Int("reminder", 0, "Remind this many minutes before")
	cmd.Flags().String("place", "", "Where it happens")
	cmd.Flags().String("why", "", "What it is for")
	cmd.Flags().Bool("night", false, "Only show the task at night")
	cmd.Flags().String("emoji", "", "Emoji to attach")
}

// applyTaskFlags copies every flag the user set onto in.
func applyTaskFlags(cmd *cobra.Command, in *model.TaskInput, today model.Date) error {
	flags := cmd.Flags()
	if flags.Changed("description") {
		in.Description, _ = flags.GetString("description")
	}
	if flags.Changed("date") {
		v, _ := flags.GetString("date")
		d, err := parseDay(v, today)
		if err != nil {
			return err
		}
		in.Date = d
	}
	if flags.Changed("time") {
		v, _ := flags.GetString("time")
		c, err := model.ParseClock(v)
		if err != nil {
			return &model.ValidationError{Field: "time", Reason: "must be a valid HH:MM"}
		}
		in.Time = &c
	}
	if flags.Changed("priority") {
		v, _ := flags.GetString("priority")
		in.Priority = model.Priority(strings.ToLower(v))
	}
	if flags.Changed("bucket") {
		v, _ := flags.GetString("bucket")
		in.Bucket = model.Bucket(strings.ToLower(v))
	}
	if flags.Changed("type") {
		v, _ := flags.GetString("type")
		in.TaskType = model.TaskType(strings.ToLower(v))
	}
	if flags.Changed("effort") {
		in.Effort, _ = flags.GetInt("effort")
	}
	if flags.Changed("energy") {
		in.EnergyLevel, _ = flags.GetInt("energy")
	}
	if flags.Changed("reminder") {
		n, _ := flags.GetInt("reminder")
		in.Reminder = &n
	}
	if flags.Changed("place") {
		in.Place, _ = flags.GetString("place")
	}
	if flags.Changed("why") {
		in.Why, _ = flags.GetString("why")
	}
	if flags.Changed("night") {
		in.NightOnly, _ = flags.GetBool("night")
	}
	if flags.Changed("emoji") {
		in.Emoji, _ = flags.GetString("emoji")
	}
	return nil
}

// parseDay accepts YYYY-MM-DD plus the words today and tomorrow.
func parseDay(value string, today model.Date) (model.Date, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "today":
		return today, nil
	case "tomorrow":
		return today.AddDays(1), nil
	}
	d, err := model.ParseDate(strings.TrimSpace(value))
	if err != nil {
		return model.Date{}, &model.ValidationError{Field: "date", Reason: "must be YYYY-MM-DD, today or tomorrow"}
	}
	return d, nil
}

func runAdd(cmd *cobra.Command, args []string) error {
	interactive, _ := cmd.Flags().GetBool("interactive")
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" && !interactive {
		return errors.New("a title is required (or use -i)")
	}

	a, err := loadApp(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer a.Close()

	in := model.NewTaskInput(title)
	if err := applyTaskFlags(cmd, &in, model.DateOf(a.store.Now())); err != nil {
		return describe(err)
	}
	if interactive {
		if in, err = runTaskForm("New task", in); err != nil {
			return describe(err)
		}
	}
	return addTask(cmd.Context(), a, cmd.OutOrStdout(), in)
}

func addTask(ctx context.Context, a *app, out io.Writer, in model.TaskInput) error {
	task, err := a.store.Create(ctx, in)
	if err != nil && task.ID == "" {
		return describe(err)
	}
	fmt.Fprintf(out, "Added %s %q on %s at %s (%s priority)\n",
		shortID(task.ID), task.Title, task.Date, task.Time.Kitchen(), task.Priority)
	return describe(err)
}

func runEdit(cmd *cobra.Command, args []string) error {
	interactive, _ := cmd.Flags().GetBool("interactive")
	a, err := loadApp(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer a.Close()

	task, err := a.store.Resolve(args[0])
	if err != nil {
		return describe(err)
	}
	in := model.FromTask(task)
	if cmd.Flags().Changed("title") {
		in.Title, _ = cmd.Flags().GetString("title")
	}
	if err := applyTaskFlags(cmd, &in, model.DateOf(a.store.Now())); err != nil {
		return describe(err)
	}
	if noReminder, _ := cmd.Flags().GetBool("no-reminder"); noReminder {
		in.Reminder = nil
	}
	if interactive {
		if in, err = runTaskForm("Edit task", in); err != nil {
			return describe(err)
		}
	} else if reflect.DeepEqual(in, model.FromTask(task)) {
		return errors.New("nothing to change: pass flags or -i")
	}
	return editTask(cmd.Context(), a, cmd.OutOrStdout(), task.ID, in)
}

func editTask(ctx context.Context, a *app, out io.Writer, id string, in model.TaskInput) error {
	task, err := a.store.Update(ctx, id, in)
	if err != nil && task.ID == "" {
		return describe(err)
	}
	fmt.Fprintf(out, "Updated %s %q on %s at %s\n", shortID(task.ID), task.Title, task.Date, task.Time.Kitchen())
	return describe(err)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
