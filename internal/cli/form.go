package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/sandeepkv93/taskjar/internal/model"
)

// formBindings holds the string values the huh fields edit in place.
type formBindings struct {
	title       string
	description string
	date        string
	clock       string
	priority    string
	bucket      string
	taskType    string
	effort      string
	energy      string
	reminder    string
	place       string
	why         string
	night       bool

	emoji string
	image string
}

func bindingsFrom(in model.TaskInput) *formBindings {
	fb := &formBindings{
		title:       in.Title,
		description: in.Description,
		date:        in.Date.String(),
		priority:    string(in.Priority),
		bucket:      string(in.Bucket),
		taskType:    string(in.TaskType),
		effort:      strconv.Itoa(in.Effort),
		energy:      strconv.Itoa(in.EnergyLevel),
		place:       in.Place,
		why:         in.Why,
		night:       in.NightOnly,
		emoji:       in.Emoji,
		image:       in.Image,
	}
	if in.Time != nil {
		fb.clock = in.Time.String()
	}
	if in.Reminder != nil {
		fb.reminder = strconv.Itoa(*in.Reminder)
	}
	return fb
}

// input converts the bindings back. An empty date, time or priority is
// left for the store to derive.
func (fb *formBindings) input() (model.TaskInput, error) {
	in := model.NewTaskInput(strings.TrimSpace(fb.title))
	in.Description = strings.TrimSpace(fb.description)
	if v := strings.TrimSpace(fb.date); v != "" {
		d, err := model.ParseDate(v)
		if err != nil {
			return model.TaskInput{}, &model.ValidationError{Field: "date", Reason: "must be YYYY-MM-DD"}
		}
		in.Date = d
	}
	if v := strings.TrimSpace(fb.clock); v != "" {
		c, err := model.ParseClock(v)
		if err != nil {
			return model.TaskInput{}, &model.ValidationError{Field: "time", Reason: "must be a valid HH:MM"}
		}
		in.Time = &c
	}
	in.Priority = model.Priority(fb.priority)
	in.Bucket = model.Bucket(fb.bucket)
	in.TaskType = model.TaskType(fb.taskType)

	var err error
	if in.Effort, err = parsePercent("effort", fb.effort); err != nil {
		return model.TaskInput{}, err
	}
	if in.EnergyLevel, err = parsePercent("energyLevel", fb.energy); err != nil {
		return model.TaskInput{}, err
	}
	if v := strings.TrimSpace(fb.reminder); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return model.TaskInput{}, &model.ValidationError{Field: "reminder", Reason: "must be a number of minutes"}
		}
		in.Reminder = &n
	}
	in.Place = strings.TrimSpace(fb.place)
	in.Why = strings.TrimSpace(fb.why)
	in.NightOnly = fb.night
	in.Emoji = fb.emoji
	in.Image = fb.image
	return in, in.Validate()
}

func parsePercent(field, value string) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return model.DefaultEffort, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 || n > 100 {
		return 0, &model.ValidationError{Field: field, Reason: "must be between 0 and 100"}
	}
	return n, nil
}

func buildTaskForm(title string, fb *formBindings) *huh.Form {
	bucketOpts := []huh.Option[string]{huh.NewOption("None", "")}
	for _, b := range model.Buckets {
		bucketOpts = append(bucketOpts, huh.NewOption(string(b), string(b)))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Placeholder("What needs to be done?").
				Value(&fb.title).
				Validate(validateRequired("Title")),
			huh.NewText().
				Title("Description").
				Placeholder("Optional details, markdown welcome").
				Value(&fb.description),
			huh.NewInput().
				Title("Date").
				Placeholder("YYYY-MM-DD (empty for today)").
				Value(&fb.date).
				Validate(validateOptionalDate),
			huh.NewInput().
				Title("Time").
				Placeholder("HH:MM (empty to pick from energy)").
				Value(&fb.clock).
				Validate(validateOptionalClock),
		).Title(title),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Priority").
				Options(
					huh.NewOption("Auto (from effort)", ""),
					huh.NewOption("High", string(model.PriorityHigh)),
					huh.NewOption("Medium", string(model.PriorityMedium)),
					huh.NewOption("Low", string(model.PriorityLow)),
				).
				Value(&fb.priority),
			huh.NewInput().
				Title("Effort").
				Placeholder("0-100").
				Value(&fb.effort).
				Validate(validatePercent("Effort")),
			huh.NewInput().
				Title("Energy").
				Placeholder("0-100").
				Value(&fb.energy).
				Validate(validatePercent("Energy")),
			huh.NewSelect[string]().
				Title("Bucket").
				Options(bucketOpts...).
				Value(&fb.bucket),
			huh.NewSelect[string]().
				Title("Type").
				Options(
					huh.NewOption("None", ""),
					huh.NewOption("Quick", string(model.TaskTypeQuick)),
					huh.NewOption("Long", string(model.TaskTypeLong)),
					huh.NewOption("Urgent", string(model.TaskTypeUrgent)),
				).
				Value(&fb.taskType),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Reminder").
				Placeholder("Minutes before (optional)").
				Value(&fb.reminder).
				Validate(validateOptionalMinutes),
			huh.NewInput().
				Title("Place").
				Value(&fb.place),
			huh.NewInput().
				Title("Why").
				Placeholder("What this is for").
				Value(&fb.why),
			huh.NewConfirm().
				Title("Night only?").
				Affirmative("Yes").
				Negative("No").
				Value(&fb.night),
		),
	)
}

// runTaskForm shows the form and returns the edited input. Aborting the
// form is reported as an error.
func runTaskForm(title string, in model.TaskInput) (model.TaskInput, error) {
	fb := bindingsFrom(in)
	if err := buildTaskForm(title, fb).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return model.TaskInput{}, errors.New("cancelled")
		}
		return model.TaskInput{}, err
	}
	return fb.input()
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func validateOptionalDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, err := model.ParseDate(strings.TrimSpace(s)); err != nil {
		return errors.New("use YYYY-MM-DD")
	}
	return nil
}

func validateOptionalClock(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, err := model.ParseClock(strings.TrimSpace(s)); err != nil {
		return errors.New("use HH:MM")
	}
	return nil
}

func validatePercent(fieldName string) func(string) error {
	return func(s string) error {
		if _, err := parsePercent(fieldName, s); err != nil {
			return fmt.Errorf("%s must be between 0 and 100", fieldName)
		}
		return nil
	}
}

func validateOptionalMinutes(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return errors.New("use a whole number of minutes")
	}
	return nil
}
