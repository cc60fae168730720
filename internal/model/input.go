package model

import (
	"strings"
)

// TaskInput carries the user-editable fields of a task. Nil Time and an
// empty Priority ask the store to derive them from energy and effort.
type TaskInput struct {
	Title       string
	Description string
	Date        Date
	Time        *Clock
	Priority    Priority
	Effort      int
	EnergyLevel int
	Reminder    *int
	Place       string
	Why         string
	Bucket      Bucket
	TaskType    TaskType
	NightOnly   bool
	Emoji       string
	Image       string
}

// NewTaskInput returns an input with the form defaults applied.
func NewTaskInput(title string) TaskInput {
	return TaskInput{
		Title:       title,
		Effort:      DefaultEffort,
		EnergyLevel: DefaultEffort,
	}
}

func (in TaskInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if in.Effort < 0 || in.Effort > 100 {
		return &ValidationError{Field: "effort", Reason: "must be between 0 and 100"}
	}
	if in.EnergyLevel < 0 || in.EnergyLevel > 100 {
		return &ValidationError{Field: "energyLevel", Reason: "must be between 0 and 100"}
	}
	if in.Time != nil && !in.Time.IsValid() {
		return &ValidationError{Field: "time", Reason: "must be a valid HH:MM"}
	}
	if in.Priority != "" && !in.Priority.IsValid() {
		return &ValidationError{Field: "priority", Reason: "must be high, medium or low"}
	}
	if !in.Bucket.IsValid() {
		return &ValidationError{Field: "bucket", Reason: "must be health, paisa, family or growth"}
	}
	if !in.TaskType.IsValid() {
		return &ValidationError{Field: "taskType", Reason: "must be quick, long or urgent"}
	}
	if in.Reminder != nil && *in.Reminder < 0 {
		return &ValidationError{Field: "reminder", Reason: "must not be negative"}
	}
	return nil
}

// FromTask returns the editable fields of t, for edit forms.
func FromTask(t Task) TaskInput {
	clock := t.Time
	t = t.Clone()
	return TaskInput{
		Title:       t.Title,
		Description: t.Description,
		Date:        t.Date,
		Time:        &clock,
		Priority:    t.Priority,
		Effort:      t.Effort,
		EnergyLevel: t.EnergyLevel,
		Reminder:    t.Reminder,
		Place:       t.Place,
		Why:         t.Why,
		Bucket:      t.Bucket,
		TaskType:    t.TaskType,
		NightOnly:   t.NightOnly,
		Emoji:       t.Emoji,
		Image:       t.Image,
	}
}
