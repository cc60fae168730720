package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidPriority = errors.New("model: invalid task priority")
	ErrInvalidBucket   = errors.New("model: invalid task bucket")
	ErrInvalidTaskType = errors.New("model: invalid task type")
)

const DefaultEffort = 50

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

func (p Priority) Label() string {
	switch p {
	case PriorityHigh:
		return "High"
	case PriorityMedium:
		return "Medium"
	case PriorityLow:
		return "Low"
	default:
		return string(p)
	}
}

// Bucket is a life-area tag. The zero value means untagged.
type Bucket string

const (
	BucketHealth Bucket = "health"
	BucketPaisa  Bucket = "paisa"
	BucketFamily Bucket = "family"
	BucketGrowth Bucket = "growth"
)

var Buckets = []Bucket{BucketHealth, BucketPaisa, BucketFamily, BucketGrowth}

func (b Bucket) IsValid() bool {
	switch b {
	case "", BucketHealth, BucketPaisa, BucketFamily, BucketGrowth:
		return true
	default:
		return false
	}
}

type TaskType string

const (
	TaskTypeQuick  TaskType = "quick"
	TaskTypeLong   TaskType = "long"
	TaskTypeUrgent TaskType = "urgent"
)

func (tt TaskType) IsValid() bool {
	switch tt {
	case "", TaskTypeQuick, TaskTypeLong, TaskTypeUrgent:
		return true
	default:
		return false
	}
}

type Task struct {
	ID          string    `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Date        Date      `json:"date" yaml:"date"`
	Time        Clock     `json:"time" yaml:"time"`
	Priority    Priority  `json:"priority" yaml:"priority"`
	Effort      int       `json:"effort" yaml:"effort"`
	EnergyLevel int       `json:"energyLevel" yaml:"energyLevel"`
	Reminder    *int      `json:"reminder,omitempty" yaml:"reminder,omitempty"`
	Place       string    `json:"place,omitempty" yaml:"place,omitempty"`
	Why         string    `json:"why,omitempty" yaml:"why,omitempty"`
	Bucket      Bucket    `json:"bucket,omitempty" yaml:"bucket,omitempty"`
	TaskType    TaskType  `json:"taskType,omitempty" yaml:"taskType,omitempty"`
	NightOnly   bool      `json:"nightOnly" yaml:"nightOnly"`
	Emoji       string    `json:"emoji,omitempty" yaml:"emoji,omitempty"`
	Image       string    `json:"image,omitempty" yaml:"image,omitempty"`
	Completed   bool      `json:"completed" yaml:"completed"`
	CreatedAt   time.Time `json:"createdAt" yaml:"createdAt"`
}

// Due is the scheduled instant of the task in loc.
func (t Task) Due(loc *time.Location) time.Time {
	return At(t.Date, t.Time, loc)
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return errors.New("model: task title is required")
	}
	if t.Date.IsZero() {
		return errors.New("model: task date is required")
	}
	if !t.Time.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidClock, t.Time)
	}
	if !t.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, t.Priority)
	}
	if !t.Bucket.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidBucket, t.Bucket)
	}
	if !t.TaskType.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidTaskType, t.TaskType)
	}
	if t.Effort < 0 || t.Effort > 100 {
		return fmt.Errorf("model: task effort %d out of range", t.Effort)
	}
	if t.EnergyLevel < 0 || t.EnergyLevel > 100 {
		return fmt.Errorf("model: task energy level %d out of range", t.EnergyLevel)
	}
	if t.Reminder != nil && *t.Reminder < 0 {
		return fmt.Errorf("model: task reminder %d is negative", *t.Reminder)
	}
	if t.CreatedAt.IsZero() {
		return errors.New("model: task createdAt is required")
	}
	return nil
}

// UnmarshalJSON decodes a persisted record, defaulting effort and energy
// for records written before those fields existed, and rejects records
// that fail Validate.
func (t *Task) UnmarshalJSON(data []byte) error {
	type plain Task
	var raw struct {
		plain
		Effort      *int `json:"effort"`
		EnergyLevel *int `json:"energyLevel"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := Task(raw.plain)
	out.Effort = DefaultEffort
	if raw.Effort != nil {
		out.Effort = *raw.Effort
	}
	out.EnergyLevel = DefaultEffort
	if raw.EnergyLevel != nil {
		out.EnergyLevel = *raw.EnergyLevel
	}
	if err := out.Validate(); err != nil {
		return err
	}
	*t = out
	return nil
}

// Clone returns a copy that shares no pointers with t.
func (t Task) Clone() Task {
	if t.Reminder != nil {
		r := *t.Reminder
		t.Reminder = &r
	}
	return t
}
