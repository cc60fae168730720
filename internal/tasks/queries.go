package tasks

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/sandeepkv93/taskjar/internal/insight"
	"github.com/sandeepkv93/taskjar/internal/model"
	"github.com/sandeepkv93/taskjar/internal/streak"
)

// Filter narrows List. Zero fields do not filter.
type Filter struct {
	Date      *model.Date
	Completed *bool
	Bucket    *model.Bucket
	// VisibleAt applies the night-only rule at that instant.
	VisibleAt time.Time
}

func (f Filter) match(t model.Task) bool {
	if f.Date != nil && t.Date != *f.Date {
		return false
	}
	if f.Completed != nil && t.Completed != *f.Completed {
		return false
	}
	if f.Bucket != nil && t.Bucket != *f.Bucket {
		return false
	}
	if !f.VisibleAt.IsZero() && !insight.VisibleAt(t, f.VisibleAt) {
		return false
	}
	return true
}

// List returns copies of the matching tasks in insertion order.
func (s *Store) List(f Filter) []model.Task {
	out := make([]model.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if f.match(t) {
			out = append(out, t.Clone())
		}
	}
	return out
}

func (s *Store) Get(id string) (model.Task, error) {
	i := s.indexOf(id)
	if i < 0 {
		return model.Task{}, &model.NotFoundError{ID: id}
	}
	return s.tasks[i].Clone(), nil
}

// Resolve finds a task by exact id or by unique id prefix.
func (s *Store) Resolve(ref string) (model.Task, error) {
	ref = strings.TrimSpace(ref)
	if t, err := s.Get(ref); err == nil {
		return t, nil
	}
	var found []model.Task
	for _, t := range s.tasks {
		if ref != "" && strings.HasPrefix(t.ID, ref) {
			found = append(found, t)
		}
	}
	if len(found) != 1 {
		return model.Task{}, &model.NotFoundError{ID: ref}
	}
	return found[0].Clone(), nil
}

func (s *Store) Now() time.Time { return s.now() }

// Dashboard returns the views computed after the last mutation or refresh.
func (s *Store) Dashboard() insight.Dashboard { return s.dashboard }

// Refresh recomputes every view against the current time without saving.
func (s *Store) Refresh() insight.Dashboard {
	s.dashboard = insight.Compute(s.tasks, s.now())
	s.risk = streak.AssessRisk(s.tasks, s.today())
	return s.dashboard
}

func (s *Store) Month(year int, month time.Month) insight.Month {
	return insight.CalendarMonth(s.tasks, year, month, s.today())
}

func (s *Store) DateEvents(d model.Date) []model.Task {
	return insight.DateEvents(s.tasks, d)
}

func (s *Store) Risk() streak.Risk { return s.risk }

func (s *Store) Streak() streak.State { return s.streak }

// Jar reports today's completions toward the reward threshold.
func (s *Store) Jar() (int, int) {
	return s.streaks.JarProgress(s.tasks, s.today())
}

func (s *Store) Receipt() insight.Receipt {
	return insight.LifeReceipt(s.tasks, s.now(), s.streak.RewardPoints)
}

func (s *Store) UserName() string { return s.user.Name }

func (s *Store) SetUserName(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return &model.ValidationError{Field: "name", Reason: "must not be empty"}
	}
	s.user.Name = name
	return s.persist(ctx)
}

func (s *Store) Layout() insight.Layout { return s.layout }

// SetLayout switches the active layout and recomputes the views.
func (s *Store) SetLayout(l insight.Layout) {
	s.layout = l
	s.Refresh()
	s.logger.Debug("layout switched", slog.String("layout", string(l)))
}

func (s *Store) Mood() insight.Mood { return s.mood }

// SetMood changes how much of today's agenda Agenda returns. It is not
// persisted.
func (s *Store) SetMood(m insight.Mood) {
	s.mood = m
	s.logger.Debug("mood switched", slog.String("mood", string(m)))
}

// Agenda is today's agenda trimmed for the current mood.
func (s *Store) Agenda() []model.Task { return s.mood.Limit(s.dashboard.Agenda) }

func (s *Store) FocusedID() string { return s.focusedID }

// FocusAura puts one task under focus, which also silences ads.
func (s *Store) FocusAura(id string) error {
	if s.indexOf(id) < 0 {
		return &model.NotFoundError{ID: id}
	}
	s.focusedID = id
	return nil
}

func (s *Store) ClearFocusAura() { s.focusedID = "" }
