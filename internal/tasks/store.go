// Package tasks owns the canonical task list. Every mutation re-derives
// the streak, the reward jar and every view from the full list, then saves
// the whole state.
package tasks

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/sandeepkv93/taskjar/internal/ads"
	"github.com/sandeepkv93/taskjar/internal/insight"
	"github.com/sandeepkv93/taskjar/internal/model"
	"github.com/sandeepkv93/taskjar/internal/schedule"
	"github.com/sandeepkv93/taskjar/internal/storage"
	"github.com/sandeepkv93/taskjar/internal/streak"
)

// Store is not safe for concurrent use. Front ends drive it from a single
// goroutine.
type Store struct {
	repo    storage.Repository
	clock   Clock
	ids     IDGenerator
	logger  *slog.Logger
	streaks *streak.Engine
	policy  ads.Policy

	tasks  []model.Task
	user   storage.User
	habits []string
	streak streak.State
	ad     ads.State

	layout    insight.Layout
	mood      insight.Mood
	focusedID string

	dashboard insight.Dashboard
	risk      streak.Risk
	loadErr   error
	backedUp  bool
}

type Option func(*Store)

func WithClock(c Clock) Option { return func(s *Store) { s.clock = c } }

func WithIDGenerator(g IDGenerator) Option { return func(s *Store) { s.ids = g } }

func WithLogger(l *slog.Logger) Option { return func(s *Store) { s.logger = l } }

func WithRewardThreshold(n int) Option {
	return func(s *Store) { s.streaks = streak.NewEngine(n) }
}

func WithAdPolicy(p ads.Policy) Option { return func(s *Store) { s.policy = p } }

func WithMood(m insight.Mood) Option { return func(s *Store) { s.mood = m } }

// Open loads the persisted state. A load failure is not fatal: the store
// starts from whatever could be decoded (an empty list at worst) and the
// failure is kept in LoadErr.
func Open(ctx context.Context, repo storage.Repository, opts ...Option) (*Store, error) {
	if repo == nil {
		return nil, errors.New("tasks: nil repository")
	}
	s := &Store{
		repo:    repo,
		clock:   SystemClock,
		ids:     UUIDGenerator{},
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		streaks: streak.NewEngine(streak.DefaultRewardThreshold),
		policy:  ads.DefaultPolicy(),
		layout:  insight.LayoutList,
		mood:    insight.MoodNormal,
	}
	for _, opt := range opts {
		opt(s)
	}

	st, err := repo.Load(ctx)
	if err != nil {
		s.loadErr = &model.PersistenceError{Op: "load", Err: err}
		s.logger.Warn("state load failed, continuing with recovered state",
			slog.Any("err", err), slog.Int("tasks", len(st.Tasks)))
	}
	s.fromState(st)
	s.recompute()
	s.logger.Debug("store opened", slog.Int("tasks", len(s.tasks)))
	return s, nil
}

func (s *Store) Close() error {
	return s.repo.Close()
}

// LoadErr reports the load failure Open recovered from, if any.
func (s *Store) LoadErr() error { return s.loadErr }

func (s *Store) now() time.Time { return s.clock.Now() }

func (s *Store) today() model.Date { return model.DateOf(s.now()) }

// Create validates in, fills derived defaults and appends a new task.
func (s *Store) Create(ctx context.Context, in model.TaskInput) (model.Task, error) {
	if err := in.Validate(); err != nil {
		return model.Task{}, err
	}
	task := model.Task{
		ID:        s.ids.NewID(),
		Completed: false,
		CreatedAt: s.now(),
	}
	applyInput(&task, in, s.today())
	if s.indexOf(task.ID) >= 0 {
		return model.Task{}, &model.ValidationError{Field: "id", Reason: "generator returned a duplicate"}
	}

	s.tasks = append(s.tasks, task)
	s.ad.Behavior = s.ad.Behavior.Track(task.Title)
	s.logger.Info("task created", slog.String("id", task.ID), slog.String("date", task.Date.String()))
	return task.Clone(), s.commit(ctx)
}

// Update replaces every editable field. Identity, completion and creation
// time are kept.
func (s *Store) Update(ctx context.Context, id string, in model.TaskInput) (model.Task, error) {
	i := s.indexOf(id)
	if i < 0 {
		return model.Task{}, &model.NotFoundError{ID: id}
	}
	if err := in.Validate(); err != nil {
		return model.Task{}, err
	}
	task := s.tasks[i]
	applyInput(&task, in, s.today())
	s.tasks[i] = task
	s.logger.Info("task updated", slog.String("id", id))
	return task.Clone(), s.commit(ctx)
}

func applyInput(task *model.Task, in model.TaskInput, today model.Date) {
	task.Title = strings.TrimSpace(in.Title)
	task.Description = in.Description
	task.Date = in.Date
	if task.Date.IsZero() {
		task.Date = today
	}
	if in.Time != nil {
		task.Time = *in.Time
	} else {
		task.Time = schedule.TimeFromEnergy(in.EnergyLevel)
	}
	task.Priority = in.Priority
	if task.Priority == "" {
		task.Priority = schedule.PriorityFromEffort(in.Effort)
	}
	task.Effort = in.Effort
	task.EnergyLevel = in.EnergyLevel
	task.Reminder = nil
	if in.Reminder != nil {
		r := *in.Reminder
		task.Reminder = &r
	}
	task.Place = in.Place
	task.Why = in.Why
	task.Bucket = in.Bucket
	task.TaskType = in.TaskType
	task.NightOnly = in.NightOnly
	task.Emoji = in.Emoji
	task.Image = in.Image
}

// ToggleResult reports a completion flip and its side effects.
type ToggleResult struct {
	Task model.Task
	// Missed is set when the task went back to incomplete after its
	// scheduled time passed. Callers offer Shift or Drop.
	Missed bool
	Streak streak.Outcome
}

func (s *Store) ToggleComplete(ctx context.Context, id string) (ToggleResult, error) {
	i := s.indexOf(id)
	if i < 0 {
		return ToggleResult{}, &model.NotFoundError{ID: id}
	}
	s.tasks[i].Completed = !s.tasks[i].Completed
	task := s.tasks[i].Clone()

	out := ToggleResult{Task: task}
	if !task.Completed {
		out.Missed = schedule.IsMissed(task, s.now())
	}
	out.Streak = s.recompute()
	s.logger.Info("task toggled", slog.String("id", id), slog.Bool("completed", task.Completed))
	if out.Streak.Rewarded {
		s.logger.Info("reward jar filled", slog.Int("points", s.streak.RewardPoints))
	}
	return out, s.persist(ctx)
}

// Delete removes a task. Unknown ids are ignored.
func (s *Store) Delete(ctx context.Context, id string) error {
	i := s.indexOf(id)
	if i < 0 {
		s.logger.Debug("delete of unknown task ignored", slog.String("id", id))
		return nil
	}
	s.tasks = slices.Delete(s.tasks, i, i+1)
	if s.focusedID == id {
		s.focusedID = ""
	}
	s.logger.Info("task deleted", slog.String("id", id))
	return s.commit(ctx)
}

// Shift moves a missed task to tomorrow, keeping its time.
func (s *Store) Shift(ctx context.Context, id string) (model.Task, error) {
	return s.mutate(ctx, id, "task shifted", func(t *model.Task) {
		t.Date = schedule.Tomorrow(s.now())
	})
}

// Drop deletes a missed task.
func (s *Store) Drop(ctx context.Context, id string) error {
	if s.indexOf(id) < 0 {
		return &model.NotFoundError{ID: id}
	}
	return s.Delete(ctx, id)
}

func (s *Store) AttachEmoji(ctx context.Context, id, emoji string) (model.Task, error) {
	return s.mutate(ctx, id, "emoji attached", func(t *model.Task) { t.Emoji = emoji })
}

// AttachImage stores an image as a data URL on the task.
func (s *Store) AttachImage(ctx context.Context, id, dataURL string) (model.Task, error) {
	if dataURL != "" && !strings.HasPrefix(dataURL, "data:") {
		return model.Task{}, &model.ValidationError{Field: "image", Reason: "must be a data URL"}
	}
	return s.mutate(ctx, id, "image attached", func(t *model.Task) { t.Image = dataURL })
}

func (s *Store) mutate(ctx context.Context, id, msg string, fn func(*model.Task)) (model.Task, error) {
	i := s.indexOf(id)
	if i < 0 {
		return model.Task{}, &model.NotFoundError{ID: id}
	}
	fn(&s.tasks[i])
	s.logger.Info(msg, slog.String("id", id))
	return s.tasks[i].Clone(), s.commit(ctx)
}

func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.tasks, func(t model.Task) bool { return t.ID == id })
}

// commit is the tail of every mutation: full recompute, then save.
func (s *Store) commit(ctx context.Context) error {
	s.recompute()
	return s.persist(ctx)
}

func (s *Store) recompute() streak.Outcome {
	now := s.now()
	var out streak.Outcome
	s.streak, out = s.streaks.Apply(s.streak, s.tasks, model.DateOf(now))
	s.dashboard = insight.Compute(s.tasks, now)
	s.risk = streak.AssessRisk(s.tasks, model.DateOf(now))
	return out
}

// persist saves the whole state. On failure memory stays authoritative and
// the caller gets a PersistenceError. After a lossy load the stored data is
// backed up once before the first save overwrites it; without a backup
// nothing is written.
func (s *Store) persist(ctx context.Context) error {
	if s.loadErr != nil && !s.backedUp {
		if err := s.backupUnreadable(ctx); err != nil {
			s.logger.Error("state save refused, stored data could not be backed up", slog.Any("err", err))
			return &model.PersistenceError{Op: "backup", Err: err}
		}
	}
	if err := s.repo.Save(ctx, s.toState()); err != nil {
		s.logger.Error("state save failed", slog.Any("err", err))
		return &model.PersistenceError{Op: "save", Err: err}
	}
	return nil
}

func (s *Store) backupUnreadable(ctx context.Context) error {
	b, ok := s.repo.(storage.Backuper)
	if !ok {
		return errors.New("tasks: repository cannot back up unreadable state")
	}
	where, err := b.Backup(ctx)
	if err != nil {
		return err
	}
	s.backedUp = true
	s.logger.Warn("unreadable state backed up before save", slog.String("backup", where))
	return nil
}
