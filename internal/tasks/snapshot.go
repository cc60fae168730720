package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sandeepkv93/taskjar/internal/ads"
	"github.com/sandeepkv93/taskjar/internal/model"
	"github.com/sandeepkv93/taskjar/internal/storage"
	"github.com/sandeepkv93/taskjar/internal/streak"
)

func (s *Store) toState() storage.State {
	tasks := make([]model.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		tasks = append(tasks, t.Clone())
	}
	return storage.State{
		Tasks:             tasks,
		User:              s.user,
		RewardPoints:      s.streak.RewardPoints,
		Habits:            append([]string{}, s.habits...),
		StreakCount:       s.streak.Count,
		LastCompletedDate: s.streak.LastCompletedDate,
		LastRewardDate:    s.streak.LastRewardDate,
		AdDisplayCount:    s.ad.DisplayCount,
		LastAdShown:       s.ad.LastShown,
		LastAdDate:        s.ad.LastDate,
		UserBehavior:      storage.Behavior(s.ad.Behavior),
		PremiumAccess:     s.ad.PremiumAccess,
		PremiumExpiry:     s.ad.PremiumExpiry,
	}
}

func (s *Store) fromState(st storage.State) {
	s.tasks = make([]model.Task, 0, len(st.Tasks))
	for _, t := range st.Tasks {
		s.tasks = append(s.tasks, t.Clone())
	}
	s.user = st.User
	if s.user.Name == "" {
		s.user.Name = storage.DefaultUserName
	}
	s.habits = append([]string{}, st.Habits...)
	s.streak = streak.State{
		Count:             st.StreakCount,
		LastCompletedDate: st.LastCompletedDate,
		RewardPoints:      st.RewardPoints,
		LastRewardDate:    st.LastRewardDate,
	}
	s.ad = ads.State{
		DisplayCount:  st.AdDisplayCount,
		LastShown:     st.LastAdShown,
		LastDate:      st.LastAdDate,
		Behavior:      ads.Behavior(st.UserBehavior),
		PremiumAccess: st.PremiumAccess,
		PremiumExpiry: st.PremiumExpiry,
	}
}

// Export returns a copy of the whole persisted state.
func (s *Store) Export() storage.State {
	return s.toState()
}

// Import replaces the whole state after validating every task. Nothing is
// changed when validation fails.
func (s *Store) Import(ctx context.Context, st storage.State) error {
	seen := make(map[string]struct{}, len(st.Tasks))
	for i, t := range st.Tasks {
		if err := t.Validate(); err != nil {
			return &model.ValidationError{Field: fmt.Sprintf("tasks[%d]", i), Reason: err.Error()}
		}
		if _, dup := seen[t.ID]; dup {
			return &model.ValidationError{Field: fmt.Sprintf("tasks[%d]", i), Reason: "duplicate id " + t.ID}
		}
		seen[t.ID] = struct{}{}
	}
	s.fromState(st)
	s.focusedID = ""
	s.logger.Info("state imported", slog.Int("tasks", len(s.tasks)))
	return s.commit(ctx)
}

// Reload re-reads the repository, picking up writes from another process.
func (s *Store) Reload(ctx context.Context) error {
	st, err := s.repo.Load(ctx)
	if err != nil {
		return &model.PersistenceError{Op: "load", Err: err}
	}
	s.loadErr, s.backedUp = nil, false
	s.fromState(st)
	if s.indexOf(s.focusedID) < 0 {
		s.focusedID = ""
	}
	s.Refresh()
	return nil
}
