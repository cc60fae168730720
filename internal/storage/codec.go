package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sandeepkv93/taskjar/internal/model"
)

// encodeState renders every present key as JSON. Absent optional keys map
// to nil so backends can remove them.
func encodeState(st State) (map[string][]byte, error) {
	values := map[string]any{
		KeyTasks:          nonNilTasks(st.Tasks),
		KeyCurrentUser:    st.User,
		KeyRewardPoints:   st.RewardPoints,
		KeyHabits:         nonNilStrings(st.Habits),
		KeyStreakCount:    st.StreakCount,
		KeyAdDisplayCount: st.AdDisplayCount,
		KeyUserBehavior:   st.UserBehavior,
		KeyPremiumAccess:  st.PremiumAccess,
	}
	optional := map[string]any{
		KeyLastCompletedDate: st.LastCompletedDate,
		KeyLastRewardDate:    st.LastRewardDate,
		KeyLastAdShown:       st.LastAdShown,
		KeyLastAdDate:        st.LastAdDate,
		KeyPremiumExpiry:     st.PremiumExpiry,
	}

	out := make(map[string][]byte, len(Keys))
	for key, v := range values {
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("storage: encode %s: %w", key, err)
		}
		out[key] = raw
	}
	for key, v := range optional {
		if isNilPointer(v) {
			out[key] = nil
			continue
		}
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("storage: encode %s: %w", key, err)
		}
		out[key] = raw
	}
	return out, nil
}

func isNilPointer(v any) bool {
	switch p := v.(type) {
	case *model.Date:
		return p == nil
	case *time.Time:
		return p == nil
	default:
		return v == nil
	}
}

// decodeState fills a default state from raw values. A key that fails to
// decode keeps its default and is reported in the joined error.
func decodeState(raw map[string][]byte) (State, error) {
	st := DefaultState()
	targets := map[string]any{
		KeyCurrentUser:       &st.User,
		KeyRewardPoints:      &st.RewardPoints,
		KeyHabits:            &st.Habits,
		KeyStreakCount:       &st.StreakCount,
		KeyLastCompletedDate: &st.LastCompletedDate,
		KeyLastRewardDate:    &st.LastRewardDate,
		KeyAdDisplayCount:    &st.AdDisplayCount,
		KeyLastAdShown:       &st.LastAdShown,
		KeyLastAdDate:        &st.LastAdDate,
		KeyUserBehavior:      &st.UserBehavior,
		KeyPremiumAccess:     &st.PremiumAccess,
		KeyPremiumExpiry:     &st.PremiumExpiry,
	}

	var errs []error
	for _, key := range Keys {
		value, ok := raw[key]
		if !ok || len(value) == 0 {
			continue
		}
		if key == KeyTasks {
			tasks, err := decodeTasks(value)
			st.Tasks = tasks
			if err != nil {
				errs = append(errs, err)
			}
			continue
		}
		if err := decodeKey(key, value, targets[key]); err != nil {
			errs = append(errs, err)
			resetKey(&st, key)
		}
	}
	if st.Tasks == nil {
		st.Tasks = []model.Task{}
	}
	if st.Habits == nil {
		st.Habits = []string{}
	}
	if st.User.Name == "" {
		st.User.Name = DefaultUserName
	}
	return st, errors.Join(errs...)
}

func decodeKey(key string, value []byte, target any) error {
	if err := json.Unmarshal(value, target); err != nil {
		return fmt.Errorf("storage: decode %s: %w", key, err)
	}
	return nil
}

func resetKey(st *State, key string) {
	def := DefaultState()
	switch key {
	case KeyTasks:
		st.Tasks = def.Tasks
	case KeyCurrentUser:
		st.User = def.User
	case KeyRewardPoints:
		st.RewardPoints = 0
	case KeyHabits:
		st.Habits = def.Habits
	case KeyStreakCount:
		st.StreakCount = 0
	case KeyLastCompletedDate:
		st.LastCompletedDate = nil
	case KeyLastRewardDate:
		st.LastRewardDate = nil
	case KeyAdDisplayCount:
		st.AdDisplayCount = 0
	case KeyLastAdShown:
		st.LastAdShown = nil
	case KeyLastAdDate:
		st.LastAdDate = nil
	case KeyUserBehavior:
		st.UserBehavior = Behavior{}
	case KeyPremiumAccess:
		st.PremiumAccess = false
	case KeyPremiumExpiry:
		st.PremiumExpiry = nil
	}
}

// decodeTasks decodes the task list record by record. A record that does
// not decode or repeats an earlier id is skipped and reported; the rest
// load.
func decodeTasks(value []byte) ([]model.Task, error) {
	var records []json.RawMessage
	if err := json.Unmarshal(value, &records); err != nil {
		return []model.Task{}, fmt.Errorf("storage: decode %s: %w", KeyTasks, err)
	}
	tasks := make([]model.Task, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	var errs []error
	for i, rec := range records {
		var task model.Task
		if err := json.Unmarshal(rec, &task); err != nil {
			errs = append(errs, fmt.Errorf("storage: decode %s[%d]: %w", KeyTasks, i, err))
			continue
		}
		if _, dup := seen[task.ID]; dup {
			errs = append(errs, fmt.Errorf("storage: decode %s[%d]: duplicate task id %q", KeyTasks, i, task.ID))
			continue
		}
		seen[task.ID] = struct{}{}
		tasks = append(tasks, task)
	}
	return tasks, errors.Join(errs...)
}

func nonNilTasks(tasks []model.Task) []model.Task {
	if tasks == nil {
		return []model.Task{}
	}
	return tasks
}

func nonNilStrings(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
