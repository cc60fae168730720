// Package streak tracks consecutive days with a completed task and the
// reward jar that fills when enough tasks are done in one day.
package streak

import (
	"github.com/sandeepkv93/taskjar/internal/insight"
	"github.com/sandeepkv93/taskjar/internal/model"
)

const (
	DefaultRewardThreshold = 5
	tinyTaskEffort         = 30
)

type State struct {
	Count             int
	LastCompletedDate *model.Date
	RewardPoints      int
	// LastRewardDate guards the jar against paying out twice in one day.
	LastRewardDate *model.Date
}

// Outcome reports what an evaluation changed.
type Outcome struct {
	Extended bool
	Reset    bool
	Rewarded bool
}

type Engine struct {
	threshold int
}

func NewEngine(rewardThreshold int) *Engine {
	if rewardThreshold <= 0 {
		rewardThreshold = DefaultRewardThreshold
	}
	return &Engine{threshold: rewardThreshold}
}

func (e *Engine) Threshold() int {
	return e.threshold
}

// Apply re-evaluates the streak and the reward jar against the full task
// list. It is safe to call after every mutation: each transition fires at
// most once per day.
func (e *Engine) Apply(state State, tasks []model.Task, today model.Date) (State, Outcome) {
	var out Outcome
	done := insight.CompletedOn(tasks, today)

	if done > 0 && (state.LastCompletedDate == nil || *state.LastCompletedDate != today) {
		if state.LastCompletedDate != nil && *state.LastCompletedDate == today.AddDays(-1) {
			state.Count++
			out.Extended = true
		} else {
			state.Count = 1
			out.Reset = true
		}
		d := today
		state.LastCompletedDate = &d
	}

	if done >= e.threshold && (state.LastRewardDate == nil || *state.LastRewardDate != today) {
		state.RewardPoints++
		d := today
		state.LastRewardDate = &d
		out.Rewarded = true
	}
	return state, out
}

// JarProgress returns today's completed count capped at the threshold.
func (e *Engine) JarProgress(tasks []model.Task, today model.Date) (int, int) {
	return min(insight.CompletedOn(tasks, today), e.threshold), e.threshold
}

// Risk is advisory: today has tasks and none of them are done.
type Risk struct {
	AtRisk        bool
	Suggestion    model.Task
	HasSuggestion bool
}

// AssessRisk recommends the lightest pending task under 30 effort as a
// quick way to keep the streak alive.
func AssessRisk(tasks []model.Task, today model.Date) Risk {
	todays := insight.OnDate(tasks, today)
	if len(todays) == 0 {
		return Risk{}
	}
	for _, task := range todays {
		if task.Completed {
			return Risk{}
		}
	}
	out := Risk{AtRisk: true}
	for _, task := range todays {
		if task.Effort >= tinyTaskEffort {
			continue
		}
		if !out.HasSuggestion || task.Effort < out.Suggestion.Effort {
			out.Suggestion = task
			out.HasSuggestion = true
		}
	}
	return out
}
