package storage

import (
	"time"

	"github.com/sandeepkv93/taskjar/internal/model"
)

// Persisted keys. Each holds one JSON value.
const (
	KeyTasks             = "tasks"
	KeyCurrentUser       = "currentUser"
	KeyRewardPoints      = "rewardPoints"
	KeyHabits            = "habits"
	KeyStreakCount       = "streakCount"
	KeyLastCompletedDate = "lastCompletedDate"
	KeyLastRewardDate    = "lastRewardDate"
	KeyAdDisplayCount    = "adDisplayCount"
	KeyLastAdShown       = "lastAdShown"
	KeyLastAdDate        = "lastAdDate"
	KeyUserBehavior      = "userBehavior"
	KeyPremiumAccess     = "premiumAccess"
	KeyPremiumExpiry     = "premiumExpiry"
)

// Keys lists every persisted key in save order.
var Keys = []string{
	KeyTasks, KeyCurrentUser, KeyRewardPoints, KeyHabits, KeyStreakCount,
	KeyLastCompletedDate, KeyLastRewardDate, KeyAdDisplayCount, KeyLastAdShown,
	KeyLastAdDate, KeyUserBehavior, KeyPremiumAccess, KeyPremiumExpiry,
}

type User struct {
	Name string `json:"name" yaml:"name"`
}

type Behavior struct {
	Productivity int `json:"productivity" yaml:"productivity"`
	Study        int `json:"study" yaml:"study"`
	Finance      int `json:"finance" yaml:"finance"`
}

// State is the whole persisted application state. Nil pointers are absent
// keys.
type State struct {
	Tasks             []model.Task `yaml:"tasks"`
	User              User         `yaml:"currentUser"`
	RewardPoints      int          `yaml:"rewardPoints"`
	Habits            []string     `yaml:"habits"`
	StreakCount       int          `yaml:"streakCount"`
	LastCompletedDate *model.Date  `yaml:"lastCompletedDate,omitempty"`
	LastRewardDate    *model.Date  `yaml:"lastRewardDate,omitempty"`
	AdDisplayCount    int          `yaml:"adDisplayCount"`
	LastAdShown       *time.Time   `yaml:"lastAdShown,omitempty"`
	LastAdDate        *model.Date  `yaml:"lastAdDate,omitempty"`
	UserBehavior      Behavior     `yaml:"userBehavior"`
	PremiumAccess     bool         `yaml:"premiumAccess"`
	PremiumExpiry     *time.Time   `yaml:"premiumExpiry,omitempty"`
}

const DefaultUserName = "User"

// DefaultState is what a fresh install, or an unreadable store, starts from.
func DefaultState() State {
	return State{
		Tasks:  []model.Task{},
		User:   User{Name: DefaultUserName},
		Habits: []string{},
	}
}
