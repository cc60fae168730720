// Package ads decides when a sponsored slot may be shown and which
// category it should target. It never renders anything itself.
package ads

import (
	"time"

	"github.com/sandeepkv93/taskjar/internal/insight"
	"github.com/sandeepkv93/taskjar/internal/model"
)

const (
	DefaultCooldown = 5 * time.Minute
	DefaultDailyCap = 10
	PremiumDuration = 24 * time.Hour
)

type Reason string

const (
	ReasonAllowed  Reason = "allowed"
	ReasonDailyCap Reason = "daily_cap"
	ReasonCooldown Reason = "cooldown"
	ReasonFocus    Reason = "focus"
	ReasonDisabled Reason = "disabled"
)

type Decision struct {
	Show   bool
	Reason Reason
}

// State is the persisted throttle bookkeeping.
type State struct {
	DisplayCount  int
	LastShown     *time.Time
	LastDate      *model.Date
	Behavior      Behavior
	PremiumAccess bool
	PremiumExpiry *time.Time
}

type Policy struct {
	Enabled  bool
	Cooldown time.Duration
	DailyCap int
}

func DefaultPolicy() Policy {
	return Policy{Enabled: true, Cooldown: DefaultCooldown, DailyCap: DefaultDailyCap}
}

// ShouldShow applies both throttles. When both fail the daily cap is
// reported. A cap of zero or less means no ad is ever shown.
func (p Policy) ShouldShow(st State, now time.Time) Decision {
	if !p.Enabled {
		return Decision{Reason: ReasonDisabled}
	}
	if p.DailyCap <= 0 {
		return Decision{Reason: ReasonDailyCap}
	}
	if st.LastDate != nil && *st.LastDate == model.DateOf(now) && st.DisplayCount >= p.DailyCap {
		return Decision{Reason: ReasonDailyCap}
	}
	if st.LastShown != nil && now.Sub(*st.LastShown) < p.Cooldown {
		return Decision{Reason: ReasonCooldown}
	}
	return Decision{Show: true, Reason: ReasonAllowed}
}

// ShouldShowIn additionally suppresses ads while focus mode is active.
func (p Policy) ShouldShowIn(st State, now time.Time, layout insight.Layout, focusedTaskID string) Decision {
	if IsFocusModeActive(layout, focusedTaskID) {
		return Decision{Reason: ReasonFocus}
	}
	return p.ShouldShow(st, now)
}

// RecordShown counts a displayed ad, starting a fresh count on a new day.
func RecordShown(st State, now time.Time) State {
	today := model.DateOf(now)
	if st.LastDate == nil || *st.LastDate != today {
		st.DisplayCount = 0
	}
	st.DisplayCount++
	shown := now
	st.LastShown = &shown
	st.LastDate = &today
	return st
}

func IsFocusModeActive(layout insight.Layout, focusedTaskID string) bool {
	return layout == insight.LayoutFocus || focusedTaskID != ""
}

// UnlockPremium grants premium features for 24 hours from now.
func UnlockPremium(st State, now time.Time) State {
	expiry := now.Add(PremiumDuration)
	st.PremiumAccess = true
	st.PremiumExpiry = &expiry
	return st
}

// HasPremium reports whether premium is active and clears an expired
// unlock. The returned state must be kept when it differs.
func HasPremium(st State, now time.Time) (bool, State) {
	if !st.PremiumAccess || st.PremiumExpiry == nil {
		return false, st
	}
	if now.Before(*st.PremiumExpiry) {
		return true, st
	}
	st.PremiumAccess = false
	st.PremiumExpiry = nil
	return false, st
}
