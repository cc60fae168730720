package insight

import (
	"fmt"

	"github.com/sandeepkv93/taskjar/internal/model"
)

// Mood tunes how much of the day is put in front of the user.
type Mood string

const (
	MoodNormal Mood = "normal"
	MoodTired  Mood = "tired"
)

// TiredAgendaLimit is how many agenda rows a tired user sees.
const TiredAgendaLimit = 3

var Moods = []Mood{MoodNormal, MoodTired}

func (m Mood) IsValid() bool {
	for _, known := range Moods {
		if m == known {
			return true
		}
	}
	return false
}

func ParseMood(value string) (Mood, error) {
	m := Mood(value)
	if !m.IsValid() {
		return "", fmt.Errorf("insight: unknown mood %q", value)
	}
	return m, nil
}

// Limit trims an agenda to what the mood allows. The input is not modified.
func (m Mood) Limit(agenda []model.Task) []model.Task {
	if m == MoodTired && len(agenda) > TiredAgendaLimit {
		return agenda[:TiredAgendaLimit:TiredAgendaLimit]
	}
	return agenda
}
