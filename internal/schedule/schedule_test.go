package schedule

import (
	"testing"
	"time"

	"github.com/sandeepkv93/taskjar/internal/model"
)

func TestTimeFromEnergy(t *testing.T) {
	cases := []struct {
		energy int
		want   string
	}{
		{energy: 0, want: "06:00"},
		{energy: 32, want: "08:54"},
		{energy: 33, want: "12:00"},
		{energy: 50, want: "13:30"},
		{energy: 66, want: "14:54"},
		{energy: 67, want: "18:00"},
		{energy: 100, want: "21:00"},
		{energy: -5, want: "06:00"},
		{energy: 150, want: "21:00"},
	}
	for _, tc := range cases {
		if got := TimeFromEnergy(tc.energy).String(); got != tc.want {
			t.Fatalf("TimeFromEnergy(%d) = %s, want %s", tc.energy, got, tc.want)
		}
	}
}

func TestTimeFromEnergyBands(t *testing.T) {
	for e := 0; e <= 100; e++ {
		c := TimeFromEnergy(e)
		var lo, hi int
		switch {
		case e < 33:
			lo, hi = 6*60, 9*60
		case e < 67:
			lo, hi = 12*60, 15*60
		default:
			lo, hi = 18*60, 21*60+1
		}
		if m := c.Minutes(); m < lo || m >= hi {
			t.Fatalf("energy %d mapped to %s outside its band", e, c)
		}
	}
}

func TestPriorityFromEffort(t *testing.T) {
	cases := map[int]model.Priority{
		0:   model.PriorityLow,
		40:  model.PriorityLow,
		41:  model.PriorityMedium,
		70:  model.PriorityMedium,
		71:  model.PriorityHigh,
		100: model.PriorityHigh,
	}
	for effort, want := range cases {
		if got := PriorityFromEffort(effort); got != want {
			t.Fatalf("PriorityFromEffort(%d) = %s, want %s", effort, got, want)
		}
	}
}

func TestIsMissed(t *testing.T) {
	now := time.Date(2026, 5, 10, 14, 0, 0, 0, time.UTC)
	task := model.Task{
		Date: model.Date{Year: 2026, Month: time.May, Day: 10},
		Time: model.Clock{Hour: 9},
	}
	if !IsMissed(task, now) {
		t.Fatal("expected morning task to be missed in the afternoon")
	}
	task.Completed = true
	if IsMissed(task, now) {
		t.Fatal("completed tasks are never missed")
	}
	task.Completed = false
	task.Time = model.Clock{Hour: 14}
	if IsMissed(task, now) {
		t.Fatal("a task due exactly now is not missed")
	}
	if got := Tomorrow(now).String(); got != "2026-05-11" {
		t.Fatalf("expected 2026-05-11, got %s", got)
	}
}

func TestIsNightTime(t *testing.T) {
	for hour, want := range map[int]bool{0: true, 5: true, 6: false, 12: false, 17: false, 18: true, 23: true} {
		now := time.Date(2026, 1, 1, hour, 30, 0, 0, time.UTC)
		if got := IsNightTime(now); got != want {
			t.Fatalf("IsNightTime(%02d:30) = %v, want %v", hour, got, want)
		}
	}
}
