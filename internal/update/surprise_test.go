package update

import (
	"testing"

	"github.com/sandeepkv93/taskjar/internal/insight"
	"github.com/sandeepkv93/taskjar/internal/notify"
)

type stubDice struct {
	roll float64
	pick int
}

func (d stubDice) Float64() float64 { return d.roll }

func (d stubDice) IntN(int) int { return d.pick }

func TestSurpriseAfterSave(t *testing.T) {
	m, _ := newTestModel(t)

	// 0.25 hits the save chance.
	next := runCommand(t, m.WithDice(stubDice{roll: 0.25, pick: 2}), "add Pay rent")
	if next.Surprise == nil || *next.Surprise != insight.Surprises[2] {
		t.Fatalf("expected the tip surprise, got %+v", next.Surprise)
	}
	last := next.Notifications[len(next.Notifications)-1]
	if last.Level != notify.LevelReward || last.Body != insight.Surprises[2].Text {
		t.Fatalf("unexpected surprise notification %+v", last)
	}

	miss := runCommand(t, m.WithDice(stubDice{roll: 0.3}), "add Call mom")
	if miss.Surprise != nil {
		t.Fatalf("expected no surprise at the chance boundary, got %+v", miss.Surprise)
	}
}

func TestSurpriseAfterCompleteOnly(t *testing.T) {
	m, store := newTestModel(t)
	seedTask(t, store, "Standup", "11:00")
	m = NewModel(store).WithContext(t.Context())

	// 0.25 misses the completion chance.
	next := press(t, m.WithDice(stubDice{roll: 0.25}), "x")
	if next.Surprise != nil {
		t.Fatalf("expected no surprise at 0.25, got %+v", next.Surprise)
	}

	reopened := press(t, next.WithDice(stubDice{roll: 0}), "x")
	if reopened.Surprise != nil {
		t.Fatal("reopening a task must not hand out a surprise")
	}

	done := press(t, reopened.WithDice(stubDice{roll: 0.1, pick: 1}), "x")
	if done.Surprise == nil || *done.Surprise != insight.Surprises[1] {
		t.Fatalf("expected the joke surprise, got %+v", done.Surprise)
	}
}

func TestMoodTiredTrimsAgenda(t *testing.T) {
	m, store := newTestModel(t)
	for _, title := range []string{"One", "Two", "Three", "Four", "Five"} {
		seedTask(t, store, title, "11:00")
	}
	m = NewModel(store).WithContext(t.Context())
	if len(m.Today.Rows) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(m.Today.Rows))
	}

	next := runCommand(t, m, "mood tired")
	if store.Mood() != insight.MoodTired || next.Status.Text != "mood: tired" {
		t.Fatalf("expected tired mood, got %q status %q", store.Mood(), next.Status.Text)
	}
	if len(next.Today.Rows) != insight.TiredAgendaLimit {
		t.Fatalf("expected %d rows when tired, got %d", insight.TiredAgendaLimit, len(next.Today.Rows))
	}

	// Other layouts are left alone.
	magnet := runCommand(t, next, "layout magnet")
	if len(magnet.Today.Rows) != 5 {
		t.Fatalf("expected magnet layout untrimmed, got %d rows", len(magnet.Today.Rows))
	}

	back := runCommand(t, runCommand(t, magnet, "layout list"), "mood normal")
	if len(back.Today.Rows) != 5 {
		t.Fatalf("expected 5 rows after mood reset, got %d", len(back.Today.Rows))
	}
}
