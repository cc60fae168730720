package insight

import (
	"math/rand/v2"
	"testing"

	"github.com/sandeepkv93/taskjar/internal/model"
)

func TestMoodLimit(t *testing.T) {
	agenda := []model.Task{task("a", 10, false), task("b", 20, false), task("c", 30, false), task("d", 40, false)}

	if got := MoodNormal.Limit(agenda); len(got) != 4 {
		t.Fatalf("normal mood trimmed the agenda to %d", len(got))
	}
	got := MoodTired.Limit(agenda)
	if len(got) != TiredAgendaLimit || got[0].ID != "a" || got[2].ID != "c" {
		t.Fatalf("unexpected tired agenda %+v", got)
	}
	if got := MoodTired.Limit(agenda[:2]); len(got) != 2 {
		t.Fatalf("short agenda should pass through, got %d", len(got))
	}
	if _, err := ParseMood("grumpy"); err == nil {
		t.Fatal("expected unknown mood error")
	}
}

type fixedDice struct {
	roll float64
	pick int
}

func (d fixedDice) Float64() float64 { return d.roll }
func (d fixedDice) IntN(int) int { return d.pick }

func TestDrawSurprise(t *testing.T) {
	if _, ok := DrawSurprise(fixedDice{roll: 0.3}, SurpriseOnSave); ok {
		t.Fatal("a roll equal to the chance must miss")
	}
	s, ok := DrawSurprise(fixedDice{roll: 0.29, pick: 1}, SurpriseOnSave)
	if !ok || s != Surprises[1] {
		t.Fatalf("expected the second surprise, got %+v ok=%v", s, ok)
	}
	if _, ok := DrawSurprise(fixedDice{roll: 0.25}, SurpriseOnComplete); ok {
		t.Fatal("0.25 must miss the completion chance")
	}
	if _, ok := DrawSurprise(nil, 1); ok {
		t.Fatal("no dice, no surprise")
	}

	r := rand.New(rand.NewPCG(1, 2))
	hits := 0
	for range 1000 {
		if _, ok := DrawSurprise(r, SurpriseOnComplete); ok {
			hits++
		}
	}
	if hits < 120 || hits > 280 {
		t.Fatalf("expected roughly 20%% hits, got %d of 1000", hits)
	}
}
