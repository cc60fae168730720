package insight

import "math/rand/v2"

// SurpriseKind groups the small rewards handed out at random.
type SurpriseKind string

const (
	SurpriseQuote SurpriseKind = "quote"
	SurpriseJoke  SurpriseKind = "joke"
	SurpriseTip   SurpriseKind = "tip"
)

// Chances of a surprise after saving a new task and after completing one.
const (
	SurpriseOnSave     = 0.3
	SurpriseOnComplete = 0.2
)

type Surprise struct {
	Kind SurpriseKind
	Text string
}

var Surprises = []Surprise{
	{SurpriseQuote, `"The only way to do great work is to love what you do." - Steve Jobs`},
	{SurpriseJoke, "Why did the task cross the road? To get to the completed side!"},
	{SurpriseTip, "Tip: break big tasks into smaller ones. You'll feel more accomplished!"},
	{SurpriseQuote, `"Progress, not perfection." Keep going!`},
	{SurpriseJoke, "What do you call a completed task? A success story!"},
}

// Dice is the randomness a surprise draw needs. *rand.Rand from
// math/rand/v2 satisfies it.
type Dice interface {
	Float64() float64
	IntN(n int) int
}

type globalDice struct{}

func (globalDice) Float64() float64 { return rand.Float64() }

func (globalDice) IntN(n int) int { return rand.IntN(n) }

// RandomDice draws from the math/rand/v2 global source.
var RandomDice Dice = globalDice{}

// DrawSurprise rolls against chance and, on a hit, picks one surprise.
func DrawSurprise(d Dice, chance float64) (Surprise, bool) {
	if d == nil || d.Float64() >= chance {
		return Surprise{}, false
	}
	return Surprises[d.IntN(len(Surprises))], true
}
