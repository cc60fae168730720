package insight

import (
	"time"

	"github.com/sandeepkv93/taskjar/internal/model"
)

type LoadLevel string

const (
	LoadLow    LoadLevel = "Low"
	LoadMedium LoadLevel = "Medium"
	LoadHigh   LoadLevel = "High"
)

type BrainLoad struct {
	Score float64
	Level LoadLevel
}

// ComputeBrainLoad averages the effort of today's incomplete tasks.
func ComputeBrainLoad(tasks []model.Task, now time.Time) BrainLoad {
	var sum, n int
	for _, task := range OnDate(tasks, model.DateOf(now)) {
		if task.Completed {
			continue
		}
		sum += task.Effort
		n++
	}
	var score float64
	if n > 0 {
		score = min(float64(sum)/float64(n), 100)
	}
	return BrainLoad{Score: score, Level: loadLevel(score)}
}

func loadLevel(score float64) LoadLevel {
	switch {
	case score < 33:
		return LoadLow
	case score < 67:
		return LoadMedium
	default:
		return LoadHigh
	}
}

type BucketRatio struct {
	Bucket    model.Bucket
	Completed int
	Total     int
}

func (r BucketRatio) Ratio() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Completed) / float64(r.Total)
}

// BucketRatios reports completion per life bucket among today's tasks, in
// the fixed bucket order.
func BucketRatios(tasks []model.Task, now time.Time) []BucketRatio {
	out := make([]BucketRatio, len(model.Buckets))
	index := make(map[model.Bucket]int, len(model.Buckets))
	for i, b := range model.Buckets {
		out[i] = BucketRatio{Bucket: b}
		index[b] = i
	}
	for _, task := range OnDate(tasks, model.DateOf(now)) {
		i, ok := index[task.Bucket]
		if !ok {
			continue
		}
		out[i].Total++
		if task.Completed {
			out[i].Completed++
		}
	}
	return out
}
