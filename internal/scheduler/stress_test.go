package scheduler

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

// Several goroutines race to queue overlapping reminders while another
// keeps rebuilding the queue. Every distinct reminder must arrive once.
func TestEngineConcurrentScheduleDeliversEachReminderOnce(t *testing.T) {
	engine := NewEngine(2048)
	engine.Start()
	defer engine.Stop()

	const (
		tasks   = 300
		writers = 6
	)
	base := time.Now().Add(30 * time.Millisecond)
	events := make([]ReminderEvent, tasks)
	for i := range events {
		events[i] = ReminderEvent{
			TaskID:        fmt.Sprintf("task-%d", i),
			Title:         "stress",
			MinutesBefore: 10,
			TriggerAt:     base.Add(time.Duration(i%40) * time.Millisecond),
		}
	}

	var wg sync.WaitGroup
	for w := range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := w; i < len(events)+w; i++ {
				if _, err := engine.Schedule(events[i%len(events)]); err != nil {
					t.Errorf("schedule: %v", err)
					return
				}
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for range 5 {
			if _, err := engine.Replace(events); err != nil {
				t.Errorf("replace: %v", err)
				return
			}
		}
	}()
	wg.Wait()

	seen := make(map[string]int, tasks)
	deadline := time.After(5 * time.Second)
	for len(seen) < tasks {
		select {
		case ev := <-engine.C():
			seen[ev.Key()]++
		case <-deadline:
			t.Fatalf("timed out with %d of %d reminders, dropped=%d", len(seen), tasks, engine.Dropped())
		}
	}

	// Give a stray duplicate time to show up.
	select {
	case ev := <-engine.C():
		t.Fatalf("reminder %s delivered twice", ev.Key())
	case <-time.After(80 * time.Millisecond):
	}
	for key, n := range seen {
		if n != 1 {
			t.Fatalf("reminder %s delivered %d times", key, n)
		}
	}
	if engine.Dropped() != 0 {
		t.Fatalf("expected no drops with an active reader, got %d", engine.Dropped())
	}
}
