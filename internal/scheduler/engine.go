// Package scheduler fires reminder events at their trigger time from a
// single background goroutine. A consumer that falls behind loses events
// instead of blocking the engine; Dropped counts them.
package scheduler

import (
	"container/heap"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sandeepkv93/taskjar/internal/model"
)

var (
	ErrInvalidTriggerTime = errors.New("scheduler: invalid trigger time")
	ErrStopped            = errors.New("scheduler: engine stopped")
)

type ReminderEvent struct {
	TaskID        string
	Title         string
	MinutesBefore int
	DueAt         time.Time
	TriggerAt     time.Time
}

// Key identifies an event so a task's reminder is queued once per trigger
// time even when the queue is rebuilt.
func (ev ReminderEvent) Key() string {
	return fmt.Sprintf("%s@%d", ev.TaskID, ev.TriggerAt.Unix())
}

func EventFor(r model.Reminder) ReminderEvent {
	return ReminderEvent{
		TaskID:        r.TaskID,
		Title:         r.Title,
		MinutesBefore: r.MinutesBefore,
		DueAt:         r.DueAt,
		TriggerAt:     r.TriggerAt,
	}
}

// eventHeap orders events by trigger time, earliest first.
type eventHeap []ReminderEvent

func (h eventHeap) Len() int           { return len(h) }
func (h eventHeap) Less(i, j int) bool { return h[i].TriggerAt.Before(h[j].TriggerAt) }
func (h eventHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x any) { *h = append(*h, x.(ReminderEvent)) }

func (h *eventHeap) Pop() any {
	last := (*h)[len(*h)-1]
	*h = (*h)[:len(*h)-1]
	return last
}

type Engine struct {
	mu      sync.Mutex
	pending eventHeap
	queued  map[string]struct{}
	fired   map[string]struct{}
	started bool
	stopped bool

	out     chan ReminderEvent
	wake    chan struct{}
	quit    chan struct{}
	done    chan struct{}
	dropped atomic.Uint64
}

func NewEngine(bufferSize int) *Engine {
	return &Engine{
		queued: make(map[string]struct{}),
		fired:  make(map[string]struct{}),
		out:    make(chan ReminderEvent, max(bufferSize, 1)),
		wake:   make(chan struct{}, 1),
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// C delivers due events. It is closed once the engine stops.
func (e *Engine) C() <-chan ReminderEvent {
	return e.out
}

func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started || e.stopped {
		return
	}
	e.started = true
	go e.run()
}

// Stop ends the background goroutine and waits for it to exit.
func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.started || e.stopped {
		e.mu.Unlock()
		return
	}
	e.stopped = true
	close(e.quit)
	e.mu.Unlock()
	<-e.done
}

// Schedule queues ev. It reports false when the same event is already
// queued or has already fired.
func (e *Engine) Schedule(ev ReminderEvent) (bool, error) {
	if ev.TriggerAt.IsZero() {
		return false, ErrInvalidTriggerTime
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return false, ErrStopped
	}
	if !e.enqueueLocked(ev) {
		return false, nil
	}
	e.poke()
	return true, nil
}

// Replace swaps the whole queue for events, keeping the fired history so
// rebuilt queues do not repeat reminders. It returns how many were queued.
func (e *Engine) Replace(events []ReminderEvent) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return 0, ErrStopped
	}
	e.pending = e.pending[:0]
	clear(e.queued)
	n := 0
	for _, ev := range events {
		if !ev.TriggerAt.IsZero() && e.enqueueLocked(ev) {
			n++
		}
	}
	e.poke()
	return n, nil
}

func (e *Engine) enqueueLocked(ev ReminderEvent) bool {
	key := ev.Key()
	_, isQueued := e.queued[key]
	_, hasFired := e.fired[key]
	if isQueued || hasFired {
		return false
	}
	e.queued[key] = struct{}{}
	heap.Push(&e.pending, ev)
	return true
}

func (e *Engine) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.pending)
}

// Dropped counts events discarded because C was full.
func (e *Engine) Dropped() uint64 {
	return e.dropped.Load()
}

func (e *Engine) poke() {
	select {
	case e.wake <- struct{}{}:
	default:
	}
}

func (e *Engine) run() {
	defer close(e.done)
	defer close(e.out)

	timer := time.NewTimer(time.Hour)
	defer timer.Stop()
	for {
		var due <-chan time.Time
		if wait, ok := e.untilNext(time.Now()); ok {
			timer.Reset(wait)
			due = timer.C
		}

		select {
		case <-due:
			e.deliver(e.takeDue(time.Now()))
		case <-e.wake:
		case <-e.quit:
			return
		}
	}
}

func (e *Engine) deliver(events []ReminderEvent) {
	for _, ev := range events {
		select {
		case e.out <- ev:
		default:
			e.dropped.Add(1)
		}
	}
}

// untilNext reports how long until the earliest queued event is due.
func (e *Engine) untilNext(now time.Time) (time.Duration, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.pending) == 0 {
		return 0, false
	}
	return max(e.pending[0].TriggerAt.Sub(now), 0), true
}

func (e *Engine) takeDue(now time.Time) []ReminderEvent {
	e.mu.Lock()
	defer e.mu.Unlock()

	var due []ReminderEvent
	for len(e.pending) > 0 && !e.pending[0].TriggerAt.After(now) {
		ev := heap.Pop(&e.pending).(ReminderEvent)
		key := ev.Key()
		delete(e.queued, key)
		e.fired[key] = struct{}{}
		due = append(due, ev)
	}
	return due
}
