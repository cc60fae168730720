// Package watch runs the background daemon: it fires task reminders at
// their trigger time, nudges when today's streak is at risk and sends the
// daily life receipt.
//
// The store is not safe for concurrent use, so every store access happens
// on the Run goroutine. Cron callbacks and the reminder engine only post
// to channels that Run selects on.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/sandeepkv93/taskjar/internal/insight"
	"github.com/sandeepkv93/taskjar/internal/model"
	"github.com/sandeepkv93/taskjar/internal/notify"
	"github.com/sandeepkv93/taskjar/internal/scheduler"
	"github.com/sandeepkv93/taskjar/internal/tasks"
)

type job int

const (
	jobRescan job = iota
	jobReceipt
	jobRisk
)

func (j job) String() string {
	switch j {
	case jobRescan:
		return "rescan"
	case jobReceipt:
		return "receipt"
	case jobRisk:
		return "risk"
	default:
		return fmt.Sprintf("job(%d)", int(j))
	}
}

type Options struct {
	ReceiptAt string
	RiskAt    string
	Rescan    time.Duration
	QueueSize int
	Location  *time.Location
	Logger    *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.ReceiptAt == "" {
		o.ReceiptAt = "21:00"
	}
	if o.RiskAt == "" {
		o.RiskAt = "18:00"
	}
	if o.Rescan <= 0 {
		o.Rescan = time.Minute
	}
	if o.QueueSize <= 0 {
		o.QueueSize = 64
	}
	if o.Location == nil {
		o.Location = time.Local
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o
}

type Daemon struct {
	store    *tasks.Store
	notifier notify.Notifier
	engine   *scheduler.Engine
	cron     *Cron
	jobs     chan job
	opts     Options
	logger   *slog.Logger
}

func New(store *tasks.Store, notifier notify.Notifier, opts Options) (*Daemon, error) {
	if store == nil {
		return nil, errors.New("watch: nil store")
	}
	if notifier == nil {
		notifier = notify.Noop{}
	}
	opts = opts.withDefaults()
	d := &Daemon{
		store:    store,
		notifier: notifier,
		engine:   scheduler.NewEngine(opts.QueueSize),
		cron:     NewCron(opts.Location),
		jobs:     make(chan job, 8),
		opts:     opts,
		logger:   opts.Logger,
	}
	if _, err := d.cron.ScheduleDaily(opts.ReceiptAt, d.post(jobReceipt)); err != nil {
		return nil, fmt.Errorf("watch: receipt schedule: %w", err)
	}
	if _, err := d.cron.ScheduleDaily(opts.RiskAt, d.post(jobRisk)); err != nil {
		return nil, fmt.Errorf("watch: risk schedule: %w", err)
	}
	if _, err := d.cron.ScheduleInterval(opts.Rescan, d.post(jobRescan)); err != nil {
		return nil, fmt.Errorf("watch: rescan schedule: %w", err)
	}
	return d, nil
}

// post returns a cron callback that enqueues j without blocking. A job
// already waiting covers the missed one.
func (d *Daemon) post(j job) func() {
	return func() {
		select {
		case d.jobs <- j:
		default:
			d.logger.Warn("watch job skipped, queue full", slog.String("job", j.String()))
		}
	}
}

// Run blocks until ctx is cancelled.
func (d *Daemon) Run(ctx context.Context) error {
	d.engine.Start()
	defer d.engine.Stop()
	d.cron.Start()
	defer d.cron.Stop()

	if _, err := d.Rescan(ctx); err != nil {
		d.logger.Warn("initial rescan failed", slog.Any("err", err))
	}
	d.logger.Info("watch started",
		slog.String("receipt_at", d.opts.ReceiptAt),
		slog.String("risk_at", d.opts.RiskAt),
		slog.Duration("rescan", d.opts.Rescan))

	for {
		select {
		case <-ctx.Done():
			d.logger.Info("watch stopped", slog.Uint64("dropped", d.engine.Dropped()))
			return nil
		case ev, ok := <-d.engine.C():
			if !ok {
				return nil
			}
			if err := d.FireReminder(ctx, ev); err != nil {
				d.logger.Error("reminder failed", slog.String("task", ev.TaskID), slog.Any("err", err))
			}
		case j := <-d.jobs:
			if err := d.handle(ctx, j); err != nil {
				d.logger.Error("watch job failed", slog.String("job", j.String()), slog.Any("err", err))
			}
		}
	}
}

func (d *Daemon) handle(ctx context.Context, j job) error {
	switch j {
	case jobRescan:
		_, err := d.Rescan(ctx)
		return err
	case jobReceipt:
		return d.SendReceipt(ctx)
	case jobRisk:
		_, err := d.NudgeRisk(ctx)
		return err
	default:
		return fmt.Errorf("watch: unknown job %s", j)
	}
}

// Rescan reloads the store and queues every reminder still in the future.
// A failed reload keeps the in-memory tasks.
func (d *Daemon) Rescan(ctx context.Context) (int, error) {
	reloadErr := d.store.Reload(ctx)
	now := d.store.Now()
	events := make([]scheduler.ReminderEvent, 0)
	for _, rem := range insight.Reminders(d.store.List(tasks.Filter{}), d.opts.Location) {
		if rem.TriggerAt.Before(now) {
			continue
		}
		events = append(events, scheduler.EventFor(rem))
	}
	n, err := d.engine.Replace(events)
	if err != nil {
		return 0, err
	}
	d.logger.Debug("reminders rescanned", slog.Int("queued", n), slog.Int("future", len(events)))
	return n, reloadErr
}

// FireReminder notifies about ev unless the task has since been completed
// or removed.
func (d *Daemon) FireReminder(ctx context.Context, ev scheduler.ReminderEvent) error {
	task, err := d.store.Get(ev.TaskID)
	if errors.Is(err, model.ErrNotFound) {
		d.logger.Debug("reminder for removed task", slog.String("task", ev.TaskID))
		return nil
	}
	if err != nil {
		return err
	}
	if task.Completed {
		return nil
	}
	n := notify.Notification{
		Title: "Reminder: " + task.Title,
		Body:  fmt.Sprintf("Due at %s (%s)", task.Time.Kitchen(), model.FormatReminder(ev.MinutesBefore)),
		Level: notify.LevelInfo,
		At:    d.store.Now(),
	}
	if task.Place != "" {
		n.Body += " at " + task.Place
	}
	d.logger.Info("reminder fired", slog.String("task", task.ID), slog.String("title", task.Title))
	return d.notifier.Send(ctx, n)
}

func (d *Daemon) SendReceipt(ctx context.Context) error {
	r := d.store.Receipt()
	n := notify.Notification{
		Title: "Life receipt for " + r.Date.String(),
		Body: fmt.Sprintf("%d completed, avg energy %d%%, %d min saved, %d reward points",
			r.Completed, r.AvgEnergy, r.MinutesSaved, r.RewardPoints),
		Level: notify.LevelReward,
		At:    d.store.Now(),
	}
	d.logger.Info("receipt sent", slog.Int("completed", r.Completed))
	return d.notifier.Send(ctx, n)
}

// NudgeRisk warns when today's streak is at risk and reports whether a
// nudge went out.
func (d *Daemon) NudgeRisk(ctx context.Context) (bool, error) {
	d.store.Refresh()
	risk := d.store.Risk()
	if !risk.AtRisk {
		return false, nil
	}
	body := "Complete one task today to keep your streak alive."
	if risk.HasSuggestion {
		body = fmt.Sprintf("Quick win: %q keeps your streak alive.", risk.Suggestion.Title)
	}
	n := notify.Notification{
		Title: fmt.Sprintf("%d-day streak at risk", d.store.Streak().Count),
		Body:  body,
		Level: notify.LevelWarn,
		At:    d.store.Now(),
	}
	return true, d.notifier.Send(ctx, n)
}
