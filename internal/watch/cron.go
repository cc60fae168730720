package watch

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/sandeepkv93/taskjar/internal/model"
)

// Cron wraps the wall-clock jobs of the daemon.
type Cron struct {
	cron *cron.Cron
}

func NewCron(loc *time.Location) *Cron {
	if loc == nil {
		loc = time.Local
	}
	return &Cron{
		cron: cron.New(cron.WithLocation(loc), cron.WithSeconds()),
	}
}

// ScheduleDaily registers job at the given HH:MM every day.
func (c *Cron) ScheduleDaily(at string, job func()) (cron.EntryID, error) {
	spec, err := dailySpec(at)
	if err != nil {
		return 0, err
	}
	return c.cron.AddFunc(spec, job)
}

func (c *Cron) ScheduleInterval(interval time.Duration, job func()) (cron.EntryID, error) {
	if interval <= 0 {
		return 0, fmt.Errorf("watch: interval must be positive, got %s", interval)
	}
	seconds := max(int(interval.Seconds()), 1)
	return c.cron.AddFunc(fmt.Sprintf("@every %ds", seconds), job)
}

// Next reports when the entry fires next; zero before Start.
func (c *Cron) Next(id cron.EntryID) time.Time {
	return c.cron.Entry(id).Next
}

func (c *Cron) Start() {
	c.cron.Start()
}

func (c *Cron) Stop() {
	ctx := c.cron.Stop()
	<-ctx.Done()
}

// dailySpec turns HH:MM into a seconds-field cron spec.
func dailySpec(at string) (string, error) {
	clock, err := model.ParseClock(at)
	if err != nil {
		return "", fmt.Errorf("watch: daily time: %w", err)
	}
	return fmt.Sprintf("0 %d %d * * *", clock.Minute, clock.Hour), nil
}
