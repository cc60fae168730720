package insight

import (
	"fmt"
	"time"

	"github.com/sandeepkv93/taskjar/internal/model"
)

const urgentWithin = time.Hour

type Countdown struct {
	Remaining time.Duration
	Overdue   bool
	Urgent    bool
}

// CountdownTo reports the time left until an incomplete task is due. It
// returns false for completed tasks.
func CountdownTo(task model.Task, now time.Time) (Countdown, bool) {
	if task.Completed {
		return Countdown{}, false
	}
	left := task.Due(now.Location()).Sub(now)
	if left <= 0 {
		return Countdown{Remaining: 0, Overdue: true}, true
	}
	return Countdown{Remaining: left, Urgent: left < urgentWithin}, true
}

func (c Countdown) String() string {
	if c.Overdue {
		return "Overdue"
	}
	h := int(c.Remaining.Hours())
	m := int(c.Remaining.Minutes()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm %ds", m, int(c.Remaining.Seconds())%60)
}
