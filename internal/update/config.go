package update

import "github.com/sandeepkv93/taskjar/internal/config"

// RuntimeConfig is the slice of the application config the TUI reads.
type RuntimeConfig struct {
	DesktopNotifications bool
	FocusWorkMinutes     int
	FocusBreakMinutes    int
	SchedulerBuffer      int
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfigFrom(config.Default())
}

func RuntimeConfigFrom(cfg config.Config) RuntimeConfig {
	return RuntimeConfig{
		DesktopNotifications: cfg.Notifications.Desktop,
		FocusWorkMinutes:     cfg.Focus.WorkMinutes,
		FocusBreakMinutes:    cfg.Focus.BreakMinutes,
		SchedulerBuffer:      cfg.Watch.MaxQueue,
	}
}
