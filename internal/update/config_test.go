package update

import (
	"testing"

	"github.com/sandeepkv93/taskjar/internal/config"
)

func TestRuntimeConfigDefaults(t *testing.T) {
	cfg := DefaultRuntimeConfig()
	if cfg.FocusWorkMinutes != 25 || cfg.FocusBreakMinutes != 5 {
		t.Fatalf("unexpected focus defaults: %+v", cfg)
	}
	if cfg.SchedulerBuffer != 64 || cfg.DesktopNotifications {
		t.Fatalf("unexpected runtime defaults: %+v", cfg)
	}
}

func TestRuntimeConfigFrom(t *testing.T) {
	base := config.Default()
	base.Notifications.Desktop = true
	base.Focus.WorkMinutes = 30
	base.Focus.BreakMinutes = 7
	base.Watch.MaxQueue = 128

	cfg := RuntimeConfigFrom(base)
	if !cfg.DesktopNotifications {
		t.Fatal("expected desktop notifications true")
	}
	if cfg.FocusWorkMinutes != 30 || cfg.FocusBreakMinutes != 7 || cfg.SchedulerBuffer != 128 {
		t.Fatalf("unexpected config overrides: %+v", cfg)
	}
}
