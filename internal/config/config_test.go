package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	if cfg.Focus.WorkMinutes != 25 || cfg.Focus.BreakMinutes != 5 {
		t.Fatalf("unexpected focus defaults: %+v", cfg.Focus)
	}
	if !cfg.Ads.Enabled || cfg.AdCooldown() != 5*time.Minute || cfg.Ads.DailyCap != 10 {
		t.Fatalf("unexpected ad defaults: %+v", cfg.Ads)
	}
	if cfg.Storage.Backend != BackendSQLite || cfg.Storage.Driver != "sqlite3" {
		t.Fatalf("unexpected storage defaults: %+v", cfg.Storage)
	}
	if cfg.Mood != "normal" {
		t.Fatalf("unexpected default mood %q", cfg.Mood)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate: %v", err)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Watch.ReceiptAt != "21:00" || cfg.Streak.RewardThreshold != 5 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := `data_dir: ` + dir + `
storage:
  backend: file
focus:
  work_minutes: 50
ads:
  daily_cap: 3
log:
  level: debug
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("TASKJAR_FOCUS_BREAK_MINUTES", "7")
	t.Setenv("TASKJAR_ADS_DAILY_CAP", "4")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Focus.WorkMinutes != 50 || cfg.Focus.BreakMinutes != 7 {
		t.Fatalf("unexpected focus config: %+v", cfg.Focus)
	}
	if cfg.Ads.DailyCap != 4 {
		t.Fatalf("expected env to override file, got %d", cfg.Ads.DailyCap)
	}
	if cfg.StatePath() != filepath.Join(dir, "taskjar.json") || cfg.SlogLevel() != slog.LevelDebug {
		t.Fatalf("unexpected derived paths/level: %s %v", cfg.StatePath(), cfg.SlogLevel())
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("watch:\n  receipt_at: \"9pm\"\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected invalid receipt time to fail")
	}
	t.Setenv("TASKJAR_MOOD", "grumpy")
	if _, err := Load(filepath.Join(t.TempDir(), "none.yaml")); err == nil {
		t.Fatal("expected unknown mood to fail")
	}
	t.Setenv("TASKJAR_MOOD", "tired")
	cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	if err != nil || cfg.Mood != "tired" {
		t.Fatalf("expected tired mood from env, got %q (%v)", cfg.Mood, err)
	}
	t.Setenv("TASKJAR_STORAGE_BACKEND", "postgres")
	if _, err := Load(filepath.Join(t.TempDir(), "none.yaml")); err == nil {
		t.Fatal("expected unknown backend to fail")
	}
}
