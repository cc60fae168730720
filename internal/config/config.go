// Package config loads taskjar settings from an optional YAML file,
// TASKJAR_* environment variables and built-in defaults, in that order of
// precedence from lowest to highest: defaults, file, environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/sandeepkv93/taskjar/internal/insight"
)

const EnvPrefix = "TASKJAR"

const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
)

type StorageConfig struct {
	// Backend is "sqlite" or "file".
	Backend string `mapstructure:"backend" yaml:"backend"`
	// Driver selects the sqlite driver: "sqlite3" (cgo) or "sqlite" (pure Go).
	Driver string `mapstructure:"driver" yaml:"driver"`
}

type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
}

type FocusConfig struct {
	WorkMinutes  int `mapstructure:"work_minutes" yaml:"work_minutes"`
	BreakMinutes int `mapstructure:"break_minutes" yaml:"break_minutes"`
}

type AdsConfig struct {
	Enabled         bool `mapstructure:"enabled" yaml:"enabled"`
	CooldownMinutes int  `mapstructure:"cooldown_minutes" yaml:"cooldown_minutes"`
	// DailyCap of 0 turns ads off.
	DailyCap        int  `mapstructure:"daily_cap" yaml:"daily_cap"`
}

type StreakConfig struct {
	RewardThreshold int `mapstructure:"reward_threshold" yaml:"reward_threshold"`
}

type WatchConfig struct {
	// ReceiptAt is the HH:MM at which the daily life receipt is sent.
	ReceiptAt string `mapstructure:"receipt_at" yaml:"receipt_at"`
	// RiskAt is the HH:MM at which an at-risk streak triggers a nudge.
	RiskAt        string `mapstructure:"risk_at" yaml:"risk_at"`
	RescanSeconds int    `mapstructure:"rescan_seconds" yaml:"rescan_seconds"`
	MaxQueue      int    `mapstructure:"max_queue" yaml:"max_queue"`
}

type NotificationsConfig struct {
	Desktop bool `mapstructure:"desktop" yaml:"desktop"`
}

type Config struct {
	DataDir       string              `mapstructure:"data_dir" yaml:"data_dir"`
	Storage       StorageConfig       `mapstructure:"storage" yaml:"storage"`
	Log           LogConfig           `mapstructure:"log" yaml:"log"`
	Focus         FocusConfig         `mapstructure:"focus" yaml:"focus"`
	Ads           AdsConfig           `mapstructure:"ads" yaml:"ads"`
	Streak        StreakConfig        `mapstructure:"streak" yaml:"streak"`
	Watch         WatchConfig         `mapstructure:"watch" yaml:"watch"`
	Notifications NotificationsConfig `mapstructure:"notifications" yaml:"notifications"`
	// Mood is "normal" or "tired"; tired trims today's agenda.
	Mood          string              `mapstructure:"mood" yaml:"mood"`
}

// DefaultConfigPath returns ~/.config/taskjar/config.yaml.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(dir, "taskjar", "config.yaml")
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".taskjar"
	}
	return filepath.Join(home, ".local", "share", "taskjar")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data_dir", defaultDataDir())
	v.SetDefault("storage.backend", BackendSQLite)
	v.SetDefault("storage.driver", "sqlite3")
	v.SetDefault("log.level", "info")
	v.SetDefault("focus.work_minutes", 25)
	v.SetDefault("focus.break_minutes", 5)
	v.SetDefault("ads.enabled", true)
	v.SetDefault("ads.cooldown_minutes", 5)
	v.SetDefault("ads.daily_cap", 10)
	v.SetDefault("streak.reward_threshold", 5)
	v.SetDefault("watch.receipt_at", "21:00")
	v.SetDefault("watch.risk_at", "18:00")
	v.SetDefault("watch.rescan_seconds", 60)
	v.SetDefault("watch.max_queue", 64)
	v.SetDefault("notifications.desktop", false)
	v.SetDefault("mood", string(insight.MoodNormal))
}

// Default returns the configuration used when no file or environment
// overrides exist.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return cfg
}

// Load reads the YAML file at path, if it exists, and layers environment
// variables on top. An empty path uses DefaultConfigPath.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultConfigPath()
	}
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Storage.Backend {
	case BackendSQLite, BackendFile:
	default:
		return fmt.Errorf("config: unknown storage backend %q", c.Storage.Backend)
	}
	switch c.Storage.Driver {
	case "sqlite3", "sqlite":
	default:
		return fmt.Errorf("config: unknown sqlite driver %q", c.Storage.Driver)
	}
	if c.Focus.WorkMinutes <= 0 || c.Focus.BreakMinutes <= 0 {
		return errors.New("config: focus minutes must be positive")
	}
	if c.Ads.CooldownMinutes < 0 || c.Ads.DailyCap < 0 {
		return errors.New("config: ad limits must not be negative")
	}
	if c.Streak.RewardThreshold <= 0 {
		return errors.New("config: streak reward threshold must be positive")
	}
	for _, hhmm := range []string{c.Watch.ReceiptAt, c.Watch.RiskAt} {
		if _, err := time.Parse("15:04", hhmm); err != nil {
			return fmt.Errorf("config: invalid watch time %q, expected HH:MM", hhmm)
		}
	}
	if c.Watch.RescanSeconds <= 0 || c.Watch.MaxQueue <= 0 {
		return errors.New("config: watch rescan and queue must be positive")
	}
	if _, err := insight.ParseMood(c.Mood); err != nil {
		return fmt.Errorf("config: unknown mood %q", c.Mood)
	}
	return nil
}

// StatePath is where the selected backend keeps its data.
func (c Config) StatePath() string {
	if c.Storage.Backend == BackendFile {
		return filepath.Join(c.DataDir, "taskjar.json")
	}
	return filepath.Join(c.DataDir, "taskjar.db")
}

func (c Config) LogPath() string {
	return filepath.Join(c.DataDir, "taskjar.log")
}

func (c Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func (c Config) AdCooldown() time.Duration {
	return time.Duration(c.Ads.CooldownMinutes) * time.Minute
}
