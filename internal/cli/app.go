package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/sandeepkv93/taskjar/internal/ads"
	"github.com/sandeepkv93/taskjar/internal/config"
	"github.com/sandeepkv93/taskjar/internal/insight"
	"github.com/sandeepkv93/taskjar/internal/model"
	"github.com/sandeepkv93/taskjar/internal/storage"
	"github.com/sandeepkv93/taskjar/internal/tasks"
)

// app is what every subcommand works against: the loaded config, a logger
// and an open store.
type app struct {
	cfg     config.Config
	logger  *slog.Logger
	repo    storage.Repository
	store   *tasks.Store
	closers []io.Closer
}

// loadApp reads the config and opens the store. With logToFile set the
// logger writes to the data dir instead of stderr.
func loadApp(ctx context.Context, logToFile bool) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	var out io.Writer = os.Stderr
	var closers []io.Closer
	if logToFile {
		f, err := os.OpenFile(cfg.LogPath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		out = f
		closers = append(closers, f)
	}
	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: cfg.SlogLevel()}))

	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		for _, c := range closers {
			_ = c.Close()
		}
		return nil, err
	}
	a.closers = append(a.closers, closers...)
	return a, nil
}

func newApp(ctx context.Context, cfg config.Config, logger *slog.Logger, opts ...tasks.Option) (*app, error) {
	repo, err := openRepository(cfg)
	if err != nil {
		return nil, err
	}
	opts = append([]tasks.Option{
		tasks.WithLogger(logger),
		tasks.WithRewardThreshold(cfg.Streak.RewardThreshold),
		tasks.WithMood(insight.Mood(cfg.Mood)),
		tasks.WithAdPolicy(ads.Policy{
			Enabled:  cfg.Ads.Enabled,
			Cooldown: cfg.AdCooldown(),
			DailyCap: cfg.Ads.DailyCap,
		}),
	}, opts...)
	store, err := tasks.Open(ctx, repo, opts...)
	if err != nil {
		_ = repo.Close()
		return nil, err
	}
	if err := store.LoadErr(); err != nil {
		logger.Warn("starting from partially recovered state", slog.Any("err", err))
	}
	return &app{cfg: cfg, logger: logger, repo: repo, store: store}, nil
}

func openRepository(cfg config.Config) (storage.Repository, error) {
	switch cfg.Storage.Backend {
	case config.BackendFile:
		return storage.NewFileRepository(cfg.StatePath()), nil
	case config.BackendSQLite:
		repo, err := storage.OpenSQLite(cfg.Storage.Driver, cfg.StatePath())
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", cfg.StatePath(), err)
		}
		return repo, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

func (a *app) Close() error {
	errs := []error{a.store.Close()}
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

// describe turns store errors into messages meant for a terminal.
func describe(err error) error {
	var verr *model.ValidationError
	var nf *model.NotFoundError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &verr):
		return fmt.Errorf("invalid %s: %s", verr.Field, verr.Reason)
	case errors.As(err, &nf):
		return fmt.Errorf("no task matches %q", nf.ID)
	case errors.Is(err, model.ErrPersistence):
		return fmt.Errorf("change applied but not saved: %w", err)
	default:
		return err
	}
}
