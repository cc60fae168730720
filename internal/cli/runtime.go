package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/taskjar/internal/config"
	"github.com/sandeepkv93/taskjar/internal/notify"
	"github.com/sandeepkv93/taskjar/internal/scheduler"
	"github.com/sandeepkv93/taskjar/internal/update"
	"github.com/sandeepkv93/taskjar/internal/watch"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the terminal UI",
	RunE:  runTUI,
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run in the background and send reminders, nudges and the daily receipt",
	Long: `Watch fires task reminders, a streak-at-risk nudge and the daily life
receipt at the times set under watch: in the config file. Notifications go
to the desktop when notifications.desktop is on and to stdout otherwise.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().Bool("stdout", false, "Also print notifications to stdout")
}

func runTUI(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer a.Close()

	engine := scheduler.NewEngine(a.cfg.Watch.MaxQueue)
	engine.Start()
	defer engine.Stop()

	var notifier notify.Notifier = notify.Noop{}
	if a.cfg.Notifications.Desktop {
		notifier = notify.NewExec()
	}
	m := update.NewModelWithConfig(a.store, engine, notifier, update.RuntimeConfigFrom(a.cfg)).
		WithContext(cmd.Context())

	a.logger.Info("tui started", slog.Int("tasks", len(a.store.Dashboard().Agenda)))
	program := tea.NewProgram(m, tea.WithContext(cmd.Context()))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("taskjar tui: %w", err)
	}
	return nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	alsoStdout, _ := cmd.Flags().GetBool("stdout")
	a, err := loadApp(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	d, err := watch.New(a.store, watchNotifier(a.cfg, alsoStdout, cmd.OutOrStdout()), watchOptions(a.cfg, a.logger))
	if err != nil {
		return err
	}
	return d.Run(ctx)
}

func watchOptions(cfg config.Config, logger *slog.Logger) watch.Options {
	return watch.Options{
		ReceiptAt: cfg.Watch.ReceiptAt,
		RiskAt:    cfg.Watch.RiskAt,
		Rescan:    time.Duration(cfg.Watch.RescanSeconds) * time.Second,
		QueueSize: cfg.Watch.MaxQueue,
		Location:  time.Local,
		Logger:    logger,
	}
}

// watchNotifier sends to the desktop when enabled and prints otherwise.
func watchNotifier(cfg config.Config, alsoStdout bool, out io.Writer) notify.Notifier {
	if !cfg.Notifications.Desktop {
		return notify.NewWriter(out)
	}
	if alsoStdout {
		return notify.Multi{notify.NewExec(), notify.NewWriter(out)}
	}
	return notify.NewExec()
}
