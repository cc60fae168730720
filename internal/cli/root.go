package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath string
	rootCmd    *cobra.Command
)

func init() {
	rootCmd = &cobra.Command{
		Use:   "taskjar",
		Short: "taskjar - a gamified personal task manager",
		Long: `taskjar keeps a personal task list with streaks, a reward jar and a
sponsored slot you can silence with focus mode.

Run without a subcommand to open the terminal UI.`,
		RunE:          runTUI, // Default action is the TUI
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.config/taskjar/config.yaml)")
}

// Execute runs the root command
func Execute(version string) error {
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(agendaCmd)
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(shiftCmd)
	rootCmd.AddCommand(dropCmd)
	rootCmd.AddCommand(attachCmd)
	rootCmd.AddCommand(calendarCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(habitsCmd)
	rootCmd.AddCommand(remindersCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(premiumCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(stateCmd)

	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}
