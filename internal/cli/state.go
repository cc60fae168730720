package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/taskjar/internal/storage"
)

var stateCmd = &cobra.Command{
	Use:   "state [key]",
	Short: "Inspect the raw persisted keys (sqlite backend)",
	Long: `Print the persisted keys with their last write time, or one key's raw
JSON value. Use --reset to delete a key that no longer decodes; it falls
back to its default on the next start.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runState,
}

func init() {
	stateCmd.Flags().Bool("reset", false, "Delete the given key")
}

func runState(cmd *cobra.Command, args []string) error {
	reset, _ := cmd.Flags().GetBool("reset")
	if reset && len(args) == 0 {
		return errors.New("--reset needs a key")
	}
	a, err := loadApp(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer a.Close()

	key := ""
	if len(args) == 1 {
		key = args[0]
	}
	return inspectState(cmd.Context(), a, cmd.OutOrStdout(), key, reset)
}

func inspectState(ctx context.Context, a *app, out io.Writer, key string, reset bool) error {
	repo, ok := a.repo.(*storage.SQLiteRepository)
	if !ok {
		return fmt.Errorf("state inspection needs the sqlite backend, this store is %s", a.cfg.StatePath())
	}

	switch {
	case reset:
		if err := repo.Delete(ctx, key); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return fmt.Errorf("no key %q", key)
			}
			return err
		}
		fmt.Fprintf(out, "Deleted %s\n", key)
		return nil
	case key != "":
		value, err := repo.Value(ctx, key)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return fmt.Errorf("no key %q", key)
			}
			return err
		}
		fmt.Fprintln(out, value)
		return nil
	}

	entries, err := repo.Entries(ctx)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, "Nothing saved yet.")
		return nil
	}
	for _, e := range entries {
		fmt.Fprintf(out, "%-18s %6d bytes  %s\n", e.Key, len(e.Value), e.UpdatedAt.Local().Format("2006-01-02 15:04:05"))
	}
	return nil
}
