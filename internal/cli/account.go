package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

var premiumCmd = &cobra.Command{
	Use:   "premium",
	Short: "Manage the 24 hour premium unlock",
	RunE:  runPremiumStatus,
}

var premiumUnlockCmd = &cobra.Command{
	Use:   "unlock",
	Short: "Unlock premium for 24 hours",
	RunE:  runPremiumUnlock,
}

var premiumStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether premium is active",
	RunE:  runPremiumStatus,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami [name]",
	Short: "Show or set your display name",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runWhoami,
}

func init() {
	premiumCmd.AddCommand(premiumUnlockCmd)
	premiumCmd.AddCommand(premiumStatusCmd)
}

func runPremiumUnlock(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer a.Close()
	return unlockPremium(cmd.Context(), a, cmd.OutOrStdout())
}

func unlockPremium(ctx context.Context, a *app, out io.Writer) error {
	if err := a.store.UnlockPremium(ctx); err != nil {
		return describe(err)
	}
	return printPremium(ctx, a, out)
}

func runPremiumStatus(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer a.Close()
	return printPremium(cmd.Context(), a, cmd.OutOrStdout())
}

func printPremium(ctx context.Context, a *app, out io.Writer) error {
	ok, err := a.store.HasPremium(ctx)
	if !ok {
		fmt.Fprintln(out, "Premium: inactive")
		return describe(err)
	}
	expiry := a.store.AdState().PremiumExpiry
	fmt.Fprintf(out, "Premium: active until %s\n", expiry.In(a.store.Now().Location()).Format("Mon Jan 2 15:04"))
	return describe(err)
}

func runWhoami(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer a.Close()

	name := ""
	if len(args) == 1 {
		name = args[0]
	}
	return whoami(cmd.Context(), a, cmd.OutOrStdout(), name)
}

func whoami(ctx context.Context, a *app, out io.Writer, name string) error {
	if name = strings.TrimSpace(name); name != "" {
		if err := a.store.SetUserName(ctx, name); err != nil {
			return describe(err)
		}
	}
	fmt.Fprintln(out, a.store.UserName())
	return nil
}
