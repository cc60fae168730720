package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sandeepkv93/taskjar/internal/storage"
)

const exportVersion = 1

var errPremiumRequired = errors.New("export needs premium access: run 'taskjar premium unlock'")

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write the whole state as YAML (premium)",
	Long: `Export tasks, streak, reward jar and ad bookkeeping as one YAML document.
Without a file the document goes to stdout.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Replace the whole state with a YAML export",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

// exportDoc is the on-disk export format.
type exportDoc struct {
	Version       int       `yaml:"version"`
	ExportedAt    time.Time `yaml:"exportedAt"`
	storage.State `yaml:",inline"`
}

func runExport(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer a.Close()

	if len(args) == 0 {
		return exportState(cmd.Context(), a, cmd.OutOrStdout())
	}
	f, err := os.Create(args[0])
	if err != nil {
		return err
	}
	return exportTo(cmd.Context(), a, f)
}

// exportTo writes the export to w and closes it. A failed close means the
// file may be incomplete, so its error is returned.
func exportTo(ctx context.Context, a *app, w io.WriteCloser) error {
	if err := exportState(ctx, a, w); err != nil {
		_ = w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close export: %w", err)
	}
	return nil
}

func exportState(ctx context.Context, a *app, out io.Writer) error {
	ok, err := a.store.HasPremium(ctx)
	if err != nil {
		a.logger.Warn("premium expiry not saved", slog.Any("err", err))
	}
	if !ok {
		return errPremiumRequired
	}

	doc := exportDoc{
		Version:    exportVersion,
		ExportedAt: a.store.Now().UTC(),
		State:      a.store.Export(),
	}
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode export: %w", err)
	}
	return enc.Close()
}

func runImport(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	a, err := loadApp(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer a.Close()
	return importState(cmd.Context(), a, f, cmd.OutOrStdout())
}

func importState(ctx context.Context, a *app, in io.Reader, out io.Writer) error {
	var doc exportDoc
	if err := yaml.NewDecoder(in).Decode(&doc); err != nil {
		return fmt.Errorf("decode import: %w", err)
	}
	if doc.Version == 0 || doc.Version > exportVersion {
		return fmt.Errorf("unsupported export version %d", doc.Version)
	}
	if doc.Tasks == nil {
		doc.Tasks = storage.DefaultState().Tasks
	}
	if doc.Habits == nil {
		doc.Habits = []string{}
	}
	if err := a.store.Import(ctx, doc.State); err != nil {
		return describe(err)
	}
	fmt.Fprintf(out, "Imported %d task(s)\n", len(doc.Tasks))
	return nil
}
