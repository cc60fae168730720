package cli

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/taskjar/internal/model"
)

const maxImageBytes = 2 << 20

var attachCmd = &cobra.Command{
	Use:   "attach [id]",
	Short: "Attach an emoji or an image to a task",
	Long: `Attach a memory to a task. Images are stored inline as data URLs, so keep
them small.`,
	Args: cobra.ExactArgs(1),
	RunE: runAttach,
}

func init() {
	attachCmd.Flags().String("emoji", "", "Emoji to attach")
	attachCmd.Flags().String("image", "", "Path to an image file")
	attachCmd.Flags().Bool("clear-image", false, "Remove the attached image")
}

type attachOptions struct {
	emoji      string
	setEmoji   bool
	imagePath  string
	clearImage bool
}

func runAttach(cmd *cobra.Command, args []string) error {
	var opts attachOptions
	opts.emoji, _ = cmd.Flags().GetString("emoji")
	opts.setEmoji = cmd.Flags().Changed("emoji")
	opts.imagePath, _ = cmd.Flags().GetString("image")
	opts.clearImage, _ = cmd.Flags().GetBool("clear-image")
	if !opts.setEmoji && opts.imagePath == "" && !opts.clearImage {
		return errors.New("nothing to attach: pass --emoji, --image or --clear-image")
	}
	return withTask(cmd, args[0], func(ctx context.Context, a *app, out io.Writer, task model.Task) error {
		return attachMemory(ctx, a, out, task, opts)
	})
}

func attachMemory(ctx context.Context, a *app, out io.Writer, task model.Task, opts attachOptions) error {
	if opts.setEmoji {
		if _, err := a.store.AttachEmoji(ctx, task.ID, strings.TrimSpace(opts.emoji)); err != nil {
			return describe(err)
		}
		fmt.Fprintf(out, "Attached %s to %q\n", opts.emoji, task.Title)
	}
	switch {
	case opts.clearImage:
		if _, err := a.store.AttachImage(ctx, task.ID, ""); err != nil {
			return describe(err)
		}
		fmt.Fprintf(out, "Removed the image from %q\n", task.Title)
	case opts.imagePath != "":
		dataURL, err := imageDataURL(opts.imagePath)
		if err != nil {
			return err
		}
		if _, err := a.store.AttachImage(ctx, task.ID, dataURL); err != nil {
			return describe(err)
		}
		fmt.Fprintf(out, "Attached %s to %q\n", opts.imagePath, task.Title)
	}
	return nil
}

// imageDataURL reads an image file and encodes it as a base64 data URL.
func imageDataURL(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	if len(data) > maxImageBytes {
		return "", fmt.Errorf("image %s is larger than %d KiB", path, maxImageBytes>>10)
	}
	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		return "", fmt.Errorf("%s is not an image (%s)", path, mime)
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
