package cmd

import (
	"fmt"
	"os"

	textclip "github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/berrythewa/clippaste/internal/clipboard"
	"github.com/berrythewa/clippaste/internal/config"
	"github.com/berrythewa/clippaste/internal/paste"
	"github.com/berrythewa/clippaste/internal/pathconv"
	"github.com/berrythewa/clippaste/internal/platform"
	"github.com/berrythewa/clippaste/internal/storage"
	"github.com/berrythewa/clippaste/internal/types"
	"github.com/berrythewa/clippaste/pkg/format"
)

// PasteOptions holds the flags of a paste run.
type PasteOptions struct {
	TerminalName string
	Copy         bool
	NoHistory    bool
}

// Swapped in tests.
var (
	resolveEnv = func(c *config.Config) types.Environment {
		return platform.NewResolver(c.Paste.InteropMount).Resolve()
	}
	newSource = func(c *config.Config, env types.Environment, logger *zap.Logger) paste.Source {
		runner := clipboard.NewPowerShellRunner(env, clipboard.RunnerOptions{
			Shell:     c.Paste.Shell,
			ScriptDir: c.Paste.ScriptDir,
			Logger:    logger,
		})
		return clipboard.NewRetriever(runner, clipboard.Options{
			Timeout: c.Paste.Timeout,
			Logger:  logger,
		})
	}
	writeTextClipboard = textclip.WriteAll
)

// BindPasteFlags registers the paste flags on cmd.
func BindPasteFlags(cmd *cobra.Command, opts *PasteOptions) {
	cmd.Flags().StringVar(&opts.TerminalName, "terminal-name", "", "name of the destination terminal (paths are converted for WSL when it contains \"wsl\")")
	cmd.Flags().BoolVar(&opts.Copy, "copy", false, "also place the converted text on the text clipboard")
	cmd.Flags().BoolVar(&opts.NoHistory, "no-history", false, "do not record this paste in history")
}

func newPasteCmd() *cobra.Command {
	opts := &PasteOptions{}

	cmd := &cobra.Command{
		Use:   "paste",
		Short: "Print the clipboard's files or image as terminal-ready paths",
		Long: `Read the file list (or a screenshotted image) from the Windows clipboard and
print the paths, converted for the destination terminal, joined by spaces.

The paths are written to stdout without a trailing newline so a shell binding
can insert them at the prompt. A one-line summary goes to stderr.

Examples:
  clippaste paste
  clippaste paste --terminal-name "Ubuntu (WSL)"
  clippaste paste --copy --no-history`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunPaste(cmd, opts)
		},
	}

	BindPasteFlags(cmd, opts)
	return cmd
}

// RunPaste performs one paste and writes its output to cmd's streams.
func RunPaste(cmd *cobra.Command, opts *PasteOptions) error {
	c, err := requireConfig()
	if err != nil {
		return err
	}
	logger := GetZapLogger()

	env := resolveEnv(c)
	if !env.Supported() {
		return clipboard.ErrUnsupportedPlatform
	}

	terminal := types.Terminal{Name: opts.TerminalName}
	if terminal.Name == "" {
		terminal.Name = c.Paste.TerminalName
	}

	var store storage.HistoryStore
	if c.Storage.Enabled && !opts.NoHistory {
		bolt, err := storage.NewBoltStorage(storage.StorageConfig{
			DBPath:    c.Storage.DBPath,
			KeepItems: c.Storage.KeepItems,
			Logger:    logger,
		})
		if err != nil {
			logger.Warn("History unavailable, continuing without it", zap.Error(err))
		} else {
			defer bolt.Close()
			store = bolt
		}
	}

	svc := paste.NewService(newSource(c, env, logger), store, logger)
	result, err := svc.Paste(cmd.Context(), env, terminal)
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), result.Text)

	if opts.Copy || c.Paste.CopyToClipboard {
		if err := writeTextClipboard(result.Text); err != nil {
			logger.Warn("Failed to copy paths to the text clipboard", zap.Error(err))
		}
	}

	toHost := pathconv.HostPath(env)
	stat := func(p string) (os.FileInfo, error) { return os.Stat(toHost(p)) }
	fmt.Fprintln(cmd.ErrOrStderr(), format.PasteSummary(result.Paths, stat))
	return nil
}
