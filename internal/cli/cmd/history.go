package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/berrythewa/clippaste/internal/config"
	"github.com/berrythewa/clippaste/internal/storage"
	"github.com/berrythewa/clippaste/pkg/format"
)

func openHistory(c *config.Config) (*storage.BoltStorage, error) {
	store, err := storage.NewBoltStorage(storage.StorageConfig{
		DBPath:    c.Storage.DBPath,
		KeepItems: c.Storage.KeepItems,
		Logger:    GetZapLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open history: %w", err)
	}
	return store, nil
}

// newHistoryCmd creates the history command with its subcommands
func newHistoryCmd() *cobra.Command {
	var (
		limit    int
		last     bool
		useJSON  bool
		compact  bool
		noColors bool
		maxWidth int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent pastes",
		Long: `Show recent pastes, newest first.

Examples:
  clippaste history              # Show last 10 pastes
  clippaste history -n 50        # Show last 50 pastes
  clippaste history --json       # Machine-readable output
  clippaste history --last       # Only the most recent paste
  clippaste history clear        # Forget all pastes`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := requireConfig()
			if err != nil {
				return err
			}

			store, err := openHistory(c)
			if err != nil {
				return err
			}
			defer store.Close()

			opts := format.DefaultOptions()
			if compact {
				opts = format.CompactOptions()
			}
			if noColors {
				opts.UseColors = false
			}
			opts.MaxWidth = maxWidth

			out := cmd.OutOrStdout()
			if last {
				return printLatest(out, store, opts, useJSON)
			}

			records, err := store.GetHistory(limit)
			if err != nil {
				return err
			}

			if useJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(records)
			}

			fmt.Fprintln(out, format.FormatHistory(records, opts))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "maximum number of entries to show (0 = all)")
	cmd.Flags().BoolVar(&last, "last", false, "show only the most recent paste")
	cmd.Flags().BoolVar(&useJSON, "json", false, "output history as JSON")
	cmd.Flags().BoolVarP(&compact, "compact", "c", false, "use compact single-line format")
	cmd.Flags().BoolVar(&noColors, "no-colors", false, "disable colored output")
	cmd.Flags().IntVar(&maxWidth, "max-width", 80, "maximum width per path (0 = no limit)")

	cmd.AddCommand(newHistoryClearCmd())
	return cmd
}

// printLatest writes the most recent paste. An empty history is reported as
// text, or as JSON null.
func printLatest(out io.Writer, store storage.HistoryStore, opts format.Options, useJSON bool) error {
	record, err := store.GetLatest()
	if err != nil && !errors.Is(err, storage.ErrEmptyHistory) {
		return err
	}

	if useJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(record)
	}

	if record == nil {
		fmt.Fprintln(out, format.ColorizeIf("No paste history", format.Gray, opts.UseColors))
		return nil
	}
	fmt.Fprintln(out, format.FormatRecord(record, opts))
	return nil
}

func newHistoryClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded pastes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := requireConfig()
			if err != nil {
				return err
			}

			store, err := openHistory(c)
			if err != nil {
				return err
			}
			defer store.Close()

			count, err := store.Count()
			if err != nil {
				return err
			}
			if err := store.Flush(); err != nil {
				return err
			}

			GetZapLogger().Info("Cleared paste history", zap.Int("removed", count))
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", format.Plural(count, "entry", "entries"))
			return nil
		},
	}
}
