package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/berrythewa/clippaste/internal/config"
)

// newConfigCmd creates the config command
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage clippaste configuration",
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigPathCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		Long: `Make sure a configuration file exists and print where clippaste keeps its
files. With --force an existing file is reset to the defaults.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := requireConfig()
			if err != nil {
				return err
			}
			configPath := c.SystemPaths.ConfigFile

			_, statErr := os.Stat(configPath)
			exists := statErr == nil
			if statErr != nil && !errors.Is(statErr, fs.ErrNotExist) {
				return fmt.Errorf("failed to check config file: %w", statErr)
			}

			if !exists || force {
				defaults := config.DefaultConfig()
				GetZapLogger().Info("Writing default configuration",
					zap.String("config_path", configPath),
					zap.Bool("force", force))
				if err := defaults.Save(configPath); err != nil {
					return fmt.Errorf("failed to save configuration: %w", err)
				}
				c = defaults
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "✓ Configuration: %s\n", configPath)
			fmt.Fprintf(out, "✓ Data directory: %s\n", c.SystemPaths.DataDir)
			fmt.Fprintf(out, "✓ History database: %s\n", c.Storage.DBPath)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "reset an existing configuration to defaults")
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := requireConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch outputFormat {
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(c)
			case "yaml":
				data, err := yaml.Marshal(c)
				if err != nil {
					return fmt.Errorf("failed to marshal config: %w", err)
				}
				_, err = out.Write(data)
				return err
			default:
				return fmt.Errorf("unsupported format: %s", outputFormat)
			}
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "yaml", "output format (yaml or json)")
	return cmd
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := requireConfig()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), c.SystemPaths.ConfigFile)
			return nil
		},
	}
}
