package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	cmdpkg "github.com/berrythewa/clippaste/internal/cli/cmd"
	"github.com/berrythewa/clippaste/internal/common"
	"github.com/berrythewa/clippaste/internal/config"
)

var (
	// Flags that apply to all commands
	cfgFile  string
	logLevel string
	verbose  bool

	// Flags for the default paste action
	pasteOpts cmdpkg.PasteOptions

	// The loaded configuration
	cfg *config.Config

	// Logger instance
	logger *zap.Logger

	// Version information - set by main
	Version   = "dev"
	BuildTime = "unknown"
	Commit    = "none"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "clippaste",
	Short: "Paste clipboard files and images into a terminal as paths",
	Long: `clippaste turns the files (or the screenshot) on the Windows clipboard into
paths for the terminal you are typing in, converting them to /mnt/<drive>
form under WSL.

Running clippaste without a command performs a paste.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmdpkg.RunPaste(cmd, &pasteOpts)
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if logLevel != "" {
			cfg.Log.Level = logLevel
		}

		logger, err = common.NewLogger(cfg, verbose)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}

		logger.Debug("Configuration loaded",
			zap.String("config_file", cfg.SystemPaths.ConfigFile),
			zap.String("log_level", cfg.Log.Level),
			zap.Duration("timeout", cfg.Paste.Timeout),
			zap.Bool("history", cfg.Storage.Enabled))

		// Share cfg and logger with cmd package
		cmdpkg.SetConfig(cfg)
		cmdpkg.SetZapLogger(logger)

		return nil
	},
}

// cleanup flushes buffered log entries before exit
func cleanup() {
	if logger != nil {
		_ = logger.Sync()
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := RootCmd.Execute()
	cleanup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "clippaste: %v\n", err)
		os.Exit(1)
	}
}

// SetVersionInfo sets the version information used by the version command
func SetVersionInfo(version, buildTime, commit string) {
	Version = version
	BuildTime = buildTime
	Commit = commit
	cmdpkg.SetVersionInfo(version, buildTime, commit)
}

// AddCommand adds a command to the root command
func AddCommand(cmd *cobra.Command) {
	RootCmd.AddCommand(cmd)
}

func init() {
	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is <user config dir>/clippaste/config.yaml)")
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log to stderr at debug level")

	cmdpkg.BindPasteFlags(RootCmd, &pasteOpts)
}
