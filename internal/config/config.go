// File: internal/config/config.go

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/berrythewa/clippaste/internal/platform"
)

// ConfigPaths holds all relevant paths for the application
type ConfigPaths struct {
	BaseDir    string `json:"base_dir"`    // Base directory for config files
	ConfigFile string `json:"config_file"` // Path to the config file
	DataDir    string `json:"data_dir"`    // Directory for application data
	DBFile     string `json:"db_file"`     // Path to the history database
	LogDir     string `json:"log_dir"`     // Directory for log files
}

// Config holds all application configuration
type Config struct {
	Log     LogConfig     `json:"log" yaml:"log"`
	Paste   PasteConfig   `json:"paste" yaml:"paste"`
	Storage StorageConfig `json:"storage" yaml:"storage"`

	// Derived at load time, never written to disk
	SystemPaths ConfigPaths `json:"system_paths" yaml:"-"`
}

// LogConfig holds logging-related configuration
type LogConfig struct {
	Level             string `json:"level" yaml:"level"`
	Format            string `json:"format" yaml:"format"` // "json" or "console"
	EnableFileLogging bool   `json:"enable_file_logging" yaml:"enable_file_logging"`
}

// PasteConfig controls clipboard retrieval and conversion
type PasteConfig struct {
	// Shell overrides the PowerShell executable used to query the clipboard
	Shell string `json:"shell" yaml:"shell"`
	// Timeout bounds a single clipboard query
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
	// InteropMount is probed to detect WSL
	InteropMount string `json:"interop_mount" yaml:"interop_mount"`
	// TerminalName is used when no terminal name is passed on the command line
	TerminalName string `json:"terminal_name" yaml:"terminal_name"`
	// ScriptDir is where the scratch query script is written; empty means the OS temp dir
	ScriptDir string `json:"script_dir" yaml:"script_dir"`
	// CopyToClipboard also places the converted text on the text clipboard
	CopyToClipboard bool `json:"copy_to_clipboard" yaml:"copy_to_clipboard"`
}

// StorageConfig holds paste history configuration
type StorageConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	DBPath  string `json:"db_path" yaml:"db_path"`
	// KeepItems caps the number of stored pastes; 0 means DefaultKeepItems
	KeepItems int `json:"keep_items" yaml:"keep_items"`
}

// DefaultKeepItems is the history size used when keep_items is unset or 0
const DefaultKeepItems = 100

var validLogLevels = []string{"debug", "info", "warn", "error"}

// GetConfigPaths returns the platform-specific configuration paths
func GetConfigPaths() (*ConfigPaths, error) {
	baseDir := os.Getenv("CLIPPASTE_CONFIG_DIR")
	if baseDir == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return nil, err
		}
		baseDir = filepath.Join(configDir, "clippaste")
	}

	dataDir := os.Getenv("CLIPPASTE_DATA_DIR")
	if dataDir == "" {
		var err error
		dataDir, err = defaultDataDir()
		if err != nil {
			return nil, err
		}
	}

	paths := &ConfigPaths{
		BaseDir:    baseDir,
		ConfigFile: filepath.Join(baseDir, "config.yaml"),
		DataDir:    dataDir,
		DBFile:     filepath.Join(dataDir, "history.db"),
		LogDir:     filepath.Join(dataDir, "logs"),
	}

	for _, dir := range []string{paths.BaseDir, paths.DataDir, paths.LogDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}

	return paths, nil
}

func defaultDataDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	switch runtime.GOOS {
	case "windows":
		if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
			return filepath.Join(localAppData, "clippaste"), nil
		}
		return filepath.Join(homeDir, "AppData", "Local", "clippaste"), nil
	case "darwin":
		return filepath.Join(homeDir, "Library", "Application Support", "clippaste"), nil
	default:
		if xdgDataHome := os.Getenv("XDG_DATA_HOME"); xdgDataHome != "" {
			return filepath.Join(xdgDataHome, "clippaste"), nil
		}
		return filepath.Join(homeDir, ".local", "share", "clippaste"), nil
	}
}

// DefaultConfig returns a new Config with default values
func DefaultConfig() *Config {
	paths, err := GetConfigPaths()
	if err != nil {
		// Fall back to the temp dir so the tool still works read-only
		dir := filepath.Join(os.TempDir(), "clippaste")
		paths = &ConfigPaths{
			BaseDir:    dir,
			ConfigFile: filepath.Join(dir, "config.yaml"),
			DataDir:    dir,
			DBFile:     filepath.Join(dir, "history.db"),
			LogDir:     filepath.Join(dir, "logs"),
		}
	}

	return &Config{
		Log: LogConfig{
			Level:             "info",
			Format:            "json",
			EnableFileLogging: true,
		},
		Paste: PasteConfig{
			Timeout:      10 * time.Second,
			InteropMount: platform.DefaultInteropMount,
		},
		Storage: StorageConfig{
			Enabled:   true,
			DBPath:    paths.DBFile,
			KeepItems: DefaultKeepItems,
		},
		SystemPaths: *paths,
	}
}

// Load loads the configuration from the specified file or creates default if not exists
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath == "" {
		configPath = cfg.SystemPaths.ConfigFile
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := cfg.Save(configPath); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.SystemPaths.ConfigFile = configPath
	if cfg.Storage.DBPath == "" {
		cfg.Storage.DBPath = cfg.SystemPaths.DBFile
	}
	if cfg.Storage.KeepItems == 0 {
		cfg.Storage.KeepItems = DefaultKeepItems
	}

	overrideFromEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", configPath, err)
	}

	return cfg, nil
}

// Save saves the configuration to the specified file
func (c *Config) Save(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks values that would otherwise fail later at paste time
func (c *Config) Validate() error {
	if c.Paste.Timeout <= 0 {
		return fmt.Errorf("paste.timeout must be positive, got %s", c.Paste.Timeout)
	}
	if c.Storage.KeepItems < 0 {
		return fmt.Errorf("storage.keep_items must not be negative, got %d", c.Storage.KeepItems)
	}

	level := strings.ToLower(c.Log.Level)
	for _, valid := range validLogLevels {
		if level == valid {
			return nil
		}
	}
	return fmt.Errorf("log.level must be one of %s, got %q", strings.Join(validLogLevels, ", "), c.Log.Level)
}

// overrideFromEnv overrides configuration values from environment variables
func overrideFromEnv(config *Config) {
	if val := os.Getenv("CLIPPASTE_LOG_LEVEL"); val != "" {
		config.Log.Level = val
	}
	if val := os.Getenv("CLIPPASTE_SHELL"); val != "" {
		config.Paste.Shell = val
	}
	if val := os.Getenv("CLIPPASTE_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			config.Paste.Timeout = d
		} else if secs, err := strconv.Atoi(val); err == nil {
			config.Paste.Timeout = time.Duration(secs) * time.Second
		}
	}
	if val := os.Getenv("CLIPPASTE_TERMINAL"); val != "" {
		config.Paste.TerminalName = val
	}
	if val := os.Getenv("CLIPPASTE_HISTORY"); val != "" {
		if enabled, err := strconv.ParseBool(val); err == nil {
			config.Storage.Enabled = enabled
		}
	}
}
