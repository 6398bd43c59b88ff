package common

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/berrythewa/clippaste/internal/config"
)

// LogFileName is the log file written inside the configured log directory.
const LogFileName = "clippaste.log"

// NewLogger creates the process logger. stdout carries paste output, so logs
// go to the log file (or stderr when verbose or file logging is disabled).
func NewLogger(cfg *config.Config, verbose bool) (*zap.Logger, error) {
	if verbose {
		devCfg := zap.NewDevelopmentConfig()
		devCfg.OutputPaths = []string{"stderr"}
		return devCfg.Build()
	}

	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Log.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	encoding := cfg.Log.Format
	if encoding != "console" {
		encoding = "json"
	}

	outputs := []string{"stderr"}
	if cfg.Log.EnableFileLogging {
		logDir := cfg.SystemPaths.LogDir
		if err := os.MkdirAll(logDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		outputs = []string{filepath.Join(logDir, LogFileName)}
	} else {
		// Without a file only problems are worth showing next to the paste output.
		if level < zapcore.WarnLevel {
			level = zapcore.WarnLevel
		}
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	zapCfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Development:      false,
		Encoding:         encoding,
		EncoderConfig:    encoderConfig,
		OutputPaths:      outputs,
		ErrorOutputPaths: []string{"stderr"},
	}

	return zapCfg.Build()
}
