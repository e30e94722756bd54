// Package log builds the zap logger used across costcheck.
package log

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/idilsaglam/costcheck/internal/config"
)

// New builds a logger from cfg. Level "off" disables logging. When
// fileOnly is set and no file is configured, logging is disabled too; the
// TUI uses this to keep stderr off the alternate screen.
func New(cfg config.LoggerConfig, fileOnly bool) (*zap.Logger, error) {
	if strings.EqualFold(cfg.Level, "off") || (fileOnly && cfg.File == "") {
		return zap.NewNop(), nil
	}

	level := cfg.Level
	if level == "" {
		level = "warn"
	}
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("logger level: %w", err)
	}

	zc := zap.NewProductionConfig()
	zc.Level = lvl
	zc.Sampling = nil
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	switch cfg.Encoding {
	case "", "console":
		zc.Encoding = "console"
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	case "json":
		zc.Encoding = "json"
	default:
		return nil, fmt.Errorf("logger encoding %q: want console or json", cfg.Encoding)
	}

	out := "stderr"
	if cfg.File != "" {
		out = cfg.File
	}
	zc.OutputPaths = []string{out}
	zc.ErrorOutputPaths = []string{out}

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger.Named("costcheck"), nil
}
