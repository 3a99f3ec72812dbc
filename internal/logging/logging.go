// Package logging builds the console logger used across chartsweep. The
// level comes from an environment variable named after a log category, so
// deployments can turn on debug output without changing flags.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a console logger whose level is read from the environment
// variable named by category (e.g. CHARTS_LOG=debug). An unset or empty
// variable means info.
func New(category string) (*zap.Logger, error) {
	level := zapcore.InfoLevel

	if v := os.Getenv(category); v != "" {
		parsed, err := zapcore.ParseLevel(v)
		if err != nil {
			return nil, err
		}
		level = parsed
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)

	return cfg.Build()
}
