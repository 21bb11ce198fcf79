package config

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds the process logger from AppEnv and LogLevel.
func NewLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", LogLevel, err)
	}

	cfg := zap.NewProductionConfig()
	if !IsProduction() {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(level)

	return cfg.Build()
}
