package logging

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds a zap.Logger from the environment. LOG_ENCODING=console
// selects the colored development encoder; anything else gets production
// JSON with ISO 8601 timestamps. LOG_LEVEL picks the level (debug, info,
// warn, error, ...); unset or unrecognized values mean info.
func NewLogger() (*zap.Logger, error) {
	var cfg zap.Config
	if os.Getenv("LOG_ENCODING") == "console" {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	cfg.Level = zap.NewAtomicLevelAt(levelFromEnv())
	return cfg.Build()
}

// MustNewLogger is NewLogger that panics on failure, for use at startup
// before any logger exists to report the error.
func MustNewLogger() *zap.Logger {
	logger, err := NewLogger()
	if err != nil {
		panic(err)
	}
	return logger
}

func levelFromEnv() zapcore.Level {
	level := zapcore.InfoLevel
	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		if err := level.Set(strings.ToLower(raw)); err != nil {
			level = zapcore.InfoLevel
		}
	}
	return level
}
