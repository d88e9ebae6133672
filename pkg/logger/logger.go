package logger

import (
	"sync"

	"hanouti-api/pkg/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	once     sync.Once
	instance *zap.Logger
)

// InitLogger builds the process logger from configuration. Call once
// from main before the first GetLogger use.
func InitLogger(cfg *config.Config) {
	once.Do(func() {
		instance = build(cfg.Log.Level)
	})
}

// GetLogger returns the process logger, building a default one if
// InitLogger was never called (tests, mostly).
func GetLogger() *zap.Logger {
	once.Do(func() {
		instance = build("info")
	})
	return instance
}

func build(levelName string) *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stdout"}

	var level zapcore.Level
	if err := level.Set(levelName); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(level)
	}

	logger, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	return logger
}
