package brigade

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds a sugared zap logger from LogConfig
func NewLogger(config LogConfig) (*zap.SugaredLogger, error) {
	level, err := zapcore.ParseLevel(config.Level)
	if err != nil {
		return nil, err
	}
	zapConfig := zap.NewProductionConfig()
	if config.Encoding != "json" {
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.Development = false
	}
	zapConfig.Level = zap.NewAtomicLevelAt(level)
	zapConfig.DisableStacktrace = true
	logger, err := zapConfig.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}
