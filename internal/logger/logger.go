package logger

import (
	"storefront-api/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log = zap.NewNop()

// New builds a zap logger from the log and environment settings. JSON
// output goes through the production config, anything else gets the
// colored development console encoder.
func New(logCfg config.Log, env config.Environment, service string) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(logCfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	var cfg zap.Config
	if logCfg.Format == "json" || env.IsProduction() {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.Level = zap.NewAtomicLevelAt(level)

	return cfg.Build(zap.Fields(
		zap.String("service", service),
		zap.String("environment", env.Name),
	))
}

// Init builds the logger and installs it as the package and zap global.
func Init(logCfg config.Log, env config.Environment, service string) (*zap.Logger, error) {
	l, err := New(logCfg, env, service)
	if err != nil {
		return nil, err
	}

	log = l
	zap.ReplaceGlobals(l)
	return l, nil
}

// Get returns the process logger, a no-op logger before Init.
func Get() *zap.Logger {
	return log
}
