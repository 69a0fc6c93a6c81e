package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const serviceName = "matching-api"

// New builds a JSON production logger. Non-production envs also log caller stack traces on warn.
func New(level, env string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "json"
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(level)))); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	env = strings.TrimSpace(env)
	if env == "" {
		env = "dev"
	}
	cfg.InitialFields = map[string]interface{}{
		"service": serviceName,
		"env":     env,
	}

	opts := make([]zap.Option, 0, 1)
	if env != "prod" {
		opts = append(opts, zap.AddStacktrace(zapcore.WarnLevel))
	}

	return cfg.Build(opts...)
}
