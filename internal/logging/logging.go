package logging

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"solarppa/internal/config"
)

func New(cfg config.LoggingConfig) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	zcfg.Encoding = cfg.Encoding
	if zcfg.Encoding == "" {
		zcfg.Encoding = "json"
	}
	switch strings.ToLower(cfg.Level) {
	case "debug":
		zcfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		zcfg.Development = true
	case "warn":
		zcfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zcfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		zcfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	zcfg.OutputPaths = []string{"stdout"}
	zcfg.ErrorOutputPaths = []string{"stderr"}
	zcfg.EncoderConfig.TimeKey = "ts"
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	l, err := zcfg.Build()
	if err != nil {
		return nil, err
	}
	return l, nil
}
