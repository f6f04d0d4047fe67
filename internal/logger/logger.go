package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options tunes the logger beyond the level: development switches to the
// console encoder, and the service fields are stamped on every entry.
type Options struct {
	Level       string
	Development bool
	Service     string
	Version     string
}

// New builds a structured zap.Logger and replaces the globals.
func New(opts Options) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if opts.Development {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg.Encoding = "json"
		cfg.EncoderConfig.TimeKey = "ts"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	level := opts.Level
	if level == "" {
		level = "info"
	}
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	fields := []zap.Option{}
	if opts.Service != "" {
		fields = append(fields, zap.Fields(
			zap.String("service", opts.Service),
			zap.String("version", opts.Version),
		))
	}

	log, err := cfg.Build(fields...)
	if err != nil {
		return nil, err
	}

	zap.ReplaceGlobals(log)
	return log, nil
}
