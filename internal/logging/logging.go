// Package logging builds the zap logger shared by the CLI commands.
package logging

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const defaultLevel = "info"

// Options selects the minimum level ("debug", "info", "warn", "error") and
// the encoding ("console" or "json").
type Options struct {
	Level  string
	Format string
}

// New constructs a logger writing to stderr so command output on stdout stays clean.
func New(opts Options) (*zap.Logger, error) {
	level := zap.NewAtomicLevel()
	if err := level.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(opts.Level)))); err != nil {
		_ = level.UnmarshalText([]byte(defaultLevel))
	}

	encoding := "console"
	if strings.EqualFold(strings.TrimSpace(opts.Format), "json") {
		encoding = "json"
	}

	encoderCfg := zapcore.EncoderConfig{
		MessageKey:  "message",
		TimeKey:     "timestamp",
		LevelKey:    "severity",
		EncodeTime:  zapcore.RFC3339TimeEncoder,
		EncodeLevel: zapcore.CapitalLevelEncoder,
	}
	if encoding == "console" {
		encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	cfg := zap.Config{
		Level:             level,
		Encoding:          encoding,
		EncoderConfig:     encoderCfg,
		OutputPaths:       []string{"stderr"},
		ErrorOutputPaths:  []string{"stderr"},
		DisableCaller:     true,
		DisableStacktrace: true,
	}
	return cfg.Build()
}

// OrNop returns logger, or a no-op logger when it is nil.
func OrNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
