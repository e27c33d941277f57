package config

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
	"none":  true,
}

// LoggingConfig selects the console log level. "none" disables logging.
type LoggingConfig struct {
	Level string `yaml:"level"`
	// Development adds caller information and stack traces on warnings.
	Development bool `yaml:"development,omitempty"`
}

// Build returns the program logger: entries below error level go to stdout, errors
// to stderr.
func (c LoggingConfig) Build() (*zap.Logger, error) {
	return c.BuildTo(zapcore.Lock(os.Stdout), zapcore.Lock(os.Stderr))
}

// BuildTo is Build with explicit destinations.
func (c LoggingConfig) BuildTo(out, errOut zapcore.WriteSyncer) (*zap.Logger, error) {
	if c.Level == "none" {
		return zap.NewNop(), nil
	}
	level, err := zapcore.ParseLevel(c.Level)
	if err != nil {
		return nil, &ConfigurationError{Field: "logging.level", Reason: err.Error()}
	}

	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	ec.EncodeLevel = zapcore.CapitalLevelEncoder
	var opts []zap.Option
	if c.Development {
		ec.EncodeCaller = zapcore.ShortCallerEncoder
		opts = append(opts, zap.AddCaller(), zap.AddStacktrace(zapcore.WarnLevel))
	}
	enc := zapcore.NewConsoleEncoder(ec)

	low := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return level <= lvl && lvl < zapcore.ErrorLevel
	})
	high := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= zapcore.ErrorLevel && lvl >= level
	})
	core := zapcore.NewTee(
		zapcore.NewCore(enc, out, low),
		zapcore.NewCore(enc.Clone(), errOut, high),
	)
	return zap.New(core, opts...).Named("scorecard"), nil
}
