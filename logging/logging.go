// Package logging provides the structured logger used throughout the
// openspace planner. It is a thin wrapper around zap's SugaredLogger so
// call sites depend on a small interface rather than a concrete zap type.
package logging

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
)

// Logger is the logging surface every exported entry point in this module
// accepts. Passing it explicitly (rather than reaching for a package
// global) keeps Plan testable with an observed or silent logger.
type Logger interface {
	Debugf(template string, args ...interface{})
	Infof(template string, args ...interface{})
	Warnf(template string, args ...interface{})
	Errorf(template string, args ...interface{})
	Named(name string) Logger
	With(args ...interface{}) Logger
}

type sugared struct {
	*zap.SugaredLogger
}

func (s *sugared) Named(name string) Logger {
	return &sugared{s.SugaredLogger.Named(name)}
}

func (s *sugared) With(args ...interface{}) Logger {
	return &sugared{s.SugaredLogger.With(args...)}
}

func newConfig(level zapcore.Level) zap.Config {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.Encoding = "console"
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.DisableStacktrace = true
	return cfg
}

// NewLogger returns a logger that emits Info+ logs to stderr.
func NewLogger(name string) Logger {
	zl := zap.Must(newConfig(zapcore.InfoLevel).Build())
	return &sugared{zl.Sugar().Named(name)}
}

// NewDebugLogger returns a logger that emits Debug+ logs to stderr.
func NewDebugLogger(name string) Logger {
	zl := zap.Must(newConfig(zapcore.DebugLevel).Build())
	return &sugared{zl.Sugar().Named(name)}
}

// NewTestLogger returns a logger that writes through the test's t.Log,
// so output is only shown for failing or verbose test runs.
func NewTestLogger(tb testing.TB) Logger {
	zl := zaptest.NewLogger(tb, zaptest.Level(zapcore.DebugLevel))
	return &sugared{zl.Sugar()}
}

// NewNoopLogger returns a logger that discards everything, for benchmarks
// and call sites that must supply a Logger but don't want output.
func NewNoopLogger() Logger {
	return &sugared{zap.NewNop().Sugar()}
}
