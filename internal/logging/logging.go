package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps a sugared zap logger configured for CLI use.
type Logger struct {
	*zap.SugaredLogger
}

// NewLogger returns a logger writing human readable output to stderr.
// Verbose enables debug level messages and caller annotations.
func NewLogger(verbose bool) *Logger {
	level := zap.InfoLevel
	if verbose {
		level = zap.DebugLevel
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true
	cfg.DisableCaller = !verbose
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")

	log, err := cfg.Build()
	if err != nil {
		log = zap.NewNop()
	}
	return &Logger{log.Sugar()}
}
