// Package loggertest provides a logger that records entries for assertions.
package loggertest

import (
	"stepik_backend/internal/platform/logger"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// New returns a logger keeping every entry at or above level in memory.
func New(level zapcore.Level) (*logger.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return logger.FromZap(zap.New(core)), logs
}
