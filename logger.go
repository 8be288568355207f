package slang

import (
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/slang-bridge/internal/native"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the package logger.
// It uses a no-op logger by default.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger configures logging for the bridge, including host callbacks.
// This must be called before any other operations.
func SetLogger(l *zap.Logger) {
	logger = l
	native.SetLogger(l)
}
