package logger

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps the zap logger with additional functionality
type Logger struct {
	*zap.Logger
}

var (
	defaultOnce   sync.Once
	defaultLogger *Logger
)

// NewLogger creates a new logger instance with production configuration
func NewLogger() (*Logger, error) {
	config := zap.NewProductionConfig()

	// Set the output to stdout
	config.OutputPaths = []string{"stdout"}

	// Set the error output to stderr
	config.ErrorOutputPaths = []string{"stderr"}

	// Set the log level
	config.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)

	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	// Create the logger
	zapLogger, err := config.Build()
	if err != nil {
		return nil, err
	}

	return &Logger{
		Logger: zapLogger,
	}, nil
}

// NewDiscardLogger creates a logger that drops every entry. Useful in tests
// that exercise error paths without polluting their output.
func NewDiscardLogger() *Logger {
	return &Logger{
		Logger: zap.NewNop(),
	}
}

// Default returns the shared process-wide logger. Components accept an
// injected *Logger and fall back to this instance when given nil.
func Default() *Logger {
	defaultOnce.Do(func() {
		l, err := NewLogger()
		if err != nil {
			l = NewDiscardLogger()
		}
		defaultLogger = l
	})

	return defaultLogger
}

// Sync flushes any buffered log entries
func (l *Logger) Sync() error {
	if l.Logger != nil {
		return l.Logger.Sync()
	}
	return nil
}
