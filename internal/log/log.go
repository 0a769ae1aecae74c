// Package log provides the structured logger used by pantry components.
package log

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger defines a logger with multiple logging levels. Calls should carry a
// brief message and then key value pairs with additional info e.g.
//
// logger.Info("allergen found", "checker", "menu", "ingredient", "eggs")
type Logger interface {
	Debug(msg string, keyvals ...interface{})
	Info(msg string, keyvals ...interface{})
	Warn(msg string, keyvals ...interface{})
	Error(msg string, keyvals ...interface{})

	// With adds key value pairs to the logging context. The first element of
	// each pair is the key and the second the value.
	With(keyvals ...interface{}) Logger
}

// StructuredLogger implements Logger on top of a zap.SugaredLogger.
type StructuredLogger struct {
	zl *zap.SugaredLogger
}

// NewStructuredLogger creates a JSON logger writing to stderr, leaving stdout
// to command output. level is one of "DEBUG", "WARN", "ERROR"; anything else
// logs at info.
func NewStructuredLogger(level string) (StructuredLogger, error) {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder

	config := zap.Config{
		Level:             zap.NewAtomicLevelAt(ParseLevel(level)),
		Development:       false,
		DisableCaller:     false,
		DisableStacktrace: true,
		Encoding:          "json",
		EncoderConfig:     encoderConfig,
		OutputPaths:       []string{"stderr"},
		ErrorOutputPaths:  []string{"stderr"},
	}
	if level == "DEBUG" {
		config.Development = true
	}

	l, err := config.Build(zap.AddCallerSkip(1))
	if err != nil {
		return StructuredLogger{}, err
	}

	return StructuredLogger{zl: l.Sugar()}, nil
}

// NewStructuredLoggerFromSugar wraps an existing zap.SugaredLogger.
func NewStructuredLoggerFromSugar(s *zap.SugaredLogger) StructuredLogger {
	return StructuredLogger{zl: s}
}

// ParseLevel maps a level name to a zap level.
func ParseLevel(level string) zapcore.Level {
	switch level {
	case "DEBUG":
		return zapcore.DebugLevel
	case "WARN":
		return zapcore.WarnLevel
	case "ERROR":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func (s StructuredLogger) Debug(msg string, keyvals ...interface{}) {
	s.zl.Debugw(msg, keyvals...)
}

func (s StructuredLogger) Info(msg string, keyvals ...interface{}) {
	s.zl.Infow(msg, keyvals...)
}

func (s StructuredLogger) Warn(msg string, keyvals ...interface{}) {
	s.zl.Warnw(msg, keyvals...)
}

func (s StructuredLogger) Error(msg string, keyvals ...interface{}) {
	s.zl.Errorw(msg, keyvals...)
}

// With adds fields of key value pairs to the logging context.
func (s StructuredLogger) With(keyvals ...interface{}) Logger {
	return StructuredLogger{zl: s.zl.With(keyvals...)}
}

// Sync flushes any buffered log entries.
func (s StructuredLogger) Sync() error {
	return s.zl.Sync()
}

// NoOpLogger discards everything. It is the default for library components.
type NoOpLogger struct{}

// NewNoOpLogger creates a NoOpLogger.
func NewNoOpLogger() NoOpLogger {
	return NoOpLogger{}
}

func (n NoOpLogger) Debug(string, ...interface{}) {}
func (n NoOpLogger) Info(string, ...interface{})  {}
func (n NoOpLogger) Warn(string, ...interface{})  {}
func (n NoOpLogger) Error(string, ...interface{}) {}

// With returns the same NoOpLogger.
func (n NoOpLogger) With(...interface{}) Logger {
	return n
}
