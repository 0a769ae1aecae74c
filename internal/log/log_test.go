package log

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	testCases := map[string]zapcore.Level{
		"DEBUG": zapcore.DebugLevel,
		"WARN":  zapcore.WarnLevel,
		"ERROR": zapcore.ErrorLevel,
		"INFO":  zapcore.InfoLevel,
		"":      zapcore.InfoLevel,
		"debug": zapcore.InfoLevel,
	}

	for level, expected := range testCases {
		t.Run(level, func(t *testing.T) {
			assert.Equal(t, expected, ParseLevel(level))
		})
	}
}

func TestStructuredLogger_With(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := NewStructuredLoggerFromSugar(zap.New(core).Sugar())

	logger.With("checker", "menu").Info("allergen found", "ingredient", "eggs")
	logger.Debug("visiting", "count", 3)

	entries := logs.All()
	assert.Len(t, entries, 2)
	assert.Equal(t, "allergen found", entries[0].Message)
	assert.Equal(t, map[string]interface{}{"checker": "menu", "ingredient": "eggs"}, entries[0].ContextMap())
	assert.Equal(t, zapcore.DebugLevel, entries[1].Level)
}

func TestNewStructuredLogger(t *testing.T) {
	logger, err := NewStructuredLogger("ERROR")
	assert.NoError(t, err)
	assert.NotNil(t, logger.zl)
}

func TestNoOpLogger(t *testing.T) {
	var l Logger = NewNoOpLogger()
	l.Info("ignored", "k", "v")
	assert.Equal(t, l, l.With("k", "v"))
}
