package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInit(t *testing.T) {
	Init()

	assert.NotNil(t, InfoLogger)
	assert.NotNil(t, WarnLogger)
	assert.NotNil(t, ErrorLogger)
	assert.NotNil(t, DebugLogger)
}

func TestLoggingDoesNotPanic(t *testing.T) {
	Init()

	assert.NotPanics(t, func() {
		Info("info message")
		Infof("info %s", "formatted")
		Warn("warn message")
		Warnf("warn %d", 1)
		Error("error message")
		Errorf("error %v", assert.AnError)
		Debug("debug message")
		Debugf("debug %s", "formatted")
	})
}
