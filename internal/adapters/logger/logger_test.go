package logger_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/toolcube/toolcube/internal/adapters/logger"
	"go.trai.ch/zerr"
)

func TestLogger_DefaultLevelSuppressesInfo(t *testing.T) {
	var buf strings.Builder
	l := logger.NewWithOutput(&buf)

	l.Info("should not appear")
	l.Error(zerr.New("boom"))

	out := buf.String()
	assert.NotContains(t, out, "should not appear")
	assert.Contains(t, out, "boom")
}

func TestLogger_SetVerbosity(t *testing.T) {
	var buf strings.Builder
	l := logger.NewWithOutput(&buf)
	l.SetVerbosity(3)

	l.Debug("fine grained", "key", "value")
	l.Warn("careful")

	out := buf.String()
	assert.Contains(t, out, "fine grained")
	assert.Contains(t, out, "key=value")
	assert.Contains(t, out, "careful")
}

func TestLogger_VerbosityClampsAtDebug(t *testing.T) {
	var buf strings.Builder
	l := logger.NewWithOutput(&buf)
	l.SetVerbosity(10)

	l.Debug("still works")
	assert.Contains(t, buf.String(), "still works")
}
