package logging

import (
	"bytes"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTextHandlerWritesOutput(t *testing.T) {
	r, w, err := os.Pipe()
	assert.NoError(t, err)
	SetLevel(slog.LevelInfo)
	log := New(FormatText, w)
	log.Info("hello", "key", "value")
	w.Close()

	var buf bytes.Buffer
	buf.ReadFrom(r)
	assert.Contains(t, buf.String(), "hello")
	assert.Contains(t, buf.String(), "key=value")
}

func TestDebugfSkippedBelowLevel(t *testing.T) {
	SetLevel(slog.LevelInfo)
	r, w, err := os.Pipe()
	assert.NoError(t, err)
	log := New(FormatText, w)
	Debugf(log, "should not appear: %d", 42)
	w.Close()

	var buf bytes.Buffer
	buf.ReadFrom(r)
	assert.Empty(t, buf.String())
}
