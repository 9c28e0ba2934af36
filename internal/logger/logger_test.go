package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func resetLogger() {
	SetVerbose(false)
	SetOutput(os.Stderr)
}

func TestSetVerbose(t *testing.T) {
	defer resetLogger()

	SetVerbose(false)
	assert.False(t, IsVerbose())

	SetVerbose(true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestDebug_WhenVerbose(t *testing.T) {
	defer resetLogger()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Debug("test message %s", "arg")

	assert.Equal(t, "[DEBUG] test message arg\n", buf.String())
}

func TestDebug_WhenNotVerbose(t *testing.T) {
	defer resetLogger()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(false)

	Debug("hidden %d", 1)
	Info("hidden")
	Warn("hidden")
	Section("hidden")

	assert.Empty(t, buf.String())
}

func TestLevels_WhenVerbose(t *testing.T) {
	defer resetLogger()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Info("configured %s", "google")
	Warn("rate limited")
	Section("Wizard")

	out := buf.String()
	assert.Contains(t, out, "[INFO] configured google")
	assert.Contains(t, out, "[WARN] rate limited")
	assert.Contains(t, out, "=== Wizard ===")
}

func TestSetOutput_AfterVerbose(t *testing.T) {
	defer resetLogger()

	SetVerbose(true)
	var buf bytes.Buffer
	SetOutput(&buf)

	Debug("late writer")
	Sync()

	assert.Contains(t, buf.String(), "late writer")
}
