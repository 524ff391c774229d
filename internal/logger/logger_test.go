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

func TestDebug_OnlyWhenVerbose(t *testing.T) {
	defer resetLogger()

	var buf bytes.Buffer
	SetOutput(&buf)

	SetVerbose(false)
	Debug("hidden %s", "message")
	assert.Empty(t, buf.String())

	SetVerbose(true)
	Debug("shown %s", "message")
	assert.Equal(t, "[DEBUG] shown message\n", buf.String())
}

func TestInfoWarnPrefixes(t *testing.T) {
	defer resetLogger()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Info("info line")
	Warn("warn line")

	assert.Contains(t, buf.String(), "[INFO] info line\n")
	assert.Contains(t, buf.String(), "[WARN] warn line\n")
}

func TestSection(t *testing.T) {
	defer resetLogger()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Section("gmail")

	assert.Equal(t, "\n=== gmail ===\n", buf.String())
}

func TestIsVerbose(t *testing.T) {
	defer resetLogger()

	SetVerbose(true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}
