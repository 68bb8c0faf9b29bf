package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func reset() {
	SetVerbose(false)
	SetOutput(os.Stderr)
}

func TestDebug_SilentByDefault(t *testing.T) {
	defer reset()

	buf := new(bytes.Buffer)
	SetOutput(buf)

	Debug("hidden %s", "message")
	assert.Empty(t, buf.String())
}

func TestDebug_PrintsWhenVerbose(t *testing.T) {
	defer reset()

	buf := new(bytes.Buffer)
	SetOutput(buf)
	SetVerbose(true)

	Debug("checked %d documents", 3)
	assert.Equal(t, "[DEBUG] checked 3 documents\n", buf.String())
}

func TestInfoAndWarn_GatedByVerbose(t *testing.T) {
	defer reset()

	buf := new(bytes.Buffer)
	SetOutput(buf)

	Info("quiet")
	Warn("quiet")
	assert.Empty(t, buf.String())

	SetVerbose(true)
	Info("loud")
	Warn("loud")
	assert.Contains(t, buf.String(), "[INFO] loud")
	assert.Contains(t, buf.String(), "[WARN] loud")
}

func TestError_AlwaysPrints(t *testing.T) {
	defer reset()

	buf := new(bytes.Buffer)
	SetOutput(buf)

	Error("boom: %v", "reason")
	assert.Equal(t, "[ERROR] boom: reason\n", buf.String())
}

func TestIsVerbose(t *testing.T) {
	defer reset()

	assert.False(t, IsVerbose())
	SetVerbose(true)
	assert.True(t, IsVerbose())
}
