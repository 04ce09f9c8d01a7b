package internal

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&buf, false)
	assert.Equal(t, logrus.WarnLevel, log.GetLevel())

	log.Info("hidden")
	log.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	assert.Equal(t, logrus.DebugLevel, NewLogger(&buf, true).GetLevel())
}

func TestNewFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "ytqa.log")

	log, closer := NewFileLogger(path, true, false)
	log.WithField("tool", "ask_video").Info("called")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &entry))
	assert.Equal(t, "called", entry["msg"])
	assert.Equal(t, "ask_video", entry["tool"])
}

func TestNewFileLoggerDisabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ytqa.log")

	log, closer := NewFileLogger(path, false, false)
	log.Error("dropped")
	require.NoError(t, closer.Close())
	assert.NoFileExists(t, path)
}
