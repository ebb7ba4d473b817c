package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesToFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "service.log")

	log, err := New(file, "info")
	require.NoError(t, err)

	log.Debug("hidden: id=%d", 1)
	log.Info("GetAvailableTimes: date=%s", "12/10/2024")
	require.NoError(t, log.Close())

	content, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(content), "GetAvailableTimes: date=12/10/2024")
	assert.NotContains(t, string(content), "hidden")
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New("", "verbose")
	assert.Error(t, err)
}
