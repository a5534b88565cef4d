package logger

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RejectsUnknownLevel(t *testing.T) {
	_, err := New(Options{Level: "loud"})
	assert.Error(t, err)
}

func TestNew_DefaultsToInfo(t *testing.T) {
	l, err := New(Options{})
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(-1), "debug must be disabled at the default level")
}

func TestNew_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobboard.log")
	l, err := New(Options{Level: "debug", Format: "console", Output: path})
	require.NoError(t, err)
	l.Info("hello")
	assert.NoError(t, l.Sync())
	assert.FileExists(t, path)
}

func TestGet_NopBeforeInit(t *testing.T) {
	assert.NotNil(t, Get())
}
