package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	c := New()
	assert.Equal(t, 1000, c.Timeout)
	assert.True(t, c.JumpOnTrigger)
	assert.True(t, c.WordJump)
	assert.Equal(t, "red", c.Style.Label)
	assert.Equal(t, "yellow", c.Style.Remainder)
	assert.Equal(t, "aqua", c.Style.Cursor)
	assert.Equal(t, time.Second, c.TimeoutDuration())
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(fn, []byte(content), 0o644))
	return fn
}

func TestReadFilename(t *testing.T) {
	fn := writeConfig(t, `
Timeout: 250
WordJump: false
Style:
  Label: green
`)

	c := New()
	require.NoError(t, c.ReadFilename(fn))

	assert.Equal(t, 250, c.Timeout)
	assert.False(t, c.WordJump)
	assert.Equal(t, 250*time.Millisecond, c.TimeoutDuration())
	assert.Equal(t, "green", c.Style.Label)

	// absent keys keep their defaults
	assert.True(t, c.JumpOnTrigger)
	assert.Equal(t, "yellow", c.Style.Remainder)
}

func TestReadFilenameMissing(t *testing.T) {
	c := New()
	err := c.ReadFilename(filepath.Join(t.TempDir(), "no-such-file.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read configuration file")
}

func TestReadFilenameMalformed(t *testing.T) {
	fn := writeConfig(t, "Timeout: [not a number\n")
	c := New()
	err := c.ReadFilename(fn)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse configuration file")
}

func TestValidate(t *testing.T) {
	c := New()
	require.NoError(t, c.Validate())

	c.Timeout = 0
	require.NoError(t, c.Validate())

	c.Timeout = -1
	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Timeout must be >= 0")
}

func TestReadFilenameRejectsInvalid(t *testing.T) {
	fn := writeConfig(t, "Timeout: -5\n")
	c := New()
	err := c.ReadFilename(fn)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}
