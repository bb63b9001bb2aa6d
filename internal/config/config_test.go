package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCreatesDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, _, err := Load(dir)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, "config.yaml"))
	assert.Equal(t, dir, cfg.DataDir)
	assert.Equal(t, 300*time.Millisecond, cfg.DebounceWindow())
	assert.Equal(t, 7*24*time.Hour, cfg.RecentWindow())
	assert.Equal(t, "fuzzy", cfg.Search.StudentMode)
	assert.Equal(t, "substring", cfg.Search.MentorMode)
	assert.Equal(t, "students_export.csv", cfg.Export.Filename)
	assert.False(t, cfg.Export.EscapeQuotes)
	assert.Equal(t, filepath.Join(dir, "campuslink.db"), cfg.DatabasePath())
}

func TestSetPersists(t *testing.T) {
	dir := t.TempDir()
	_, v, err := Load(dir)
	require.NoError(t, err)

	require.NoError(t, Set(v, "search.debounce_ms", "150"))
	require.Error(t, Set(v, "openai_key", "sk"))

	cfg, _, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 150*time.Millisecond, cfg.DebounceWindow())
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("CAMPUSLINK_EXPORT_ESCAPE_QUOTES", "true")

	cfg, _, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.True(t, cfg.Export.EscapeQuotes)
}

func TestLoadRejectsNonPositiveDebounce(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("search:\n  debounce_ms: 0\n"), 0600))

	_, _, err := Load(dir)
	assert.Error(t, err)
}
