package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tally/internal/tasks"
)

func TestLoadOrCreateWritesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", DefaultConfigFileName)

	cfg, err := LoadOrCreate(path)
	require.NoError(t, err)

	_, err = os.Stat(path)
	require.NoError(t, err, "config file should be created")

	assert.Equal(t, filepath.Join(dir, "sub", DefaultDBName), cfg.DBPath)
	assert.Equal(t, filepath.Join(dir, "sub", DefaultLogName), cfg.LogPath)
	assert.Equal(t, tasks.DefaultSlotKey, cfg.SlotKey)
	assert.Equal(t, tasks.FilterAll, cfg.Filter())
	assert.Equal(t, "a", cfg.Keys.Add)

	del, clear := cfg.Delays()
	assert.Equal(t, DefaultDeleteDelay, del)
	assert.Equal(t, DefaultClearDelay, clear)

	again, err := LoadOrCreate(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestLoadExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultConfigFileName)
	content := `
db_path = "/var/lib/tally/data.db"
slot_key = "work"
default_filter = "active"
clear_delay = "1s"
delete_delay = "bogus"

[keys]
add = "n"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadOrCreate(path)
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/tally/data.db", cfg.DBPath)
	assert.Equal(t, filepath.Join(dir, DefaultLogName), cfg.LogPath)
	assert.Equal(t, "work", cfg.SlotKey)
	assert.Equal(t, tasks.FilterActive, cfg.Filter())
	assert.Equal(t, "n", cfg.Keys.Add)
	assert.Equal(t, "q", cfg.Keys.Quit)

	del, clear := cfg.Delays()
	assert.Equal(t, DefaultDeleteDelay, del)
	assert.Equal(t, time.Second, clear)
}

func TestLoadRejectsUnknownFilter(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(`default_filter = "someday"`), 0o644))

	_, err := LoadOrCreate(path)
	assert.ErrorIs(t, err, tasks.ErrInvalidFilter)
}

func TestLoadRejectsMalformedToml(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(`db_path = `), 0o644))

	_, err := LoadOrCreate(path)
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	cfg := Default("/tmp/x")
	assert.Equal(t, "/tmp/x/"+DefaultDBName, cfg.DBPath)
	assert.Equal(t, DefaultDateFormat, cfg.DateFormat)
}
