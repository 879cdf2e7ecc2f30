package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/h0rv/dread/internal/slot"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"DREAD_CONFIG", "DREAD_DIR", "DREAD_STORAGE", "DREAD_STORAGE_KEY",
		"DREAD_LOG_LEVEL", "DREAD_LOG_ENCODING", "DREAD_LOG_OUTPUT",
	} {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("DREAD_DIR", dir)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, BackendFile, cfg.Storage.Backend)
	assert.Equal(t, dir, cfg.Storage.Dir)
	assert.Equal(t, "horror_game_dev_data", cfg.Storage.Key)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, filepath.Join(dir, "dread.log"), cfg.Logging().OutputPath)
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yml")
	yaml := "storage:\n  backend: sqlite\n  dir: " + dir + "\n  key: crypt\nlog:\n  level: debug\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	t.Setenv("DREAD_CONFIG", path)
	t.Setenv("DREAD_STORAGE_KEY", "attic")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, "attic", cfg.Storage.Key)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Encoding)
}

func TestLoad_UnknownBackend(t *testing.T) {
	clearEnv(t)
	t.Setenv("DREAD_DIR", t.TempDir())
	t.Setenv("DREAD_STORAGE", "floppy")

	_, err := Load()
	assert.ErrorIs(t, err, ErrUnknownBackend)
}

func TestOpenSlot(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		backend string
		check   func(t *testing.T, s slot.Slot)
	}{
		{BackendFile, func(t *testing.T, s slot.Slot) {
			f, ok := s.(*slot.File)
			require.True(t, ok)
			assert.Equal(t, filepath.Join(dir, "ghosts.json"), f.Path())
		}},
		{BackendSQLite, func(t *testing.T, s slot.Slot) {
			_, ok := s.(*slot.SQLite)
			assert.True(t, ok)
			assert.FileExists(t, filepath.Join(dir, "dread.db"))
		}},
		{BackendMemory, func(t *testing.T, s slot.Slot) {
			_, ok := s.(*slot.Memory)
			assert.True(t, ok)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			cfg := &Config{Storage: StorageConfig{Backend: tt.backend, Dir: dir, Key: "ghosts"}}
			s, err := cfg.OpenSlot()
			require.NoError(t, err)
			defer s.Close()
			tt.check(t, s)
		})
	}

	cfg := &Config{Storage: StorageConfig{Backend: "floppy", Dir: dir, Key: "ghosts"}}
	_, err := cfg.OpenSlot()
	assert.ErrorIs(t, err, ErrUnknownBackend)
}
