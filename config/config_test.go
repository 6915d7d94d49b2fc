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
	Reset()
	t.Cleanup(Reset)

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.AutoReload)
	assert.Equal(t, 100, cfg.ContainerSize)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, "http://localhost:32400", cfg.BaseURL)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mediagraph.toml")
	content := "autoreload = false\ncontainer_size = 20\ntoken = \"abc123\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.False(t, cfg.AutoReload)
	assert.Equal(t, 20, cfg.ContainerSize)
	assert.Equal(t, "abc123", cfg.Token)
	// Unset keys keep defaults
	assert.Equal(t, 30*time.Second, cfg.Timeout)
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestEnvOverride(t *testing.T) {
	Reset()
	t.Cleanup(Reset)
	t.Setenv("MEDIAGRAPH_CONTAINER_SIZE", "50")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.ContainerSize)
}

func TestWatcherReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mediagraph.toml")
	require.NoError(t, os.WriteFile(path, []byte("container_size = 10\n"), 0o644))

	w, err := NewWatcher(path)
	require.NoError(t, err)
	defer w.Stop()

	reloaded := make(chan *Config, 1)
	w.OnReload(func(c *Config) error {
		select {
		case reloaded <- c:
		default:
		}
		return nil
	})
	w.Start()

	require.NoError(t, os.WriteFile(path, []byte("container_size = 25\n"), 0o644))

	select {
	case c := <-reloaded:
		// The callback must carry the watched file's content, not
		// defaults from walk-up discovery.
		assert.Equal(t, 25, c.ContainerSize)
	case <-time.After(5 * time.Second):
		t.Fatal("config reload callback never fired")
	}
}
