package adapter

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mmcdole/marquee/internal/store"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig(viper.New(), t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "https://api.themoviedb.org/3", cfg.TMDB.BaseURL)
	assert.Equal(t, "en-US", cfg.TMDB.Language)
	assert.Equal(t, 10*time.Second, cfg.TMDB.Timeout)
	assert.Equal(t, 6, cfg.UI.CastSize)
	assert.False(t, cfg.IsConfigured())
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := `tmdb:
  api_key: from-file
  rate_limit: 5
  timeout: 3s
ui:
  dark_mode: true
player:
  command: mpv
  args: ["--fs"]
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))
	t.Setenv("MARQUEE_TMDB_LANGUAGE", "de-DE")

	cfg, err := loadConfig(viper.New(), dir)
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.TMDB.APIKey)
	assert.Equal(t, 5, cfg.TMDB.RateLimit)
	assert.Equal(t, 3*time.Second, cfg.TMDB.Timeout)
	assert.Equal(t, "de-DE", cfg.TMDB.Language)
	assert.True(t, cfg.UI.DarkMode)
	assert.Equal(t, "mpv", cfg.Player.Command)
	assert.Equal(t, []string{"--fs"}, cfg.Player.Args)
	assert.True(t, cfg.IsConfigured())
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("tmdb:\n  api_key: from-file\n"), 0644))
	t.Setenv("MARQUEE_TMDB_API_KEY", "from-env")

	cfg, err := loadConfig(viper.New(), dir)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.TMDB.APIKey)
}

func TestLoadConfig_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("tmdb: [unclosed"), 0644))

	_, err := loadConfig(viper.New(), dir)
	assert.Error(t, err)
}

func TestSaveAPIKey_KeepsFileSettings(t *testing.T) {
	dir := t.TempDir()
	dataPath := filepath.Join(dir, "data.db")
	yaml := "tmdb:\n  timeout: 4s\nui:\n  dark_mode: true\nstorage:\n  path: " + dataPath + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	v := viper.New()
	cfg, err := loadConfig(v, dir)
	require.NoError(t, err)
	require.NoError(t, saveAPIKey(v, dir, cfg, "abc123"))

	loaded, err := loadConfig(viper.New(), dir)
	require.NoError(t, err)
	assert.Equal(t, "abc123", loaded.TMDB.APIKey)
	assert.Equal(t, 4*time.Second, loaded.TMDB.Timeout)
	assert.True(t, loaded.UI.DarkMode)
	assert.Equal(t, dataPath, loaded.Storage.Path)
}

func TestClearData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "marquee.db")

	kv, err := store.Open(path)
	require.NoError(t, err)
	require.NoError(t, kv.Set("favorites", []int{603}))
	require.NoError(t, kv.Set("theme", "dark"))
	require.NoError(t, kv.Close())

	n, err := ClearData(path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	kv, err = store.Open(path)
	require.NoError(t, err)
	defer kv.Close()
	keys, err := kv.Keys()
	require.NoError(t, err)
	assert.Empty(t, keys)

	n, err = ClearData("")
	assert.NoError(t, err)
	assert.Zero(t, n)
}

func TestSaveAPIKey_KeepsPersistedStoragePath(t *testing.T) {
	dir := t.TempDir()

	v := viper.New()
	cfg, err := loadConfig(v, dir)
	require.NoError(t, err)

	// --ephemeral on a first run
	cfg.Storage.Path = ""
	require.NoError(t, saveAPIKey(v, dir, cfg, "  new-key  "))
	assert.Equal(t, "new-key", cfg.TMDB.APIKey)

	next, err := loadConfig(viper.New(), dir)
	require.NoError(t, err)
	assert.Equal(t, "new-key", next.TMDB.APIKey)
	assert.Equal(t, DefaultConfig().Storage.Path, next.Storage.Path)
}

func TestSaveAPIKey_Empty(t *testing.T) {
	cfg := DefaultConfig()
	assert.Error(t, saveAPIKey(viper.New(), t.TempDir(), cfg, "   "))
	assert.Empty(t, cfg.TMDB.APIKey)
}
