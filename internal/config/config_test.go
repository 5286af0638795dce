package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := NewConfigService().Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
version = 1

[backend]
kind = "meilisearch"
index = "stores"
query_timeout = "3s"

[locator]
title = "Find a store"
display_all_on_no_results = true
vertical_limit = 5
all_results_limit = 2
`), 0644))

	cfg, err := NewConfigService().LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, "meilisearch", cfg.Backend.Kind)
	assert.Equal(t, "stores", cfg.Backend.Index)
	assert.Equal(t, 3*time.Second, cfg.Backend.QueryTimeout)
	assert.Equal(t, "Find a store", cfg.Locator.Title)
	assert.True(t, cfg.Locator.DisplayAllOnNoResults)
	assert.Equal(t, 5, cfg.Locator.VerticalLimit)
	assert.Equal(t, 5, cfg.Locator.AllResultsLimit, "raised to the page size")

	// Untouched keys keep their defaults
	assert.Equal(t, "http://localhost:7700", cfg.Backend.MeiliURL)
	assert.Equal(t, 50000.0, cfg.Locator.GeolocateRadius)
}

func TestLoadFromPathMissing(t *testing.T) {
	_, err := NewConfigService().LoadFromPath(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoadFromPathInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[backend\nkind ="), 0644))

	_, err := NewConfigService().LoadFromPath(path)
	assert.Error(t, err)
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("LOCATOR_BACKEND_KIND", "meilisearch")
	t.Setenv("LOCATOR_LOCATOR_VERTICAL_LIMIT", "7")
	t.Setenv("LOCATOR_CACHE_REDIS_URL", "redis://localhost:6379/0")

	cfg, err := NewConfigService().Load()
	require.NoError(t, err)

	assert.Equal(t, "meilisearch", cfg.Backend.Kind)
	assert.Equal(t, 7, cfg.Locator.VerticalLimit)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Cache.RedisURL)
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	svc := NewConfigService()

	want := DefaultConfig()
	want.Locator.AllResultsOnLoad = true
	want.Backend.RateLimit = 2.5
	want.Backend.RateBurst = 3

	require.NoError(t, svc.SaveToPath(want, path))
	got, err := svc.LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestNormalize(t *testing.T) {
	cfg := &Config{}
	cfg.normalize()

	d := DefaultConfig()
	assert.Equal(t, d.Locator.VerticalLimit, cfg.Locator.VerticalLimit)
	assert.Equal(t, d.Locator.VerticalLimit, cfg.Locator.AllResultsLimit)
	assert.Equal(t, d.Locator.GeolocateRadius, cfg.Locator.GeolocateRadius)
	assert.Equal(t, d.Backend.QueryTimeout, cfg.Backend.QueryTimeout)
	assert.Equal(t, d.Cache.TTL, cfg.Cache.TTL)
	assert.Equal(t, "memory", cfg.Backend.Kind)
}
