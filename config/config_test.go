package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PROJECT_ROOT", "/srv/locator")

	cfg := Load()

	assert.Equal(t, DEFAULT_API_BASE_URL, cfg.APIBaseURL)
	assert.Equal(t, API_MODE_HTTP, cfg.APIMode)
	assert.Equal(t, DEFAULT_HTTP_ADDR, cfg.HTTPAddr)
	assert.Equal(t, "", cfg.RedisAddr)
	assert.Equal(t, filepath.Join("/srv/locator", "resources", "placemarks.json"), cfg.SeedFile)
	assert.Equal(t, 500*time.Millisecond, cfg.PanDuration)
	assert.Equal(t, "ru", cfg.CollationLocale)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://backend:8080")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("INDEX_REFRESH_MINUTES", "not-a-number")

	cfg := Load()

	assert.Equal(t, "http://backend:8080", cfg.APIBaseURL)
	assert.Equal(t, "redis:6379", cfg.RedisAddr)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, DEFAULT_INDEX_REFRESH_MINUTES, cfg.IndexRefreshMinutes)
}
