package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 2*time.Minute, cfg.Server.Timeout)
	assert.Equal(t, "gemini-2.5-flash-image", cfg.Gemini.Model)
	assert.Equal(t, time.Hour, cfg.Session.TTL)
	assert.Equal(t, 2, cfg.Session.DefaultImages)
	assert.Equal(t, int64(10485760), cfg.Upload.MaxBytes)
	assert.False(t, cfg.CacheEnable)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("GEMINI_MODEL", "gemini-3-image")
	t.Setenv("SESSION_DEFAULT_IMAGES", "4")
	t.Setenv("CACHE_ENABLE", "true")
	t.Setenv("REDIS_TTL", "30m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "gemini-3-image", cfg.Gemini.Model)
	assert.Equal(t, 4, cfg.Session.DefaultImages)
	assert.True(t, cfg.CacheEnable)
	assert.Equal(t, 30*time.Minute, cfg.RedisConfig.TTL)
}
