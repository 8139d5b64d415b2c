package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "data/holidays", cfg.DataDir)
	assert.Equal(t, "NateScarlet", cfg.RepoOwner)
	assert.Equal(t, "holiday-cn", cfg.RepoName)
	assert.Equal(t, "", cfg.RepoPath)
	assert.Equal(t, "master", cfg.RepoBranch)
	assert.Equal(t, 24*time.Hour, cfg.RefreshInterval)
	assert.Equal(t, 2, cfg.GitHubRPS)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_ADDR", ":9090")
	t.Setenv("HOLIDAY_GH_PATH", "/data/")
	t.Setenv("REFRESH_INTERVAL", "1h")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "data", cfg.RepoPath, "repo path is trimmed of slashes")
	assert.Equal(t, time.Hour, cfg.RefreshInterval)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
}

func TestLoad_RejectsBadValues(t *testing.T) {
	t.Run("unparsable interval", func(t *testing.T) {
		t.Setenv("REFRESH_INTERVAL", "often")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("interval below one minute", func(t *testing.T) {
		t.Setenv("REFRESH_INTERVAL", "5s")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("non-numeric rps", func(t *testing.T) {
		t.Setenv("GITHUB_RPS", "fast")
		_, err := Load()
		assert.Error(t, err)
	})
}
