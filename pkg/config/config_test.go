package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViperDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg := fromViper(v)
	require.NotNil(t, cfg)
	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "http://localhost:8000/api/v1", cfg.API.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.Equal(t, 10, cfg.List.PageSize)
	assert.Equal(t, 1500*time.Millisecond, cfg.Forms.ConfirmDelay)
	assert.Equal(t, time.Minute, cfg.Session.RefreshSkew)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestFromViperOverrides(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("API_BASE_URL", "https://flock.example.com/api/v1/")
	v.Set("PAGE_SIZE", 0)
	v.Set("CONFIRM_DELAY", "not-a-duration")
	v.Set("API_TIMEOUT", "3s")

	cfg := fromViper(v)
	assert.Equal(t, "https://flock.example.com/api/v1", cfg.API.BaseURL)
	assert.Equal(t, 10, cfg.List.PageSize)
	assert.Equal(t, 1500*time.Millisecond, cfg.Forms.ConfirmDelay)
	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PAGE_SIZE", "25")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.List.PageSize)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestFromViperCredentials(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("FLOCK_EMAIL", "shepherd@example.com")
	v.Set("FLOCK_TOKEN", "abc")

	cfg := fromViper(v)
	assert.Equal(t, "shepherd@example.com", cfg.Auth.Email)
	assert.Empty(t, cfg.Auth.Password)
	assert.Equal(t, "abc", cfg.Auth.Token)
}
