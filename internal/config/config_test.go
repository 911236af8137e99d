package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, "sqlite3", cfg.DB.Driver)
	assert.Equal(t, "https://pokeapi.co/api/v2", cfg.Remote.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Remote.Timeout)
	assert.Equal(t, 2000, cfg.Remote.IndexLimit)
	assert.Equal(t, 24, cfg.Listing.PageSize)
	assert.Equal(t, HydrationStrict, cfg.Listing.Hydration)
	assert.Equal(t, "", cfg.ConfigFile())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DEX_REMOTE_BASE_URL", "http://localhost:9999/api/v2/")
	t.Setenv("DEX_LISTING_PAGE_SIZE", "12")
	t.Setenv("DEX_LISTING_HYDRATION", "Tolerant")
	t.Setenv("DEX_REMOTE_TIMEOUT", "250ms")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9999/api/v2", cfg.Remote.BaseURL)
	assert.Equal(t, 12, cfg.Listing.PageSize)
	assert.Equal(t, HydrationTolerant, cfg.Listing.Hydration)
	assert.Equal(t, 250*time.Millisecond, cfg.Remote.Timeout)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "bad timeout", key: "DEX_REMOTE_TIMEOUT", val: "soon"},
		{name: "zero timeout", key: "DEX_REMOTE_TIMEOUT", val: "0s"},
		{name: "zero page size", key: "DEX_LISTING_PAGE_SIZE", val: "0"},
		{name: "unknown hydration", key: "DEX_LISTING_HYDRATION", val: "lazy"},
		{name: "negative retries", key: "DEX_REMOTE_RETRIES", val: "-1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			t.Setenv(tt.key, tt.val)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
