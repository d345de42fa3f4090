package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadServerDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("SCRIPT_DB_PATH", "")

	cfg, err := LoadServer()
	require.NoError(t, err)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "./data/scripts.db", cfg.DBPath)
}

func TestLoadServerFromEnv(t *testing.T) {
	t.Setenv("PORT", "4000")
	t.Setenv("SCRIPT_DB_PATH", "/tmp/x.db")
	t.Setenv("SCRIPT_API_KEY", "secret")

	cfg, err := LoadServer()
	require.NoError(t, err)
	assert.Equal(t, "4000", cfg.Port)
	assert.Equal(t, "/tmp/x.db", cfg.DBPath)
	assert.Equal(t, "secret", cfg.APIKey)
}

func TestLoadAdapterDefaults(t *testing.T) {
	t.Setenv("SCRIPT_API_URL", "")
	t.Setenv("SCRIPT_API_KEY", "")

	cfg, err := LoadAdapter()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000", cfg.APIBaseURL)
	assert.Empty(t, cfg.APIKey)
}

func TestLoadAdapterFromEnv(t *testing.T) {
	t.Setenv("SCRIPT_API_URL", "https://scripts.example.com")
	t.Setenv("SCRIPT_API_KEY", "secret")

	cfg, err := LoadAdapter()
	require.NoError(t, err)
	assert.Equal(t, "https://scripts.example.com", cfg.APIBaseURL)
	assert.Equal(t, "secret", cfg.APIKey)
}
