package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewRequiresToken(t *testing.T) {
	// t.Setenv registers the restore; the variable must then be absent, not
	// merely empty, for the required check to trip.
	t.Setenv("DISCORD_TOKEN", "placeholder")
	os.Unsetenv("DISCORD_TOKEN")

	_, err := New()
	require.Error(t, err)
}

func TestNewDefaults(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token-123")

	cfg, err := New()
	require.NoError(t, err)

	require.Equal(t, "token-123", cfg.DiscordToken)
	require.Equal(t, "https://api.themoviedb.org/3", cfg.TMDBBaseURL)
	require.Equal(t, 300*time.Second, cfg.SessionTTL)
	require.Equal(t, "data/datastore.json", cfg.StoragePath)
	require.Equal(t, "info", cfg.LogLevel)
	require.True(t, cfg.InitSlashCommands)
}

func TestNewOverrides(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token-123")
	t.Setenv("SESSION_TTL", "45s")
	t.Setenv("INIT_SLASH_COMMANDS", "false")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := New()
	require.NoError(t, err)

	require.Equal(t, 45*time.Second, cfg.SessionTTL)
	require.False(t, cfg.InitSlashCommands)
	require.Equal(t, "debug", cfg.LogLevel)
}
