package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("MONGO_URL", "mongodb://localhost:27017")
	t.Setenv("MONGODB_DATABASE", "agenda_test")
	t.Setenv("CONTACTS_COLLECTION", "contactos")
	t.Setenv("TEAMS_COLLECTION", "equipos")
	t.Setenv("API_KEY", "k")
	t.Setenv("REDIS_HOST", "localhost")
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_RPS", "2.5")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "mongodb://localhost:27017", cfg.MongoDB.URI)
	require.Equal(t, "agenda_test", cfg.MongoDB.Database)
	require.Equal(t, "contactos", cfg.MongoDB.ContactsCollection)
	require.Equal(t, "equipos", cfg.MongoDB.TeamsCollection)
	require.Equal(t, 10*time.Second, cfg.MongoDB.Timeout)
	require.Equal(t, "k", cfg.PhoneAPI.APIKey)
	require.Equal(t, "6379", cfg.Redis.Port)
	require.True(t, cfg.RateLimit.Enabled)
	require.Equal(t, 2.5, cfg.RateLimit.RPS)
	require.Equal(t, "0.0.0.0:3000", cfg.Addr())
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("MONGO_URL", "")
	t.Setenv("MONGODB_URI", "mongodb://fallback:27017")
	t.Setenv("API_KEY", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "mongodb://fallback:27017", cfg.MongoDB.URI)
	require.Equal(t, "SimulacroApiRest1DB", cfg.MongoDB.Database)
	require.Equal(t, "contacts", cfg.MongoDB.ContactsCollection)
	require.Equal(t, "teams", cfg.MongoDB.TeamsCollection)
	require.Empty(t, cfg.PhoneAPI.APIKey)
	require.Equal(t, "https://api.api-ninjas.com/v1/validatephone", cfg.PhoneAPI.URL)
	require.False(t, cfg.RateLimit.Enabled)
}

func TestLoadConfig_MissingStoreURL(t *testing.T) {
	t.Setenv("MONGO_URL", "")
	t.Setenv("MONGODB_URI", "")

	_, err := LoadConfig()
	require.ErrorIs(t, err, ErrMissingStoreURL)
}
