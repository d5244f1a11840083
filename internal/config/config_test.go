package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"APP_ENV", "PORT", "PUBLIC_URL", "LOADMAP_API_URL", "CORS_ORIGINS", "DB_DRIVER", "SQLITE_PATH", "REDIS_HOST", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST"} {
		t.Setenv(k, "")
	}

	cfg, err := FromEnv()
	require.NoError(t, err)
	require.Equal(t, "5501", cfg.Port)
	require.Equal(t, DriverSQLite, cfg.Database.Driver)
	require.Equal(t, "http://localhost:5501", cfg.APIURL)
	require.Equal(t, []string{"*"}, cfg.CORSOrigins)
	require.Empty(t, cfg.Redis.Host)
	require.False(t, cfg.IsProduction())
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("PORT", "8080")
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("PG_USER", "lm")
	t.Setenv("PG_PASSWORD", "secret")
	t.Setenv("PG_HOST", "db")
	t.Setenv("PG_PORT", "5433")
	t.Setenv("PG_DB", "maps")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("PUBLIC_URL", "https://maps.example/")

	cfg, err := FromEnv()
	require.NoError(t, err)
	require.True(t, cfg.IsProduction())
	require.Equal(t, DriverPostgres, cfg.Database.Driver)
	require.Equal(t, "postgres://lm:secret@db:5433/maps?sslmode=disable", cfg.Database.PostgresDSN())
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	require.Equal(t, "https://maps.example", cfg.PublicURL)
}

func TestFromEnvRejectsUnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "mysql")
	_, err := FromEnv()
	require.Error(t, err)
}

func TestFromEnvRejectsBadRateLimit(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("RATE_LIMIT_BURST", "lots")
	_, err := FromEnv()
	require.Error(t, err)
}
