package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	require.Equal(t, "user-accounts", cfg.AppName)
	require.Equal(t, "development", cfg.Env)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, int32(10), cfg.DBMaxConns)
	require.Equal(t, time.Hour, cfg.DBMaxConnLife)
	require.False(t, cfg.EventsEnabled)
	require.False(t, cfg.SearchEnabled)
	require.Equal(t, "db/migrations", cfg.MigrationsDir)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("APP_NAME", "accounts-test")
	t.Setenv("PORT", "9090")
	t.Setenv("DB_MAX_CONNS", "25")
	t.Setenv("DB_MAX_CONN_LIFETIME", "30m")
	t.Setenv("EVENTS_ENABLED", "true")

	cfg := Load()

	require.Equal(t, "accounts-test", cfg.AppName)
	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, int32(25), cfg.DBMaxConns)
	require.Equal(t, 30*time.Minute, cfg.DBMaxConnLife)
	require.True(t, cfg.EventsEnabled)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("DB_MAX_CONNS", "lots")
	t.Setenv("EVENTS_ENABLED", "yep")
	t.Setenv("DB_MAX_CONN_LIFETIME", "soon")

	cfg := Load()

	require.Equal(t, int32(10), cfg.DBMaxConns)
	require.False(t, cfg.EventsEnabled)
	require.Equal(t, time.Hour, cfg.DBMaxConnLife)
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{
		DBUser:     "app",
		DBPassword: "pw",
		DBHost:     "db.local",
		DBPort:     "5433",
		DBName:     "accounts",
		DBSSLMode:  "require",
	}
	require.Equal(t, "postgres://app:pw@db.local:5433/accounts?sslmode=require", cfg.PostgresDSN())
}

func TestSplitCSV(t *testing.T) {
	require.Equal(t, []string{"a", "b"}, splitCSV(" a, b ,"))
	require.Empty(t, splitCSV(""))
	require.Empty(t, splitCSV(" , "))
}
