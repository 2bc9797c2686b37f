package config

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DATABASE_URL", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE",
		"PORT", "HOST", "AUTH_JWT_SECRET", "CORS_ALLOWED_ORIGINS", "LOG_LEVEL", "LOG_FORMAT",
		"AUTO_MIGRATE", "SEED_DEMO_DATA",
	} {
		t.Setenv(key, "")
	}
}

func TestFromEnvDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://albums:secret@db:5432/albums?sslmode=disable")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "postgres://albums:secret@db:5432/albums?sslmode=disable", cfg.Database.URL)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.True(t, cfg.Database.SeedDemoData)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Empty(t, cfg.Security.JWTSecret)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.CORS.AllowedOrigins)
}

func TestFromEnvBuildsURLFromParts(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_HOST", "pg")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_USER", "albums")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("DB_NAME", "catalog")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "postgres://albums:pw@pg:6543/catalog?sslmode=disable", cfg.Database.URL)
}

func TestFromEnvEscapesCredentials(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_HOST", "pg")
	t.Setenv("DB_USER", "albums")
	t.Setenv("DB_PASSWORD", "p@ss/w:rd")
	t.Setenv("DB_NAME", "catalog")

	cfg, err := FromEnv()
	require.NoError(t, err)

	u, err := url.Parse(cfg.Database.URL)
	require.NoError(t, err)
	password, ok := u.User.Password()
	require.True(t, ok)
	assert.Equal(t, "p@ss/w:rd", password)
	assert.Equal(t, "albums", u.User.Username())
	assert.Equal(t, "pg:5432", u.Host)
	assert.Equal(t, "/catalog", u.Path)
	assert.Equal(t, "disable", u.Query().Get("sslmode"))
}

func TestFromEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://x")
	t.Setenv("PORT", "9090")
	t.Setenv("AUTO_MIGRATE", "false")
	t.Setenv("SEED_DEMO_DATA", "0")
	t.Setenv("CORS_ALLOWED_ORIGINS", " http://a.example , ,http://b.example")
	t.Setenv("AUTH_JWT_SECRET", "0123456789abcdef")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.False(t, cfg.Database.AutoMigrate)
	assert.False(t, cfg.Database.SeedDemoData)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "0123456789abcdef", cfg.Security.JWTSecret)
}

func TestFromEnvCollectsProblems(t *testing.T) {
	clearEnv(t)
	t.Setenv("AUTH_JWT_SECRET", "short")
	t.Setenv("LOG_LEVEL", "chatty")

	_, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL is required")
	assert.Contains(t, err.Error(), "AUTH_JWT_SECRET must be at least 16 characters")
	assert.Contains(t, err.Error(), "LOG_LEVEL must be one of")
}

func TestFromEnvInvalidPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://x")
	t.Setenv("PORT", "http")

	_, err := FromEnv()
	require.ErrorContains(t, err, "invalid PORT")
}
