package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_RequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := Load()
	require.Error(t, err)
}

func TestLoad_ReadsEnvironment(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_TTL", "30m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test ,")
	t.Setenv("BUSINESS_TIMEZONE", "UTC")
	t.Setenv("DB_APPLY_SCHEMA", "false")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 30*time.Minute, cfg.JWTTTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, time.UTC, cfg.Location)
	assert.False(t, cfg.DBApplySchema)
	assert.Contains(t, cfg.DSN(), "port=5432")
}

func TestLoad_RejectsUnknownTimezone(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("BUSINESS_TIMEZONE", "Mars/Olympus")
	_, err := Load()
	require.Error(t, err)
}
