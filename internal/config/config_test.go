package config

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWith_Defaults(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "realtime_feedback", cfg.Database.Name)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, "HS256", cfg.JWT.Algorithm)
	assert.Equal(t, 30*time.Minute, cfg.JWT.Expiry)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 10, cfg.RateLimit.Burst)
	assert.Empty(t, cfg.RateLimit.TrustedProxies)
}

func TestLoadWith_Overrides(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"PORT":          "9000",
		"DB_HOST":       "db.internal",
		"DB_PASSWORD":   "s3cret",
		"JWT_EXPIRY":    "1h",
		"JWT_ALGORITHM": "HS512",
	}))
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, time.Hour, cfg.JWT.Expiry)
	assert.Equal(t, "HS512", cfg.JWT.Algorithm)
}

func TestLoadWith_ProductionRequiresSecret(t *testing.T) {
	_, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"ENV": "production",
	}))
	require.ErrorIs(t, err, ErrInsecureSecret)

	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"ENV":        "production",
		"JWT_SECRET": "a-real-secret",
	}))
	require.NoError(t, err)
	assert.Equal(t, "a-real-secret", cfg.JWT.Secret)
}

func TestLoadWith_InvalidDuration(t *testing.T) {
	_, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_EXPIRY": "soon",
	}))
	require.Error(t, err)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{
		Host:           "localhost",
		Port:           "3306",
		User:           "root",
		Password:       "pw",
		Name:           "realtime_feedback",
		ConnectTimeout: 5 * time.Second,
	}

	dsn := d.DSN()
	assert.True(t, strings.HasPrefix(dsn, "root:pw@tcp(localhost:3306)/realtime_feedback?"), dsn)
	assert.Contains(t, dsn, "parseTime=true")
	assert.Contains(t, dsn, "timeout=5s")
}

func TestLoadWith_TrustedProxies(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"TRUSTED_PROXY_CIDRS": "10.0.0.0/8,192.168.0.0/16",
	}))
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.0/8", "192.168.0.0/16"}, cfg.RateLimit.TrustedProxies)

	_, err = LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"TRUSTED_PROXY_CIDRS": "10.0.0.1",
	}))
	assert.Error(t, err)
}
