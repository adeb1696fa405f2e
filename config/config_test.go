package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("JWTOKEN", "secret")
	t.Setenv("PORT", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":4000", cfg.Addr())
	assert.Equal(t, "MotoHub", cfg.DBName)
	assert.Equal(t, 20.0, cfg.RateLimitRPS)
	assert.Equal(t, 40, cfg.RateLimitBurst)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
}

func TestLoadBuildsURIFromCredentials(t *testing.T) {
	t.Setenv("MONGO_URI", "")
	t.Setenv("DB_USER", "moto")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("DB_HOST", "cluster.example.net")
	t.Setenv("JWTOKEN", "")
	t.Setenv("JWT_SECRET", "fallback")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "mongodb+srv://moto:pw@cluster.example.net/?retryWrites=true&w=majority", cfg.MongoURI)
	assert.Equal(t, "fallback", cfg.JWTSecret)
}

func TestLoadErrors(t *testing.T) {
	t.Setenv("MONGO_URI", "")
	t.Setenv("DB_USER", "")
	t.Setenv("DB_PASSWORD", "")
	t.Setenv("JWTOKEN", "secret")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("JWTOKEN", "")
	t.Setenv("JWT_SECRET", "")
	_, err = Load()
	assert.Error(t, err)

	t.Setenv("JWTOKEN", "secret")
	t.Setenv("REQUEST_TIMEOUT", "soon")
	_, err = Load()
	assert.Error(t, err)
}
