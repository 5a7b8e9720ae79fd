package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestFromEnvDefaults(t *testing.T) {
	unsetEnv(t, "API_PORT", "AUTH_RATE_LIMIT", "AUTH_RATE_WINDOW_SECONDS")
	t.Setenv("DB_NAME", "")
	t.Setenv("JWT_EXPIRATION_HOURS", "not-a-number")

	cfg := FromEnv()

	assert.Equal(t, "8080", cfg.APIPort)
	assert.Equal(t, 72*time.Hour, cfg.JWTExp)
	assert.Equal(t, 10, cfg.AuthRateLimit)
	assert.Equal(t, time.Minute, cfg.AuthRateWindow)
	// An explicitly empty variable is still "set".
	assert.Equal(t, "", cfg.DBName)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("API_PORT", "9000")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_NAME", "arena")
	t.Setenv("DB_SSLMODE", "require")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("AUTH_RATE_LIMIT", "0")

	cfg := FromEnv()

	assert.Equal(t, "9000", cfg.APIPort)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, 0, cfg.AuthRateLimit)
	assert.Contains(t, cfg.DBConnStr, "host=db.internal")
	assert.Contains(t, cfg.DBConnStr, "dbname=arena")
	assert.Contains(t, cfg.DBConnStr, "sslmode=require")
}
