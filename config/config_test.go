package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigReadsSecretFromEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-from-env")

	LoadConfig()

	assert.Equal(t, "secret-from-env", AppConfig.JWTSecret)
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-from-env")

	LoadConfig()

	assert.Equal(t, "8080", AppConfig.AppPort)
	assert.Equal(t, "development", AppConfig.Env)
	assert.Equal(t, "tiffinpro", AppConfig.DatabaseName)
	assert.Equal(t, 72, AppConfig.SessionTTLHours)
	assert.Equal(t, 60, AppConfig.RatingsSweepMinutes)
}

func TestLoadConfigEnvOverridesDefault(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-from-env")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("REDIS_AUTH_DB", "5")

	LoadConfig()

	assert.Equal(t, "9090", AppConfig.AppPort)
	assert.Equal(t, 5, AppConfig.RedisAuthDB)
}
