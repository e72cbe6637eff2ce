package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.False(t, cfg.Debug)
	assert.Equal(t, 24, cfg.SessionExpiryHours)
	assert.Equal(t, 300, cfg.AssertionExpirySeconds)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PROJECT_ID", "test-project")
	t.Setenv("PORT", "9090")
	t.Setenv("DEBUG", "true")
	t.Setenv("SESSION_EXPIRY_HOURS", "48")

	cfg := Load()

	assert.Equal(t, "test-project", cfg.ProjectID)
	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.Debug)
	assert.Equal(t, 48, cfg.SessionExpiryHours)
}

func TestValidate(t *testing.T) {
	cfg := &Config{Port: "8080", JWTSecret: "real-secret"}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PROJECT_ID")

	cfg.ProjectID = "test-project"
	require.NoError(t, cfg.Validate())
}

func TestValidateRejectsDefaultSecretInRelease(t *testing.T) {
	cfg := &Config{
		ProjectID: "test-project",
		JWTSecret: "your-secret-key-change-in-production",
		Debug:     false,
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")

	cfg.Debug = true
	require.NoError(t, cfg.Validate())
}
