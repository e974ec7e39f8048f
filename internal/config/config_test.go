package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		JWTSecret:       "development_secret_longer_than_32_chars",
		TokenTTLMinutes: 60,
		Port:            "3000",
		DBDriver:        "sqlite",
		DBPath:          ":memory:",
		Env:             "development",
	}
}

func TestValidateRequiresSecret(t *testing.T) {
	cfg := validConfig()
	cfg.JWTSecret = ""
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsUnknownDriver(t *testing.T) {
	cfg := validConfig()
	cfg.DBDriver = "oracle"
	assert.Error(t, cfg.Validate())
}

func TestValidateProductionSecretLength(t *testing.T) {
	cfg := validConfig()
	cfg.Env = "production"
	cfg.JWTSecret = "short"
	assert.Error(t, cfg.Validate())

	cfg.JWTSecret = "a_production_secret_with_enough_length!!"
	assert.NoError(t, cfg.Validate())
}

func TestValidateTokenTTL(t *testing.T) {
	cfg := validConfig()
	cfg.TokenTTLMinutes = 0
	assert.Error(t, cfg.Validate())
}
