package config

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("POSTGRES_DSN", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("BCRYPT_COST", "")
	t.Setenv("CORS_ORIGINS", "")

	cfg := Load()
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, bcrypt.DefaultCost, cfg.BcryptCost)
	require.Equal(t, []string{"*"}, cfg.CORSOrigins)
}

func TestValidateReportsMissingEnv(t *testing.T) {
	cfg := &Config{BcryptCost: bcrypt.DefaultCost}

	err := cfg.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "POSTGRES_DSN")
	require.Contains(t, err.Error(), "JWT_SECRET")
}

func TestValidateRejectsWeakBcryptCost(t *testing.T) {
	cfg := &Config{
		PostgresDSN: "postgres://localhost/todos",
		JWTSecret:   "secret",
		BcryptCost:  bcrypt.MinCost,
	}

	err := cfg.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "BCRYPT_COST")
}

func TestValidateOK(t *testing.T) {
	cfg := &Config{
		PostgresDSN: "postgres://localhost/todos",
		JWTSecret:   "secret",
		BcryptCost:  bcrypt.DefaultCost,
	}
	require.NoError(t, cfg.Validate())
}
