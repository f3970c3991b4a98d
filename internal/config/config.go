package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Config holds all service configuration loaded from environment variables.
type Config struct {
	Port        string
	PostgresDSN string
	JWTSecret   string
	BcryptCost  int
	StaticDir   string
	CORSOrigins []string
}

func Load() *Config {
	return &Config{
		Port:        getenv("PORT", "8080"),
		PostgresDSN: getenv("POSTGRES_DSN", ""),
		JWTSecret:   getenv("JWT_SECRET", ""),
		BcryptCost:  getenvInt("BCRYPT_COST", bcrypt.DefaultCost),
		StaticDir:   getenv("STATIC_DIR", ""),
		CORSOrigins: strings.Split(getenv("CORS_ORIGINS", "*"), ","),
	}
}

// Validate reports configuration the service cannot start without. The JWT
// secret is the sole integrity guarantee for issued tokens, so an empty one
// is refused rather than defaulted.
func (c *Config) Validate() error {
	var missing []string
	if c.PostgresDSN == "" {
		missing = append(missing, "POSTGRES_DSN")
	}
	if c.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required env: %s", strings.Join(missing, ", "))
	}
	if c.BcryptCost < bcrypt.DefaultCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.DefaultCost, bcrypt.MaxCost)
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
