// Package config handles configuration for the development backend,
// including defaults and command-line flags.
package config

import (
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Config holds runtime settings for the development backend.
//
// Fields:
//   - Addr: bind address of the HTTP API.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use test defaults in prod.
//   - TokenValidityDuration: lifetime of issued access tokens.
//   - AdminEmail / AdminPassword: seeded admin account; empty email disables seeding.
//   - BcryptCost: password hashing cost.
type Config struct {
	Addr                  string
	SecretKey             string
	TokenValidityDuration time.Duration
	AdminName             string
	AdminEmail            string
	AdminPassword         string
	BcryptCost            int
	LogLevel              string
}

// LoadDefaults populates Config with sensible development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.Addr = ":5000"
	c.SecretKey = "secretKey"
	c.TokenValidityDuration = 24 * time.Hour
	c.AdminName = "Administrator"
	c.AdminEmail = "admin@bookit.local"
	c.AdminPassword = "admin12345"
	c.BcryptCost = bcrypt.DefaultCost
	c.LogLevel = "info"
}

// LoadConfig builds a Config by applying defaults and then overlaying
// command-line flags.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseFlags(cfg, os.Args[1:]); err != nil {
		return nil, err
	}
	return cfg, nil
}
