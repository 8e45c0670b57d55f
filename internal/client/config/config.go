package config

import (
	"os"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/dmitrijs2005/bookit/internal/flagx"
	"github.com/dmitrijs2005/bookit/internal/logging"
)

// Token storage backends.
const (
	StorageSQLite = "sqlite"
	StorageRedis  = "redis"
	StorageMemory = "memory"
)

// Config holds runtime settings for the bookit terminal client.
//
// Durations accept Go duration strings ("15s", "1m") in files and
// environment variables.
type Config struct {
	ServerURL      string        `mapstructure:"server_url"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	VerifyInterval time.Duration `mapstructure:"verify_interval"`

	TokenStorage string `mapstructure:"token_storage"`
	DatabasePath string `mapstructure:"database_path"`
	RedisAddr    string `mapstructure:"redis_addr"`
	RedisDB      int    `mapstructure:"redis_db"`
	RedisPrefix  string `mapstructure:"redis_prefix"`

	// RateLimit caps outgoing requests per second; 0 disables throttling.
	RateLimit float64 `mapstructure:"rate_limit"`

	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`

	// MetricsAddr, when set, serves Prometheus metrics on host:port.
	MetricsAddr string `mapstructure:"metrics_addr"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:5000"
	c.RequestTimeout = 15 * time.Second
	c.VerifyInterval = time.Minute
	c.TokenStorage = StorageSQLite
	c.DatabasePath = "bookit.db"
	c.RedisAddr = "127.0.0.1:6379"
	c.RedisDB = 0
	c.RedisPrefix = "bookit"
	c.RateLimit = 0
	c.LogLevel = "info"
	c.LogFormat = logging.FormatText
	c.MetricsAddr = ""
}

// Validate checks that the assembled configuration is usable.
func (c *Config) Validate() error {
	var dbRules, redisRules []validation.Rule
	switch c.TokenStorage {
	case StorageSQLite:
		dbRules = append(dbRules, validation.Required)
	case StorageRedis:
		redisRules = append(redisRules, validation.Required)
	}

	return validation.ValidateStruct(c,
		validation.Field(&c.ServerURL, validation.Required, is.URL),
		validation.Field(&c.RequestTimeout, validation.Min(time.Duration(0))),
		validation.Field(&c.VerifyInterval, validation.Min(time.Duration(0))),
		validation.Field(&c.TokenStorage, validation.Required, validation.In(StorageSQLite, StorageRedis, StorageMemory)),
		validation.Field(&c.DatabasePath, dbRules...),
		validation.Field(&c.RedisAddr, redisRules...),
		validation.Field(&c.RedisDB, validation.Min(0)),
		validation.Field(&c.RateLimit, validation.Min(0.0)),
		validation.Field(&c.LogFormat, validation.In(logging.FormatText, logging.FormatJSON, logging.FormatZap)),
		validation.Field(&c.LogLevel, validation.In("debug", "info", "warn", "error")),
	)
}

// LoadConfig builds a Config from the process command line and environment.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}

// Load builds a Config from defaults, then the optional config file named
// by -c/-config together with BOOKIT_* environment variables, then flags.
// Later sources take precedence over earlier ones.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseFile(cfg, flagx.ConfigFileFromArgs(args)); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
