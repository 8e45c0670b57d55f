package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const envPrefix = "BOOKIT"

// parseFile overlays cfg with values from the config file at path (JSON,
// YAML or TOML, chosen by extension) and from BOOKIT_* environment
// variables, which win over the file. An empty path skips the file.
func parseFile(cfg *Config, path string) error {
	v := viper.New()
	setDefaults(v, cfg)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	return nil
}

// setDefaults registers every key with its current value so that
// environment variables are picked up for all of them.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("server_url", cfg.ServerURL)
	v.SetDefault("request_timeout", cfg.RequestTimeout)
	v.SetDefault("verify_interval", cfg.VerifyInterval)
	v.SetDefault("token_storage", cfg.TokenStorage)
	v.SetDefault("database_path", cfg.DatabasePath)
	v.SetDefault("redis_addr", cfg.RedisAddr)
	v.SetDefault("redis_db", cfg.RedisDB)
	v.SetDefault("redis_prefix", cfg.RedisPrefix)
	v.SetDefault("rate_limit", cfg.RateLimit)
	v.SetDefault("log_level", cfg.LogLevel)
	v.SetDefault("log_format", cfg.LogFormat)
	v.SetDefault("metrics_addr", cfg.MetricsAddr)
}
