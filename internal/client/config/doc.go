// Package config loads runtime configuration for the bookit terminal
// client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file given with -c or -config (JSON, YAML or TOML),
//     then BOOKIT_* environment variables such as BOOKIT_SERVER_URL.
//  3. Command-line flags (see parseFlags), which override everything.
//
// # File schema
//
//	{
//	  "server_url": "http://127.0.0.1:5000",
//	  "request_timeout": "15s",
//	  "verify_interval": "1m",
//	  "token_storage": "sqlite",
//	  "database_path": "bookit.db",
//	  "redis_addr": "127.0.0.1:6379",
//	  "redis_db": 0,
//	  "redis_prefix": "bookit",
//	  "rate_limit": 0,
//	  "log_level": "info",
//	  "log_format": "text",
//	  "metrics_addr": ""
//	}
//
// The assembled Config is validated before it is returned.
package config
