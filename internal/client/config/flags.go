package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/bookit/internal/flagx"
)

var knownFlags = []string{"-a", "-t", "-i", "-s", "-d", "-r", "-p", "-rate", "-l", "-f", "-m"}

// parseFlags overrides cfg with command-line flags.
//
//	-a string    backend base URL
//	-t duration  per-request timeout
//	-i int       session re-verification interval in seconds (0 disables)
//	-s string    token storage: sqlite, redis or memory
//	-d string    SQLite database path
//	-r string    Redis address
//	-p string    Redis key prefix
//	-rate float  request rate limit per second (0 disables)
//	-l string    log level
//	-f string    log format: text, json or zap
//	-m string    metrics listen address
//
// Flags not listed here are ignored so other components can share the
// command line.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, knownFlags)

	fs := flag.NewFlagSet("bookit", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "backend base URL")
	fs.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "per-request timeout")
	verifyInterval := fs.Int("i", int(cfg.VerifyInterval.Seconds()), "session re-verification interval (in seconds)")
	fs.StringVar(&cfg.TokenStorage, "s", cfg.TokenStorage, "token storage backend")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "SQLite database path")
	fs.StringVar(&cfg.RedisAddr, "r", cfg.RedisAddr, "Redis address")
	fs.StringVar(&cfg.RedisPrefix, "p", cfg.RedisPrefix, "Redis key prefix")
	fs.Float64Var(&cfg.RateLimit, "rate", cfg.RateLimit, "request rate limit per second")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogFormat, "f", cfg.LogFormat, "log format")
	fs.StringVar(&cfg.MetricsAddr, "m", cfg.MetricsAddr, "metrics listen address")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg.VerifyInterval = time.Duration(*verifyInterval) * time.Second
	return nil
}
