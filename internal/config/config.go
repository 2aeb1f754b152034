package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net/url"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress        string
	BackOfficeAddress string
	DatabaseURI       string
	RequestTimeout    time.Duration
	SessionIdleTTL    time.Duration
	ReapInterval      time.Duration
	ShutdownTimeout   time.Duration
	LogLevel          string
}

const (
	defaultRunAddress      = ":8080"
	defaultLogLevel        = "info"
	defaultEnvFile         = ".env"
	defaultSessionIdleTTL  = 30 * time.Minute
	defaultReapInterval    = time.Minute
	defaultShutdownTimeout = 10 * time.Second
)

// Load parses configuration from flags, environment variables and an optional .env file.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	lookup, err := withEnvFile(lookup)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		RunAddress:        getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		BackOfficeAddress: getString(lookup, "BACKOFFICE_ADDRESS", ""),
		DatabaseURI:       getString(lookup, "DATABASE_URI", ""),
		RequestTimeout:    getDuration(lookup, "REQUEST_TIMEOUT", 0),
		SessionIdleTTL:    getDuration(lookup, "SESSION_IDLE_TTL", defaultSessionIdleTTL),
		ReapInterval:      getDuration(lookup, "REAP_INTERVAL", defaultReapInterval),
		ShutdownTimeout:   getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		LogLevel:          getString(lookup, "LOG_LEVEL", defaultLogLevel),
	}

	fs := flag.NewFlagSet("salesorder", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		requestTimeoutStr  = cfg.RequestTimeout.String()
		idleTTLStr         = cfg.SessionIdleTTL.String()
		reapIntervalStr    = cfg.ReapInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.BackOfficeAddress, "b", cfg.BackOfficeAddress, "Back office base URL")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN for the submission journal")
	fs.StringVar(&requestTimeoutStr, "request-timeout", requestTimeoutStr, "Back office request timeout, 0 disables it")
	fs.StringVar(&idleTTLStr, "session-ttl", idleTTLStr, "Idle time before a draft is evicted")
	fs.StringVar(&reapIntervalStr, "reap-interval", reapIntervalStr, "Interval between idle draft sweeps")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn or error")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if cfg.RequestTimeout, err = time.ParseDuration(requestTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid request timeout: %w", err)
	}
	if cfg.SessionIdleTTL, err = time.ParseDuration(idleTTLStr); err != nil {
		return nil, fmt.Errorf("invalid session ttl: %w", err)
	}
	if cfg.ReapInterval, err = time.ParseDuration(reapIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid reap interval: %w", err)
	}
	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.RequestTimeout < 0 {
		cfg.RequestTimeout = 0
	}
	if cfg.SessionIdleTTL <= 0 {
		cfg.SessionIdleTTL = defaultSessionIdleTTL
	}
	if cfg.ReapInterval <= 0 {
		cfg.ReapInterval = defaultReapInterval
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.BackOfficeAddress == "" {
		return nil, fmt.Errorf("back office address must be provided")
	}
	if u, err := url.Parse(cfg.BackOfficeAddress); err != nil || !u.IsAbs() {
		return nil, fmt.Errorf("back office address must be an absolute URL")
	}

	return cfg, nil
}

// withEnvFile layers values from ENV_FILE (default .env) under the process environment.
// A missing default file is ignored; a missing explicit file is an error.
func withEnvFile(lookup envLookup) (envLookup, error) {
	path, explicit := lookup("ENV_FILE")
	if path == "" {
		path, explicit = defaultEnvFile, false
	}

	values, err := godotenv.Read(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return lookup, nil
		}
		return nil, fmt.Errorf("read env file: %w", err)
	}

	return func(key string) (string, bool) {
		if v, ok := lookup(key); ok && v != "" {
			return v, true
		}
		v, ok := values[key]
		return v, ok
	}, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
