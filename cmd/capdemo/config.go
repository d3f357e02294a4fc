package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/danmuck/capkit/internal/config"
	"github.com/danmuck/capkit/internal/logging"
	"github.com/rs/zerolog"
)

const defaultServeAddr = ":9464"

// loadOptions resolves the demo config from an optional file plus flag
// overrides. Flags win over file values, file values over defaults.
func loadOptions(path, level, addr string) (config.DemoConfig, error) {
	cfg := config.DefaultDemoConfig()
	if strings.TrimSpace(path) != "" {
		loaded, err := config.LoadDemoConfig(path)
		if err != nil {
			return config.DemoConfig{}, err
		}
		cfg = loaded
	}

	if v := strings.TrimSpace(level); v != "" {
		cfg.LogLevel = v
	}
	if v := strings.TrimSpace(addr); v != "" {
		cfg.MetricsAddr = v
	}
	if cfg.MetricsAddr == "" {
		cfg.MetricsAddr = defaultServeAddr
	}

	if err := config.ValidateDemoConfig(cfg); err != nil {
		return config.DemoConfig{}, fmt.Errorf("capdemo options: %w", err)
	}
	return cfg, nil
}

// resolveLevel picks the -log-level flag first, then CAPKIT_LOG_LEVEL, then
// the config file value.
func resolveLevel(flagLevel, configLevel string) zerolog.Level {
	if lvl, ok := logging.ParseLevel(flagLevel); ok {
		return lvl
	}
	if lvl, ok := logging.ParseLevel(os.Getenv(logging.EnvLogLevel)); ok {
		return lvl
	}
	lvl, _ := logging.ParseLevel(configLevel)
	return lvl
}
