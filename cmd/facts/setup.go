package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sandevgo/factdeck/internal/config"
	"github.com/sandevgo/factdeck/internal/providers/facts"
	"github.com/sandevgo/factdeck/pkg/log"
)

// loadEnv loads {runtime}/.env before any config struct is parsed. Values
// already present in the process environment win.
func loadEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}

func newProvider(ctx context.Context, cfg *config.AppConfig) *facts.Client {
	log.FromCtx(ctx).Debug().
		Str("provider", cfg.GetProviderURL()).
		Dur("timeout", cfg.GetHTTPTimeout()).
		Int("retries", cfg.GetRetries()).
		Float64("rate_limit", cfg.GetRateLimit()).
		Msg("fact provider configured")
	return facts.NewClient(cfg)
}
