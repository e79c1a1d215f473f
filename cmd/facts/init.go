package main

import (
	"fmt"
	"os"

	"github.com/sandevgo/factdeck/internal/config"
	"github.com/sandevgo/factdeck/pkg/env"
	"github.com/sandevgo/factdeck/pkg/log"
	"github.com/spf13/cobra"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a .env with the effective settings",
	Long:  `Creates the runtime directory and writes .env with every setting at its current value, so it can be edited instead of exporting variables.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx, os.Stderr)
		defer flushLog()

		logger := log.FromCtx(ctx)
		runtimePath := config.GetRuntimePath()
		if err := loadEnv(ctx, runtimePath); err != nil {
			return err
		}

		appCfg, err := config.ParseAppConfig()
		if err != nil {
			return fmt.Errorf("parse config: %w", err)
		}
		webCfg, err := config.ParseWebConfig()
		if err != nil {
			return fmt.Errorf("parse web config: %w", err)
		}

		envPath := appCfg.GetEnvPath()
		if _, err := os.Stat(envPath); err == nil && !initForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", envPath)
		}

		content, err := env.MarshalEnv(appCfg, webCfg)
		if err != nil {
			return err
		}

		if err := os.MkdirAll(runtimePath, 0o755); err != nil {
			return fmt.Errorf("create runtime dir: %w", err)
		}
		if err := os.WriteFile(envPath, []byte(content), 0o600); err != nil {
			return fmt.Errorf("write .env: %w", err)
		}

		logger.Info().Str("path", envPath).Msg("wrote configuration")
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing .env")
	rootCmd.AddCommand(initCmd)
}
