package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sandevgo/factdeck/internal/config"
	"github.com/sandevgo/factdeck/internal/transport/tui"
	"github.com/sandevgo/factdeck/pkg/log"
	"github.com/spf13/cobra"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse random facts in the terminal",
	Long:  `Opens the terminal UI, fetches a first fact and lets you page through the session history. Logs go to facts.log in the runtime directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		runtimePath := config.GetRuntimePath()

		// the terminal belongs to the UI, so logs go to a file
		if err := os.MkdirAll(runtimePath, 0o755); err != nil {
			return fmt.Errorf("create runtime dir: %w", err)
		}
		logPath := config.AppConfig{RuntimePath: runtimePath}.GetLogPath()
		ctx, flushLog, err := log.NewFileContextWithLogger(ctx, debug || config.IsDebug(), logPath)
		if err != nil {
			return err
		}
		defer flushLog()

		return runBrowse(ctx, runtimePath)
	},
}

func runBrowse(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	if err := loadEnv(ctx, runtimePath); err != nil {
		return err
	}

	appCfg, err := config.ParseAppConfig()
	if err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	logger.Info().Msg("starting terminal browser")
	defer logger.Info().Msg("terminal browser closed")
	return tui.Run(ctx, newProvider(ctx, appCfg))
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
