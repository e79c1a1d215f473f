package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"

	"github.com/sandevgo/factdeck/internal/config"
	"github.com/sandevgo/factdeck/internal/service/browser"
	"github.com/sandevgo/factdeck/internal/transport/web"
	"github.com/sandevgo/factdeck/pkg/log"
	"github.com/sandevgo/factdeck/pkg/srv"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the facts page on a local address",
	Long:  `Starts one browsing session and serves it as a web page until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx, os.Stdout)
		defer flushLog()

		logger := log.FromCtx(ctx)
		if err := loadEnv(ctx, config.GetRuntimePath()); err != nil {
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
		if serveAddr != "" {
			webCfg.ListenAddr = serveAddr
		}

		b := browser.NewBrowser(ctx, newProvider(ctx, appCfg))
		// shut down in reverse: stop serving first, then cancel fetches
		services := []srv.Service{
			srv.NewCleanup(b.Close),
			web.NewServer(ctx, webCfg, b),
		}

		var (
			mu       sync.Mutex
			startErr error
		)
		logger.Info().Msg("starting facts server")
		srv.StartServices(ctx, services, func(err error) {
			mu.Lock()
			startErr = errors.Join(startErr, err)
			mu.Unlock()
			stop()
		})
		srv.ShutdownServices(ctx, services)

		mu.Lock()
		defer mu.Unlock()
		if startErr != nil {
			return fmt.Errorf("start services: %w", startErr)
		}
		logger.Info().Msg("facts server has been shut down gracefully")
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "listen address (overrides FACTS_HTTP_ADDR)")
	rootCmd.AddCommand(serveCmd)
}
