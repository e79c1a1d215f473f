package srv

import (
	"context"
	"fmt"
	"time"

	"github.com/sandevgo/factdeck/pkg/log"
)

// ShutdownTimeout bounds the time each service gets to stop.
const ShutdownTimeout = 5 * time.Second

type Service interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// StartServices launches every service in its own goroutine. A failing
// service hands its error to fail, which is expected to cancel ctx so the
// process shuts down instead of running half-started.
func StartServices(ctx context.Context, services []Service, fail func(error)) {
	logger := log.FromCtx(ctx)
	for _, service := range services {
		go func(service Service) {
			if err := service.Start(ctx); err != nil {
				logger.Error().Err(err).Msgf("%T failed to start", service)
				if fail != nil {
					fail(fmt.Errorf("%T: %w", service, err))
				}
			}
		}(service)
	}
}

// ShutdownServices blocks until ctx is done and then stops the services in
// reverse order. Each gets a fresh context bounded by ShutdownTimeout since
// ctx itself is already cancelled at that point.
func ShutdownServices(ctx context.Context, services []Service) {
	<-ctx.Done()
	logger := log.FromCtx(ctx)
	for i := len(services) - 1; i >= 0; i-- {
		service := services[i]
		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), ShutdownTimeout)
		if err := service.Shutdown(sctx); err != nil {
			logger.Error().Err(err).Msgf("%T failed to shutdown", service)
		}
		cancel()
	}
}
