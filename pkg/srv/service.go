package srv

import (
	"context"

	"github.com/sandevgo/salesdash/pkg/log"
)

type Service interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// StartServices starts every service in its own goroutine.
// A service that fails to start cancels the whole process through onFail.
func StartServices(ctx context.Context, services []Service, onFail func(error)) {
	logger := log.FromCtx(ctx)
	for _, service := range services {
		go func(service Service) {
			if err := service.Start(ctx); err != nil {
				logger.Error().Err(err).Msgf("%T failed to start", service)
				if onFail != nil {
					onFail(err)
				}
			}
		}(service)
	}
}

// ShutdownServices stops services in reverse start order.
func ShutdownServices(ctx context.Context, services []Service) {
	for i := len(services) - 1; i >= 0; i-- {
		if err := services[i].Shutdown(ctx); err != nil {
			log.FromCtx(ctx).Error().Err(err).Msgf("%T failed to shutdown", services[i])
		}
	}
}

// WaitAndShutdown blocks until ctx is done and then stops services.
func WaitAndShutdown(ctx context.Context, services []Service) {
	<-ctx.Done()
	ShutdownServices(context.WithoutCancel(ctx), services)
}
