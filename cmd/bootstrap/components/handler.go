package components

import (
	"calendar-booking/internal/handler"
	"calendar-booking/internal/handler/api"
	"calendar-booking/internal/handler/middleware"
	"calendar-booking/internal/pkg/config"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAvailabilityHandler,
		api.NewBookingHandler,
		api.NewAdminHandler,
		handler.NewHealthHandler,
		middleware.NewAuthMiddleware,
		NewRateLimiter,
		NewHandlers,
		NewMiddlewares,
	),
	fx.Invoke(handler.NewRouter),
)

func NewRateLimiter(cfg config.Config) *middleware.RateLimiter {
	return middleware.NewRateLimiter(cfg.RateLimit)
}

func NewHandlers(
	health *handler.HealthHandler,
	availability *api.AvailabilityHandler,
	booking *api.BookingHandler,
	admin *api.AdminHandler,
) handler.Handlers {
	return handler.Handlers{
		Health:       health,
		Availability: availability,
		Booking:      booking,
		Admin:        admin,
	}
}

func NewMiddlewares(
	logger *middleware.Logger,
	auth *middleware.AuthMiddleware,
	limiter *middleware.RateLimiter,
) handler.Middlewares {
	return handler.Middlewares{
		Logger:      logger,
		Auth:        auth,
		RateLimiter: limiter,
	}
}
