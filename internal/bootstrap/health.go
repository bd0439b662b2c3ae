package bootstrap

import (
	"github.com/genie-desktop/genie-backend/internal/health"
	"github.com/genie-desktop/genie-backend/internal/ollama"
	"github.com/genie-desktop/genie-backend/internal/session"
	"github.com/labstack/echo/v4"
	"github.com/qdrant/go-client/qdrant"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

const version = "1.0.0"

func ProvideHealthHandler(
	model *ollama.Client,
	store session.Store,
	db *gorm.DB,
	redisClient *redis.Client,
	qdrantClient *qdrant.Client,
) *health.Handler {
	return health.NewHandler(
		model,
		store,
		db,
		redisClient,
		qdrantClient,
		version,
	)
}

func metricsMiddleware(h *health.Handler) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h.IncrementRequests()
			h.IncrementConnections()
			defer h.DecrementConnections()
			return next(c)
		}
	}
}

func RegisterHealthRoutes(e *echo.Echo, h *health.Handler) {
	e.Use(metricsMiddleware(h))
	h.RegisterRoutes(e)
}

var HealthModule = fx.Options(
	fx.Provide(ProvideHealthHandler),
	fx.Invoke(RegisterHealthRoutes),
)
