package cmd

import (
	"log/slog"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/donaldgifford/markdown-pricer/api/openapi"
	"github.com/donaldgifford/markdown-pricer/internal/api/handlers"
	"github.com/donaldgifford/markdown-pricer/internal/api/middleware"
	"github.com/donaldgifford/markdown-pricer/internal/config"
	"github.com/donaldgifford/markdown-pricer/internal/engine"
	"github.com/donaldgifford/markdown-pricer/internal/store"
	"github.com/donaldgifford/markdown-pricer/pkg/logger"
)

// newServer assembles the Echo instance: probes and /metrics on Echo, the
// documented API through Huma.
func newServer(
	cfg *config.ServerConfig,
	eng *engine.Engine,
	s store.Store,
	log *slog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.ReadTimeout
	e.Server.WriteTimeout = cfg.WriteTimeout

	e.Use(middleware.Recovery(log))
	e.Use(echo.WrapMiddleware(otelhttp.NewMiddleware(logger.ServiceName)))
	e.Use(middleware.RequestLog(log))
	e.Use(middleware.Metrics())

	handlers.RegisterHealthRoutes(e, handlers.NewHealthHandler(s))
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := humaecho.New(e, huma.DefaultConfig("markdown-pricer API", Version))
	handlers.RegisterInventoryRoutes(api, handlers.NewInventoryHandler(eng, s))
	handlers.RegisterPricingRoutes(api, handlers.NewPricingHandler(eng))
	handlers.RegisterTriggerRoutes(api, handlers.NewTriggerHandler(eng, eng))
	openapi.RegisterRoutes(e)

	return e
}
