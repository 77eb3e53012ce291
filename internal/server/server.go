package server

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/grachmannico95/incident-replay/internal/config"
	"github.com/grachmannico95/incident-replay/internal/handler"
	"github.com/grachmannico95/incident-replay/internal/middleware"
	"github.com/grachmannico95/incident-replay/pkg/logger"
)

// Handlers groups everything the router dispatches to.
type Handlers struct {
	Health     *handler.HealthHandler
	Dashboard  *handler.DashboardHandler
	Simulation *handler.SimulationHandler
	Stream     *handler.StreamHandler
	Metrics    http.Handler
}

type Server struct {
	echo     *echo.Echo
	cfg      *config.Config
	logger   *logger.Logger
	handlers Handlers
}

func New(cfg *config.Config, log *logger.Logger, handlers Handlers) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo:     e,
		cfg:      cfg,
		logger:   log,
		handlers: handlers,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) Start() error {
	addr := s.cfg.Server.Addr()
	s.logger.Info(context.Background(), "Starting HTTP server",
		"address", addr,
	)

	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info(ctx, "Shutting down HTTP server")
	return s.echo.Shutdown(ctx)
}

func (s *Server) setupMiddleware() {
	s.echo.Use(echoMiddleware.Recover())
	s.echo.Use(echoMiddleware.CORS())
	s.echo.Use(middleware.RequestID())
	s.echo.Use(middleware.Logging(s.logger, "/health", "/metrics"))
}

func (s *Server) setupRoutes() {
	h := s.handlers

	s.echo.GET("/health", h.Health.Check)
	if h.Metrics != nil {
		s.echo.GET("/metrics", echo.WrapHandler(h.Metrics))
	}
	if h.Stream != nil {
		s.echo.GET("/ws", h.Stream.Connect)
	}

	api := s.echo.Group("/api/v1")

	api.GET("/overview", h.Dashboard.Overview)
	api.GET("/transactions", h.Dashboard.Transactions)
	api.GET("/buckets", h.Dashboard.Buckets)
	api.GET("/metrics", h.Dashboard.Metrics)
	api.GET("/processors", h.Dashboard.Processors)
	api.GET("/breakdown/countries", h.Dashboard.Countries)
	api.GET("/breakdown/methods", h.Dashboard.Methods)
	api.GET("/events", h.Dashboard.Events)
	api.GET("/incident", h.Dashboard.Incident)
	api.GET("/export", h.Dashboard.Export)
	api.GET("/dataset", h.Dashboard.Dataset)

	sim := api.Group("/simulation")
	sim.GET("", h.Simulation.Clock)
	sim.POST("/toggle", h.Simulation.Toggle)
	sim.POST("/reset", h.Simulation.Reset)
	sim.POST("/advance", h.Simulation.Advance)
	sim.POST("/seek", h.Simulation.Seek)
	sim.POST("/speed", h.Simulation.Speed)

	filters := api.Group("/filters")
	filters.GET("", h.Simulation.Filters)
	filters.PATCH("", h.Simulation.ApplyFilters)
	filters.POST("/reset", h.Simulation.ResetFilters)
	filters.POST("/countries/:country/toggle", h.Simulation.ToggleCountry)
	filters.POST("/methods/:method/toggle", h.Simulation.ToggleMethod)

	settings := api.Group("/settings")
	settings.GET("", h.Simulation.Settings)
	settings.PUT("/alert-threshold", h.Simulation.SetAlertThreshold)
	settings.POST("/comparison/toggle", h.Simulation.ToggleComparison)
}

func (s *Server) Handler() *echo.Echo {
	return s.echo
}
