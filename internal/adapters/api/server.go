// Package api provides HTTP adapters for the hexagonal architecture
// These adapters handle incoming HTTP requests and translate them to use cases
package api

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"weatherview.app/internal/core/weather"
	"weatherview.app/internal/ports"
	"weatherview.app/pkg/errors"
)

const defaultAwaitTimeout = 25 * time.Second

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	AssetsDir string
	// AwaitTimeout caps how long a long-poll request waits for a lookup
	AwaitTimeout time.Duration
}

// HTTPServerAdapter implements HTTP server using Gin framework
type HTTPServerAdapter struct {
	router         *gin.Engine
	config         ServerConfig
	weatherUseCase WeatherUseCase
	dispatcher     LookupDispatcher
	healthChecker  ports.SystemHealthChecker
	failureView    *weather.Presenter
}

// Use case interfaces that the HTTP adapter depends on
type WeatherUseCase interface {
	Lookup(ctx context.Context, query weather.Query) weather.DisplayModel
}

type LookupDispatcher interface {
	Open() (weather.View, error)
	Submit(sessionID string, query weather.Query) (uint64, error)
	View(sessionID string) (weather.View, error)
	Await(ctx context.Context, sessionID string, seq uint64) (weather.View, error)
	Forget(sessionID string) error
}

// ServerOptions represents options for creating the HTTP server
type ServerOptions struct {
	Config         ServerConfig
	WeatherUseCase WeatherUseCase
	Dispatcher     LookupDispatcher
	HealthChecker  ports.SystemHealthChecker
	// MetricsHandler serves /metrics; defaults to the global Prometheus registry
	MetricsHandler http.Handler
}

// NewHTTPServerAdapter creates a new HTTP server adapter
func NewHTTPServerAdapter(opts ServerOptions) (*HTTPServerAdapter, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid server options: %w", err)
	}

	if opts.Config.AwaitTimeout <= 0 {
		opts.Config.AwaitTimeout = defaultAwaitTimeout
	}
	if opts.MetricsHandler == nil {
		opts.MetricsHandler = promhttp.Handler()
	}

	router := gin.Default()

	server := &HTTPServerAdapter{
		router:         router,
		config:         opts.Config,
		weatherUseCase: opts.WeatherUseCase,
		dispatcher:     opts.Dispatcher,
		healthChecker:  opts.HealthChecker,
		failureView:    weather.NewPresenter(""),
	}

	server.setupRoutes(opts.MetricsHandler)
	return server, nil
}

// Validate checks if all required dependencies are provided
func (opts *ServerOptions) Validate() error {
	if opts.WeatherUseCase == nil {
		return errors.NewValidationError("weather use case is required")
	}
	if opts.Dispatcher == nil {
		return errors.NewValidationError("lookup dispatcher is required")
	}
	if opts.HealthChecker == nil {
		return errors.NewValidationError("health checker is required")
	}
	if opts.Config.AssetsDir == "" {
		return errors.NewValidationError("assets directory is required")
	}
	return nil
}

// setupRoutes configures all HTTP routes
func (s *HTTPServerAdapter) setupRoutes(metricsHandler http.Handler) {
	api := s.router.Group("/api")
	{
		api.GET("/weather", s.getWeather)
		api.GET("/health", s.getHealth)

		sessions := api.Group("/sessions")
		sessions.POST("", s.openSession)
		sessions.GET("/:id", s.getSession)
		sessions.POST("/:id/lookup", s.submitLookup)
		sessions.DELETE("/:id", s.forgetSession)
	}

	s.router.GET("/metrics", gin.WrapH(metricsHandler))
	s.setupStaticFiles()
}

// GetRouter returns the router for testing purposes
func (s *HTTPServerAdapter) GetRouter() *gin.Engine {
	return s.router
}

// setupStaticFiles serves the view page, icons, background and app icon
func (s *HTTPServerAdapter) setupStaticFiles() {
	dir := s.config.AssetsDir
	s.router.Static("/static", filepath.Join(dir, "static"))
	s.router.StaticFile("/", filepath.Join(dir, "index.html"))
	s.router.StaticFile("/favicon.ico", filepath.Join(dir, "static", "app-icon.svg"))
}
