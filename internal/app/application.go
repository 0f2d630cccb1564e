package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"weatherview.app/internal/adapters/api"
	"weatherview.app/internal/adapters/infrastructure"
	"weatherview.app/internal/config"
	"weatherview.app/internal/core/weather"
	"weatherview.app/internal/ports"
)

const iconBaseURL = "/static/icons"

type Application struct {
	config *config.Config

	// Use Cases
	weatherUseCase *weather.UseCase
	dispatcher     *weather.Dispatcher

	// Adapters
	httpServer *http.Server
	router     *gin.Engine

	// Infrastructure
	deps  *DependencyContainer
	ports *ports.ApplicationPorts
}

func NewApplication() (*Application, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	deps, err := NewDependencyContainer(DependencyConfig{Weather: cfg.Weather}, cfg)
	if err != nil {
		return nil, fmt.Errorf("create dependency container: %w", err)
	}

	return NewApplicationWithDependencies(cfg, deps)
}

// NewApplicationWithDependencies creates an application with provided dependencies (for testing)
func NewApplicationWithDependencies(cfg *config.Config, depContainer *DependencyContainer) (*Application, error) {
	app := &Application{
		config: cfg,
		deps:   depContainer,
		ports:  depContainer.ApplicationPorts(),
	}

	if err := app.initializeUseCases(); err != nil {
		return nil, fmt.Errorf("initialize use cases: %w", err)
	}

	if err := app.initializeAdapters(); err != nil {
		app.dispatcher.Close()
		return nil, fmt.Errorf("initialize adapters: %w", err)
	}

	return app, nil
}

func (a *Application) initializeUseCases() error {
	slog.Info("Initializing use cases...")

	weatherUseCase, err := weather.NewUseCase(weather.UseCaseDependencies{
		WeatherProvider: a.ports.WeatherProvider,
		Presenter:       weather.NewPresenter(iconBaseURL),
		Logger:          a.ports.Logger,
		Metrics:         a.ports.LookupMetrics,
	})
	if err != nil {
		return fmt.Errorf("create weather use case: %w", err)
	}
	a.weatherUseCase = weatherUseCase

	dispatcher, err := weather.NewDispatcher(weather.DispatcherDependencies{
		Looker:     weatherUseCase,
		Logger:     a.ports.Logger,
		SessionTTL: a.ports.ConfigProvider.GetLookupConfig().SessionTTL,
	})
	if err != nil {
		return fmt.Errorf("create lookup dispatcher: %w", err)
	}
	a.dispatcher = dispatcher

	slog.Info("Use cases initialized successfully")
	return nil
}

func (a *Application) initializeAdapters() error {
	slog.Info("Initializing adapters...")

	if err := api.RegisterValidators(); err != nil {
		slog.Warn("Failed to register city validator", "error", err)
	}

	configProvider := a.ports.ConfigProvider
	systemHealthChecker := infrastructure.NewSystemHealthChecker(infrastructure.SystemHealthCheckerConfig{
		WeatherAPIChecker: infrastructure.NewWeatherAPIHealthChecker(a.ports.WeatherProvider, configProvider.GetWeatherConfig()),
		LookupsChecker:    infrastructure.NewLookupSessionsHealthChecker(a.dispatcher),
		ConfigProvider:    configProvider,
	})

	httpAdapter, err := api.NewHTTPServerAdapter(api.ServerOptions{
		Config: api.ServerConfig{
			AssetsDir: configProvider.GetAssetsConfig().Dir,
		},
		WeatherUseCase: a.weatherUseCase,
		Dispatcher:     a.dispatcher,
		HealthChecker:  systemHealthChecker,
		MetricsHandler: a.deps.MetricsHandler(),
	})
	if err != nil {
		return fmt.Errorf("create HTTP adapter: %w", err)
	}

	a.router = httpAdapter.GetRouter()

	// WriteTimeout leaves room for the long-poll session endpoint
	a.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.config.Server.Port),
		Handler:      a.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	slog.Info("Adapters initialized successfully")
	return nil
}

func (a *Application) Start(ctx context.Context) error {
	slog.Info("Starting HTTP server", "port", a.config.Server.Port)
	if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("HTTP server error: %w", err)
	}
	return nil
}

func (a *Application) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down application...")

	if err := a.httpServer.Shutdown(ctx); err != nil {
		slog.Error("Error shutting down HTTP server", "error", err)
		return fmt.Errorf("shutdown HTTP server: %w", err)
	}

	a.dispatcher.Close()

	if err := a.deps.Cleanup(); err != nil {
		slog.Warn("Error releasing resources", "error", err)
	}

	slog.Info("Application shutdown complete")
	return nil
}

// Config returns the application configuration
func (a *Application) Config() *config.Config {
	return a.config
}

// GetRouter returns the Gin router for testing
func (a *Application) GetRouter() *gin.Engine {
	return a.router
}

// GetWeatherUseCase returns the weather use case for testing
func (a *Application) GetWeatherUseCase() *weather.UseCase {
	return a.weatherUseCase
}

// GetDispatcher returns the lookup dispatcher for testing
func (a *Application) GetDispatcher() *weather.Dispatcher {
	return a.dispatcher
}
