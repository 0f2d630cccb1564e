package app

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"weatherview.app/internal/adapters/external"
	"weatherview.app/internal/adapters/infrastructure"
	"weatherview.app/internal/config"
	"weatherview.app/internal/ports"
)

type DependencyContainer struct {
	config     DependencyConfig
	registry   *prometheus.Registry
	fileLogger *infrastructure.FileLoggerAdapter
	ports      *ports.ApplicationPorts
}

type DependencyConfig struct {
	Weather config.WeatherConfig
	// HTTPClient replaces the outbound client; used by tests to point at a fake API
	HTTPClient external.HTTPClient
}

func NewDependencyContainer(depConfig DependencyConfig, appConfig *config.Config) (*DependencyContainer, error) {
	container := &DependencyContainer{
		config:   depConfig,
		registry: prometheus.NewRegistry(),
	}

	if err := container.initializeMetrics(); err != nil {
		return nil, fmt.Errorf("initialize metrics: %w", err)
	}

	if err := container.initializePorts(appConfig); err != nil {
		return nil, fmt.Errorf("initialize ports: %w", err)
	}

	return container, nil
}

func (c *DependencyContainer) initializeMetrics() error {
	if err := c.registry.Register(collectors.NewGoCollector()); err != nil {
		return fmt.Errorf("register go collector: %w", err)
	}
	if err := c.registry.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		return fmt.Errorf("register process collector: %w", err)
	}
	return nil
}

func (c *DependencyContainer) initializePorts(appConfig *config.Config) error {
	slog.Info("Initializing ports...")

	var logger ports.Logger = infrastructure.NewSlogLoggerAdapter(slog.Default())

	var weatherProvider ports.WeatherProvider = external.NewOpenWeatherMapProviderAdapter(external.OpenWeatherMapProviderParams{
		APIKey:         c.config.Weather.APIKey,
		BaseURL:        c.config.Weather.BaseURL,
		RequestTimeout: c.config.Weather.RequestTimeout(),
		MaxRedirects:   c.config.Weather.MaxRedirects,
		Logger:         logger,
		Client:         c.config.HTTPClient,
	})

	// Request logging goes to its own JSON-lines file; slog is the fallback
	if c.config.Weather.EnableLogging {
		var requestLogger ports.Logger = logger
		if c.config.Weather.LogFilePath != "" {
			fileLogger, err := infrastructure.NewFileLoggerAdapter(c.config.Weather.LogFilePath)
			if err != nil {
				slog.Warn("Failed to create file logger, falling back to slog", "error", err)
			} else {
				c.fileLogger = fileLogger
				requestLogger = fileLogger
				slog.Info("File logging enabled", "path", c.config.Weather.LogFilePath)
			}
		}
		weatherProvider = external.NewWeatherProviderLoggingDecorator(weatherProvider, requestLogger)
		slog.Info("Weather provider logging enabled")
	}

	c.ports = &ports.ApplicationPorts{
		WeatherProvider: weatherProvider,
		LookupMetrics:   infrastructure.NewPrometheusLookupMetrics(c.registry),

		ConfigProvider: infrastructure.NewConfigProviderAdapter(appConfig),
		Logger:         logger,
	}

	slog.Info("Ports initialized successfully")
	return nil
}

func (c *DependencyContainer) ApplicationPorts() *ports.ApplicationPorts {
	return c.ports
}

// MetricsHandler serves the container's Prometheus registry
func (c *DependencyContainer) MetricsHandler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// Cleanup releases resources held by the container
func (c *DependencyContainer) Cleanup() error {
	if c.fileLogger != nil {
		return c.fileLogger.Close()
	}
	return nil
}
