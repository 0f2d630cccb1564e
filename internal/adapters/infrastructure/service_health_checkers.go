package infrastructure

import (
	"context"
	"strings"

	"weatherview.app/internal/ports"
)

// WeatherAPIHealthChecker reports whether the weather provider is wired and configured.
// It does not call the upstream API, so health probes never spend request quota.
type WeatherAPIHealthChecker struct {
	weatherProvider ports.WeatherProvider
	config          ports.WeatherConfig
}

// NewWeatherAPIHealthChecker creates a new weather API health checker
func NewWeatherAPIHealthChecker(weatherProvider ports.WeatherProvider, config ports.WeatherConfig) *WeatherAPIHealthChecker {
	return &WeatherAPIHealthChecker{weatherProvider: weatherProvider, config: config}
}

// Check verifies weather provider availability
func (w *WeatherAPIHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	status := ports.HealthStatus{
		Component: "weatherAPI",
		Status:    "healthy",
		Details: map[string]interface{}{
			"baseURL":        w.config.BaseURL,
			"timeoutSeconds": w.config.RequestTimeout.Seconds(),
			"maxRedirects":   w.config.MaxRedirects,
			"requestLogging": w.config.EnableLogging,
		},
	}

	if w.weatherProvider == nil {
		status.Status = "unhealthy"
		status.Error = "weather provider is not available"
		return status
	}
	status.Details["provider"] = w.weatherProvider.GetProviderName()

	if !strings.HasPrefix(w.config.BaseURL, "http://") && !strings.HasPrefix(w.config.BaseURL, "https://") {
		status.Status = "unhealthy"
		status.Error = "weather API base URL is not an http(s) URL"
	}

	return status
}

// SessionCounter exposes the number of live view sessions
type SessionCounter interface {
	Sessions() int
}

// LookupSessionsHealthChecker reports the state of the lookup dispatcher
type LookupSessionsHealthChecker struct {
	counter SessionCounter
}

// NewLookupSessionsHealthChecker creates a new lookup sessions health checker
func NewLookupSessionsHealthChecker(counter SessionCounter) *LookupSessionsHealthChecker {
	return &LookupSessionsHealthChecker{counter: counter}
}

// Check reports the active session count
func (l *LookupSessionsHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	if l.counter == nil {
		return ports.HealthStatus{
			Component: "lookups",
			Status:    "unhealthy",
			Error:     "lookup dispatcher is not available",
		}
	}
	return ports.HealthStatus{
		Component: "lookups",
		Status:    "healthy",
		Details: map[string]interface{}{
			"activeSessions": l.counter.Sessions(),
		},
	}
}
