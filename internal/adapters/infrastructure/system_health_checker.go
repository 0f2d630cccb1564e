package infrastructure

import (
	"context"

	"weatherview.app/internal/ports"
)

// SystemHealthChecker aggregates all health checks
type SystemHealthChecker struct {
	weatherAPIChecker ports.HealthChecker
	lookupsChecker    ports.HealthChecker
	configProvider    ports.ConfigProvider
}

// SystemHealthCheckerConfig holds the configuration for creating a system health checker
type SystemHealthCheckerConfig struct {
	WeatherAPIChecker ports.HealthChecker
	LookupsChecker    ports.HealthChecker
	ConfigProvider    ports.ConfigProvider
}

// NewSystemHealthChecker creates a new system health checker
func NewSystemHealthChecker(config SystemHealthCheckerConfig) *SystemHealthChecker {
	return &SystemHealthChecker{
		weatherAPIChecker: config.WeatherAPIChecker,
		lookupsChecker:    config.LookupsChecker,
		configProvider:    config.ConfigProvider,
	}
}

// CheckAll performs health checks on all components
func (s *SystemHealthChecker) CheckAll(ctx context.Context) map[string]ports.HealthStatus {
	results := make(map[string]ports.HealthStatus)

	if s.weatherAPIChecker != nil {
		results["weatherAPI"] = s.weatherAPIChecker.Check(ctx)
	}

	if s.lookupsChecker != nil {
		results["lookups"] = s.lookupsChecker.Check(ctx)
	}

	if s.configProvider != nil {
		lookupConfig := s.configProvider.GetLookupConfig()
		results["config"] = ports.HealthStatus{
			Component: "config",
			Status:    "healthy",
			Details: map[string]interface{}{
				"port":              s.configProvider.GetServerConfig().Port,
				"sessionTTLMinutes": lookupConfig.SessionTTL.Minutes(),
				"assetsDir":         s.configProvider.GetAssetsConfig().Dir,
			},
		}
	}

	return results
}
