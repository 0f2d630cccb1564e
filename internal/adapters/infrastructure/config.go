package infrastructure

import (
	"weatherview.app/internal/config"
	"weatherview.app/internal/ports"
)

// ConfigProviderAdapter implements the ConfigProvider port
type ConfigProviderAdapter struct {
	config *config.Config
}

// NewConfigProviderAdapter creates a new config provider adapter
func NewConfigProviderAdapter(cfg *config.Config) *ConfigProviderAdapter {
	return &ConfigProviderAdapter{
		config: cfg,
	}
}

// GetServerConfig returns server configuration
func (c *ConfigProviderAdapter) GetServerConfig() ports.ServerConfig {
	return ports.ServerConfig{
		Port: c.config.Server.Port,
	}
}

// GetWeatherConfig returns the outbound weather client configuration.
// The API key stays inside the config package and is never exposed here.
func (c *ConfigProviderAdapter) GetWeatherConfig() ports.WeatherConfig {
	return ports.WeatherConfig{
		BaseURL:        c.config.Weather.BaseURL,
		RequestTimeout: c.config.Weather.RequestTimeout(),
		MaxRedirects:   c.config.Weather.MaxRedirects,
		EnableLogging:  c.config.Weather.EnableLogging,
	}
}

// GetLookupConfig returns view session configuration
func (c *ConfigProviderAdapter) GetLookupConfig() ports.LookupConfig {
	return ports.LookupConfig{
		SessionTTL: c.config.Lookup.SessionTTL(),
	}
}

// GetAssetsConfig returns static asset configuration
func (c *ConfigProviderAdapter) GetAssetsConfig() ports.AssetsConfig {
	return ports.AssetsConfig{
		Dir: c.config.Assets.Dir,
	}
}
