package config

import (
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"weatherview.app/pkg/errors"
)

const (
	maxPortNumber         = 65535
	maxRequestTimeoutSecs = 120
	maxRedirects          = 50
	maxSessionTTLMinutes  = 1440
)

// Config represents the application configuration structure
type Config struct {
	Server  ServerConfig  `split_words:"true"`
	Weather WeatherConfig `split_words:"true"`
	Lookup  LookupConfig  `split_words:"true"`
	Assets  AssetsConfig  `split_words:"true"`
	Log     LogConfig     `split_words:"true"`
}

type ServerConfig struct {
	Port int `envconfig:"SERVER_PORT" default:"8080"`
}

type WeatherConfig struct {
	APIKey                string `envconfig:"OPENWEATHER_API_KEY" required:"true"`
	BaseURL               string `envconfig:"OPENWEATHER_API_BASE_URL" default:"https://api.openweathermap.org/data/2.5"`
	RequestTimeoutSeconds int    `envconfig:"WEATHER_REQUEST_TIMEOUT_SECONDS" default:"10"`
	MaxRedirects          int    `envconfig:"WEATHER_MAX_REDIRECTS" default:"10"`
	EnableLogging         bool   `envconfig:"WEATHER_ENABLE_LOGGING" default:"true"`
	LogFilePath           string `envconfig:"WEATHER_LOG_FILE_PATH" default:"logs/weather_provider.log"`
}

// RequestTimeout returns the outbound request timeout as a duration
func (w WeatherConfig) RequestTimeout() time.Duration {
	return time.Duration(w.RequestTimeoutSeconds) * time.Second
}

type LookupConfig struct {
	SessionTTLMinutes int `envconfig:"LOOKUP_SESSION_TTL_MINUTES" default:"30"`
}

// SessionTTL returns how long an idle view session is kept
func (l LookupConfig) SessionTTL() time.Duration {
	return time.Duration(l.SessionTTLMinutes) * time.Minute
}

type AssetsConfig struct {
	Dir string `envconfig:"ASSETS_DIR" default:"./public"`
}

type LogConfig struct {
	Level string `envconfig:"LOG_LEVEL" default:"info"`
}

// LoadConfig reads the configuration from the environment once at startup
func LoadConfig() (*Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, errors.NewConfigurationError("error processing config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Weather.Validate(); err != nil {
		return err
	}
	if err := c.Lookup.Validate(); err != nil {
		return err
	}
	if err := c.Assets.Validate(); err != nil {
		return err
	}
	return nil
}

func (s *ServerConfig) Validate() error {
	if s.Port < 1 || s.Port > maxPortNumber {
		return errors.NewConfigurationError("SERVER_PORT must be between 1 and 65535", nil)
	}
	return nil
}

func (w *WeatherConfig) Validate() error {
	if strings.TrimSpace(w.APIKey) == "" {
		return errors.NewConfigurationError("OPENWEATHER_API_KEY cannot be empty", nil)
	}
	if w.BaseURL == "" {
		return errors.NewConfigurationError("OPENWEATHER_API_BASE_URL cannot be empty", nil)
	}
	if !strings.HasPrefix(w.BaseURL, "http://") && !strings.HasPrefix(w.BaseURL, "https://") {
		return errors.NewConfigurationError("OPENWEATHER_API_BASE_URL must start with http:// or https://", nil)
	}
	if w.RequestTimeoutSeconds < 1 || w.RequestTimeoutSeconds > maxRequestTimeoutSecs {
		return errors.NewConfigurationError("WEATHER_REQUEST_TIMEOUT_SECONDS must be between 1 and 120", nil)
	}
	if w.MaxRedirects < 0 || w.MaxRedirects > maxRedirects {
		return errors.NewConfigurationError("WEATHER_MAX_REDIRECTS must be between 0 and 50", nil)
	}
	if w.EnableLogging && w.LogFilePath == "" {
		return errors.NewConfigurationError("WEATHER_LOG_FILE_PATH cannot be empty when WEATHER_ENABLE_LOGGING is set", nil)
	}
	return nil
}

func (l *LookupConfig) Validate() error {
	if l.SessionTTLMinutes < 1 || l.SessionTTLMinutes > maxSessionTTLMinutes {
		return errors.NewConfigurationError("LOOKUP_SESSION_TTL_MINUTES must be between 1 and 1440 minutes", nil)
	}
	return nil
}

func (a *AssetsConfig) Validate() error {
	if a.Dir == "" {
		return errors.NewConfigurationError("ASSETS_DIR cannot be empty", nil)
	}
	return nil
}
