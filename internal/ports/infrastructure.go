package ports

import "time"

// WeatherConfig represents outbound weather client configuration
type WeatherConfig struct {
	BaseURL        string
	RequestTimeout time.Duration
	MaxRedirects   int
	EnableLogging  bool
}

// ServerConfig represents server configuration
type ServerConfig struct {
	Port int
}

// LookupConfig represents view session configuration
type LookupConfig struct {
	SessionTTL time.Duration
}

// AssetsConfig represents static asset configuration
type AssetsConfig struct {
	Dir string
}

// ConfigProvider defines the contract for configuration management
type ConfigProvider interface {
	GetWeatherConfig() WeatherConfig
	GetServerConfig() ServerConfig
	GetLookupConfig() LookupConfig
	GetAssetsConfig() AssetsConfig
}

// Logger defines the contract for structured logging
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
}

// Field represents a log field
type Field struct {
	Key   string
	Value interface{}
}

// F creates a log field
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}
