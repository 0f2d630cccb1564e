package ports

// ApplicationPorts aggregates all ports for dependency injection
type ApplicationPorts struct {
	WeatherProvider WeatherProvider
	LookupMetrics   LookupMetrics

	ConfigProvider ConfigProvider
	Logger         Logger
}
