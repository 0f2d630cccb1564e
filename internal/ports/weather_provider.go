package ports

import (
	"context"
	"fmt"
	"time"
)

// WeatherData represents the current conditions returned by a provider
type WeatherData struct {
	TemperatureKelvin float64
	ConditionCode     int
	Description       string
	City              string
	Timestamp         time.Time
}

// FailureKind categorizes why a weather fetch did not succeed
type FailureKind int

const (
	FailureUnknown FailureKind = iota
	FailureBadRequest
	FailureUnauthorized
	FailureForbidden
	FailureNotFound
	FailureServerError
	FailureBadGateway
	FailureServiceUnavailable
	FailureGatewayTimeout
	FailureConnection
	FailureTimeout
	FailureTooManyRedirects
	FailureOtherHTTP
	FailureOtherRequest
	FailureParse
	FailureCanceled
)

var failureKindNames = map[FailureKind]string{
	FailureBadRequest:         "bad_request",
	FailureUnauthorized:       "unauthorized",
	FailureForbidden:          "forbidden",
	FailureNotFound:           "not_found",
	FailureServerError:        "server_error",
	FailureBadGateway:         "bad_gateway",
	FailureServiceUnavailable: "service_unavailable",
	FailureGatewayTimeout:     "gateway_timeout",
	FailureConnection:         "connection_error",
	FailureTimeout:            "timeout",
	FailureTooManyRedirects:   "too_many_redirects",
	FailureOtherHTTP:          "other_http_error",
	FailureOtherRequest:       "other_request_error",
	FailureParse:              "parse_error",
	FailureCanceled:           "canceled",
}

// String returns the snake_case name used in logs, metrics and API payloads
func (k FailureKind) String() string {
	if name, ok := failureKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// FailureKindFromStatus maps an HTTP status code to its failure kind.
// Codes without a dedicated kind map to FailureOtherHTTP.
func FailureKindFromStatus(status int) FailureKind {
	switch status {
	case 400:
		return FailureBadRequest
	case 401:
		return FailureUnauthorized
	case 403:
		return FailureForbidden
	case 404:
		return FailureNotFound
	case 500:
		return FailureServerError
	case 502:
		return FailureBadGateway
	case 503:
		return FailureServiceUnavailable
	case 504:
		return FailureGatewayTimeout
	default:
		return FailureOtherHTTP
	}
}

// FetchError is the categorized failure returned by a WeatherProvider
type FetchError struct {
	Kind       FailureKind
	StatusCode int
	Detail     string
	Cause      error
}

func (e *FetchError) Error() string {
	msg := e.Kind.String()
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

// WeatherProvider defines the contract for current weather providers.
// Implementations perform exactly one attempt per call and return either
// data or a *FetchError.
type WeatherProvider interface {
	GetCurrentWeather(ctx context.Context, city string) (*WeatherData, error)
	GetProviderName() string
}

// LookupMetrics records the outcome of weather lookups
type LookupMetrics interface {
	RecordLookup(outcome string, duration time.Duration)
	LookupStarted()
	LookupFinished()
}
