// Package external provides adapters for external services.
// These adapters implement the weather provider port.
package external

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"weatherview.app/internal/ports"
	"weatherview.app/pkg/errors"
)

const (
	defaultOpenWeatherMapBaseURL = "https://api.openweathermap.org/data/2.5"
	defaultRequestTimeout        = 10 * time.Second
	defaultMaxRedirects          = 10
	maxResponseBytes             = 1 << 20
)

var errTooManyRedirects = stderrors.New("stopped after too many redirects")

// HTTPClient interface for HTTP requests (for testing)
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// OpenWeatherMapProviderAdapter implements WeatherProvider port for OpenWeatherMap
type OpenWeatherMapProviderAdapter struct {
	apiKey  string
	baseURL string
	client  HTTPClient
	logger  ports.Logger
}

// OpenWeatherMapProviderParams holds parameters for creating OpenWeatherMap provider
type OpenWeatherMapProviderParams struct {
	APIKey         string
	BaseURL        string
	RequestTimeout time.Duration
	MaxRedirects   int
	Logger         ports.Logger
	// Client overrides the HTTP client built from RequestTimeout and MaxRedirects
	Client HTTPClient
}

// responseCode accepts "cod" as either a JSON number or a numeric string
type responseCode int

func (c *responseCode) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(bytes.TrimSpace(data)), `"`)
	if raw == "" || raw == "null" {
		*c = 0
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("invalid cod %q: %w", raw, err)
	}
	*c = responseCode(n)
	return nil
}

// OpenWeatherMapResponse represents the response from the current weather endpoint
type OpenWeatherMapResponse struct {
	Cod     responseCode `json:"cod"`
	Message string       `json:"message"`
	Name    string       `json:"name"`
	Main    *struct {
		Temp *float64 `json:"temp"`
	} `json:"main"`
	Weather []struct {
		ID          *int    `json:"id"`
		Description *string `json:"description"`
	} `json:"weather"`
}

// NewOpenWeatherMapProviderAdapter creates a new OpenWeatherMap provider adapter
func NewOpenWeatherMapProviderAdapter(params OpenWeatherMapProviderParams) ports.WeatherProvider {
	baseURL := strings.TrimSuffix(params.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultOpenWeatherMapBaseURL
	}

	client := params.Client
	if client == nil {
		client = newHTTPClient(params.RequestTimeout, params.MaxRedirects)
	}

	return &OpenWeatherMapProviderAdapter{
		apiKey:  params.APIKey,
		baseURL: baseURL,
		client:  client,
		logger:  params.Logger,
	}
}

func newHTTPClient(timeout time.Duration, maxRedirects int) *http.Client {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	if maxRedirects < 0 {
		maxRedirects = defaultMaxRedirects
	}

	return &http.Client{
		Timeout: timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) > maxRedirects {
				return errTooManyRedirects
			}
			return nil
		},
	}
}

// GetCurrentWeather performs one request for the city and classifies the outcome
func (p *OpenWeatherMapProviderAdapter) GetCurrentWeather(ctx context.Context, city string) (*ports.WeatherData, error) {
	if strings.TrimSpace(city) == "" {
		return nil, errors.NewValidationError("city cannot be empty")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.requestURL(city), nil)
	if err != nil {
		return nil, &ports.FetchError{Kind: ports.FailureOtherRequest, Detail: "build request", Cause: err}
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			p.logger.Warn("Failed to close OpenWeatherMap response body", ports.F("error", closeErr))
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, classifyTransportError(err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp.StatusCode, resp.Status, errorMessage(body))
	}

	var apiResp OpenWeatherMapResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, &ports.FetchError{Kind: ports.FailureParse, StatusCode: resp.StatusCode, Detail: "decode response", Cause: err}
	}

	if apiResp.Cod != http.StatusOK {
		code := int(apiResp.Cod)
		return nil, statusError(code, fmt.Sprintf("%d %s", code, http.StatusText(code)), apiResp.Message)
	}

	return toWeatherData(city, &apiResp)
}

// GetProviderName returns the name of this weather provider
func (p *OpenWeatherMapProviderAdapter) GetProviderName() string {
	return "openweathermap"
}

func (p *OpenWeatherMapProviderAdapter) requestURL(city string) string {
	query := url.Values{}
	query.Set("q", city)
	query.Set("appid", p.apiKey)
	return p.baseURL + "/weather?" + query.Encode()
}

func toWeatherData(city string, resp *OpenWeatherMapResponse) (*ports.WeatherData, error) {
	if resp.Main == nil || resp.Main.Temp == nil {
		return nil, &ports.FetchError{Kind: ports.FailureParse, StatusCode: http.StatusOK, Detail: "missing main.temp"}
	}
	if len(resp.Weather) == 0 {
		return nil, &ports.FetchError{Kind: ports.FailureParse, StatusCode: http.StatusOK, Detail: "missing weather[0]"}
	}
	condition := resp.Weather[0]
	if condition.ID == nil || condition.Description == nil {
		return nil, &ports.FetchError{Kind: ports.FailureParse, StatusCode: http.StatusOK, Detail: "missing weather[0].id or description"}
	}

	name := resp.Name
	if name == "" {
		name = city
	}

	return &ports.WeatherData{
		TemperatureKelvin: *resp.Main.Temp,
		ConditionCode:     *condition.ID,
		Description:       *condition.Description,
		City:              name,
		Timestamp:         time.Now(),
	}, nil
}

func statusError(code int, status, message string) *ports.FetchError {
	kind := ports.FailureKindFromStatus(code)
	detail := status
	if kind == ports.FailureOtherHTTP && message != "" {
		detail = status + ": " + message
	} else if message != "" {
		detail = message
	}
	return &ports.FetchError{Kind: kind, StatusCode: code, Detail: detail}
}

// errorMessage extracts the "message" field of an error body, if any
func errorMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Message
}

// classifyTransportError maps a client error to its failure kind. Dial
// failures count as connection errors even when they time out, and so does
// a server hanging up before it answers.
func classifyTransportError(err error) *ports.FetchError {
	kind := ports.FailureOtherRequest

	var opErr *net.OpError
	var dnsErr *net.DNSError
	var netErr net.Error

	switch {
	case stderrors.Is(err, errTooManyRedirects):
		kind = ports.FailureTooManyRedirects
	case stderrors.Is(err, context.Canceled):
		kind = ports.FailureCanceled
	case stderrors.As(err, &dnsErr):
		kind = ports.FailureConnection
	case stderrors.As(err, &opErr) && opErr.Op == "dial":
		kind = ports.FailureConnection
	case stderrors.Is(err, io.EOF), stderrors.Is(err, io.ErrUnexpectedEOF):
		kind = ports.FailureConnection
	case stderrors.Is(err, context.DeadlineExceeded):
		kind = ports.FailureTimeout
	case stderrors.As(err, &netErr) && netErr.Timeout():
		kind = ports.FailureTimeout
	case stderrors.As(err, &opErr):
		kind = ports.FailureConnection
	}

	return &ports.FetchError{Kind: kind, Cause: stripRequestURL(err)}
}

// stripRequestURL drops the *url.Error wrapper, whose message carries the API key
func stripRequestURL(err error) error {
	var urlErr *url.Error
	if stderrors.As(err, &urlErr) && urlErr.Err != nil {
		return urlErr.Err
	}
	return err
}
