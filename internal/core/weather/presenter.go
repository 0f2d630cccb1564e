package weather

import (
	stderrors "errors"
	"fmt"
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"weatherview.app/internal/ports"
	"weatherview.app/pkg/errors"
)

// DisplayModel is everything a view needs to render one lookup result
type DisplayModel struct {
	OK          bool    `json:"ok"`
	Temperature string  `json:"temperature,omitempty"`
	Celsius     int     `json:"celsius"`
	Fahrenheit  float64 `json:"fahrenheit"`
	Icon        Icon    `json:"icon"`
	IconURL     string  `json:"iconUrl,omitempty"`
	Description string  `json:"description"`
	Error       string  `json:"error,omitempty"`
	Failure     string  `json:"failure,omitempty"`
	ClearInput  bool    `json:"clearInput"`
}

var failureMessages = map[ports.FailureKind]string{
	ports.FailureBadRequest:         "Bad request:\nPlease check your input",
	ports.FailureUnauthorized:       "Unauthorized:\nInvalid API key",
	ports.FailureForbidden:          "Forbidden:\nAccess is denied",
	ports.FailureNotFound:           "Not found:\nCity not found",
	ports.FailureServerError:        "Internal Server Error:\nPlease try again later",
	ports.FailureBadGateway:         "Bad Gateway:\nInvalid response from the server",
	ports.FailureServiceUnavailable: "Service Unavailable:\nServer is down",
	ports.FailureGatewayTimeout:     "Gateway Timeout:\nNo response from the server",
	ports.FailureConnection:         "Connection Error:\nCheck your Internet connection",
	ports.FailureTimeout:            "Timeout Error:\nThe request timed out",
	ports.FailureTooManyRedirects:   "Too many Redirects:\nCheck the URL",
	ports.FailureParse:              "Parse Error:\nUnexpected response from the server",
	ports.FailureCanceled:           "Request Canceled:\nA newer query replaced this one",
}

// FailureMessage returns the fixed user facing text for a failure.
// OtherHTTP and OtherRequest carry the detail of the underlying error.
func FailureMessage(kind ports.FailureKind, detail string) string {
	switch kind {
	case ports.FailureOtherHTTP:
		return "HTTP Error occurred:\n" + detail
	case ports.FailureOtherRequest, ports.FailureUnknown:
		return "Request Error:\n" + detail
	}
	return failureMessages[kind]
}

// Presenter converts lookup results into display models
type Presenter struct {
	iconBaseURL string
}

// NewPresenter creates a presenter. iconBaseURL prefixes icon file names; empty leaves IconURL unset.
func NewPresenter(iconBaseURL string) *Presenter {
	return &Presenter{iconBaseURL: strings.TrimSuffix(iconBaseURL, "/")}
}

// Render produces the display model for a record or a failure
func (p *Presenter) Render(record *Record, err error) DisplayModel {
	if err != nil {
		return p.renderFailure(err)
	}
	if record == nil {
		return p.renderFailure(&ports.FetchError{Kind: ports.FailureParse, Detail: "empty record"})
	}
	return p.renderRecord(record)
}

func (p *Presenter) renderRecord(record *Record) DisplayModel {
	celsius := roundCelsius(record.Celsius())
	icon, _ := SelectIcon(record.ConditionCode)

	model := DisplayModel{
		OK:          true,
		Temperature: fmt.Sprintf("%d°C", celsius),
		Celsius:     celsius,
		Fahrenheit:  record.Fahrenheit(),
		Icon:        icon,
		Description: Capitalize(record.Description),
		ClearInput:  true,
	}
	if icon != IconNone && p.iconBaseURL != "" {
		model.IconURL = p.iconBaseURL + "/" + icon.File()
	}
	return model
}

func (p *Presenter) renderFailure(err error) DisplayModel {
	kind, detail := classifyFailure(err)
	return DisplayModel{
		OK:      false,
		Icon:    IconNone,
		Error:   FailureMessage(kind, detail),
		Failure: kind.String(),
	}
}

// classifyFailure finds the failure kind for any error returned by the lookup path
func classifyFailure(err error) (ports.FailureKind, string) {
	var fetchErr *ports.FetchError
	if stderrors.As(err, &fetchErr) {
		detail := fetchErr.Detail
		if detail == "" && fetchErr.Cause != nil {
			detail = fetchErr.Cause.Error()
		}
		return fetchErr.Kind, detail
	}

	switch errors.TypeOf(err) {
	case errors.ValidationError:
		return ports.FailureBadRequest, ""
	case errors.ParseError:
		return ports.FailureParse, ""
	case errors.CanceledError:
		return ports.FailureCanceled, ""
	}
	return ports.FailureOtherRequest, err.Error()
}

// roundCelsius rounds half to even and never yields negative zero
func roundCelsius(c float64) int {
	return int(math.RoundToEven(c))
}

// Capitalize upper-cases the first letter and lower-cases the rest
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	first, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(first)) + strings.ToLower(s[size:])
}
