package weather

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"weatherview.app/internal/ports"
	"weatherview.app/pkg/errors"
)

const outcomeSuccess = "success"

type UseCase struct {
	weatherProvider ports.WeatherProvider
	presenter       *Presenter
	logger          ports.Logger
	metrics         ports.LookupMetrics
}

type UseCaseDependencies struct {
	WeatherProvider ports.WeatherProvider
	Presenter       *Presenter
	Logger          ports.Logger
	Metrics         ports.LookupMetrics
}

func NewUseCase(deps UseCaseDependencies) (*UseCase, error) {
	if deps.WeatherProvider == nil {
		return nil, errors.NewValidationError("weather provider is required")
	}
	if deps.Presenter == nil {
		return nil, errors.NewValidationError("presenter is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}
	if deps.Metrics == nil {
		return nil, errors.NewValidationError("metrics is required")
	}

	return &UseCase{
		weatherProvider: deps.WeatherProvider,
		presenter:       deps.Presenter,
		logger:          deps.Logger,
		metrics:         deps.Metrics,
	}, nil
}

// Fetch performs exactly one provider call for the query and returns the parsed record
func (uc *UseCase) Fetch(ctx context.Context, query Query) (*Record, error) {
	if err := query.IsValid(); err != nil {
		return nil, errors.NewValidationError("invalid weather query: " + err.Error())
	}

	data, err := uc.weatherProvider.GetCurrentWeather(ctx, query.City)
	if err != nil {
		return nil, wrapProviderError(err)
	}

	record := &Record{
		TemperatureKelvin: data.TemperatureKelvin,
		ConditionCode:     data.ConditionCode,
		Description:       data.Description,
		City:              data.City,
		Timestamp:         data.Timestamp,
	}
	if err := record.IsValid(); err != nil {
		return nil, errors.NewParseError("invalid weather data from provider: "+err.Error(), nil)
	}

	return record, nil
}

// Lookup fetches the weather for the query and renders it for display.
// Every failure is recovered here and turned into an error display.
func (uc *UseCase) Lookup(ctx context.Context, query Query) DisplayModel {
	requestID := uuid.NewString()
	uc.logger.Debug("Weather lookup started",
		ports.F("request_id", requestID),
		ports.F("city", query.City))

	uc.metrics.LookupStarted()
	defer uc.metrics.LookupFinished()

	start := time.Now()
	record, err := uc.Fetch(ctx, query)
	model := uc.presenter.Render(record, err)

	outcome := outcomeSuccess
	if err != nil {
		outcome = model.Failure
		uc.logger.Warn("Weather lookup failed",
			ports.F("request_id", requestID),
			ports.F("city", query.City),
			ports.F("failure", outcome),
			ports.F("error", err.Error()))
	} else {
		uc.logger.Debug("Weather lookup completed",
			ports.F("request_id", requestID),
			ports.F("city", query.City),
			ports.F("temperature", model.Temperature),
			ports.F("icon", string(model.Icon)))
	}
	uc.metrics.RecordLookup(outcome, time.Since(start))

	return model
}

func wrapProviderError(err error) error {
	var fetchErr *ports.FetchError
	if !stderrors.As(err, &fetchErr) {
		return errors.NewExternalAPIError("weather provider failed", err)
	}

	switch fetchErr.Kind {
	case ports.FailureNotFound:
		return errors.NewNotFoundError("city not found", err)
	case ports.FailureParse:
		return errors.NewParseError("unexpected weather response", err)
	case ports.FailureCanceled:
		return errors.NewCanceledError("weather request canceled", err)
	default:
		return errors.NewExternalAPIError(fmt.Sprintf("weather provider failed: %s", fetchErr.Kind), err)
	}
}
