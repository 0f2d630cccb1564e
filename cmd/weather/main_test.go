package main

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weatherview.app/internal/app"
	"weatherview.app/internal/config"
	"weatherview.app/internal/core/weather"
)

type fixedLooker struct {
	model weather.DisplayModel
	query weather.Query
}

func (f *fixedLooker) Lookup(ctx context.Context, query weather.Query) weather.DisplayModel {
	f.query = query
	return f.model
}

func TestRun_Success(t *testing.T) {
	l := &fixedLooker{model: weather.DisplayModel{
		OK:          true,
		Temperature: "21°C",
		Icon:        weather.IconClearDay,
		Description: "Clear sky",
	}}
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), l, []string{"New", "York"}, &stdout, &stderr)

	assert.Equal(t, 0, code)
	assert.Equal(t, "New York", l.query.City)
	assert.Equal(t, "21°C\nicon: clear-day\nClear sky\n", stdout.String())
	assert.Empty(t, stderr.String())
}

func TestRun_Failure(t *testing.T) {
	l := &fixedLooker{model: weather.DisplayModel{Error: "Not found:\nCity not found", Failure: "not_found"}}
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), l, []string{"Atlantis"}, &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Empty(t, stdout.String())
	assert.Equal(t, "Not found:\nCity not found\n", stderr.String())
}

func TestFormatDisplay_NoIcon(t *testing.T) {
	out := formatDisplay(weather.DisplayModel{OK: true, Temperature: "0°C", Description: "Volcanic ash"})
	assert.Equal(t, "0°C\nVolcanic ash\n", out)
}

func TestCLIWeatherConfig_NoLogFile(t *testing.T) {
	cfg := config.WeatherConfig{
		APIKey:        "key",
		EnableLogging: true,
		LogFilePath:   "logs/weather_provider.log",
	}

	got := cliWeatherConfig(cfg)

	assert.Empty(t, got.LogFilePath)
	assert.True(t, got.EnableLogging)
	assert.Equal(t, "key", got.APIKey)
	assert.Equal(t, "logs/weather_provider.log", cfg.LogFilePath)
}

func TestCLIDependencies_CreateNoLogFile(t *testing.T) {
	dir := t.TempDir()
	logDir := filepath.Join(dir, "logs")

	cfg := &config.Config{
		Weather: config.WeatherConfig{
			APIKey:                "key",
			BaseURL:               "https://api.openweathermap.org/data/2.5",
			RequestTimeoutSeconds: 5,
			EnableLogging:         true,
			LogFilePath:           filepath.Join(logDir, "weather_provider.log"),
		},
		Lookup: config.LookupConfig{SessionTTLMinutes: 30},
	}

	deps, err := app.NewDependencyContainer(app.DependencyConfig{Weather: cliWeatherConfig(cfg.Weather)}, cfg)
	require.NoError(t, err)
	require.NoError(t, deps.Cleanup())

	assert.NoDirExists(t, logDir)
}

func TestReportEnvFile(t *testing.T) {
	var buf bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(previous) })

	reportEnvFile(nil)
	assert.Zero(t, buf.Len())

	reportEnvFile(errors.New("open .env: no such file or directory"))
	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Contains(t, buf.String(), "No .env file found")
}
