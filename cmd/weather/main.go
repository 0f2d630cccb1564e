// Command weather looks up the current weather for one city and prints it.
//
//	weather <city>
//
// It exits with status 1 when the lookup fails.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/joho/godotenv"
	"weatherview.app/internal/app"
	"weatherview.app/internal/config"
	"weatherview.app/internal/core/weather"
	"weatherview.app/pkg/logger"
)

type looker interface {
	Lookup(ctx context.Context, query weather.Query) weather.DisplayModel
}

func main() {
	loadErr := godotenv.Load()

	// Diagnostics go to stderr so stdout only carries the result
	level := logger.ParseLevel(envOr("LOG_LEVEL", "warn"))
	slog.SetDefault(logger.NewWithWriter(os.Stderr, level).Logger)
	reportEnvFile(loadErr)

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: weather <city>")
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "configuration error:", err)
		os.Exit(1)
	}

	deps, err := app.NewDependencyContainer(app.DependencyConfig{Weather: cliWeatherConfig(cfg.Weather)}, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "startup error:", err)
		os.Exit(1)
	}

	ports := deps.ApplicationPorts()
	useCase, err := weather.NewUseCase(weather.UseCaseDependencies{
		WeatherProvider: ports.WeatherProvider,
		Presenter:       weather.NewPresenter(""),
		Logger:          ports.Logger,
		Metrics:         ports.LookupMetrics,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "startup error:", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, useCase, os.Args[1:], os.Stdout, os.Stderr)
	stop()

	if err := deps.Cleanup(); err != nil {
		slog.Warn("Error releasing resources", "error", err)
	}
	os.Exit(code)
}

// reportEnvFile logs a failed .env load; a missing file is normal for the CLI
func reportEnvFile(err error) {
	if err != nil {
		slog.Debug("No .env file found or error loading it", "error", err)
	}
}

// cliWeatherConfig keeps request logging on the stderr logger instead of a log file
func cliWeatherConfig(cfg config.WeatherConfig) config.WeatherConfig {
	cfg.LogFilePath = ""
	return cfg
}

// run performs one lookup for the city given by args and returns the exit code
func run(ctx context.Context, l looker, args []string, stdout, stderr io.Writer) int {
	city := strings.Join(args, " ")
	model := l.Lookup(ctx, weather.Query{City: city})

	if !model.OK {
		fmt.Fprintln(stderr, model.Error)
		return 1
	}
	fmt.Fprint(stdout, formatDisplay(model))
	return 0
}

// formatDisplay prints the three display regions: temperature, icon and caption
func formatDisplay(model weather.DisplayModel) string {
	var b strings.Builder
	b.WriteString(model.Temperature)
	b.WriteString("\n")
	if model.Icon != weather.IconNone {
		fmt.Fprintf(&b, "icon: %s\n", model.Icon)
	}
	if model.Description != "" {
		b.WriteString(model.Description)
		b.WriteString("\n")
	}
	return b.String()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
