package app

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weatherview.app/internal/config"
	"weatherview.app/internal/core/weather"
)

func fakeOpenWeatherMap(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("q") {
		case "London":
			_, _ = w.Write([]byte(`{"cod":200,"name":"London","main":{"temp":288.15},"weather":[{"id":803,"description":"broken clouds"}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"cod":"404","message":"city not found"}`))
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func newTestApplication(t *testing.T) (*Application, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	assets := filepath.Join(dir, "public")
	require.NoError(t, os.MkdirAll(filepath.Join(assets, "static", "icons"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(assets, "index.html"), []byte("<html></html>"), 0644))

	logPath := filepath.Join(dir, "logs", "weather_provider.log")
	cfg := &config.Config{
		Server: config.ServerConfig{Port: 8080},
		Weather: config.WeatherConfig{
			APIKey:                "test-key",
			BaseURL:               fakeOpenWeatherMap(t).URL,
			RequestTimeoutSeconds: 5,
			MaxRedirects:          10,
			EnableLogging:         true,
			LogFilePath:           logPath,
		},
		Lookup: config.LookupConfig{SessionTTLMinutes: 30},
		Assets: config.AssetsConfig{Dir: assets},
		Log:    config.LogConfig{Level: "debug"},
	}
	require.NoError(t, cfg.Validate())

	deps, err := NewDependencyContainer(DependencyConfig{Weather: cfg.Weather}, cfg)
	require.NoError(t, err)

	application, err := NewApplicationWithDependencies(cfg, deps)
	require.NoError(t, err)
	t.Cleanup(func() {
		application.dispatcher.Close()
		_ = deps.Cleanup()
	})

	return application, logPath
}

func serve(app *Application, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	app.GetRouter().ServeHTTP(w, req)
	return w
}

func TestApplication_SyncLookup(t *testing.T) {
	application, logPath := newTestApplication(t)

	w := serve(application, http.MethodGet, "/api/weather?city=London", "")

	require.Equal(t, http.StatusOK, w.Code)
	var model weather.DisplayModel
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &model))
	assert.Equal(t, "15°C", model.Temperature)
	assert.Equal(t, weather.IconCloudy, model.Icon)
	assert.Equal(t, "/static/icons/cloudy.svg", model.IconURL)
	assert.Equal(t, "Broken clouds", model.Description)

	content, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Weather API request completed")
	assert.NotContains(t, string(content), "test-key")
}

func TestApplication_NotFound(t *testing.T) {
	application, _ := newTestApplication(t)

	w := serve(application, http.MethodGet, "/api/weather?city=Atlantis", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	var model weather.DisplayModel
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &model))
	assert.Equal(t, "Not found:\nCity not found", model.Error)
}

func TestApplication_SessionFlow(t *testing.T) {
	application, _ := newTestApplication(t)

	w := serve(application, http.MethodPost, "/api/sessions", "")
	require.Equal(t, http.StatusCreated, w.Code)
	var opened weather.View
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &opened))

	w = serve(application, http.MethodPost, "/api/sessions/"+opened.SessionID+"/lookup", `{"city":"London"}`)
	require.Equal(t, http.StatusAccepted, w.Code)

	w = serve(application, http.MethodGet, fmt.Sprintf("/api/sessions/%s?seq=1&wait=true", opened.SessionID), "")
	require.Equal(t, http.StatusOK, w.Code)
	var view weather.View
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, weather.ViewReady, view.State)
	require.NotNil(t, view.Display)
	assert.Equal(t, "15°C", view.Display.Temperature)
}

func TestApplication_MetricsAndHealth(t *testing.T) {
	application, _ := newTestApplication(t)
	serve(application, http.MethodGet, "/api/weather?city=London", "")

	w := serve(application, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `weather_lookups_total{outcome="success"} 1`)
	assert.Contains(t, w.Body.String(), "go_goroutines")

	w = serve(application, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "openweathermap")
}

func TestApplication_Shutdown(t *testing.T) {
	application, _ := newTestApplication(t)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	require.NoError(t, application.Shutdown(ctx))

	_, err := application.GetDispatcher().Open()
	assert.Error(t, err)
}

func TestApplication_StartAndShutdown(t *testing.T) {
	application, _ := newTestApplication(t)
	application.httpServer.Addr = "127.0.0.1:0"

	done := make(chan error, 1)
	go func() { done <- application.Start(context.Background()) }()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, application.Shutdown(ctx))

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Start did not return after Shutdown")
	}
}

func TestDependencyContainer_RequestLoggingWithoutFile(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{
		Weather: config.WeatherConfig{
			APIKey:                "test-key",
			BaseURL:               "https://api.openweathermap.org/data/2.5",
			RequestTimeoutSeconds: 5,
			EnableLogging:         true,
		},
		Lookup: config.LookupConfig{SessionTTLMinutes: 30},
		Assets: config.AssetsConfig{Dir: dir},
	}

	deps, err := NewDependencyContainer(DependencyConfig{Weather: cfg.Weather}, cfg)
	require.NoError(t, err)

	assert.Equal(t, "logged(openweathermap)", deps.ApplicationPorts().WeatherProvider.GetProviderName())
	assert.Nil(t, deps.fileLogger)
	assert.NoError(t, deps.Cleanup())
}
