package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"weatherview.app/internal/core/weather"
	"weatherview.app/internal/mocks"
	"weatherview.app/internal/ports"
)

// stubUseCase renders a fixed result per city and counts calls
type stubUseCase struct {
	mu      sync.Mutex
	results map[string]weather.DisplayModel
	calls   []string
	block   chan struct{}
}

func (s *stubUseCase) Lookup(ctx context.Context, query weather.Query) weather.DisplayModel {
	s.mu.Lock()
	s.calls = append(s.calls, query.City)
	block := s.block
	model, ok := s.results[query.City]
	s.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return weather.DisplayModel{Failure: ports.FailureCanceled.String()}
		}
	}
	if !ok {
		return weather.DisplayModel{Failure: ports.FailureNotFound.String(), Error: "Not found:\nCity not found"}
	}
	return model
}

type stubHealthChecker struct {
	results map[string]ports.HealthStatus
}

func (s *stubHealthChecker) CheckAll(ctx context.Context) map[string]ports.HealthStatus {
	return s.results
}

func allowLogs(t *testing.T) *mocks.Logger {
	logger := mocks.NewLogger(t)
	for n := 0; n <= 4; n++ {
		fields := make([]interface{}, n)
		for i := range fields {
			fields[i] = mock.Anything
		}
		logger.EXPECT().Debug(mock.Anything, fields...).Maybe()
		logger.EXPECT().Info(mock.Anything, fields...).Maybe()
		logger.EXPECT().Warn(mock.Anything, fields...).Maybe()
		logger.EXPECT().Error(mock.Anything, fields...).Maybe()
	}
	return logger
}

func writeAssets(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "static", "icons"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>weather</html>"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "static", "icons", "clear-day.svg"), []byte("<svg/>"), 0644))
	return dir
}

type testServer struct {
	server     *HTTPServerAdapter
	useCase    *stubUseCase
	dispatcher *weather.Dispatcher
}

func setupTestServer(t *testing.T, useCase *stubUseCase) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, RegisterValidators())

	dispatcher, err := weather.NewDispatcher(weather.DispatcherDependencies{
		Looker:     useCase,
		Logger:     allowLogs(t),
		SessionTTL: 30 * time.Minute,
	})
	require.NoError(t, err)
	t.Cleanup(dispatcher.Close)

	server, err := NewHTTPServerAdapter(ServerOptions{
		Config:         ServerConfig{AssetsDir: writeAssets(t)},
		WeatherUseCase: useCase,
		Dispatcher:     dispatcher,
		HealthChecker: &stubHealthChecker{results: map[string]ports.HealthStatus{
			"weatherAPI": {Component: "weatherAPI", Status: "healthy"},
		}},
		MetricsHandler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("weather_lookups_total 1\n"))
		}),
	})
	require.NoError(t, err)

	return &testServer{server: server, useCase: useCase, dispatcher: dispatcher}
}

func (ts *testServer) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	ts.server.GetRouter().ServeHTTP(w, req)
	return w
}
