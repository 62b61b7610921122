package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpadapter "github.com/couchcryptid/weather-probability-service/internal/adapter/http"
	"github.com/couchcryptid/weather-probability-service/internal/adapter/power"
	"github.com/couchcryptid/weather-probability-service/internal/domain"
	"github.com/couchcryptid/weather-probability-service/internal/service"
)

type mockAnalyzer struct {
	report            service.Report
	err               error
	readyErr          error
	lastLat           float64
	lastLon           float64
	lastBaselineYears int
}

func (m *mockAnalyzer) AnalyzeDate(_ context.Context, latitude, longitude float64, _ time.Time, baselineYears int) (service.Report, error) {
	m.lastLat = latitude
	m.lastLon = longitude
	m.lastBaselineYears = baselineYears
	return m.report, m.err
}

func (m *mockAnalyzer) CheckReadiness(_ context.Context) error { return m.readyErr }

func newTestServer(analyzer *mockAnalyzer) *httpadapter.Server {
	return httpadapter.NewServer(":0", analyzer, slog.Default())
}

func get(t *testing.T, srv *httpadapter.Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	srv.ServeHTTP(rec, req)
	return rec
}

func TestHealthzReturns200(t *testing.T) {
	rec := get(t, newTestServer(&mockAnalyzer{}), "/healthz")

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestReadyzReturns200WhenReady(t *testing.T) {
	rec := get(t, newTestServer(&mockAnalyzer{}), "/readyz")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadyzReturns503WhenNotReady(t *testing.T) {
	rec := get(t, newTestServer(&mockAnalyzer{readyErr: fmt.Errorf("not ready yet")}), "/readyz")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not ready", body["status"])
	assert.Equal(t, "not ready yet", body["error"])
}

func TestMetricsEndpoint(t *testing.T) {
	rec := get(t, newTestServer(&mockAnalyzer{}), "/metrics")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestAnalyzeReturnsReport(t *testing.T) {
	analyzer := &mockAnalyzer{
		report: service.Report{
			Location: service.Location{Latitude: 40.7128, Longitude: -74.0060},
			Date:     "2025-07-04",
			RiskAssessment: domain.RiskAssessment{
				SuitabilityScore: 92.2,
				OverallRisk:      domain.RiskLow,
			},
		},
	}
	srv := newTestServer(analyzer)

	rec := get(t, srv, "/api/v1/weather/analyze?lat=40.7128&lon=-74.0060&date=2025-07-04")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	assert.Equal(t, 40.7128, analyzer.lastLat)
	assert.Equal(t, -74.0060, analyzer.lastLon)
	assert.Equal(t, 20, analyzer.lastBaselineYears, "baseline defaults when omitted")

	var report service.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, "2025-07-04", report.Date)
	assert.Equal(t, domain.RiskLow, report.RiskAssessment.OverallRisk)
}

func TestAnalyzeBaselineYearsParam(t *testing.T) {
	analyzer := &mockAnalyzer{}
	srv := newTestServer(analyzer)

	rec := get(t, srv, "/api/v1/weather/analyze?lat=0&lon=0&date=2025-07-04&baseline_years=30")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 30, analyzer.lastBaselineYears)
}

func TestAnalyzeValidation(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"missing lat", "lon=0&date=2025-07-04"},
		{"lat not a number", "lat=abc&lon=0&date=2025-07-04"},
		{"lat out of range", "lat=91&lon=0&date=2025-07-04"},
		{"lon out of range", "lat=0&lon=-181&date=2025-07-04"},
		{"missing date", "lat=0&lon=0"},
		{"bad date format", "lat=0&lon=0&date=07/04/2025"},
		{"baseline too small", "lat=0&lon=0&date=2025-07-04&baseline_years=4"},
		{"baseline too large", "lat=0&lon=0&date=2025-07-04&baseline_years=41"},
		{"baseline not a number", "lat=0&lon=0&date=2025-07-04&baseline_years=twenty"},
	}

	srv := newTestServer(&mockAnalyzer{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, srv, "/api/v1/weather/analyze?"+tt.query)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestAnalyzeErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"no historical data", fmt.Errorf("07-04: %w", domain.ErrNoHistoricalData), http.StatusNotFound},
		{"upstream timeout", power.ErrUpstreamTimeout, http.StatusGatewayTimeout},
		{"upstream status error", &power.StatusError{Code: 503}, http.StatusBadGateway},
		{"malformed upstream payload", power.ErrMalformedResponse, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(&mockAnalyzer{err: tt.err})
			rec := get(t, srv, "/api/v1/weather/analyze?lat=0&lon=0&date=2025-07-04")
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestLocationsEndpoint(t *testing.T) {
	rec := get(t, newTestServer(&mockAnalyzer{}), "/api/v1/weather/locations")

	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Locations []struct {
			Name      string  `json:"name"`
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"locations"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Locations, 8)
	assert.Equal(t, "New York, NY", body.Locations[0].Name)
	assert.Equal(t, 40.7128, body.Locations[0].Latitude)
}
