// Package http exposes the weather probability API plus health, readiness,
// and metrics endpoints.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/weather-probability-service/internal/adapter/power"
	"github.com/couchcryptid/weather-probability-service/internal/domain"
	"github.com/couchcryptid/weather-probability-service/internal/service"
)

// Baseline window bounds accepted on the analyze endpoint, in years.
const (
	minBaselineYears     = 5
	maxBaselineYears     = 40
	defaultBaselineYears = 20
)

// Analyzer runs one analysis per request and reports readiness.
type Analyzer interface {
	AnalyzeDate(ctx context.Context, latitude, longitude float64, target time.Time, baselineYears int) (service.Report, error)
	CheckReadiness(ctx context.Context) error
}

// Server exposes the analysis API and operational endpoints.
type Server struct {
	httpServer *http.Server
	analyzer   Analyzer
	logger     *slog.Logger
}

// NewServer creates an HTTP server with the API and operational routes.
func NewServer(addr string, analyzer Analyzer, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      requestID(logger, mux),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		analyzer: analyzer,
		logger:   logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /api/v1/weather/analyze", s.handleAnalyze)
	mux.HandleFunc("GET /api/v1/weather/locations", s.handleLocations)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

// requestID tags every request with an ID and logs its outcome.
func requestID(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-ID", id)
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Debug("request handled",
			"request_id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start),
		)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.analyzer.CheckReadiness(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	lat, err := parseFloat(q.Get("lat"), -90, 90)
	if err != nil {
		writeError(w, http.StatusBadRequest, "lat must be a number in [-90, 90]")
		return
	}
	lon, err := parseFloat(q.Get("lon"), -180, 180)
	if err != nil {
		writeError(w, http.StatusBadRequest, "lon must be a number in [-180, 180]")
		return
	}
	target, err := time.Parse(domain.DateLayout, q.Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	baselineYears := defaultBaselineYears
	if raw := q.Get("baseline_years"); raw != "" {
		baselineYears, err = strconv.Atoi(raw)
		if err != nil || baselineYears < minBaselineYears || baselineYears > maxBaselineYears {
			writeError(w, http.StatusBadRequest, "baseline_years must be an integer in [5, 40]")
			return
		}
	}

	report, err := s.analyzer.AnalyzeDate(r.Context(), lat, lon, target, baselineYears)
	if err != nil {
		s.writeAnalyzeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// writeAnalyzeError maps the analysis error taxonomy onto status codes: no
// cohort is the caller's problem, upstream timeouts and failures are gateway
// conditions.
func (s *Server) writeAnalyzeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNoHistoricalData):
		writeError(w, http.StatusNotFound, "no historical data for the requested date")
	case errors.Is(err, power.ErrUpstreamTimeout):
		writeError(w, http.StatusGatewayTimeout, "weather data source timed out")
	default:
		s.logger.Error("analysis failed", "error", err)
		writeError(w, http.StatusBadGateway, "weather data source unavailable")
	}
}

// sampleLocation is an entry on the locations endpoint.
type sampleLocation struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

var sampleLocations = []sampleLocation{
	{"New York, NY", 40.7128, -74.0060},
	{"Los Angeles, CA", 34.0522, -118.2437},
	{"Chicago, IL", 41.8781, -87.6298},
	{"Phoenix, AZ", 33.4484, -112.0740},
	{"Miami, FL", 25.7617, -80.1918},
	{"London, UK", 51.5074, -0.1278},
	{"Tokyo, Japan", 35.6762, 139.6503},
	{"Sydney, Australia", -33.8688, 151.2093},
}

func (s *Server) handleLocations(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]sampleLocation{"locations": sampleLocations})
}

func parseFloat(raw string, min, max float64) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if v < min || v > max {
		return 0, errors.New("out of range")
	}
	return v, nil
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
