// Package service composes the NASA POWER fetcher and the domain analysis
// into the one call the transport layer exposes: analyze a coordinate and
// calendar date against the historical baseline.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/weather-probability-service/internal/domain"
	"github.com/couchcryptid/weather-probability-service/internal/observability"
)

// historicalDataStart is the first year NASA POWER serves daily data.
const historicalDataStart = 1981

// Fetcher retrieves normalized daily records for a coordinate/date range.
type Fetcher interface {
	FetchDailyRecords(ctx context.Context, latitude, longitude float64, startDate, endDate string, params []string) ([]domain.DailyRecord, error)
}

// Publisher delivers completed analyses downstream. A nil Publisher on the
// Service disables publishing.
type Publisher interface {
	PublishAnalysis(ctx context.Context, latitude, longitude float64, date string, result domain.AnalysisResult) error
}

// Location echoes the analyzed coordinate in the report.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Metadata describes the data source and the window the analysis covered.
type Metadata struct {
	DataSource         string `json:"data_source"`
	Model              string `json:"model"`
	SpatialResolution  string `json:"spatial_resolution"`
	TemporalResolution string `json:"temporal_resolution"`
	HistoricalPeriod   string `json:"historical_period"`
	TotalYears         int    `json:"total_years"`
	TotalRecords       int    `json:"total_records"`
	AnalysisTimestamp  string `json:"analysis_timestamp"`
}

// Report is the full response envelope for one analysis.
type Report struct {
	Location           Location                  `json:"location"`
	Date               string                    `json:"date"`
	Probabilities      domain.ProbabilitySet     `json:"probabilities"`
	HistoricalAverages domain.HistoricalAverages `json:"historical_averages"`
	RiskAssessment     domain.RiskAssessment     `json:"risk_assessment"`
	Thresholds         domain.ThresholdSet       `json:"thresholds"`
	Metadata           Metadata                  `json:"metadata"`
}

// Service runs end-to-end analyses. It holds no per-call state; the only
// shared mutable state in the whole path is the fetcher's rate limiter.
type Service struct {
	fetcher       Fetcher
	publisher     Publisher
	clock         clockwork.Clock
	logger        *slog.Logger
	metrics       *observability.Metrics
	baselineYears int
}

// New creates a Service. Pass a nil publisher to disable report publishing.
func New(fetcher Fetcher, publisher Publisher, clock clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics, baselineYears int) *Service {
	return &Service{
		fetcher:       fetcher,
		publisher:     publisher,
		clock:         clock,
		logger:        logger,
		metrics:       metrics,
		baselineYears: baselineYears,
	}
}

// AnalyzeDate fetches the historical window for the coordinate and analyzes
// the target's calendar day. baselineYears <= 0 selects the configured
// default. The window is [max(1981, currentYear−baselineYears), currentYear−1]:
// only complete years enter the baseline.
//
// Fetch failures propagate unchanged; domain.ErrNoHistoricalData is the only
// error raised here directly.
func (s *Service) AnalyzeDate(ctx context.Context, latitude, longitude float64, target time.Time, baselineYears int) (Report, error) {
	if baselineYears <= 0 {
		baselineYears = s.baselineYears
	}

	now := s.clock.Now()
	startYear := now.Year() - baselineYears
	if startYear < historicalDataStart {
		startYear = historicalDataStart
	}
	endYear := now.Year() - 1

	startDate := fmt.Sprintf("%d-01-01", startYear)
	endDate := fmt.Sprintf("%d-12-31", endYear)

	s.logger.Info("analyzing weather probabilities",
		"lat", latitude, "lon", longitude,
		"date", target.Format(domain.DateLayout),
		"window", fmt.Sprintf("%d-%d", startYear, endYear),
	)

	begin := time.Now()
	records, err := s.fetcher.FetchDailyRecords(ctx, latitude, longitude, startDate, endDate, nil)
	if err != nil {
		s.metrics.Analyses.WithLabelValues("upstream_error").Inc()
		return Report{}, err
	}

	result, err := domain.Analyze(records, int(target.Month()), target.Day())
	if err != nil {
		s.metrics.Analyses.WithLabelValues("no_data").Inc()
		return Report{}, err
	}

	s.metrics.Analyses.WithLabelValues("success").Inc()
	s.metrics.AnalysisDuration.Observe(time.Since(begin).Seconds())
	s.metrics.CohortSize.Observe(float64(result.LocationStats.TotalRecords))

	report := Report{
		Location:           Location{Latitude: latitude, Longitude: longitude},
		Date:               target.Format(domain.DateLayout),
		Probabilities:      result.Probabilities,
		HistoricalAverages: result.HistoricalAverages,
		RiskAssessment:     result.RiskAssessment,
		Thresholds:         result.Thresholds,
		Metadata: Metadata{
			DataSource:         "NASA POWER (power.larc.nasa.gov)",
			Model:              "MERRA-2 Reanalysis",
			SpatialResolution:  "0.5° × 0.625°",
			TemporalResolution: "Daily",
			HistoricalPeriod:   fmt.Sprintf("%d-%d", startYear, endYear),
			TotalYears:         result.LocationStats.TotalYears,
			TotalRecords:       result.LocationStats.TotalRecords,
			AnalysisTimestamp:  now.UTC().Format(time.RFC3339),
		},
	}

	s.publish(ctx, latitude, longitude, report.Date, result)
	return report, nil
}

// publish sends the analysis downstream, best-effort: a publish failure is
// logged and counted but never fails the caller's analysis.
func (s *Service) publish(ctx context.Context, latitude, longitude float64, date string, result domain.AnalysisResult) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishAnalysis(ctx, latitude, longitude, date, result); err != nil {
		s.logger.Warn("publish analysis failed", "error", err, "date", date)
		s.metrics.PublishErrors.Inc()
		return
	}
	s.metrics.ReportsPublished.Inc()
}

// CheckReadiness reports whether the service can serve traffic. The analysis
// path is stateless, so readiness reduces to having been wired up at all.
func (s *Service) CheckReadiness(_ context.Context) error {
	return nil
}
