// Package power is the client for the NASA POWER temporal daily point API.
// It throttles outbound calls to a minimum interval, maps transport
// failures onto a typed taxonomy, and normalizes the nested wire format
// into flat domain.DailyRecord values.
package power

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/weather-probability-service/internal/config"
	"github.com/couchcryptid/weather-probability-service/internal/domain"
	"github.com/couchcryptid/weather-probability-service/internal/observability"
)

// DefaultParameters is the parameter set requested when the caller does not
// supply one. Beyond the six analyzed variables it includes surface
// pressure, specific humidity, and cloud amount, which ride along in the
// records for downstream consumers.
var DefaultParameters = []string{
	domain.ParamTemperature,
	domain.ParamMaxTemperature,
	domain.ParamMinTemperature,
	domain.ParamPrecipitation,
	domain.ParamWindSpeed,
	domain.ParamHumidity,
	"PS",
	"QV2M",
	"CLOUD_AMT",
}

// Client fetches daily climate records for a coordinate and date range.
//
// Calls through one Client serialize on a single last-request timestamp:
// whichever caller holds the mutex waits out the remaining interval before
// dispatching, so the upstream never sees two requests closer together than
// minInterval. The clock is injected so tests advance time without real
// delays.
type Client struct {
	baseURL     string
	community   string
	httpClient  *http.Client
	clock       clockwork.Clock
	logger      *slog.Logger
	metrics     *observability.Metrics
	minInterval time.Duration

	mu          sync.Mutex
	lastRequest time.Time
}

// NewClient creates a NASA POWER client from config.
func NewClient(cfg *config.Config, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		baseURL:     cfg.PowerBaseURL,
		community:   cfg.PowerCommunity,
		httpClient:  &http.Client{Timeout: cfg.PowerTimeout},
		clock:       clockwork.NewRealClock(),
		logger:      logger,
		metrics:     metrics,
		minInterval: cfg.PowerRateInterval,
	}
}

// FetchDailyRecords retrieves normalized daily records for the coordinate
// over [startDate, endDate] (inclusive, "YYYY-MM-DD"). A nil params slice
// requests DefaultParameters. Blocks until the rate-limit interval since the
// previous call has elapsed; cancelling the context during that wait aborts
// without consuming the slot.
func (c *Client) FetchDailyRecords(ctx context.Context, latitude, longitude float64, startDate, endDate string, params []string) ([]domain.DailyRecord, error) {
	if len(params) == 0 {
		params = DefaultParameters
	}

	if err := c.waitTurn(ctx); err != nil {
		return nil, err
	}

	fullURL := c.buildURL(latitude, longitude, startDate, endDate, params)
	c.logger.Debug("fetching NASA POWER data", "lat", latitude, "lon", longitude, "start", startDate, "end", endDate)

	start := time.Now()
	resp, err := c.doRequest(ctx, fullURL)
	c.metrics.UpstreamRequestDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}

	records, err := normalizeRecords(resp, params)
	if err != nil {
		c.metrics.UpstreamRequests.WithLabelValues("malformed").Inc()
		return nil, err
	}

	c.metrics.UpstreamRequests.WithLabelValues("success").Inc()
	c.logger.Info("fetched daily records", "count", len(records), "lat", latitude, "lon", longitude)
	return records, nil
}

// waitTurn blocks until the minimum interval since the last dispatched call
// has elapsed. The timestamp only advances once a call is actually going
// out: a caller cancelled mid-wait must not consume the slot.
func (c *Client) waitTurn(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.lastRequest.IsZero() {
		if wait := c.minInterval - c.clock.Since(c.lastRequest); wait > 0 {
			c.metrics.RateLimitWaitDuration.Observe(wait.Seconds())
			timer := c.clock.NewTimer(wait)
			defer timer.Stop()
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-timer.Chan():
			}
		}
	}

	c.lastRequest = c.clock.Now()
	return nil
}

func (c *Client) buildURL(latitude, longitude float64, startDate, endDate string, params []string) string {
	values := url.Values{}
	values.Set("parameters", strings.Join(params, ","))
	values.Set("community", c.community)
	values.Set("latitude", formatCoord(latitude))
	values.Set("longitude", formatCoord(longitude))
	values.Set("start", strings.ReplaceAll(startDate, "-", ""))
	values.Set("end", strings.ReplaceAll(endDate, "-", ""))
	values.Set("format", "JSON")
	return c.baseURL + "?" + values.Encode()
}

func (c *Client) doRequest(ctx context.Context, fullURL string) (powerResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return powerResponse{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			c.metrics.UpstreamRequests.WithLabelValues("timeout").Inc()
			return powerResponse{}, ErrUpstreamTimeout
		}
		c.metrics.UpstreamRequests.WithLabelValues("error").Inc()
		return powerResponse{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.metrics.UpstreamRequests.WithLabelValues("error").Inc()
		return powerResponse{}, &StatusError{Code: resp.StatusCode}
	}

	var decoded powerResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		c.metrics.UpstreamRequests.WithLabelValues("malformed").Inc()
		return powerResponse{}, ErrMalformedResponse
	}
	return decoded, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// formatCoord renders decimal degrees; four places is ~11m precision, well
// inside the upstream's 0.5° grid.
func formatCoord(v float64) string {
	return fmt.Sprintf("%.4f", v)
}
