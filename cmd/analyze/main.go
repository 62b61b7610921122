// Command analyze fetches the historical baseline for one coordinate and
// prints the analysis report as JSON. Useful for spot-checking probabilities
// without standing up the server.
//
// Usage:
//
//	go run ./cmd/analyze -lat 40.7128 -lon -74.0060 -date 2025-07-04
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/weather-probability-service/internal/adapter/power"
	"github.com/couchcryptid/weather-probability-service/internal/config"
	"github.com/couchcryptid/weather-probability-service/internal/domain"
	"github.com/couchcryptid/weather-probability-service/internal/observability"
	"github.com/couchcryptid/weather-probability-service/internal/service"
)

func main() {
	lat := flag.Float64("lat", 0, "latitude in decimal degrees")
	lon := flag.Float64("lon", 0, "longitude in decimal degrees")
	date := flag.String("date", "", "target date (YYYY-MM-DD)")
	baseline := flag.Int("baseline-years", 0, "baseline window in years (0 uses the configured default)")
	flag.Parse()

	if *date == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*lat, *lon, *date, *baseline); code != 0 {
		os.Exit(code)
	}
}

func run(lat, lon float64, date string, baseline int) int {
	target, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid date %q: %v\n", date, err)
		return 1
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		return 1
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	fetcher := power.NewClient(cfg, metrics, logger)
	svc := service.New(fetcher, nil, clockwork.NewRealClock(), logger, metrics, cfg.BaselineYears)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	report, err := svc.AnalyzeDate(ctx, lat, lon, target, baseline)
	if err != nil {
		fmt.Fprintf(os.Stderr, "analysis failed: %v\n", err)
		return 1
	}

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "encode report: %v\n", err)
		return 1
	}
	fmt.Println(string(out))
	return 0
}
