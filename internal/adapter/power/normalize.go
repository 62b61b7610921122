package power

import (
	"fmt"
	"sort"

	"github.com/couchcryptid/weather-probability-service/internal/domain"
)

// missingSentinel is the upstream's marker for a missing daily value. It is
// translated to an absent value here and never escapes the adapter.
const missingSentinel = -999.0

// NASA POWER wire format: properties.parameter.<code>.<YYYYMMDD> -> value.
type powerResponse struct {
	Properties struct {
		Parameter map[string]map[string]*float64 `json:"parameter"`
	} `json:"properties"`
}

// normalizeRecords flattens a POWER response into one DailyRecord per date.
// The date axis comes from the first requested parameter present in the
// payload, sorted ascending; every parameter's value for that date is copied
// unless it is missing or equals the sentinel, in which case the record
// carries an absent entry instead.
func normalizeRecords(resp powerResponse, params []string) ([]domain.DailyRecord, error) {
	parameter := resp.Properties.Parameter
	if len(parameter) == 0 {
		return nil, fmt.Errorf("missing properties.parameter: %w", ErrMalformedResponse)
	}

	dates := dateAxis(parameter, params)

	records := make([]domain.DailyRecord, 0, len(dates))
	for _, compact := range dates {
		rec := domain.DailyRecord{
			Date:   expandDate(compact),
			Values: make(map[string]*float64, len(parameter)),
		}
		for code, series := range parameter {
			v, ok := series[compact]
			if !ok || v == nil || *v == missingSentinel {
				rec.Values[code] = nil
				continue
			}
			value := *v
			rec.Values[code] = &value
		}
		records = append(records, rec)
	}
	return records, nil
}

// dateAxis picks the authoritative set of dates: the per-date keys of the
// first requested parameter that the payload actually contains (falling back
// to the lexicographically first code so the choice stays deterministic over
// Go's map ordering), sorted ascending.
func dateAxis(parameter map[string]map[string]*float64, params []string) []string {
	var series map[string]*float64
	for _, code := range params {
		if s, ok := parameter[code]; ok {
			series = s
			break
		}
	}
	if series == nil {
		codes := make([]string, 0, len(parameter))
		for code := range parameter {
			codes = append(codes, code)
		}
		sort.Strings(codes)
		series = parameter[codes[0]]
	}

	dates := make([]string, 0, len(series))
	for d := range series {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}

// expandDate reshapes the upstream's compact YYYYMMDD key into the
// YYYY-MM-DD form DailyRecord carries. Keys of unexpected length pass
// through untouched; the analysis filter skips what it cannot parse.
func expandDate(compact string) string {
	if len(compact) != 8 {
		return compact
	}
	return compact[:4] + "-" + compact[4:6] + "-" + compact[6:8]
}
