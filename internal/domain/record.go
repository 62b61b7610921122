package domain

import "time"

// NASA POWER parameter codes for the variables the analysis understands.
const (
	ParamTemperature    = "T2M"
	ParamMaxTemperature = "T2M_MAX"
	ParamMinTemperature = "T2M_MIN"
	ParamPrecipitation  = "PRECTOTCORR"
	ParamWindSpeed      = "WS10M"
	ParamHumidity       = "RH2M"
)

// DateLayout is the wire format for record dates, e.g. "2024-04-26".
const DateLayout = "2006-01-02"

// DailyRecord is one day of observations at a single coordinate. Values maps
// a parameter code to its measurement; a nil entry (or a missing key) marks
// an absent value. Records are built once by the normalizer and never
// mutated afterwards.
type DailyRecord struct {
	Date   string              `json:"date"`
	Values map[string]*float64 `json:"values"`
}

// Value returns the measurement for a parameter and whether it is present.
func (r DailyRecord) Value(param string) (float64, bool) {
	v, ok := r.Values[param]
	if !ok || v == nil {
		return 0, false
	}
	return *v, true
}

// FilterByDay selects the records whose calendar month and day match the
// target, across all years, preserving input order. Records with malformed
// dates are skipped rather than failing the whole cohort: partial corruption
// in a multi-decade feed must not abort the analysis.
func FilterByDay(records []DailyRecord, month, day int) []DailyRecord {
	cohort := make([]DailyRecord, 0, len(records)/365+1)
	for _, rec := range records {
		date, err := time.Parse(DateLayout, rec.Date)
		if err != nil {
			continue
		}
		if int(date.Month()) == month && date.Day() == day {
			cohort = append(cohort, rec)
		}
	}
	return cohort
}

// presentValues extracts one parameter's present values from a cohort,
// preserving record order. Each variable is filtered independently, so
// sample sizes may differ across variables within one cohort.
func presentValues(records []DailyRecord, param string) []float64 {
	values := make([]float64, 0, len(records))
	for _, rec := range records {
		if v, ok := rec.Value(param); ok {
			values = append(values, v)
		}
	}
	return values
}
