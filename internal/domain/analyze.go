package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrNoHistoricalData is returned when no record in the supplied history
// matches the target calendar day. There is no partial result to salvage;
// the caller is expected to surface this as "not found".
var ErrNoHistoricalData = errors.New("no historical data available for this date")

// LocationStats describes the cohort an analysis was computed from.
type LocationStats struct {
	TotalYears   int    `json:"total_years"`
	TotalRecords int    `json:"total_records"`
	DateAnalyzed string `json:"date_analyzed"`
}

// HistoricalAverages carries the rounded cohort means per variable.
// Precipitation keeps two decimals; daily totals are often fractions of a
// millimeter.
type HistoricalAverages struct {
	Temperature    float64 `json:"temperature"`
	MaxTemperature float64 `json:"max_temperature"`
	MinTemperature float64 `json:"min_temperature"`
	Precipitation  float64 `json:"precipitation"`
	WindSpeed      float64 `json:"wind_speed"`
	Humidity       float64 `json:"humidity"`
}

// AnalysisResult is the sole output of an analysis call. Its field names are
// an external contract consumed by the HTTP layer and downstream services.
type AnalysisResult struct {
	LocationStats      LocationStats      `json:"location_stats"`
	Probabilities      ProbabilitySet     `json:"probabilities"`
	Thresholds         ThresholdSet       `json:"thresholds"`
	HistoricalAverages HistoricalAverages `json:"historical_averages"`
	RiskAssessment     RiskAssessment     `json:"risk_assessment"`
}

// Uncomfortable-condition bounds, in °C and %RH.
const (
	muggyTempFloor   = 27.0
	muggyHumidityCap = 70.0
	comfortColdBound = 5.0
	comfortHeatBound = 35.0
)

// Analyze runs the full probability analysis for one calendar day: filter to
// the cohort, summarize each variable independently, derive adaptive
// thresholds, count threshold exceedances, evaluate the per-record
// uncomfortable composite, and fold everything into a risk verdict.
//
// Records are not mutated and no state survives the call, so Analyze is safe
// to invoke concurrently. Returns ErrNoHistoricalData for an empty cohort.
func Analyze(records []DailyRecord, month, day int) (AnalysisResult, error) {
	cohort := FilterByDay(records, month, day)
	if len(cohort) == 0 {
		return AnalysisResult{}, fmt.Errorf("%02d-%02d: %w", month, day, ErrNoHistoricalData)
	}

	temps := presentValues(cohort, ParamTemperature)
	maxTemps := presentValues(cohort, ParamMaxTemperature)
	minTemps := presentValues(cohort, ParamMinTemperature)
	precipitation := presentValues(cohort, ParamPrecipitation)
	windSpeeds := presentValues(cohort, ParamWindSpeed)
	humidity := presentValues(cohort, ParamHumidity)

	tempStats := Summarize(temps)
	maxTempStats := Summarize(maxTemps)
	minTempStats := Summarize(minTemps)
	precipStats := Summarize(precipitation)
	windStats := Summarize(windSpeeds)
	humidityStats := Summarize(humidity)

	thresholds := DeriveThresholds(maxTempStats, minTempStats, windStats)

	probabilities := ProbabilitySet{
		Rain:          Probability(precipitation, thresholds.Rain, CompareGTE),
		HeavyRain:     Probability(precipitation, thresholds.HeavyRain, CompareGTE),
		VeryHot:       Probability(maxTemps, thresholds.VeryHot, CompareGTE),
		VeryCold:      Probability(minTemps, thresholds.VeryCold, CompareLTE),
		HighWind:      Probability(windSpeeds, thresholds.HighWind, CompareGTE),
		HighHumidity:  Probability(humidity, thresholds.HighHumidity, CompareGTE),
		Uncomfortable: uncomfortableProbability(cohort),
	}

	return AnalysisResult{
		LocationStats: LocationStats{
			TotalYears:   countDistinctYears(cohort),
			TotalRecords: len(cohort),
			DateAnalyzed: fmt.Sprintf("%02d-%02d", month, day),
		},
		Probabilities: probabilities,
		Thresholds:    thresholds.rounded(),
		HistoricalAverages: HistoricalAverages{
			Temperature:    round1(tempStats.Mean),
			MaxTemperature: round1(maxTempStats.Mean),
			MinTemperature: round1(minTempStats.Mean),
			Precipitation:  round2(precipStats.Mean),
			WindSpeed:      round1(windStats.Mean),
			Humidity:       round1(humidityStats.Mean),
		},
		RiskAssessment: AssessRisk(probabilities),
	}, nil
}

// uncomfortableProbability evaluates the composite condition record by
// record. A record only qualifies when both temperature and humidity are
// present; records missing either are skipped. The divisor is the full
// cohort size regardless of how many records could be evaluated, matching
// the upstream feed's published numbers. This biases the probability low
// when the cohort has gaps; see the analyze tests before changing it.
func uncomfortableProbability(cohort []DailyRecord) float64 {
	count := 0
	for _, rec := range cohort {
		temp, tempOK := rec.Value(ParamTemperature)
		humid, humidOK := rec.Value(ParamHumidity)
		if !tempOK || !humidOK {
			continue
		}
		if (temp > muggyTempFloor && humid > muggyHumidityCap) ||
			temp < comfortColdBound || temp > comfortHeatBound {
			count++
		}
	}
	return round1(float64(count) / float64(len(cohort)) * 100)
}

// countDistinctYears counts the unique years represented in a cohort. Dates
// already survived FilterByDay, so parse failures cannot occur here.
func countDistinctYears(cohort []DailyRecord) int {
	years := make(map[int]struct{}, len(cohort))
	for _, rec := range cohort {
		if date, err := time.Parse(DateLayout, rec.Date); err == nil {
			years[date.Year()] = struct{}{}
		}
	}
	return len(years)
}
