package domain

// Adaptive threshold coefficients and fixed cutoffs. The sigma multipliers
// approximate the ~93rd (1.5σ) and ~84th (1.0σ) percentiles under a normal
// fit; see the package documentation.
const (
	hotColdSigma = 1.5
	windSigma    = 1.0

	RainThreshold         = 1.0  // mm/day
	HeavyRainThreshold    = 10.0 // mm/day
	HighHumidityThreshold = 80.0 // %
)

// ThresholdSet carries the per-cohort adaptive cutoffs alongside the fixed
// ones. Adaptive values are recomputed for every analysis from the cohort's
// own summaries; they are never constants.
type ThresholdSet struct {
	VeryHot      float64 `json:"very_hot_threshold"`
	VeryCold     float64 `json:"very_cold_threshold"`
	HighWind     float64 `json:"high_wind_threshold"`
	Rain         float64 `json:"rain_threshold"`
	HeavyRain    float64 `json:"heavy_rain_threshold"`
	HighHumidity float64 `json:"high_humidity_threshold"`
}

// DeriveThresholds computes the adaptive extreme-condition cutoffs from the
// cohort's max-temperature, min-temperature, and wind summaries. When a
// variable's sample was uniform (std 0) the cutoff collapses to its mean.
func DeriveThresholds(maxTemp, minTemp, wind StatSummary) ThresholdSet {
	return ThresholdSet{
		VeryHot:      maxTemp.Mean + hotColdSigma*maxTemp.Std,
		VeryCold:     minTemp.Mean - hotColdSigma*minTemp.Std,
		HighWind:     wind.Mean + windSigma*wind.Std,
		Rain:         RainThreshold,
		HeavyRain:    HeavyRainThreshold,
		HighHumidity: HighHumidityThreshold,
	}
}

// rounded returns a copy with the adaptive cutoffs rounded to one decimal,
// the precision exposed in AnalysisResult.
func (t ThresholdSet) rounded() ThresholdSet {
	t.VeryHot = round1(t.VeryHot)
	t.VeryCold = round1(t.VeryCold)
	t.HighWind = round1(t.HighWind)
	return t
}
