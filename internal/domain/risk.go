package domain

// ProbabilitySet maps each named adverse condition to its empirical
// percentage in [0,100].
type ProbabilitySet struct {
	Rain          float64 `json:"rain"`
	HeavyRain     float64 `json:"heavy_rain"`
	VeryHot       float64 `json:"very_hot"`
	VeryCold      float64 `json:"very_cold"`
	HighWind      float64 `json:"high_wind"`
	HighHumidity  float64 `json:"high_humidity"`
	Uncomfortable float64 `json:"uncomfortable"`
}

// RiskLevel is the discrete overall verdict.
type RiskLevel string

const (
	RiskLow      RiskLevel = "Low"
	RiskModerate RiskLevel = "Moderate"
	RiskHigh     RiskLevel = "High"
)

// RiskAssessment is the headline verdict for a date: a 0-100 suitability
// score, a discrete risk tier, and ordered advisory strings. It is derived
// deterministically from the probabilities and recomputed on every call.
type RiskAssessment struct {
	SuitabilityScore float64   `json:"suitability_score"`
	OverallRisk      RiskLevel `json:"overall_risk"`
	Recommendations  []string  `json:"recommendations"`
}

// Suitability score penalty weights per condition. High humidity is reported
// but carries no penalty of its own; it already feeds the composite
// uncomfortable condition.
const (
	rainWeight          = 0.3
	heavyRainWeight     = 0.5
	veryHotWeight       = 0.4
	veryColdWeight      = 0.4
	highWindWeight      = 0.2
	uncomfortableWeight = 0.3
)

// Overall-risk tier boundaries over the mean of all probabilities.
const (
	lowRiskCeiling      = 15.0
	moderateRiskCeiling = 30.0
)

// advisory holds one recommendation rule. Rules are evaluated in a fixed
// order and every triggered rule contributes its text.
type advisory struct {
	threshold float64
	text      string
}

// AssessRisk folds a probability set into the final verdict.
func AssessRisk(p ProbabilitySet) RiskAssessment {
	score := 100.0
	score -= p.Rain * rainWeight
	score -= p.HeavyRain * heavyRainWeight
	score -= p.VeryHot * veryHotWeight
	score -= p.VeryCold * veryColdWeight
	score -= p.HighWind * highWindWeight
	score -= p.Uncomfortable * uncomfortableWeight

	score = round1(score)
	if score < 0 {
		score = 0
	} else if score > 100 {
		score = 100
	}

	avg := (p.Rain + p.HeavyRain + p.VeryHot + p.VeryCold +
		p.HighWind + p.HighHumidity + p.Uncomfortable) / 7

	var risk RiskLevel
	switch {
	case avg <= lowRiskCeiling:
		risk = RiskLow
	case avg <= moderateRiskCeiling:
		risk = RiskModerate
	default:
		risk = RiskHigh
	}

	rules := []struct {
		probability float64
		advisory
	}{
		{p.Rain, advisory{25, "High chance of rain - bring waterproof clothing and consider covered areas"}},
		{p.HeavyRain, advisory{10, "Risk of heavy rainfall - have indoor backup plans ready"}},
		{p.VeryHot, advisory{20, "Possible extreme heat - ensure shade and hydration are available"}},
		{p.VeryCold, advisory{20, "Risk of very cold weather - provide warming areas and appropriate clothing"}},
		{p.HighWind, advisory{25, "High wind probability - secure loose items and decorations"}},
		{p.Uncomfortable, advisory{30, "High chance of uncomfortable conditions - plan for climate control"}},
	}

	var recommendations []string
	for _, r := range rules {
		if r.probability > r.threshold {
			recommendations = append(recommendations, r.text)
		}
	}
	if len(recommendations) == 0 {
		recommendations = []string{"Generally favorable weather conditions expected for outdoor activities"}
	}

	return RiskAssessment{
		SuitabilityScore: score,
		OverallRisk:      risk,
		Recommendations:  recommendations,
	}
}
