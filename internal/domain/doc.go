// Package domain implements empirical weather-probability analysis over
// historical daily climate records.
//
// # Data Source
//
// Daily records originate from the NASA POWER temporal daily point API
// (https://power.larc.nasa.gov), which serves MERRA-2 reanalysis data at
// 0.5° × 0.625° resolution from 1981 onward. The adapter layer fetches a
// multi-year window for one coordinate and normalizes it into DailyRecord
// values before any analysis runs.
//
// # NASA POWER Conventions
//
// Parameter codes:
//
//	T2M          temperature at 2 meters (°C)
//	T2M_MAX      daily maximum temperature at 2 meters (°C)
//	T2M_MIN      daily minimum temperature at 2 meters (°C)
//	PRECTOTCORR  corrected precipitation (mm/day)
//	WS10M        wind speed at 10 meters (m/s)
//	RH2M         relative humidity at 2 meters (%)
//
// Missing values:
//
//	The upstream feed uses -999.0 as its missing-value sentinel. The
//	normalizer translates the sentinel into an absent value (nil) and it
//	never appears past the adapter boundary. Absent values are excluded
//	from every statistic and probability count; they are never treated
//	as zero.
//
// # Analysis Model
//
// Analysis operates on a cohort: the subset of records whose calendar
// month and day match the target date, across all available years. From
// the cohort it derives per-variable summaries, adaptive thresholds, and
// the percentage of years each adverse condition occurred.
//
// Adaptive thresholds are mean ± k·σ cuts over the cohort itself:
//
//	very_hot  = mean(T2M_MAX) + 1.5·σ   (~93rd percentile under a normal fit)
//	very_cold = mean(T2M_MIN) − 1.5·σ
//	high_wind = mean(WS10M)   + 1.0·σ   (~84th percentile)
//
// The coefficients are fixed design constants, a deliberate normal
// approximation rather than a true percentile computation. Fixed cuts
// are used for rain (≥1 mm), heavy rain (≥10 mm), and high humidity
// (≥80%).
//
// The "uncomfortable" condition is a per-record composite rather than a
// threshold over one variable: a day counts when (T2M > 27 °C and
// RH2M > 70%) or T2M < 5 °C or T2M > 35 °C.
//
// The whole pipeline is pure and allocation-local: it mutates no shared
// state and is safe to call concurrently over independent cohorts.
package domain
