package domain

import "math"

// Moments holds the raw aggregates of one measure: the number of non-null
// values, their sum and their sum of squares.
type Moments struct {
	N     int64
	Sum   float64
	SumSq float64
}

// Mean returns the arithmetic mean, or 0 when there are no values.
func (m Moments) Mean() float64 {
	if m.N == 0 {
		return 0
	}
	return m.Sum / float64(m.N)
}

// Std returns the population standard deviation (MySQL STD semantics).
// Rounding noise that pushes the variance below zero is clamped to 0.
func (m Moments) Std() float64 {
	if m.N == 0 {
		return 0
	}
	mean := m.Mean()
	variance := m.SumSq/float64(m.N) - mean*mean
	if variance <= 0 {
		return 0
	}
	return math.Sqrt(variance)
}

// Scaled returns the moments of the measure multiplied by f.
func (m Moments) Scaled(f float64) Moments {
	return Moments{N: m.N, Sum: m.Sum * f, SumSq: m.SumSq * f * f}
}

// GramsPerKg converts p_fmilk (grams) to kilograms.
const GramsPerKg = 1000

// PeriodStats is one row of a grouped production breakdown. Key is the
// production year, the lactation number or the birth month depending on the
// query that produced it.
type PeriodStats struct {
	Key         int     `json:"key"`
	AvgDays     float64 `json:"avg_days"`
	AvgMilk     float64 `json:"avg_milk"`
	StdMilk     float64 `json:"std_milk"`
	StdDays     float64 `json:"std_days"`
	StdBirths   float64 `json:"std_births"`
	CountBirths int64   `json:"count_births"`
	AvgBirths   float64 `json:"avg_births"`
}

// PeriodMoments is the raw aggregate behind a PeriodStats row.
type PeriodMoments struct {
	Key         int
	Days        Moments
	Milk        Moments // grams
	Births      Moments
	CountBirths int64
}

// Stats derives the rounded breakdown row. Milk is reported in kilograms.
func (p PeriodMoments) Stats() PeriodStats {
	milk := p.Milk.Scaled(1.0 / GramsPerKg)
	return PeriodStats{
		Key:         p.Key,
		AvgDays:     Round2(p.Days.Mean()),
		AvgMilk:     Round2(milk.Mean()),
		StdMilk:     Round2(milk.Std()),
		StdDays:     Round2(p.Days.Std()),
		StdBirths:   Round2(p.Births.Std()),
		CountBirths: p.CountBirths,
		AvgBirths:   Round2(p.Births.Mean()),
	}
}

// Totals summarises every record matching a filter. AvgPoly is the average
// number of offspring per birth; it exists only on the totals, never on the
// yearly breakdown.
type Totals struct {
	AvgDays     float64 `json:"avg_days"`
	AvgMilk     float64 `json:"avg_milk"`
	StdMilk     float64 `json:"std_milk"`
	StdDays     float64 `json:"std_days"`
	StdBirths   float64 `json:"std_births"`
	TotalBirths int64   `json:"total_births"`
	AvgPoly     float64 `json:"avg_poly"`
	TotalYears  int64   `json:"total_years"`
}

// TotalsMoments is the raw aggregate behind Totals.
type TotalsMoments struct {
	Days        Moments
	Milk        Moments // grams
	Births      Moments
	TotalBirths int64
	TotalYears  int64
}

// Totals derives the rounded summary.
func (t TotalsMoments) Totals() Totals {
	milk := t.Milk.Scaled(1.0 / GramsPerKg)
	return Totals{
		AvgDays:     Round2(t.Days.Mean()),
		AvgMilk:     Round2(milk.Mean()),
		StdMilk:     Round2(milk.Std()),
		StdDays:     Round2(t.Days.Std()),
		StdBirths:   Round2(t.Births.Std()),
		TotalBirths: t.TotalBirths,
		AvgPoly:     Round2(t.Births.Mean()),
		TotalYears:  t.TotalYears,
	}
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
