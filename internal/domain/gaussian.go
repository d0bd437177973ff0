package domain

import (
	"iter"
	"math"
)

// CurveSamples is the number of points on a fitted comparison curve.
const CurveSamples = 300

// GaussianFit is a bell curve centred on the most populated bin, used as a
// visual overlay on the class histogram. It is scaled so its highest sample
// equals the highest observed count; it is not a probability density.
type GaussianFit struct {
	Peak    float64 `json:"peak"`
	Std     float64 `json:"std"`
	XMin    float64 `json:"x_min"`
	XMax    float64 `json:"x_max"`
	Scale   float64 `json:"scale"`
	Samples int     `json:"samples"`
}

// FitGaussian estimates the comparison curve for bins given as parallel
// midpoint and count slices. ok is false when the curve must be omitted:
// fewer than two bins, fewer than two nonzero bins, zero total count, zero
// spread, or a sampled peak density of zero.
func FitGaussian(midpoints []float64, counts []int64) (fit GaussianFit, ok bool) {
	if len(midpoints) < 2 || len(midpoints) != len(counts) {
		return GaussianFit{}, false
	}

	var total, maxCount int64
	nonzero := 0
	peakIdx := 0
	for i, c := range counts {
		total += c
		if c > 0 {
			nonzero++
		}
		if c > maxCount {
			maxCount = c
			peakIdx = i
		}
	}
	if total <= 0 || nonzero < 2 {
		return GaussianFit{}, false
	}

	peak := midpoints[peakIdx]
	var weighted float64
	for i, c := range counts {
		d := midpoints[i] - peak
		weighted += float64(c) * d * d
	}
	std := math.Sqrt(weighted / float64(total))
	if std == 0 || math.IsNaN(std) {
		return GaussianFit{}, false
	}

	xMin, xMax := midpoints[0], midpoints[0]
	for _, m := range midpoints[1:] {
		xMin = math.Min(xMin, m)
		xMax = math.Max(xMax, m)
	}

	fit = GaussianFit{Peak: peak, Std: std, XMin: xMin, XMax: xMax, Samples: CurveSamples}

	var rawMax float64
	for _, y := range fit.raw() {
		rawMax = math.Max(rawMax, y)
	}
	if rawMax == 0 {
		return GaussianFit{}, false
	}
	fit.Scale = float64(maxCount) / rawMax
	return fit, true
}

// Density evaluates the unnormalised bell curve exp(-0.5 ((x-peak)/std)^2).
func (g GaussianFit) Density(x float64) float64 {
	z := (x - g.Peak) / g.Std
	return math.Exp(-0.5 * z * z)
}

// X returns the i-th evenly spaced sample position over [XMin, XMax].
func (g GaussianFit) X(i int) float64 {
	if g.Samples < 2 {
		return g.XMin
	}
	if i == g.Samples-1 {
		return g.XMax
	}
	return g.XMin + float64(i)*(g.XMax-g.XMin)/float64(g.Samples-1)
}

// Curve yields the scaled (x, y) samples. Each call starts a fresh pass.
func (g GaussianFit) Curve() iter.Seq2[float64, float64] {
	return func(yield func(float64, float64) bool) {
		for x, y := range g.raw() {
			if !yield(x, y*g.Scale) {
				return
			}
		}
	}
}

func (g GaussianFit) raw() iter.Seq2[float64, float64] {
	return func(yield func(float64, float64) bool) {
		for i := range g.Samples {
			x := g.X(i)
			if !yield(x, g.Density(x)) {
				return
			}
		}
	}
}

// Points materialises the curve.
func (g GaussianFit) Points() (xs, ys []float64) {
	xs = make([]float64, 0, g.Samples)
	ys = make([]float64, 0, g.Samples)
	for x, y := range g.Curve() {
		xs = append(xs, x)
		ys = append(ys, y)
	}
	return xs, ys
}
