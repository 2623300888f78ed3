package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Shared numeric helpers for the analysis package. All variance-family
// statistics use the sample (n-1) estimator, which is what the nil-weight
// stat forms compute. Guards keep the degenerate inputs (empty, single
// point) at 0 instead of NaN.

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return stat.Mean(xs, nil)
}

func sampleVariance(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	return stat.Variance(xs, nil)
}

func sampleStdev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	return stat.StdDev(xs, nil)
}

func sampleCovariance(xs, ys []float64) float64 {
	if len(xs) < 2 || len(ys) != len(xs) {
		return 0
	}
	return stat.Covariance(xs, ys, nil)
}

func pearson(xs, ys []float64) (float64, bool) {
	if len(xs) < 2 || len(ys) != len(xs) {
		return 0, false
	}
	if stat.StdDev(xs, nil) == 0 || stat.StdDev(ys, nil) == 0 {
		return 0, false
	}
	return stat.Correlation(xs, ys, nil), true
}

func round(x float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(x*pow) / pow
}

func ptr(v float64) *float64 { return &v }

// Pct converts a fraction to a percentage rounded to 2 decimals,
// preserving "no value".
func Pct(x *float64) *float64 {
	if x == nil {
		return nil
	}
	return ptr(round(*x*100, 2))
}

// Round2 rounds to 2 decimals, preserving "no value".
func Round2(x *float64) *float64 {
	if x == nil {
		return nil
	}
	return ptr(round(*x, 2))
}
