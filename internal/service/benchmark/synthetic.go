package benchmark

import (
	"context"
	"math/rand"
	"time"

	"FundPulse/internal/domain/models"
)

// Calibration of the synthetic index: long-run equity-like drift and
// volatility, scaled to daily steps.
const (
	DefaultSeed      = 42
	defaultStartNav  = 18000.0
	annualDrift      = 0.12
	annualVolatility = 0.18
	tradingDays      = 252
)

// SyntheticIndex generates a deterministic benchmark series for environments
// without a live index feed. The same seed always yields the same path, so
// analysis runs are reproducible. It implements repository.BenchmarkSource
// and the comparator's fallback synthesizer.
type SyntheticIndex struct {
	seed     int64
	startNav float64
	now      func() time.Time
}

// NewSyntheticIndex creates a generator with the given seed.
func NewSyntheticIndex(seed int64) *SyntheticIndex {
	if seed == 0 {
		seed = DefaultSeed
	}
	return &SyntheticIndex{seed: seed, startNav: defaultStartNav, now: time.Now}
}

// FetchSeries generates weekday observations over the trailing window.
func (s *SyntheticIndex) FetchSeries(_ context.Context, lookbackDays int) (models.NavSeries, error) {
	end := s.now().UTC().Truncate(24 * time.Hour)
	start := end.AddDate(0, 0, -lookbackDays)

	days := make([]time.Time, 0, lookbackDays)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		days = append(days, d)
	}

	values := s.Synthesize(len(days))
	series := make(models.NavSeries, len(days))
	for i, d := range days {
		series[i] = models.NavPoint{Date: d, Nav: values[i]}
	}
	return series, nil
}

// Synthesize returns n index values along a fresh seeded random walk.
func (s *SyntheticIndex) Synthesize(n int) []float64 {
	if n <= 0 {
		return nil
	}
	rng := rand.New(rand.NewSource(s.seed))
	mu := annualDrift / tradingDays
	sigma := annualVolatility / sqrtTradingDays

	out := make([]float64, n)
	nav := s.startNav
	for i := 0; i < n; i++ {
		out[i] = nav
		nav *= 1 + mu + sigma*rng.NormFloat64()
		if nav <= 0 {
			nav = out[i]
		}
	}
	return out
}

// sqrtTradingDays is sqrt(252), precomputed so the daily sigma is a constant.
const sqrtTradingDays = 15.874507866387544
