package analysis

import (
	"math"

	"FundPulse/internal/domain/models"
)

const (
	// DaysPerYear converts elapsed calendar days to years.
	DaysPerYear = 365.25

	// DefaultTradingDays is the annualization constant for daily returns.
	DefaultTradingDays = 252

	// DefaultRiskFreeRate is the annualized risk-free rate.
	DefaultRiskFreeRate = 0.07
)

// Returns computes periodic returns nav[i]/nav[i-1] - 1. Empty for series
// with fewer than 2 points.
func Returns(s models.NavSeries) []float64 {
	if len(s) < 2 {
		return nil
	}
	out := make([]float64, 0, len(s)-1)
	for i := 1; i < len(s); i++ {
		prev := s[i-1].Nav
		if prev == 0 {
			continue
		}
		out = append(out, s[i].Nav/prev-1)
	}
	return out
}

// AnnualizedVolatility is the sample standard deviation of periodic returns
// scaled by sqrt(tradingDays). Nil when fewer than 2 returns exist.
func AnnualizedVolatility(s models.NavSeries, tradingDays int) *float64 {
	rets := Returns(s)
	if len(rets) < 2 {
		return nil
	}
	return ptr(sampleStdev(rets) * math.Sqrt(float64(tradingDays)))
}

// MaxDrawdown is min(nav[i]/runningMax - 1) over the series. Nil for an
// empty series. The result is <= 0; the sign is preserved.
func MaxDrawdown(s models.NavSeries) *float64 {
	if len(s) == 0 {
		return nil
	}
	peak := s[0].Nav
	maxDD := 0.0
	for _, p := range s {
		if p.Nav > peak {
			peak = p.Nav
		}
		if peak <= 0 {
			continue
		}
		dd := p.Nav/peak - 1
		if dd < maxDD {
			maxDD = dd
		}
	}
	return ptr(maxDD)
}

// FullPeriodCAGR is (last/first)^(1/years) - 1 over the whole series, with
// years measured in elapsed days / 365.25. Nil when fewer than 2 points,
// when elapsed years <= 0, or when the starting NAV is not positive.
func FullPeriodCAGR(s models.NavSeries) *float64 {
	if len(s) < 2 {
		return nil
	}
	return cagrBetween(s.First(), s.Last())
}

// CAGRForWindow restricts the series to the trailing `years` window before
// computing CAGR. The window anchors to the series' own last date, never to
// wall-clock now. Nil when the window has fewer than 2 points.
func CAGRForWindow(s models.NavSeries, years float64) *float64 {
	if len(s) == 0 || years <= 0 {
		return nil
	}
	cutoff := s.Last().Date.AddDate(0, 0, -int(DaysPerYear*years))
	return FullPeriodCAGR(s.Since(cutoff))
}

// AbsoluteReturnForWindow is the simple end/start - 1 over the trailing
// `days` window, anchored to the series' own last date. Not annualized.
func AbsoluteReturnForWindow(s models.NavSeries, days int) *float64 {
	if len(s) == 0 || days <= 0 {
		return nil
	}
	cutoff := s.Last().Date.AddDate(0, 0, -days)
	window := s.Since(cutoff)
	if len(window) < 2 {
		return nil
	}
	start := window.First().Nav
	if start <= 0 {
		return nil
	}
	return ptr(window.Last().Nav/start - 1)
}

func cagrBetween(first, last models.NavPoint) *float64 {
	years := last.Date.Sub(first.Date).Hours() / 24 / DaysPerYear
	if years <= 0 || first.Nav <= 0 {
		return nil
	}
	return ptr(math.Pow(last.Nav/first.Nav, 1/years) - 1)
}
