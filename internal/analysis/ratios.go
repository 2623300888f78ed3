package analysis

import (
	"math"

	"FundPulse/internal/domain/models"
)

// RatioParams configures the risk-adjusted ratio calculations.
type RatioParams struct {
	RiskFreeRate float64
	TradingDays  int
}

// Sharpe is (cagr - riskFree) / volatility. Nil when either input is
// missing or volatility is 0. Both inputs are fractions, not percentages.
func Sharpe(cagr, volatility *float64, riskFreeRate float64) *float64 {
	if cagr == nil || volatility == nil || *volatility == 0 {
		return nil
	}
	return ptr((*cagr - riskFreeRate) / *volatility)
}

// RiskAdjusted derives Treynor, Sortino and Calmar ratios for the fund
// against the benchmark, joined on exact dates over the full span of both
// series. Empty inputs or a joined table under 2 rows yield all-nil metrics.
func RiskAdjusted(fund, bench models.NavSeries, p RatioParams) models.FundMetrics {
	var m models.FundMetrics
	if len(fund) == 0 || len(bench) == 0 {
		return m
	}
	if p.TradingDays <= 0 {
		p.TradingDays = DefaultTradingDays
	}

	pair := innerJoin(fund, bench)
	if pair.rows() < 2 {
		return m
	}

	fundRets := periodicReturns(pair.fund)
	benchRets := periodicReturns(pair.bench)
	if len(fundRets) < 2 {
		return m
	}

	annualized := float64(p.TradingDays)
	meanReturn := mean(fundRets) * annualized

	// Treynor: excess return per unit of systematic risk.
	if len(benchRets) >= 2 {
		fr, br := trailingAlign(fundRets, benchRets)
		if bv := sampleVariance(br); bv > 0 {
			beta := sampleCovariance(fr, br) / bv
			if beta != 0 {
				m.TreynorRatio = ptr(round((meanReturn-p.RiskFreeRate)/beta, 3))
			}
		}
	}

	// Sortino: penalize downside deviation only.
	var negative []float64
	for _, r := range fundRets {
		if r < 0 {
			negative = append(negative, r)
		}
	}
	if len(negative) > 0 {
		dd := sampleStdev(negative) * math.Sqrt(annualized)
		if dd > 0 {
			m.SortinoRatio = ptr(round((meanReturn-p.RiskFreeRate)/dd, 3))
		}
	}

	// Calmar: CAGR over the aligned window per unit of max drawdown.
	// A drawdown of 0 (no loss ever observed) leaves the ratio undefined.
	if cagr := legCAGR(pair.dates, pair.fund); cagr != nil {
		if dd := drawdownOf(pair.fund); dd > 0 {
			m.CalmarRatio = ptr(round(*cagr/dd, 3))
		}
	}

	return m
}

// innerJoin joins the two series on exact date equality without windowing.
func innerJoin(fund, bench models.NavSeries) alignedPair {
	byDate := make(map[int64]float64, len(bench))
	for _, p := range bench {
		byDate[dayKey(p.Date)] = p.Nav
	}
	pair := alignedPair{}
	for _, p := range fund {
		if nav, ok := byDate[dayKey(p.Date)]; ok {
			pair.dates = append(pair.dates, p.Date)
			pair.fund = append(pair.fund, p.Nav)
			pair.bench = append(pair.bench, nav)
		}
	}
	return pair
}

// drawdownOf returns |min drawdown| of a NAV leg.
func drawdownOf(navs []float64) float64 {
	peak := 0.0
	maxDD := 0.0
	for _, v := range navs {
		if v > peak {
			peak = v
		}
		if peak <= 0 {
			continue
		}
		dd := v/peak - 1
		if dd < maxDD {
			maxDD = dd
		}
	}
	return math.Abs(maxDD)
}
