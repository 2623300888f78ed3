package analysis

import (
	"testing"

	"FundPulse/internal/domain/models"
)

func TestSharpe(t *testing.T) {
	cagr, vol := ptr(0.17), ptr(0.2)
	got := Sharpe(cagr, vol, 0.07)
	if got == nil || !almostEqual(*got, 0.5, 1e-12) {
		t.Fatalf("expected 0.5, got %v", got)
	}
}

func TestSharpeUndefined(t *testing.T) {
	if s := Sharpe(nil, ptr(0.2), 0.07); s != nil {
		t.Fatalf("expected nil without CAGR")
	}
	if s := Sharpe(ptr(0.1), nil, 0.07); s != nil {
		t.Fatalf("expected nil without volatility")
	}
	if s := Sharpe(ptr(0.1), ptr(0), 0.07); s != nil {
		t.Fatalf("expected nil for zero volatility")
	}
}

func TestRiskAdjustedEmptyInputs(t *testing.T) {
	p := RatioParams{RiskFreeRate: 0.07, TradingDays: 252}
	if m := RiskAdjusted(nil, wavySeries(day(0), 30, 18000), p); m != (models.FundMetrics{}) {
		t.Fatalf("expected empty metrics for empty fund")
	}
	if m := RiskAdjusted(wavySeries(day(0), 30, 100), nil, p); m != (models.FundMetrics{}) {
		t.Fatalf("expected empty metrics for empty benchmark")
	}
}

func TestRiskAdjustedNoLossFund(t *testing.T) {
	// Strictly increasing fund: no negative returns, zero drawdown.
	fund := make(models.NavSeries, 60)
	for i := range fund {
		fund[i] = models.NavPoint{Date: day(i), Nav: 100 + float64(i)}
	}
	bench := wavySeries(day(0), 60, 18000)
	p := RatioParams{RiskFreeRate: 0.07, TradingDays: 252}

	m := RiskAdjusted(fund, bench, p)

	if m.SortinoRatio != nil {
		t.Fatalf("Sortino must be absent without negative returns")
	}
	if m.CalmarRatio != nil {
		t.Fatalf("Calmar must be absent when max drawdown is 0, got %v", m.CalmarRatio)
	}
}

func TestRiskAdjustedWithDrawdown(t *testing.T) {
	fund := wavySeries(day(0), 200, 100)
	bench := wavySeries(day(0), 200, 18000)
	p := RatioParams{RiskFreeRate: 0.07, TradingDays: 252}

	m := RiskAdjusted(fund, bench, p)

	if m.SortinoRatio == nil {
		t.Fatalf("expected Sortino with negative returns present")
	}
	if m.CalmarRatio == nil {
		t.Fatalf("expected Calmar with a non-zero drawdown")
	}
	if m.TreynorRatio == nil {
		t.Fatalf("expected Treynor with a non-degenerate benchmark")
	}
}

func TestRiskAdjustedZeroVarianceBenchmark(t *testing.T) {
	fund := wavySeries(day(0), 60, 100)
	bench := make(models.NavSeries, 60)
	for i := range bench {
		bench[i] = models.NavPoint{Date: day(i), Nav: 500}
	}
	p := RatioParams{RiskFreeRate: 0.07, TradingDays: 252}

	m := RiskAdjusted(fund, bench, p)

	if m.TreynorRatio != nil {
		t.Fatalf("Treynor must be absent when benchmark variance is 0")
	}
}
