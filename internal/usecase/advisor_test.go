package usecase

import (
	"testing"

	"FundPulse/internal/domain/models"
)

func fptr(v float64) *float64 { return &v }

func TestRiskScoreLowRiskFund(t *testing.T) {
	f := models.FundResult{FundMetrics: models.FundMetrics{
		SharpeRatio:      fptr(1.8),
		InformationRatio: fptr(0.7),
		MaxDrawdownPct:   fptr(-8),
		VolatilityPct:    fptr(12),
	}}
	// 5 -2 (sharpe) -1 (ir) -1 (dd<10) -1 (vol<15) = 1, floor 1.
	if got := riskScore(f); got != 1 {
		t.Fatalf("expected risk score 1, got %d", got)
	}
}

func TestRiskScoreHighRiskFund(t *testing.T) {
	f := models.FundResult{FundMetrics: models.FundMetrics{
		SharpeRatio:      fptr(0.2),
		InformationRatio: fptr(-0.4),
		MaxDrawdownPct:   fptr(-35),
		VolatilityPct:    fptr(28),
	}}
	// 5 +1 +2 +3 +2 = 13, capped 10.
	if got := riskScore(f); got != 10 {
		t.Fatalf("expected risk score 10, got %d", got)
	}
}

func TestRiskScoreDrawdownSignIgnored(t *testing.T) {
	neg := models.FundResult{FundMetrics: models.FundMetrics{MaxDrawdownPct: fptr(-22)}}
	pos := models.FundResult{FundMetrics: models.FundMetrics{MaxDrawdownPct: fptr(22)}}
	if riskScore(neg) != riskScore(pos) {
		t.Fatalf("drawdown magnitude must drive the score regardless of sign")
	}
}

func TestRiskScoreMissingMetrics(t *testing.T) {
	// All nil: sharpe treats 0 as <0.5 (+1), drawdown 0 as <10 (-1),
	// volatility skipped when absent. Net 5.
	if got := riskScore(models.FundResult{}); got != 5 {
		t.Fatalf("expected baseline 5, got %d", got)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := summarize(nil)
	if s.Message == "" || s.TotalFundsAnalyzed != 0 {
		t.Fatalf("empty universe needs an explanatory summary, got %+v", s)
	}
}

func TestSummarizeAverages(t *testing.T) {
	funds := []models.FundResult{
		{FundMetrics: models.FundMetrics{AlphaPct: fptr(4), VolatilityPct: fptr(20), SharpeRatio: fptr(1.2)}},
		{FundMetrics: models.FundMetrics{AlphaPct: fptr(2), VolatilityPct: fptr(24), SharpeRatio: fptr(0.8)}},
		{FundMetrics: models.FundMetrics{AlphaPct: fptr(-1), VolatilityPct: fptr(16), SharpeRatio: fptr(0.4)}},
		{FundMetrics: models.FundMetrics{AlphaPct: fptr(-3), VolatilityPct: fptr(30), SharpeRatio: fptr(0.1)}},
	}
	s := summarize(funds)
	if s.TotalFundsAnalyzed != 4 {
		t.Fatalf("expected 4 analyzed, got %d", s.TotalFundsAnalyzed)
	}
	if s.FundsWithPositiveAlpha != 2 {
		t.Fatalf("expected 2 positive alpha, got %d", s.FundsWithPositiveAlpha)
	}
	// Averages cover the top 3 only.
	if s.AverageAlphaPct != 1.67 {
		t.Fatalf("expected top-3 average alpha 1.67, got %v", s.AverageAlphaPct)
	}
}

func TestStrategyHorizonNotes(t *testing.T) {
	top := []models.FundResult{{FundName: "X Small Cap", FundMetrics: models.FundMetrics{
		AlphaPct: fptr(3), VolatilityPct: fptr(18),
	}}}
	short := strategyFor(top, ToleranceModerate, HorizonShortTerm)
	if note := short["horizon_note"]; note == "" || note[:7] != "WARNING" {
		t.Fatalf("short horizon must warn, got %q", note)
	}
	long := strategyFor(top, ToleranceModerate, HorizonLongTerm)
	if long["horizon_note"] == short["horizon_note"] {
		t.Fatalf("horizon notes must differ by horizon")
	}
}

func TestAllocationByTolerance(t *testing.T) {
	top := []models.FundResult{{FundName: "A"}, {FundName: "B"}}
	cons := allocationFor(top, ToleranceConservative)
	aggr := allocationFor(top, ToleranceAggressive)
	if cons["small_cap_funds"] == aggr["small_cap_funds"] {
		t.Fatalf("small cap allocation must differ by tolerance")
	}
	if cons["secondary_fund"] == "" {
		t.Fatalf("second fund must be suggested when available")
	}
}

func TestWarningsFlagVolatilityAndUnderperformance(t *testing.T) {
	top := []models.FundResult{
		{FundMetrics: models.FundMetrics{VolatilityPct: fptr(30), AlphaPct: fptr(-1)}},
		{FundMetrics: models.FundMetrics{VolatilityPct: fptr(28), AlphaPct: fptr(2)}},
	}
	w := warningsFor(top)
	if len(w) != 5 {
		t.Fatalf("expected 3 base + 2 conditional warnings, got %d: %v", len(w), w)
	}
}
