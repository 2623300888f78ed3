package analysis

import (
	"strings"
	"testing"

	"FundPulse/internal/domain/models"
)

func TestScoreScenarioStrongBuy(t *testing.T) {
	m := models.FundMetrics{
		AlphaPct:           ptr(4),
		InformationRatio:   ptr(0.6),
		Outperformance1Pct: ptr(2),
		Outperformance2Pct: ptr(3),
	}
	score, factors := Score(m)
	if score != 7 {
		t.Fatalf("expected score 7, got %d", score)
	}
	if len(factors) != 3 {
		t.Fatalf("expected 3 factors, got %v", factors)
	}
	rec := Recommend(m)
	if !strings.HasPrefix(rec, LabelStrongBuy+":") {
		t.Fatalf("expected STRONG BUY, got %q", rec)
	}
}

func TestScoreMissingMetricsNeverFails(t *testing.T) {
	score, factors := Score(models.FundMetrics{})
	if score != 0 || len(factors) != 0 {
		t.Fatalf("empty metrics must score 0 with no factors, got %d %v", score, factors)
	}
	if rec := Recommend(models.FundMetrics{}); !strings.HasPrefix(rec, LabelHold+":") {
		t.Fatalf("expected HOLD for empty metrics, got %q", rec)
	}
}

func TestScoreNegativeSignals(t *testing.T) {
	m := models.FundMetrics{
		AlphaPct:           ptr(-2),
		InformationRatio:   ptr(-0.3),
		Outperformance1Pct: ptr(-1),
		Outperformance3Pct: ptr(-2),
	}
	score, _ := Score(m)
	if score != -3 {
		t.Fatalf("expected score -3, got %d", score)
	}
	if rec := Recommend(m); !strings.HasPrefix(rec, LabelAvoid+":") {
		t.Fatalf("expected AVOID, got %q", rec)
	}
}

func TestScoreSharpeTreynorPair(t *testing.T) {
	// Both present and above thresholds: +2. One missing: skipped.
	both := models.FundMetrics{SharpeRatio: ptr(1.2), TreynorRatio: ptr(0.15)}
	if score, _ := Score(both); score != 2 {
		t.Fatalf("expected 2, got %d", score)
	}
	oneMissing := models.FundMetrics{SharpeRatio: ptr(1.2)}
	if score, _ := Score(oneMissing); score != 0 {
		t.Fatalf("expected 0 when treynor missing, got %d", score)
	}
}

func TestScoreFactorNumberFormatting(t *testing.T) {
	whole := models.FundMetrics{AlphaPct: ptr(4)}
	if _, factors := Score(whole); factors[0] != "Strong alpha of 4.0%" {
		t.Fatalf("integral alpha must keep one decimal, got %q", factors[0])
	}
	fractional := models.FundMetrics{AlphaPct: ptr(4.25), InformationRatio: ptr(0.6)}
	_, factors := Score(fractional)
	if factors[0] != "Strong alpha of 4.25%" {
		t.Fatalf("fractional alpha must print in full, got %q", factors[0])
	}
	if factors[1] != "Excellent information ratio of 0.6" {
		t.Fatalf("unexpected information ratio factor %q", factors[1])
	}
}

func TestRecommendDeterministic(t *testing.T) {
	m := models.FundMetrics{
		AlphaPct:           ptr(1.5),
		InformationRatio:   ptr(0.2),
		Outperformance1Pct: ptr(1),
		Outperformance2Pct: ptr(-1),
	}
	first := Recommend(m)
	for i := 0; i < 5; i++ {
		if got := Recommend(m); got != first {
			t.Fatalf("recommendation not deterministic: %q vs %q", first, got)
		}
	}
}

func TestRecommendListsAtMostThreeFactors(t *testing.T) {
	m := models.FundMetrics{
		AlphaPct:           ptr(5),
		InformationRatio:   ptr(0.9),
		SharpeRatio:        ptr(1.5),
		TreynorRatio:       ptr(0.2),
		Outperformance1Pct: ptr(2),
		Outperformance2Pct: ptr(2),
		Outperformance3Pct: ptr(2),
		Outperformance5Pct: ptr(2),
	}
	rec := Recommend(m)
	if strings.Count(rec, ";") > 2 {
		t.Fatalf("rationale must list at most 3 factors: %q", rec)
	}
}
