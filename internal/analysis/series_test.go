package analysis

import (
	"math"
	"testing"
	"time"

	"FundPulse/internal/domain/models"
)

func day(offset int) time.Time {
	return time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
}

func dailySeries(navs ...float64) models.NavSeries {
	s := make(models.NavSeries, len(navs))
	for i, nav := range navs {
		s[i] = models.NavPoint{Date: day(i), Nav: nav}
	}
	return s
}

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestReturnsShortSeries(t *testing.T) {
	if got := Returns(nil); got != nil {
		t.Fatalf("expected nil returns for empty series, got %v", got)
	}
	if got := Returns(dailySeries(100)); got != nil {
		t.Fatalf("expected nil returns for single point, got %v", got)
	}
}

func TestReturnsValues(t *testing.T) {
	got := Returns(dailySeries(100, 110, 99))
	if len(got) != 2 {
		t.Fatalf("expected 2 returns, got %d", len(got))
	}
	if !almostEqual(got[0], 0.10, 1e-12) || !almostEqual(got[1], -0.10, 1e-12) {
		t.Fatalf("unexpected returns %v", got)
	}
}

func TestVolatilityInsufficientData(t *testing.T) {
	if v := AnnualizedVolatility(nil, DefaultTradingDays); v != nil {
		t.Fatalf("expected nil volatility for empty series")
	}
	if v := AnnualizedVolatility(dailySeries(100, 101), DefaultTradingDays); v != nil {
		t.Fatalf("expected nil volatility for a single return")
	}
}

func TestVolatilityAnnualizes(t *testing.T) {
	v := AnnualizedVolatility(dailySeries(100, 101, 99, 102, 98), DefaultTradingDays)
	if v == nil {
		t.Fatalf("expected volatility")
	}
	if *v <= 0 {
		t.Fatalf("expected positive volatility, got %v", *v)
	}
}

func TestMaxDrawdownStrictlyIncreasing(t *testing.T) {
	dd := MaxDrawdown(dailySeries(100, 101, 105, 110))
	if dd == nil {
		t.Fatalf("expected drawdown")
	}
	if *dd != 0 {
		t.Fatalf("expected 0 drawdown, got %v", *dd)
	}
}

func TestMaxDrawdownDeclineOnly(t *testing.T) {
	dd := MaxDrawdown(dailySeries(100, 90, 80))
	if dd == nil {
		t.Fatalf("expected drawdown")
	}
	if !almostEqual(*dd, -0.2, 1e-12) {
		t.Fatalf("expected -0.2, got %v", *dd)
	}
}

func TestMaxDrawdownSignPreserved(t *testing.T) {
	dd := MaxDrawdown(dailySeries(100, 120, 90, 130))
	if dd == nil || *dd >= 0 {
		t.Fatalf("expected negative drawdown, got %v", dd)
	}
}

func TestMaxDrawdownEmpty(t *testing.T) {
	if dd := MaxDrawdown(nil); dd != nil {
		t.Fatalf("expected nil for empty series")
	}
}

func TestFullPeriodCAGRRoundTrip(t *testing.T) {
	g := 0.10
	start := day(0)
	s := models.NavSeries{
		{Date: start, Nav: 100},
		{Date: start.Add(time.Duration(365.25 * 24 * float64(time.Hour))), Nav: 100 * (1 + g)},
	}
	got := FullPeriodCAGR(s)
	if got == nil {
		t.Fatalf("expected CAGR")
	}
	if !almostEqual(*got, g, 1e-9) {
		t.Fatalf("expected %v, got %v", g, *got)
	}
}

func TestFullPeriodCAGRGuards(t *testing.T) {
	if c := FullPeriodCAGR(dailySeries(100)); c != nil {
		t.Fatalf("expected nil for single point")
	}
	sameDay := models.NavSeries{
		{Date: day(0), Nav: 100},
		{Date: day(0), Nav: 110},
	}
	if c := FullPeriodCAGR(sameDay); c != nil {
		t.Fatalf("expected nil for zero elapsed time")
	}
}

func TestCAGRForWindowAnchorsToSeriesEnd(t *testing.T) {
	// Four years of flat 100 followed by one year doubling to 200: the
	// 1y window must only see the final year regardless of wall clock.
	s := make(models.NavSeries, 0, 5*365)
	for i := 0; i < 4*365; i++ {
		s = append(s, models.NavPoint{Date: day(i), Nav: 100})
	}
	for i := 0; i < 365; i++ {
		nav := 100 * math.Pow(2, float64(i+1)/365)
		s = append(s, models.NavPoint{Date: day(4*365 + i), Nav: nav})
	}
	oneYear := CAGRForWindow(s, 1)
	if oneYear == nil {
		t.Fatalf("expected windowed CAGR")
	}
	if *oneYear < 0.8 {
		t.Fatalf("1y window should capture the doubling, got %v", *oneYear)
	}
	full := FullPeriodCAGR(s)
	if full == nil || *full > *oneYear {
		t.Fatalf("full-period CAGR should be diluted by flat years")
	}
}

func TestCAGRForWindowGuards(t *testing.T) {
	if c := CAGRForWindow(nil, 3); c != nil {
		t.Fatalf("expected nil for empty series")
	}
	if c := CAGRForWindow(dailySeries(100, 101, 102), 0); c != nil {
		t.Fatalf("expected nil for non-positive window")
	}
	if c := CAGRForWindow(dailySeries(100), 1); c != nil {
		t.Fatalf("expected nil when window has under 2 points")
	}
}

func TestAbsoluteReturnForWindow(t *testing.T) {
	start := day(0)
	s := models.NavSeries{
		{Date: start, Nav: 100},
		{Date: start.AddDate(0, 0, 365), Nav: 110},
	}
	got := AbsoluteReturnForWindow(s, 365)
	if got == nil {
		t.Fatalf("expected return")
	}
	if !almostEqual(*got, 0.10, 1e-12) {
		t.Fatalf("expected 0.10, got %v", *got)
	}
}

func TestAbsoluteReturnForWindowGuards(t *testing.T) {
	if r := AbsoluteReturnForWindow(nil, 90); r != nil {
		t.Fatalf("expected nil for empty series")
	}
	if r := AbsoluteReturnForWindow(dailySeries(100, 110), 0); r != nil {
		t.Fatalf("expected nil for non-positive day count")
	}
	// Window collapses to a single point.
	s := models.NavSeries{
		{Date: day(0), Nav: 100},
		{Date: day(400), Nav: 110},
	}
	if r := AbsoluteReturnForWindow(s, 30); r != nil {
		t.Fatalf("expected nil when window has under 2 points, got %v", *r)
	}
}
