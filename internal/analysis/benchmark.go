package analysis

import (
	"math"
	"time"

	"FundPulse/internal/domain/models"
)

// minOverlapPoints is the alignment threshold below which the comparator
// degrades to the approximate (synthesized benchmark) path.
const minOverlapPoints = 10

// Synthesizer produces a stand-in benchmark value series of length n, used
// when the real calendars barely overlap. Implementations must be
// deterministic per call.
type Synthesizer interface {
	Synthesize(n int) []float64
}

// Comparator computes benchmark-relative statistics for a fund.
type Comparator struct {
	tradingDays int
	synth       Synthesizer
}

// NewComparator builds a Comparator. synth may be nil, in which case the
// approximate-alignment fallback is disabled and thin overlaps yield empty
// metrics.
func NewComparator(tradingDays int, synth Synthesizer) *Comparator {
	if tradingDays <= 0 {
		tradingDays = DefaultTradingDays
	}
	return &Comparator{tradingDays: tradingDays, synth: synth}
}

// outperformance windows in calendar days, fixed per product definition.
var outperformanceWindows = []struct {
	days int
	set  func(*models.FundMetrics, *float64)
}{
	{365, func(m *models.FundMetrics, v *float64) { m.Outperformance1Pct = v }},
	{730, func(m *models.FundMetrics, v *float64) { m.Outperformance2Pct = v }},
	{1095, func(m *models.FundMetrics, v *float64) { m.Outperformance3Pct = v }},
	{1825, func(m *models.FundMetrics, v *float64) { m.Outperformance5Pct = v }},
}

// alignedPair holds two equal-length NAV legs on a common date domain.
type alignedPair struct {
	dates []time.Time
	fund  []float64
	bench []float64
}

func (p alignedPair) rows() int { return len(p.dates) }

func (p alignedPair) tail(n int) alignedPair {
	if n >= p.rows() {
		return p
	}
	i := p.rows() - n
	return alignedPair{dates: p.dates[i:], fund: p.fund[i:], bench: p.bench[i:]}
}

// Compare aligns the fund and benchmark series and derives the relative
// statistics. Empty inputs or an aligned table with fewer than 2 rows yield
// zero-valued (all-nil) metrics, never an error.
func (c *Comparator) Compare(fund, bench models.NavSeries) models.FundMetrics {
	var m models.FundMetrics
	if len(fund) == 0 || len(bench) == 0 {
		return m
	}

	pair, approx, ok := c.align(fund, bench)
	if !ok || pair.rows() < 2 {
		return m
	}
	m.BenchmarkApproximated = approx

	fundRets := periodicReturns(pair.fund)
	benchRets := periodicReturns(pair.bench)
	if len(fundRets) < 2 || len(benchRets) < 2 {
		return models.FundMetrics{}
	}

	// Beta/alpha over the trailing min-length of the two return legs.
	fr, br := trailingAlign(fundRets, benchRets)
	if bv := sampleVariance(br); bv > 0 {
		beta := sampleCovariance(fr, br) / bv
		alpha := mean(fr)*float64(c.tradingDays) - beta*mean(br)*float64(c.tradingDays)
		m.Beta = ptr(round(beta, 3))
		m.AlphaPct = ptr(round(alpha*100, 2))
	}

	// Tracking error and information ratio from excess returns.
	excess := make([]float64, 0, len(fr))
	for i := range fr {
		excess = append(excess, fr[i]-br[i])
	}
	if len(excess) >= 2 {
		te := sampleStdev(excess) * math.Sqrt(float64(c.tradingDays))
		m.TrackingErrorPct = ptr(round(te*100, 2))
		if te > 0 {
			ir := mean(excess) * float64(c.tradingDays) / te
			m.InformationRatio = ptr(round(ir, 3))
		}
	}

	if corr, ok := pearson(fr, br); ok {
		m.Correlation = ptr(round(corr, 3))
	}

	// Period outperformance: only when the aligned table itself spans the
	// window row count; each leg's CAGR over the trailing rows.
	for _, w := range outperformanceWindows {
		if pair.rows() < w.days {
			continue
		}
		sub := pair.tail(w.days)
		fundCAGR := legCAGR(sub.dates, sub.fund)
		benchCAGR := legCAGR(sub.dates, sub.bench)
		if fundCAGR == nil || benchCAGR == nil {
			continue
		}
		w.set(&m, ptr(round((*fundCAGR-*benchCAGR)*100, 2)))
	}

	return m
}

// align intersects the two calendars and inner-joins on exact dates. When
// either filtered leg is thinner than minOverlapPoints it falls back to the
// fund's own calendar with a synthesized benchmark leg (flagged approximate).
func (c *Comparator) align(fund, bench models.NavSeries) (alignedPair, bool, bool) {
	commonStart := maxTime(fund.First().Date, bench.First().Date)
	commonEnd := minTime(fund.Last().Date, bench.Last().Date)

	fundWin := fund.Between(commonStart, commonEnd)
	benchWin := bench.Between(commonStart, commonEnd)

	if len(fundWin) < minOverlapPoints || len(benchWin) < minOverlapPoints {
		pair, ok := c.approximate(fund)
		return pair, true, ok
	}

	byDate := make(map[int64]float64, len(benchWin))
	for _, p := range benchWin {
		byDate[dayKey(p.Date)] = p.Nav
	}

	pair := alignedPair{}
	for _, p := range fundWin {
		if nav, ok := byDate[dayKey(p.Date)]; ok {
			pair.dates = append(pair.dates, p.Date)
			pair.fund = append(pair.fund, p.Nav)
			pair.bench = append(pair.bench, nav)
		}
	}
	return pair, false, true
}

func (c *Comparator) approximate(fund models.NavSeries) (alignedPair, bool) {
	if c.synth == nil || len(fund) < 2 {
		return alignedPair{}, false
	}
	if !fund.Last().Date.After(fund.First().Date) {
		return alignedPair{}, false
	}
	values := c.synth.Synthesize(len(fund))
	if len(values) != len(fund) {
		return alignedPair{}, false
	}
	pair := alignedPair{
		dates: make([]time.Time, len(fund)),
		fund:  make([]float64, len(fund)),
		bench: values,
	}
	for i, p := range fund {
		pair.dates[i] = p.Date
		pair.fund[i] = p.Nav
	}
	return pair, true
}

func periodicReturns(navs []float64) []float64 {
	if len(navs) < 2 {
		return nil
	}
	out := make([]float64, 0, len(navs)-1)
	for i := 1; i < len(navs); i++ {
		if navs[i-1] == 0 {
			continue
		}
		out = append(out, navs[i]/navs[i-1]-1)
	}
	return out
}

// trailingAlign trims both slices to their common trailing length.
func trailingAlign(a, b []float64) ([]float64, []float64) {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	return a[len(a)-n:], b[len(b)-n:]
}

func legCAGR(dates []time.Time, navs []float64) *float64 {
	if len(navs) < 2 || navs[0] <= 0 {
		return nil
	}
	years := dates[len(dates)-1].Sub(dates[0]).Hours() / 24 / DaysPerYear
	if years <= 0 {
		return nil
	}
	return ptr(math.Pow(navs[len(navs)-1]/navs[0], 1/years) - 1)
}

func dayKey(t time.Time) int64 {
	y, m, d := t.Date()
	return int64(y)*10000 + int64(m)*100 + int64(d)
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
