package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"FundPulse/internal/analysis"
	"FundPulse/internal/domain/models"
	drepo "FundPulse/internal/domain/repository"
	applogger "FundPulse/pkg/logger"
)

// sortSentinel stands in for a missing sort-key metric so funds with
// incomplete data order last without special-casing nil.
const sortSentinel = -1e9

// AnalyzerConfig holds the tunables of the ranking pipeline.
type AnalyzerConfig struct {
	RiskFreeRate float64
	TradingDays  int
	LookbackDays int
	Workers      int
}

// FundAnalyzer runs the per-fund metric calculators over the universe and
// produces ranked results.
type FundAnalyzer struct {
	universe   drepo.FundUniverse
	navs       drepo.NavSource
	bench      drepo.BenchmarkSource
	comparator *analysis.Comparator
	metrics    drepo.Metrics
	logger     *applogger.Logger
	cfg        AnalyzerConfig
}

// NewFundAnalyzer creates the ranking pipeline.
func NewFundAnalyzer(
	universe drepo.FundUniverse,
	navs drepo.NavSource,
	bench drepo.BenchmarkSource,
	comparator *analysis.Comparator,
	metrics drepo.Metrics,
	logger *applogger.Logger,
	cfg AnalyzerConfig,
) *FundAnalyzer {
	if cfg.TradingDays <= 0 {
		cfg.TradingDays = analysis.DefaultTradingDays
	}
	if cfg.LookbackDays <= 0 {
		cfg.LookbackDays = 1825
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	return &FundAnalyzer{
		universe:   universe,
		navs:       navs,
		bench:      bench,
		comparator: comparator,
		metrics:    metrics,
		logger:     logger,
		cfg:        cfg,
	}
}

// Rank analyzes the universe without benchmark comparison and sorts
// descending by (sharpe_ratio, cagr_3y_pct).
func (a *FundAnalyzer) Rank(ctx context.Context) ([]models.FundResult, error) {
	results, err := a.analyzeUniverse(ctx, false)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(results, func(i, j int) bool {
		ki := [2]float64{sortVal(results[i].SharpeRatio), sortVal(results[i].CAGR3YPct)}
		kj := [2]float64{sortVal(results[j].SharpeRatio), sortVal(results[j].CAGR3YPct)}
		if ki[0] != kj[0] {
			return ki[0] > kj[0]
		}
		return ki[1] > kj[1]
	})
	return results, nil
}

// RankWithBenchmark analyzes the universe against the benchmark and sorts
// descending by (alpha_pct, information_ratio, sharpe_ratio).
func (a *FundAnalyzer) RankWithBenchmark(ctx context.Context) ([]models.FundResult, error) {
	results, err := a.analyzeUniverse(ctx, true)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(results, func(i, j int) bool {
		ki := [3]float64{sortVal(results[i].AlphaPct), sortVal(results[i].InformationRatio), sortVal(results[i].SharpeRatio)}
		kj := [3]float64{sortVal(results[j].AlphaPct), sortVal(results[j].InformationRatio), sortVal(results[j].SharpeRatio)}
		for k := 0; k < 3; k++ {
			if ki[k] != kj[k] {
				return ki[k] > kj[k]
			}
		}
		return false
	})
	return results, nil
}

// analyzeUniverse fans per-fund analysis out over a bounded worker pool.
// Results are collected by input index so the pre-sort order is identical
// to sequential execution.
func (a *FundAnalyzer) analyzeUniverse(ctx context.Context, withBenchmark bool) ([]models.FundResult, error) {
	start := time.Now()

	funds, err := a.universe.ListFunds(ctx)
	if err != nil {
		a.metrics.RecordProviderError("universe")
		return nil, err
	}

	var bench models.NavSeries
	if withBenchmark {
		bench, err = a.bench.FetchSeries(ctx, a.cfg.LookbackDays)
		if err != nil {
			// Benchmark gaps are recoverable: plain metrics still apply.
			a.metrics.RecordProviderError("benchmark")
			a.logger.Warn("benchmark fetch failed, relative metrics skipped", applogger.Error(err))
			bench = nil
		}
	}

	slots := make([]*models.FundResult, len(funds))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < a.cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				slots[i] = a.analyzeFund(ctx, funds[i], bench, withBenchmark)
			}
		}()
	}
	for i := range funds {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	results := make([]models.FundResult, 0, len(funds))
	for _, r := range slots {
		if r != nil {
			results = append(results, *r)
		}
	}

	mode := "plain"
	if withBenchmark {
		mode = "benchmark"
	}
	a.metrics.RecordLatency("analyze_universe", time.Since(start).Seconds())
	a.logger.Info("universe analyzed",
		applogger.String("mode", mode),
		applogger.Int("funds", len(funds)),
		applogger.Int("analyzed", len(results)),
	)
	return results, nil
}

// analyzeFund computes the full metrics set for one fund. A fund with no
// usable NAV history is skipped (nil) without failing the batch.
func (a *FundAnalyzer) analyzeFund(ctx context.Context, fund models.Fund, bench models.NavSeries, withBenchmark bool) *models.FundResult {
	nav, name, err := a.navs.FetchNavHistory(ctx, fund.SchemeCode)
	if err != nil {
		a.metrics.RecordProviderError("nav_history")
		a.metrics.RecordFundSkipped("fetch_error")
		a.logger.Warn("nav history fetch failed",
			applogger.String("scheme_code", fund.SchemeCode),
			applogger.Error(err),
		)
		return nil
	}
	if len(nav) == 0 {
		a.metrics.RecordFundSkipped("no_data")
		return nil
	}
	if name == "" {
		name = fund.Name
	}
	a.metrics.RecordLastNav(fund.SchemeCode, nav.Last().Nav)

	var m models.FundMetrics

	// Series statistics.
	vol := analysis.AnnualizedVolatility(nav, a.cfg.TradingDays)
	cagr3y := analysis.CAGRForWindow(nav, 3)
	cagrFull := analysis.FullPeriodCAGR(nav)

	m.Returns3MPct = analysis.Pct(analysis.AbsoluteReturnForWindow(nav, 90))
	m.Returns6MPct = analysis.Pct(analysis.AbsoluteReturnForWindow(nav, 180))
	m.Returns1YPct = analysis.Pct(analysis.AbsoluteReturnForWindow(nav, 365))
	m.CAGRFullPct = analysis.Pct(cagrFull)
	m.CAGR1YPct = analysis.Pct(analysis.CAGRForWindow(nav, 1))
	m.CAGR2YPct = analysis.Pct(analysis.CAGRForWindow(nav, 2))
	m.CAGR3YPct = analysis.Pct(cagr3y)
	m.CAGR5YPct = analysis.Pct(analysis.CAGRForWindow(nav, 5))
	m.VolatilityPct = analysis.Pct(vol)
	m.MaxDrawdownPct = analysis.Pct(analysis.MaxDrawdown(nav))

	// Sharpe is computed once and reused by scoring: prefer the 3y window,
	// fall back to the full period when history is short.
	sharpeCAGR := cagr3y
	if sharpeCAGR == nil {
		sharpeCAGR = cagrFull
	}
	m.SharpeRatio = analysis.Round2(analysis.Sharpe(sharpeCAGR, vol, a.cfg.RiskFreeRate))

	if withBenchmark && len(bench) > 0 {
		m.Merge(a.comparator.Compare(nav, bench))
		m.Merge(analysis.RiskAdjusted(nav, bench, analysis.RatioParams{
			RiskFreeRate: a.cfg.RiskFreeRate,
			TradingDays:  a.cfg.TradingDays,
		}))
	}

	result := models.FundResult{
		SchemeCode:  fund.SchemeCode,
		FundName:    name,
		FundMetrics: m,
	}
	if withBenchmark {
		result.Recommendation = analysis.Recommend(m)
	}
	a.metrics.RecordFundAnalyzed(modeLabel(withBenchmark))
	return &result
}

func modeLabel(withBenchmark bool) string {
	if withBenchmark {
		return "benchmark"
	}
	return "plain"
}

func sortVal(p *float64) float64 {
	if p == nil {
		return sortSentinel
	}
	return *p
}
