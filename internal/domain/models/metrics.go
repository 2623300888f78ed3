package models

// FundMetrics is the closed set of metrics the analysis layer can produce
// for one fund. A nil field means the metric could not be computed from the
// available data; consumers must treat nil as "excluded", never as zero.
//
// Percentage fields are rounded to 2 decimals, ratio fields to 3 (Sharpe is
// reported at 2, matching the provider-facing API).
type FundMetrics struct {
	// Absolute (period) returns %
	Returns3MPct *float64 `json:"returns_3m_pct,omitempty"`
	Returns6MPct *float64 `json:"returns_6m_pct,omitempty"`
	Returns1YPct *float64 `json:"returns_1y_pct,omitempty"`

	// CAGR %
	CAGRFullPct *float64 `json:"cagr_full_pct,omitempty"`
	CAGR1YPct   *float64 `json:"cagr_1y_pct,omitempty"`
	CAGR2YPct   *float64 `json:"cagr_2y_pct,omitempty"`
	CAGR3YPct   *float64 `json:"cagr_3y_pct,omitempty"`
	CAGR5YPct   *float64 `json:"cagr_5y_pct,omitempty"`

	// Risk
	VolatilityPct  *float64 `json:"volatility_pct,omitempty"`
	SharpeRatio    *float64 `json:"sharpe_ratio,omitempty"`
	MaxDrawdownPct *float64 `json:"max_drawdown_pct,omitempty"`

	// Benchmark-relative
	Beta               *float64 `json:"beta,omitempty"`
	AlphaPct           *float64 `json:"alpha_pct,omitempty"`
	TrackingErrorPct   *float64 `json:"tracking_error_pct,omitempty"`
	InformationRatio   *float64 `json:"information_ratio,omitempty"`
	Correlation        *float64 `json:"correlation,omitempty"`
	Outperformance1Pct *float64 `json:"outperformance_1y_pct,omitempty"`
	Outperformance2Pct *float64 `json:"outperformance_2y_pct,omitempty"`
	Outperformance3Pct *float64 `json:"outperformance_3y_pct,omitempty"`
	Outperformance5Pct *float64 `json:"outperformance_5y_pct,omitempty"`

	// Risk-adjusted
	TreynorRatio *float64 `json:"treynor_ratio,omitempty"`
	SortinoRatio *float64 `json:"sortino_ratio,omitempty"`
	CalmarRatio  *float64 `json:"calmar_ratio,omitempty"`

	// BenchmarkApproximated marks metrics derived from a synthesized
	// benchmark leg (thin calendar overlap), not real index data.
	BenchmarkApproximated bool `json:"benchmark_approximated,omitempty"`
}

// Merge overlays non-nil fields of o onto m (last writer wins per field).
func (m *FundMetrics) Merge(o FundMetrics) {
	overlay := func(dst **float64, src *float64) {
		if src != nil {
			*dst = src
		}
	}
	overlay(&m.Returns3MPct, o.Returns3MPct)
	overlay(&m.Returns6MPct, o.Returns6MPct)
	overlay(&m.Returns1YPct, o.Returns1YPct)
	overlay(&m.CAGRFullPct, o.CAGRFullPct)
	overlay(&m.CAGR1YPct, o.CAGR1YPct)
	overlay(&m.CAGR2YPct, o.CAGR2YPct)
	overlay(&m.CAGR3YPct, o.CAGR3YPct)
	overlay(&m.CAGR5YPct, o.CAGR5YPct)
	overlay(&m.VolatilityPct, o.VolatilityPct)
	overlay(&m.SharpeRatio, o.SharpeRatio)
	overlay(&m.MaxDrawdownPct, o.MaxDrawdownPct)
	overlay(&m.Beta, o.Beta)
	overlay(&m.AlphaPct, o.AlphaPct)
	overlay(&m.TrackingErrorPct, o.TrackingErrorPct)
	overlay(&m.InformationRatio, o.InformationRatio)
	overlay(&m.Correlation, o.Correlation)
	overlay(&m.Outperformance1Pct, o.Outperformance1Pct)
	overlay(&m.Outperformance2Pct, o.Outperformance2Pct)
	overlay(&m.Outperformance3Pct, o.Outperformance3Pct)
	overlay(&m.Outperformance5Pct, o.Outperformance5Pct)
	overlay(&m.TreynorRatio, o.TreynorRatio)
	overlay(&m.SortinoRatio, o.SortinoRatio)
	overlay(&m.CalmarRatio, o.CalmarRatio)
	if o.BenchmarkApproximated {
		m.BenchmarkApproximated = true
	}
}

// OutperformanceWindows returns the period-outperformance fields in
// 1y/2y/3y/5y order, nil entries included.
func (m FundMetrics) OutperformanceWindows() []*float64 {
	return []*float64{
		m.Outperformance1Pct,
		m.Outperformance2Pct,
		m.Outperformance3Pct,
		m.Outperformance5Pct,
	}
}

// FundResult is the analyzed record for one fund.
type FundResult struct {
	SchemeCode string `json:"scheme_code"`
	FundName   string `json:"fund_name"`

	FundMetrics

	// RiskScore is appended by the advisor layer (1..10, higher = riskier).
	RiskScore *int `json:"risk_score,omitempty"`

	Recommendation string `json:"recommendation,omitempty"`
}
