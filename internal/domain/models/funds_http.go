package models

// Requests for fund HTTP endpoints. Defined in domain for consistency and reuse.

type RankingsRequest struct {
	Limit int `query:"limit" json:"limit" default:"5" validate:"gte=1,lte=50"`
}

type AdvisorRequest struct {
	RiskTolerance     string  `query:"risk_tolerance" json:"risk_tolerance" default:"moderate" validate:"oneof=conservative moderate aggressive"`
	InvestmentHorizon string  `query:"investment_horizon" json:"investment_horizon" default:"long_term" validate:"oneof=short_term medium_term long_term"`
	MinAlpha          float64 `query:"min_alpha" json:"min_alpha"`
	MaxVolatility     float64 `query:"max_volatility" json:"max_volatility" validate:"gte=0"`
}

// AdvisorSummary aggregates the filtered fund set.
type AdvisorSummary struct {
	TotalFundsAnalyzed     int     `json:"total_funds_analyzed"`
	FundsWithPositiveAlpha int     `json:"funds_with_positive_alpha"`
	AverageAlphaPct        float64 `json:"average_alpha_pct"`
	AverageVolatilityPct   float64 `json:"average_volatility_pct"`
	AverageSharpeRatio     float64 `json:"average_sharpe_ratio"`
	MarketOutperformance   string  `json:"market_outperformance"`
	Message                string  `json:"message,omitempty"`
}

// AdvisorResponse is the personalized recommendation payload.
type AdvisorResponse struct {
	RecommendedFunds    []FundResult      `json:"recommended_funds"`
	AnalysisSummary     AdvisorSummary    `json:"analysis_summary"`
	InvestmentStrategy  map[string]string `json:"investment_strategy"`
	PortfolioAllocation map[string]string `json:"portfolio_allocation"`
	MarketOutlook       string            `json:"market_outlook"`
	RiskWarnings        []string          `json:"risk_warnings"`
	FiltersApplied      AdvisorFilters    `json:"filters_applied"`
}

// AdvisorFilters echoes the filters a request was served with.
type AdvisorFilters struct {
	RiskTolerance     string   `json:"risk_tolerance"`
	InvestmentHorizon string   `json:"investment_horizon"`
	MinAlphaPct       float64  `json:"min_alpha_pct"`
	MaxVolatilityPct  *float64 `json:"max_volatility_pct"`
}
