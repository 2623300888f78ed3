package usecase

import (
	"context"
	"fmt"
	"math"
	"sort"

	"FundPulse/internal/domain/models"
)

// Risk tolerance and horizon values accepted by the advisor.
const (
	ToleranceConservative = "conservative"
	ToleranceModerate     = "moderate"
	ToleranceAggressive   = "aggressive"

	HorizonShortTerm  = "short_term"
	HorizonMediumTerm = "medium_term"
	HorizonLongTerm   = "long_term"
)

// Advisor layers personalized filtering and portfolio guidance on top of
// the benchmark-mode ranking.
type Advisor struct {
	analyzer *FundAnalyzer
}

// NewAdvisor creates an Advisor.
func NewAdvisor(analyzer *FundAnalyzer) *Advisor {
	return &Advisor{analyzer: analyzer}
}

// Recommendations runs the benchmark-mode analysis, filters by the caller's
// risk profile and returns the advisory payload with the top 3 funds.
func (a *Advisor) Recommendations(ctx context.Context, req models.AdvisorRequest) (models.AdvisorResponse, error) {
	funds, err := a.analyzer.RankWithBenchmark(ctx)
	if err != nil {
		return models.AdvisorResponse{}, err
	}

	filtered := make([]models.FundResult, 0, len(funds))
	for _, f := range funds {
		if deref(f.AlphaPct) < req.MinAlpha {
			continue
		}
		if req.MaxVolatility > 0 && f.VolatilityPct != nil && *f.VolatilityPct > req.MaxVolatility {
			continue
		}

		score := riskScore(f)
		if req.RiskTolerance == ToleranceConservative && score > 6 {
			continue
		}
		if req.RiskTolerance == ToleranceModerate && score > 8 {
			continue
		}

		f.RiskScore = &score
		filtered = append(filtered, f)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		ki := [3]float64{sortVal(filtered[i].AlphaPct), sortVal(filtered[i].InformationRatio), -float64(*filtered[i].RiskScore)}
		kj := [3]float64{sortVal(filtered[j].AlphaPct), sortVal(filtered[j].InformationRatio), -float64(*filtered[j].RiskScore)}
		for k := 0; k < 3; k++ {
			if ki[k] != kj[k] {
				return ki[k] > kj[k]
			}
		}
		return false
	})

	top := filtered
	if len(top) > 3 {
		top = top[:3]
	}

	var maxVol *float64
	if req.MaxVolatility > 0 {
		maxVol = &req.MaxVolatility
	}

	return models.AdvisorResponse{
		RecommendedFunds:    top,
		AnalysisSummary:     summarize(filtered),
		InvestmentStrategy:  strategyFor(top, req.RiskTolerance, req.InvestmentHorizon),
		PortfolioAllocation: allocationFor(top, req.RiskTolerance),
		MarketOutlook:       marketOutlook,
		RiskWarnings:        warningsFor(top),
		FiltersApplied: models.AdvisorFilters{
			RiskTolerance:     req.RiskTolerance,
			InvestmentHorizon: req.InvestmentHorizon,
			MinAlphaPct:       req.MinAlpha,
			MaxVolatilityPct:  maxVol,
		},
	}, nil
}

// riskScore grades a fund 1..10 (higher = riskier) from its risk metrics.
func riskScore(f models.FundResult) int {
	score := 5

	sharpe := deref(f.SharpeRatio)
	switch {
	case sharpe > 1.5:
		score -= 2
	case sharpe > 1:
		score--
	case sharpe < 0.5:
		score++
	}

	ir := deref(f.InformationRatio)
	if ir > 0.5 {
		score--
	} else if ir < 0 {
		score += 2
	}

	maxDD := math.Abs(deref(f.MaxDrawdownPct))
	switch {
	case maxDD > 30:
		score += 3
	case maxDD > 20:
		score += 2
	case maxDD > 15:
		score++
	case maxDD < 10:
		score--
	}

	if f.VolatilityPct != nil {
		vol := *f.VolatilityPct
		switch {
		case vol > 25:
			score += 2
		case vol > 20:
			score++
		case vol < 15:
			score--
		}
	}

	if score < 1 {
		return 1
	}
	if score > 10 {
		return 10
	}
	return score
}

func summarize(funds []models.FundResult) models.AdvisorSummary {
	if len(funds) == 0 {
		return models.AdvisorSummary{Message: "No funds meet your criteria"}
	}

	n := len(funds)
	if n > 3 {
		n = 3
	}
	var alphaSum, volSum, sharpeSum float64
	for _, f := range funds[:n] {
		alphaSum += deref(f.AlphaPct)
		volSum += deref(f.VolatilityPct)
		sharpeSum += deref(f.SharpeRatio)
	}

	positiveAlpha := 0
	for _, f := range funds {
		if deref(f.AlphaPct) > 0 {
			positiveAlpha++
		}
	}

	return models.AdvisorSummary{
		TotalFundsAnalyzed:     len(funds),
		FundsWithPositiveAlpha: positiveAlpha,
		AverageAlphaPct:        round2(alphaSum / float64(n)),
		AverageVolatilityPct:   round2(volSum / float64(n)),
		AverageSharpeRatio:     round2(sharpeSum / float64(n)),
		MarketOutperformance:   fmt.Sprintf("%d/%d funds beat the benchmark", positiveAlpha, len(funds)),
	}
}

func strategyFor(top []models.FundResult, tolerance, horizon string) map[string]string {
	if len(top) == 0 {
		return map[string]string{
			"primary_recommendation": "No funds meet your criteria. Consider relaxing your filters.",
			"strategy":               "Wait for better market conditions or consider broader market index funds.",
		}
	}

	lead := top[0]
	alpha := deref(lead.AlphaPct)
	vol := deref(lead.VolatilityPct)

	out := map[string]string{}
	switch tolerance {
	case ToleranceConservative:
		out["primary_recommendation"] = fmt.Sprintf(
			"Consider %s as your primary choice. With %.2f%% alpha and %.2f%% volatility, it offers good risk-adjusted returns.",
			lead.FundName, alpha, vol)
		out["strategy"] = "Start with a small allocation (10-15%) and gradually increase based on performance. Focus on SIP investments to reduce timing risk."
	case ToleranceModerate:
		if len(top) >= 2 {
			out["primary_recommendation"] = fmt.Sprintf(
				"Split your investment between %s (60%%) and %s (40%%) for diversification.",
				lead.FundName, top[1].FundName)
		} else {
			out["primary_recommendation"] = fmt.Sprintf(
				"Invest primarily in %s which shows %.2f%% alpha against the benchmark.",
				lead.FundName, alpha)
		}
		out["strategy"] = "Use SIP for 70% of investment and lump sum for 30% during market corrections. Review performance quarterly."
	default: // aggressive
		out["primary_recommendation"] = fmt.Sprintf(
			"Maximize allocation to %s given its strong %.2f%% alpha. Consider up to 25-30%% of your equity portfolio in small cap funds.",
			lead.FundName, alpha)
		out["strategy"] = "Use market volatility to your advantage with systematic investments. Consider increasing allocation during market downturns."
	}

	switch horizon {
	case HorizonShortTerm:
		out["horizon_note"] = "WARNING: Small cap funds are not suitable for short-term investments (< 3 years). Consider debt funds or large cap funds for short-term goals."
	case HorizonMediumTerm:
		out["horizon_note"] = "Medium-term investment (3-7 years) suitable. Monitor closely for the first 2 years."
	default:
		out["horizon_note"] = "Excellent choice for long-term wealth creation (7+ years). Small cap funds historically outperform in long-term horizons."
	}
	return out
}

func allocationFor(top []models.FundResult, tolerance string) map[string]string {
	if len(top) == 0 {
		return map[string]string{"allocation": "No suitable funds found"}
	}

	var out map[string]string
	switch tolerance {
	case ToleranceConservative:
		out = map[string]string{
			"small_cap_funds": "10-15%",
			"large_cap_funds": "40-50%",
			"debt_funds":      "35-50%",
			"recommendation":  "Limited small cap exposure with focus on stability",
		}
	case ToleranceModerate:
		out = map[string]string{
			"small_cap_funds": "20-25%",
			"large_cap_funds": "35-45%",
			"mid_cap_funds":   "10-15%",
			"debt_funds":      "20-30%",
			"recommendation":  "Balanced approach with moderate small cap exposure",
		}
	default:
		out = map[string]string{
			"small_cap_funds": "25-35%",
			"large_cap_funds": "25-35%",
			"mid_cap_funds":   "15-25%",
			"debt_funds":      "10-20%",
			"recommendation":  "Growth-focused with significant small cap allocation",
		}
	}

	out["top_fund_suggestion"] = "Primary allocation: " + top[0].FundName
	if len(top) > 1 {
		out["secondary_fund"] = "Secondary option: " + top[1].FundName
	}
	return out
}

const marketOutlook = "Small cap funds typically outperform during economic expansion phases but can be " +
	"highly volatile during market downturns. Current market conditions favor long-term " +
	"investors with high risk tolerance. Consider market timing and economic cycles " +
	"when making investment decisions."

func warningsFor(top []models.FundResult) []string {
	warnings := []string{
		"Small cap funds are subject to high volatility and market risk",
		"Past performance does not guarantee future results",
		"Investments are subject to market risks - read all scheme documents carefully",
	}
	if len(top) == 0 {
		return warnings
	}

	volSum := 0.0
	for _, f := range top {
		volSum += deref(f.VolatilityPct)
	}
	if avg := volSum / float64(len(top)); avg > 25 {
		warnings = append(warnings, fmt.Sprintf(
			"Selected funds show high volatility (avg %.1f%%) - suitable only for high-risk investors", avg))
	}

	negativeAlpha := 0
	for _, f := range top {
		if deref(f.AlphaPct) < 0 {
			negativeAlpha++
		}
	}
	if negativeAlpha > 0 {
		warnings = append(warnings, fmt.Sprintf(
			"%d recommended funds currently underperform benchmark", negativeAlpha))
	}
	return warnings
}

func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
