package analysis

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"FundPulse/internal/domain/models"
)

// Recommendation labels, strongest first.
const (
	LabelStrongBuy = "STRONG BUY"
	LabelBuy       = "BUY"
	LabelHold      = "HOLD"
	LabelAvoid     = "AVOID"
)

// Score applies the additive recommendation scoring to a metrics set and
// returns the total plus the triggered factor descriptions in evaluation
// order. Signals whose inputs are absent are skipped; scoring never fails.
func Score(m models.FundMetrics) (int, []string) {
	score := 0
	var factors []string

	if m.AlphaPct != nil {
		alpha := *m.AlphaPct
		switch {
		case alpha > 3:
			score += 3
			factors = append(factors, fmt.Sprintf("Strong alpha of %s%%", formatSignal(alpha)))
		case alpha > 0:
			score++
			factors = append(factors, fmt.Sprintf("Positive alpha of %s%%", formatSignal(alpha)))
		default:
			score--
			factors = append(factors, fmt.Sprintf("Negative alpha of %s%%", formatSignal(alpha)))
		}
	}

	if m.InformationRatio != nil {
		ir := *m.InformationRatio
		switch {
		case ir > 0.5:
			score += 2
			factors = append(factors, fmt.Sprintf("Excellent information ratio of %s", formatSignal(ir)))
		case ir > 0:
			score++
			factors = append(factors, fmt.Sprintf("Positive information ratio of %s", formatSignal(ir)))
		default:
			score--
			factors = append(factors, fmt.Sprintf("Poor information ratio of %s", formatSignal(ir)))
		}
	}

	if m.SharpeRatio != nil && m.TreynorRatio != nil && *m.SharpeRatio > 1 && *m.TreynorRatio > 0.1 {
		score += 2
		factors = append(factors, "Strong risk-adjusted returns")
	}

	defined, positive := 0, 0
	for _, w := range m.OutperformanceWindows() {
		if w == nil {
			continue
		}
		defined++
		if *w > 0 {
			positive++
		}
	}
	if defined > 0 {
		ratio := float64(positive) / float64(defined)
		switch {
		case ratio >= 0.75:
			score += 2
			factors = append(factors, "Consistent outperformance across periods")
		case ratio >= 0.5:
			score++
			factors = append(factors, "Generally outperforms benchmark")
		default:
			score--
			factors = append(factors, "Inconsistent benchmark performance")
		}
	}

	return score, factors
}

// formatSignal renders a metric the way the advisory texts quote it:
// integral values keep one decimal ("4.0"), fractional values print in
// full ("4.25").
func formatSignal(v float64) string {
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', 1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Recommend maps a metrics set to its label and rationale text. The
// rationale lists up to the first 3 triggered factors.
func Recommend(m models.FundMetrics) string {
	score, factors := Score(m)

	var label, reason string
	switch {
	case score >= 5:
		label = LabelStrongBuy
		reason = "Excellent benchmark-relative performance with strong risk-adjusted returns"
	case score >= 3:
		label = LabelBuy
		reason = "Good performance against benchmark with acceptable risk"
	case score >= 0:
		label = LabelHold
		reason = "Mixed performance against benchmark, suitable for moderate risk investors"
	default:
		label = LabelAvoid
		reason = "Underperforms benchmark with poor risk-adjusted returns"
	}

	if len(factors) > 3 {
		factors = factors[:3]
	}
	return fmt.Sprintf("%s: %s. Key factors: %s", label, reason, strings.Join(factors, "; "))
}
