package metrics

import (
	"strings"
	"time"

	"github.com/aristath/foresight/internal/config"
	"github.com/aristath/foresight/internal/domain"
	"github.com/aristath/foresight/pkg/formulas"
)

// Score bands. Each qualifying investment starts at the neutral base and
// collects fixed additive adjustments keyed on named thresholds; the result
// is clipped to [0,100] per investment and averaged across investments that
// carry the relevant optional field.
const (
	baseScore    = 50.0
	neutralScore = 50.0
)

// fundamentalScore scores P/E, profit margin, return on equity and
// debt-to-equity against fixed bands.
func fundamentalScore(investments []domain.Investment) float64 {
	scores := make([]float64, 0, len(investments))
	for _, inv := range investments {
		if inv.Fundamentals == nil {
			continue
		}
		f := inv.Fundamentals
		score := baseScore

		if f.PERatio < 15 {
			score += 10 // attractively valued
		} else if f.PERatio > 40 {
			score -= 10 // expensive
		}

		if f.ProfitMargin > 0.15 {
			score += 10
		} else if f.ProfitMargin < 0 {
			score -= 10
		}

		if f.ReturnOnEquity > 0.15 {
			score += 10
		} else if f.ReturnOnEquity < 0 {
			score -= 10
		}

		if f.DebtToEquity < 0.5 {
			score += 5
		} else if f.DebtToEquity > 2 {
			score -= 10
		}

		scores = append(scores, formulas.Clamp(score, 0, 100))
	}

	if len(scores) == 0 {
		return neutralScore
	}
	return formulas.Mean(scores)
}

// technicalScore scores RSI bands, moving-average alignment and the MACD
// crossover against fixed bands.
func technicalScore(investments []domain.Investment) float64 {
	scores := make([]float64, 0, len(investments))
	for _, inv := range investments {
		if inv.Technicals == nil {
			continue
		}
		t := inv.Technicals
		score := baseScore

		if t.RSI < 30 {
			score += 15 // oversold
		} else if t.RSI > 70 {
			score -= 10 // overbought
		}

		if inv.CurrentPrice > t.MA50 && t.MA50 > t.MA200 {
			score += 15 // uptrend
		} else if inv.CurrentPrice < t.MA50 && t.MA50 < t.MA200 {
			score -= 15 // downtrend
		}

		if t.MACD > t.MACDSignal {
			score += 10
		} else if t.MACD < t.MACDSignal {
			score -= 10
		}

		scores = append(scores, formulas.Clamp(score, 0, 100))
	}

	if len(scores) == 0 {
		return neutralScore
	}
	return formulas.Mean(scores)
}

// sentimentScore maps the categorical sentiment, its trend, and the analyst
// buy ratio to fixed adjustments.
func sentimentScore(investments []domain.Investment) float64 {
	scores := make([]float64, 0, len(investments))
	for _, inv := range investments {
		if inv.Sentiment == nil {
			continue
		}
		s := inv.Sentiment
		score := baseScore

		switch s.Overall {
		case domain.SentimentVeryPositive:
			score += 20
		case domain.SentimentPositive:
			score += 10
		case domain.SentimentNeutral:
			// no adjustment
		case domain.SentimentNegative:
			score -= 10
		case domain.SentimentVeryNegative:
			score -= 20
		}

		switch s.Trend {
		case domain.TrendImproving:
			score += 10
		case domain.TrendDeclining:
			score -= 10
		}

		total := s.AnalystBuy + s.AnalystHold + s.AnalystSell
		if total > 0 {
			buyRatio := float64(s.AnalystBuy) / float64(total)
			score += (buyRatio - 0.5) * 20
		}

		scores = append(scores, formulas.Clamp(score, 0, 100))
	}

	if len(scores) == 0 {
		return neutralScore
	}
	return formulas.Mean(scores)
}

// dataQualityScore grades supporting data on reliability, recency and source
// quality. No supporting data at all earns the documented low default.
func dataQualityScore(points []domain.DataPoint) float64 {
	if len(points) == 0 {
		return config.EmptySupportDataQuality
	}

	now := time.Now()
	sum := 0.0
	for _, p := range points {
		recency := recencyWeight(now.Sub(p.Timestamp))
		source := sourceQuality(p.Source)
		sum += (p.Reliability*0.4 + recency*0.3 + source*0.3) * 100
	}
	return sum / float64(len(points))
}

// recencyWeight buckets a data point's age in days.
func recencyWeight(age time.Duration) float64 {
	days := age.Hours() / 24
	switch {
	case days <= 1:
		return 1.0
	case days <= 7:
		return 0.9
	case days <= 30:
		return 0.7
	case days <= 90:
		return 0.5
	case days <= 365:
		return 0.3
	default:
		return 0.1
	}
}

// sourceQuality classifies a source string by substring match against the
// fixed quality tiers.
func sourceQuality(source string) float64 {
	lowered := strings.ToLower(source)
	for _, s := range config.HighQualitySources {
		if strings.Contains(lowered, s) {
			return 0.9
		}
	}
	for _, s := range config.MediumQualitySources {
		if strings.Contains(lowered, s) {
			return 0.7
		}
	}
	return 0.5
}
