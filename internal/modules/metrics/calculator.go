// Package metrics computes the scalar financial metric set for an
// investment idea.
package metrics

import (
	"math"

	"github.com/rs/zerolog"

	"github.com/aristath/foresight/internal/config"
	"github.com/aristath/foresight/internal/domain"
	"github.com/aristath/foresight/pkg/formulas"
)

// Calculator turns an investment idea into key financial metrics. It holds
// no state; Calculate is a pure function of its input.
type Calculator struct {
	log zerolog.Logger
}

// NewCalculator creates a new metrics calculator
func NewCalculator(log zerolog.Logger) *Calculator {
	return &Calculator{
		log: log.With().Str("component", "metrics").Logger(),
	}
}

// Calculate computes the full metric set for an idea. It is total: degenerate
// inputs produce documented defaults, never an error, and no output field is
// ever NaN. TimeToBreakeven is +Inf when the expected return is non-positive.
func (c *Calculator) Calculate(idea domain.InvestmentIdea) domain.KeyMetrics {
	c.log.Debug().
		Int("investments", len(idea.Investments)).
		Int("outcomes", len(idea.PotentialOutcomes)).
		Str("strategy", string(idea.Strategy)).
		Msg("Calculating key metrics")

	expectedReturn := c.expectedReturn(idea)
	volatility := c.averageVolatility(idea.Investments)
	maxDrawdown := c.portfolioMaxDrawdown(idea.Investments)

	return domain.KeyMetrics{
		ExpectedReturn:             expectedReturn,
		Volatility:                 volatility,
		SharpeRatio:                sharpeRatio(expectedReturn, volatility),
		MaxDrawdown:                maxDrawdown,
		ValueAtRisk:                valueAtRisk(expectedReturn, volatility, config.DefaultConfidenceLevel),
		DiversificationRatio:       diversificationRatio(idea.Investments),
		CorrelationScore:           correlationScore(idea.Investments),
		ConcentrationRisk:          concentrationHHI(len(idea.Investments)),
		FundamentalScore:           fundamentalScore(idea.Investments),
		TechnicalScore:             technicalScore(idea.Investments),
		SentimentScore:             sentimentScore(idea.Investments),
		InformationRatio:           informationRatio(expectedReturn, volatility),
		CalmarRatio:                calmarRatio(expectedReturn, maxDrawdown),
		SortinoRatio:               sortinoRatio(expectedReturn, volatility),
		TimeToBreakeven:            timeToBreakeven(expectedReturn),
		OptimalHoldingPeriod:       config.HoldingPeriodDays(idea.TimeHorizon),
		DataQuality:                dataQualityScore(idea.SupportingData),
		MarketConditionSuitability: marketConditionSuitability(idea.Strategy, idea.RiskLevel),
	}
}

// expectedReturn is the probability-weighted outcome return when outcomes
// exist, otherwise the portfolio-average annualized historical return.
func (c *Calculator) expectedReturn(idea domain.InvestmentIdea) float64 {
	if len(idea.PotentialOutcomes) > 0 {
		weighted := 0.0
		for _, outcome := range idea.PotentialOutcomes {
			weighted += outcome.ReturnEstimate * outcome.Probability
		}
		return weighted
	}

	if len(idea.Investments) == 0 {
		return 0
	}

	sum := 0.0
	for _, inv := range idea.Investments {
		sum += historicalAnnualReturn(inv)
	}
	return sum / float64(len(idea.Investments))
}

// historicalAnnualReturn annualizes the growth between the first and last
// adjusted close over the available bar count.
func historicalAnnualReturn(inv domain.Investment) float64 {
	n := len(inv.History)
	if n < 2 {
		return 0
	}
	return formulas.AnnualizeGrowth(inv.History[0].AdjClose, inv.History[n-1].AdjClose, n)
}

// averageVolatility is the equal-weighted average of per-investment
// volatility. No covariance matrix is used; missing risk metrics count as 0.
func (c *Calculator) averageVolatility(investments []domain.Investment) float64 {
	if len(investments) == 0 {
		return 0
	}
	sum := 0.0
	for _, inv := range investments {
		if inv.RiskMetrics != nil {
			sum += inv.RiskMetrics.Volatility
		}
	}
	return sum / float64(len(investments))
}

// portfolioMaxDrawdown is the worst drawdown across all investments and bars.
func (c *Calculator) portfolioMaxDrawdown(investments []domain.Investment) float64 {
	worst := 0.0
	for _, inv := range investments {
		prices := make([]float64, len(inv.History))
		for i, bar := range inv.History {
			prices[i] = bar.AdjClose
		}
		if dd := formulas.MaxDrawdown(prices); dd > worst {
			worst = dd
		}
	}
	return worst
}

func sharpeRatio(expectedReturn, volatility float64) float64 {
	if volatility == 0 {
		return 0
	}
	return (expectedReturn - config.RiskFreeRate) / volatility
}

func valueAtRisk(expectedReturn, volatility, confidenceLevel float64) float64 {
	return expectedReturn + config.ZScore(confidenceLevel)*volatility
}

// diversificationRatio averages the distinct-sector and distinct-asset-type
// fractions. A single position cannot be diversified.
func diversificationRatio(investments []domain.Investment) float64 {
	n := len(investments)
	if n <= 1 {
		return 0
	}

	sectors := make(map[string]bool)
	assetTypes := make(map[domain.AssetType]bool)
	for _, inv := range investments {
		sectors[inv.Sector] = true
		assetTypes[inv.AssetType] = true
	}

	return (float64(len(sectors))/float64(n) + float64(len(assetTypes))/float64(n)) / 2
}

// correlationScore averages the absolute pairwise correlation over all
// unordered pairs, assuming the default where no entry exists.
func correlationScore(investments []domain.Investment) float64 {
	n := len(investments)
	if n <= 1 {
		return 0
	}

	sum := 0.0
	pairs := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			sum += math.Abs(pairCorrelation(investments[i], investments[j]))
			pairs++
		}
	}
	return sum / float64(pairs)
}

// pairCorrelation looks up the correlation between two investments from
// either side's correlation map, defaulting when neither has an entry.
func pairCorrelation(a, b domain.Investment) float64 {
	if a.RiskMetrics != nil {
		if corr, ok := a.RiskMetrics.Correlations[b.ID]; ok {
			return corr
		}
	}
	if b.RiskMetrics != nil {
		if corr, ok := b.RiskMetrics.Correlations[a.ID]; ok {
			return corr
		}
	}
	return config.DefaultCorrelation
}

// concentrationHHI is the Herfindahl-Hirschman index under the equal-weight
// assumption: sum of squared weights = 1/n. An empty portfolio is fully
// concentrated by convention.
func concentrationHHI(n int) float64 {
	if n == 0 {
		return 1
	}
	weight := 1.0 / float64(n)
	hhi := 0.0
	for i := 0; i < n; i++ {
		hhi += weight * weight
	}
	return hhi
}

func informationRatio(expectedReturn, volatility float64) float64 {
	trackingError := volatility * config.TrackingErrorFactor
	if trackingError == 0 {
		return 0
	}
	return (expectedReturn - config.BenchmarkReturn) / trackingError
}

func calmarRatio(expectedReturn, maxDrawdown float64) float64 {
	if maxDrawdown == 0 {
		return 0
	}
	return expectedReturn / maxDrawdown
}

// sortinoRatio approximates downside deviation as a fixed fraction of total
// volatility; the target return defaults to 0.
func sortinoRatio(expectedReturn, volatility float64) float64 {
	downwardDeviation := volatility * config.DownsideDeviationFactor
	if downwardDeviation == 0 {
		return 0
	}
	return expectedReturn / downwardDeviation
}

// timeToBreakeven estimates the days needed to earn back the transaction
// cost. A non-positive expected return never breaks even.
func timeToBreakeven(expectedReturn float64) float64 {
	if expectedReturn <= 0 {
		return math.Inf(1)
	}
	return (config.TransactionCost / expectedReturn) * 365
}

func marketConditionSuitability(strategy domain.Strategy, riskLevel domain.RiskLevel) float64 {
	score := 50.0
	score += config.StrategyFitAdjustment(strategy)
	if riskLevel == domain.RiskHigh || riskLevel == domain.RiskVeryHigh {
		score -= 10
	}
	return formulas.Clamp(score, 0, 100)
}
