// Package risk builds the structured multi-factor risk assessment for an
// investment idea.
package risk

import (
	"math"

	"github.com/rs/zerolog"

	"github.com/aristath/foresight/internal/config"
	"github.com/aristath/foresight/internal/domain"
)

// Assessor turns an investment idea into a risk taxonomy. It holds no state;
// Assess is a pure function of its input. Low-level statistics are computed
// locally rather than shared with the metrics calculator.
type Assessor struct {
	log zerolog.Logger
}

// NewAssessor creates a new risk assessor
func NewAssessor(log zerolog.Logger) *Assessor {
	return &Assessor{
		log: log.With().Str("component", "risk").Logger(),
	}
}

// Assess computes the full risk assessment. It is total: every input shape
// produces a complete assessment, and no output field is ever NaN.
func (a *Assessor) Assess(idea domain.InvestmentIdea) domain.RiskAssessment {
	a.log.Debug().
		Int("investments", len(idea.Investments)).
		Str("strategy", string(idea.Strategy)).
		Str("horizon", string(idea.TimeHorizon)).
		Msg("Assessing risk")

	score := a.riskScore(idea)
	factors := identifyRiskFactors(idea)

	return domain.RiskAssessment{
		RiskScore:         score,
		RiskLevel:         LevelForScore(score),
		RiskFactors:       factors,
		Mitigations:       mitigationsFor(factors),
		StressTests:       stressTests(idea.Investments),
		ScenarioAnalysis:  scenarioAnalysis(),
		CorrelationRisks:  correlationRisks(idea.Investments),
		LiquidityRisk:     assessLiquidityRisk(idea.Investments),
		ConcentrationRisk: assessConcentrationRisk(idea.Investments),
		MarketRisk:        assessMarketRisk(idea.Investments),
		CreditRisk:        assessCreditRisk(idea.Investments),
		OperationalRisk:   assessOperationalRisk(idea),
	}
}

// riskScore averages four capped contributions: volatility, concentration,
// time horizon and strategy.
func (a *Assessor) riskScore(idea domain.InvestmentIdea) float64 {
	volatilityRisk := math.Min(averageVolatility(idea.Investments)*100, 40)
	concentrationRisk := equalWeightHHI(len(idea.Investments)) * 20
	horizonRisk := config.HorizonRisk(idea.TimeHorizon)
	strategyRisk := config.StrategyRisk(idea.Strategy)

	return (volatilityRisk + concentrationRisk + horizonRisk + strategyRisk) / 4
}

// LevelForScore buckets a risk score into its named level. Boundaries are
// inclusive: a score of exactly 20 is still very-low, exactly 80 still high.
func LevelForScore(score float64) domain.RiskLevel {
	switch {
	case score <= 20:
		return domain.RiskVeryLow
	case score <= 40:
		return domain.RiskLow
	case score <= 60:
		return domain.RiskModerate
	case score <= 80:
		return domain.RiskHigh
	default:
		return domain.RiskVeryHigh
	}
}

func averageVolatility(investments []domain.Investment) float64 {
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

// averageBeta defaults a missing beta to 1 (market sensitivity) rather than
// 0, so a sparse portfolio is not reported as market-neutral.
func averageBeta(investments []domain.Investment) float64 {
	if len(investments) == 0 {
		return 0
	}
	sum := 0.0
	for _, inv := range investments {
		if inv.RiskMetrics != nil {
			sum += inv.RiskMetrics.Beta
		} else {
			sum += 1.0
		}
	}
	return sum / float64(len(investments))
}

// equalWeightHHI is 1/n under the equal-weight assumption, 1 for an empty
// portfolio.
func equalWeightHHI(n int) float64 {
	if n == 0 {
		return 1
	}
	return 1.0 / float64(n)
}

func distinctSectors(investments []domain.Investment) int {
	sectors := make(map[string]bool)
	for _, inv := range investments {
		sectors[inv.Sector] = true
	}
	return len(sectors)
}

func distinctAssetTypes(investments []domain.Investment) int {
	types := make(map[domain.AssetType]bool)
	for _, inv := range investments {
		types[inv.AssetType] = true
	}
	return len(types)
}

// trailingAverageVolume averages the traded volume over the last 30 bars
// (or the whole history when shorter).
func trailingAverageVolume(history []domain.PriceBar) float64 {
	if len(history) == 0 {
		return 0
	}
	start := len(history) - 30
	if start < 0 {
		start = 0
	}
	window := history[start:]
	sum := 0.0
	for _, bar := range window {
		sum += bar.Volume
	}
	return sum / float64(len(window))
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
