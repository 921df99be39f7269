package config

import (
	"github.com/aristath/foresight/internal/domain"
	"github.com/aristath/foresight/pkg/formulas"
)

// Model assumptions. These are deliberately simplified single-factor
// constants; keeping them in one place makes the tunable surface auditable
// and swappable in tests.
const (
	// RiskFreeRate is the annual risk-free rate used by risk-adjusted ratios.
	RiskFreeRate = 0.02
	// BenchmarkReturn is the annual benchmark used by the information ratio.
	BenchmarkReturn = 0.08
	// TransactionCost is the round-trip cost fraction used for breakeven.
	TransactionCost = 0.01
	// TargetReturn is the threshold for the Monte Carlo target probability.
	TargetReturn = 0.10
	// MonteCarloIterations is the number of simulated return paths.
	MonteCarloIterations = 10000
	// TradingDaysPerYear annualizes daily series.
	TradingDaysPerYear = formulas.TradingDaysPerYear
	// DefaultCorrelation is assumed for pairs with no correlation entry.
	DefaultCorrelation = 0.5
	// DefaultConfidenceLevel is the VaR confidence level the engine uses.
	DefaultConfidenceLevel = 0.05
	// MinLiquidVolume is the traded-volume floor below which a bar counts
	// as illiquid.
	MinLiquidVolume = 100_000.0
	// HighBetaThreshold flags elevated market sensitivity.
	HighBetaThreshold = 1.2
	// HighCorrelationThreshold flags a correlated pair.
	HighCorrelationThreshold = 0.7
	// SevereCorrelationThreshold upgrades a correlated pair to high severity.
	SevereCorrelationThreshold = 0.8
	// DownsideDeviationFactor approximates downside deviation as a fraction
	// of total volatility. Placeholder pending a real downside series.
	DownsideDeviationFactor = 0.7
	// TrackingErrorFactor approximates tracking error as a fraction of total
	// volatility. Placeholder pending a real benchmark series.
	TrackingErrorFactor = 0.5
	// EmptySupportDataQuality is the data-quality score when no supporting
	// data points exist.
	EmptySupportDataQuality = 30.0
)

// HighQualitySources classify a data point's source by substring match.
var HighQualitySources = []string{
	"bloomberg", "reuters", "wsj", "financial times", "sec", "federal reserve",
}

// MediumQualitySources is the second classification tier.
var MediumQualitySources = []string{
	"yahoo finance", "cnbc", "marketwatch", "seeking alpha", "morningstar",
}

// ZScore returns the z-score for a mapped confidence level. Unmapped levels
// fall back to the 5% z-score rather than erroring.
func ZScore(confidenceLevel float64) float64 {
	switch confidenceLevel {
	case 0.01:
		return -2.326
	case 0.05:
		return -1.645
	case 0.10:
		return -1.282
	default:
		return -1.645
	}
}

// HoldingPeriodDays maps a time horizon to an optimal holding period in days.
func HoldingPeriodDays(h domain.TimeHorizon) float64 {
	switch h {
	case domain.HorizonIntraday:
		return 1
	case domain.HorizonShort:
		return 90
	case domain.HorizonMedium:
		return 365
	case domain.HorizonLong:
		return 1095
	case domain.HorizonVeryLong:
		return 1825
	default:
		return 365
	}
}

// HorizonRisk maps a time horizon to its risk-score contribution. Shorter
// horizons leave less room to recover from drawdowns.
func HorizonRisk(h domain.TimeHorizon) float64 {
	switch h {
	case domain.HorizonIntraday:
		return 30
	case domain.HorizonShort:
		return 20
	case domain.HorizonMedium:
		return 10
	case domain.HorizonLong:
		return 5
	case domain.HorizonVeryLong:
		return 2
	default:
		return 15
	}
}

// StrategyRisk maps a strategy to its risk-score contribution.
func StrategyRisk(s domain.Strategy) float64 {
	switch s {
	case domain.StrategyBuy:
		return 10
	case domain.StrategyHold:
		return 5
	case domain.StrategySell:
		return 10
	case domain.StrategyShort:
		return 30
	case domain.StrategyLong:
		return 10
	case domain.StrategyHedge:
		return 8
	case domain.StrategyArbitrage:
		return 20
	case domain.StrategyPairsTrade:
		return 18
	case domain.StrategyMomentum:
		return 25
	case domain.StrategyValue:
		return 8
	case domain.StrategyGrowth:
		return 12
	case domain.StrategyIncome:
		return 5
	case domain.StrategyComplex:
		return 28
	default:
		return 15
	}
}

// StrategyFitAdjustment maps a strategy to its market-condition suitability
// adjustment.
func StrategyFitAdjustment(s domain.Strategy) float64 {
	switch s {
	case domain.StrategyGrowth:
		return 10
	case domain.StrategyValue:
		return 5
	case domain.StrategyMomentum:
		return -5
	default:
		return 0
	}
}
