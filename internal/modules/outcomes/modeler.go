// Package outcomes builds the probabilistic outcome model for an investment
// idea: named scenarios, a Monte Carlo return distribution, and a daily
// projection with confidence bands.
package outcomes

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/foresight/internal/config"
	"github.com/aristath/foresight/internal/domain"
	"github.com/aristath/foresight/pkg/formulas"
)

// Scenario probabilities. They must sum to exactly 1.0.
const (
	baseProbability = 0.6
	bullProbability = 0.2
	bearProbability = 0.2
)

// Fallback return estimates when the idea carries no matching potential
// outcome.
const (
	baseFallbackReturn = 0.08
	bullFallbackReturn = 0.20
	bearFallbackReturn = -0.15
)

// Modeler builds expected-outcome models. It is the only component that
// consumes randomness; the generator is injected so tests can seed it and
// assert exact distribution statistics.
type Modeler struct {
	log zerolog.Logger

	// rand.Rand is not safe for concurrent use; the mutex serializes
	// simulation runs across concurrent Model calls.
	mu  sync.Mutex
	rng *rand.Rand
}

// NewModeler creates a new outcome modeler. A nil source falls back to a
// time-seeded generator.
func NewModeler(log zerolog.Logger, src rand.Source) *Modeler {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &Modeler{
		log: log.With().Str("component", "outcomes").Logger(),
		rng: rand.New(src),
	}
}

// Model computes the full outcome model. It is total over its input shape;
// every numeric field is finite.
func (m *Modeler) Model(idea domain.InvestmentIdea) domain.ExpectedOutcomeModel {
	m.log.Debug().
		Int("investments", len(idea.Investments)).
		Int("outcomes", len(idea.PotentialOutcomes)).
		Msg("Modeling expected outcomes")

	expectedReturn := expectedReturn(idea)
	volatility := averageVolatility(idea.Investments)
	holdingPeriod := int(config.HoldingPeriodDays(idea.TimeHorizon))

	scenarios := buildScenarios(idea, holdingPeriod)

	weighted := 0.0
	for _, s := range scenarios {
		weighted += s.ExpectedReturn * s.Probability
	}

	monteCarlo := m.simulate(expectedReturn, volatility, config.MonteCarloIterations)

	return domain.ExpectedOutcomeModel{
		Scenarios:                 scenarios,
		ProbabilityWeightedReturn: weighted,
		ConfidenceInterval:        confidenceInterval(expectedReturn, volatility),
		Sensitivity:               sensitivityAnalysis(),
		MonteCarlo:                monteCarlo,
		Projection:                project(monteCarlo.Mean, volatility, holdingPeriod),
	}
}

// expectedReturn mirrors the metrics calculator's policy: probability-
// weighted outcomes when present, annualized history otherwise.
func expectedReturn(idea domain.InvestmentIdea) float64 {
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
		n := len(inv.History)
		if n < 2 {
			continue
		}
		sum += formulas.AnnualizeGrowth(inv.History[0].AdjClose, inv.History[n-1].AdjClose, n)
	}
	return sum / float64(len(idea.Investments))
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

// confidenceInterval is the 95% normal-approximation interval around the
// expected return using daily-scaled volatility.
func confidenceInterval(expectedReturn, volatility float64) domain.ConfidenceInterval {
	margin := 1.96 * (volatility / math.Sqrt(config.TradingDaysPerYear))
	return domain.ConfidenceInterval{
		Level: 0.95,
		Lower: expectedReturn - margin,
		Upper: expectedReturn + margin,
	}
}

// sensitivityAnalysis is a fixed driver table; portfolio data does not
// currently perturb these constants.
func sensitivityAnalysis() domain.SensitivityAnalysis {
	return domain.SensitivityAnalysis{
		Variables: []domain.SensitivityVariable{
			{
				Name:       "Market Return",
				BaseValue:  0.08,
				Impact:     0.8,
				Elasticity: 1.2,
				RangeLow:   -0.20,
				RangeHigh:  0.30,
			},
			{
				Name:       "Interest Rates",
				BaseValue:  0.04,
				Impact:     -0.5,
				Elasticity: -0.8,
				RangeLow:   0.0,
				RangeHigh:  0.10,
			},
			{
				Name:       "Volatility",
				BaseValue:  0.15,
				Impact:     -0.3,
				Elasticity: -0.5,
				RangeLow:   0.05,
				RangeHigh:  0.60,
			},
		},
		CorrelationMatrix: [][]float64{
			{1.0, -0.3, -0.5},
			{-0.3, 1.0, 0.4},
			{-0.5, 0.4, 1.0},
		},
	}
}
