package outcomes

import (
	"math"
	"math/rand"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/foresight/internal/domain"
)

func newSeededModeler(seed int64) *Modeler {
	return NewModeler(zerolog.Nop(), rand.NewSource(seed))
}

func testIdea() domain.InvestmentIdea {
	return domain.InvestmentIdea{
		ID: "idea-1",
		Investments: []domain.Investment{
			{ID: "a", RiskMetrics: &domain.RiskMetrics{Volatility: 0.15}},
		},
		PotentialOutcomes: []domain.PotentialOutcome{
			{Scenario: domain.ScenarioExpected, ReturnEstimate: 0.10, Probability: 1.0},
		},
		TimeHorizon: domain.HorizonMedium,
		Strategy:    domain.StrategyBuy,
	}
}

func TestModelScenarioStructure(t *testing.T) {
	model := newSeededModeler(1).Model(testIdea())

	require.Len(t, model.Scenarios, 3)
	assert.Equal(t, "base", model.Scenarios[0].Name)
	assert.Equal(t, "bull", model.Scenarios[1].Name)
	assert.Equal(t, "bear", model.Scenarios[2].Name)

	sum := 0.0
	for _, s := range model.Scenarios {
		sum += s.Probability
	}
	assert.InDelta(t, 1.0, sum, 1e-9)

	// The expected tag overrides the base fallback; bull and bear keep theirs.
	assert.InDelta(t, 0.10, model.Scenarios[0].ExpectedReturn, 1e-9)
	assert.InDelta(t, 0.20, model.Scenarios[1].ExpectedReturn, 1e-9)
	assert.InDelta(t, -0.15, model.Scenarios[2].ExpectedReturn, 1e-9)

	// Medium horizon: base 365, bull 292, bear 547 days.
	assert.Equal(t, 365.0, model.Scenarios[0].TimeHorizonDays)
	assert.Equal(t, 292.0, model.Scenarios[1].TimeHorizonDays)
	assert.Equal(t, 547.0, model.Scenarios[2].TimeHorizonDays)

	weighted := 0.10*0.6 + 0.20*0.2 + (-0.15)*0.2
	assert.InDelta(t, weighted, model.ProbabilityWeightedReturn, 1e-9)
}

func TestScenarioHorizonFromOutcome(t *testing.T) {
	idea := testIdea()
	idea.PotentialOutcomes = []domain.PotentialOutcome{
		{Scenario: domain.ScenarioExpected, ReturnEstimate: 0.10, Probability: 0.6, TimeToRealization: 100},
		{Scenario: domain.ScenarioBest, ReturnEstimate: 0.25, Probability: 0.2, TimeToRealization: 50},
	}

	model := newSeededModeler(1).Model(idea)

	// Supplied realization times drive the matched scenarios; the unmatched
	// bear scenario falls back to the scaled holding period.
	assert.Equal(t, 100.0, model.Scenarios[0].TimeHorizonDays)
	assert.Equal(t, 50.0, model.Scenarios[1].TimeHorizonDays)
	assert.Equal(t, 547.0, model.Scenarios[2].TimeHorizonDays)

	// Milestones follow the shortened horizon: one review plus the event.
	base := model.Scenarios[0]
	require.Len(t, base.Milestones, 2)
	assert.Equal(t, 90.0, base.Milestones[0].Day)
	assert.Equal(t, 50.0, base.Milestones[1].Day)
	assert.Equal(t, "Major Market Event", base.Milestones[1].Description)
}

func TestScenarioMilestonesIntradayHorizon(t *testing.T) {
	idea := testIdea()
	idea.PotentialOutcomes = nil
	idea.TimeHorizon = domain.HorizonIntraday

	model := newSeededModeler(1).Model(idea)

	base := model.Scenarios[0]
	assert.Equal(t, 1.0, base.TimeHorizonDays)

	// A one-day horizon has no quarterly reviews; the market event cannot
	// land before day 1.
	require.Len(t, base.Milestones, 1)
	assert.Equal(t, "Major Market Event", base.Milestones[0].Description)
	assert.Equal(t, 1.0, base.Milestones[0].Day)
}

func TestScenarioMilestones(t *testing.T) {
	model := newSeededModeler(1).Model(testIdea())

	base := model.Scenarios[0]
	// 365-day horizon: reviews at days 90, 180, 270, 360 plus the market event.
	require.Len(t, base.Milestones, 5)
	assert.Equal(t, 90.0, base.Milestones[0].Day)
	assert.Equal(t, "Q1 Performance Review", base.Milestones[0].Description)
	assert.Equal(t, 360.0, base.Milestones[3].Day)
	assert.Equal(t, "Q4 Performance Review", base.Milestones[3].Description)

	event := base.Milestones[4]
	assert.Equal(t, "Major Market Event", event.Description)
	assert.Equal(t, 182.0, event.Day)
	assert.Equal(t, 0.3, event.Probability)
}

func TestConfidenceInterval(t *testing.T) {
	model := newSeededModeler(1).Model(testIdea())

	margin := 1.96 * (0.15 / math.Sqrt(252))
	assert.Equal(t, 0.95, model.ConfidenceInterval.Level)
	assert.InDelta(t, 0.10-margin, model.ConfidenceInterval.Lower, 1e-9)
	assert.InDelta(t, 0.10+margin, model.ConfidenceInterval.Upper, 1e-9)
}

func TestSensitivityTable(t *testing.T) {
	model := newSeededModeler(1).Model(testIdea())

	require.Len(t, model.Sensitivity.Variables, 3)
	assert.Equal(t, "Market Return", model.Sensitivity.Variables[0].Name)
	assert.Equal(t, "Interest Rates", model.Sensitivity.Variables[1].Name)
	assert.Equal(t, "Volatility", model.Sensitivity.Variables[2].Name)

	matrix := model.Sensitivity.CorrelationMatrix
	require.Len(t, matrix, 3)
	for i := range matrix {
		require.Len(t, matrix[i], 3)
		assert.Equal(t, 1.0, matrix[i][i])
		for j := range matrix[i] {
			assert.Equal(t, matrix[i][j], matrix[j][i], "matrix must be symmetric")
		}
	}
}

func TestMonteCarloDistribution(t *testing.T) {
	model := newSeededModeler(42).Model(testIdea())
	mc := model.MonteCarlo

	assert.Equal(t, 10000, mc.Iterations)

	// Standard error of the mean is vol/sqrt(n) = 0.0015; allow 3 sigma.
	assert.InDelta(t, 0.10, mc.Mean, 3*0.15/math.Sqrt(10000))
	assert.InDelta(t, 0.15, mc.StdDev, 0.01)
	assert.InDelta(t, 0.10, mc.Percentiles["p50"], 0.01)

	require.Len(t, mc.Percentiles, 9)
	assert.Less(t, mc.Percentiles["p1"], mc.Percentiles["p99"])
	assert.LessOrEqual(t, mc.ExpectedShortfall, mc.Percentiles["p5"])

	assert.GreaterOrEqual(t, mc.ProbabilityOfLoss, 0.0)
	assert.LessOrEqual(t, mc.ProbabilityOfLoss, 1.0)
	// With mean 0.10 and vol 0.15, P(X<0) is about 25%.
	assert.InDelta(t, 0.2525, mc.ProbabilityOfLoss, 0.03)
	// P(X>=0.10) is about 50%.
	assert.InDelta(t, 0.5, mc.ProbabilityOfTarget, 0.03)
}

func TestMonteCarloDeterministicWithSeed(t *testing.T) {
	first := newSeededModeler(7).Model(testIdea()).MonteCarlo
	second := newSeededModeler(7).Model(testIdea()).MonteCarlo

	assert.Equal(t, first.Mean, second.Mean)
	assert.Equal(t, first.StdDev, second.StdDev)
	assert.Equal(t, first.Percentiles, second.Percentiles)
}

func TestMonteCarloZeroVolatility(t *testing.T) {
	idea := testIdea()
	idea.Investments[0].RiskMetrics.Volatility = 0

	mc := newSeededModeler(1).Model(idea).MonteCarlo
	assert.InDelta(t, 0.10, mc.Mean, 1e-9)
	assert.InDelta(t, 0.0, mc.StdDev, 1e-9)
	assert.Equal(t, 0.0, mc.ProbabilityOfLoss)
	assert.Equal(t, 1.0, mc.ProbabilityOfTarget)
}

func TestProjection(t *testing.T) {
	model := newSeededModeler(1).Model(testIdea())

	// Medium horizon caps at 365 days.
	require.Len(t, model.Projection, 365)

	dailyReturn := model.MonteCarlo.Mean / 252
	dailyVol := 0.15 / math.Sqrt(252)

	first := model.Projection[0]
	assert.Equal(t, 1, first.Day)
	assert.InDelta(t, dailyReturn, first.ExpectedValue, 1e-9)
	assert.InDelta(t, dailyReturn+1.96*dailyVol, first.Upper95, 1e-9)
	assert.InDelta(t, dailyReturn-dailyVol, first.Lower68, 1e-9)

	last := model.Projection[364]
	assert.Equal(t, 365, last.Day)
	assert.InDelta(t, dailyReturn*365, last.ExpectedValue, 1e-9)
	assert.InDelta(t, dailyReturn*365, last.CumulativeReturn, 1e-6)

	// Bands widen monotonically with sqrt(i).
	assert.Greater(t, last.Upper95-last.ExpectedValue, first.Upper95-first.ExpectedValue)
}

func TestProjectionShortHorizon(t *testing.T) {
	idea := testIdea()
	idea.TimeHorizon = domain.HorizonShort

	model := newSeededModeler(1).Model(idea)
	assert.Len(t, model.Projection, 90)
}

func TestModelEmptyIdea(t *testing.T) {
	model := newSeededModeler(1).Model(domain.InvestmentIdea{})

	require.Len(t, model.Scenarios, 3)
	assert.InDelta(t, 0.08, model.Scenarios[0].ExpectedReturn, 1e-9)

	mc := model.MonteCarlo
	assert.False(t, math.IsNaN(mc.Mean))
	assert.InDelta(t, 0.0, mc.StdDev, 1e-9)
	assert.Len(t, model.Projection, 365)
}
