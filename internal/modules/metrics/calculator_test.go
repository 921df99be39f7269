package metrics

import (
	"math"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/aristath/foresight/internal/domain"
)

func newTestCalculator() *Calculator {
	return NewCalculator(zerolog.Nop())
}

// historyBars builds a linear price path from first to last over n bars.
func historyBars(first, last float64, n int) []domain.PriceBar {
	bars := make([]domain.PriceBar, n)
	step := (last - first) / float64(n-1)
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range bars {
		price := first + step*float64(i)
		bars[i] = domain.PriceBar{
			Date:     start.AddDate(0, 0, i),
			Close:    price,
			AdjClose: price,
			Volume:   500_000,
		}
	}
	return bars
}

func TestCalculateEmptyPortfolio(t *testing.T) {
	m := newTestCalculator().Calculate(domain.InvestmentIdea{})

	assert.Equal(t, 0.0, m.ExpectedReturn)
	assert.Equal(t, 0.0, m.Volatility)
	assert.Equal(t, 0.0, m.SharpeRatio)
	assert.Equal(t, 1.0, m.ConcentrationRisk)
	assert.Equal(t, 0.0, m.DiversificationRatio)
	assert.Equal(t, 0.0, m.CorrelationScore)
	assert.Equal(t, 50.0, m.FundamentalScore)
	assert.Equal(t, 50.0, m.TechnicalScore)
	assert.Equal(t, 50.0, m.SentimentScore)
	assert.Equal(t, 30.0, m.DataQuality)
	assert.True(t, math.IsInf(m.TimeToBreakeven, 1))
}

func TestCalculateNeverNaN(t *testing.T) {
	ideas := []domain.InvestmentIdea{
		{},
		{Investments: []domain.Investment{{ID: "a"}}},
		{
			Investments: []domain.Investment{
				{ID: "a", History: historyBars(100, 50, 10)},
				{ID: "b", RiskMetrics: &domain.RiskMetrics{Volatility: 0.3}},
			},
			PotentialOutcomes: []domain.PotentialOutcome{
				{Scenario: domain.ScenarioExpected, ReturnEstimate: -0.2, Probability: 1.0},
			},
		},
	}

	for _, idea := range ideas {
		m := newTestCalculator().Calculate(idea)
		for name, v := range map[string]float64{
			"expected_return":       m.ExpectedReturn,
			"volatility":            m.Volatility,
			"sharpe_ratio":          m.SharpeRatio,
			"max_drawdown":          m.MaxDrawdown,
			"value_at_risk":         m.ValueAtRisk,
			"diversification_ratio": m.DiversificationRatio,
			"correlation_score":     m.CorrelationScore,
			"concentration_risk":    m.ConcentrationRisk,
			"information_ratio":     m.InformationRatio,
			"calmar_ratio":          m.CalmarRatio,
			"sortino_ratio":         m.SortinoRatio,
			"data_quality":          m.DataQuality,
		} {
			assert.False(t, math.IsNaN(v), "%s is NaN", name)
		}
	}
}

func TestExpectedReturnProbabilityWeighted(t *testing.T) {
	idea := domain.InvestmentIdea{
		PotentialOutcomes: []domain.PotentialOutcome{
			{Scenario: domain.ScenarioExpected, ReturnEstimate: 0.10, Probability: 0.6},
			{Scenario: domain.ScenarioBest, ReturnEstimate: 0.30, Probability: 0.2},
			{Scenario: domain.ScenarioWorst, ReturnEstimate: -0.20, Probability: 0.2},
		},
	}

	m := newTestCalculator().Calculate(idea)
	assert.InDelta(t, 0.08, m.ExpectedReturn, 1e-9)
}

func TestExpectedReturnHistoricalFallback(t *testing.T) {
	// A price that doubles over 252 bars annualizes to exactly 100%.
	idea := domain.InvestmentIdea{
		Investments: []domain.Investment{
			{ID: "a", History: historyBars(100, 200, 252)},
		},
	}

	m := newTestCalculator().Calculate(idea)
	assert.InDelta(t, 1.0, m.ExpectedReturn, 1e-9)
}

func TestSharpeAndValueAtRisk(t *testing.T) {
	idea := domain.InvestmentIdea{
		Investments: []domain.Investment{
			{ID: "a", RiskMetrics: &domain.RiskMetrics{Volatility: 0.20}},
		},
		PotentialOutcomes: []domain.PotentialOutcome{
			{Scenario: domain.ScenarioExpected, ReturnEstimate: 0.12, Probability: 1.0},
		},
	}

	m := newTestCalculator().Calculate(idea)
	assert.InDelta(t, (0.12-0.02)/0.20, m.SharpeRatio, 1e-9)
	assert.InDelta(t, 0.12-1.645*0.20, m.ValueAtRisk, 1e-9)
}

func TestDiversificationAndCorrelation(t *testing.T) {
	idea := domain.InvestmentIdea{
		Investments: []domain.Investment{
			{
				ID:        "a",
				Sector:    "tech",
				AssetType: domain.AssetStock,
				RiskMetrics: &domain.RiskMetrics{
					Correlations: map[string]float64{"b": -0.8},
				},
			},
			{ID: "b", Sector: "energy", AssetType: domain.AssetETF},
			{ID: "c", Sector: "tech", AssetType: domain.AssetStock},
		},
	}

	m := newTestCalculator().Calculate(idea)

	// 2 distinct sectors and 2 distinct asset types over 3 positions.
	assert.InDelta(t, (2.0/3+2.0/3)/2, m.DiversificationRatio, 1e-9)
	// Pairs: |−0.8| for a-b, default 0.5 for a-c and b-c.
	assert.InDelta(t, (0.8+0.5+0.5)/3, m.CorrelationScore, 1e-9)
	assert.InDelta(t, 1.0/3, m.ConcentrationRisk, 1e-9)
}

func TestOptimalHoldingPeriod(t *testing.T) {
	tests := []struct {
		horizon  domain.TimeHorizon
		expected float64
	}{
		{domain.HorizonIntraday, 1},
		{domain.HorizonShort, 90},
		{domain.HorizonMedium, 365},
		{domain.HorizonLong, 1095},
		{domain.HorizonVeryLong, 1825},
		{domain.TimeHorizon("unknown"), 365},
	}

	for _, tt := range tests {
		m := newTestCalculator().Calculate(domain.InvestmentIdea{TimeHorizon: tt.horizon})
		assert.Equal(t, tt.expected, m.OptimalHoldingPeriod, "horizon %s", tt.horizon)
	}
}

func TestTimeToBreakeven(t *testing.T) {
	idea := domain.InvestmentIdea{
		PotentialOutcomes: []domain.PotentialOutcome{
			{Scenario: domain.ScenarioExpected, ReturnEstimate: 0.10, Probability: 1.0},
		},
	}

	m := newTestCalculator().Calculate(idea)
	assert.InDelta(t, (0.01/0.10)*365, m.TimeToBreakeven, 1e-9)
}

func TestFundamentalScoreBands(t *testing.T) {
	idea := domain.InvestmentIdea{
		Investments: []domain.Investment{
			{
				ID: "quality",
				Fundamentals: &domain.Fundamentals{
					PERatio:        12,   // +10
					ProfitMargin:   0.25, // +10
					ReturnOnEquity: 0.20, // +10
					DebtToEquity:   0.3,  // +5
				},
			},
		},
	}

	m := newTestCalculator().Calculate(idea)
	assert.InDelta(t, 85.0, m.FundamentalScore, 1e-9)
}

func TestSentimentScoreBands(t *testing.T) {
	idea := domain.InvestmentIdea{
		Investments: []domain.Investment{
			{
				ID: "a",
				Sentiment: &domain.SentimentAnalysis{
					Overall:     domain.SentimentVeryPositive, // +20
					Trend:       domain.TrendImproving,        // +10
					AnalystBuy:  8,
					AnalystHold: 2,
					AnalystSell: 0, // (0.8-0.5)*20 = +6
				},
			},
		},
	}

	m := newTestCalculator().Calculate(idea)
	assert.InDelta(t, 86.0, m.SentimentScore, 1e-9)
}

func TestDataQualityScore(t *testing.T) {
	now := time.Now()
	idea := domain.InvestmentIdea{
		SupportingData: []domain.DataPoint{
			{Timestamp: now, Reliability: 1.0, Source: "Bloomberg Terminal"},
		},
	}

	m := newTestCalculator().Calculate(idea)
	// (1.0*0.4 + 1.0*0.3 + 0.9*0.3) * 100
	assert.InDelta(t, 97.0, m.DataQuality, 1e-9)
}

func TestMarketConditionSuitability(t *testing.T) {
	tests := []struct {
		name     string
		strategy domain.Strategy
		level    domain.RiskLevel
		expected float64
	}{
		{"growth low risk", domain.StrategyGrowth, domain.RiskLow, 60},
		{"growth high risk", domain.StrategyGrowth, domain.RiskHigh, 50},
		{"momentum very high risk", domain.StrategyMomentum, domain.RiskVeryHigh, 35},
		{"default", domain.StrategyHold, domain.RiskModerate, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestCalculator().Calculate(domain.InvestmentIdea{
				Strategy:  tt.strategy,
				RiskLevel: tt.level,
			})
			assert.Equal(t, tt.expected, m.MarketConditionSuitability)
		})
	}
}
