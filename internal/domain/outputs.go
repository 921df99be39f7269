package domain

import (
	"encoding/json"
	"math"
)

// KeyMetrics is the scalar metric set produced by the metrics calculator.
// Every field is a finite real number except TimeToBreakeven, which is +Inf
// when the expected return is non-positive.
type KeyMetrics struct {
	ExpectedReturn             float64 `json:"expected_return"`
	Volatility                 float64 `json:"volatility"`
	SharpeRatio                float64 `json:"sharpe_ratio"`
	MaxDrawdown                float64 `json:"max_drawdown"`
	ValueAtRisk                float64 `json:"value_at_risk"`
	DiversificationRatio       float64 `json:"diversification_ratio"`
	CorrelationScore           float64 `json:"correlation_score"`
	ConcentrationRisk          float64 `json:"concentration_risk"`
	FundamentalScore           float64 `json:"fundamental_score"`
	TechnicalScore             float64 `json:"technical_score"`
	SentimentScore             float64 `json:"sentiment_score"`
	InformationRatio           float64 `json:"information_ratio"`
	CalmarRatio                float64 `json:"calmar_ratio"`
	SortinoRatio               float64 `json:"sortino_ratio"`
	TimeToBreakeven            float64 `json:"-"` // days; +Inf when never
	OptimalHoldingPeriod       float64 `json:"optimal_holding_period"` // days
	DataQuality                float64 `json:"data_quality"`
	MarketConditionSuitability float64 `json:"market_condition_suitability"`
}

// kmAlias strips the custom marshallers so the wire structs below can embed
// the plain field set. TimeToBreakeven travels as a nullable field because
// encoding/json cannot represent +Inf.
type kmAlias KeyMetrics

// MarshalJSON encodes TimeToBreakeven as null when it is not finite.
func (k KeyMetrics) MarshalJSON() ([]byte, error) {
	type wire struct {
		kmAlias
		TimeToBreakeven *float64 `json:"time_to_breakeven"`
	}
	w := wire{kmAlias: kmAlias(k)}
	if !math.IsInf(k.TimeToBreakeven, 0) && !math.IsNaN(k.TimeToBreakeven) {
		v := k.TimeToBreakeven
		w.TimeToBreakeven = &v
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes a null TimeToBreakeven back to +Inf.
func (k *KeyMetrics) UnmarshalJSON(data []byte) error {
	type wire struct {
		kmAlias
		TimeToBreakeven *float64 `json:"time_to_breakeven"`
	}
	var w wire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*k = KeyMetrics(w.kmAlias)
	if w.TimeToBreakeven != nil {
		k.TimeToBreakeven = *w.TimeToBreakeven
	} else {
		k.TimeToBreakeven = math.Inf(1)
	}
	return nil
}

// RiskFactor is one identified risk with its severity and expected impact.
type RiskFactor struct {
	Type        RiskFactorType `json:"type"`
	Severity    Severity       `json:"severity"`
	Description string         `json:"description"`
	Probability float64        `json:"probability"` // [0,1]
	Impact      float64        `json:"impact"`      // 0-100 scale
}

// RiskMitigation is canned mitigation guidance for one risk factor.
type RiskMitigation struct {
	FactorType     RiskFactorType `json:"factor_type"`
	Strategy       string         `json:"strategy"`
	Effectiveness  float64        `json:"effectiveness"` // [0,1]
	Cost           float64        `json:"cost"`          // fraction of portfolio value
	Implementation string         `json:"implementation"`
}

// StressTestResult is the outcome of one fixed stress scenario.
type StressTestResult struct {
	Scenario       string  `json:"scenario"`
	Probability    float64 `json:"probability"`
	ExpectedLoss   float64 `json:"expected_loss"`
	TimeToRecovery float64 `json:"time_to_recovery"` // days
}

// ScenarioRisk is one row of the fixed five-scenario analysis table.
type ScenarioRisk struct {
	Scenario       string    `json:"scenario"`
	Probability    float64   `json:"probability"`
	RiskLevel      RiskLevel `json:"risk_level"`
	ExpectedImpact float64   `json:"expected_impact"`
	Triggers       []string  `json:"triggers"`
}

// CorrelationRisk flags one highly correlated pair of investments.
type CorrelationRisk struct {
	Asset1      string   `json:"asset_1"`
	Asset2      string   `json:"asset_2"`
	Correlation float64  `json:"correlation"`
	Severity    Severity `json:"severity"`
}

// LiquidityRisk classifies how hard the basket is to exit.
type LiquidityRisk struct {
	Level             Severity `json:"level"`
	IlliquidFraction  float64  `json:"illiquid_fraction"`
	EstimatedExitCost float64  `json:"estimated_exit_cost"` // fraction of value
	TimeToLiquidate   float64  `json:"time_to_liquidate"`   // days
}

// ConcentrationRisk measures how concentrated the basket is.
type ConcentrationRisk struct {
	SectorConcentration    float64  `json:"sector_concentration"`
	AssetTypeConcentration float64  `json:"asset_type_concentration"`
	SinglePositionRisk     float64  `json:"single_position_risk"`
	Level                  Severity `json:"level"`
}

// MarketRisk reports systematic exposure. Sensitivities other than beta are
// fixed model placeholders.
type MarketRisk struct {
	Beta                    float64 `json:"beta"`
	InterestRateSensitivity float64 `json:"interest_rate_sensitivity"`
	InflationSensitivity    float64 `json:"inflation_sensitivity"`
	CurrencySensitivity     float64 `json:"currency_sensitivity"`
}

// CreditRisk is only populated when the basket contains bonds.
type CreditRisk struct {
	AverageRating      string  `json:"average_rating"`
	DefaultProbability float64 `json:"default_probability"`
	DowngradeRisk      float64 `json:"downgrade_risk"`
}

// OperationalRisk reports execution complexity and input data quality.
type OperationalRisk struct {
	ComplexityLevel  Severity `json:"complexity_level"`
	DataQualityScore float64  `json:"data_quality_score"`
	Description      string   `json:"description"`
}

// RiskAssessment is the structured multi-factor risk taxonomy produced by
// the risk assessor.
type RiskAssessment struct {
	RiskScore         float64            `json:"risk_score"`
	RiskLevel         RiskLevel          `json:"risk_level"`
	RiskFactors       []RiskFactor       `json:"risk_factors"`
	Mitigations       []RiskMitigation   `json:"mitigations"`
	StressTests       []StressTestResult `json:"stress_tests"`
	ScenarioAnalysis  []ScenarioRisk     `json:"scenario_analysis"`
	CorrelationRisks  []CorrelationRisk  `json:"correlation_risks"`
	LiquidityRisk     LiquidityRisk      `json:"liquidity_risk"`
	ConcentrationRisk ConcentrationRisk  `json:"concentration_risk"`
	MarketRisk        MarketRisk         `json:"market_risk"`
	CreditRisk        *CreditRisk        `json:"credit_risk,omitempty"`
	OperationalRisk   OperationalRisk    `json:"operational_risk"`
}

// Milestone is one checkpoint inside an outcome scenario's timeline.
type Milestone struct {
	Day         float64 `json:"day"`
	Description string  `json:"description"`
	Probability float64 `json:"probability"`
	Impact      float64 `json:"impact"`
}

// OutcomeScenario is one of the base/bull/bear outcome narratives.
type OutcomeScenario struct {
	Name            string      `json:"name"` // base, bull, bear
	ExpectedReturn  float64     `json:"expected_return"`
	Probability     float64     `json:"probability"`
	TimeHorizonDays float64     `json:"time_horizon_days"`
	Assumptions     []string    `json:"assumptions"`
	Catalysts       []string    `json:"catalysts"`
	Risks           []string    `json:"risks"`
	Milestones      []Milestone `json:"milestones"`
}

// ConfidenceInterval is a symmetric normal-approximation interval around the
// modeled expected return.
type ConfidenceInterval struct {
	Level float64 `json:"level"`
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// SensitivityVariable is one driver in the sensitivity table.
type SensitivityVariable struct {
	Name       string  `json:"name"`
	BaseValue  float64 `json:"base_value"`
	Impact     float64 `json:"impact"` // d(return) per unit change
	Elasticity float64 `json:"elasticity"`
	RangeLow   float64 `json:"range_low"`
	RangeHigh  float64 `json:"range_high"`
}

// SensitivityAnalysis is a fixed driver table plus the correlation matrix
// between the drivers.
type SensitivityAnalysis struct {
	Variables         []SensitivityVariable `json:"variables"`
	CorrelationMatrix [][]float64           `json:"correlation_matrix"`
}

// MonteCarloResults summarizes the simulated return distribution.
type MonteCarloResults struct {
	Iterations          int                `json:"iterations"`
	Mean                float64            `json:"mean"`
	StdDev              float64            `json:"std_dev"`
	Percentiles         map[string]float64 `json:"percentiles"`
	ProbabilityOfLoss   float64            `json:"probability_of_loss"`
	ProbabilityOfTarget float64            `json:"probability_of_target"`
	ExpectedShortfall   float64            `json:"expected_shortfall"`
}

// TimeSeriesPoint is one day of the projected return path with confidence
// bands.
type TimeSeriesPoint struct {
	Day              int     `json:"day"`
	ExpectedValue    float64 `json:"expected_value"`
	Upper95          float64 `json:"upper_95"`
	Lower95          float64 `json:"lower_95"`
	Upper68          float64 `json:"upper_68"`
	Lower68          float64 `json:"lower_68"`
	CumulativeReturn float64 `json:"cumulative_return"`
}

// ExpectedOutcomeModel is the probabilistic outcome model produced by the
// outcome modeler.
type ExpectedOutcomeModel struct {
	Scenarios                 []OutcomeScenario   `json:"scenarios"`
	ProbabilityWeightedReturn float64             `json:"probability_weighted_return"`
	ConfidenceInterval        ConfidenceInterval  `json:"confidence_interval"`
	Sensitivity               SensitivityAnalysis `json:"sensitivity_analysis"`
	MonteCarlo                MonteCarloResults   `json:"monte_carlo"`
	Projection                []TimeSeriesPoint   `json:"projection"`
}
