// Package domain contains the input and output value objects for the
// analytics engine. Inputs are produced by upstream collaborators (research
// and validation) and are never mutated here; outputs are built fresh on
// every call.
package domain

import "time"

// AssetType classifies a tradable position.
type AssetType string

const (
	AssetStock     AssetType = "stock"
	AssetETF       AssetType = "etf"
	AssetBond      AssetType = "bond"
	AssetCommodity AssetType = "commodity"
	AssetCrypto    AssetType = "crypto"
	AssetREIT      AssetType = "reit"
)

// TimeHorizon is the intended holding horizon of an idea.
type TimeHorizon string

const (
	HorizonIntraday TimeHorizon = "intraday"
	HorizonShort    TimeHorizon = "short"
	HorizonMedium   TimeHorizon = "medium"
	HorizonLong     TimeHorizon = "long"
	HorizonVeryLong TimeHorizon = "very-long"
)

// RiskLevel buckets a risk score into five named bands.
type RiskLevel string

const (
	RiskVeryLow  RiskLevel = "very-low"
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
	RiskVeryHigh RiskLevel = "very-high"
)

// Strategy names the trading strategy behind an idea.
type Strategy string

const (
	StrategyBuy        Strategy = "buy"
	StrategyHold       Strategy = "hold"
	StrategySell       Strategy = "sell"
	StrategyShort      Strategy = "short"
	StrategyLong       Strategy = "long"
	StrategyHedge      Strategy = "hedge"
	StrategyArbitrage  Strategy = "arbitrage"
	StrategyPairsTrade Strategy = "pairs-trade"
	StrategyMomentum   Strategy = "momentum"
	StrategyValue      Strategy = "value"
	StrategyGrowth     Strategy = "growth"
	StrategyIncome     Strategy = "income"
	StrategyComplex    Strategy = "complex"
)

// ScenarioTag tags a potential outcome as the expected, best or worst case.
type ScenarioTag string

const (
	ScenarioExpected ScenarioTag = "expected"
	ScenarioBest     ScenarioTag = "best"
	ScenarioWorst    ScenarioTag = "worst"
)

// Sentiment is a categorical overall sentiment reading.
type Sentiment string

const (
	SentimentVeryPositive Sentiment = "very-positive"
	SentimentPositive     Sentiment = "positive"
	SentimentNeutral      Sentiment = "neutral"
	SentimentNegative     Sentiment = "negative"
	SentimentVeryNegative Sentiment = "very-negative"
)

// SentimentTrend is the direction sentiment has been moving.
type SentimentTrend string

const (
	TrendImproving SentimentTrend = "improving"
	TrendStable    SentimentTrend = "stable"
	TrendDeclining SentimentTrend = "declining"
)

// RiskFactorType classifies an identified risk factor.
type RiskFactorType string

const (
	FactorMarket      RiskFactorType = "market"
	FactorLiquidity   RiskFactorType = "liquidity"
	FactorCredit      RiskFactorType = "credit"
	FactorOperational RiskFactorType = "operational"
)

// Severity grades a risk factor or sub-assessment.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// PriceBar is one bar of an investment's historical performance series.
type PriceBar struct {
	Date     time.Time `json:"date"`
	Close    float64   `json:"close"`
	AdjClose float64   `json:"adj_close"`
	Volume   float64   `json:"volume"`
}

// Fundamentals holds the fundamental ratios an upstream collaborator supplies.
type Fundamentals struct {
	PERatio        float64 `json:"pe_ratio"`
	ProfitMargin   float64 `json:"profit_margin"`
	ReturnOnEquity float64 `json:"return_on_equity"`
	DebtToEquity   float64 `json:"debt_to_equity"`
}

// TechnicalIndicators holds the standard technical readings for a position.
// When absent they can be derived from history (see modules/indicators).
type TechnicalIndicators struct {
	RSI        float64 `json:"rsi"`
	MA50       float64 `json:"ma50"`
	MA200      float64 `json:"ma200"`
	MACD       float64 `json:"macd"`
	MACDSignal float64 `json:"macd_signal"`
}

// SentimentAnalysis summarizes news/analyst sentiment for a position.
type SentimentAnalysis struct {
	Overall     Sentiment      `json:"overall"`
	Trend       SentimentTrend `json:"trend"`
	AnalystBuy  int            `json:"analyst_buy"`
	AnalystHold int            `json:"analyst_hold"`
	AnalystSell int            `json:"analyst_sell"`
}

// RiskMetrics holds per-position risk inputs. Correlations maps other
// investment IDs to the pairwise correlation with this position.
type RiskMetrics struct {
	Volatility   float64            `json:"volatility"`
	Beta         float64            `json:"beta"`
	Correlations map[string]float64 `json:"correlations,omitempty"`
}

// Investment is one tradable position inside an idea. It is a read-only
// input; the engine never mutates it.
type Investment struct {
	ID           string               `json:"id"`
	Name         string               `json:"name"`
	Sector       string               `json:"sector"`
	AssetType    AssetType            `json:"asset_type"`
	CurrentPrice float64              `json:"current_price"`
	History      []PriceBar           `json:"historical_performance"`
	Fundamentals *Fundamentals        `json:"fundamentals,omitempty"`
	Technicals   *TechnicalIndicators `json:"technical_indicators,omitempty"`
	Sentiment    *SentimentAnalysis   `json:"sentiment_analysis,omitempty"`
	RiskMetrics  *RiskMetrics         `json:"risk_metrics,omitempty"`
}

// PotentialOutcome is one upstream estimate of how the idea may play out.
type PotentialOutcome struct {
	Scenario          ScenarioTag `json:"scenario"`
	ReturnEstimate    float64     `json:"return_estimate"`
	Probability       float64     `json:"probability"`
	TimeToRealization float64     `json:"time_to_realization"` // days
	Catalysts         []string    `json:"catalysts,omitempty"`
	KeyRisks          []string    `json:"key_risks,omitempty"`
}

// DataPoint is one piece of supporting evidence behind an idea.
type DataPoint struct {
	Timestamp   time.Time `json:"timestamp"`
	Reliability float64   `json:"reliability"` // [0,1]
	Source      string    `json:"source"`
}

// InvestmentIdea is the unit of analysis: an implicitly equal-weighted basket
// of investments plus narrative metadata. There is no position-size field.
type InvestmentIdea struct {
	ID                string             `json:"id"`
	Investments       []Investment       `json:"investments"`
	PotentialOutcomes []PotentialOutcome `json:"potential_outcomes,omitempty"`
	TimeHorizon       TimeHorizon        `json:"time_horizon"`
	RiskLevel         RiskLevel          `json:"risk_level"`
	Strategy          Strategy           `json:"strategy"`
	ConfidenceScore   float64            `json:"confidence_score"`
	SupportingData    []DataPoint        `json:"supporting_data,omitempty"`
}
