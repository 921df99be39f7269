package risk

import (
	"fmt"

	"github.com/aristath/foresight/internal/config"
	"github.com/aristath/foresight/internal/domain"
)

// identifyRiskFactors applies the ordered rule set. Multiple rules may fire;
// an empty portfolio short-circuits to a single critical factor, and a
// portfolio that trips no rule still carries one low-severity market factor.
func identifyRiskFactors(idea domain.InvestmentIdea) []domain.RiskFactor {
	if len(idea.Investments) == 0 {
		return []domain.RiskFactor{{
			Type:        domain.FactorOperational,
			Severity:    domain.SeverityCritical,
			Description: "Portfolio contains no investments",
			Probability: 1.0,
			Impact:      100,
		}}
	}

	var factors []domain.RiskFactor

	if avgBeta := averageBeta(idea.Investments); avgBeta > config.HighBetaThreshold {
		factors = append(factors, domain.RiskFactor{
			Type:        domain.FactorMarket,
			Severity:    domain.SeverityMedium,
			Description: fmt.Sprintf("Elevated market sensitivity (average beta %.2f)", avgBeta),
			Probability: 0.6,
			Impact:      (avgBeta - 1) * 20,
		})
	}

	if hasThinVolume(idea.Investments) {
		factors = append(factors, domain.RiskFactor{
			Type:        domain.FactorLiquidity,
			Severity:    domain.SeverityMedium,
			Description: "One or more positions trade below the liquidity volume floor",
			Probability: 0.5,
			Impact:      30,
		})
	}

	if distinctSectors(idea.Investments) <= 2 && len(idea.Investments) > 2 {
		factors = append(factors, domain.RiskFactor{
			Type:        domain.FactorMarket,
			Severity:    domain.SeverityHigh,
			Description: "Portfolio is concentrated in two or fewer sectors",
			Probability: 0.7,
			Impact:      50,
		})
	}

	if idea.Strategy == domain.StrategyMomentum {
		factors = append(factors, domain.RiskFactor{
			Type:        domain.FactorMarket,
			Severity:    domain.SeverityMedium,
			Description: "Momentum strategies are exposed to sharp trend reversals",
			Probability: 0.4,
			Impact:      40,
		})
	}

	if len(factors) == 0 {
		factors = append(factors, domain.RiskFactor{
			Type:        domain.FactorMarket,
			Severity:    domain.SeverityLow,
			Description: "General market risk",
			Probability: 0.3,
			Impact:      10,
		})
	}

	return factors
}

// hasThinVolume reports whether any investment printed a bar below the
// volume floor within its trailing 30 bars.
func hasThinVolume(investments []domain.Investment) bool {
	for _, inv := range investments {
		start := len(inv.History) - 30
		if start < 0 {
			start = 0
		}
		for _, bar := range inv.History[start:] {
			if bar.Volume < config.MinLiquidVolume {
				return true
			}
		}
	}
	return false
}

// mitigationsFor maps each identified factor to canned mitigation guidance.
// The lookup is keyed on factor type only, not severity.
func mitigationsFor(factors []domain.RiskFactor) []domain.RiskMitigation {
	mitigations := make([]domain.RiskMitigation, 0, len(factors))
	for _, factor := range factors {
		mitigations = append(mitigations, mitigationForType(factor.Type))
	}
	return mitigations
}

func mitigationForType(t domain.RiskFactorType) domain.RiskMitigation {
	switch t {
	case domain.FactorMarket:
		return domain.RiskMitigation{
			FactorType:     domain.FactorMarket,
			Strategy:       "Hedge systematic exposure with index options or inverse ETFs",
			Effectiveness:  0.7,
			Cost:           0.02,
			Implementation: "Buy protective puts sized to portfolio beta, rolled quarterly",
		}
	case domain.FactorLiquidity:
		return domain.RiskMitigation{
			FactorType:     domain.FactorLiquidity,
			Strategy:       "Stagger position exits and use limit orders",
			Effectiveness:  0.6,
			Cost:           0.01,
			Implementation: "Cap daily participation at 10% of average volume",
		}
	case domain.FactorCredit:
		return domain.RiskMitigation{
			FactorType:     domain.FactorCredit,
			Strategy:       "Diversify issuers and monitor credit spreads",
			Effectiveness:  0.65,
			Cost:           0.015,
			Implementation: "Set per-issuer limits and review ratings monthly",
		}
	default:
		return domain.RiskMitigation{
			FactorType:     t,
			Strategy:       "Strengthen process controls and input data validation",
			Effectiveness:  0.5,
			Cost:           0.005,
			Implementation: "Add pre-trade checks and reconcile data sources daily",
		}
	}
}

// stressTests returns the two portfolio-wide scenarios plus one per distinct
// sector present. All figures are fixed model constants.
func stressTests(investments []domain.Investment) []domain.StressTestResult {
	tests := []domain.StressTestResult{
		{
			Scenario:       "Market Crash -30%",
			Probability:    0.05,
			ExpectedLoss:   -0.30,
			TimeToRecovery: 540,
		},
		{
			Scenario:       "Interest Rate Shock +200bp",
			Probability:    0.15,
			ExpectedLoss:   -0.10,
			TimeToRecovery: 180,
		},
	}

	seen := make(map[string]bool)
	for _, inv := range investments {
		if inv.Sector == "" || seen[inv.Sector] {
			continue
		}
		seen[inv.Sector] = true
		tests = append(tests, domain.StressTestResult{
			Scenario:       fmt.Sprintf("%s Sector Decline -20%%", inv.Sector),
			Probability:    0.10,
			ExpectedLoss:   -0.20,
			TimeToRecovery: 270,
		})
	}

	return tests
}

// scenarioAnalysis is the fixed five-scenario table. Probabilities sum to
// exactly 1.0 and do not depend on portfolio content.
func scenarioAnalysis() []domain.ScenarioRisk {
	return []domain.ScenarioRisk{
		{
			Scenario:       "bull",
			Probability:    0.3,
			RiskLevel:      domain.RiskLow,
			ExpectedImpact: 0.15,
			Triggers:       []string{"Earnings beats", "Monetary easing", "Strong macro data"},
		},
		{
			Scenario:       "bear",
			Probability:    0.2,
			RiskLevel:      domain.RiskHigh,
			ExpectedImpact: -0.20,
			Triggers:       []string{"Earnings misses", "Monetary tightening", "Geopolitical escalation"},
		},
		{
			Scenario:       "sideways",
			Probability:    0.4,
			RiskLevel:      domain.RiskModerate,
			ExpectedImpact: 0.02,
			Triggers:       []string{"Mixed data", "Range-bound rates", "Low conviction flows"},
		},
		{
			Scenario:       "crisis",
			Probability:    0.05,
			RiskLevel:      domain.RiskVeryHigh,
			ExpectedImpact: -0.40,
			Triggers:       []string{"Systemic credit event", "Liquidity freeze", "Contagion"},
		},
		{
			Scenario:       "recovery",
			Probability:    0.05,
			RiskLevel:      domain.RiskModerate,
			ExpectedImpact: 0.25,
			Triggers:       []string{"Policy stimulus", "Oversold rebound", "Inflation relief"},
		},
	}
}
