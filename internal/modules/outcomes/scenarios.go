package outcomes

import (
	"fmt"

	"github.com/aristath/foresight/internal/domain"
)

// buildScenarios constructs the base, bull and bear scenarios. Return
// estimates, horizons, catalysts and risks come from the idea's potential
// outcomes when a matching scenario tag exists, fixed fallbacks and the
// computed holding period otherwise.
func buildScenarios(idea domain.InvestmentIdea, holdingPeriod int) []domain.OutcomeScenario {
	base := scenarioFromTag(idea, domain.ScenarioExpected)
	bull := scenarioFromTag(idea, domain.ScenarioBest)
	bear := scenarioFromTag(idea, domain.ScenarioWorst)

	baseDays := daysOr(base, float64(holdingPeriod))
	bullDays := daysOr(bull, float64(holdingPeriod)*0.8)
	bearDays := daysOr(bear, float64(holdingPeriod)*1.5)

	return []domain.OutcomeScenario{
		{
			Name:            "base",
			ExpectedReturn:  returnOr(base, baseFallbackReturn),
			Probability:     baseProbability,
			TimeHorizonDays: float64(baseDays),
			Assumptions: []string{
				"Market conditions remain broadly stable",
				"No major macro regime change",
			},
			Catalysts:  catalystsOr(base, []string{"Steady earnings growth"}),
			Risks:      risksOr(base, []string{"Gradual multiple compression"}),
			Milestones: milestones(baseDays, 0.7, 0.02, -0.05),
		},
		{
			Name:            "bull",
			ExpectedReturn:  returnOr(bull, bullFallbackReturn),
			Probability:     bullProbability,
			TimeHorizonDays: float64(bullDays),
			Assumptions: []string{
				"Favorable macro backdrop",
				"Risk appetite expands",
			},
			Catalysts:  catalystsOr(bull, []string{"Earnings beat", "Sector re-rating"}),
			Risks:      risksOr(bull, []string{"Crowded positioning unwinds"}),
			Milestones: milestones(bullDays, 0.8, 0.05, 0.08),
		},
		{
			Name:            "bear",
			ExpectedReturn:  returnOr(bear, bearFallbackReturn),
			Probability:     bearProbability,
			TimeHorizonDays: float64(bearDays),
			Assumptions: []string{
				"Macro deterioration or policy error",
				"Risk premia widen",
			},
			Catalysts:  catalystsOr(bear, []string{"Earnings miss", "Macro shock"}),
			Risks:      risksOr(bear, []string{"Drawdown extends beyond model range"}),
			Milestones: milestones(bearDays, 0.6, -0.05, -0.12),
		},
	}
}

// scenarioFromTag finds the first potential outcome carrying the tag, nil
// when the idea has none.
func scenarioFromTag(idea domain.InvestmentIdea, tag domain.ScenarioTag) *domain.PotentialOutcome {
	for i := range idea.PotentialOutcomes {
		if idea.PotentialOutcomes[i].Scenario == tag {
			return &idea.PotentialOutcomes[i]
		}
	}
	return nil
}

func returnOr(outcome *domain.PotentialOutcome, fallback float64) float64 {
	if outcome != nil {
		return outcome.ReturnEstimate
	}
	return fallback
}

// daysOr uses the outcome's own time to realization when the idea supplied
// one, the scenario-scaled holding period otherwise.
func daysOr(outcome *domain.PotentialOutcome, fallback float64) int {
	if outcome != nil && outcome.TimeToRealization > 0 {
		return int(outcome.TimeToRealization)
	}
	return int(fallback)
}

func catalystsOr(outcome *domain.PotentialOutcome, fallback []string) []string {
	if outcome != nil && len(outcome.Catalysts) > 0 {
		return outcome.Catalysts
	}
	return fallback
}

func risksOr(outcome *domain.PotentialOutcome, fallback []string) []string {
	if outcome != nil && len(outcome.KeyRisks) > 0 {
		return outcome.KeyRisks
	}
	return fallback
}

// milestones places a performance review every 90 days plus one mid-period
// market event. Horizons under 90 days get the market event only.
func milestones(horizonDays int, reviewProbability, reviewImpact, eventImpact float64) []domain.Milestone {
	var ms []domain.Milestone
	for day, quarter := 90, 1; day <= horizonDays; day, quarter = day+90, quarter+1 {
		ms = append(ms, domain.Milestone{
			Day:         float64(day),
			Description: fmt.Sprintf("Q%d Performance Review", quarter),
			Probability: reviewProbability,
			Impact:      reviewImpact,
		})
	}
	eventDay := horizonDays / 2
	if eventDay < 1 {
		eventDay = 1
	}
	ms = append(ms, domain.Milestone{
		Day:         float64(eventDay),
		Description: "Major Market Event",
		Probability: 0.3,
		Impact:      eventImpact,
	})
	return ms
}
