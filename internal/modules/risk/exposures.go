package risk

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/aristath/foresight/internal/config"
	"github.com/aristath/foresight/internal/domain"
)

// correlationRisks flags every unordered pair whose absolute correlation
// exceeds the threshold. Pairs without a correlation entry use the default,
// which sits below the threshold and therefore never fires.
func correlationRisks(investments []domain.Investment) []domain.CorrelationRisk {
	risks := []domain.CorrelationRisk{}
	for i := 0; i < len(investments); i++ {
		for j := i + 1; j < len(investments); j++ {
			corr := pairCorrelation(investments[i], investments[j])
			if math.Abs(corr) <= config.HighCorrelationThreshold {
				continue
			}
			severity := domain.SeverityMedium
			if math.Abs(corr) > config.SevereCorrelationThreshold {
				severity = domain.SeverityHigh
			}
			risks = append(risks, domain.CorrelationRisk{
				Asset1:      investments[i].Name,
				Asset2:      investments[j].Name,
				Correlation: corr,
				Severity:    severity,
			})
		}
	}
	return risks
}

// assessLiquidityRisk classifies the basket by the fraction of positions
// whose trailing 30-bar average volume sits below the floor. Exit cost and
// liquidation time are fixed per level.
func assessLiquidityRisk(investments []domain.Investment) domain.LiquidityRisk {
	illiquid := 0
	for _, inv := range investments {
		if trailingAverageVolume(inv.History) < config.MinLiquidVolume {
			illiquid++
		}
	}

	fraction := 0.0
	if len(investments) > 0 {
		fraction = float64(illiquid) / float64(len(investments))
	}

	switch {
	case fraction > 0.3:
		return domain.LiquidityRisk{
			Level:             domain.SeverityHigh,
			IlliquidFraction:  fraction,
			EstimatedExitCost: 0.05,
			TimeToLiquidate:   30,
		}
	case fraction > 0:
		return domain.LiquidityRisk{
			Level:             domain.SeverityMedium,
			IlliquidFraction:  fraction,
			EstimatedExitCost: 0.02,
			TimeToLiquidate:   7,
		}
	default:
		return domain.LiquidityRisk{
			Level:             domain.SeverityLow,
			IlliquidFraction:  0,
			EstimatedExitCost: 0.005,
			TimeToLiquidate:   1,
		}
	}
}

// assessConcentrationRisk measures sector, asset-type and single-position
// concentration under the equal-weight assumption. An empty portfolio is
// fully concentrated on all three axes.
func assessConcentrationRisk(investments []domain.Investment) domain.ConcentrationRisk {
	n := len(investments)
	if n == 0 {
		return domain.ConcentrationRisk{
			SectorConcentration:    1,
			AssetTypeConcentration: 1,
			SinglePositionRisk:     1,
			Level:                  domain.SeverityHigh,
		}
	}

	sector := 1 - float64(distinctSectors(investments))/float64(n)
	assetType := 1 - float64(distinctAssetTypes(investments))/float64(n)
	single := 1.0 / float64(n)

	level := domain.SeverityLow
	switch {
	case sector > 0.7 || assetType > 0.7 || single > 0.3:
		level = domain.SeverityHigh
	case sector > 0.5 || assetType > 0.5 || single > 0.2:
		level = domain.SeverityMedium
	}

	return domain.ConcentrationRisk{
		SectorConcentration:    sector,
		AssetTypeConcentration: assetType,
		SinglePositionRisk:     single,
		Level:                  level,
	}
}

// assessMarketRisk reports average beta; the rate, inflation and currency
// sensitivities are fixed placeholders pending factor exposures upstream.
func assessMarketRisk(investments []domain.Investment) domain.MarketRisk {
	return domain.MarketRisk{
		Beta:                    averageBeta(investments),
		InterestRateSensitivity: 0.3,
		InflationSensitivity:    0.2,
		CurrencySensitivity:     0.1,
	}
}

// assessCreditRisk is only populated when the basket holds at least one
// bond; otherwise credit risk does not apply and the field stays nil.
func assessCreditRisk(investments []domain.Investment) *domain.CreditRisk {
	for _, inv := range investments {
		if inv.AssetType == domain.AssetBond {
			return &domain.CreditRisk{
				AverageRating:      "BBB",
				DefaultProbability: 0.02,
				DowngradeRisk:      0.10,
			}
		}
	}
	return nil
}

// assessOperationalRisk grades execution complexity from the strategy and
// folds in the supporting-data quality score.
func assessOperationalRisk(idea domain.InvestmentIdea) domain.OperationalRisk {
	complexity := domain.SeverityLow
	switch idea.Strategy {
	case domain.StrategyComplex:
		complexity = domain.SeverityHigh
	case domain.StrategyHedge, domain.StrategyArbitrage, domain.StrategyPairsTrade:
		complexity = domain.SeverityMedium
	}

	return domain.OperationalRisk{
		ComplexityLevel:  complexity,
		DataQualityScore: dataQualityScore(idea.SupportingData),
		Description:      fmt.Sprintf("Execution complexity is %s for a %s strategy", complexity, idea.Strategy),
	}
}

// dataQualityScore mirrors the metrics calculator's grading but is computed
// locally; the two components share no code by design.
func dataQualityScore(points []domain.DataPoint) float64 {
	if len(points) == 0 {
		return config.EmptySupportDataQuality
	}

	now := time.Now()
	sum := 0.0
	for _, p := range points {
		days := now.Sub(p.Timestamp).Hours() / 24
		recency := 0.1
		switch {
		case days <= 1:
			recency = 1.0
		case days <= 7:
			recency = 0.9
		case days <= 30:
			recency = 0.7
		case days <= 90:
			recency = 0.5
		case days <= 365:
			recency = 0.3
		}

		source := 0.5
		lowered := strings.ToLower(p.Source)
		for _, s := range config.HighQualitySources {
			if strings.Contains(lowered, s) {
				source = 0.9
				break
			}
		}
		if source == 0.5 {
			for _, s := range config.MediumQualitySources {
				if strings.Contains(lowered, s) {
					source = 0.7
					break
				}
			}
		}

		sum += (p.Reliability*0.4 + recency*0.3 + source*0.3) * 100
	}
	return sum / float64(len(points))
}
