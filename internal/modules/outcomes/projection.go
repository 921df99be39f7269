package outcomes

import (
	"math"

	"github.com/aristath/foresight/internal/config"
	"github.com/aristath/foresight/internal/domain"
)

// project builds the daily time-series projection from the simulated mean.
// The expected path is linear in the constant daily rate and the cumulative
// return column accumulates that rate additively rather than compounding.
// This is a deliberate simplification kept for parity with the rest of the
// model. Bands widen with the square root of elapsed days.
func project(annualReturn, volatility float64, holdingPeriod int) []domain.TimeSeriesPoint {
	days := holdingPeriod
	if days > 365 {
		days = 365
	}

	dailyReturn := annualReturn / config.TradingDaysPerYear
	dailyVol := volatility / math.Sqrt(config.TradingDaysPerYear)

	points := make([]domain.TimeSeriesPoint, 0, days)
	cumulative := 0.0
	for i := 1; i <= days; i++ {
		cumulative += dailyReturn

		expected := dailyReturn * float64(i)
		spread := dailyVol * math.Sqrt(float64(i))
		points = append(points, domain.TimeSeriesPoint{
			Day:              i,
			ExpectedValue:    expected,
			Upper95:          expected + 1.96*spread,
			Lower95:          expected - 1.96*spread,
			Upper68:          expected + spread,
			Lower68:          expected - spread,
			CumulativeReturn: cumulative,
		})
	}
	return points
}
