package outcomes

import (
	"fmt"
	"math"
	"sort"

	"github.com/aristath/foresight/internal/config"
	"github.com/aristath/foresight/internal/domain"
)

var percentileLevels = []int{1, 5, 10, 25, 50, 75, 90, 95, 99}

// simulate draws annual returns from N(mean, volatility) via the Box-Muller
// transform and summarizes the sample. Zero volatility degenerates to a
// point mass at the mean.
func (m *Modeler) simulate(mean, volatility float64, iterations int) domain.MonteCarloResults {
	samples := make([]float64, iterations)
	m.mu.Lock()
	for i := range samples {
		samples[i] = mean + volatility*m.normal()
	}
	m.mu.Unlock()
	sort.Float64s(samples)

	sum := 0.0
	losses := 0
	hits := 0
	for _, s := range samples {
		sum += s
		if s < 0 {
			losses++
		}
		if s >= config.TargetReturn {
			hits++
		}
	}
	sampleMean := sum / float64(iterations)

	variance := 0.0
	for _, s := range samples {
		d := s - sampleMean
		variance += d * d
	}

	percentiles := make(map[string]float64, len(percentileLevels))
	for _, p := range percentileLevels {
		percentiles[fmt.Sprintf("p%d", p)] = percentile(samples, p)
	}

	return domain.MonteCarloResults{
		Iterations:          iterations,
		Mean:                sampleMean,
		StdDev:              math.Sqrt(variance / float64(iterations-1)),
		Percentiles:         percentiles,
		ProbabilityOfLoss:   float64(losses) / float64(iterations),
		ProbabilityOfTarget: float64(hits) / float64(iterations),
		ExpectedShortfall:   expectedShortfall(samples),
	}
}

// normal draws a standard normal variate. Float64 returns values in [0, 1);
// flipping to (0, 1] keeps the log argument strictly positive.
func (m *Modeler) normal() float64 {
	u1 := 1 - m.rng.Float64()
	u2 := m.rng.Float64()
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}

// percentile indexes the sorted sample at n*p/100, clamped to the last
// element.
func percentile(sorted []float64, p int) float64 {
	idx := len(sorted) * p / 100
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

// expectedShortfall averages the tail at or below the 5th percentile.
func expectedShortfall(sorted []float64) float64 {
	cutoff := percentile(sorted, 5)
	sum := 0.0
	count := 0
	for _, s := range sorted {
		if s > cutoff {
			break
		}
		sum += s
		count++
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}
