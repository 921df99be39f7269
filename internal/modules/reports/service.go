package reports

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aristath/foresight/internal/domain"
	"github.com/aristath/foresight/internal/modules/indicators"
	"github.com/aristath/foresight/internal/modules/metrics"
	"github.com/aristath/foresight/internal/modules/outcomes"
	"github.com/aristath/foresight/internal/modules/risk"
)

// Service runs the three analysis engines over an idea and assembles the
// result into a report. The engines are pure and share no state, so they
// run concurrently.
type Service struct {
	calculator *metrics.Calculator
	assessor   *risk.Assessor
	modeler    *outcomes.Modeler
	deriver    *indicators.Deriver
	repo       *Repository
	log        zerolog.Logger
}

// NewService creates a new report service. The repository may be nil, in
// which case reports are computed but not persisted.
func NewService(
	calculator *metrics.Calculator,
	assessor *risk.Assessor,
	modeler *outcomes.Modeler,
	deriver *indicators.Deriver,
	repo *Repository,
	log zerolog.Logger,
) *Service {
	return &Service{
		calculator: calculator,
		assessor:   assessor,
		modeler:    modeler,
		deriver:    deriver,
		repo:       repo,
		log:        log.With().Str("component", "reports").Logger(),
	}
}

// Analyze enriches the idea with derived indicators, runs all three engines
// concurrently and persists the assembled report. Persistence failures are
// logged but do not fail the analysis.
func (s *Service) Analyze(idea domain.InvestmentIdea) AnalysisReport {
	enriched := s.deriver.Enrich(idea)

	var (
		keyMetrics   domain.KeyMetrics
		assessment   domain.RiskAssessment
		outcomeModel domain.ExpectedOutcomeModel
	)

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		keyMetrics = s.calculator.Calculate(enriched)
	}()
	go func() {
		defer wg.Done()
		assessment = s.assessor.Assess(enriched)
	}()
	go func() {
		defer wg.Done()
		outcomeModel = s.modeler.Model(enriched)
	}()
	wg.Wait()

	report := AnalysisReport{
		ID:        uuid.New().String(),
		IdeaID:    idea.ID,
		CreatedAt: time.Now().UTC(),
		Metrics:   keyMetrics,
		Risk:      assessment,
		Outcomes:  outcomeModel,
	}

	if s.repo != nil {
		if err := s.repo.Save(report); err != nil {
			s.log.Warn().Err(err).Str("report", report.ID).Msg("Failed to persist analysis report")
		}
	}

	s.log.Info().
		Str("report", report.ID).
		Str("idea", idea.ID).
		Float64("risk_score", assessment.RiskScore).
		Msg("Analysis report generated")

	return report
}

// Metrics runs only the metrics calculator over the enriched idea.
func (s *Service) Metrics(idea domain.InvestmentIdea) domain.KeyMetrics {
	return s.calculator.Calculate(s.deriver.Enrich(idea))
}

// Risk runs only the risk assessor over the enriched idea.
func (s *Service) Risk(idea domain.InvestmentIdea) domain.RiskAssessment {
	return s.assessor.Assess(s.deriver.Enrich(idea))
}

// Outcomes runs only the outcome modeler over the enriched idea.
func (s *Service) Outcomes(idea domain.InvestmentIdea) domain.ExpectedOutcomeModel {
	return s.modeler.Model(s.deriver.Enrich(idea))
}
