// Package reports assembles the three analysis engines into persisted
// analysis reports.
package reports

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/foresight/internal/domain"
)

const reportsSchema = `
CREATE TABLE IF NOT EXISTS analysis_reports (
	uuid TEXT PRIMARY KEY,
	idea_id TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	metrics TEXT NOT NULL,
	risk TEXT NOT NULL,
	outcomes TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_analysis_reports_idea ON analysis_reports(idea_id);
CREATE INDEX IF NOT EXISTS idx_analysis_reports_created ON analysis_reports(created_at);
`

// Repository handles CRUD operations for analysis reports.
// The three result payloads are stored as JSON columns.
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new report repository and ensures the schema exists
func NewRepository(db *sql.DB, log zerolog.Logger) (*Repository, error) {
	if _, err := db.Exec(reportsSchema); err != nil {
		return nil, fmt.Errorf("failed to create analysis_reports schema: %w", err)
	}
	return &Repository{
		db:  db,
		log: log.With().Str("repository", "reports").Logger(),
	}, nil
}

// Save persists a report
func (r *Repository) Save(report AnalysisReport) error {
	metricsJSON, err := json.Marshal(report.Metrics)
	if err != nil {
		return fmt.Errorf("failed to marshal metrics: %w", err)
	}
	riskJSON, err := json.Marshal(report.Risk)
	if err != nil {
		return fmt.Errorf("failed to marshal risk assessment: %w", err)
	}
	outcomesJSON, err := json.Marshal(report.Outcomes)
	if err != nil {
		return fmt.Errorf("failed to marshal outcome model: %w", err)
	}

	_, err = r.db.Exec(`
		INSERT INTO analysis_reports (uuid, idea_id, created_at, metrics, risk, outcomes)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		report.ID,
		report.IdeaID,
		report.CreatedAt.Unix(),
		string(metricsJSON),
		string(riskJSON),
		string(outcomesJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to insert analysis report: %w", err)
	}

	return nil
}

// Get loads a report by its ID
func (r *Repository) Get(id string) (*AnalysisReport, error) {
	row := r.db.QueryRow(`
		SELECT uuid, idea_id, created_at, metrics, risk, outcomes
		FROM analysis_reports
		WHERE uuid = ?
	`, id)

	report, err := scanReport(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load analysis report %s: %w", id, err)
	}
	return report, nil
}

// ListRecent returns the most recent reports, newest first
func (r *Repository) ListRecent(limit int) ([]AnalysisReport, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.Query(`
		SELECT uuid, idea_id, created_at, metrics, risk, outcomes
		FROM analysis_reports
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query analysis reports: %w", err)
	}
	defer rows.Close()

	var reports []AnalysisReport
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan analysis report: %w", err)
		}
		reports = append(reports, *report)
	}
	return reports, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReport(row rowScanner) (*AnalysisReport, error) {
	var (
		report       AnalysisReport
		createdAt    int64
		metricsJSON  string
		riskJSON     string
		outcomesJSON string
	)
	if err := row.Scan(&report.ID, &report.IdeaID, &createdAt, &metricsJSON, &riskJSON, &outcomesJSON); err != nil {
		return nil, err
	}
	report.CreatedAt = time.Unix(createdAt, 0).UTC()

	if err := json.Unmarshal([]byte(metricsJSON), &report.Metrics); err != nil {
		return nil, fmt.Errorf("failed to unmarshal metrics: %w", err)
	}
	if err := json.Unmarshal([]byte(riskJSON), &report.Risk); err != nil {
		return nil, fmt.Errorf("failed to unmarshal risk assessment: %w", err)
	}
	if err := json.Unmarshal([]byte(outcomesJSON), &report.Outcomes); err != nil {
		return nil, fmt.Errorf("failed to unmarshal outcome model: %w", err)
	}

	return &report, nil
}

// AnalysisReport bundles the outputs of the three engines for one idea.
type AnalysisReport struct {
	ID        string                      `json:"id"`
	IdeaID    string                      `json:"idea_id"`
	CreatedAt time.Time                   `json:"created_at"`
	Metrics   domain.KeyMetrics           `json:"metrics"`
	Risk      domain.RiskAssessment       `json:"risk"`
	Outcomes  domain.ExpectedOutcomeModel `json:"outcomes"`
}
