package server

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/aristath/foresight/internal/domain"
	"github.com/aristath/foresight/internal/modules/indicators"
	"github.com/aristath/foresight/internal/modules/metrics"
	"github.com/aristath/foresight/internal/modules/outcomes"
	"github.com/aristath/foresight/internal/modules/reports"
	"github.com/aristath/foresight/internal/modules/risk"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	log := zerolog.Nop()

	conn, err := sql.Open("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	repo, err := reports.NewRepository(conn, log)
	require.NoError(t, err)

	service := reports.NewService(
		metrics.NewCalculator(log),
		risk.NewAssessor(log),
		outcomes.NewModeler(log, rand.NewSource(1)),
		indicators.NewDeriver(log),
		repo,
		log,
	)

	return New(Config{
		Log:     log,
		Port:    0,
		DevMode: true,
		Service: service,
		Repo:    repo,
	})
}

func postIdea(t *testing.T, srv *Server, path string, idea domain.InvestmentIdea) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(idea)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, req)
	return rec
}

func serverTestIdea() domain.InvestmentIdea {
	return domain.InvestmentIdea{
		ID: "idea-http",
		Investments: []domain.Investment{
			{
				ID:          "a",
				Name:        "Alpha",
				Sector:      "tech",
				AssetType:   domain.AssetStock,
				RiskMetrics: &domain.RiskMetrics{Volatility: 0.2, Beta: 1.0},
			},
		},
		PotentialOutcomes: []domain.PotentialOutcome{
			{Scenario: domain.ScenarioExpected, ReturnEstimate: 0.10, Probability: 1.0},
		},
		TimeHorizon: domain.HorizonMedium,
		Strategy:    domain.StrategyBuy,
	}
}

func TestHandleAnalyze(t *testing.T) {
	srv := newTestServer(t)

	rec := postIdea(t, srv, "/api/analysis", serverTestIdea())
	require.Equal(t, http.StatusOK, rec.Code)

	var report reports.AnalysisReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.NotEmpty(t, report.ID)
	assert.Equal(t, "idea-http", report.IdeaID)
	assert.InDelta(t, 0.10, report.Metrics.ExpectedReturn, 1e-9)
	assert.Len(t, report.Outcomes.Scenarios, 3)
}

func TestHandleAnalyzeInvalidBody(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/analysis", bytes.NewReader([]byte("not json")))
	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSingleEngineEndpoints(t *testing.T) {
	srv := newTestServer(t)
	idea := serverTestIdea()

	t.Run("metrics", func(t *testing.T) {
		rec := postIdea(t, srv, "/api/analysis/metrics", idea)
		require.Equal(t, http.StatusOK, rec.Code)

		var m domain.KeyMetrics
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
		assert.InDelta(t, 0.10, m.ExpectedReturn, 1e-9)
	})

	t.Run("risk", func(t *testing.T) {
		rec := postIdea(t, srv, "/api/analysis/risk", idea)
		require.Equal(t, http.StatusOK, rec.Code)

		var r domain.RiskAssessment
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &r))
		assert.NotEmpty(t, r.RiskFactors)
	})

	t.Run("outcomes", func(t *testing.T) {
		rec := postIdea(t, srv, "/api/analysis/outcomes", idea)
		require.Equal(t, http.StatusOK, rec.Code)

		var o domain.ExpectedOutcomeModel
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &o))
		assert.Len(t, o.Scenarios, 3)
		assert.Equal(t, 10000, o.MonteCarlo.Iterations)
	})
}

func TestGetReportRoundTrip(t *testing.T) {
	srv := newTestServer(t)

	rec := postIdea(t, srv, "/api/analysis", serverTestIdea())
	require.Equal(t, http.StatusOK, rec.Code)

	var report reports.AnalysisReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))

	req := httptest.NewRequest(http.MethodGet, "/api/analysis/"+report.ID, nil)
	getRec := httptest.NewRecorder()
	srv.router.ServeHTTP(getRec, req)

	require.Equal(t, http.StatusOK, getRec.Code)
	var loaded reports.AnalysisReport
	require.NoError(t, json.Unmarshal(getRec.Body.Bytes(), &loaded))
	assert.Equal(t, report.ID, loaded.ID)
}

func TestGetReportNotFound(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/analysis/missing-id", nil)
	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListRecent(t *testing.T) {
	srv := newTestServer(t)

	postIdea(t, srv, "/api/analysis", serverTestIdea())

	req := httptest.NewRequest(http.MethodGet, "/api/analysis/recent?limit=5", nil)
	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var list []reports.AnalysisReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, 1)
}

func TestHealthWithoutDatabase(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}
