package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pricetrust/pricing-service/internal/domain"
	"github.com/stretchr/testify/require"
)

type fakeUsecase struct {
	rows       []*domain.EvaluationRow
	run        *domain.PipelineRun
	lastFilter domain.EvaluationFilter
}

func (f *fakeUsecase) Run(ctx context.Context) (*domain.PipelineRun, error) {
	return f.run, nil
}

func (f *fakeUsecase) LatestRun(ctx context.Context) (*domain.PipelineRun, error) {
	if f.run == nil {
		return nil, domain.ErrNotFound
	}
	return f.run, nil
}

func (f *fakeUsecase) QueryEvaluations(ctx context.Context, filter domain.EvaluationFilter) ([]*domain.EvaluationRow, error) {
	f.lastFilter = filter
	return f.rows, nil
}

func init() {
	gin.SetMode(gin.TestMode)
}

func TestListEvaluations(t *testing.T) {
	discount := 0.25
	uc := &fakeUsecase{rows: []*domain.EvaluationRow{
		{
			Evaluation: domain.DiscountEvaluation{
				ID:             "eval-1",
				Score:          0.91,
				Label:          domain.LabelReal,
				DiscountPct:    &discount,
				ScoringVersion: "v2",
			},
			RetailerName:  "salcobrand",
			CanonicalName: "protector solar facial fps 50 50 ml",
			BrandNorm:     "isdin",
			PriceCurrent:  8990,
		},
	}}
	router := NewRouter(uc)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/evaluations?min_score=0.75&label=REAL&limit=10", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 0.75, uc.lastFilter.MinScore)
	require.Equal(t, domain.LabelReal, uc.lastFilter.Label)
	require.Equal(t, 10, uc.lastFilter.Limit)

	var body struct {
		Count       int `json:"count"`
		Evaluations []struct {
			ID    string  `json:"id"`
			Label string  `json:"label"`
			Score float64 `json:"score"`
		} `json:"evaluations"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, 1, body.Count)
	require.Equal(t, "eval-1", body.Evaluations[0].ID)
	require.Equal(t, "REAL", body.Evaluations[0].Label)
}

func TestListEvaluationsRejectsUnknownLabel(t *testing.T) {
	router := NewRouter(&fakeUsecase{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/evaluations?label=TOTALLY_REAL", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListEvaluationsRejectsMalformedNumbers(t *testing.T) {
	router := NewRouter(&fakeUsecase{})

	for _, target := range []string{
		"/api/v1/evaluations?min_score=high",
		"/api/v1/evaluations?min_discount=lots",
		"/api/v1/evaluations?limit=0",
		"/api/v1/evaluations?cross_store_positive=si",
	} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, target, nil)
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestLatestRun(t *testing.T) {
	started := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	uc := &fakeUsecase{run: &domain.PipelineRun{
		ID:        "run-abc",
		Status:    domain.RunSuccess,
		StartedAt: started,
		RetailerResults: []domain.RetailerResult{
			{Retailer: "salcobrand", Source: domain.SourceLive, OfferCount: 40},
		},
	}}
	router := NewRouter(uc)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/runs/latest", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "run-abc", body.ID)
	require.Equal(t, "SUCCESS", body.Status)
}

func TestLatestRunBeforeFirstRun(t *testing.T) {
	router := NewRouter(&fakeUsecase{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/runs/latest", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthz(t *testing.T) {
	router := NewRouter(&fakeUsecase{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}
