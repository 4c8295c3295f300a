package dto

import (
	"time"

	"github.com/pricetrust/pricing-service/internal/domain"
)

type EvaluationResponse struct {
	ID                 string           `json:"id"`
	Retailer           string           `json:"retailer"`
	Product            string           `json:"product"`
	Brand              string           `json:"brand"`
	ProductURL         string           `json:"product_url"`
	PriceCurrent       float64          `json:"price_current"`
	PriceList          *float64         `json:"price_list"`
	Score              float64          `json:"score"`
	Label              string           `json:"label"`
	DiscountPct        *float64         `json:"discount_pct"`
	HistDeltaPct       *float64         `json:"hist_delta_pct"`
	CrossStoreDeltaPct *float64         `json:"cross_store_delta_pct"`
	AnchorAnomaly      bool             `json:"anchor_anomaly"`
	RuleTrace          domain.RuleTrace `json:"rule_trace"`
	ScoringVersion     string           `json:"scoring_version"`
	CreatedAt          time.Time        `json:"created_at"`
}

func ToEvaluationResponse(row *domain.EvaluationRow) EvaluationResponse {
	return EvaluationResponse{
		ID:                 row.Evaluation.ID,
		Retailer:           row.RetailerName,
		Product:            row.CanonicalName,
		Brand:              row.BrandNorm,
		ProductURL:         row.ProductURL,
		PriceCurrent:       row.PriceCurrent,
		PriceList:          row.PriceList,
		Score:              row.Evaluation.Score,
		Label:              string(row.Evaluation.Label),
		DiscountPct:        row.Evaluation.DiscountPct,
		HistDeltaPct:       row.Evaluation.HistDeltaPct,
		CrossStoreDeltaPct: row.Evaluation.CrossStoreDeltaPct,
		AnchorAnomaly:      row.Evaluation.AnchorAnomaly,
		RuleTrace:          row.Evaluation.RuleTrace,
		ScoringVersion:     row.Evaluation.ScoringVersion,
		CreatedAt:          row.Evaluation.CreatedAt,
	}
}

type RunResponse struct {
	ID               string                  `json:"id"`
	Status           string                  `json:"status"`
	StartedAt        time.Time               `json:"started_at"`
	FinishedAt       time.Time               `json:"finished_at"`
	TotalOffers      int                     `json:"total_offers"`
	TotalSnapshots   int                     `json:"total_snapshots"`
	TotalEvaluations int                     `json:"total_evaluations"`
	RetailerResults  []domain.RetailerResult `json:"retailer_results"`
	ErrorMessage     string                  `json:"error_message,omitempty"`
}

func ToRunResponse(run *domain.PipelineRun) RunResponse {
	return RunResponse{
		ID:               run.ID,
		Status:           string(run.Status),
		StartedAt:        run.StartedAt,
		FinishedAt:       run.FinishedAt,
		TotalOffers:      run.TotalOffers,
		TotalSnapshots:   run.TotalSnapshots,
		TotalEvaluations: run.TotalEvaluations,
		RetailerResults:  run.RetailerResults,
		ErrorMessage:     run.ErrorMessage,
	}
}

type ErrorResponse struct {
	Error string `json:"error"`
}
