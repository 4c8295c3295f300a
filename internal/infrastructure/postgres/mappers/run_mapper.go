package mappers

import (
	"encoding/json"
	"fmt"

	"github.com/pricetrust/pricing-service/internal/domain"
	"github.com/pricetrust/pricing-service/internal/infrastructure/postgres/models"
)

func ToGORMPipelineRun(run *domain.PipelineRun) (*models.PipelineRunModel, error) {
	results, err := json.Marshal(run.RetailerResults)
	if err != nil {
		return nil, fmt.Errorf("marshal retailer results: %w", err)
	}
	return &models.PipelineRunModel{
		ID:               run.ID,
		StartedAt:        run.StartedAt,
		FinishedAt:       run.FinishedAt,
		Status:           string(run.Status),
		TotalOffers:      run.TotalOffers,
		TotalSnapshots:   run.TotalSnapshots,
		TotalEvaluations: run.TotalEvaluations,
		RetailerResults:  string(results),
		ErrorMessage:     run.ErrorMessage,
	}, nil
}

func ToDomainPipelineRun(model *models.PipelineRunModel) (*domain.PipelineRun, error) {
	var results []domain.RetailerResult
	if model.RetailerResults != "" {
		if err := json.Unmarshal([]byte(model.RetailerResults), &results); err != nil {
			return nil, fmt.Errorf("unmarshal retailer results: %w", err)
		}
	}
	return &domain.PipelineRun{
		ID:               model.ID,
		StartedAt:        model.StartedAt,
		FinishedAt:       model.FinishedAt,
		Status:           domain.RunStatus(model.Status),
		TotalOffers:      model.TotalOffers,
		TotalSnapshots:   model.TotalSnapshots,
		TotalEvaluations: model.TotalEvaluations,
		RetailerResults:  results,
		ErrorMessage:     model.ErrorMessage,
	}, nil
}
