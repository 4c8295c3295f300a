package mappers

import (
	"encoding/json"
	"fmt"

	"github.com/pricetrust/pricing-service/internal/domain"
	"github.com/pricetrust/pricing-service/internal/infrastructure/postgres/models"
)

func ToGORMDiscountEvaluation(evaluation *domain.DiscountEvaluation) (*models.DiscountEvaluationModel, error) {
	trace, err := json.Marshal(evaluation.RuleTrace)
	if err != nil {
		return nil, fmt.Errorf("marshal rule trace: %w", err)
	}
	return &models.DiscountEvaluationModel{
		ID:                 evaluation.ID,
		CanonicalProductID: evaluation.CanonicalProductID,
		RetailerID:         evaluation.RetailerID,
		SnapshotID:         evaluation.SnapshotID,
		Score:              evaluation.Score,
		Label:              string(evaluation.Label),
		DiscountPct:        evaluation.DiscountPct,
		HistDeltaPct:       evaluation.HistDeltaPct,
		CrossStoreDeltaPct: evaluation.CrossStoreDeltaPct,
		AnchorAnomaly:      evaluation.AnchorAnomaly,
		RuleTrace:          string(trace),
		ScoringVersion:     evaluation.ScoringVersion,
		CreatedAt:          evaluation.CreatedAt,
	}, nil
}

func ToDomainDiscountEvaluation(model *models.DiscountEvaluationModel) (*domain.DiscountEvaluation, error) {
	var trace domain.RuleTrace
	if err := json.Unmarshal([]byte(model.RuleTrace), &trace); err != nil {
		return nil, fmt.Errorf("unmarshal rule trace: %w", err)
	}
	return &domain.DiscountEvaluation{
		ID:                 model.ID,
		CanonicalProductID: model.CanonicalProductID,
		RetailerID:         model.RetailerID,
		SnapshotID:         model.SnapshotID,
		Score:              model.Score,
		Label:              domain.EvaluationLabel(model.Label),
		DiscountPct:        model.DiscountPct,
		HistDeltaPct:       model.HistDeltaPct,
		CrossStoreDeltaPct: model.CrossStoreDeltaPct,
		AnchorAnomaly:      model.AnchorAnomaly,
		RuleTrace:          trace,
		ScoringVersion:     model.ScoringVersion,
		CreatedAt:          model.CreatedAt,
	}, nil
}
