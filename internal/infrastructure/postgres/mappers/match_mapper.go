package mappers

import (
	"github.com/pricetrust/pricing-service/internal/domain"
	"github.com/pricetrust/pricing-service/internal/infrastructure/postgres/models"
)

func ToGORMProductMatch(match *domain.ProductMatch) *models.ProductMatchModel {
	return &models.ProductMatchModel{
		ID:                 match.ID,
		RawProductID:       match.RawProductID,
		CanonicalProductID: match.CanonicalProductID,
		Confidence:         match.Confidence,
		Method:             match.Method,
		Status:             string(match.Status),
		SupersededAt:       match.SupersededAt,
		CreatedAt:          match.CreatedAt,
	}
}

func ToDomainProductMatch(model *models.ProductMatchModel) *domain.ProductMatch {
	return &domain.ProductMatch{
		ID:                 model.ID,
		RawProductID:       model.RawProductID,
		CanonicalProductID: model.CanonicalProductID,
		Confidence:         model.Confidence,
		Method:             model.Method,
		Status:             domain.MatchStatus(model.Status),
		SupersededAt:       model.SupersededAt,
		CreatedAt:          model.CreatedAt,
	}
}
