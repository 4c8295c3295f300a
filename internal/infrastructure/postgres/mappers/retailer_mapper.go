package mappers

import (
	"github.com/pricetrust/pricing-service/internal/domain"
	"github.com/pricetrust/pricing-service/internal/infrastructure/postgres/models"
)

func ToGORMRetailer(retailer *domain.Retailer) *models.RetailerModel {
	return &models.RetailerModel{
		ID:        retailer.ID,
		Name:      retailer.Name,
		Domain:    retailer.Domain,
		IsActive:  retailer.IsActive,
		CreatedAt: retailer.CreatedAt,
	}
}

func ToDomainRetailer(model *models.RetailerModel) *domain.Retailer {
	return &domain.Retailer{
		ID:        model.ID,
		Name:      model.Name,
		Domain:    model.Domain,
		IsActive:  model.IsActive,
		CreatedAt: model.CreatedAt,
	}
}
