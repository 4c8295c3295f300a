package mappers

import (
	"github.com/pricetrust/pricing-service/internal/domain"
	"github.com/pricetrust/pricing-service/internal/infrastructure/postgres/models"
)

func ToGORMPriceSnapshot(snapshot *domain.PriceSnapshot) *models.PriceSnapshotModel {
	return &models.PriceSnapshotModel{
		ID:           snapshot.ID,
		RawProductID: snapshot.RawProductID,
		ScrapedAt:    snapshot.ScrapedAt,
		PriceCurrent: snapshot.PriceCurrent,
		PriceList:    snapshot.PriceList,
		Currency:     snapshot.Currency,
		PromoText:    snapshot.PromoText,
		InStock:      snapshot.InStock,
		SourceHash:   snapshot.SourceHash,
		CreatedAt:    snapshot.CreatedAt,
	}
}

func ToDomainPriceSnapshot(model *models.PriceSnapshotModel) *domain.PriceSnapshot {
	return &domain.PriceSnapshot{
		ID:           model.ID,
		RawProductID: model.RawProductID,
		ScrapedAt:    model.ScrapedAt,
		PriceCurrent: model.PriceCurrent,
		PriceList:    model.PriceList,
		Currency:     model.Currency,
		PromoText:    model.PromoText,
		InStock:      model.InStock,
		SourceHash:   model.SourceHash,
		CreatedAt:    model.CreatedAt,
	}
}
