package repository

import (
	"context"
	"errors"

	"github.com/pricetrust/pricing-service/internal/domain"
	"github.com/pricetrust/pricing-service/internal/infrastructure/postgres/mappers"
	"github.com/pricetrust/pricing-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultRawProductRepository struct {
	DB *gorm.DB
}

func NewDefaultRawProductRepository(db *gorm.DB) *DefaultRawProductRepository {
	return &DefaultRawProductRepository{DB: db}
}

// Upsert keys on (retailer_id, retailer_product_id). Existing rows keep
// their id and first_seen_at; the raw fields and last_seen_at refresh
// on every sighting.
func (r *DefaultRawProductRepository) Upsert(ctx context.Context, product *domain.RawProduct) error {
	var model models.RawProductModel
	err := r.DB.WithContext(ctx).
		Where("retailer_id = ? AND retailer_product_id = ?", product.RetailerID, product.RetailerProductID).
		First(&model).Error

	if err == nil {
		updateData := map[string]interface{}{
			"product_url":  product.ProductURL,
			"title":        product.Title,
			"brand_raw":    product.BrandRaw,
			"size_raw":     product.SizeRaw,
			"category_raw": product.CategoryRaw,
			"image_url":    product.ImageURL,
			"ean":          product.EAN,
			"last_seen_at": product.LastSeenAt,
		}
		if err := r.DB.WithContext(ctx).Model(&models.RawProductModel{}).
			Where("id = ?", model.ID).
			Updates(updateData).Error; err != nil {
			return translateError(err)
		}
		product.ID = model.ID
		product.FirstSeenAt = model.FirstSeenAt
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return translateError(err)
	}

	if err := r.DB.WithContext(ctx).Create(mappers.ToGORMRawProduct(product)).Error; err != nil {
		return translateError(err)
	}
	return nil
}

func (r *DefaultRawProductRepository) GetByID(ctx context.Context, id string) (*domain.RawProduct, error) {
	var model models.RawProductModel
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return mappers.ToDomainRawProduct(&model), nil
}
