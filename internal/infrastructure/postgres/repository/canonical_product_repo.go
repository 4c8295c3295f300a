package repository

import (
	"context"

	"github.com/pricetrust/pricing-service/internal/domain"
	"github.com/pricetrust/pricing-service/internal/infrastructure/postgres/mappers"
	"github.com/pricetrust/pricing-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultCanonicalProductRepository struct {
	DB *gorm.DB
}

func NewDefaultCanonicalProductRepository(db *gorm.DB) *DefaultCanonicalProductRepository {
	return &DefaultCanonicalProductRepository{DB: db}
}

func (r *DefaultCanonicalProductRepository) Create(ctx context.Context, product *domain.CanonicalProduct) error {
	if err := r.DB.WithContext(ctx).Create(mappers.ToGORMCanonicalProduct(product)).Error; err != nil {
		return translateError(err)
	}
	return nil
}

func (r *DefaultCanonicalProductRepository) FindByEAN(ctx context.Context, ean string) (*domain.CanonicalProduct, error) {
	var model models.CanonicalProductModel
	if err := r.DB.WithContext(ctx).
		Where("ean = ? AND ean <> ''", ean).
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return mappers.ToDomainCanonicalProduct(&model), nil
}

// FindCandidates returns the fuzzy-matching block: canonical products
// sharing normalized brand and category.
func (r *DefaultCanonicalProductRepository) FindCandidates(ctx context.Context, brandNorm, categoryNorm string) ([]*domain.CanonicalProduct, error) {
	var candidateModels []models.CanonicalProductModel
	if err := r.DB.WithContext(ctx).
		Where("brand_norm = ? AND category_norm = ?", brandNorm, categoryNorm).
		Find(&candidateModels).Error; err != nil {
		return nil, translateError(err)
	}

	candidates := make([]*domain.CanonicalProduct, len(candidateModels))
	for i := range candidateModels {
		candidates[i] = mappers.ToDomainCanonicalProduct(&candidateModels[i])
	}
	return candidates, nil
}
