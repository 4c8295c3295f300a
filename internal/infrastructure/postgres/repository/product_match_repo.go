package repository

import (
	"context"
	"time"

	"github.com/pricetrust/pricing-service/internal/domain"
	"github.com/pricetrust/pricing-service/internal/infrastructure/postgres/mappers"
	"github.com/pricetrust/pricing-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultProductMatchRepository struct {
	DB *gorm.DB
}

func NewDefaultProductMatchRepository(db *gorm.DB) *DefaultProductMatchRepository {
	return &DefaultProductMatchRepository{DB: db}
}

func (r *DefaultProductMatchRepository) ActiveMatch(ctx context.Context, rawProductID string) (*domain.ProductMatch, error) {
	var model models.ProductMatchModel
	if err := r.DB.WithContext(ctx).
		Where("raw_product_id = ? AND status <> ? AND superseded_at IS NULL", rawProductID, string(domain.MatchRejected)).
		Order("created_at DESC").
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return mappers.ToDomainProductMatch(&model), nil
}

func (r *DefaultProductMatchRepository) RejectedCanonicalIDs(ctx context.Context, rawProductID string) ([]string, error) {
	var ids []string
	if err := r.DB.WithContext(ctx).
		Model(&models.ProductMatchModel{}).
		Where("raw_product_id = ? AND status = ?", rawProductID, string(domain.MatchRejected)).
		Pluck("canonical_product_id", &ids).Error; err != nil {
		return nil, translateError(err)
	}
	return ids, nil
}

func (r *DefaultProductMatchRepository) Insert(ctx context.Context, match *domain.ProductMatch) error {
	if err := r.DB.WithContext(ctx).Create(mappers.ToGORMProductMatch(match)).Error; err != nil {
		return translateError(err)
	}
	return nil
}

// SupersedeActive closes out the previous identity link. Human
// confirmations are never superseded by the pipeline.
func (r *DefaultProductMatchRepository) SupersedeActive(ctx context.Context, rawProductID string, at time.Time) error {
	err := r.DB.WithContext(ctx).
		Model(&models.ProductMatchModel{}).
		Where("raw_product_id = ? AND superseded_at IS NULL AND status NOT IN ?",
			rawProductID, []string{string(domain.MatchRejected), string(domain.MatchManualConfirmed)}).
		Update("superseded_at", at).Error
	return translateError(err)
}
