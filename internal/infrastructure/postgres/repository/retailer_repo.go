package repository

import (
	"context"
	"errors"
	"time"

	"github.com/pricetrust/pricing-service/internal/domain"
	"github.com/pricetrust/pricing-service/internal/infrastructure/postgres/mappers"
	"github.com/pricetrust/pricing-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultRetailerRepository struct {
	DB *gorm.DB
}

func NewDefaultRetailerRepository(db *gorm.DB) *DefaultRetailerRepository {
	return &DefaultRetailerRepository{DB: db}
}

// Upsert is keyed by domain: the first sighting creates the row, every
// later one just fills the caller's ID back in.
func (r *DefaultRetailerRepository) Upsert(ctx context.Context, retailer *domain.Retailer) error {
	var model models.RetailerModel
	err := r.DB.WithContext(ctx).Where("domain = ?", retailer.Domain).First(&model).Error
	if err == nil {
		retailer.ID = model.ID
		retailer.CreatedAt = model.CreatedAt
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return translateError(err)
	}

	retailer.CreatedAt = time.Now().UTC()
	if err := r.DB.WithContext(ctx).Create(mappers.ToGORMRetailer(retailer)).Error; err != nil {
		return translateError(err)
	}
	return nil
}
