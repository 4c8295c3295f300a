package repository

import (
	"context"

	"github.com/pricetrust/pricing-service/internal/domain"
	"github.com/pricetrust/pricing-service/internal/infrastructure/postgres/mappers"
	"github.com/pricetrust/pricing-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultPipelineRunRepository struct {
	DB *gorm.DB
}

func NewDefaultPipelineRunRepository(db *gorm.DB) *DefaultPipelineRunRepository {
	return &DefaultPipelineRunRepository{DB: db}
}

func (r *DefaultPipelineRunRepository) Insert(ctx context.Context, run *domain.PipelineRun) error {
	model, err := mappers.ToGORMPipelineRun(run)
	if err != nil {
		return err
	}
	if err := r.DB.WithContext(ctx).Create(model).Error; err != nil {
		return translateError(err)
	}
	return nil
}

func (r *DefaultPipelineRunRepository) Latest(ctx context.Context) (*domain.PipelineRun, error) {
	var model models.PipelineRunModel
	if err := r.DB.WithContext(ctx).Order("started_at DESC").First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return mappers.ToDomainPipelineRun(&model)
}
