package postgres

import (
	"log"

	"github.com/pricetrust/pricing-service/internal/config"
	"github.com/pricetrust/pricing-service/internal/infrastructure/logger"
	"github.com/pricetrust/pricing-service/internal/infrastructure/postgres/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func MustInitDB(cfg *config.PricingConfig) *gorm.DB {
	dsn := cfg.PricingDB.Dsn
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to init db: %v\n", err.Error())
	}

	db.AutoMigrate(
		&models.RetailerModel{},
		&models.RawProductModel{},
		&models.CanonicalProductModel{},
		&models.ProductMatchModel{},
		&models.PriceSnapshotModel{},
		&models.DiscountEvaluationModel{},
		&models.PipelineRunModel{},
		&logger.OfferIngestFailedEvent{},
	)

	return db
}
