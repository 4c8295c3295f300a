package repository

import (
	"context"
	"time"

	"github.com/pricetrust/pricing-service/internal/domain"
	"github.com/pricetrust/pricing-service/internal/infrastructure/postgres/mappers"
	"github.com/pricetrust/pricing-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultPriceHistoryRepository struct {
	DB *gorm.DB
}

func NewDefaultPriceHistoryRepository(db *gorm.DB) *DefaultPriceHistoryRepository {
	return &DefaultPriceHistoryRepository{DB: db}
}

// Append inserts one snapshot. A snapshot with a source hash already
// seen for this raw product, or landing on an occupied scraped_at, is
// reported as ErrDuplicateSnapshot so the caller can treat the
// re-ingest as a no-op.
func (r *DefaultPriceHistoryRepository) Append(ctx context.Context, snapshot *domain.PriceSnapshot) error {
	var count int64
	if err := r.DB.WithContext(ctx).
		Model(&models.PriceSnapshotModel{}).
		Where("raw_product_id = ? AND source_hash = ?", snapshot.RawProductID, snapshot.SourceHash).
		Count(&count).Error; err != nil {
		return translateError(err)
	}
	if count > 0 {
		return domain.ErrDuplicateSnapshot
	}

	snapshot.CreatedAt = time.Now().UTC()
	if err := r.DB.WithContext(ctx).Create(mappers.ToGORMPriceSnapshot(snapshot)).Error; err != nil {
		// The unique index on (raw_product_id, scraped_at) backstops the
		// hash check under concurrent ingestion.
		return translateError(err)
	}
	return nil
}

func (r *DefaultPriceHistoryRepository) History(ctx context.Context, rawProductID string, lookback time.Duration, before time.Time) ([]*domain.PriceSnapshot, error) {
	var snapshotModels []models.PriceSnapshotModel
	if err := r.DB.WithContext(ctx).
		Where("raw_product_id = ? AND scraped_at < ? AND scraped_at >= ?",
			rawProductID, before, before.Add(-lookback)).
		Order("scraped_at ASC").
		Find(&snapshotModels).Error; err != nil {
		return nil, translateError(err)
	}

	snapshots := make([]*domain.PriceSnapshot, len(snapshotModels))
	for i := range snapshotModels {
		snapshots[i] = mappers.ToDomainPriceSnapshot(&snapshotModels[i])
	}
	return snapshots, nil
}

// LatestPeerPrices returns the newest current price of every other raw
// product actively matched to the same canonical product.
func (r *DefaultPriceHistoryRepository) LatestPeerPrices(ctx context.Context, canonicalProductID, excludeRawProductID string) ([]float64, error) {
	var prices []float64
	err := r.DB.WithContext(ctx).Raw(`
		SELECT DISTINCT ON (ps.raw_product_id) ps.price_current
		FROM price_snapshots ps
		JOIN product_matches pm ON pm.raw_product_id = ps.raw_product_id
		WHERE pm.canonical_product_id = ?
		  AND pm.status <> ?
		  AND pm.superseded_at IS NULL
		  AND ps.raw_product_id <> ?
		ORDER BY ps.raw_product_id, ps.scraped_at DESC`,
		canonicalProductID, string(domain.MatchRejected), excludeRawProductID,
	).Scan(&prices).Error
	if err != nil {
		return nil, translateError(err)
	}
	return prices, nil
}

func (r *DefaultPriceHistoryRepository) CountByCanonical(ctx context.Context, canonicalProductID string) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).
		Model(&models.PriceSnapshotModel{}).
		Joins("JOIN product_matches pm ON pm.raw_product_id = price_snapshots.raw_product_id").
		Where("pm.canonical_product_id = ? AND pm.status <> ? AND pm.superseded_at IS NULL",
			canonicalProductID, string(domain.MatchRejected)).
		Count(&count).Error
	if err != nil {
		return 0, translateError(err)
	}
	return count, nil
}
