package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pricetrust/pricing-service/internal/domain"
	"github.com/pricetrust/pricing-service/internal/infrastructure/postgres/mappers"
	"gorm.io/gorm"
)

type DefaultEvaluationRepository struct {
	DB *gorm.DB
}

func NewDefaultEvaluationRepository(db *gorm.DB) *DefaultEvaluationRepository {
	return &DefaultEvaluationRepository{DB: db}
}

func (r *DefaultEvaluationRepository) Insert(ctx context.Context, evaluation *domain.DiscountEvaluation) error {
	model, err := mappers.ToGORMDiscountEvaluation(evaluation)
	if err != nil {
		return err
	}
	if err := r.DB.WithContext(ctx).Create(model).Error; err != nil {
		return translateError(err)
	}
	return nil
}

// evaluationRowScan is the flat join result the dashboard query
// produces before mapping into the domain read-model.
type evaluationRowScan struct {
	ID                 string
	CanonicalProductID string
	RetailerID         string
	SnapshotID         string
	Score              float64
	Label              string
	DiscountPct        *float64
	HistDeltaPct       *float64
	CrossStoreDeltaPct *float64
	AnchorAnomaly      bool
	RuleTrace          string
	ScoringVersion     string
	CreatedAt          time.Time
	RetailerName       string
	CanonicalName      string
	BrandNorm          string
	ProductURL         string
	PriceCurrent       float64
	PriceList          *float64
}

func (r *DefaultEvaluationRepository) Query(ctx context.Context, filter domain.EvaluationFilter) ([]*domain.EvaluationRow, error) {
	q := r.DB.WithContext(ctx).
		Table("discount_evaluations AS de").
		Select(`de.id, de.canonical_product_id, de.retailer_id, de.snapshot_id,
			de.score, de.label, de.discount_pct, de.hist_delta_pct, de.cross_store_delta_pct,
			de.anchor_anomaly, de.rule_trace, de.scoring_version, de.created_at,
			r.name AS retailer_name, cp.canonical_name, cp.brand_norm,
			rp.product_url, ps.price_current, ps.price_list`).
		Joins("JOIN retailers r ON r.id = de.retailer_id").
		Joins("JOIN canonical_products cp ON cp.id = de.canonical_product_id").
		Joins("JOIN price_snapshots ps ON ps.id = de.snapshot_id").
		Joins("JOIN raw_products rp ON rp.id = ps.raw_product_id").
		// Dashboard semantics: only deals attached to the newest
		// observation of each listing, not stale evaluations.
		Where(`ps.scraped_at = (
			SELECT MAX(ps2.scraped_at) FROM price_snapshots ps2
			WHERE ps2.raw_product_id = ps.raw_product_id)`)

	if filter.MinScore > 0 {
		q = q.Where("de.score >= ?", filter.MinScore)
	}
	if filter.Label != "" {
		q = q.Where("de.label = ?", string(filter.Label))
	}
	if filter.Retailer != "" {
		q = q.Where("r.name = ? OR r.domain = ?", filter.Retailer, filter.Retailer)
	}
	if filter.BrandSubstring != "" {
		q = q.Where("cp.brand_norm ILIKE ?", "%"+filter.BrandSubstring+"%")
	}
	if filter.MinVisibleDiscount != nil {
		q = q.Where("de.discount_pct >= ?", *filter.MinVisibleDiscount)
	}
	if filter.CrossStorePositive {
		q = q.Where("(de.rule_trace ->> 'R3_cross_store_ge_5pct')::boolean IS TRUE")
	}

	limit := filter.Limit
	if limit <= 0 || limit > domain.MaxEvaluationLimit {
		limit = domain.MaxEvaluationLimit
	}

	var scans []evaluationRowScan
	if err := q.Order("de.score DESC, de.created_at DESC").Limit(limit).Scan(&scans).Error; err != nil {
		return nil, translateError(err)
	}

	rows := make([]*domain.EvaluationRow, len(scans))
	for i, scan := range scans {
		var trace domain.RuleTrace
		if err := json.Unmarshal([]byte(scan.RuleTrace), &trace); err != nil {
			return nil, fmt.Errorf("unmarshal rule trace %s: %w", scan.ID, err)
		}
		rows[i] = &domain.EvaluationRow{
			Evaluation: domain.DiscountEvaluation{
				ID:                 scan.ID,
				CanonicalProductID: scan.CanonicalProductID,
				RetailerID:         scan.RetailerID,
				SnapshotID:         scan.SnapshotID,
				Score:              scan.Score,
				Label:              domain.EvaluationLabel(scan.Label),
				DiscountPct:        scan.DiscountPct,
				HistDeltaPct:       scan.HistDeltaPct,
				CrossStoreDeltaPct: scan.CrossStoreDeltaPct,
				AnchorAnomaly:      scan.AnchorAnomaly,
				RuleTrace:          trace,
				ScoringVersion:     scan.ScoringVersion,
				CreatedAt:          scan.CreatedAt,
			},
			RetailerName:  scan.RetailerName,
			CanonicalName: scan.CanonicalName,
			BrandNorm:     scan.BrandNorm,
			ProductURL:    scan.ProductURL,
			PriceCurrent:  scan.PriceCurrent,
			PriceList:     scan.PriceList,
		}
	}
	return rows, nil
}
