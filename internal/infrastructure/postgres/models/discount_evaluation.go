package models

import "time"

// DiscountEvaluationModel rows are immutable. A recalibrated scorer
// writes new rows under a new scoring_version.
type DiscountEvaluationModel struct {
	ID                 string `gorm:"primaryKey;type:uuid"`
	CanonicalProductID string `gorm:"type:uuid;not null;index"`
	RetailerID         string `gorm:"type:uuid;not null;index"`
	SnapshotID         string `gorm:"type:uuid;not null;uniqueIndex:idx_discount_evaluations_snapshot_version"`
	Score              float64
	Label              string `gorm:"not null;index"`
	DiscountPct        *float64
	HistDeltaPct       *float64
	CrossStoreDeltaPct *float64
	AnchorAnomaly      bool
	RuleTrace          string `gorm:"type:jsonb;not null"`
	ScoringVersion     string `gorm:"not null;uniqueIndex:idx_discount_evaluations_snapshot_version"`
	CreatedAt          time.Time `gorm:"index"`
}

func (DiscountEvaluationModel) TableName() string { return "discount_evaluations" }
