package models

import "time"

// ProductMatchModel keeps every identity edge ever written. The active
// link is the single non-REJECTED row with superseded_at IS NULL.
type ProductMatchModel struct {
	ID                 string `gorm:"primaryKey;type:uuid"`
	RawProductID       string `gorm:"type:uuid;not null;index"`
	CanonicalProductID string `gorm:"type:uuid;not null;index"`
	Confidence         float64
	Method             string
	Status             string `gorm:"not null"`
	SupersededAt       *time.Time
	CreatedAt          time.Time
}

func (ProductMatchModel) TableName() string { return "product_matches" }
