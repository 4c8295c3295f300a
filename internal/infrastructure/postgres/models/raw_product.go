package models

import "time"

// RawProductModel rows are never deleted. LastSeenAt moves forward on
// every sighting while FirstSeenAt stays fixed.
type RawProductModel struct {
	ID                string `gorm:"primaryKey;type:uuid"`
	RetailerID        string `gorm:"type:uuid;not null;uniqueIndex:idx_raw_products_retailer_sku"`
	RetailerProductID string `gorm:"not null;uniqueIndex:idx_raw_products_retailer_sku"`
	ProductURL        string
	Title             string `gorm:"not null"`
	BrandRaw          string
	SizeRaw           string
	CategoryRaw       string
	ImageURL          string
	EAN               string `gorm:"index"`
	FirstSeenAt       time.Time
	LastSeenAt        time.Time
}

func (RawProductModel) TableName() string { return "raw_products" }
