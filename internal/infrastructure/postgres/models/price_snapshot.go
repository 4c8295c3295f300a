package models

import "time"

type PriceSnapshotModel struct {
	ID           string    `gorm:"primaryKey;type:uuid"`
	RawProductID string    `gorm:"type:uuid;not null;uniqueIndex:idx_price_snapshots_raw_scraped"`
	ScrapedAt    time.Time `gorm:"not null;uniqueIndex:idx_price_snapshots_raw_scraped"`
	PriceCurrent float64   `gorm:"not null"`
	PriceList    *float64
	Currency     string
	PromoText    string
	InStock      bool
	SourceHash   string `gorm:"index;not null"`
	CreatedAt    time.Time
}

func (PriceSnapshotModel) TableName() string { return "price_snapshots" }
