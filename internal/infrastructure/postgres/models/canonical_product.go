package models

import "time"

type CanonicalProductModel struct {
	ID            string `gorm:"primaryKey;type:uuid"`
	CanonicalName string `gorm:"not null"`
	BrandNorm     string `gorm:"index:idx_canonical_products_blocking"`
	SizeValue     *float64
	SizeUnit      *string
	CategoryNorm  string `gorm:"index:idx_canonical_products_blocking"`
	EAN           string `gorm:"index"`
	CreatedAt     time.Time
}

func (CanonicalProductModel) TableName() string { return "canonical_products" }
