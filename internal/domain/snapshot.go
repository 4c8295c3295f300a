package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// PriceSnapshot is one append-only price observation for a RawProduct.
// Uniqueness is enforced on (raw product, scraped_at).
type PriceSnapshot struct {
	ID           string
	RawProductID string
	ScrapedAt    time.Time
	PriceCurrent float64
	PriceList    *float64
	Currency     string
	PromoText    string
	InStock      bool
	SourceHash   string
	CreatedAt    time.Time
}

// SourceHash fingerprints the price-relevant content of an offer so
// identical re-ingested observations dedupe to a no-op.
func SourceHash(retailerProductID string, priceCurrent float64, priceList *float64, scrapedAt time.Time) string {
	list := "null"
	if priceList != nil {
		list = fmt.Sprintf("%.4f", *priceList)
	}
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%.4f|%s|%s",
		retailerProductID, priceCurrent, list, scrapedAt.UTC().Format(time.RFC3339))))
	return hex.EncodeToString(sum[:])
}
