package domain

import (
	"context"
	"time"
)

// RawOffer is one scraped listing as delivered by a retailer source,
// before identity resolution.
type RawOffer struct {
	RetailerName      string
	RetailerDomain    string
	RetailerProductID string
	ProductURL        string
	Title             string
	BrandRaw          string
	SizeRaw           string
	CategoryRaw       string
	ImageURL          string
	EAN               string
	PriceCurrent      float64
	PriceList         *float64
	Currency          string
	PromoText         string
	InStock           bool
	ScrapedAt         time.Time
}

// OfferSource is the boundary to the scraping layer. A source that
// errors or returns zero offers marks the whole run FAILED.
type OfferSource interface {
	Name() string
	Fetch(ctx context.Context) ([]RawOffer, error)
}
