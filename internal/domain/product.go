package domain

import "time"

// RawProduct is one row per (retailer, retailer-local product id).
// Never deleted; LastSeenAt moves forward on every sighting.
type RawProduct struct {
	ID                string
	RetailerID        string
	RetailerProductID string
	ProductURL        string
	Title             string
	BrandRaw          string
	SizeRaw           string
	CategoryRaw       string
	ImageURL          string
	EAN               string
	FirstSeenAt       time.Time
	LastSeenAt        time.Time
}

// CanonicalProduct is the retailer-independent identity a RawProduct
// resolves to.
type CanonicalProduct struct {
	ID            string
	CanonicalName string
	BrandNorm     string
	SizeValue     *float64
	SizeUnit      *string
	CategoryNorm  string
	EAN           string
	CreatedAt     time.Time
}
