package domain

import (
	"context"
	"time"
)

type RetailerRepository interface {
	// Upsert creates the retailer on first sight (keyed by domain) and
	// fills ID either way.
	Upsert(ctx context.Context, retailer *Retailer) error
}

type RawProductRepository interface {
	// Upsert creates on first sighting and refreshes the raw fields and
	// last_seen_at afterwards, keyed by (retailer_id, retailer_product_id).
	Upsert(ctx context.Context, product *RawProduct) error
	GetByID(ctx context.Context, id string) (*RawProduct, error)
}

type CanonicalProductRepository interface {
	Create(ctx context.Context, product *CanonicalProduct) error
	FindByEAN(ctx context.Context, ean string) (*CanonicalProduct, error)
	// FindCandidates returns canonical products sharing normalized brand
	// and category, the blocking key for fuzzy matching.
	FindCandidates(ctx context.Context, brandNorm, categoryNorm string) ([]*CanonicalProduct, error)
}

type ProductMatchRepository interface {
	// ActiveMatch returns the single non-REJECTED, non-superseded match
	// for a raw product, or ErrNotFound.
	ActiveMatch(ctx context.Context, rawProductID string) (*ProductMatch, error)
	// RejectedCanonicalIDs lists canonical products a human rejected for
	// this raw product; the matcher never re-proposes them.
	RejectedCanonicalIDs(ctx context.Context, rawProductID string) ([]string, error)
	Insert(ctx context.Context, match *ProductMatch) error
	// SupersedeActive closes out prior active matches before a new one
	// becomes the identity link. MANUAL_CONFIRMED rows are left alone.
	SupersedeActive(ctx context.Context, rawProductID string, at time.Time) error
}

// PriceHistoryRepository is the append-only price timeline per raw
// product.
type PriceHistoryRepository interface {
	// Append inserts one snapshot. Returns ErrDuplicateSnapshot when a
	// snapshot already exists for the exact timestamp or the same
	// source hash landed within the dedup window.
	Append(ctx context.Context, snapshot *PriceSnapshot) error
	// History returns snapshots strictly before the given time, within
	// the lookback window, ascending. Empty history is not an error.
	History(ctx context.Context, rawProductID string, lookback time.Duration, before time.Time) ([]*PriceSnapshot, error)
	// LatestPeerPrices returns the most recent current price of every
	// other raw product actively matched to the canonical product.
	LatestPeerPrices(ctx context.Context, canonicalProductID, excludeRawProductID string) ([]float64, error)
	// CountByCanonical backs the matcher tie-break: the candidate with
	// the most corroborating snapshots wins.
	CountByCanonical(ctx context.Context, canonicalProductID string) (int64, error)
}

type EvaluationRepository interface {
	// Insert writes one immutable evaluation. ErrMissingReference when
	// a foreign key is absent, ErrDuplicateSnapshot when this snapshot
	// was already evaluated under the same scoring version.
	Insert(ctx context.Context, evaluation *DiscountEvaluation) error
	Query(ctx context.Context, filter EvaluationFilter) ([]*EvaluationRow, error)
}

type PipelineRunRepository interface {
	Insert(ctx context.Context, run *PipelineRun) error
	// Latest is the read-only derived "current status": most recent run
	// by start time, ErrNotFound before the first run.
	Latest(ctx context.Context) (*PipelineRun, error)
}
