package domain

import "time"

type MatchStatus string

const (
	MatchAutoAccepted    MatchStatus = "AUTO_ACCEPTED"
	MatchPendingReview   MatchStatus = "PENDING_REVIEW"
	MatchManualConfirmed MatchStatus = "MANUAL_CONFIRMED"
	MatchRejected        MatchStatus = "REJECTED"
)

const (
	MatchMethodExactEAN   = "exact-ean"
	MatchMethodFuzzyToken = "fuzzy-token"
	MatchMethodManual     = "manual"
	// MatchMethodSelf marks the self-match written when a raw product
	// seeds a brand-new canonical product.
	MatchMethodSelf = "self"
)

// ProductMatch links a RawProduct to a CanonicalProduct. At most one
// non-REJECTED, non-superseded match is active per RawProduct.
type ProductMatch struct {
	ID                 string
	RawProductID       string
	CanonicalProductID string
	Confidence         float64
	Method             string
	Status             MatchStatus
	SupersededAt       *time.Time
	CreatedAt          time.Time
}

func (m *ProductMatch) Active() bool {
	return m.Status != MatchRejected && m.SupersededAt == nil
}
