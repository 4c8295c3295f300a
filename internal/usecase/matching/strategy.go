package matching

import (
	"context"

	"github.com/pricetrust/pricing-service/internal/domain"
)

// Identity is the normalized view of a raw offer the matcher works
// with.
type Identity struct {
	NameNorm     string
	BrandNorm    string
	CategoryNorm string
	SizeValue    *float64
	SizeUnit     *string
	EAN          string
}

// Candidate is one strategy's proposal: a canonical product plus the
// confidence the strategy assigns to the link.
type Candidate struct {
	Product    *domain.CanonicalProduct
	Confidence float64
	Method     string
}

// Strategy proposes a canonical product for an identity, or nil when
// it has nothing to offer. Canonical products listed in exclude were
// manually rejected for this raw product and must never be proposed.
type Strategy interface {
	Name() string
	Propose(ctx context.Context, identity Identity, exclude map[string]bool) (*Candidate, error)
}
