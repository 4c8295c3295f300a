// Package matching resolves raw retailer products to canonical,
// retailer-independent product identities under a confidence-gated
// acceptance policy.
package matching

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pricetrust/pricing-service/internal/domain"
)

// MatcherConfig carries the calibrated acceptance thresholds.
type MatcherConfig struct {
	AutoAcceptThreshold float64
	PendingThreshold    float64
}

const (
	defaultAutoAcceptThreshold = 0.90
	defaultPendingThreshold    = 0.70
)

// Matcher maps raw products to canonical products, minimizing false
// merges and false splits. Strategies run in registration order; the
// first definitive proposal wins.
type Matcher struct {
	strategies []Strategy
	canonicals domain.CanonicalProductRepository
	matches    domain.ProductMatchRepository
	auto       float64
	pending    float64
	logger     *slog.Logger
}

func NewMatcher(
	cfg MatcherConfig,
	canonicals domain.CanonicalProductRepository,
	matches domain.ProductMatchRepository,
	logger *slog.Logger,
	strategies ...Strategy,
) *Matcher {
	auto := cfg.AutoAcceptThreshold
	if auto <= 0 {
		auto = defaultAutoAcceptThreshold
	}
	pending := cfg.PendingThreshold
	if pending <= 0 {
		pending = defaultPendingThreshold
	}
	return &Matcher{
		strategies: strategies,
		canonicals: canonicals,
		matches:    matches,
		auto:       auto,
		pending:    pending,
		logger:     logger,
	}
}

// Resolve returns the active identity link for a raw product, creating
// a canonical product when nothing matches above the pending
// threshold. A MANUAL_CONFIRMED match is returned untouched: human
// overrides are never silently re-evaluated.
func (m *Matcher) Resolve(ctx context.Context, raw *domain.RawProduct, identity Identity) (*domain.ProductMatch, error) {
	existing, err := m.matches.ActiveMatch(ctx, raw.ID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("active match lookup: %w", err)
	}
	if existing != nil && existing.Status == domain.MatchManualConfirmed {
		return existing, nil
	}

	rejectedIDs, err := m.matches.RejectedCanonicalIDs(ctx, raw.ID)
	if err != nil {
		return nil, fmt.Errorf("rejected lookup: %w", err)
	}
	exclude := make(map[string]bool, len(rejectedIDs))
	for _, id := range rejectedIDs {
		exclude[id] = true
	}

	var best *Candidate
	for _, strategy := range m.strategies {
		candidate, err := strategy.Propose(ctx, identity, exclude)
		if err != nil {
			return nil, fmt.Errorf("strategy %s: %w", strategy.Name(), err)
		}
		if candidate == nil {
			continue
		}
		if candidate.Method == domain.MatchMethodExactEAN {
			// EAN identity is definitive, skip the rest.
			best = candidate
			break
		}
		if best == nil || candidate.Confidence > best.Confidence {
			best = candidate
		}
	}

	match := &domain.ProductMatch{
		ID:           uuid.NewString(),
		RawProductID: raw.ID,
		CreatedAt:    time.Now().UTC(),
	}

	switch {
	case best != nil && best.Confidence >= m.auto:
		match.CanonicalProductID = best.Product.ID
		match.Confidence = best.Confidence
		match.Method = best.Method
		match.Status = domain.MatchAutoAccepted
	case best != nil && best.Confidence >= m.pending:
		match.CanonicalProductID = best.Product.ID
		match.Confidence = best.Confidence
		match.Method = best.Method
		match.Status = domain.MatchPendingReview
		m.logger.Info("match queued for review",
			"raw_product_id", raw.ID,
			"canonical_product_id", best.Product.ID,
			"confidence", best.Confidence)
	default:
		canonical, err := m.createCanonical(ctx, identity)
		if err != nil {
			return nil, err
		}
		match.CanonicalProductID = canonical.ID
		match.Confidence = 1.0
		match.Method = domain.MatchMethodSelf
		match.Status = domain.MatchAutoAccepted
	}

	// Keep the single-active-link invariant before inserting the new
	// identity edge.
	if existing != nil {
		if err := m.matches.SupersedeActive(ctx, raw.ID, match.CreatedAt); err != nil {
			return nil, fmt.Errorf("supersede active match: %w", err)
		}
	}
	if err := m.matches.Insert(ctx, match); err != nil {
		return nil, fmt.Errorf("insert match: %w", err)
	}
	return match, nil
}

func (m *Matcher) createCanonical(ctx context.Context, identity Identity) (*domain.CanonicalProduct, error) {
	canonical := &domain.CanonicalProduct{
		ID:            uuid.NewString(),
		CanonicalName: identity.NameNorm,
		BrandNorm:     identity.BrandNorm,
		SizeValue:     identity.SizeValue,
		SizeUnit:      identity.SizeUnit,
		CategoryNorm:  identity.CategoryNorm,
		EAN:           identity.EAN,
		CreatedAt:     time.Now().UTC(),
	}
	if err := m.canonicals.Create(ctx, canonical); err != nil {
		return nil, fmt.Errorf("create canonical product: %w", err)
	}
	return canonical, nil
}
