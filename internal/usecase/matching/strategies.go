package matching

import (
	"context"
	"errors"
	"fmt"

	"github.com/pricetrust/pricing-service/internal/domain"
)

// ExactEANStrategy matches on a shared EAN. An EAN hit is definitive:
// confidence 1.0, overriding any fuzzy score.
type ExactEANStrategy struct {
	canonicals domain.CanonicalProductRepository
}

func NewExactEANStrategy(canonicals domain.CanonicalProductRepository) *ExactEANStrategy {
	return &ExactEANStrategy{canonicals: canonicals}
}

func (s *ExactEANStrategy) Name() string { return domain.MatchMethodExactEAN }

func (s *ExactEANStrategy) Propose(ctx context.Context, identity Identity, exclude map[string]bool) (*Candidate, error) {
	if identity.EAN == "" {
		return nil, nil
	}
	product, err := s.canonicals.FindByEAN(ctx, identity.EAN)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ean lookup: %w", err)
	}
	if exclude[product.ID] {
		return nil, nil
	}
	return &Candidate{Product: product, Confidence: 1.0, Method: domain.MatchMethodExactEAN}, nil
}

// FuzzyTokenStrategy scores name-token similarity against canonical
// products sharing normalized brand and category, dampened by the size
// factor. Ties break toward the candidate with the most price history,
// then the oldest canonical id.
type FuzzyTokenStrategy struct {
	canonicals domain.CanonicalProductRepository
	history    domain.PriceHistoryRepository
}

func NewFuzzyTokenStrategy(canonicals domain.CanonicalProductRepository, history domain.PriceHistoryRepository) *FuzzyTokenStrategy {
	return &FuzzyTokenStrategy{canonicals: canonicals, history: history}
}

func (s *FuzzyTokenStrategy) Name() string { return domain.MatchMethodFuzzyToken }

func (s *FuzzyTokenStrategy) Propose(ctx context.Context, identity Identity, exclude map[string]bool) (*Candidate, error) {
	candidates, err := s.canonicals.FindCandidates(ctx, identity.BrandNorm, identity.CategoryNorm)
	if err != nil {
		return nil, fmt.Errorf("candidate lookup: %w", err)
	}

	var best *domain.CanonicalProduct
	var bestScore float64
	var bestHistory int64

	for _, candidate := range candidates {
		if exclude[candidate.ID] {
			continue
		}
		score := nameSimilarity(identity.NameNorm, candidate.CanonicalName) *
			sizeFactor(identity.SizeValue, identity.SizeUnit, candidate.SizeValue, candidate.SizeUnit)
		if score <= 0 {
			continue
		}

		var count int64
		if best == nil || score >= bestScore {
			count, err = s.history.CountByCanonical(ctx, candidate.ID)
			if err != nil {
				return nil, fmt.Errorf("history count: %w", err)
			}
		}

		switch {
		case best == nil || score > bestScore:
			best, bestScore, bestHistory = candidate, score, count
		case score == bestScore:
			// Deterministic tie-break: most corroborated identity first,
			// then stable ordering by age and id.
			if count > bestHistory ||
				(count == bestHistory && candidate.CreatedAt.Before(best.CreatedAt)) ||
				(count == bestHistory && candidate.CreatedAt.Equal(best.CreatedAt) && candidate.ID < best.ID) {
				best, bestHistory = candidate, count
			}
		}
	}

	if best == nil {
		return nil, nil
	}
	return &Candidate{Product: best, Confidence: bestScore, Method: domain.MatchMethodFuzzyToken}, nil
}
