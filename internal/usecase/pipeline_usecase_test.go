package usecase

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/pricetrust/pricing-service/internal/domain"
	"github.com/pricetrust/pricing-service/internal/usecase/matching"
	"github.com/pricetrust/pricing-service/internal/usecase/scoring"
	"github.com/stretchr/testify/require"
)

// memStore implements every repository port in memory so the pipeline
// can be exercised end to end without a database.
type memStore struct {
	mu          sync.Mutex
	retailers   map[string]*domain.Retailer // keyed by domain
	rawProducts map[string]*domain.RawProduct
	canonicals  []*domain.CanonicalProduct
	matches     []*domain.ProductMatch
	snapshots   []*domain.PriceSnapshot
	evaluations []*domain.DiscountEvaluation
	runs        []*domain.PipelineRun
}

func newMemStore() *memStore {
	return &memStore{
		retailers:   map[string]*domain.Retailer{},
		rawProducts: map[string]*domain.RawProduct{},
	}
}

func (s *memStore) Upsert(ctx context.Context, r *domain.Retailer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.retailers[r.Domain]; ok {
		r.ID = existing.ID
		return nil
	}
	clone := *r
	s.retailers[r.Domain] = &clone
	return nil
}

type rawProductRepo struct{ *memStore }

func (s rawProductRepo) Upsert(ctx context.Context, p *domain.RawProduct) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := p.RetailerID + "|" + p.RetailerProductID
	if existing, ok := s.rawProducts[key]; ok {
		p.ID = existing.ID
		p.FirstSeenAt = existing.FirstSeenAt
		existing.LastSeenAt = p.LastSeenAt
		return nil
	}
	clone := *p
	s.rawProducts[key] = &clone
	return nil
}

func (s rawProductRepo) GetByID(ctx context.Context, id string) (*domain.RawProduct, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.rawProducts {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, domain.ErrNotFound
}

type canonicalRepo struct{ *memStore }

func (s canonicalRepo) Create(ctx context.Context, p *domain.CanonicalProduct) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.canonicals = append(s.canonicals, p)
	return nil
}

func (s canonicalRepo) FindByEAN(ctx context.Context, ean string) (*domain.CanonicalProduct, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.canonicals {
		if p.EAN != "" && p.EAN == ean {
			return p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s canonicalRepo) FindCandidates(ctx context.Context, brandNorm, categoryNorm string) ([]*domain.CanonicalProduct, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.CanonicalProduct
	for _, p := range s.canonicals {
		if p.BrandNorm == brandNorm && p.CategoryNorm == categoryNorm {
			out = append(out, p)
		}
	}
	return out, nil
}

type matchRepo struct{ *memStore }

func (s matchRepo) ActiveMatch(ctx context.Context, rawProductID string) (*domain.ProductMatch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.matches {
		if m.RawProductID == rawProductID && m.Active() {
			return m, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s matchRepo) RejectedCanonicalIDs(ctx context.Context, rawProductID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for _, m := range s.matches {
		if m.RawProductID == rawProductID && m.Status == domain.MatchRejected {
			out = append(out, m.CanonicalProductID)
		}
	}
	return out, nil
}

func (s matchRepo) Insert(ctx context.Context, m *domain.ProductMatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.matches = append(s.matches, m)
	return nil
}

func (s matchRepo) SupersedeActive(ctx context.Context, rawProductID string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.matches {
		if m.RawProductID == rawProductID && m.Active() && m.Status != domain.MatchManualConfirmed {
			ts := at
			m.SupersededAt = &ts
		}
	}
	return nil
}

type historyRepo struct{ *memStore }

func (s historyRepo) Append(ctx context.Context, snap *domain.PriceSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.snapshots {
		if existing.RawProductID == snap.RawProductID && existing.ScrapedAt.Equal(snap.ScrapedAt) {
			return domain.ErrDuplicateSnapshot
		}
		if existing.SourceHash == snap.SourceHash {
			return domain.ErrDuplicateSnapshot
		}
	}
	s.snapshots = append(s.snapshots, snap)
	return nil
}

func (s historyRepo) History(ctx context.Context, rawProductID string, lookback time.Duration, before time.Time) ([]*domain.PriceSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.PriceSnapshot
	cutoff := before.Add(-lookback)
	for _, snap := range s.snapshots {
		if snap.RawProductID == rawProductID && snap.ScrapedAt.Before(before) && !snap.ScrapedAt.Before(cutoff) {
			out = append(out, snap)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScrapedAt.Before(out[j].ScrapedAt) })
	return out, nil
}

func (s historyRepo) LatestPeerPrices(ctx context.Context, canonicalProductID, excludeRawProductID string) ([]float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []float64
	for _, m := range s.matches {
		if m.CanonicalProductID != canonicalProductID || !m.Active() || m.RawProductID == excludeRawProductID {
			continue
		}
		var latest *domain.PriceSnapshot
		for _, snap := range s.snapshots {
			if snap.RawProductID != m.RawProductID {
				continue
			}
			if latest == nil || snap.ScrapedAt.After(latest.ScrapedAt) {
				latest = snap
			}
		}
		if latest != nil {
			out = append(out, latest.PriceCurrent)
		}
	}
	return out, nil
}

func (s historyRepo) CountByCanonical(ctx context.Context, canonicalProductID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, m := range s.matches {
		if m.CanonicalProductID != canonicalProductID || !m.Active() {
			continue
		}
		for _, snap := range s.snapshots {
			if snap.RawProductID == m.RawProductID {
				count++
			}
		}
	}
	return count, nil
}

type evaluationRepo struct{ *memStore }

func (s evaluationRepo) Insert(ctx context.Context, e *domain.DiscountEvaluation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.evaluations {
		if existing.SnapshotID == e.SnapshotID && existing.ScoringVersion == e.ScoringVersion {
			return domain.ErrDuplicateSnapshot
		}
	}
	s.evaluations = append(s.evaluations, e)
	return nil
}

func (s evaluationRepo) Query(ctx context.Context, filter domain.EvaluationFilter) ([]*domain.EvaluationRow, error) {
	return nil, nil
}

type runRepo struct{ *memStore }

func (s runRepo) Insert(ctx context.Context, run *domain.PipelineRun) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs = append(s.runs, run)
	return nil
}

func (s runRepo) Latest(ctx context.Context) (*domain.PipelineRun, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.runs) == 0 {
		return nil, domain.ErrNotFound
	}
	latest := s.runs[0]
	for _, run := range s.runs[1:] {
		if run.StartedAt.After(latest.StartedAt) {
			latest = run
		}
	}
	return latest, nil
}

type staticSource struct {
	name   string
	offers []domain.RawOffer
	err    error
}

func (s *staticSource) Name() string { return s.name }
func (s *staticSource) Fetch(ctx context.Context) ([]domain.RawOffer, error) {
	return s.offers, s.err
}

func listPtr(v float64) *float64 { return &v }

func newPipeline(store *memStore, sources ...domain.OfferSource) *DefaultPipelineUsecase {
	logger := slog.Default()
	matcher := matching.NewMatcher(
		matching.MatcherConfig{},
		canonicalRepo{store},
		matchRepo{store},
		logger,
		matching.NewExactEANStrategy(canonicalRepo{store}),
		matching.NewFuzzyTokenStrategy(canonicalRepo{store}, historyRepo{store}),
	)
	return NewDefaultPipelineUsecase(
		PipelineConfig{
			Lookback:        90 * 24 * time.Hour,
			MinHistorySpan:  72 * time.Hour,
			DefaultCurrency: "CLP",
		},
		sources,
		store,
		rawProductRepo{store},
		matcher,
		historyRepo{store},
		scoring.NewEvaluator(),
		evaluationRepo{store},
		runRepo{store},
		nil,
		nil,
		nil,
		logger,
	)
}

func offerAt(retailer, sku string, price float64, list *float64, at time.Time) domain.RawOffer {
	return domain.RawOffer{
		RetailerName:      retailer,
		RetailerDomain:    retailer + ".cl",
		RetailerProductID: sku,
		ProductURL:        "https://" + retailer + ".cl/p/" + sku,
		Title:             "Protector Solar Facial FPS 50 50 ml",
		BrandRaw:          "ISDIN",
		SizeRaw:           "50 ml",
		CategoryRaw:       "Dermocosmética / Protección Solar",
		EAN:               "8429420183056",
		PriceCurrent:      price,
		PriceList:         list,
		InStock:           true,
		ScrapedAt:         at,
	}
}

func TestRunFailsWhenAnySourceIsEmpty(t *testing.T) {
	now := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	store := newMemStore()
	healthy := &staticSource{name: "salcobrand", offers: []domain.RawOffer{
		offerAt("salcobrand", "sku-1", 8990, listPtr(9990), now),
	}}
	empty := &staticSource{name: "cruzverde"}

	uc := newPipeline(store, healthy, empty)
	run, err := uc.Run(context.Background())
	require.NoError(t, err)

	require.Equal(t, domain.RunFailed, run.Status)
	require.Empty(t, store.evaluations)
	require.Empty(t, store.snapshots)
	require.False(t, run.FinishedAt.IsZero())

	var failedResult *domain.RetailerResult
	for i := range run.RetailerResults {
		if run.RetailerResults[i].Retailer == "cruzverde" {
			failedResult = &run.RetailerResults[i]
		}
	}
	require.NotNil(t, failedResult)
	require.Equal(t, domain.SourceError, failedResult.Source)
	require.NotEmpty(t, failedResult.Error)
}

func TestRunFailsWhenSourceErrors(t *testing.T) {
	store := newMemStore()
	broken := &staticSource{name: "falabella", err: errors.New("HTTP 503 from origin")}

	uc := newPipeline(store, broken)
	run, err := uc.Run(context.Background())
	require.NoError(t, err)

	require.Equal(t, domain.RunFailed, run.Status)
	require.Equal(t, "HTTP 503 from origin", run.RetailerResults[0].Error)
	require.Empty(t, store.evaluations)
}

func TestRunIngestsAndEvaluates(t *testing.T) {
	now := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	store := newMemStore()
	source := &staticSource{name: "salcobrand", offers: []domain.RawOffer{
		offerAt("salcobrand", "sku-1", 8990, listPtr(9990), now),
	}}

	uc := newPipeline(store, source)
	run, err := uc.Run(context.Background())
	require.NoError(t, err)

	require.Equal(t, domain.RunSuccess, run.Status)
	require.Equal(t, 1, run.TotalOffers)
	require.Equal(t, 1, run.TotalSnapshots)
	require.Equal(t, 1, run.TotalEvaluations)
	require.Len(t, store.canonicals, 1)
	require.Len(t, store.evaluations, 1)
	require.Equal(t, scoring.ScoringVersion, store.evaluations[0].ScoringVersion)

	latest, err := uc.LatestRun(context.Background())
	require.NoError(t, err)
	require.Equal(t, run.ID, latest.ID)
}

func TestReingestIsIdempotent(t *testing.T) {
	now := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	store := newMemStore()
	source := &staticSource{name: "salcobrand", offers: []domain.RawOffer{
		offerAt("salcobrand", "sku-1", 8990, listPtr(9990), now),
	}}

	uc := newPipeline(store, source)
	_, err := uc.Run(context.Background())
	require.NoError(t, err)

	// Same offer, same scraped_at, same prices: the restarted run must
	// not duplicate snapshots or evaluations.
	rerun, err := uc.Run(context.Background())
	require.NoError(t, err)

	require.Equal(t, domain.RunSuccess, rerun.Status)
	require.Equal(t, 0, rerun.TotalSnapshots)
	require.Equal(t, 0, rerun.TotalEvaluations)
	require.Len(t, store.snapshots, 1)
	require.Len(t, store.evaluations, 1)
}

func TestCrossRetailerPeersShareCanonicalProduct(t *testing.T) {
	now := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	store := newMemStore()
	cheap := &staticSource{name: "salcobrand", offers: []domain.RawOffer{
		offerAt("salcobrand", "sb-1", 9000, listPtr(12000), now),
	}}
	pricey := &staticSource{name: "cruzverde", offers: []domain.RawOffer{
		offerAt("cruzverde", "cv-1", 10000, listPtr(12000), now),
	}}

	uc := newPipeline(store, cheap, pricey)
	run, err := uc.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, domain.RunSuccess, run.Status)

	// Same EAN from both retailers resolves to one canonical product.
	require.Len(t, store.canonicals, 1)
	require.Len(t, store.evaluations, 2)

	byPrice := map[float64]*domain.DiscountEvaluation{}
	for _, e := range store.evaluations {
		for _, snap := range store.snapshots {
			if snap.ID == e.SnapshotID {
				byPrice[snap.PriceCurrent] = e
			}
		}
	}

	cheapEval := byPrice[9000]
	require.NotNil(t, cheapEval)
	require.NotNil(t, cheapEval.CrossStoreDeltaPct)
	require.InDelta(t, -0.10, *cheapEval.CrossStoreDeltaPct, 0.001)
	require.True(t, cheapEval.RuleTrace.R3CrossStore.True())

	priceyEval := byPrice[10000]
	require.NotNil(t, priceyEval)
	require.Equal(t, domain.SignalFalse, priceyEval.RuleTrace.R3CrossStore.Status)
}

func TestRunsAreSingleFlight(t *testing.T) {
	now := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	store := newMemStore()
	source := &staticSource{name: "salcobrand", offers: []domain.RawOffer{
		offerAt("salcobrand", "sku-1", 8990, listPtr(9990), now),
	}}
	uc := newPipeline(store, source)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Run(context.Background())
			require.NoError(t, err)
		}()
	}
	wg.Wait()

	// Every run finalized its own record; history stayed deduplicated.
	require.Len(t, store.runs, 4)
	require.Len(t, store.snapshots, 1)
	require.Len(t, store.evaluations, 1)
}
