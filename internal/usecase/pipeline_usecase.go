package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	nanoid "github.com/jaevor/go-nanoid"
	"github.com/pricetrust/pricing-service/internal/domain"
	"github.com/pricetrust/pricing-service/internal/infrastructure/kafka"
	ingestlog "github.com/pricetrust/pricing-service/internal/infrastructure/logger"
	"github.com/pricetrust/pricing-service/internal/infrastructure/metrics"
	"github.com/pricetrust/pricing-service/internal/usecase/matching"
	"github.com/pricetrust/pricing-service/internal/usecase/normalize"
	"github.com/pricetrust/pricing-service/internal/usecase/scoring"
)

type PipelineUsecase interface {
	Run(ctx context.Context) (*domain.PipelineRun, error)
	LatestRun(ctx context.Context) (*domain.PipelineRun, error)
	QueryEvaluations(ctx context.Context, filter domain.EvaluationFilter) ([]*domain.EvaluationRow, error)
}

type PipelineConfig struct {
	// Lookback bounds how far back trend signals read history.
	Lookback time.Duration
	// MinHistorySpan is the retention period R5 requires.
	MinHistorySpan time.Duration
	DefaultCurrency string
}

// DefaultPipelineUsecase wraps one scheduled execution: ingest every
// configured retailer source, resolve identities, append snapshots,
// evaluate discounts, and finalize exactly one PipelineRun record.
type DefaultPipelineUsecase struct {
	cfg         PipelineConfig
	sources     []domain.OfferSource
	retailers   domain.RetailerRepository
	rawProducts domain.RawProductRepository
	matcher     *matching.Matcher
	history     domain.PriceHistoryRepository
	evaluator   *scoring.Evaluator
	evaluations domain.EvaluationRepository
	runs        domain.PipelineRunRepository
	publisher   domain.PublisherPort
	metrics     *metrics.PipelineMetrics
	events      ingestlog.IngestEventLogger
	logger      *slog.Logger

	// Canonicalization within a run is serialized; a new run waits for
	// the previous one to finalize.
	mu       sync.Mutex
	newRunID func() string
}

func NewDefaultPipelineUsecase(
	cfg PipelineConfig,
	sources []domain.OfferSource,
	retailers domain.RetailerRepository,
	rawProducts domain.RawProductRepository,
	matcher *matching.Matcher,
	history domain.PriceHistoryRepository,
	evaluator *scoring.Evaluator,
	evaluations domain.EvaluationRepository,
	runs domain.PipelineRunRepository,
	publisher domain.PublisherPort,
	m *metrics.PipelineMetrics,
	events ingestlog.IngestEventLogger,
	logger *slog.Logger,
) *DefaultPipelineUsecase {
	runID, err := nanoid.Standard(12)
	if err != nil {
		log.Fatalf("failed to init run id generator: %v", err)
	}
	return &DefaultPipelineUsecase{
		cfg:         cfg,
		sources:     sources,
		retailers:   retailers,
		rawProducts: rawProducts,
		matcher:     matcher,
		history:     history,
		evaluator:   evaluator,
		evaluations: evaluations,
		runs:        runs,
		publisher:   publisher,
		metrics:     m,
		events:      events,
		logger:      logger,
		newRunID:    runID,
	}
}

type sourceResult struct {
	name   string
	offers []domain.RawOffer
	err    error
}

// Run executes one full pipeline pass. The run is FAILED whenever any
// configured source errors or returns zero offers, and a failed run
// writes no snapshots and no evaluations. Per-offer failures inside a
// healthy run are recorded and skipped, never fatal to the batch.
func (uc *DefaultPipelineUsecase) Run(ctx context.Context) (*domain.PipelineRun, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	run := &domain.PipelineRun{
		ID:        uc.newRunID(),
		StartedAt: time.Now().UTC(),
	}

	results := uc.fetchAll(ctx)

	failed := false
	var offers []domain.RawOffer
	for _, res := range results {
		rr := domain.RetailerResult{
			Retailer:   res.name,
			Source:     domain.SourceLive,
			OfferCount: len(res.offers),
		}
		switch {
		case res.err != nil:
			rr.Source = domain.SourceError
			rr.Error = res.err.Error()
			failed = true
		case len(res.offers) == 0:
			rr.Source = domain.SourceError
			rr.Error = domain.ErrSourceFailed.Error() + ": zero offers"
			failed = true
		}
		if rr.Source == domain.SourceError {
			if uc.metrics != nil {
				uc.metrics.SourceErrorsTotal.WithLabelValues(res.name).Inc()
			}
			uc.logger.Error("retailer source failed", "retailer", res.name, "error", rr.Error)
		} else if uc.metrics != nil {
			uc.metrics.OffersIngestedTotal.WithLabelValues(res.name).Add(float64(len(res.offers)))
		}
		run.RetailerResults = append(run.RetailerResults, rr)
		offers = append(offers, res.offers...)
	}
	run.TotalOffers = len(offers)

	if failed {
		return uc.finalize(ctx, run, domain.RunFailed, "one or more retailer sources failed")
	}

	// Phase one ingests every snapshot before anything is scored, so
	// cross-store signals inside this run see all peers.
	offerErrors := 0
	var pending []pendingEvaluation
	for i := range offers {
		if ctx.Err() != nil {
			return uc.finalize(ctx, run, domain.RunFailed, ctx.Err().Error())
		}
		p, err := uc.ingestOffer(ctx, &offers[i])
		if err != nil {
			offerErrors++
			if uc.metrics != nil {
				uc.metrics.OfferErrorsTotal.WithLabelValues(offers[i].RetailerName).Inc()
			}
			uc.logger.Error("offer ingestion failed",
				"retailer", offers[i].RetailerName,
				"retailer_product_id", offers[i].RetailerProductID,
				"error", err)
			uc.logOfferFailure(ctx, run.ID, offers[i].RetailerName, offers[i].RetailerProductID, "ingest", err)
			continue
		}
		if p == nil {
			continue // deduplicated snapshot, nothing new to score
		}
		run.TotalSnapshots++
		pending = append(pending, *p)
	}

	for i := range pending {
		if ctx.Err() != nil {
			return uc.finalize(ctx, run, domain.RunFailed, ctx.Err().Error())
		}
		evaluated, err := uc.evaluatePending(ctx, &pending[i])
		if err != nil {
			offerErrors++
			if uc.metrics != nil {
				uc.metrics.OfferErrorsTotal.WithLabelValues(pending[i].retailerName).Inc()
			}
			uc.logger.Error("offer evaluation failed",
				"retailer", pending[i].retailerName,
				"raw_product_id", pending[i].rawProductID,
				"error", err)
			uc.logOfferFailure(ctx, run.ID, pending[i].retailerName, pending[i].retailerProductID, "evaluate", err)
			continue
		}
		if evaluated {
			run.TotalEvaluations++
		}
	}

	message := ""
	if offerErrors > 0 {
		message = fmt.Sprintf("%d offers failed evaluation", offerErrors)
	}
	return uc.finalize(ctx, run, domain.RunSuccess, message)
}

func (uc *DefaultPipelineUsecase) LatestRun(ctx context.Context) (*domain.PipelineRun, error) {
	return uc.runs.Latest(ctx)
}

func (uc *DefaultPipelineUsecase) QueryEvaluations(ctx context.Context, filter domain.EvaluationFilter) ([]*domain.EvaluationRow, error) {
	return uc.evaluations.Query(ctx, filter)
}

// fetchAll pulls every source concurrently. Only ingestion is
// parallel; everything downstream of it runs serialized.
func (uc *DefaultPipelineUsecase) fetchAll(ctx context.Context) []sourceResult {
	results := make([]sourceResult, len(uc.sources))
	var wg sync.WaitGroup
	for i, source := range uc.sources {
		wg.Add(1)
		go func(i int, source domain.OfferSource) {
			defer wg.Done()
			offers, err := source.Fetch(ctx)
			results[i] = sourceResult{name: source.Name(), offers: offers, err: err}
		}(i, source)
	}
	wg.Wait()
	return results
}

// pendingEvaluation carries everything phase two needs to score one
// freshly ingested snapshot.
type pendingEvaluation struct {
	retailerID         string
	retailerName       string
	retailerProductID  string
	rawProductID       string
	canonicalProductID string
	snapshot           *domain.PriceSnapshot
}

func (uc *DefaultPipelineUsecase) ingestOffer(ctx context.Context, offer *domain.RawOffer) (*pendingEvaluation, error) {
	retailer := &domain.Retailer{
		ID:       uuid.NewString(),
		Name:     offer.RetailerName,
		Domain:   offer.RetailerDomain,
		IsActive: true,
	}
	if err := uc.retailers.Upsert(ctx, retailer); err != nil {
		return nil, fmt.Errorf("upsert retailer: %w", err)
	}

	now := time.Now().UTC()
	raw := &domain.RawProduct{
		ID:                uuid.NewString(),
		RetailerID:        retailer.ID,
		RetailerProductID: offer.RetailerProductID,
		ProductURL:        offer.ProductURL,
		Title:             offer.Title,
		BrandRaw:          offer.BrandRaw,
		SizeRaw:           offer.SizeRaw,
		CategoryRaw:       offer.CategoryRaw,
		ImageURL:          offer.ImageURL,
		EAN:               offer.EAN,
		FirstSeenAt:       now,
		LastSeenAt:        now,
	}
	if err := uc.rawProducts.Upsert(ctx, raw); err != nil {
		return nil, fmt.Errorf("upsert raw product: %w", err)
	}

	sizeValue, sizeUnit := normalize.Size(offer.SizeRaw)
	if sizeValue == nil {
		sizeValue, sizeUnit = normalize.Size(offer.Title)
	}
	identity := matching.Identity{
		NameNorm:     normalize.Text(offer.Title),
		BrandNorm:    normalize.Brand(offer.BrandRaw),
		CategoryNorm: normalize.Category(offer.CategoryRaw),
		SizeValue:    sizeValue,
		SizeUnit:     sizeUnit,
		EAN:          offer.EAN,
	}

	match, err := uc.matcher.Resolve(ctx, raw, identity)
	if err != nil {
		return nil, fmt.Errorf("resolve canonical product: %w", err)
	}
	if uc.metrics != nil {
		uc.metrics.MatchesTotal.WithLabelValues(match.Method, string(match.Status)).Inc()
	}

	currency := offer.Currency
	if currency == "" {
		currency = uc.cfg.DefaultCurrency
	}
	snapshot := &domain.PriceSnapshot{
		ID:           uuid.NewString(),
		RawProductID: raw.ID,
		ScrapedAt:    offer.ScrapedAt.UTC(),
		PriceCurrent: offer.PriceCurrent,
		PriceList:    offer.PriceList,
		Currency:     currency,
		PromoText:    offer.PromoText,
		InStock:      offer.InStock,
		SourceHash:   domain.SourceHash(offer.RetailerProductID, offer.PriceCurrent, offer.PriceList, offer.ScrapedAt),
	}
	if err := uc.history.Append(ctx, snapshot); err != nil {
		if errors.Is(err, domain.ErrDuplicateSnapshot) {
			// Benign: an identical observation was already ingested, so
			// neither a snapshot nor an evaluation is written again.
			if uc.metrics != nil {
				uc.metrics.SnapshotsDedupedTotal.WithLabelValues(offer.RetailerName).Inc()
			}
			return nil, nil
		}
		return nil, fmt.Errorf("append snapshot: %w", err)
	}
	if uc.metrics != nil {
		uc.metrics.SnapshotsWrittenTotal.WithLabelValues(offer.RetailerName).Inc()
	}

	return &pendingEvaluation{
		retailerID:         retailer.ID,
		retailerName:       offer.RetailerName,
		retailerProductID:  offer.RetailerProductID,
		rawProductID:       raw.ID,
		canonicalProductID: match.CanonicalProductID,
		snapshot:           snapshot,
	}, nil
}

func (uc *DefaultPipelineUsecase) evaluatePending(ctx context.Context, p *pendingEvaluation) (bool, error) {
	history, err := uc.history.History(ctx, p.rawProductID, uc.cfg.Lookback, p.snapshot.ScrapedAt)
	if err != nil {
		return false, fmt.Errorf("load history: %w", err)
	}
	peers, err := uc.history.LatestPeerPrices(ctx, p.canonicalProductID, p.rawProductID)
	if err != nil {
		return false, fmt.Errorf("load peer prices: %w", err)
	}

	result := uc.evaluator.Evaluate(scoring.Inputs{
		PriceCurrent:   p.snapshot.PriceCurrent,
		PriceList:      p.snapshot.PriceList,
		ScrapedAt:      p.snapshot.ScrapedAt,
		History:        history,
		PeerPrices:     peers,
		MinHistorySpan: uc.cfg.MinHistorySpan,
	})

	evaluation := &domain.DiscountEvaluation{
		ID:                 uuid.NewString(),
		CanonicalProductID: p.canonicalProductID,
		RetailerID:         p.retailerID,
		SnapshotID:         p.snapshot.ID,
		Score:              result.Score,
		Label:              result.Label,
		DiscountPct:        result.DiscountPct,
		HistDeltaPct:       result.HistDeltaPct,
		CrossStoreDeltaPct: result.CrossStoreDeltaPct,
		AnchorAnomaly:      result.AnchorAnomaly,
		RuleTrace:          result.Trace,
		ScoringVersion:     scoring.ScoringVersion,
		CreatedAt:          time.Now().UTC(),
	}
	if err := uc.evaluations.Insert(ctx, evaluation); err != nil {
		if errors.Is(err, domain.ErrDuplicateSnapshot) {
			return false, nil
		}
		return false, fmt.Errorf("record evaluation: %w", err)
	}
	if uc.metrics != nil {
		uc.metrics.EvaluationsTotal.WithLabelValues(string(evaluation.Label)).Inc()
	}

	uc.publishEvaluation(evaluation)
	return true, nil
}

// finalize is the single exit point of a run: status and finish time
// are set exactly once, here.
func (uc *DefaultPipelineUsecase) finalize(ctx context.Context, run *domain.PipelineRun, status domain.RunStatus, message string) (*domain.PipelineRun, error) {
	run.FinishedAt = time.Now().UTC()
	run.Status = status
	run.ErrorMessage = message

	if err := uc.runs.Insert(ctx, run); err != nil {
		return run, fmt.Errorf("record pipeline run: %w", err)
	}
	if uc.metrics != nil {
		uc.metrics.RunsTotal.WithLabelValues(string(status)).Inc()
		uc.metrics.RunDuration.WithLabelValues(string(status)).Observe(run.FinishedAt.Sub(run.StartedAt).Seconds())
	}
	uc.publishRun(run)

	uc.logger.Info("pipeline run finalized",
		"run_id", run.ID,
		"status", run.Status,
		"offers", run.TotalOffers,
		"snapshots", run.TotalSnapshots,
		"evaluations", run.TotalEvaluations)
	return run, nil
}

func (uc *DefaultPipelineUsecase) logOfferFailure(ctx context.Context, runID, retailer, retailerProductID, stage string, err error) {
	if uc.events == nil {
		return
	}
	event := ingestlog.OfferIngestFailedEvent{
		RunID:             runID,
		Retailer:          retailer,
		RetailerProductID: retailerProductID,
		Stage:             stage,
		Reason:            err.Error(),
		Timestamp:         time.Now().UTC(),
	}
	if logErr := uc.events.LogOfferFailed(ctx, event); logErr != nil {
		uc.logger.Error("failed to record offer audit event", "error", logErr)
	}
}

func (uc *DefaultPipelineUsecase) publishEvaluation(evaluation *domain.DiscountEvaluation) {
	if uc.publisher == nil {
		return
	}
	event := kafka.EvaluationEvent{
		EvaluationID:       evaluation.ID,
		CanonicalProductID: evaluation.CanonicalProductID,
		RetailerID:         evaluation.RetailerID,
		Label:              string(evaluation.Label),
		Score:              evaluation.Score,
		DiscountPct:        evaluation.DiscountPct,
		ScoringVersion:     evaluation.ScoringVersion,
		CreatedAt:          evaluation.CreatedAt,
	}
	value, err := json.Marshal(event)
	if err != nil {
		uc.logger.Error("failed to marshal evaluation event", "error", err)
		return
	}
	if err := uc.publisher.Publish(kafka.TopicEvaluationEvents, domain.Message{
		Key:   []byte(evaluation.CanonicalProductID),
		Value: value,
	}); err != nil {
		uc.logger.Error("failed to publish evaluation event", "error", err)
	}
}

func (uc *DefaultPipelineUsecase) publishRun(run *domain.PipelineRun) {
	if uc.publisher == nil {
		return
	}
	event := kafka.RunEvent{
		RunID:            run.ID,
		Status:           string(run.Status),
		TotalOffers:      run.TotalOffers,
		TotalSnapshots:   run.TotalSnapshots,
		TotalEvaluations: run.TotalEvaluations,
		FinishedAt:       run.FinishedAt,
	}
	value, err := json.Marshal(event)
	if err != nil {
		uc.logger.Error("failed to marshal run event", "error", err)
		return
	}
	if err := uc.publisher.Publish(kafka.TopicPipelineRuns, domain.Message{
		Key:   []byte(run.ID),
		Value: value,
	}); err != nil {
		uc.logger.Error("failed to publish run event", "error", err)
	}
}
