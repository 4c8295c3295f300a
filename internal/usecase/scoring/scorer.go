// Package scoring classifies observed discounts as credible or
// manufactured. Six independent signals feed a weighted score; a hard
// visible-discount gate and an anchor-anomaly veto are applied after
// the score so the trace can show "high score but gated".
package scoring

import (
	"math"

	"github.com/pricetrust/pricing-service/internal/domain"
)

// ScoringVersion tags every evaluation so historical rows stay
// interpretable after recalibration. v1 folded missing signals into a
// neutral constant; v2 excludes them from the weighted sum entirely.
const ScoringVersion = "v2"

// Component weights: historical and cross-store evidence dominate,
// anchor integrity and corroboration act as credibility modifiers.
const (
	weightHist     = 0.35
	weightCross    = 0.25
	weightAnchor   = 0.20
	weightDuration = 0.10
	weightQuality  = 0.10
)

// Label thresholds, calibrated for ScoringVersion.
const (
	realMinScore       = 0.75
	likelyRealMinScore = 0.55
	suspiciousMinScore = 0.40
	// evidenceAbsentCap bounds the score when neither historical nor
	// cross-store evidence exists: modifiers alone can never certify a
	// discount.
	evidenceAbsentCap = 0.50
	// crossNoiseBand treats sub-3% peer differences as pricing noise.
	crossNoiseBand = 0.03
)

// Result is one evaluation verdict plus the full rule trace, enough
// for the explanation layer to reconstruct "why this label" without
// re-running the evaluator.
type Result struct {
	Score              float64
	Label              domain.EvaluationLabel
	DiscountPct        *float64
	HistDeltaPct       *float64
	CrossStoreDeltaPct *float64
	AnchorAnomaly      bool
	Trace              domain.RuleTrace
}

type Evaluator struct{}

func NewEvaluator() *Evaluator { return &Evaluator{} }

func clip(v, low, high float64) float64 {
	return math.Max(low, math.Min(v, high))
}

// Evaluate computes the six signals and folds them into a score and a
// label. Absent signals are excluded from the weighted sum (the
// remaining weights are renormalized), never coerced to false.
func (e *Evaluator) Evaluate(in Inputs) Result {
	sig := computeSignals(in)

	var sum, presentWeight float64

	if !sig.R1.Absent() && sig.HistDeltaPct != nil {
		sum += weightHist * (clip(*sig.HistDeltaPct, 0, 0.5) / 0.5)
		presentWeight += weightHist
	}
	if !sig.R3.Absent() && sig.CrossStoreDeltaPct != nil {
		savings := -*sig.CrossStoreDeltaPct
		component := clip(savings, 0, 0.4) / 0.4
		if math.Abs(*sig.CrossStoreDeltaPct) <= crossNoiseBand {
			component = 0.5
		}
		sum += weightCross * component
		presentWeight += weightCross
	}
	if !sig.R2.Absent() {
		sum += weightAnchor * (1 - clip(sig.AnchorSpikePct, 0, 0.5)/0.5)
		presentWeight += weightAnchor
	}

	if sig.R4.True() {
		sum += weightDuration
	}
	presentWeight += weightDuration

	if sig.R5.True() {
		sum += weightQuality
	} else {
		sum += weightQuality * 0.4
	}
	presentWeight += weightQuality

	score := sum / presentWeight
	if sig.R1.Absent() && sig.R3.Absent() && score > evidenceAbsentCap {
		score = evidenceAbsentCap
	}
	score = math.Round(score*10000) / 10000

	anchorAnomaly := sig.AnchorSpikePct > anchorAnomalyThreshold

	var label domain.EvaluationLabel
	switch {
	case score >= realMinScore && sig.R1.True() && sig.R3.True() && sig.R6.True():
		label = domain.LabelReal
	case score >= likelyRealMinScore && sig.R6.True():
		label = domain.LabelLikelyReal
	case score >= suspiciousMinScore:
		label = domain.LabelSuspicious
	default:
		label = domain.LabelLikelyFake
	}

	// Hard gate: without a visible >=10% advertised discount, nothing
	// is certified, no matter how strong the evidence.
	gated := false
	if !sig.R6.True() && score >= likelyRealMinScore {
		label = domain.LabelSuspicious
		gated = true
	}

	// An anchor spiked past the anomaly threshold is manufactured
	// pricing outright.
	if anchorAnomaly {
		label = domain.LabelLikelyFake
	}

	return Result{
		Score:              score,
		Label:              label,
		DiscountPct:        sig.DiscountPct,
		HistDeltaPct:       sig.HistDeltaPct,
		CrossStoreDeltaPct: sig.CrossStoreDeltaPct,
		AnchorAnomaly:      anchorAnomaly,
		Trace: domain.RuleTrace{
			R1HistDelta:       sig.R1,
			R2AnchorSpike:     sig.R2,
			R3CrossStore:      sig.R3,
			R4MultiSnapshot:   sig.R4,
			R5EnoughHistory:   sig.R5,
			R6VisibleDiscount: sig.R6,
			AnchorSpikePct:    math.Round(sig.AnchorSpikePct*10000) / 10000,
			GatedByR6:         gated,
		},
	}
}
