package scoring

import (
	"sort"
	"time"

	"github.com/pricetrust/pricing-service/internal/domain"
)

// Inputs is everything the rule evaluator needs for one snapshot:
// the current observation, the trailing history of the same raw
// product (ascending, excluding the current snapshot), and the latest
// peer prices of the same canonical product at other retailers.
type Inputs struct {
	PriceCurrent float64
	PriceList    *float64
	ScrapedAt    time.Time
	History      []*domain.PriceSnapshot
	PeerPrices   []float64
	// MinHistorySpan is the retention period R5 demands before a trend
	// counts as a trend.
	MinHistorySpan time.Duration
}

// signals carries every rule verdict plus the derived percentages the
// evaluation row persists.
type signals struct {
	R1, R2, R3, R4, R5, R6 domain.Signal

	DiscountPct        *float64
	HistDeltaPct       *float64
	CrossStoreDeltaPct *float64
	AnchorSpikePct     float64
}

const (
	histDeltaThreshold     = 0.15
	anchorSpikeThreshold   = 0.10
	crossStoreThreshold    = 0.05
	visibleDiscountMinimum = 0.10
	minSnapshotsForTrend   = 2
	anchorAnomalyThreshold = 0.25
)

func median(values []float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// computeSignals evaluates R1–R6 independently. A signal that cannot
// be computed is Absent, never False.
func computeSignals(in Inputs) signals {
	var out signals

	histPrices := make([]float64, 0, len(in.History))
	listPrices := make([]float64, 0, len(in.History))
	for _, snap := range in.History {
		histPrices = append(histPrices, snap.PriceCurrent)
		if snap.PriceList != nil {
			listPrices = append(listPrices, *snap.PriceList)
		}
	}

	// R6: visible discount. False when a list price exists and the
	// advertised discount is under 10%; Absent when there is no anchor
	// at all.
	if in.PriceList != nil && *in.PriceList > 0 {
		discount := (*in.PriceList - in.PriceCurrent) / *in.PriceList
		out.DiscountPct = &discount
		out.R6 = domain.ValuedSignal(discount >= visibleDiscountMinimum, discount)
	} else {
		out.R6 = domain.AbsentSignal()
	}

	// R1: price vs trailing median. Needs at least two prior
	// observations to call it a trend.
	if len(histPrices) > 0 {
		if histMedian := median(histPrices); histMedian > 0 {
			delta := (histMedian - in.PriceCurrent) / histMedian
			out.HistDeltaPct = &delta
			if len(histPrices) >= minSnapshotsForTrend {
				out.R1 = domain.ValuedSignal(delta >= histDeltaThreshold, delta)
			} else {
				out.R1 = domain.AbsentSignal()
			}
		} else {
			out.R1 = domain.AbsentSignal()
		}
	} else {
		out.R1 = domain.AbsentSignal()
	}

	// R2: anchor integrity. Guards against the "was" price being
	// inflated right before the sale.
	if in.PriceList != nil && len(listPrices) > 0 {
		if listMedian := median(listPrices); listMedian > 0 {
			spike := (*in.PriceList - listMedian) / listMedian
			out.AnchorSpikePct = spike
			out.R2 = domain.ValuedSignal(spike <= anchorSpikeThreshold, spike)
		} else {
			out.R2 = domain.AbsentSignal()
		}
	} else {
		out.R2 = domain.AbsentSignal()
	}

	// R3: cross-store. Negative delta means this listing is cheaper
	// than its peers.
	if len(in.PeerPrices) > 0 {
		if peerMedian := median(in.PeerPrices); peerMedian > 0 {
			delta := (in.PriceCurrent - peerMedian) / peerMedian
			out.CrossStoreDeltaPct = &delta
			out.R3 = domain.ValuedSignal(delta <= -crossStoreThreshold, delta)
		} else {
			out.R3 = domain.AbsentSignal()
		}
	} else {
		out.R3 = domain.AbsentSignal()
	}

	// R4: corroboration by repeat observation.
	out.R4 = domain.BoolSignal(len(in.History) >= minSnapshotsForTrend)

	// R5: the window must span real time, not just a burst of
	// snapshots.
	if len(in.History) > 0 {
		span := in.ScrapedAt.Sub(in.History[0].ScrapedAt)
		out.R5 = domain.BoolSignal(span >= in.MinHistorySpan)
	} else {
		out.R5 = domain.BoolSignal(false)
	}

	return out
}
