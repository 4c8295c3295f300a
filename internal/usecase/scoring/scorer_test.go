package scoring

import (
	"testing"
	"time"

	"github.com/pricetrust/pricing-service/internal/domain"
	"github.com/stretchr/testify/require"
)

const minSpan = 72 * time.Hour

func ptr[T any](v T) *T { return &v }

// dailyHistory builds n prior snapshots one day apart, ending one day
// before the reference time.
func dailyHistory(ref time.Time, prices []float64, list *float64) []*domain.PriceSnapshot {
	out := make([]*domain.PriceSnapshot, len(prices))
	for i, price := range prices {
		out[i] = &domain.PriceSnapshot{
			PriceCurrent: price,
			PriceList:    list,
			ScrapedAt:    ref.AddDate(0, 0, -(len(prices) - i)),
		}
	}
	return out
}

func TestAnchorSpikeIsFlaggedFake(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	e := NewEvaluator()

	result := e.Evaluate(Inputs{
		PriceCurrent:   10000,
		PriceList:      ptr(25000.0),
		ScrapedAt:      now,
		History:        dailyHistory(now, []float64{12000, 11800, 11900, 12100}, ptr(15000.0)),
		PeerPrices:     []float64{11500, 11700},
		MinHistorySpan: minSpan,
	})

	require.True(t, result.AnchorAnomaly)
	require.Equal(t, domain.LabelLikelyFake, result.Label)
	require.False(t, result.Trace.R2AnchorSpike.True())
	require.Greater(t, result.Trace.AnchorSpikePct, 0.25)
}

func TestLowVisibleDiscountCannotBeCertified(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	e := NewEvaluator()

	// Long, convincing downward trend but only a ~3.3% advertised
	// discount: the R6 gate must hold the label at SUSPICIOUS even
	// though the weighted score clears the LIKELY_REAL threshold.
	result := e.Evaluate(Inputs{
		PriceCurrent: 28990,
		PriceList:    ptr(29990.0),
		ScrapedAt:    now,
		History: dailyHistory(now,
			[]float64{35500, 34800, 34000, 33200, 32500, 31900, 31000, 30300, 29600, 29200},
			ptr(29990.0)),
		MinHistorySpan: minSpan,
	})

	require.Equal(t, domain.SignalFalse, result.Trace.R6VisibleDiscount.Status)
	require.GreaterOrEqual(t, result.Score, likelyRealMinScore)
	require.Equal(t, domain.LabelSuspicious, result.Label)
	require.True(t, result.Trace.GatedByR6)
}

func TestSinglePriorSnapshotYieldsSuspiciousNotFake(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	e := NewEvaluator()

	// 11% visible discount with a single day-old observation: R1 and
	// R3 are absent, not false, so lack of history alone must not sink
	// the label to LIKELY_FAKE.
	result := e.Evaluate(Inputs{
		PriceCurrent:   8900,
		PriceList:      ptr(10000.0),
		ScrapedAt:      now,
		History:        dailyHistory(now, []float64{10000}, ptr(10000.0)),
		MinHistorySpan: minSpan,
	})

	require.True(t, result.Trace.R6VisibleDiscount.True())
	require.True(t, result.Trace.R1HistDelta.Absent())
	require.True(t, result.Trace.R3CrossStore.Absent())
	require.Equal(t, domain.SignalFalse, result.Trace.R4MultiSnapshot.Status)
	require.Equal(t, domain.SignalFalse, result.Trace.R5EnoughHistory.Status)
	require.Equal(t, domain.LabelSuspicious, result.Label)
}

func TestCrossStoreDelta(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)

	t.Run("cheaper listing", func(t *testing.T) {
		sig := computeSignals(Inputs{
			PriceCurrent:   9000,
			ScrapedAt:      now,
			PeerPrices:     []float64{10000},
			MinHistorySpan: minSpan,
		})
		require.True(t, sig.R3.True())
		require.NotNil(t, sig.CrossStoreDeltaPct)
		require.InDelta(t, -0.10, *sig.CrossStoreDeltaPct, 0.001)
	})

	t.Run("pricier listing", func(t *testing.T) {
		sig := computeSignals(Inputs{
			PriceCurrent:   10000,
			ScrapedAt:      now,
			PeerPrices:     []float64{9000},
			MinHistorySpan: minSpan,
		})
		require.Equal(t, domain.SignalFalse, sig.R3.Status)
		require.Greater(t, *sig.CrossStoreDeltaPct, 0.0)
	})

	t.Run("no peers is absent", func(t *testing.T) {
		sig := computeSignals(Inputs{PriceCurrent: 9000, ScrapedAt: now, MinHistorySpan: minSpan})
		require.True(t, sig.R3.Absent())
		require.Nil(t, sig.CrossStoreDeltaPct)
	})
}

func TestStrongCorroborationIsReal(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	e := NewEvaluator()

	result := e.Evaluate(Inputs{
		PriceCurrent:   8000,
		PriceList:      ptr(10000.0),
		ScrapedAt:      now,
		History:        dailyHistory(now, []float64{13000, 13000, 13000, 13000}, ptr(10000.0)),
		PeerPrices:     []float64{14000},
		MinHistorySpan: minSpan,
	})

	require.True(t, result.Trace.R1HistDelta.True())
	require.True(t, result.Trace.R3CrossStore.True())
	require.True(t, result.Trace.R6VisibleDiscount.True())
	require.GreaterOrEqual(t, result.Score, realMinScore)
	require.Equal(t, domain.LabelReal, result.Label)
}

func TestNoListPriceLeavesR6Absent(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	e := NewEvaluator()

	result := e.Evaluate(Inputs{
		PriceCurrent:   8000,
		ScrapedAt:      now,
		History:        dailyHistory(now, []float64{13000, 13000, 13000, 13000}, nil),
		PeerPrices:     []float64{14000},
		MinHistorySpan: minSpan,
	})

	require.True(t, result.Trace.R6VisibleDiscount.Absent())
	require.Nil(t, result.DiscountPct)
	// Without a visible anchor nothing is certified.
	require.NotEqual(t, domain.LabelReal, result.Label)
	require.NotEqual(t, domain.LabelLikelyReal, result.Label)
}
