package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRuleTraceJSONKeyContract(t *testing.T) {
	trace := RuleTrace{
		R1HistDelta:       BoolSignal(true),
		R2AnchorSpike:     BoolSignal(false),
		R3CrossStore:      AbsentSignal(),
		R4MultiSnapshot:   BoolSignal(true),
		R5EnoughHistory:   AbsentSignal(),
		R6VisibleDiscount: BoolSignal(true),
		AnchorSpikePct:    0.0421,
	}

	raw, err := json.Marshal(trace)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	// The explanation UI decodes these exact keys; they are a contract
	// across scoring versions.
	for _, key := range []string{
		"R1_hist_delta_ge_15pct",
		"R2_anchor_spike_le_10pct",
		"R3_cross_store_ge_5pct",
		"R4_seen_multiple_snapshots",
		"R5_has_enough_history",
		"R6_visible_discount_ge_10pct",
		"anchor_spike_pct",
	} {
		require.Contains(t, decoded, key)
	}

	require.Equal(t, true, decoded["R1_hist_delta_ge_15pct"])
	require.Equal(t, false, decoded["R2_anchor_spike_le_10pct"])
	// Absent marshals as null, distinguishable from false.
	require.Nil(t, decoded["R3_cross_store_ge_5pct"])
	require.Nil(t, decoded["R5_has_enough_history"])
	require.InDelta(t, 0.0421, decoded["anchor_spike_pct"].(float64), 1e-9)
}

func TestSignalRoundTrip(t *testing.T) {
	for _, sig := range []Signal{AbsentSignal(), BoolSignal(true), BoolSignal(false)} {
		raw, err := json.Marshal(sig)
		require.NoError(t, err)

		var back Signal
		require.NoError(t, json.Unmarshal(raw, &back))
		require.Equal(t, sig.Status, back.Status)
	}
}

func TestSourceHashStableAcrossIdenticalOffers(t *testing.T) {
	at := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	list := 19990.0

	a := SourceHash("sku-1", 14990, &list, at)
	b := SourceHash("sku-1", 14990, &list, at)
	require.Equal(t, a, b)

	c := SourceHash("sku-1", 13990, &list, at)
	require.NotEqual(t, a, c)

	d := SourceHash("sku-1", 14990, nil, at)
	require.NotEqual(t, a, d)
}
