package domain

import (
	"bytes"
	"encoding/json"
)

// SignalStatus is the tagged state of one scoring signal. Absent means
// the signal could not be computed (insufficient history, no peers, no
// list price) and is distinct from False throughout scoring and
// serialization.
type SignalStatus int

const (
	SignalAbsent SignalStatus = iota
	SignalFalse
	SignalTrue
)

type Signal struct {
	Status SignalStatus
	Value  *float64
}

func AbsentSignal() Signal { return Signal{Status: SignalAbsent} }

func BoolSignal(ok bool) Signal {
	if ok {
		return Signal{Status: SignalTrue}
	}
	return Signal{Status: SignalFalse}
}

// ValuedSignal keeps the numeric observation that drove the verdict so
// the trace can explain it.
func ValuedSignal(ok bool, value float64) Signal {
	s := BoolSignal(ok)
	s.Value = &value
	return s
}

func (s Signal) True() bool   { return s.Status == SignalTrue }
func (s Signal) Absent() bool { return s.Status == SignalAbsent }

// MarshalJSON emits true/false for computed signals and null for
// absent ones. The dashboard relies on null never collapsing to false.
func (s Signal) MarshalJSON() ([]byte, error) {
	switch s.Status {
	case SignalTrue:
		return []byte("true"), nil
	case SignalFalse:
		return []byte("false"), nil
	default:
		return []byte("null"), nil
	}
}

func (s *Signal) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = Signal{Status: SignalAbsent}
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err != nil {
		return err
	}
	*s = BoolSignal(b)
	return nil
}

// RuleTrace is the structured record of every signal for one
// evaluation. The JSON keys are a contract with the explanation UI and
// must not change across scoring versions.
type RuleTrace struct {
	R1HistDelta       Signal  `json:"R1_hist_delta_ge_15pct"`
	R2AnchorSpike     Signal  `json:"R2_anchor_spike_le_10pct"`
	R3CrossStore      Signal  `json:"R3_cross_store_ge_5pct"`
	R4MultiSnapshot   Signal  `json:"R4_seen_multiple_snapshots"`
	R5EnoughHistory   Signal  `json:"R5_has_enough_history"`
	R6VisibleDiscount Signal  `json:"R6_visible_discount_ge_10pct"`
	AnchorSpikePct    float64 `json:"anchor_spike_pct"`
	GatedByR6         bool    `json:"gated_by_visible_discount"`
}
