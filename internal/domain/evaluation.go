package domain

import "time"

type EvaluationLabel string

const (
	LabelReal       EvaluationLabel = "REAL"
	LabelLikelyReal EvaluationLabel = "LIKELY_REAL"
	LabelSuspicious EvaluationLabel = "SUSPICIOUS"
	LabelLikelyFake EvaluationLabel = "LIKELY_FAKE"
)

// DiscountEvaluation is the immutable verdict on one snapshot. A
// recalibrated scorer writes new rows under a new scoring version,
// never updates in place.
type DiscountEvaluation struct {
	ID                 string
	CanonicalProductID string
	RetailerID         string
	SnapshotID         string
	Score              float64
	Label              EvaluationLabel
	DiscountPct        *float64
	HistDeltaPct       *float64
	CrossStoreDeltaPct *float64
	AnchorAnomaly      bool
	RuleTrace          RuleTrace
	ScoringVersion     string
	CreatedAt          time.Time
}

// EvaluationFilter narrows the dashboard query surface. Limit is
// capped by the repository at MaxEvaluationLimit.
type EvaluationFilter struct {
	MinScore           float64
	Label              EvaluationLabel
	Retailer           string
	BrandSubstring     string
	MinVisibleDiscount *float64
	CrossStorePositive bool
	Limit              int
}

const MaxEvaluationLimit = 200

// EvaluationRow is the joined read-model returned to the dashboard:
// the evaluation plus enough product and price context to render it.
type EvaluationRow struct {
	Evaluation    DiscountEvaluation
	RetailerName  string
	CanonicalName string
	BrandNorm     string
	ProductURL    string
	PriceCurrent  float64
	PriceList     *float64
}
