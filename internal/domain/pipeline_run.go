package domain

import "time"

type RunStatus string

const (
	RunSuccess RunStatus = "SUCCESS"
	RunFailed  RunStatus = "FAILED"
)

type SourceKind string

const (
	SourceLive  SourceKind = "live"
	SourceError SourceKind = "error"
)

// RetailerResult is the per-retailer provenance of one run.
type RetailerResult struct {
	Retailer   string     `json:"retailer"`
	Source     SourceKind `json:"source"`
	OfferCount int        `json:"offer_count"`
	Error      string     `json:"error,omitempty"`
}

// PipelineRun records one execution end to end. Status and FinishedAt
// are set exactly once, at the single exit point of the run.
type PipelineRun struct {
	ID               string
	StartedAt        time.Time
	FinishedAt       time.Time
	Status           RunStatus
	TotalOffers      int
	TotalSnapshots   int
	TotalEvaluations int
	RetailerResults  []RetailerResult
	ErrorMessage     string
}
