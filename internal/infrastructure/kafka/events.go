package kafka

import "time"

const (
	TopicEvaluationEvents = "evaluation-events"
	TopicPipelineRuns     = "pipeline-run-events"
	TopicOfferEvents      = "offer-events"
)

// EvaluationEvent is published for every recorded evaluation so
// downstream alerting can react to freshly certified deals.
type EvaluationEvent struct {
	EvaluationID       string    `json:"evaluation_id"`
	CanonicalProductID string    `json:"canonical_product_id"`
	RetailerID         string    `json:"retailer_id"`
	Label              string    `json:"label"`
	Score              float64   `json:"score"`
	DiscountPct        *float64  `json:"discount_pct"`
	ScoringVersion     string    `json:"scoring_version"`
	CreatedAt          time.Time `json:"created_at"`
}

// OfferEvent is one scraped offer as the scraper fleet publishes it.
// Field names follow the scraper contract, not internal naming.
type OfferEvent struct {
	Retailer          string    `json:"retailer"`
	RetailerDomain    string    `json:"retailer_domain"`
	RetailerProductID string    `json:"retailer_product_id"`
	ProductURL        string    `json:"product_url"`
	Title             string    `json:"title"`
	Brand             string    `json:"brand"`
	Size              string    `json:"size"`
	Category          string    `json:"category"`
	ImageURL          string    `json:"image_url"`
	EAN               string    `json:"ean"`
	PriceCurrent      float64   `json:"price_current"`
	PriceList         *float64  `json:"price_list"`
	Currency          string    `json:"currency"`
	PromoText         string    `json:"promo_text"`
	InStock           bool      `json:"in_stock"`
	ScrapedAt         time.Time `json:"scraped_at"`
}

// RunEvent announces a finalized pipeline run.
type RunEvent struct {
	RunID            string    `json:"run_id"`
	Status           string    `json:"status"`
	TotalOffers      int       `json:"total_offers"`
	TotalSnapshots   int       `json:"total_snapshots"`
	TotalEvaluations int       `json:"total_evaluations"`
	FinishedAt       time.Time `json:"finished_at"`
}
