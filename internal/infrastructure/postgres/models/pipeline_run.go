package models

import "time"

type PipelineRunModel struct {
	ID               string    `gorm:"primaryKey"`
	StartedAt        time.Time `gorm:"not null;index"`
	FinishedAt       time.Time
	Status           string `gorm:"not null"`
	TotalOffers      int
	TotalSnapshots   int
	TotalEvaluations int
	RetailerResults  string `gorm:"type:jsonb"`
	ErrorMessage     string
}

func (PipelineRunModel) TableName() string { return "pipeline_runs" }
