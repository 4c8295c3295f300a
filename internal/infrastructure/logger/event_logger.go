package logger

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// OfferIngestFailedEvent is the durable audit record for one offer a
// run skipped. Slog output rotates away; these rows let operators
// reconstruct why a run evaluated fewer offers than it received.
type OfferIngestFailedEvent struct {
	ID                uint `gorm:"primaryKey"`
	RunID             string
	Retailer          string
	RetailerProductID string
	Stage             string
	Reason            string
	Timestamp         time.Time
}

type IngestEventLogger interface {
	LogOfferFailed(ctx context.Context, event OfferIngestFailedEvent) error
}

type PGIngestEventLogger struct {
	db *gorm.DB
}

func NewPGIngestEventLogger(db *gorm.DB) *PGIngestEventLogger {
	return &PGIngestEventLogger{db: db}
}

func (l *PGIngestEventLogger) LogOfferFailed(ctx context.Context, event OfferIngestFailedEvent) error {
	return l.db.WithContext(ctx).Create(&event).Error
}
