// Package sources adapts external offer feeds onto the OfferSource
// port. Scrapers publish offers to per-retailer kafka topics; the
// pipeline drains whatever arrived since its previous run.
package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/pricetrust/pricing-service/internal/domain"
	"github.com/pricetrust/pricing-service/internal/infrastructure/kafka"
)

// KafkaOfferSource buffers offer events from one retailer topic. Fetch
// hands the whole buffer to the pipeline and resets it; a run that
// finds the buffer empty reports the source as failed, which fails the
// run rather than producing partial cross-store evidence.
type KafkaOfferSource struct {
	name   string
	logger *slog.Logger

	mu  sync.Mutex
	buf []domain.RawOffer
}

func NewKafkaOfferSource(name, topic, groupID string, subscriber domain.SubscriberPort, logger *slog.Logger) (*KafkaOfferSource, error) {
	msgs, err := subscriber.Subscribe(topic, groupID)
	if err != nil {
		return nil, fmt.Errorf("subscribe %s: %w", topic, err)
	}
	s := &KafkaOfferSource{name: name, logger: logger}
	go s.consume(msgs)
	return s, nil
}

func (s *KafkaOfferSource) Name() string { return s.name }

func (s *KafkaOfferSource) Fetch(ctx context.Context) ([]domain.RawOffer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.buf) == 0 {
		return nil, fmt.Errorf("%w: no offers received on topic for %s", domain.ErrSourceFailed, s.name)
	}
	offers := s.buf
	s.buf = nil
	return offers, nil
}

func (s *KafkaOfferSource) consume(msgs <-chan domain.Message) {
	for m := range msgs {
		var event kafka.OfferEvent
		if err := json.Unmarshal(m.Value, &event); err != nil {
			s.logger.Error("malformed offer event", "retailer", s.name, "error", err)
			continue
		}
		offer := domain.RawOffer{
			RetailerName:      event.Retailer,
			RetailerDomain:    event.RetailerDomain,
			RetailerProductID: event.RetailerProductID,
			ProductURL:        event.ProductURL,
			Title:             event.Title,
			BrandRaw:          event.Brand,
			SizeRaw:           event.Size,
			CategoryRaw:       event.Category,
			ImageURL:          event.ImageURL,
			EAN:               event.EAN,
			PriceCurrent:      event.PriceCurrent,
			PriceList:         event.PriceList,
			Currency:          event.Currency,
			PromoText:         event.PromoText,
			InStock:           event.InStock,
			ScrapedAt:         event.ScrapedAt,
		}
		if offer.RetailerName == "" {
			offer.RetailerName = s.name
		}
		s.mu.Lock()
		s.buf = append(s.buf, offer)
		s.mu.Unlock()
	}
	s.logger.Warn("offer stream closed", "retailer", s.name)
}
